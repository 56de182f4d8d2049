package tests

// Shared in-memory repository stubs. Services run their transactions through
// runTx, which tolerates a nil *gorm.DB, so these stubs never touch a database.

import (
	"context"
	"errors"
	"time"

	"foodcart360/internal/dto"
	"foodcart360/internal/model"
	"foodcart360/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Menu ──────────────────────────────────────────────────────────────────────

type stubMenuRepo struct {
	items map[uuid.UUID]*model.MenuItem
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{items: make(map[uuid.UUID]*model.MenuItem)}
}

func (r *stubMenuRepo) add(name string, price decimal.Decimal, stock int, active bool) *model.MenuItem {
	m := &model.MenuItem{ID: uuid.New(), Name: name, Price: price, Category: "Snacks", Stock: stock, Active: active}
	r.items[m.ID] = m
	return m
}

func (r *stubMenuRepo) Create(_ context.Context, m *model.MenuItem) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.items[m.ID] = m
	return nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MenuItem, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}

func (r *stubMenuRepo) List(_ context.Context, filter dto.MenuFilter) ([]model.MenuItem, int64, error) {
	var out []model.MenuItem
	for _, m := range r.items {
		if filter.Active == "" && !m.Active {
			continue
		}
		out = append(out, *m)
	}
	total := int64(len(out))
	if filter.Limit > 0 {
		offset := (filter.Page - 1) * filter.Limit
		if offset < 0 {
			offset = 0
		}
		if offset >= len(out) {
			out = nil
		} else if offset+filter.Limit < len(out) {
			out = out[offset : offset+filter.Limit]
		} else {
			out = out[offset:]
		}
	}
	return out, total, nil
}

func (r *stubMenuRepo) Update(_ context.Context, m *model.MenuItem) error {
	r.items[m.ID] = m
	return nil
}

func (r *stubMenuRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	m, ok := r.items[id]
	if !ok {
		return errors.New("not found")
	}
	m.Active = false
	return nil
}

func (r *stubMenuRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	m, ok := r.items[id]
	if !ok {
		return errors.New("not found")
	}
	m.Active = true
	return nil
}

func (r *stubMenuRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	m, ok := r.items[id]
	if !ok {
		return errors.New("not found")
	}
	m.Stock += delta
	return nil
}

var _ repository.MenuRepository = (*stubMenuRepo)(nil)

// ── Orders ────────────────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders   map[uuid.UUID]*model.Order
	tokenSeq int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, _ *gorm.DB, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return errors.New("not found")
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *stubOrderRepo) NextTokenNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.tokenSeq++
	return r.tokenSeq, nil
}

func (r *stubOrderRepo) List(_ context.Context, _ dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) ListByDate(_ context.Context, date string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.BusinessDate == date {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListByDateRange(_ context.Context, start, end string) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.BusinessDate >= start && o.BusinessDate <= end {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) ListAll(_ context.Context) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── Expenses ──────────────────────────────────────────────────────────────────

type stubExpenseRepo struct {
	expenses map[uuid.UUID]*model.Expense
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{expenses: make(map[uuid.UUID]*model.Expense)}
}

func (r *stubExpenseRepo) Create(_ context.Context, e *model.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.expenses[e.ID] = e
	return nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return e, nil
}

func (r *stubExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

func (r *stubExpenseRepo) List(_ context.Context, _ dto.ExpenseFilter) ([]model.Expense, int64, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *stubExpenseRepo) ListByDate(_ context.Context, date string) ([]model.Expense, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		if e.BusinessDate == date {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExpenseRepo) ListByDateRange(_ context.Context, start, end string) ([]model.Expense, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		if e.BusinessDate >= start && e.BusinessDate <= end {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExpenseRepo) ListAll(_ context.Context) ([]model.Expense, error) {
	var out []model.Expense
	for _, e := range r.expenses {
		out = append(out, *e)
	}
	return out, nil
}

var _ repository.ExpenseRepository = (*stubExpenseRepo)(nil)

// ── Inventory ─────────────────────────────────────────────────────────────────

type stubInventoryRepo struct {
	items map[uuid.UUID]*model.InventoryItem
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{items: make(map[uuid.UUID]*model.InventoryItem)}
}

func (r *stubInventoryRepo) add(name string, stock, minStock float64) *model.InventoryItem {
	i := &model.InventoryItem{
		ID:       uuid.New(),
		Name:     name,
		Stock:    decimal.NewFromFloat(stock),
		Unit:     "kg",
		MinStock: decimal.NewFromFloat(minStock),
	}
	r.items[i.ID] = i
	return i
}

func (r *stubInventoryRepo) Create(_ context.Context, i *model.InventoryItem) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.items[i.ID] = i
	return nil
}

func (r *stubInventoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	// Return a snapshot, like the real repository: the service must not see
	// repo-side mutations through the pointer it already holds.
	cp := *i
	return &cp, nil
}

func (r *stubInventoryRepo) Update(_ context.Context, i *model.InventoryItem) error {
	r.items[i.ID] = i
	return nil
}

func (r *stubInventoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *stubInventoryRepo) List(_ context.Context) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, i := range r.items {
		out = append(out, *i)
	}
	return out, nil
}

func (r *stubInventoryRepo) ListLowStock(_ context.Context) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, i := range r.items {
		if i.IsLowStock() {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) AdjustStock(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	i, ok := r.items[id]
	if !ok {
		return errors.New("not found")
	}
	i.Stock = i.Stock.Add(delta)
	return nil
}

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

// ── Settings / subscription ───────────────────────────────────────────────────

type stubSettingsRepo struct {
	settings model.Settings
	profile  model.BusinessProfile
	sub      model.Subscription
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{
		settings: model.Settings{ID: uuid.New(), Currency: "INR", TaxRatePct: decimal.Zero, LowStockAlerts: true},
		profile:  model.BusinessProfile{ID: uuid.New(), CartName: "FoodCart360"},
		sub:      model.Subscription{ID: uuid.New()},
	}
}

func (r *stubSettingsRepo) GetSettings(_ context.Context) (*model.Settings, error) {
	s := r.settings
	return &s, nil
}

func (r *stubSettingsRepo) SaveSettings(_ context.Context, s *model.Settings) error {
	r.settings = *s
	return nil
}

func (r *stubSettingsRepo) GetProfile(_ context.Context) (*model.BusinessProfile, error) {
	p := r.profile
	return &p, nil
}

func (r *stubSettingsRepo) SaveProfile(_ context.Context, p *model.BusinessProfile) error {
	r.profile = *p
	return nil
}

func (r *stubSettingsRepo) GetSubscription(_ context.Context) (*model.Subscription, error) {
	s := r.sub
	return &s, nil
}

func (r *stubSettingsRepo) SaveSubscription(_ context.Context, s *model.Subscription) error {
	r.sub = *s
	return nil
}

var _ repository.SettingsRepository = (*stubSettingsRepo)(nil)

// ── Users ─────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) add(name, role string) *model.User {
	u := &model.User{ID: uuid.New(), Username: name, Name: name, Role: role, Active: true}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("not found")
	}
	u.Active = false
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("not found")
	}
	u.Active = true
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Attendance ────────────────────────────────────────────────────────────────

type stubAttendanceRepo struct {
	records map[uuid.UUID]*model.AttendanceRecord
}

func newStubAttendanceRepo() *stubAttendanceRepo {
	return &stubAttendanceRepo{records: make(map[uuid.UUID]*model.AttendanceRecord)}
}

func (r *stubAttendanceRepo) Create(_ context.Context, a *model.AttendanceRecord) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.records[a.ID] = a
	return nil
}

func (r *stubAttendanceRepo) Update(_ context.Context, a *model.AttendanceRecord) error {
	r.records[a.ID] = a
	return nil
}

func (r *stubAttendanceRepo) FindByUserAndDate(_ context.Context, userID uuid.UUID, date string) (*model.AttendanceRecord, error) {
	for _, a := range r.records {
		if a.UserID == userID && a.BusinessDate == date {
			return a, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubAttendanceRepo) ListByDate(_ context.Context, date string) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for _, a := range r.records {
		if a.BusinessDate == date {
			out = append(out, *a)
		}
	}
	return out, nil
}

var _ repository.AttendanceRepository = (*stubAttendanceRepo)(nil)

// ── Backup ────────────────────────────────────────────────────────────────────

// stubBackupRepo records which collections Replace*Tx touched, so tests can
// assert all-or-nothing restore behavior.
type stubBackupRepo struct {
	records  map[uuid.UUID]*model.BackupRecord
	replaced []string
	failOn   string // collection name whose Replace*Tx should fail
}

func newStubBackupRepo() *stubBackupRepo {
	return &stubBackupRepo{records: make(map[uuid.UUID]*model.BackupRecord)}
}

func (r *stubBackupRepo) CreateRecord(_ context.Context, b *model.BackupRecord) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now()
	r.records[b.ID] = b
	return nil
}

func (r *stubBackupRepo) UpdateRecord(_ context.Context, b *model.BackupRecord) error {
	r.records[b.ID] = b
	return nil
}

func (r *stubBackupRepo) FindRecordByID(_ context.Context, id uuid.UUID) (*model.BackupRecord, error) {
	b, ok := r.records[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func (r *stubBackupRepo) ListRecords(_ context.Context) ([]model.BackupRecord, error) {
	var out []model.BackupRecord
	for _, b := range r.records {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBackupRepo) FindPendingRetries(_ context.Context, now time.Time, _ int) ([]model.BackupRecord, error) {
	var out []model.BackupRecord
	for _, b := range r.records {
		if b.Status == model.BackupStatusLocal && b.NextRetryAt != nil && !b.NextRetryAt.After(now) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBackupRepo) replace(name string) error {
	if r.failOn == name {
		return errors.New(name + " replace failed")
	}
	r.replaced = append(r.replaced, name)
	return nil
}

func (r *stubBackupRepo) ReplaceOrdersTx(_ *gorm.DB, _ []model.Order) error {
	return r.replace("orders")
}

func (r *stubBackupRepo) ReplaceMenuItemsTx(_ *gorm.DB, _ []model.MenuItem) error {
	return r.replace("menu_items")
}

func (r *stubBackupRepo) ReplaceInventoryTx(_ *gorm.DB, _ []model.InventoryItem) error {
	return r.replace("inventory_items")
}

func (r *stubBackupRepo) ReplaceExpensesTx(_ *gorm.DB, _ []model.Expense) error {
	return r.replace("expenses")
}

func (r *stubBackupRepo) ReplaceSettingsTx(_ *gorm.DB, _ *model.Settings) error {
	return r.replace("settings")
}

func (r *stubBackupRepo) ReplaceProfileTx(_ *gorm.DB, _ *model.BusinessProfile) error {
	return r.replace("profile")
}

func (r *stubBackupRepo) DB() *gorm.DB { return nil }

var _ repository.BackupRepository = (*stubBackupRepo)(nil)
