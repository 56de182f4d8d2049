//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - Full order cycle (login → menu item → checkout → status → list)
//   - Premium gating (402 before trial, access after starting it)
//   - Backup export / import round-trip over the API
//   - Attendance check-in / check-out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodcart360/internal/config"
	"foodcart360/internal/infra"
	"foodcart360/internal/model"
	"foodcart360/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // owner JWT
	engine *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("foodcart360_test"),
		tcPostgres.WithUsername("foodcart"),
		tcPostgres.WithPassword("foodcart"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		TaxRatePct:         "5",
		TrialDays:          7,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
		BackupDir:          t.TempDir(),
		DriveBaseURL:       "http://localhost:9999", // unused in these tests
		BillingBaseURL:     "http://localhost:9998", // unused in these tests
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	require.NoError(t, infra.RunMigrations(db))

	// Seed the owner account
	hash, err := bcrypt.GenerateFromPassword([]byte("foodcart2026"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{
		Username:     "owner",
		Name:         "Owner E2E",
		PasswordHash: string(hash),
		Role:         "owner",
		Active:       true,
	}).Error)

	driveCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	r := router.New(cfg, db, rdb, driveCB)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "owner", "password": "foodcart2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{
		server: srv,
		token:  loginBody.AccessToken,
		engine: r,
	}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullOrderCycle(t *testing.T) {
	env := setupTestEnv(t)

	// Fresh install: the settings row is seeded from TAX_RATE_PCT
	settingsResp := do(t, env.server, "GET", "/v1/settings", nil, env.token)
	require.Equal(t, http.StatusOK, settingsResp.StatusCode)
	var settings struct {
		TaxRatePct string `json:"tax_rate_pct"`
	}
	decodeJSON(t, settingsResp, &settings)
	require.Equal(t, "5", settings.TaxRatePct)

	// 1. Create a menu item
	menuResp := do(t, env.server, "POST", "/v1/menu",
		jsonBody(t, map[string]any{
			"name":     "Vada Pav",
			"price":    "25",
			"category": "Snacks",
			"stock":    20,
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, menuResp.StatusCode)
	var item struct {
		ID string `json:"id"`
	}
	decodeJSON(t, menuResp, &item)

	// 2. Checkout
	orderResp := do(t, env.server, "POST", "/v1/orders",
		jsonBody(t, map[string]any{
			"items":          []map[string]any{{"menu_item_id": item.ID, "quantity": 4}},
			"payment_method": "cash",
			"order_type":     "takeaway",
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, orderResp.StatusCode)
	var order struct {
		ID          string `json:"id"`
		TokenNumber int    `json:"token_number"`
		Status      string `json:"status"`
		Subtotal    string `json:"subtotal"`
		Total       string `json:"total"`
	}
	decodeJSON(t, orderResp, &order)
	assert.Equal(t, 1, order.TokenNumber)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "100", order.Subtotal)
	assert.Equal(t, "105", order.Total) // 5% tax

	// 3. Move through the lifecycle
	for _, status := range []string{"preparing", "completed"} {
		resp := do(t, env.server, "PATCH", "/v1/orders/"+order.ID+"/status",
			jsonBody(t, map[string]string{"status": status}), env.token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	// Completed is terminal
	badResp := do(t, env.server, "PATCH", "/v1/orders/"+order.ID+"/status",
		jsonBody(t, map[string]string{"status": "cancelled"}), env.token)
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
	badResp.Body.Close()

	// 4. Today's list includes the order
	listResp := do(t, env.server, "GET",
		fmt.Sprintf("/v1/orders?date=%s", time.Now().Format("2006-01-02")), nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	assert.Equal(t, int64(1), list.Total)
}

func TestE2E_PremiumGateAndTrial(t *testing.T) {
	env := setupTestEnv(t)
	today := time.Now().Format("2006-01-02")

	// Reports are premium: blocked before any trial
	blocked := do(t, env.server, "GET", "/v1/reports/daily?date="+today, nil, env.token)
	require.Equal(t, http.StatusPaymentRequired, blocked.StatusCode)
	var upsell struct {
		Upgrade string `json:"upgrade"`
	}
	decodeJSON(t, blocked, &upsell)
	assert.NotEmpty(t, upsell.Upgrade)

	// Start the trial
	trialResp := do(t, env.server, "POST", "/v1/subscription/trial", nil, env.token)
	require.Equal(t, http.StatusCreated, trialResp.StatusCode)
	var status struct {
		State         string `json:"state"`
		PremiumAccess bool   `json:"premium_access"`
	}
	decodeJSON(t, trialResp, &status)
	assert.Equal(t, "trial_active", status.State)
	assert.True(t, status.PremiumAccess)

	// Second start is rejected
	again := do(t, env.server, "POST", "/v1/subscription/trial", nil, env.token)
	assert.Equal(t, http.StatusConflict, again.StatusCode)
	again.Body.Close()

	// Reports now resolve
	allowed := do(t, env.server, "GET", "/v1/reports/daily?date="+today, nil, env.token)
	require.Equal(t, http.StatusOK, allowed.StatusCode)
	var summary struct {
		Date       string `json:"date"`
		OrderCount int    `json:"order_count"`
	}
	decodeJSON(t, allowed, &summary)
	assert.Equal(t, today, summary.Date)
}

func TestE2E_BackupExportImportRoundTrip(t *testing.T) {
	env := setupTestEnv(t)

	// Backups are premium too
	trialResp := do(t, env.server, "POST", "/v1/subscription/trial", nil, env.token)
	require.Equal(t, http.StatusCreated, trialResp.StatusCode)
	trialResp.Body.Close()

	// Some data to back up
	menuResp := do(t, env.server, "POST", "/v1/menu",
		jsonBody(t, map[string]any{"name": "Chai", "price": "10", "category": "Drinks", "stock": 100}),
		env.token)
	require.Equal(t, http.StatusCreated, menuResp.StatusCode)
	menuResp.Body.Close()

	// Export (compressed, no upload)
	exportResp := do(t, env.server, "POST", "/v1/backup/export",
		jsonBody(t, map[string]any{"compress": true}), env.token)
	require.Equal(t, http.StatusCreated, exportResp.StatusCode)
	var record struct {
		ID       string `json:"id"`
		FileName string `json:"file_name"`
		Encoding string `json:"encoding"`
		Status   string `json:"status"`
	}
	decodeJSON(t, exportResp, &record)
	assert.Equal(t, "gzip", record.Encoding)
	assert.Equal(t, "local", record.Status)

	// Record is listed
	listResp := do(t, env.server, "GET", "/v1/backup", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var records []map[string]any
	decodeJSON(t, listResp, &records)
	require.Len(t, records, 1)

	// Import an envelope produced by another install: one menu item only
	doc := map[string]any{
		"metadata":   map[string]any{"timestamp": time.Now().UTC().Format(time.RFC3339), "version": 1},
		"menu_items": []map[string]any{},
	}
	docRaw, err := json.Marshal(doc)
	require.NoError(t, err)
	envelope := map[string]any{"encoding": "raw", "payload": json.RawMessage(docRaw)}
	envRaw, err := json.Marshal(envelope)
	require.NoError(t, err)

	importResp := do(t, env.server, "POST", "/v1/backup/import",
		jsonBody(t, map[string]any{"data": json.RawMessage(envRaw)}), env.token)
	require.Equal(t, http.StatusOK, importResp.StatusCode)
	var imported struct {
		Restored []string `json:"restored"`
	}
	decodeJSON(t, importResp, &imported)
	assert.Equal(t, []string{"menu_items"}, imported.Restored)

	// The restored (empty) menu replaced the local one
	menuList := do(t, env.server, "GET", "/v1/menu?active=all", nil, env.token)
	require.Equal(t, http.StatusOK, menuList.StatusCode)
	var menu struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, menuList, &menu)
	assert.Equal(t, int64(0), menu.Total)
}

func TestE2E_AttendanceCycle(t *testing.T) {
	env := setupTestEnv(t)

	inResp := do(t, env.server, "POST", "/v1/attendance/checkin", nil, env.token)
	require.Equal(t, http.StatusCreated, inResp.StatusCode)
	inResp.Body.Close()

	// Same-day duplicate is rejected
	dupResp := do(t, env.server, "POST", "/v1/attendance/checkin", nil, env.token)
	assert.Equal(t, http.StatusConflict, dupResp.StatusCode)
	dupResp.Body.Close()

	outResp := do(t, env.server, "POST", "/v1/attendance/checkout", nil, env.token)
	require.Equal(t, http.StatusOK, outResp.StatusCode)
	var out struct {
		CheckOut    *string  `json:"check_out"`
		HoursWorked *float64 `json:"hours_worked"`
	}
	decodeJSON(t, outResp, &out)
	assert.NotNil(t, out.CheckOut)
	assert.NotNil(t, out.HoursWorked)

	listResp := do(t, env.server, "GET", "/v1/attendance", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var day []map[string]any
	decodeJSON(t, listResp, &day)
	assert.Len(t, day, 1)
}
