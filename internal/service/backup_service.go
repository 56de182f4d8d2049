package service

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"foodcart360/internal/dto"
	"foodcart360/internal/model"
	"foodcart360/internal/repository"
	"foodcart360/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// BackupService serializes the full local data set into one JSON document and
// restores it verbatim. Restore is all-or-nothing: a malformed document fails
// the whole import inside one transaction, never a partial overwrite.
type BackupService interface {
	Export(ctx context.Context, req dto.ExportRequest) (*dto.BackupRecordResponse, error)
	Import(ctx context.Context, envelope json.RawMessage) (*dto.ImportResponse, error)
	ListRecords(ctx context.Context) ([]dto.BackupRecordResponse, error)
}

type backupService struct {
	repo          repository.BackupRepository
	orderRepo     repository.OrderRepository
	menuRepo      repository.MenuRepository
	inventoryRepo repository.InventoryRepository
	expenseRepo   repository.ExpenseRepository
	settingsRepo  repository.SettingsRepository
	dispatcher    *worker.Dispatcher
	backupDir     string
	now           func() time.Time
}

func NewBackupService(
	repo repository.BackupRepository,
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	inventoryRepo repository.InventoryRepository,
	expenseRepo repository.ExpenseRepository,
	settingsRepo repository.SettingsRepository,
	dispatcher *worker.Dispatcher,
	backupDir string,
) BackupService {
	return &backupService{
		repo:          repo,
		orderRepo:     orderRepo,
		menuRepo:      menuRepo,
		inventoryRepo: inventoryRepo,
		expenseRepo:   expenseRepo,
		settingsRepo:  settingsRepo,
		dispatcher:    dispatcher,
		backupDir:     backupDir,
		now:           time.Now,
	}
}

// ── Codec ─────────────────────────────────────────────────────────────────────
// The envelope carries an explicit encoding tag instead of the old
// "try to parse, fall back to decompress" sniffing.

// EncodeBackup wraps a document in a tagged envelope. With gzip the payload is
// a base64 JSON string of the compressed document.
func EncodeBackup(doc *dto.BackupDocument, compress bool) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("backup: marshal document: %w", err)
	}

	envelope := dto.BackupEnvelope{Encoding: dto.EncodingRaw, Payload: raw}
	if compress {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return nil, fmt.Errorf("backup: gzip: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("backup: gzip close: %w", err)
		}
		encoded, err := json.Marshal(base64.StdEncoding.EncodeToString(buf.Bytes()))
		if err != nil {
			return nil, err
		}
		envelope = dto.BackupEnvelope{Encoding: dto.EncodingGzip, Payload: encoded}
	}

	return json.Marshal(envelope)
}

// DecodeBackup unwraps a tagged envelope back into a document.
func DecodeBackup(data []byte) (*dto.BackupDocument, error) {
	var envelope dto.BackupEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("backup: invalid envelope: %w", err)
	}

	var raw []byte
	switch envelope.Encoding {
	case dto.EncodingRaw:
		raw = envelope.Payload
	case dto.EncodingGzip:
		var b64 string
		if err := json.Unmarshal(envelope.Payload, &b64); err != nil {
			return nil, fmt.Errorf("backup: gzip payload must be a base64 string: %w", err)
		}
		compressed, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("backup: invalid base64 payload: %w", err)
		}
		zr, err := gzip.NewReader(bytes.NewReader(compressed))
		if err != nil {
			return nil, fmt.Errorf("backup: invalid gzip payload: %w", err)
		}
		defer zr.Close()
		raw, err = io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("backup: decompress: %w", err)
		}
	default:
		return nil, fmt.Errorf("backup: unknown encoding %q", envelope.Encoding)
	}

	var doc dto.BackupDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("backup: invalid document: %w", err)
	}
	if doc.Metadata.Version > dto.BackupFormatVersion {
		return nil, fmt.Errorf("backup: format version %d is newer than supported %d",
			doc.Metadata.Version, dto.BackupFormatVersion)
	}
	return &doc, nil
}

// ── Export ────────────────────────────────────────────────────────────────────

func (s *backupService) buildDocument(ctx context.Context) (*dto.BackupDocument, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: read orders: %w", err)
	}
	menuItems, _, err := s.menuRepo.List(ctx, dto.MenuFilter{Active: "all", Page: 1, Limit: 100000})
	if err != nil {
		return nil, fmt.Errorf("backup: read menu: %w", err)
	}
	inventory, err := s.inventoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: read inventory: %w", err)
	}
	expenses, err := s.expenseRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: read expenses: %w", err)
	}
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: read settings: %w", err)
	}
	profile, err := s.settingsRepo.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup: read profile: %w", err)
	}

	doc := &dto.BackupDocument{
		Metadata: dto.BackupMetadata{
			Timestamp: s.now().UTC().Format(time.RFC3339),
			Version:   dto.BackupFormatVersion,
		},
	}
	if doc.Orders, err = json.Marshal(orders); err != nil {
		return nil, err
	}
	if doc.MenuItems, err = json.Marshal(menuItems); err != nil {
		return nil, err
	}
	if doc.InventoryItems, err = json.Marshal(inventory); err != nil {
		return nil, err
	}
	if doc.Expenses, err = json.Marshal(expenses); err != nil {
		return nil, err
	}
	if doc.Settings, err = json.Marshal(settings); err != nil {
		return nil, err
	}
	if doc.Profile, err = json.Marshal(profile); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *backupService) Export(ctx context.Context, req dto.ExportRequest) (*dto.BackupRecordResponse, error) {
	doc, err := s.buildDocument(ctx)
	if err != nil {
		return nil, err
	}

	data, err := EncodeBackup(doc, req.Compress)
	if err != nil {
		return nil, err
	}

	encoding := dto.EncodingRaw
	if req.Compress {
		encoding = dto.EncodingGzip
	}

	fileName := fmt.Sprintf("foodcart360_backup_%s.json", s.now().Format("20060102_150405"))
	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return nil, fmt.Errorf("backup: create dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.backupDir, fileName), data, 0644); err != nil {
		return nil, fmt.Errorf("backup: write file: %w", err)
	}

	record := &model.BackupRecord{
		FileName:  fileName,
		SizeBytes: int64(len(data)),
		Encoding:  encoding,
		Status:    model.BackupStatusLocal,
	}
	if err := s.repo.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	// Cloud upload is best-effort and asynchronous — the export itself is
	// already safe on local disk.
	if req.Upload && s.dispatcher != nil {
		if err := s.dispatcher.EnqueueBackupUpload(ctx, worker.BackupUploadPayload{RecordID: record.ID.String()}); err != nil {
			log.Warn().Err(err).Str("record_id", record.ID.String()).Msg("backup: enqueue upload failed")
		}
	}

	return recordToResponse(record), nil
}

// ── Import ────────────────────────────────────────────────────────────────────

// Import applies a backup document inside one transaction. Present collections
// overwrite local data; absent collections are left untouched
// (merge-by-presence). Any decode or apply error rolls everything back.
func (s *backupService) Import(ctx context.Context, envelope json.RawMessage) (*dto.ImportResponse, error) {
	if len(envelope) == 0 {
		return nil, errors.New("backup: empty document")
	}
	doc, err := DecodeBackup(envelope)
	if err != nil {
		return nil, err
	}

	// Decode every present collection BEFORE touching the DB so a malformed
	// field can never leave a half-applied restore.
	var (
		orders    []model.Order
		menuItems []model.MenuItem
		inventory []model.InventoryItem
		expenses  []model.Expense
		settings  *model.Settings
		profile   *model.BusinessProfile
	)
	if doc.Orders != nil {
		if err := json.Unmarshal(doc.Orders, &orders); err != nil {
			return nil, fmt.Errorf("backup: invalid orders collection: %w", err)
		}
	}
	if doc.MenuItems != nil {
		if err := json.Unmarshal(doc.MenuItems, &menuItems); err != nil {
			return nil, fmt.Errorf("backup: invalid menu_items collection: %w", err)
		}
	}
	if doc.InventoryItems != nil {
		if err := json.Unmarshal(doc.InventoryItems, &inventory); err != nil {
			return nil, fmt.Errorf("backup: invalid inventory_items collection: %w", err)
		}
	}
	if doc.Expenses != nil {
		if err := json.Unmarshal(doc.Expenses, &expenses); err != nil {
			return nil, fmt.Errorf("backup: invalid expenses collection: %w", err)
		}
	}
	if doc.Settings != nil {
		settings = &model.Settings{}
		if err := json.Unmarshal(doc.Settings, settings); err != nil {
			return nil, fmt.Errorf("backup: invalid settings: %w", err)
		}
	}
	if doc.Profile != nil {
		profile = &model.BusinessProfile{}
		if err := json.Unmarshal(doc.Profile, profile); err != nil {
			return nil, fmt.Errorf("backup: invalid profile: %w", err)
		}
	}

	restored := []string{}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if doc.MenuItems != nil {
			if err := s.repo.ReplaceMenuItemsTx(tx, menuItems); err != nil {
				return err
			}
			restored = append(restored, "menu_items")
		}
		if doc.Orders != nil {
			if err := s.repo.ReplaceOrdersTx(tx, orders); err != nil {
				return err
			}
			restored = append(restored, "orders")
		}
		if doc.InventoryItems != nil {
			if err := s.repo.ReplaceInventoryTx(tx, inventory); err != nil {
				return err
			}
			restored = append(restored, "inventory_items")
		}
		if doc.Expenses != nil {
			if err := s.repo.ReplaceExpensesTx(tx, expenses); err != nil {
				return err
			}
			restored = append(restored, "expenses")
		}
		if settings != nil {
			if err := s.repo.ReplaceSettingsTx(tx, settings); err != nil {
				return err
			}
			restored = append(restored, "settings")
		}
		if profile != nil {
			if err := s.repo.ReplaceProfileTx(tx, profile); err != nil {
				return err
			}
			restored = append(restored, "profile")
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("backup: restore failed, nothing applied: %w", txErr)
	}

	log.Info().Strs("restored", restored).Msg("backup: restore applied")
	return &dto.ImportResponse{Restored: restored}, nil
}

func (s *backupService) ListRecords(ctx context.Context) ([]dto.BackupRecordResponse, error) {
	records, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BackupRecordResponse, 0, len(records))
	for i := range records {
		resp = append(resp, *recordToResponse(&records[i]))
	}
	return resp, nil
}

func recordToResponse(b *model.BackupRecord) *dto.BackupRecordResponse {
	return &dto.BackupRecordResponse{
		ID:        b.ID.String(),
		FileName:  b.FileName,
		SizeBytes: b.SizeBytes,
		Encoding:  b.Encoding,
		Status:    b.Status,
		RemoteID:  b.RemoteID,
		LastError: b.LastError,
		CreatedAt: b.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
