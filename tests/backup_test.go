package tests

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"foodcart360/internal/dto"
	"foodcart360/internal/model"
	"foodcart360/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBackupSvc(t *testing.T) (service.BackupService, *stubBackupRepo) {
	t.Helper()
	repo := newStubBackupRepo()
	svc := service.NewBackupService(
		repo,
		newStubOrderRepo(),
		newStubMenuRepo(),
		newStubInventoryRepo(),
		newStubExpenseRepo(),
		newStubSettingsRepo(),
		nil, // no dispatcher: uploads are not exercised here
		t.TempDir(),
	)
	return svc, repo
}

func sampleDocument(t *testing.T) *dto.BackupDocument {
	t.Helper()
	menu := []model.MenuItem{
		{Name: "Vada Pav", Price: decimal.NewFromInt(25), Category: "Snacks", Stock: 40, Active: true},
	}
	raw, err := json.Marshal(menu)
	require.NoError(t, err)
	return &dto.BackupDocument{
		Metadata:  dto.BackupMetadata{Timestamp: "2026-08-30T10:00:00Z", Version: dto.BackupFormatVersion},
		MenuItems: raw,
	}
}

func TestBackupCodecRawRoundTrip(t *testing.T) {
	doc := sampleDocument(t)

	data, err := service.EncodeBackup(doc, false)
	require.NoError(t, err)

	var envelope dto.BackupEnvelope
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Equal(t, dto.EncodingRaw, envelope.Encoding)

	got, err := service.DecodeBackup(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Metadata, got.Metadata)
	assert.JSONEq(t, string(doc.MenuItems), string(got.MenuItems))
	assert.Nil(t, got.Orders, "absent collections stay absent through the codec")
}

func TestBackupCodecGzipRoundTrip(t *testing.T) {
	doc := sampleDocument(t)

	data, err := service.EncodeBackup(doc, true)
	require.NoError(t, err)

	var envelope dto.BackupEnvelope
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Equal(t, dto.EncodingGzip, envelope.Encoding)
	var b64 string
	require.NoError(t, json.Unmarshal(envelope.Payload, &b64), "gzip payload must be a base64 JSON string")

	got, err := service.DecodeBackup(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Metadata, got.Metadata)
	assert.JSONEq(t, string(doc.MenuItems), string(got.MenuItems))
}

func TestBackupCodecRejectsUnknownEncoding(t *testing.T) {
	_, err := service.DecodeBackup([]byte(`{"encoding":"zstd","payload":{}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown encoding")
}

func TestBackupCodecRejectsNewerVersion(t *testing.T) {
	doc := sampleDocument(t)
	doc.Metadata.Version = dto.BackupFormatVersion + 1

	data, err := service.EncodeBackup(doc, false)
	require.NoError(t, err)

	_, err = service.DecodeBackup(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")
}

func TestImportMergeByPresence(t *testing.T) {
	svc, repo := buildBackupSvc(t)

	data, err := service.EncodeBackup(sampleDocument(t), false)
	require.NoError(t, err)

	resp, err := svc.Import(context.Background(), data)
	require.NoError(t, err)

	// Only the menu collection may be overwritten; the rest was absent.
	assert.Equal(t, []string{"menu_items"}, resp.Restored)
	assert.Equal(t, []string{"menu_items"}, repo.replaced)
}

func TestImportMalformedCollectionAppliesNothing(t *testing.T) {
	svc, repo := buildBackupSvc(t)

	doc := sampleDocument(t)
	doc.Expenses = json.RawMessage(`[{"amount": "not-a-number"}]`)
	data, err := service.EncodeBackup(doc, false)
	require.NoError(t, err)

	_, err = svc.Import(context.Background(), data)
	require.Error(t, err)
	// Decoding fails before the transaction starts, so not even the valid
	// menu collection may be applied.
	assert.Empty(t, repo.replaced)
}

func TestImportReplaceFailureRollsBack(t *testing.T) {
	svc, repo := buildBackupSvc(t)
	repo.failOn = "orders"

	doc := sampleDocument(t)
	doc.Orders = json.RawMessage(`[]`)
	data, err := service.EncodeBackup(doc, false)
	require.NoError(t, err)

	_, err = svc.Import(context.Background(), data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing applied")
}

func TestImportRejectsGarbage(t *testing.T) {
	svc, _ := buildBackupSvc(t)

	_, err := svc.Import(context.Background(), nil)
	assert.Error(t, err)

	_, err = svc.Import(context.Background(), json.RawMessage(`{{not json`))
	assert.Error(t, err)
}

func TestExportWritesFileAndRecord(t *testing.T) {
	repo := newStubBackupRepo()
	dir := t.TempDir()
	svc := service.NewBackupService(
		repo,
		newStubOrderRepo(),
		newStubMenuRepo(),
		newStubInventoryRepo(),
		newStubExpenseRepo(),
		newStubSettingsRepo(),
		nil,
		dir,
	)

	resp, err := svc.Export(context.Background(), dto.ExportRequest{Compress: true})
	require.NoError(t, err)

	assert.Equal(t, dto.EncodingGzip, resp.Encoding)
	assert.Equal(t, model.BackupStatusLocal, resp.Status)
	assert.Greater(t, resp.SizeBytes, int64(0))

	data, err := os.ReadFile(filepath.Join(dir, resp.FileName))
	require.NoError(t, err)
	doc, err := service.DecodeBackup(data)
	require.NoError(t, err)
	assert.Equal(t, dto.BackupFormatVersion, doc.Metadata.Version)
	require.Len(t, repo.records, 1)
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	svc := service.NewBackupService(
		newStubBackupRepo(),
		newStubOrderRepo(),
		newStubMenuRepo(),
		newStubInventoryRepo(),
		newStubExpenseRepo(),
		newStubSettingsRepo(),
		nil,
		dir,
	)

	resp, err := svc.Export(context.Background(), dto.ExportRequest{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, resp.FileName))
	require.NoError(t, err)

	imported, err := svc.Import(context.Background(), data)
	require.NoError(t, err)
	// Export always writes every collection, so every collection restores.
	assert.ElementsMatch(t,
		[]string{"menu_items", "orders", "inventory_items", "expenses", "settings", "profile"},
		imported.Restored)
}
