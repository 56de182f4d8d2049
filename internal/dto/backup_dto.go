package dto

import "encoding/json"

// BackupFormatVersion is bumped whenever Document's shape changes. Import
// rejects documents with a newer version than it understands.
const BackupFormatVersion = 1

// Backup envelope encodings.
const (
	EncodingRaw  = "raw"
	EncodingGzip = "gzip"
)

// BackupMetadata identifies when and by which format a backup was produced.
type BackupMetadata struct {
	Timestamp string `json:"timestamp"` // RFC 3339
	Version   int    `json:"version"`
}

// BackupDocument is the full local data set as one JSON object. Collections
// are raw JSON so export/import round-trips bytes without re-interpreting
// every entity; a nil collection means "absent" and restore leaves the
// existing data for that collection untouched (merge-by-presence).
type BackupDocument struct {
	Metadata       BackupMetadata  `json:"metadata"`
	Orders         json.RawMessage `json:"orders,omitempty"`
	MenuItems      json.RawMessage `json:"menu_items,omitempty"`
	InventoryItems json.RawMessage `json:"inventory_items,omitempty"`
	Expenses       json.RawMessage `json:"expenses,omitempty"`
	Settings       json.RawMessage `json:"settings,omitempty"`
	Profile        json.RawMessage `json:"profile,omitempty"`
}

// BackupEnvelope is the explicit tagged wrapper written to disk / the drive.
// Encoding "raw": Payload is the document itself. Encoding "gzip": Payload is
// a base64 string of the gzipped document. The tag replaces format sniffing.
type BackupEnvelope struct {
	Encoding string          `json:"encoding"`
	Payload  json.RawMessage `json:"payload"`
}

type ExportRequest struct {
	// Compress selects the gzip envelope; default is raw.
	Compress bool `json:"compress"`
	// Upload enqueues a cloud-drive upload job after the export.
	Upload bool `json:"upload"`
}

type ImportRequest struct {
	// Data is the full envelope JSON as exported.
	Data json.RawMessage `json:"data" validate:"required"`
}

type BackupRecordResponse struct {
	ID        string  `json:"id"`
	FileName  string  `json:"file_name"`
	SizeBytes int64   `json:"size_bytes"`
	Encoding  string  `json:"encoding"`
	Status    string  `json:"status"`
	RemoteID  *string `json:"remote_id,omitempty"`
	LastError *string `json:"last_error,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type ImportResponse struct {
	// Restored lists the collections that were overwritten, in apply order.
	Restored []string `json:"restored"`
}
