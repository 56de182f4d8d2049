package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DriveClient is an HTTP client for the cloud-drive sync sidecar. The sidecar
// owns the OAuth dance with the drive provider; this backend only ships bytes.
// Isolating drive failures behind a sidecar keeps backup export fully local —
// an unreachable drive never blocks the export itself.
type DriveClient struct {
	baseURL    string
	folder     string
	httpClient *http.Client
}

func NewDriveClient(baseURL, folder string) *DriveClient {
	return &DriveClient{
		baseURL:    baseURL,
		folder:     folder,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// DriveFile describes one backup stored on the drive.
type DriveFile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
	CreatedAt string `json:"created_at"`
}

type uploadResponse struct {
	ID string `json:"id"`
}

// ListBackups returns the backup files in the configured drive folder.
func (c *DriveClient) ListBackups(ctx context.Context) ([]DriveFile, error) {
	url := fmt.Sprintf("%s/files?folder=%s", c.baseURL, c.folder)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("drive: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drive: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("drive: sidecar returned %d", resp.StatusCode)
	}

	var files []DriveFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, fmt.Errorf("drive: decode response: %w", err)
	}
	return files, nil
}

// UploadBackup pushes one backup document and returns the remote file id.
func (c *DriveClient) UploadBackup(ctx context.Context, name string, data []byte) (string, error) {
	url := fmt.Sprintf("%s/files?folder=%s&name=%s", c.baseURL, c.folder, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("drive: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("drive: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("drive: sidecar returned %d", resp.StatusCode)
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("drive: decode response: %w", err)
	}
	return result.ID, nil
}

// DownloadBackup fetches a backup document by remote id.
func (c *DriveClient) DownloadBackup(ctx context.Context, remoteID string) ([]byte, error) {
	url := fmt.Sprintf("%s/files/%s", c.baseURL, remoteID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("drive: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drive: sidecar unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("drive: sidecar returned %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("drive: read body: %w", err)
	}
	return buf.Bytes(), nil
}
