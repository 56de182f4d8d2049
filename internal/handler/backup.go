package handler

import (
	"net/http"

	"foodcart360/internal/apierror"
	"foodcart360/internal/dto"
	"foodcart360/internal/infra"
	"foodcart360/internal/service"

	"github.com/gin-gonic/gin"
)

type BackupHandler struct {
	svc   service.BackupService
	drive *infra.DriveClient
	cb    *infra.CircuitBreaker
}

func NewBackupHandler(svc service.BackupService, drive *infra.DriveClient, cb *infra.CircuitBreaker) *BackupHandler {
	return &BackupHandler{svc: svc, drive: drive, cb: cb}
}

// Export godoc
// @Summary      Export a full backup
// @Description  Serializes all cart data into one tagged JSON envelope, writes it locally and optionally enqueues a cloud-drive upload.
// @Tags         backup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ExportRequest false "Export options"
// @Success      201  {object} dto.BackupRecordResponse
// @Failure      500  {object} apierror.APIError
// @Router       /v1/backup/export [post]
func (h *BackupHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if c.Request.ContentLength > 0 && !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Export(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Import godoc
// @Summary      Restore from a backup
// @Description  Applies a backup envelope all-or-nothing: present collections overwrite local data, absent collections stay untouched. A malformed document changes nothing.
// @Tags         backup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ImportRequest true "Backup envelope"
// @Success      200  {object} dto.ImportResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/backup/import [post]
func (h *BackupHandler) Import(c *gin.Context) {
	var req dto.ImportRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Import(c.Request.Context(), req.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BackupHandler) ListRecords(c *gin.Context) {
	resp, err := h.svc.ListRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list backups"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListDriveBackups lists backups on the cloud drive, through the circuit
// breaker so a downed sidecar fast-fails.
func (h *BackupHandler) ListDriveBackups(c *gin.Context) {
	var files []infra.DriveFile
	err := h.cb.Execute(func() error {
		var err error
		files, err = h.drive.ListBackups(c.Request.Context())
		return err
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("cloud drive unavailable"))
		return
	}
	c.JSON(http.StatusOK, files)
}

// RestoreFromDrive downloads a backup from the drive and applies it with the
// same all-or-nothing semantics as a local import.
func (h *BackupHandler) RestoreFromDrive(c *gin.Context) {
	remoteID := c.Param("remote_id")
	if remoteID == "" {
		c.JSON(http.StatusBadRequest, apierror.New("missing remote_id"))
		return
	}

	var data []byte
	err := h.cb.Execute(func() error {
		var err error
		data, err = h.drive.DownloadBackup(c.Request.Context(), remoteID)
		return err
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("cloud drive unavailable"))
		return
	}

	resp, err := h.svc.Import(c.Request.Context(), data)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
