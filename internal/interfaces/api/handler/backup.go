package handler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"healthlog/internal/application/service"
	"healthlog/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

const maxImportBytes = 64 << 20

// ImportResponse is the JSON body returned by POST /api/import.
type ImportResponse struct {
	OK            bool                  `json:"ok"`
	Message       string                `json:"message"`
	Counts        *service.ImportCounts `json:"counts,omitempty"`
	TotalImported int                   `json:"totalImported"`
}

// BackupHandler serves whole-journal export and import.
type BackupHandler struct {
	backupService service.BackupService
	log           logger.Logger
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backupService service.BackupService, log logger.Logger) *BackupHandler {
	return &BackupHandler{backupService: backupService, log: log}
}

// Export returns the export document as a JSON attachment.
func (h *BackupHandler) Export(c echo.Context) error {
	result := h.backupService.Export(c.Request().Context())
	if !result.OK {
		h.log.Warn(result.Message)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: result.Message})
	}
	name := fmt.Sprintf("healthlog-export-%s.json", time.Now().Format("20060102-150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, result.Data)
}

// Import applies the request body as an export document.
func (h *BackupHandler) Import(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportBytes))
	if err != nil {
		return badRequest(c, "failed to read request body")
	}

	result := h.backupService.Import(c.Request().Context(), body)
	resp := ImportResponse{OK: result.OK(), Message: result.Message()}
	switch r := result.(type) {
	case service.ImportSuccess:
		resp.Counts = &r.Counts
		resp.TotalImported = r.TotalImported
		return c.JSON(http.StatusOK, resp)
	case service.ImportError:
		if r.Reason == service.InvalidDataFormatMessage {
			return c.JSON(http.StatusBadRequest, resp)
		}
		return c.JSON(http.StatusUnprocessableEntity, resp)
	default:
		return c.JSON(http.StatusInternalServerError, resp)
	}
}
