package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const downloadName = "assistant.log"

func (h *Handler) Logs(c echo.Context) error {
	join, err := joinParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, renderLogs(h.logs.Snapshot(), join))
}

// LastLogs returns the newest n buffered lines, or all of them when n exceeds the buffer.
// GET /logs/:n
func (h *Handler) LastLogs(c echo.Context) error {
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "n must be a non-negative integer"})
	}
	join, err := joinParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, renderLogs(h.logs.Last(n), join))
}

func (h *Handler) DownloadLogs(c echo.Context) error {
	info, err := os.Stat(h.config.LogFilePath)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Log file not found."})
	}
	if err != nil {
		h.logger.Error().Err(err).Str("path", h.config.LogFilePath).Msg("stat log file")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Could not read log file."})
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextPlain)
	return c.Attachment(h.config.LogFilePath, downloadName)
}

// ClearLogs empties the in-memory buffer. The log file is left alone.
func (h *Handler) ClearLogs(c echo.Context) error {
	h.logs.Clear()
	return c.JSON(http.StatusOK, map[string]string{"status": "cleared"})
}

func joinParam(c echo.Context) (bool, error) {
	raw := strings.TrimSpace(c.QueryParam("join"))
	if raw == "" {
		return false, nil
	}
	join, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New("join must be a boolean")
	}
	return join, nil
}

func renderLogs(lines []string, join bool) map[string]any {
	if join {
		return map[string]any{"logs": strings.Join(lines, "\n")}
	}
	return map[string]any{"logs": lines}
}
