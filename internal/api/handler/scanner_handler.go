package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rollcall/attendance-system/internal/core/domain"
	"github.com/rollcall/attendance-system/internal/core/ports"
)

// ScannerHandler handles the scanner-facing surface: assigned sessions, scan
// recording, and the per-session scan listing.
type ScannerHandler struct {
	scans ports.ScanService
}

func NewScannerHandler(scans ports.ScanService) *ScannerHandler {
	return &ScannerHandler{scans: scans}
}

// Sessions lists the open sessions assigned to the caller.
//
// @Summary      List assigned open sessions
// @Tags         scanner
// @Produce      json
// @Success      200  {object}  sessionsResponse
// @Failure      401  {object}  errorResponse
// @Router       /scanner/sessions [get]
func (h *ScannerHandler) Sessions(c echo.Context) error {
	scanner, err := caller(c)
	if err != nil {
		return err
	}

	sessions, err := h.scans.ListOpenAssigned(c.Request().Context(), scanner.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionsResponse{Sessions: sessions})
}

// Scan records one student-number scan against an open assigned session.
// A repeated student number on the same session answers 409 with
// scanned=true so the client can show "already scanned" without treating
// it as a hard failure.
//
// @Summary      Record a scan
// @Tags         scanner
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Session id"
// @Param        body  body      recordScanRequest  true  "Scanned student number"
// @Success      200   {object}  scanResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /scanner/sessions/{id}/scan [post]
func (h *ScannerHandler) Scan(c echo.Context) error {
	var req recordScanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	scanner, err := caller(c)
	if err != nil {
		return err
	}

	created, err := h.scans.Record(c.Request().Context(), scanner.ID, c.Param("id"), req.ScannedStudentNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyScanned) {
			scanned := true
			return c.JSON(http.StatusConflict, errorResponse{Error: "Already scanned", Scanned: &scanned})
		}
		return err
	}

	return c.JSON(http.StatusOK, scanResponse{Scan: *created, Scanned: false})
}

// Scans lists a session's scans for an assigned scanner, newest-first,
// capped at the scanner listing limit.
//
// @Summary      List scans of an assigned session
// @Tags         scanner
// @Produce      json
// @Param        id  path  string  true  "Session id"
// @Success      200  {object}  scansResponse
// @Failure      403  {object}  errorResponse
// @Router       /scanner/sessions/{id}/scans [get]
func (h *ScannerHandler) Scans(c echo.Context) error {
	scanner, err := caller(c)
	if err != nil {
		return err
	}

	scans, err := h.scans.ListForScanner(c.Request().Context(), scanner.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scansResponse{Scans: scans})
}
