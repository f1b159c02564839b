package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rollcall/attendance-system/internal/core/ports"
)

// AdminSessionsHandler handles the admin-side session lifecycle: creation,
// the open/closed toggle, scanner assignment, scan listing, and CSV export.
type AdminSessionsHandler struct {
	sessions ports.SessionService
	scans    ports.ScanService
}

func NewAdminSessionsHandler(sessions ports.SessionService, scans ports.ScanService) *AdminSessionsHandler {
	return &AdminSessionsHandler{sessions: sessions, scans: scans}
}

// List returns all sessions, newest-first.
//
// @Summary      List sessions
// @Tags         admin
// @Produce      json
// @Success      200  {object}  sessionsResponse
// @Router       /admin/sessions [get]
func (h *AdminSessionsHandler) List(c echo.Context) error {
	sessions, err := h.sessions.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionsResponse{Sessions: sessions})
}

// Create opens a new scan session.
//
// @Summary      Create a session
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createSessionRequest  true  "Session details"
// @Success      201   {object}  domain.Session
// @Failure      400   {object}  errorResponse
// @Router       /admin/sessions [post]
func (h *AdminSessionsHandler) Create(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := caller(c)
	if err != nil {
		return err
	}

	created, err := h.sessions.Create(c.Request().Context(), admin.ID, req.Title, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update toggles the is_open flag when provided; without it the current
// session is returned unchanged.
//
// @Summary      Toggle a session open or closed
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Session id"
// @Param        body  body      updateSessionRequest  true  "Fields to update"
// @Success      200   {object}  domain.Session
// @Failure      404   {object}  errorResponse
// @Router       /admin/sessions/{id} [patch]
func (h *AdminSessionsHandler) Update(c echo.Context) error {
	var req updateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	admin, err := caller(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	sessionID := c.Param("id")

	if req.IsOpen == nil {
		session, err := h.sessions.Get(ctx, sessionID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, session)
	}

	updated, err := h.sessions.SetOpen(ctx, admin.ID, sessionID, *req.IsOpen)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Assign grants a scanner access to a session. Assigning an already
// assigned scanner succeeds.
//
// @Summary      Assign a scanner to a session
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Session id"
// @Param        body  body      assignScannerRequest  true  "Scanner to assign"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/sessions/{id}/assign [post]
func (h *AdminSessionsHandler) Assign(c echo.Context) error {
	var req assignScannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.sessions.AssignScanner(c.Request().Context(), admin.ID, c.Param("id"), req.ScannerUserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Scanner assigned"})
}

// Unassign revokes a scanner's access. Removing a non-existent assignment
// is not an error.
//
// @Summary      Unassign a scanner from a session
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Session id"
// @Param        body  body      assignScannerRequest  true  "Scanner to unassign"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/sessions/{id}/assign [delete]
func (h *AdminSessionsHandler) Unassign(c echo.Context) error {
	var req assignScannerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := caller(c)
	if err != nil {
		return err
	}

	if err := h.sessions.UnassignScanner(c.Request().Context(), admin.ID, c.Param("id"), req.ScannerUserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Scanner unassigned"})
}

// Assignments lists the scanners currently assigned to a session.
//
// @Summary      List session assignments
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "Session id"
// @Success      200  {object}  assignmentsResponse
// @Router       /admin/sessions/{id}/assignments [get]
func (h *AdminSessionsHandler) Assignments(c echo.Context) error {
	assignments, err := h.sessions.ListAssignments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assignmentsResponse{Assignments: assignments})
}

// Scans lists all scans of a session, newest-first.
//
// @Summary      List session scans
// @Tags         admin
// @Produce      json
// @Param        id  path  string  true  "Session id"
// @Success      200  {object}  scansResponse
// @Router       /admin/sessions/{id}/scans [get]
func (h *AdminSessionsHandler) Scans(c echo.Context) error {
	scans, err := h.scans.ListForAdmin(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scansResponse{Scans: scans})
}

// ExportCSV downloads a session's scans as a CSV attachment.
//
// @Summary      Export session scans as CSV
// @Tags         admin
// @Produce      text/csv
// @Param        id  path  string  true  "Session id"
// @Success      200  {string}  string
// @Router       /admin/sessions/{id}/export.csv [get]
func (h *AdminSessionsHandler) ExportCSV(c echo.Context) error {
	sessionID := c.Param("id")
	csv, err := h.scans.Export(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="session-%s-scans.csv"`, sessionID))
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}
