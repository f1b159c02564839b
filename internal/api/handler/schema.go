package handler

import (
	"github.com/rollcall/attendance-system/internal/core/domain"
)

// --- Requests ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
}

type updateUserRequest struct {
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password" validate:"omitempty,min=4"`
}

type createSessionRequest struct {
	Title string `json:"title" validate:"required"`
	Notes string `json:"notes"`
}

type updateSessionRequest struct {
	IsOpen *bool `json:"is_open"`
}

type assignScannerRequest struct {
	ScannerUserID string `json:"scanner_user_id" validate:"required"`
}

type recordScanRequest struct {
	ScannedStudentNumber string `json:"scanned_student_number" validate:"required"`
}

// --- Responses ---

type userResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

type authResponse struct {
	User userResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type usersResponse struct {
	Users []domain.User `json:"users"`
}

type sessionsResponse struct {
	Sessions []domain.Session `json:"sessions"`
}

type assignmentsResponse struct {
	Assignments []domain.Assignment `json:"assignments"`
}

type scansResponse struct {
	Scans []domain.Scan `json:"scans"`
}

// scanResponse carries the created scan plus the scanned flag: false on a
// novel scan, true on the 409 duplicate path.
type scanResponse struct {
	domain.Scan
	Scanned bool `json:"scanned"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Scanned *bool  `json:"scanned,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}
