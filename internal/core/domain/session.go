package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already exists")
	ErrAdminImmutable     = errors.New("cannot disable admin account")
	ErrInvalidScanner     = errors.New("invalid scanner user")
	ErrSessionNotFound    = errors.New("session not found")
	ErrNotAssigned        = errors.New("session not assigned to you")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrScanForbidden deliberately conflates "missing", "not assigned" and
	// "closed" so a scanner cannot probe which condition failed.
	ErrScanForbidden = errors.New("session not found, not assigned to you, or closed")

	ErrAlreadyScanned = errors.New("already scanned")
)

// Session is a roll-call event an admin opens for scanning. Its only
// lifecycle transition is the is_open toggle: Open -> Closed -> Open.
// Scans are accepted only while open.
type Session struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Notes             string    `json:"notes,omitempty"`
	CreatedBy         string    `json:"created_by"`
	CreatedByUsername string    `json:"created_by_username,omitempty"`
	IsOpen            bool      `json:"is_open"`
	CreatedAt         time.Time `json:"created_at"`
}

// Assignment grants one scanner the right to record scans in one session.
// At most one row exists per (session, scanner) pair.
type Assignment struct {
	SessionID     string `json:"session_id,omitempty"`
	ScannerUserID string `json:"scanner_user_id"`
	Username      string `json:"username"`
}

// Scan is one recorded observation of a student number within a session,
// attributed to the scanner who recorded it. At most one scan exists per
// (session, student number) pair.
type Scan struct {
	ID                   string    `json:"id"`
	SessionID            string    `json:"session_id"`
	ScannedStudentNumber string    `json:"scanned_student_number"`
	ScannedByUserID      string    `json:"scanned_by_user_id"`
	ScannedByUsername    string    `json:"scanned_by_username,omitempty"`
	ScannedAt            time.Time `json:"scanned_at"`
}
