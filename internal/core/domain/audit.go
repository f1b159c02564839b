package domain

import "time"

// Audit actions recorded by the async audit trail.
const (
	AuditLogin           = "login"
	AuditUserCreated     = "user_created"
	AuditUserUpdated     = "user_updated"
	AuditSessionCreated  = "session_created"
	AuditSessionToggled  = "session_toggled"
	AuditScannerAssigned = "scanner_assigned"
	AuditScannerRemoved  = "scanner_removed"
	AuditScanRecorded    = "scan_recorded"
)

// AuditEvent is an append-only record of a mutating action, written
// asynchronously so it never sits on the request path.
type AuditEvent struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	Action     string    `json:"action"`
	Subject    string    `json:"subject"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
