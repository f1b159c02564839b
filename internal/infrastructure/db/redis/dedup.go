package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// ScanDedup is the advisory duplicate fast path for scan recording.
// Key format: scan:<session_id>:<student_number>. The Postgres unique
// constraint stays authoritative; this only spares the store an insert
// attempt for repeat submissions.
type ScanDedup struct {
	client *redis.Client
}

// NewScanDedup creates a ScanDedup wrapping the given Redis client.
func NewScanDedup(client *redis.Client) *ScanDedup {
	return &ScanDedup{client: client}
}

// IsDuplicate reports whether this (session, student number) pair has
// already been recorded.
func (d *ScanDedup) IsDuplicate(ctx context.Context, sessionID, studentNumber string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(sessionID, studentNumber)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this pair has been persisted (expires after dedupTTL).
func (d *ScanDedup) Mark(ctx context.Context, sessionID, studentNumber string) error {
	return d.client.Set(ctx, d.key(sessionID, studentNumber), "1", dedupTTL).Err()
}

func (d *ScanDedup) key(sessionID, studentNumber string) string {
	return fmt.Sprintf("scan:%s:%s", sessionID, studentNumber)
}
