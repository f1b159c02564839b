package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/rollcall/attendance-system/internal/api/metrics"
	"github.com/rollcall/attendance-system/internal/core/domain"
	"github.com/rollcall/attendance-system/internal/core/ports"
	"github.com/rollcall/attendance-system/internal/export"
)

// DedupChecker is the advisory duplicate fast path (Redis). It is consulted
// before the insert and marked after; the store's unique constraint remains
// the authority, so any checker failure degrades to a warning.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, sessionID, studentNumber string) (bool, error)
	Mark(ctx context.Context, sessionID, studentNumber string) error
}

// ScanService implements scan recording, listing, and CSV export.
type ScanService struct {
	sessions ports.SessionRepository
	scans    ports.ScanRepository
	dedup    DedupChecker
	audit    ports.AuditTrail
	log      zerolog.Logger
}

func NewScanService(sessions ports.SessionRepository, scans ports.ScanRepository, dedup DedupChecker, audit ports.AuditTrail, log zerolog.Logger) *ScanService {
	return &ScanService{sessions: sessions, scans: scans, dedup: dedup, audit: audit, log: log}
}

func (s *ScanService) Record(ctx context.Context, scannerID, sessionID, studentNumber string) (*domain.Scan, error) {
	if studentNumber == "" {
		return nil, domain.ErrInvalidInput
	}

	// One gate for "exists AND open AND assigned to caller". A miss on any
	// condition yields the same ambiguous forbidden error.
	if _, err := s.sessions.FindOpenAssigned(ctx, sessionID, scannerID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			metrics.ScansRecordedTotal.WithLabelValues("forbidden").Inc()
			return nil, domain.ErrScanForbidden
		}
		return nil, err
	}

	isDup, err := s.dedup.IsDuplicate(ctx, sessionID, studentNumber)
	switch {
	case err != nil:
		metrics.ScanDedupTotal.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("dedup check failed, falling through to store")
	case isDup:
		metrics.ScanDedupTotal.WithLabelValues("hit").Inc()
		metrics.ScansRecordedTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.ErrAlreadyScanned
	default:
		metrics.ScanDedupTotal.WithLabelValues("miss").Inc()
	}

	created, err := s.scans.Insert(ctx, &domain.Scan{
		SessionID:            sessionID,
		ScannedStudentNumber: studentNumber,
		ScannedByUserID:      scannerID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyScanned) {
			metrics.ScansRecordedTotal.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}

	if err := s.dedup.Mark(ctx, sessionID, studentNumber); err != nil {
		s.log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to set dedup key")
	}

	metrics.ScansRecordedTotal.WithLabelValues("recorded").Inc()
	s.audit.Enqueue(domain.AuditEvent{ActorID: scannerID, Action: domain.AuditScanRecorded, Subject: sessionID, Detail: studentNumber})
	s.log.Info().Str("session_id", sessionID).Str("student_number", studentNumber).Msg("scan recorded")

	return created, nil
}

func (s *ScanService) ListForAdmin(ctx context.Context, sessionID string) ([]domain.Scan, error) {
	return s.scans.ListBySession(ctx, sessionID, 0)
}

func (s *ScanService) ListForScanner(ctx context.Context, scannerID, sessionID string) ([]domain.Scan, error) {
	assigned, err := s.sessions.IsAssigned(ctx, sessionID, scannerID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, domain.ErrNotAssigned
	}
	return s.scans.ListBySession(ctx, sessionID, ports.ScannerSessionLimit)
}

func (s *ScanService) ListOpenAssigned(ctx context.Context, scannerID string) ([]domain.Session, error) {
	return s.sessions.ListOpenAssignedTo(ctx, scannerID)
}

func (s *ScanService) Export(ctx context.Context, sessionID string) (string, error) {
	scans, err := s.scans.ListBySession(ctx, sessionID, 0)
	if err != nil {
		return "", err
	}
	return export.ScansCSV(scans), nil
}
