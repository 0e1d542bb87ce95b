package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/aldoetobex/mohami-backend/pkg/models"
	"github.com/aldoetobex/mohami-backend/pkg/sanitize"
	"github.com/aldoetobex/mohami-backend/pkg/store"
)

const previewMax = 120

/* =============================== Reports ================================ */

// FileReport opens a moderation ticket. The target's current name,
// title, or message text is snapshotted into the preview at creation
// time, so the report survives later edits or deletion of the target.
// Message previews are PII-redacted. No dedup: the same reporter may
// report the same target any number of times.
func (s *Store) FileReport(ctx context.Context, in store.NewReport) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reporter, err := s.activeUserByID(in.ReporterID)
	if err != nil {
		return nil, err
	}

	preview, err := s.targetPreview(in)
	if err != nil {
		return nil, err
	}

	r := &models.Report{
		ID:            uuid.NewString(),
		ReporterID:    reporter.ID,
		ReporterName:  reporter.FullName,
		Type:          in.Type,
		TargetID:      in.TargetID,
		TargetPreview: preview,
		Reason:        strings.TrimSpace(in.Reason),
		Status:        models.ReportPending,
		ChatID:        in.ChatID,
		CreatedAt:     s.now(),
	}

	s.reports = append(s.reports, r)
	s.saveReports()
	cp := *r
	return &cp, nil
}

// targetPreview resolves the reported entity to its snapshot text.
// Caller holds the lock.
func (s *Store) targetPreview(in store.NewReport) (string, error) {
	switch in.Type {
	case models.ReportUser:
		u := s.userByID(in.TargetID)
		if u == nil {
			return "", store.ErrNotFound
		}
		return u.FullName, nil

	case models.ReportPost:
		p := s.postByID(in.TargetID)
		if p == nil {
			return "", store.ErrNotFound
		}
		return sanitize.Summary(p.Title, previewMax), nil

	case models.ReportMessage:
		c := s.chatByID(in.ChatID)
		if c == nil {
			return "", store.ErrNotFound
		}
		for _, m := range c.Messages {
			if m.ID == in.TargetID {
				return sanitize.Summary(sanitize.RedactPII(m.Text), previewMax), nil
			}
		}
		return "", store.ErrNotFound

	default:
		return "", store.ErrInvalidReportType
	}
}

// ListReports returns all reports, newest first.
func (s *Store) ListReports(ctx context.Context) ([]*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Report, 0, len(s.reports))
	for i := len(s.reports) - 1; i >= 0; i-- {
		cp := *s.reports[i]
		out = append(out, &cp)
	}
	return out, nil
}

// ResolveReport moves a report to resolved. The transition is one-way
// and idempotent: resolving a resolved report is a no-op success.
func (s *Store) ResolveReport(ctx context.Context, reportID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reports {
		if r.ID == reportID {
			if r.Status != models.ReportResolved {
				r.Status = models.ReportResolved
				s.saveReports()
			}
			return nil
		}
	}
	return store.ErrNotFound
}
