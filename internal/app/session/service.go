package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inspectly/qassist/internal/domain"
	"github.com/inspectly/qassist/internal/observability"
)

// Service holds the session bookkeeping that is not a chat turn: init,
// uploads, inspection tickets, feedback, exports, and clearing.
type Service struct {
	store domain.SessionStore
	blobs domain.BlobStore
	now   func() time.Time
}

func NewService(store domain.SessionStore, blobs domain.BlobStore) *Service {
	return &Service{
		store: store,
		blobs: blobs,
		now:   time.Now,
	}
}

// Init creates the session if it does not exist yet and returns its
// current projection.
func (s *Service) Init(ctx context.Context, id domain.SessionID) domain.SessionSnapshot {
	return s.store.GetOrCreate(id)
}

// StoreUpload persists one uploaded file as "<unix_seconds>_<name>" and
// registers it on the session, returning the stored name. Two uploads of
// the same name within the same second would collide; that case is logged
// and the second name gets a short random fragment instead of silently
// overwriting the first blob.
func (s *Service) StoreUpload(ctx context.Context, id domain.SessionID, originalName string, data []byte) (string, error) {
	log := observability.LoggerFromContext(ctx).With("session_id", id)

	stored := fmt.Sprintf("%d_%s", s.now().Unix(), originalName)
	err := s.blobs.Put(ctx, stored, data)
	if errors.Is(err, domain.ErrBlobExists) {
		log.Warn("stored-name collision, disambiguating", "file", stored)
		stored = fmt.Sprintf("%d_%s_%s", s.now().Unix(), uuid.NewString()[:8], originalName)
		err = s.blobs.Put(ctx, stored, data)
	}
	if err != nil {
		return "", fmt.Errorf("storing upload %q: %w", originalName, err)
	}

	s.store.RegisterUpload(id, stored)
	log.Info("upload stored", "file", stored, "bytes", len(data))
	return stored, nil
}

// CreateTicket increments the session's counter and returns the new ticket.
func (s *Service) CreateTicket(ctx context.Context, id domain.SessionID) domain.Ticket {
	number := s.store.NextTicket(id)

	observability.LoggerFromContext(ctx).Info("ticket created",
		"session_id", id,
		"ticket_number", number,
	)

	return domain.Ticket{
		Number:    number,
		SessionID: id,
		Type:      domain.TicketTypeQualityInspection,
		CreatedAt: s.now(),
	}
}

func (s *Service) RecordFeedback(ctx context.Context, id domain.SessionID, rating any, comment string) domain.FeedbackEntry {
	return s.store.RecordFeedback(id, rating, comment)
}

// ExportSession returns the read-only projection without creating the
// session; unknown ids surface domain.ErrSessionNotFound.
func (s *Service) ExportSession(ctx context.Context, id domain.SessionID) (domain.SessionSnapshot, error) {
	return s.store.Snapshot(id)
}

// ExportFeedbackCSV renders the session's feedback as a small CSV table and
// suggests a download filename. The comment is quoted verbatim; embedded
// quotes and commas are not escaped, matching the format clients parse today.
// Returns domain.ErrNoFeedbackData when the session is unknown or empty.
func (s *Service) ExportFeedbackCSV(ctx context.Context, id domain.SessionID) (csv string, filename string, err error) {
	entries := s.store.FeedbackEntries(id)
	if len(entries) == 0 {
		return "", "", domain.ErrNoFeedbackData
	}

	var b strings.Builder
	b.WriteString("Timestamp,Rating,Comment\n")
	for _, fb := range entries {
		fmt.Fprintf(&b, "%s,%v,\"%s\"\n", fb.Timestamp.Format(time.RFC3339), fb.Rating, fb.Comment)
	}

	return b.String(), fmt.Sprintf("feedback_%s.csv", id), nil
}

// Clear empties the session's messages and files and deletes the underlying
// blobs. An already-absent blob is fine; any other deletion failure is
// logged and the clear continues. Feedback and the ticket counter survive.
func (s *Service) Clear(ctx context.Context, id domain.SessionID) error {
	log := observability.LoggerFromContext(ctx).With("session_id", id)

	removed, err := s.store.Clear(id)
	if err != nil {
		return err
	}

	for _, ref := range removed {
		if err := s.blobs.Delete(ctx, ref); err != nil && !errors.Is(err, domain.ErrBlobNotFound) {
			log.Error("failed to delete upload during clear", "file", ref, "error", err)
		}
	}

	log.Info("session cleared", "files_removed", len(removed))
	return nil
}
