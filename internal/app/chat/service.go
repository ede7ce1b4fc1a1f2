package chat

import (
	"context"
	"time"

	"github.com/inspectly/qassist/internal/domain"
	"github.com/inspectly/qassist/internal/observability"
)

// Service runs the chat flow: record the user message, assemble parts from
// the session's uploads, call the model once, record the reply.
type Service struct {
	gateway domain.InferenceGateway
	store   domain.SessionStore
	blobs   domain.BlobStore
	timeout time.Duration
}

func NewService(
	gateway domain.InferenceGateway,
	store domain.SessionStore,
	blobs domain.BlobStore,
	timeout time.Duration,
) *Service {
	return &Service{
		gateway: gateway,
		store:   store,
		blobs:   blobs,
		timeout: timeout,
	}
}

type SendInput struct {
	SessionID domain.SessionID
	Message   string
}

// Send returns the assistant reply. On inference failure the user message
// stays recorded and the error is returned as-is for the boundary to map to
// a degraded response; nothing here retries or inspects the error kind.
func (s *Service) Send(ctx context.Context, in SendInput) (string, error) {
	log := observability.LoggerFromContext(ctx).With("session_id", in.SessionID)

	s.store.AppendMessage(in.SessionID, domain.RoleUser, in.Message)

	parts := AssembleParts(ctx, in.Message, s.store.Files(in.SessionID), s.blobs)
	log.Info("submitting to model", "parts", len(parts))

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	reply, err := s.gateway.Generate(genCtx, []domain.Turn{
		{Role: domain.RoleUser, Parts: parts},
	})
	if err != nil {
		log.Error("inference failed", "error", err)
		return "", err
	}

	s.store.AppendMessage(in.SessionID, domain.RoleAssistant, reply)

	log.Info("chat completed", "reply_len", len(reply))
	return reply, nil
}
