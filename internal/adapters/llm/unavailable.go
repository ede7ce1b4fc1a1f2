package llm

import (
	"context"
	"errors"

	"github.com/inspectly/qassist/internal/domain"
)

var ErrModelUnavailable = errors.New("model not available")

// UnavailableGateway stands in when the real model client failed to
// initialize. Every call fails with ErrModelUnavailable, which the HTTP
// boundary turns into the "model unavailable" apology, so the server keeps
// serving the rest of its routes.
type UnavailableGateway struct{}

func NewUnavailableGateway() *UnavailableGateway {
	return &UnavailableGateway{}
}

func (u *UnavailableGateway) Generate(ctx context.Context, turns []domain.Turn) (string, error) {
	return "", ErrModelUnavailable
}
