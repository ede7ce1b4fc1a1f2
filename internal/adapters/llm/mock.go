package llm

import (
	"context"
	"fmt"

	"github.com/inspectly/qassist/internal/domain"
)

// MockGateway is a local stand-in for the model, useful for dev and tests.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (m *MockGateway) Generate(ctx context.Context, turns []domain.Turn) (string, error) {
	var text string
	audioParts := 0
	for _, turn := range turns {
		for _, p := range turn.Parts {
			if p.InlineData != nil {
				audioParts++
				continue
			}
			if p.Text != "" {
				text = p.Text
			}
		}
	}

	if audioParts > 0 {
		return fmt.Sprintf("I received %d audio clip(s) and your note %q. Noted for the inspection log.", audioParts, text), nil
	}
	return fmt.Sprintf("You said %q. What would you like to check next on the line?", text), nil
}
