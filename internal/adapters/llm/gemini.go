package llm

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"

	"github.com/inspectly/qassist/internal/domain"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

type GeminiConfig struct {
	ProjectID string
	Location  string
	ModelName string
}

// NewGeminiClient creates an InferenceGateway backed by Vertex AI (Gemini).
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.ProjectID == "" || cfg.Location == "" {
		return nil, fmt.Errorf("GCP project and location must be set")
	}
	if cfg.ModelName == "" {
		cfg.ModelName = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.ProjectID,
		Location: cfg.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: cfg.ModelName,
	}, nil
}

// Generate implements domain.InferenceGateway.
func (g *GeminiClient) Generate(ctx context.Context, turns []domain.Turn) (string, error) {
	var contents []*genai.Content
	for _, turn := range turns {
		content, err := toGenaiContent(turn)
		if err != nil {
			return "", err
		}
		contents = append(contents, content)
	}

	temp := float32(0.7)
	topP := float32(0.9)
	outputTokens := int32(8192)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   outputTokens,
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}

	return text, nil
}

func toGenaiContent(turn domain.Turn) (*genai.Content, error) {
	var role genai.Role
	switch turn.Role {
	case domain.RoleAssistant:
		role = genai.RoleModel
	default:
		role = genai.RoleUser
	}

	parts := make([]*genai.Part, 0, len(turn.Parts))
	for _, p := range turn.Parts {
		switch {
		case p.InlineData != nil:
			raw, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decoding inline audio: %w", err)
			}
			parts = append(parts, &genai.Part{
				InlineData: &genai.Blob{
					MIMEType: p.InlineData.MIMEType,
					Data:     raw,
				},
			})
		default:
			parts = append(parts, genai.NewPartFromText(p.Text))
		}
	}

	return genai.NewContentFromParts(parts, role), nil
}
