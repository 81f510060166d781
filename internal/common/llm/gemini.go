// internal/common/llm/gemini.go
package llm

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"hrms-chatbot/internal/common/config"
	apperrors "hrms-chatbot/internal/common/errors"
	"hrms-chatbot/internal/models"
)

// GeminiClient implements Completer on the Gemini API. One client is shared
// process-wide; construction is guarded by the service's once-lock.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGemini creates the shared Gemini client.
func NewGemini(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: missing API key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiClient{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   int32(cfg.MaxTokens),
	}, nil
}

// Complete sends the prompt and returns the raw reply text.
func (g *GeminiClient) Complete(ctx context.Context, system string, history []models.Turn, question string) (string, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(g.temperature)
	model.SetMaxOutputTokens(g.maxTokens)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	session := model.StartChat()
	for _, turn := range history {
		content := strings.TrimSpace(turn.Content)
		if content == "" {
			continue
		}
		role := "user"
		if turn.Role == "assistant" {
			role = "model"
		}
		session.History = append(session.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(content)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(question))
	if err != nil {
		return "", apperrors.NewUpstreamError("gemini", err)
	}

	var out strings.Builder
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				out.WriteString(string(t))
			}
		}
	}
	reply := strings.TrimSpace(out.String())
	if reply == "" {
		return "", apperrors.NewUpstreamError("gemini", fmt.Errorf("empty completion"))
	}
	return reply, nil
}

// Close releases the API client.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}
