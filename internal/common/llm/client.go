// internal/common/llm/client.go
package llm

import (
	"context"

	"hrms-chatbot/internal/models"
)

// Completer is the single operation the pipeline needs from an LLM: turn a
// system prompt, bounded history and question into free text. Implementations
// must be safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, system string, history []models.Turn, question string) (string, error)
}
