package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/polychat/polychat/api"
	"github.com/polychat/polychat/llm/anthropic"
	"github.com/polychat/polychat/llm/groq"
	"github.com/polychat/polychat/llm/openai"
	"github.com/polychat/polychat/log"
)

// Chat is the capability contract shared by all provider adapters. One
// adapter holds one conversation; concurrent calls on the same adapter
// require external serialization.
type Chat interface {
	// GetResponse appends input to the conversation, calls the remote
	// model and returns the assistant reply. Input may be a string,
	// []string, or a list of role/content messages; see Normalize.
	GetResponse(ctx context.Context, input any, model string) (string, error)

	// SetSystemPrompt replaces the persistent system prompt.
	SetSystemPrompt(prompt string)

	// ClearHistory discards the conversation, keeping the system prompt.
	ClearHistory()

	// ExtractCode returns the first fenced code block of a response.
	ExtractCode(response string) ([]string, error)

	// SessionID returns the correlation id fixed at construction.
	SessionID() string

	// Messages returns a snapshot of the conversation queue.
	Messages() []api.Message
}

// New returns a Chat backed by the provider named in cfg. When the
// provider is not set it is inferred from the model name. A nil logger
// falls back to log.Default().
func New(cfg *api.Config, logger log.Logger) (Chat, error) {
	provider := cfg.Provider
	if provider == "" {
		switch {
		case strings.HasPrefix(cfg.Model, "claude-"):
			provider = "anthropic"
		default:
			provider = "openai"
		}
	}

	var invoke api.Invoker
	switch provider {
	case "openai":
		invoke = openai.Send
	case "groq":
		invoke = groq.Send
	case "anthropic":
		invoke = anthropic.Send
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	return newClient(cfg, provider, invoke, logger), nil
}
