package api

import "time"

const DefaultSystemPrompt = "You are a helpful assistant."

const (
	DefaultMaxHistory = 10
	DefaultMaxRetries = 10
	DefaultBaseDelay  = time.Second
	DefaultMaxTokens  = 400
)

// Config is the construction-time surface of a chat adapter.
type Config struct {
	// openai | groq | anthropic. Inferred from Model when empty.
	Provider string
	Model    string

	ApiKey  string
	BaseUrl string

	SystemPrompt string

	// max messages kept in the conversation queue after trimming
	MaxHistory int

	// retry budget and backoff base for failed API calls
	MaxRetries int
	BaseDelay  time.Duration

	// generation parameters, passed through to the provider as-is
	Temperature      float64
	MaxTokens        int64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64

	// no API call is made; DryRunContent is returned as the raw
	// provider response
	DryRun        bool
	DryRunContent string
}

func DefaultConfig() *Config {
	return &Config{
		SystemPrompt: DefaultSystemPrompt,
		MaxHistory:   DefaultMaxHistory,
		MaxRetries:   DefaultMaxRetries,
		BaseDelay:    DefaultBaseDelay,
		Temperature:  0,
		MaxTokens:    DefaultMaxTokens,
		TopP:         1,
	}
}
