package api

import "context"

// Model identifies the remote model endpoint for one call.
type Model struct {
	Provider string
	Model    string
	BaseUrl  string
	ApiKey   string
}

// Request is the provider-agnostic payload for a single remote
// completion call.
type Request struct {
	Model *Model

	Messages []Message

	Temperature      float64
	MaxTokens        int64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64

	DryRun        bool
	DryRunContent string
}

type Response struct {
	Role    string
	Content string
}

// Invoker executes one remote completion call against a vendor API.
// Implementations live under llm/.
type Invoker func(ctx context.Context, req *Request) (*Response, error)
