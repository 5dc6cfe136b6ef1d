package chat

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/polychat/polychat/api"
	"github.com/polychat/polychat/log"
)

// client is the shared adapter core: queue management and retry are
// implemented once here and composed with a provider-specific invoker.
type client struct {
	cfg      *api.Config
	provider string
	queue    *Queue
	invoke   api.Invoker
	logger   log.Logger
	session  string
}

func newClient(cfg *api.Config, provider string, invoke api.Invoker, logger log.Logger) *client {
	if logger == nil {
		logger = log.Default()
	}
	return &client{
		cfg:      cfg,
		provider: provider,
		queue:    NewQueue(cfg.SystemPrompt, cfg.MaxHistory),
		invoke:   invoke,
		logger:   logger,
		session:  uuid.NewString(),
	}
}

func (c *client) GetResponse(ctx context.Context, input any, model string) (string, error) {
	msgs, err := Normalize(input)
	if err != nil {
		return "", err
	}
	// the queue is mutated before any network attempt; a failed call
	// still leaves the new user messages recorded
	c.queue.Append(msgs...)

	if model == "" {
		model = c.cfg.Model
	}
	req := &api.Request{
		Model: &api.Model{
			Provider: c.provider,
			Model:    model,
			BaseUrl:  c.cfg.BaseUrl,
			ApiKey:   c.cfg.ApiKey,
		},
		Messages:         c.queue.Messages(),
		Temperature:      c.cfg.Temperature,
		MaxTokens:        c.cfg.MaxTokens,
		TopP:             c.cfg.TopP,
		FrequencyPenalty: c.cfg.FrequencyPenalty,
		PresencePenalty:  c.cfg.PresencePenalty,
		DryRun:           c.cfg.DryRun,
		DryRunContent:    c.cfg.DryRunContent,
	}

	ctx = log.WithLogger(ctx, c.logger)
	resp, err := retryBackoff(ctx, c.logger, c.cfg.MaxRetries, c.cfg.BaseDelay, func(ctx context.Context) (*api.Response, error) {
		return c.invoke(ctx, req)
	})
	if err != nil {
		c.logger.Errorf("[%s] session %s: %v\n", c.provider, c.session, err)
		return "", err
	}
	if resp == nil {
		return "", fmt.Errorf("no response from %s", c.provider)
	}

	c.queue.Append(api.Message{Role: api.RoleAssistant, Content: resp.Content})
	return resp.Content, nil
}

func (c *client) SetSystemPrompt(prompt string) {
	c.queue.SetSystemPrompt(prompt)
}

func (c *client) ClearHistory() {
	c.queue.Clear()
}

func (c *client) ExtractCode(response string) ([]string, error) {
	return ExtractCode(response)
}

func (c *client) SessionID() string {
	return c.session
}

func (c *client) Messages() []api.Message {
	return c.queue.Messages()
}
