package anthropic

import (
	"bytes"
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/polychat/polychat/api"
	"github.com/polychat/polychat/log"
)

// the messages API requires max_tokens; used when the caller sets none
const defaultMaxTokens = 8192

// https://github.com/anthropics/anthropic-sdk-go
func NewClient(req *api.Request) anthropic.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(req.Model.ApiKey),
		option.WithMiddleware(Middleware(req.DryRun, req.DryRunContent)),
	}
	if req.Model.BaseUrl != "" {
		opts = append(opts, option.WithBaseURL(req.Model.BaseUrl))
	}
	return anthropic.NewClient(opts...)
}

func Send(ctx context.Context, req *api.Request) (*api.Response, error) {
	logger := log.GetLogger(ctx)
	logger.Debugf(">ANTHROPIC:\n req: %+v\n", req)

	resp, err := call(ctx, req)

	logger.Debugf("<ANTHROPIC:\n resp: %+v err: %v\n", resp, err)
	return resp, err
}

func call(ctx context.Context, req *api.Request) (*api.Response, error) {
	client := NewClient(req)
	model := anthropic.Model(req.Model.Model)

	// the system prompt travels outside the message list
	var system []anthropic.TextBlockParam
	var messages []anthropic.MessageParam
	for _, v := range req.Messages {
		switch v.Role {
		case api.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: v.Content})
		case api.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(v.Content)))
		case api.RoleUser:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(v.Content)))
		}
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	completion, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       model,
		System:      system,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(req.Temperature),
		TopP:        anthropic.Float(req.TopP),
	})
	if err != nil {
		return nil, api.NewRemoteCallError("anthropic", err)
	}

	var b bytes.Buffer
	for _, block := range completion.Content {
		switch block.AsAny().(type) {
		case anthropic.TextBlock:
			b.WriteString(block.Text)
		}
	}

	return &api.Response{
		Role:    string(completion.Role),
		Content: b.String(),
	}, nil
}
