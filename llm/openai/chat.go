package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/polychat/polychat/api"
	"github.com/polychat/polychat/log"
)

// https://platform.openai.com/docs/models

// https://github.com/openai/openai-go/tree/main/examples
func NewClient(req *api.Request) *openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(req.Model.ApiKey),
		option.WithMiddleware(Middleware(req.DryRun, req.DryRunContent)),
	}
	if req.Model.BaseUrl != "" {
		opts = append(opts, option.WithBaseURL(req.Model.BaseUrl))
	}
	client := openai.NewClient(opts...)
	return &client
}

// Send executes one chat completion call and returns the first choice.
func Send(ctx context.Context, req *api.Request) (*api.Response, error) {
	logger := log.GetLogger(ctx)
	logger.Debugf(">OPENAI:\n req: %+v\n", req)

	resp, err := call(ctx, req)

	logger.Debugf("<OPENAI:\n resp: %+v err: %v\n", resp, err)
	return resp, err
}

func call(ctx context.Context, req *api.Request) (*api.Response, error) {
	client := NewClient(req)

	params := openai.ChatCompletionNewParams{
		Model:            openai.ChatModel(req.Model.Model),
		Messages:         toMessages(req.Messages),
		Temperature:      openai.Float(req.Temperature),
		TopP:             openai.Float(req.TopP),
		FrequencyPenalty: openai.Float(req.FrequencyPenalty),
		PresencePenalty:  openai.Float(req.PresencePenalty),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, api.NewRemoteCallError("openai", err)
	}
	if len(completion.Choices) == 0 {
		return nil, api.NewRemoteCallError("openai", fmt.Errorf("no choices in completion %s", completion.ID))
	}

	choice := completion.Choices[0]
	return &api.Response{
		Role:    string(choice.Message.Role),
		Content: choice.Message.Content,
	}, nil
}

func toMessages(msgs []api.Message) []openai.ChatCompletionMessageParamUnion {
	var messages []openai.ChatCompletionMessageParamUnion
	for _, v := range msgs {
		switch v.Role {
		case api.RoleSystem:
			messages = append(messages, openai.SystemMessage(v.Content))
		case api.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(v.Content))
		case api.RoleUser:
			messages = append(messages, openai.UserMessage(v.Content))
		}
	}
	return messages
}
