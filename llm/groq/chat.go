// Package groq calls the Groq API, which speaks the OpenAI chat
// completion wire format on its own endpoint.
package groq

import (
	"context"

	"github.com/polychat/polychat/api"
	"github.com/polychat/polychat/llm/openai"
)

// https://console.groq.com/docs/openai
const DefaultBaseUrl = "https://api.groq.com/openai/v1"

func Send(ctx context.Context, req *api.Request) (*api.Response, error) {
	if req.Model.BaseUrl == "" {
		model := *req.Model
		model.BaseUrl = DefaultBaseUrl
		r := *req
		r.Model = &model
		req = &r
	}
	resp, err := openai.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
