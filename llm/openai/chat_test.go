package openai

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/polychat/polychat/api"
)

const cannedCompletion = `{
  "id": "chatcmpl-test",
  "object": "chat.completion",
  "created": 1,
  "model": "gpt-4o-mini",
  "choices": [
    {
      "index": 0,
      "message": {"role": "assistant", "content": "canned reply"},
      "finish_reason": "stop"
    }
  ]
}`

func TestMiddleware_DryRunShortCircuits(t *testing.T) {
	mw := Middleware(true, `{"ok":true}`)

	req := httptest.NewRequest("POST", "https://api.openai.com/v1/chat/completions", nil)
	called := false
	resp, err := mw(req, func(r *http.Request) (*http.Response, error) {
		called = true
		return nil, fmt.Errorf("network should not be reached")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("dry run must not call the next handler")
	}
	if resp.StatusCode != 200 {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}
}

func TestSend_DryRun(t *testing.T) {
	req := &api.Request{
		Model: &api.Model{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			ApiKey:   "test-key",
		},
		Messages: []api.Message{
			{Role: api.RoleSystem, Content: "sp"},
			{Role: api.RoleUser, Content: "hi"},
		},
		TopP:          1,
		MaxTokens:     400,
		DryRun:        true,
		DryRunContent: cannedCompletion,
	}

	resp, err := Send(t.Context(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "canned reply" {
		t.Fatalf("got content %q, want canned reply", resp.Content)
	}
	if resp.Role != "assistant" {
		t.Fatalf("got role %q, want assistant", resp.Role)
	}
}

func TestToMessages_RoleMapping(t *testing.T) {
	msgs := toMessages([]api.Message{
		{Role: api.RoleSystem, Content: "sp"},
		{Role: api.RoleUser, Content: "q"},
		{Role: api.RoleAssistant, Content: "a"},
		{Role: "tool", Content: "ignored"},
	})
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3 (unknown roles dropped)", len(msgs))
	}
}
