package chat

import (
	"errors"
	"fmt"
	"testing"

	"github.com/polychat/polychat/api"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    []api.Message
		wantErr bool
	}{
		{
			name:  "single string",
			input: "hello",
			want:  []api.Message{{Role: "user", Content: "hello"}},
		},
		{
			name:  "string slice keeps order",
			input: []string{"one", "two"},
			want: []api.Message{
				{Role: "user", Content: "one"},
				{Role: "user", Content: "two"},
			},
		},
		{
			name: "structured messages pass through",
			input: []api.Message{
				{Role: "system", Content: "sp"},
				{Role: "user", Content: "q"},
			},
			want: []api.Message{
				{Role: "system", Content: "sp"},
				{Role: "user", Content: "q"},
			},
		},
		{
			name:  "any slice of strings",
			input: []any{"a", "b"},
			want: []api.Message{
				{Role: "user", Content: "a"},
				{Role: "user", Content: "b"},
			},
		},
		{
			name: "any slice of maps",
			input: []any{
				map[string]string{"role": "user", "content": "a"},
				map[string]any{"role": "assistant", "content": "b"},
			},
			want: []api.Message{
				{Role: "user", Content: "a"},
				{Role: "assistant", Content: "b"},
			},
		},
		{
			name:    "mixed strings and maps",
			input:   []any{"a", map[string]string{"role": "user", "content": "b"}},
			wantErr: true,
		},
		{
			name:    "map missing content",
			input:   []map[string]string{{"role": "user"}},
			wantErr: true,
		},
		{
			name:    "map missing role",
			input:   []any{map[string]any{"content": "x"}},
			wantErr: true,
		},
		{
			name:    "unsupported type",
			input:   42,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				var ime *api.InvalidMessageError
				if !errors.As(err, &ime) {
					t.Fatalf("expected InvalidMessageError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %d messages, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("message %d: got %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestQueueAppend_SystemInvariant(t *testing.T) {
	const maxHistory = 5
	q := NewQueue("sp", maxHistory)

	for i := 0; i < 20; i++ {
		q.Append(api.Message{Role: api.RoleUser, Content: fmt.Sprintf("u%d", i)})
		msgs := q.Messages()
		if len(msgs) == 0 {
			t.Fatalf("queue empty after append %d", i)
		}
		if msgs[0].Role != api.RoleSystem {
			t.Fatalf("append %d: first message role = %s, want system", i, msgs[0].Role)
		}
		if len(msgs) > maxHistory {
			t.Fatalf("append %d: queue length %d exceeds max %d", i, len(msgs), maxHistory)
		}
	}

	// only one system message survives
	var systems int
	for _, m := range q.Messages() {
		if m.Role == api.RoleSystem {
			systems++
		}
	}
	if systems != 1 {
		t.Fatalf("got %d system messages, want 1", systems)
	}
}

func TestQueueAppend_SystemRoleInputFoldsIntoSlot(t *testing.T) {
	const maxHistory = 3
	q := NewQueue("sp", maxHistory)
	q.Append(
		api.Message{Role: api.RoleUser, Content: "u1"},
		api.Message{Role: api.RoleUser, Content: "u2"},
	)

	// a system message arriving through structured input replaces the
	// prompt instead of joining the history
	msgs, err := Normalize([]api.Message{{Role: api.RoleSystem, Content: "injected"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q.Append(msgs...)

	for i := 0; i < 3; i++ {
		q.Append(api.Message{Role: api.RoleUser, Content: fmt.Sprintf("more%d", i)})

		got := q.Messages()
		if len(got) > maxHistory {
			t.Fatalf("append %d: queue length %d exceeds max %d", i, len(got), maxHistory)
		}
		var systems int
		for _, m := range got {
			if m.Role == api.RoleSystem {
				systems++
			}
		}
		if systems != 1 {
			t.Fatalf("append %d: got %d system messages, want 1", i, systems)
		}
		if got[0].Role != api.RoleSystem || got[0].Content != "injected" {
			t.Fatalf("append %d: index 0 = %+v, want injected prompt", i, got[0])
		}
	}
}

func TestQueueAppend_TrimKeepsTail(t *testing.T) {
	q := NewQueue("sp", 3)
	q.Append(
		api.Message{Role: api.RoleUser, Content: "old"},
		api.Message{Role: api.RoleAssistant, Content: "older reply"},
		api.Message{Role: api.RoleUser, Content: "recent"},
		api.Message{Role: api.RoleAssistant, Content: "latest"},
	)

	msgs := q.Messages()
	if len(msgs) != 3 {
		t.Fatalf("got %d messages, want 3", len(msgs))
	}
	if msgs[0].Role != api.RoleSystem || msgs[0].Content != "sp" {
		t.Fatalf("index 0 = %+v, want system prompt", msgs[0])
	}
	if msgs[1].Content != "recent" || msgs[2].Content != "latest" {
		t.Fatalf("tail not preserved: %+v", msgs[1:])
	}
}

func TestQueueSetSystemPrompt_Idempotent(t *testing.T) {
	q := NewQueue("first", 10)
	q.Append(api.Message{Role: api.RoleUser, Content: "hi"})

	q.SetSystemPrompt("second")
	q.SetSystemPrompt("third")

	msgs := q.Messages()
	var systems int
	for _, m := range msgs {
		if m.Role == api.RoleSystem {
			systems++
		}
	}
	if systems != 1 {
		t.Fatalf("got %d system messages, want 1", systems)
	}
	if msgs[0].Role != api.RoleSystem || msgs[0].Content != "third" {
		t.Fatalf("index 0 = %+v, want latest prompt", msgs[0])
	}
}

func TestQueueClear(t *testing.T) {
	q := NewQueue("sp", 10)
	q.Append(
		api.Message{Role: api.RoleUser, Content: "hi"},
		api.Message{Role: api.RoleAssistant, Content: "hello"},
	)

	q.Clear()

	msgs := q.Messages()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages after clear, want 1", len(msgs))
	}
	if msgs[0].Role != api.RoleSystem || msgs[0].Content != "sp" {
		t.Fatalf("got %+v, want system prompt only", msgs[0])
	}
}
