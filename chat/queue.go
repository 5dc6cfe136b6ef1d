package chat

import (
	"fmt"

	"github.com/polychat/polychat/api"
)

// Queue is the bounded conversation history for one adapter. It keeps at
// most one system message, always at index 0 when non-empty, and caps the
// total length at maxHistory after every append. Not safe for concurrent
// use; each adapter owns its queue.
type Queue struct {
	maxHistory   int
	systemPrompt string
	messages     []api.Message
}

func NewQueue(systemPrompt string, maxHistory int) *Queue {
	return &Queue{
		maxHistory:   maxHistory,
		systemPrompt: systemPrompt,
	}
}

// Normalize converts caller input into a canonical message list. Accepted
// shapes: a single string, []string (one user message each, order kept),
// []api.Message, and the decoded-JSON forms []map[string]string and []any.
// Structured elements must carry both role and content; mixed lists fail.
func Normalize(input any) ([]api.Message, error) {
	switch v := input.(type) {
	case string:
		return []api.Message{{Role: api.RoleUser, Content: v}}, nil
	case []string:
		msgs := make([]api.Message, 0, len(v))
		for _, s := range v {
			msgs = append(msgs, api.Message{Role: api.RoleUser, Content: s})
		}
		return msgs, nil
	case []api.Message:
		msgs := make([]api.Message, 0, len(v))
		for _, m := range v {
			if m.Role == "" {
				return nil, api.NewInvalidMessageError("message missing role")
			}
			msgs = append(msgs, m)
		}
		return msgs, nil
	case []map[string]string:
		msgs := make([]api.Message, 0, len(v))
		for _, m := range v {
			msg, err := toMessage(m)
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, msg)
		}
		return msgs, nil
	case []any:
		return normalizeSlice(v)
	default:
		return nil, api.NewInvalidMessageError(fmt.Sprintf("unsupported input type %T", input))
	}
}

func normalizeSlice(list []any) ([]api.Message, error) {
	allStrings := true
	for _, e := range list {
		if _, ok := e.(string); !ok {
			allStrings = false
			break
		}
	}
	if allStrings {
		msgs := make([]api.Message, 0, len(list))
		for _, e := range list {
			msgs = append(msgs, api.Message{Role: api.RoleUser, Content: e.(string)})
		}
		return msgs, nil
	}

	// not uniformly strings: every element must be a structured message
	msgs := make([]api.Message, 0, len(list))
	for _, e := range list {
		switch m := e.(type) {
		case api.Message:
			if m.Role == "" {
				return nil, api.NewInvalidMessageError("message missing role")
			}
			msgs = append(msgs, m)
		case map[string]string:
			msg, err := toMessage(m)
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, msg)
		case map[string]any:
			role, okr := m["role"].(string)
			content, okc := m["content"].(string)
			if !okr || !okc {
				return nil, api.NewInvalidMessageError("message missing role or content")
			}
			msgs = append(msgs, api.Message{Role: role, Content: content})
		default:
			return nil, api.NewInvalidMessageError(fmt.Sprintf("mixed or unsupported element type %T", e))
		}
	}
	return msgs, nil
}

func toMessage(m map[string]string) (api.Message, error) {
	role, okr := m["role"]
	content, okc := m["content"]
	if !okr || !okc {
		return api.Message{}, api.NewInvalidMessageError("message missing role or content")
	}
	return api.Message{Role: role, Content: content}, nil
}

// Append adds msgs to the end of the queue, trims to maxHistory and
// restores the system slot. A system-role message in the input replaces
// the prompt in the single system slot instead of joining the history,
// so the queue never holds more than one system message.
func (q *Queue) Append(msgs ...api.Message) {
	for _, m := range msgs {
		if m.Role == api.RoleSystem {
			q.SetSystemPrompt(m.Content)
			continue
		}
		q.messages = append(q.messages, m)
	}
	q.trim()
	q.ensureSystem()
	// restoring the system slot can push past the cap
	q.trim()
}

func (q *Queue) trim() {
	if q.maxHistory <= 0 || len(q.messages) <= q.maxHistory {
		return
	}
	var system []api.Message
	var rest []api.Message
	for _, m := range q.messages {
		if m.Role == api.RoleSystem {
			if len(system) == 0 {
				system = append(system, m)
			}
			continue
		}
		rest = append(rest, m)
	}
	if window := q.maxHistory - 1; len(rest) > window {
		rest = rest[len(rest)-window:]
	}
	q.messages = append(system, rest...)
}

func (q *Queue) ensureSystem() {
	if len(q.messages) == 0 || q.messages[0].Role != api.RoleSystem {
		q.messages = append([]api.Message{{Role: api.RoleSystem, Content: q.systemPrompt}}, q.messages...)
	}
}

// SetSystemPrompt updates the stored prompt, overwriting the existing
// system message in place or inserting one at index 0.
func (q *Queue) SetSystemPrompt(prompt string) {
	q.systemPrompt = prompt
	for i := range q.messages {
		if q.messages[i].Role == api.RoleSystem {
			q.messages[i].Content = prompt
			return
		}
	}
	q.messages = append([]api.Message{{Role: api.RoleSystem, Content: prompt}}, q.messages...)
}

// Clear discards all history, keeping a single system message.
func (q *Queue) Clear() {
	q.messages = []api.Message{{Role: api.RoleSystem, Content: q.systemPrompt}}
}

// Messages returns a snapshot of the queue.
func (q *Queue) Messages() []api.Message {
	out := make([]api.Message, len(q.messages))
	copy(out, q.messages)
	return out
}

func (q *Queue) Len() int {
	return len(q.messages)
}
