package api

// system | user | assistant
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation. Messages are immutable once
// appended to a queue; ordering is chronological.
type Message struct {
	// system | assistant | user
	Role string `json:"role"`

	Content string `json:"content"`
}
