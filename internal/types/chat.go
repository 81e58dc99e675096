package types

// ChatTurn is one prior message in a conversation, used as LLM context.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
