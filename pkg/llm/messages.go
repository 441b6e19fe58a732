package llm

//----------------------------------------------------------------
// Message - 通用訊息結構
//----------------------------------------------------------------

// Role constants define the two message roles the router produces. The chat
// boundary is a plain ordered list of role/content pairs; providers map them
// to their native request shapes.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message 表示送往 Chat Completion 邊界的一則訊息
type Message struct {
	Role    string `json:"role"`    // "system" or "user"
	Content string `json:"content"` // Plain text content
}

// NewSystemMessage builds a system-role message.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage builds a user-role message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}
