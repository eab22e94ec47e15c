package common

import "encoding/json"

// Role identifies the author of a chat message
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContentPart is one element of structured message content
// the local TranslateGemma processor expects the language codes next to the text
type ContentPart struct {
	Type           string `json:"type"`
	SourceLangCode string `json:"source_lang_code,omitempty"`
	TargetLangCode string `json:"target_lang_code,omitempty"`
	Text           string `json:"text"`
}

// Message represents a message in a conversation
// content is either plain text or a list of structured parts
type Message struct {
	Role    Role          `json:"role"`
	Content string        `json:"content"`
	Parts   []ContentPart `json:"-"`
}

// IsStructured reports whether the message carries structured content
func (m Message) IsStructured() bool {
	return len(m.Parts) > 0
}

// Text returns the textual payload of the message regardless of its shape
func (m Message) Text() string {
	if !m.IsStructured() {
		return m.Content
	}
	var text string
	for i, part := range m.Parts {
		if i > 0 {
			text += "\n"
		}
		text += part.Text
	}
	return text
}

// MarshalJSON encodes structured content as an array and plain content as a string
func (m Message) MarshalJSON() ([]byte, error) {
	if m.IsStructured() {
		return json.Marshal(struct {
			Role    Role          `json:"role"`
			Content []ContentPart `json:"content"`
		}{Role: m.Role, Content: m.Parts})
	}
	return json.Marshal(struct {
		Role    Role   `json:"role"`
		Content string `json:"content"`
	}{Role: m.Role, Content: m.Content})
}

// Usage represents token usage information
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// MessageShape tells the request builder which content shape a transport consumes
type MessageShape int

const (
	// ShapePlain sends string content (chat-completion endpoints)
	ShapePlain MessageShape = iota
	// ShapeStructured sends typed content parts (local processors)
	ShapeStructured
)
