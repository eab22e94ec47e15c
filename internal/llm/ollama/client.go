package ollama

import "github.com/chriscorrea/babel/internal/llm/common"

// ChatRequest represents the request payload for Ollama's chat API
type ChatRequest struct {
	Model    string           `json:"model"`
	Stream   bool             `json:"stream"`
	Messages []common.Message `json:"messages"`

	// Generation parameters
	Options *RequestOptions `json:"options,omitempty"`
}

// RequestOptions holds the sampling parameters Ollama accepts under "options"
// nil fields are left to the model's defaults
type RequestOptions struct {
	Temperature   *float64 `json:"temperature,omitempty"`
	NumPredict    *int     `json:"num_predict,omitempty"`
	TopP          *float64 `json:"top_p,omitempty"`
	TopK          *int     `json:"top_k,omitempty"`
	RepeatPenalty *float64 `json:"repeat_penalty,omitempty"`
	Seed          *int     `json:"seed,omitempty"`
	Stop          []string `json:"stop,omitempty"`
}

// ChatResponse represents the response from Ollama's chat API
// required fields are pointers so a missing field can be told apart from an empty one
type ChatResponse struct {
	Model      string           `json:"model"`
	CreatedAt  string           `json:"created_at"`
	Message    *ResponseMessage `json:"message"`
	Done       *bool            `json:"done"`
	DoneReason string           `json:"done_reason,omitempty"`

	// Token usage information (when done=true)
	TotalDuration      int64 `json:"total_duration,omitempty"`
	LoadDuration       int64 `json:"load_duration,omitempty"`
	PromptEvalCount    int   `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration int64 `json:"prompt_eval_duration,omitempty"`
	EvalCount          int   `json:"eval_count,omitempty"`
	EvalDuration       int64 `json:"eval_duration,omitempty"`

	Error string `json:"error,omitempty"`
}

// ResponseMessage is the assistant message in a chat response
type ResponseMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// ErrorResponse represents an error response from Ollama
type ErrorResponse struct {
	Error string `json:"error"`
}
