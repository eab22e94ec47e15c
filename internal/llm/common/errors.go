package common

import (
	"errors"
	"fmt"
	"strings"
)

// Category classifies a failure by its origin
type Category string

const (
	CategoryConfig      Category = "config"
	CategoryModelLoad   Category = "model_load"
	CategoryPromptBuild Category = "prompt_build"
	CategoryTransport   Category = "transport"
	CategoryHTTPStatus  Category = "http_status"
	CategoryProtocol    Category = "protocol"
	CategorySchema      Category = "schema"
	CategoryEmpty       Category = "empty_response"
)

// Error is a classified translation failure
//
// Message is the one-line summary, Hint carries multi-line guidance for the user
// and Raw holds the unmodified payload when the failure concerns a response body.
type Error struct {
	Category   Category
	Message    string
	Hint       string
	Raw        string
	StatusCode int
	Err        error
}

// NewError creates a classified error wrapping err (which may be nil)
func NewError(category Category, message string, err error) *Error {
	return &Error{
		Category: category,
		Message:  message,
		Err:      err,
	}
}

// WithHint attaches user guidance to the error
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithRaw attaches the raw response payload to the error
func (e *Error) WithRaw(raw string) *Error {
	e.Raw = raw
	return e
}

// WithStatus records the HTTP status code that produced the error
func (e *Error) WithStatus(code int) *Error {
	e.StatusCode = code
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Hint != "" {
		b.WriteString("\n\n")
		b.WriteString(e.Hint)
	}
	if e.Raw != "" {
		b.WriteString("\n\nRaw response:\n")
		b.WriteString(e.Raw)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CategoryOf returns the category of the first classified error in err's chain
func CategoryOf(err error) (Category, bool) {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Category, true
	}
	return "", false
}
