// Package translate builds the conversation sent to a translation model and
// extracts the translated text from its reply.
package translate

import (
	"fmt"
	"strings"

	"github.com/chriscorrea/babel/internal/lang"
	"github.com/chriscorrea/babel/internal/llm/common"
)

// Request is a fully populated translation request
// it is immutable once built; Sampling and Stop hand out copies
type Request struct {
	text      string
	source    string
	target    string
	model     string
	maxTokens int
	sampling  map[string]float64
	stop      []string
}

// NewRequest builds a request from already validated values
// the sampling map is copied so later changes by the caller have no effect
func NewRequest(text, source, target, model string, maxTokens int, sampling map[string]float64) Request {
	copied := make(map[string]float64, len(sampling))
	for k, v := range sampling {
		copied[k] = v
	}
	return Request{
		text:      text,
		source:    source,
		target:    target,
		model:     model,
		maxTokens: maxTokens,
		sampling:  copied,
	}
}

func (r Request) Text() string   { return r.text }
func (r Request) Source() string { return r.source }
func (r Request) Target() string { return r.target }
func (r Request) Model() string  { return r.model }
func (r Request) MaxTokens() int { return r.maxTokens }

// Sampling returns a copy of the sampling options
func (r Request) Sampling() map[string]float64 {
	out := make(map[string]float64, len(r.sampling))
	for k, v := range r.sampling {
		out[k] = v
	}
	return out
}

// WithStop returns a copy of the request that ends generation at any of the given sequences
func (r Request) WithStop(stop []string) Request {
	if len(stop) == 0 {
		r.stop = nil
		return r
	}
	r.stop = append([]string(nil), stop...)
	return r
}

// Stop returns a copy of the stop sequences
func (r Request) Stop() []string {
	if len(r.stop) == 0 {
		return nil
	}
	return append([]string(nil), r.stop...)
}

// Option returns a single sampling option
func (r Request) Option(name string) (float64, bool) {
	v, ok := r.sampling[name]
	return v, ok
}

// Config holds the instruction settings for the builder
// an empty SystemPrompt means the default instruction for plain messages
// and no system message at all for structured ones
type Config struct {
	SystemPrompt string
}

// Messages returns a system instruction followed by the user payload as plain text
func (r Request) Messages(cfg Config) []common.Message {
	system := cfg.SystemPrompt
	if system == "" {
		system = DefaultSystemPrompt
	}

	return []common.Message{
		{Role: common.RoleSystem, Content: r.expand(system)},
		{Role: common.RoleUser, Content: r.userPayload()},
	}
}

// StructuredMessages returns the user payload as a single structured content part
// preceded by a system message only when one is configured
func (r Request) StructuredMessages(cfg Config) []common.Message {
	messages := make([]common.Message, 0, 2)
	if cfg.SystemPrompt != "" {
		messages = append(messages, common.Message{Role: common.RoleSystem, Content: r.expand(cfg.SystemPrompt)})
	}

	messages = append(messages, common.Message{
		Role: common.RoleUser,
		Parts: []common.ContentPart{{
			Type:           "text",
			SourceLangCode: r.source,
			TargetLangCode: r.target,
			Text:           r.text,
		}},
	})
	return messages
}

// MessagesFor picks the message shape a transport consumes
func (r Request) MessagesFor(shape common.MessageShape, cfg Config) []common.Message {
	if shape == common.ShapeStructured {
		return r.StructuredMessages(cfg)
	}
	return r.Messages(cfg)
}

func (r Request) userPayload() string {
	return fmt.Sprintf("Source language: %s\nTarget language: %s\n\n%s",
		describe(r.source), describe(r.target), r.text)
}

func (r Request) expand(template string) string {
	return strings.NewReplacer(
		"{source}", r.source,
		"{target}", r.target,
		"{source_name}", lang.DisplayName(r.source),
		"{target_name}", lang.DisplayName(r.target),
	).Replace(template)
}

// describe renders a language as "Polish (pl)", or just the code when it has no name
func describe(code string) string {
	name := lang.DisplayName(code)
	if name == code {
		return code
	}
	return fmt.Sprintf("%s (%s)", name, code)
}

// Result is the translated text extracted from a model reply
type Result struct {
	Text string
}

// NewResult trims whitespace from the model's raw output
func NewResult(raw string) Result {
	return Result{Text: strings.TrimSpace(raw)}
}

// Empty reports whether the result carries no text
func (r Result) Empty() bool {
	return r.Text == ""
}
