package mock

import (
	"context"
	"fmt"
	"strings"

	"github.com/chriscorrea/babel/internal/llm/common"
	"github.com/chriscorrea/babel/internal/llm/local"
)

const (
	eosToken int64 = 1
	bosToken int64 = 2
)

// Engine is an in-process engine with a toy whitespace tokenizer
// it always "translates" to Translation, which lets the local transport run end to end
type Engine struct{}

var _ local.Engine = (*Engine)(nil)

// NewEngine creates the mock engine
func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) Name() string { return "mock" }

// Available reports no accelerators
func (e *Engine) Available(device local.Device) bool { return false }

// Load returns a fresh model; only the model id is checked
func (e *Engine) Load(ctx context.Context, spec local.LoadSpec) (local.Model, error) {
	if spec.ModelID == "" {
		return nil, fmt.Errorf("no model id")
	}
	m := &model{
		ids:   map[string]int64{"<eos>": eosToken, "<bos>": bosToken},
		words: map[int64]string{eosToken: "<eos>", bosToken: "<bos>"},
	}
	return m, nil
}

var _ local.TokenModel = (*model)(nil)

type model struct {
	ids   map[string]int64
	words map[int64]string
}

func (m *model) token(word string) int64 {
	if id, ok := m.ids[word]; ok {
		return id
	}
	id := int64(len(m.ids) + 1)
	m.ids[word] = id
	m.words[id] = word
	return id
}

// ApplyChatTemplate renders a Gemma-style turn layout and tokenizes it on whitespace
func (m *model) ApplyChatTemplate(messages []common.Message) (local.Inputs, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages")
	}

	var prompt strings.Builder
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if part.Type != "text" {
				return nil, fmt.Errorf("unsupported content type %q", part.Type)
			}
		}
		fmt.Fprintf(&prompt, "<start_of_turn>%s %s <end_of_turn> ", msg.Role, msg.Text())
	}
	prompt.WriteString("<start_of_turn>model")

	ids := []int64{bosToken}
	for _, word := range strings.Fields(prompt.String()) {
		ids = append(ids, m.token(word))
	}

	shape := []int{1, len(ids)}
	return local.Inputs{
		local.InputIDsKey: {DType: local.Int64, Device: local.DeviceCPU, Shape: shape, Handle: ids},
		"attention_mask":  {DType: local.Int64, Device: local.DeviceCPU, Shape: shape},
	}, nil
}

// Generate appends the canned translation and an end-of-sequence token
func (m *model) Generate(ctx context.Context, inputs local.Inputs, params local.GenerationParams) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids, ok := inputs[local.InputIDsKey].Handle.([]int64)
	if !ok {
		return nil, fmt.Errorf("input_ids tensor was not produced by this engine")
	}

	output := append([]int64{}, ids...)
	for _, word := range strings.Fields(Translation) {
		if len(output)-len(ids) >= params.MaxNewTokens {
			return output, nil
		}
		output = append(output, m.token(word))
	}
	if len(output)-len(ids) < params.MaxNewTokens {
		output = append(output, eosToken)
	}
	return output, nil
}

// Decode joins words with single spaces
func (m *model) Decode(tokens []int64, skipSpecialTokens bool) (string, error) {
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if skipSpecialTokens && (tok == eosToken || tok == bosToken) {
			continue
		}
		word, ok := m.words[tok]
		if !ok {
			return "", fmt.Errorf("unknown token id %d", tok)
		}
		words = append(words, word)
	}
	return strings.Join(words, " "), nil
}

func (m *model) Close() error { return nil }
