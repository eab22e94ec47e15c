package local

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/chriscorrea/babel/internal/llm/common"
)

// Engine loads models for in-process inference
type Engine interface {
	Name() string

	// Available reports whether the engine can run on an accelerator
	Available(device Device) bool

	Load(ctx context.Context, spec LoadSpec) (Model, error)
}

// LoadSpec describes the model an engine should load
type LoadSpec struct {
	ModelID string
	Path    string // set when the model is a local directory
	Token   string
	Device  Device
	DType   DType
}

// GenerationParams bounds a single generation call
type GenerationParams struct {
	MaxNewTokens int
	DoSample     bool
}

// Model is a loaded model; it is either a TokenModel or a TextModel
type Model interface {
	Close() error
}

// TokenModel exposes the processor and raw token generation
type TokenModel interface {
	Model

	// ApplyChatTemplate tokenizes the conversation with a generation prompt appended
	ApplyChatTemplate(messages []common.Message) (Inputs, error)

	// Generate returns the full token sequence, prompt included
	Generate(ctx context.Context, inputs Inputs, params GenerationParams) ([]int64, error)

	// Decode turns tokens into text
	Decode(tokens []int64, skipSpecialTokens bool) (string, error)
}

// TextModel runs templating, generation and decoding as one call
// it returns only the newly generated text
type TextModel interface {
	Model

	GenerateText(ctx context.Context, messages []common.Message, params GenerationParams) (string, error)
}

var (
	enginesMu sync.RWMutex
	engines   = map[string]Engine{}
)

// RegisterEngine makes an engine selectable by name
// registering the same name twice replaces the earlier engine
func RegisterEngine(engine Engine) {
	enginesMu.Lock()
	defer enginesMu.Unlock()
	engines[engine.Name()] = engine
}

// Engines returns the names of all registered engines, sorted
func Engines() []string {
	enginesMu.RLock()
	defer enginesMu.RUnlock()

	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupEngine returns the named engine
// with no name it picks the first registered engine other than the mock
func LookupEngine(name string) (Engine, error) {
	enginesMu.RLock()
	defer enginesMu.RUnlock()

	if name != "" {
		engine, ok := engines[name]
		if !ok {
			return nil, fmt.Errorf("inference engine %q is not registered", name)
		}
		return engine, nil
	}

	names := make([]string, 0, len(engines))
	for n := range engines {
		if n != "mock" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no inference engine is available in this build")
	}
	sort.Strings(names)
	return engines[names[0]], nil
}
