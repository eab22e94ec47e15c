// Package ort runs translation models in-process on ONNX Runtime through hugot.
//
// The engine itself is compiled only with the ORT build tag, which hugot needs
// for its cgo bindings. The helpers in this file are plain Go and always build.
package ort

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/chriscorrea/babel/internal/lang"
	"github.com/chriscorrea/babel/internal/llm/common"
	"github.com/chriscorrea/babel/internal/llm/local"
)

// EngineName is the name the engine registers under
const EngineName = "ort"

// LibraryPathEnv overrides where the ONNX Runtime shared library is loaded from
const LibraryPathEnv = "ORT_LIBRARY_PATH"

// Engine loads ONNX exports of chat models
type Engine struct {
	libraryPath string
	cudaDevice  string
}

// Option configures an Engine
type Option func(*Engine)

// WithLibraryPath sets the ONNX Runtime shared library to load
func WithLibraryPath(path string) Option {
	return func(e *Engine) {
		e.libraryPath = path
	}
}

// WithCUDADevice picks the GPU used when the device is cuda
func WithCUDADevice(id string) Option {
	return func(e *Engine) {
		e.cudaDevice = id
	}
}

// NewEngine creates the engine; the library path falls back to ORT_LIBRARY_PATH
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		libraryPath: os.Getenv(LibraryPathEnv),
		cudaDevice:  "0",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Name() string { return EngineName }

// Available reports whether the execution provider for device can run on this host
func (e *Engine) Available(device local.Device) bool {
	switch device {
	case local.DeviceCUDA:
		return cudaPresent()
	case local.DeviceMPS:
		return runtime.GOOS == "darwin"
	default:
		return false
	}
}

// executionProvider names the ONNX Runtime provider a device maps onto
func executionProvider(device local.Device) string {
	switch device {
	case local.DeviceCUDA:
		return "CUDAExecutionProvider"
	case local.DeviceMPS:
		return "CoreMLExecutionProvider"
	default:
		return "CPUExecutionProvider"
	}
}

// nvidia driver control node; present whenever the kernel driver is loaded
var nvidiaControl = "/dev/nvidiactl"

func cudaPresent() bool {
	_, err := os.Stat(nvidiaControl)
	return err == nil
}

// onnxCandidates lists export file names per dtype, most specific first
var onnxCandidates = map[local.DType][]string{
	local.BFloat16: {"model_bf16.onnx", "model_fp16.onnx", "model.onnx"},
	local.Float16:  {"model_fp16.onnx", "model.onnx"},
	local.Float32:  {"model.onnx", "model_fp32.onnx"},
}

// onnxFilename picks the export matching dtype inside dir
// it returns "" when none exists, which lets hugot choose
func onnxFilename(dir string, dtype local.DType) string {
	for _, name := range onnxCandidates[dtype] {
		for _, sub := range []string{"", "onnx"} {
			rel := filepath.Join(sub, name)
			if info, err := os.Stat(filepath.Join(dir, rel)); err == nil && !info.IsDir() {
				return rel
			}
		}
	}
	return ""
}

// chatMessage is a role and plain content, the form hugot's chat template takes
type chatMessage struct {
	Role    string
	Content string
}

// flattenMessages renders structured parts as plain text with the languages spelled out
func flattenMessages(messages []common.Message) []chatMessage {
	out := make([]chatMessage, 0, len(messages))
	for _, msg := range messages {
		if !msg.IsStructured() {
			out = append(out, chatMessage{Role: string(msg.Role), Content: msg.Content})
			continue
		}

		parts := make([]string, 0, len(msg.Parts))
		for _, part := range msg.Parts {
			if part.SourceLangCode == "" && part.TargetLangCode == "" {
				parts = append(parts, part.Text)
				continue
			}
			parts = append(parts, fmt.Sprintf("Source language: %s\nTarget language: %s\n\n%s",
				describe(part.SourceLangCode), describe(part.TargetLangCode), part.Text))
		}
		out = append(out, chatMessage{Role: string(msg.Role), Content: strings.Join(parts, "\n")})
	}
	return out
}

func describe(code string) string {
	name := lang.DisplayName(code)
	if name == code {
		return code
	}
	return fmt.Sprintf("%s (%s)", name, code)
}

// firstText extracts the first generated text from a pipeline's batch output
func firstText(outputs []any) (string, error) {
	if len(outputs) == 0 {
		return "", fmt.Errorf("pipeline returned no output")
	}
	switch v := outputs[0].(type) {
	case string:
		return v, nil
	case []string:
		if len(v) == 0 {
			return "", fmt.Errorf("pipeline returned an empty sequence")
		}
		return v[0], nil
	default:
		return "", fmt.Errorf("unexpected pipeline output of type %T", v)
	}
}
