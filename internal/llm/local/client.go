package local

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chriscorrea/babel/internal/llm/common"
)

// DefaultMaxNewTokens bounds generation when no budget is given
const DefaultMaxNewTokens = 128

// Client runs a translation model in-process through a registered Engine
type Client struct {
	engine   Engine
	hub      *Hub
	device   Device
	warnings io.Writer
	logger   *slog.Logger
}

var (
	_ common.LLM         = (*Client)(nil)
	_ common.WarningSink = (*Client)(nil)
)

// ClientOption configures a local Client
type ClientOption func(*Client)

// WithHub sets the registry used to check model access
func WithHub(hub *Hub) ClientOption {
	return func(c *Client) {
		c.hub = hub
	}
}

// WithDevice sets the requested compute device
func WithDevice(device Device) ClientOption {
	return func(c *Client) {
		c.device = device
	}
}

// WithWarnings sets where user-facing warnings are written
func WithWarnings(w io.Writer) ClientOption {
	return func(c *Client) {
		c.warnings = w
	}
}

// WithLogger sets the debug logger
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for engine
func NewClient(engine Engine, opts ...ClientOption) *Client {
	c := &Client{
		engine:   engine,
		device:   DeviceAuto,
		warnings: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate loads the model and returns only the newly generated text
func (c *Client) Generate(ctx context.Context, messages []common.Message, modelName string, options ...interface{}) (string, error) {
	if modelName == "" {
		return "", common.NewError(common.CategoryConfig, "model name is empty", nil)
	}

	var genOpts *GenerateOptions
	if len(options) > 0 {
		genOpts, _ = options[0].(*GenerateOptions)
	}

	device, err := ResolveDevice(c.device, c.engine.Available)
	if err != nil {
		return "", common.NewError(common.CategoryConfig, "cannot place model", err)
	}
	dtype := DTypeFor(device)
	if device == DeviceCPU {
		fmt.Fprintln(c.warnings, "Warning: no CUDA or MPS accelerator available. The model may run very slowly or not fit in memory.")
	}

	spec := LoadSpec{ModelID: modelName, Device: device, DType: dtype}
	if isLocalDir(modelName) {
		spec.Path = modelName
	} else if c.hub != nil {
		if _, err := c.hub.Check(ctx, modelName); err != nil {
			return "", err
		}
		spec.Token = c.hub.Token
	}

	if c.logger != nil {
		c.logger.Debug("Loading model", "engine", c.engine.Name(), "model", modelName, "device", device, "dtype", dtype)
	}

	model, err := c.engine.Load(ctx, spec)
	if err != nil {
		return "", common.NewError(common.CategoryModelLoad, fmt.Sprintf("failed to load model %q", modelName), err).
			WithHint(licenseHint)
	}
	defer model.Close()

	params := GenerationParams{
		MaxNewTokens: genOpts.maxNewTokens(DefaultMaxNewTokens),
		DoSample:     false,
	}

	var text string
	switch m := model.(type) {
	case TextModel:
		if c.logger != nil {
			c.logger.Debug("Generating", "max_new_tokens", params.MaxNewTokens)
		}
		text, err = m.GenerateText(ctx, messages, params)
		if err != nil {
			return "", common.NewError(common.CategoryTransport, "generation failed", err)
		}
	case TokenModel:
		text, err = c.generateTokens(ctx, m, messages, device, dtype, params)
		if err != nil {
			return "", err
		}
	default:
		return "", common.NewError(common.CategoryModelLoad,
			fmt.Sprintf("engine %q returned a model that cannot generate", c.engine.Name()), nil)
	}

	text = genOpts.cutAtStop(text)
	common.LogRequestCompletion(c.logger, len(text))
	return strings.TrimSpace(text), nil
}

// generateTokens applies the chat template and decodes only the new tokens
func (c *Client) generateTokens(ctx context.Context, model TokenModel, messages []common.Message, device Device, dtype DType, params GenerationParams) (string, error) {
	inputs, err := model.ApplyChatTemplate(messages)
	if err != nil {
		return "", common.NewError(common.CategoryPromptBuild, "failed to apply chat template", err)
	}

	inputs = MoveInputs(inputs, device, dtype)

	inputLen, err := inputs.InputLen()
	if err != nil {
		return "", common.NewError(common.CategoryPromptBuild, "failed to apply chat template", err)
	}

	if c.logger != nil {
		c.logger.Debug("Generating", "input_tokens", inputLen, "max_new_tokens", params.MaxNewTokens)
	}

	output, err := model.Generate(ctx, inputs, params)
	if err != nil {
		return "", common.NewError(common.CategoryTransport, "generation failed", err)
	}
	if len(output) < inputLen {
		return "", common.NewError(common.CategoryProtocol,
			fmt.Sprintf("generation returned %d tokens, fewer than the %d prompt tokens", len(output), inputLen), nil)
	}

	text, err := model.Decode(output[inputLen:], true)
	if err != nil {
		return "", common.NewError(common.CategoryProtocol, "failed to decode generated tokens", err)
	}
	return text, nil
}

// SetWarnings redirects user-facing warnings, such as the CPU fallback notice
func (c *Client) SetWarnings(w io.Writer) {
	if w != nil {
		c.warnings = w
	}
}

func isLocalDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
