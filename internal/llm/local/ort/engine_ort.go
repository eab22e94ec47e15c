//go:build ORT

package ort

import (
	"context"
	"fmt"
	"os"

	"github.com/chriscorrea/babel/internal/llm/common"
	"github.com/chriscorrea/babel/internal/llm/local"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/backends"
	"github.com/knights-analytics/hugot/options"
	"github.com/knights-analytics/hugot/pipelines"
)

var (
	_ local.Engine    = (*Engine)(nil)
	_ local.TextModel = (*model)(nil)
)

// Load fetches the export when needed and opens an ONNX Runtime session on spec.Device
// downloaded weights live in a temporary directory that Close removes
func (e *Engine) Load(ctx context.Context, spec local.LoadSpec) (local.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	modelPath := spec.Path
	cleanup := func() {}
	if modelPath == "" {
		dir, err := os.MkdirTemp("", "babel-model-")
		if err != nil {
			return nil, fmt.Errorf("failed to create download directory: %w", err)
		}
		cleanup = func() { _ = os.RemoveAll(dir) }

		downloadOpts := hugot.NewDownloadOptions()
		downloadOpts.AuthToken = spec.Token
		modelPath, err = hugot.DownloadModel(spec.ModelID, dir, downloadOpts)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to download %s: %w", spec.ModelID, err)
		}
	}

	session, err := hugot.NewORTSession(e.sessionOptions(spec.Device)...)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to start %s session: %w", executionProvider(spec.Device), err)
	}

	return &model{
		session:   session,
		modelPath: modelPath,
		onnxFile:  onnxFilename(modelPath, spec.DType),
		cleanup:   cleanup,
	}, nil
}

// sessionOptions maps the resolved device onto an execution provider
func (e *Engine) sessionOptions(device local.Device) []options.WithOption {
	var opts []options.WithOption
	if e.libraryPath != "" {
		opts = append(opts, options.WithOnnxLibraryPath(e.libraryPath))
	}
	switch device {
	case local.DeviceCUDA:
		opts = append(opts, options.WithCuda(map[string]string{"device_id": e.cudaDevice}))
	case local.DeviceMPS:
		opts = append(opts, options.WithCoreML(0))
	}
	return opts
}

type model struct {
	session   *hugot.Session
	modelPath string
	onnxFile  string
	cleanup   func()
}

// GenerateText builds a generation pipeline bounded by params and runs one conversation
func (m *model) GenerateText(ctx context.Context, messages []common.Message, params local.GenerationParams) (string, error) {
	cfg := hugot.TextGenerationConfig{
		ModelPath:    m.modelPath,
		Name:         "babel-translate",
		OnnxFilename: m.onnxFile,
		Options: []backends.PipelineOption[*pipelines.TextGenerationPipeline]{
			pipelines.WithMaxTokens(params.MaxNewTokens),
		},
	}
	pipeline, err := hugot.NewPipeline(m.session, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to create generation pipeline: %w", err)
	}

	flat := flattenMessages(messages)
	conversation := make([]backends.Message, 0, len(flat))
	for _, msg := range flat {
		conversation = append(conversation, backends.Message{Role: msg.Role, Content: msg.Content})
	}

	out, err := pipeline.RunMessages(ctx, [][]backends.Message{conversation})
	if err != nil {
		return "", err
	}
	return firstText(out.GetOutput())
}

func (m *model) Close() error {
	defer m.cleanup()
	return m.session.Destroy()
}
