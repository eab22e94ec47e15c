package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chriscorrea/babel/internal/config"
	"github.com/chriscorrea/babel/internal/format"
	"github.com/chriscorrea/babel/internal/llm/common"
	"github.com/chriscorrea/babel/internal/registry"
	"github.com/chriscorrea/babel/internal/translate"
	"github.com/chriscorrea/babel/internal/verbose"

	"github.com/fatih/color"
)

// App holds the dependencies of a single translation run
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	verbose bool
	spinner bool
	clean   bool
	stderr  io.Writer
}

// Option configures an App
type Option func(*App)

// WithSpinner shows a progress spinner on stderr while waiting
func WithSpinner(enabled bool) Option {
	return func(a *App) {
		a.spinner = enabled
	}
}

// WithClean strips quotes, labels and code fences from the model output
func WithClean(enabled bool) Option {
	return func(a *App) {
		a.clean = enabled
	}
}

// WithStderr sets where diagnostics, the spinner and verbose output go
func WithStderr(w io.Writer) Option {
	return func(a *App) {
		a.stderr = w
	}
}

// NewApp creates a new App instance with the provided configuration, logger, and verbose setting
func NewApp(cfg *config.Config, logger *slog.Logger, verbose bool, opts ...Option) *App {
	a := &App{
		cfg:     cfg,
		logger:  logger,
		verbose: verbose,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// getSpinner returns spinner glyphs and their speed in milliseconds
// just for fun, these vary by transport
func getSpinner(transport string) (glyphs []string, speed int) {
	switch transport {
	case "ollama":
		glyphs = []string{"◜", "◠", "◝", "◞", "◡", "◟"}
		speed = 333
	case "local":
		glyphs = []string{"⠋", "⠙", "⠚", "⠒", "⠂", "⠂", "⠒", "⠲", "⠴", "⠦", "⠖", "⠒", "⠐", "⠐", "⠒", "⠓", "⠋"}
		speed = 125
	default:
		glyphs = []string{"⠄", "⠆", "⠇", "⠋", "⠙", "⠸", "⠰", "⠠", "⠰", "⠸", "⠙", "⠋", "⠇", "⠆"}
		speed = 200
	}
	return
}

// Run builds the conversation, invokes the transport once and extracts the translation
func (a *App) Run(ctx context.Context, transport string, req translate.Request, tcfg translate.Config) (translate.Result, error) {
	if a.cfg == nil {
		return translate.Result{}, common.NewError(common.CategoryConfig, "configuration is nil", nil)
	}

	client, err := registry.CreateProvider(transport, a.cfg, a.logger)
	if err != nil {
		return translate.Result{}, err
	}
	if sink, ok := client.(common.WarningSink); ok {
		sink.SetWarnings(a.stderr)
	}

	messages := req.MessagesFor(registry.MessageShape(transport), tcfg)

	if a.verbose {
		verbose.PrintParameters(a.cfg, transport, req, tcfg, verbose.DefaultOutputConfig(a.stderr))
	}

	if a.logger != nil {
		a.logger.Info("Preparing translation request",
			"transport", transport,
			"model", req.Model(),
			"source", req.Source(),
			"target", req.Target(),
			"max_tokens", req.MaxTokens(),
			"text_length", len(req.Text()))

		for _, msg := range messages {
			a.logger.Debug("Message", "role", msg.Role, "content", msg.Text())
		}
	}

	opts := registry.BuildProviderOptions(transport, req.Sampling(), req.Stop())

	if a.cfg.Parameters.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(a.cfg.Parameters.Timeout)*time.Second)
		defer cancel()
	}

	stop := a.startSpinner(ctx, transport, req.Model())
	response, err := client.Generate(ctx, messages, req.Model(), opts...)
	stop()

	if err != nil {
		if _, ok := common.CategoryOf(err); !ok {
			err = common.NewError(common.CategoryTransport, "translation request failed", err)
		}
		return translate.Result{}, err
	}

	if a.clean {
		response = format.CleanTranslation(response)
	}

	result := translate.NewResult(response)
	if result.Empty() {
		return translate.Result{}, common.NewError(common.CategoryEmpty, "the model returned an empty translation", nil).
			WithRaw(fmt.Sprintf("%q", response))
	}

	return result, nil
}

// startSpinner draws a spinner on stderr until the returned stop function is called
// stop blocks until the line has been cleared
func (a *App) startSpinner(ctx context.Context, transport, modelName string) func() {
	if !a.spinner {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		spinGlyphs, spinSpeed := getSpinner(transport)
		cyan := color.New(color.FgCyan).SprintFunc()
		width := 0
		i := 0

		defer func() {
			// always clear the line when the goroutine exits
			fmt.Fprintf(a.stderr, "\r%s\r", strings.Repeat(" ", width))
		}()

		ticker := time.NewTicker(time.Duration(spinSpeed) * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				message := fmt.Sprintf("%s %s is translating...", spinGlyphs[i], modelName)
				if n := len([]rune(message)); n > width {
					width = n
				}
				fmt.Fprintf(a.stderr, "\r%s", cyan(message))
				i = (i + 1) % len(spinGlyphs)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
