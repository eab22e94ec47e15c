package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chriscorrea/babel/internal/app"
	"github.com/chriscorrea/babel/internal/config"
	babelio "github.com/chriscorrea/babel/internal/io"
	"github.com/chriscorrea/babel/internal/lang"
	"github.com/chriscorrea/babel/internal/llm/common"
	"github.com/chriscorrea/babel/internal/logger"
	"github.com/chriscorrea/babel/internal/registry"
	"github.com/chriscorrea/babel/internal/translate"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// current version (hardcoded for now, could be replaced with build flags)
const version = "0.1.0"

// askFunc matches survey.AskOne so prompts can be replaced in tests
type askFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// rootOptions carries the process resources a run reads from
type rootOptions struct {
	stdin      *os.File
	ask        askFunc
	isTerminal func(fd uintptr) bool
}

func defaultRootOptions() rootOptions {
	return rootOptions{
		stdin:      os.Stdin,
		ask:        survey.AskOne,
		isTerminal: isatty.IsTerminal,
	}
}

// runState is created fresh for every invocation of the root command
type runState struct {
	manager *config.Manager
	logger  *slog.Logger
}

// flagBindings maps each root flag to its configuration key
var flagBindings = map[string]string{
	"transport":      "transport",
	"text":           "translation.text",
	"source":         "translation.source",
	"target":         "translation.target",
	"model":          "translation.model",
	"style":          "translation.style",
	"system":         "parameters.system_prompt",
	"temperature":    "parameters.temperature",
	"max-new-tokens": "parameters.max_tokens",
	"top-p":          "parameters.top_p",
	"top-k":          "parameters.top_k",
	"repeat-penalty": "parameters.repeat_penalty",
	"seed":           "parameters.seed",
	"stop":           "parameters.stop",
	"timeout":        "parameters.timeout",
	"host":           "ollama.host",
	"device":         "local.device",
	"engine":         "local.engine",
}

// Execute runs the root command against the process environment and returns the exit code
// this is called by main.main()
func Execute() int {
	cmd := newRootCmd(defaultRootOptions())
	err := cmd.Execute()
	if err != nil {
		printError(cmd, err)
	}
	return app.ExitCode(err)
}

// newRootCmd builds the command tree; nothing is shared between two returned commands
func newRootCmd(opts rootOptions) *cobra.Command {
	state := &runState{}
	defaults := config.NewDefaultFromEmbedded()

	rootCmd := &cobra.Command{
		Use:     "babel [text...]",
		Version: version,
		Short:   "Translate text with a language model",
		Long: `Babel sends a short text to a translation model and prints the translation.

The model runs either behind an Ollama server (--transport ollama, the default)
or in-process through a registered inference engine (--transport local).
Text comes from --text, from the arguments, or from piped stdin.`,
		Example: `  babel --text "To jest prosty test tłumaczenia." --source pl --target en
  echo "Bonjour tout le monde" | babel --source auto --target de
  babel --host 10.0.0.5:11434 --model translategemma:12b "Hola"`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("failed to get debug flag: %w", err)
			}
			state.logger = logger.New(debug, cmd.ErrOrStderr())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, args, state, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.String("text", defaults.Translation.Text, "Text to translate")
	flags.String("source", defaults.Translation.Source, `Source language code (BCP 47), or "auto" to detect it`)
	flags.String("target", defaults.Translation.Target, "Target language code (BCP 47)")
	flags.String("model", "", "Model identifier (default depends on the transport)")
	flags.Int("max-new-tokens", defaults.Parameters.MaxTokens, "Maximum number of tokens to generate")
	flags.String("host", defaults.Ollama.Host, "Ollama base URL (env OLLAMA_HOST)")
	flags.Int("timeout", defaults.Parameters.Timeout, "Timeout in seconds for the translation request")

	flags.String("transport", defaults.Transport, "Transport to use: "+strings.Join(registry.GetAvailableProviders(), ", "))
	flags.Float64("temperature", defaults.Parameters.Temperature, "Sampling temperature")
	flags.Float64("top-p", 0, "Top P sampling (0 = not sent)")
	flags.Int("top-k", 0, "Top K sampling (0 = not sent)")
	flags.Float64("repeat-penalty", 0, "Repeat penalty (0 = not sent)")
	flags.Int("seed", 0, "Random seed for deterministic output (0 = no seed)")
	flags.StringSlice("stop", nil, "Stop sequences that end generation (repeatable or comma separated)")
	flags.String("system", "", "System prompt; supports {source}, {target}, {source_name} and {target_name}")
	flags.String("style", defaults.Translation.Style, "System prompt preset: "+strings.Join(translate.Styles(), ", "))
	flags.String("device", defaults.Local.Device, "Compute device for local inference: auto, cuda, mps or cpu")
	flags.String("engine", "", "Inference engine for local inference")

	flags.Bool("clean", false, "Strip quotes, labels and code fences from the output")
	flags.BoolP("interactive", "I", false, "Prompt for the text and languages")
	flags.Bool("test", false, "Use the mock transport")

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Display request parameters in a formatted table")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "Enable detailed debug logging")

	if err := flags.MarkHidden("test"); err != nil {
		// this shouldn't happen; the flag is defined just above
		panic(err)
	}

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLanguagesCmd())
	rootCmd.AddCommand(newManCmd(rootCmd))

	return rootCmd
}

// runTranslate resolves the request from flags, arguments and stdin and runs one translation
func runTranslate(cmd *cobra.Command, args []string, state *runState, opts rootOptions) error {
	state.manager = config.NewManager().WithLogger(state.logger)
	if err := state.manager.BindFlags(cmd.Flags(), flagBindings); err != nil {
		return common.NewError(common.CategoryConfig, "failed to bind flags", err)
	}
	if err := state.manager.Load(); err != nil {
		return common.NewError(common.CategoryConfig, "failed to load configuration", err)
	}
	cfg := state.manager.Config()

	if test, _ := cmd.Flags().GetBool("test"); test {
		cfg.Transport = "mock"
	}
	if !registry.IsProviderRegistered(cfg.Transport) {
		return common.NewError(common.CategoryConfig,
			fmt.Sprintf("unsupported transport '%s'. Available transports: %s",
				cfg.Transport, strings.Join(registry.GetAvailableProviders(), ", ")), nil)
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive {
		if err := promptForTranslation(cfg, opts.ask); err != nil {
			return err
		}
	} else if !cmd.Flags().Changed("text") {
		text, err := babelio.ReadText(opts.stdin, args)
		if err != nil {
			return common.NewError(common.CategoryConfig, "failed to read input", err)
		}
		if text != "" {
			cfg.Translation.Text = text
		}
	}

	if err := resolveLanguages(cfg, state.logger); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return common.NewError(common.CategoryConfig, "invalid settings", err)
	}

	tcfg, err := translate.ResolveConfig(cfg.Translation.Style, cfg.Parameters.SystemPrompt)
	if err != nil {
		return common.NewError(common.CategoryConfig, "invalid settings", err)
	}

	req := translate.NewRequest(
		cfg.Translation.Text,
		cfg.Translation.Source,
		cfg.Translation.Target,
		cfg.ModelFor(cfg.Transport),
		cfg.Parameters.MaxTokens,
		cfg.Parameters.SamplingOptions(),
	).WithStop(cfg.Parameters.Stop)

	verboseOutput, _ := cmd.Flags().GetBool("verbose")
	clean, _ := cmd.Flags().GetBool("clean")

	stderr := cmd.ErrOrStderr()
	spinner := false
	if f, ok := stderr.(*os.File); ok && opts.isTerminal != nil {
		spinner = opts.isTerminal(f.Fd())
	}

	appInstance := app.NewApp(cfg, state.logger, verboseOutput,
		app.WithSpinner(spinner),
		app.WithClean(clean),
		app.WithStderr(stderr),
	)

	result, err := appInstance.Run(cmd.Context(), cfg.Transport, req, tcfg)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Text)
	return nil
}

// resolveLanguages canonicalizes both language codes and detects the source when asked to
func resolveLanguages(cfg *config.Config, log *slog.Logger) error {
	source, err := lang.Normalize(cfg.Translation.Source)
	if err != nil {
		return common.NewError(common.CategoryConfig, "invalid source language", err)
	}
	target, err := lang.Normalize(cfg.Translation.Target)
	if err != nil {
		return common.NewError(common.CategoryConfig, "invalid target language", err)
	}
	if target == lang.Auto {
		return common.NewError(common.CategoryConfig, "invalid target language", errors.New(`"auto" is only valid for --source`))
	}

	if source == lang.Auto {
		detected, ok := lang.NewDetector().Detect(cfg.Translation.Text)
		if !ok {
			return common.NewError(common.CategoryConfig, "could not detect the source language", nil).
				WithHint("Pass the language explicitly, e.g. --source pl")
		}
		if log != nil {
			log.Info("Detected source language", "source", detected)
		}
		source = detected
	}

	cfg.Translation.Source = source
	cfg.Translation.Target = target
	return nil
}

// printError writes a red prefix, the failure headline and the full diagnostic to stderr
func printError(cmd *cobra.Command, err error) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", red("Error:"), app.Describe(err), err)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the current version of babel.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), "babel version ", version, "\n")
			return nil
		},
	}
}
