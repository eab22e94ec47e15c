package verbose

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/chriscorrea/babel/internal/config"
	"github.com/chriscorrea/babel/internal/lang"
	"github.com/chriscorrea/babel/internal/translate"

	"github.com/fatih/color"
)

// OutputConfig contains parameters for verbose output formatting
type OutputConfig struct {
	Writer       io.Writer
	KeyColor     *color.Color
	ValueColor   *color.Color
	HeaderColor  *color.Color
	EnableColors bool
}

// DefaultOutputConfig returns a default configuration for verbose output
func DefaultOutputConfig(writer io.Writer) *OutputConfig {
	return &OutputConfig{
		Writer:       writer,
		KeyColor:     color.New(color.FgCyan, color.Bold),
		ValueColor:   color.New(color.FgMagenta),
		HeaderColor:  color.New(color.FgYellow, color.Bold),
		EnableColors: true,
	}
}

type param struct {
	Key   string
	Value string
}

// PrintParameters displays the translation request in a formatted, multi-column table
func PrintParameters(cfg *config.Config, transport string, req translate.Request, tcfg translate.Config, outputCfg *OutputConfig) {
	if outputCfg == nil {
		outputCfg = DefaultOutputConfig(os.Stderr)
	}

	w := tabwriter.NewWriter(outputCfg.Writer, 0, 0, 3, ' ', 0)

	params := []param{
		{Key: "Transport", Value: transport},
		{Key: "Model", Value: req.Model()},
		{Key: "Source", Value: languageLabel(req.Source())},
		{Key: "Target", Value: languageLabel(req.Target())},
	}

	switch transport {
	case "ollama":
		params = append(params, param{Key: "Host", Value: cfg.Ollama.Host})
	case "local":
		params = append(params, param{Key: "Device", Value: cfg.Local.Device})
	}

	// sampling options in a stable order; only those that will be sent
	labels := []struct{ name, label, format string }{
		{"temperature", "Temperature", "%.2f"},
		{"max_tokens", "Max New Tokens", "%.0f"},
		{"top_p", "Top P", "%.2f"},
		{"top_k", "Top K", "%.0f"},
		{"repeat_penalty", "Repeat Penalty", "%.2f"},
		{"seed", "Seed", "%.0f"},
	}
	for _, l := range labels {
		if v, ok := req.Option(l.name); ok {
			params = append(params, param{Key: l.label, Value: fmt.Sprintf(l.format, v)})
		}
	}

	if stop := req.Stop(); len(stop) > 0 {
		params = append(params, param{Key: "Stop", Value: fmt.Sprintf("%q", stop)})
	}

	params = append(params, param{Key: "Timeout", Value: fmt.Sprintf("%ds", cfg.Parameters.Timeout)})

	// iterate through the params slice and print rows in pairs
	for i := 0; i < len(params); i += 2 {
		p1 := params[i]

		if (i + 1) < len(params) {
			p2 := params[i+1]
			printRow(w, outputCfg, p1.Key, p1.Value, p2.Key, p2.Value)
		} else {
			printRow(w, outputCfg, p1.Key, p1.Value, "", "")
		}
	}

	// add system prompt at end
	if tcfg.SystemPrompt != "" {
		printRow(w, outputCfg, "System Prompt", truncate(tcfg.SystemPrompt, 65), "", "")
	}

	fmt.Fprintf(w, "\n")
	w.Flush()
}

func languageLabel(code string) string {
	name := lang.DisplayName(code)
	if name == code {
		return code
	}
	return fmt.Sprintf("%s (%s)", name, code)
}

// truncate shortens s to at most limit runes, first line only
func truncate(s string, limit int) string {
	for i, r := range s {
		if r == '\n' {
			s = s[:i] + "..."
			break
		}
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit-3]) + "..."
	}
	return s
}

// printRow prints a multi-column row for one or two key-value pairs
// and handles color formatting and alignment via tabwriter
func printRow(w io.Writer, outputCfg *OutputConfig, key1, value1, key2, value2 string) {
	keySprint := outputCfg.KeyColor.SprintFunc()
	valueSprint := outputCfg.ValueColor.SprintFunc()

	if !outputCfg.EnableColors {
		keySprint = fmt.Sprint
		valueSprint = fmt.Sprint
	}

	if key2 != "" {
		fmt.Fprintf(w, "%s:\t%s\t%s:\t%s\n",
			keySprint(key1),
			valueSprint(value1),
			keySprint(key2),
			valueSprint(value2),
		)
	} else {
		// only two columns for the last item of an odd-numbered list
		fmt.Fprintf(w, "%s:\t%s\n",
			keySprint(key1),
			valueSprint(value1),
		)
	}
}
