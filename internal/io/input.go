package io

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadText gathers the text to translate from piped stdin and CLI arguments
// the order is: stdin, then CLI args; an empty result means neither was given
func ReadText(stdin *os.File, cliArgs []string) (string, error) {
	var builder strings.Builder
	var hasContent bool

	// 1: read from stdin if it is a pipe or a file
	if stdin != nil {
		stat, err := stdin.Stat()
		if err != nil {
			return "", fmt.Errorf("failed to stat stdin: %w", err)
		}

		if (stat.Mode() & os.ModeCharDevice) == 0 {
			stdinContent, err := io.ReadAll(stdin)
			if err != nil {
				return "", fmt.Errorf("failed to read from stdin: %w", err)
			}

			// trim trailing whitespace
			content := strings.TrimRight(string(stdinContent), "\r\n\t ")
			if content != "" {
				builder.WriteString(content)
				hasContent = true
			}
		}
	}

	// 2: join CLI arguments with spaces
	if len(cliArgs) > 0 {
		cliContent := strings.Join(cliArgs, " ")
		if cliContent != "" {
			if hasContent {
				builder.WriteString("\n\n")
			}
			builder.WriteString(cliContent)
		}
	}

	return builder.String(), nil
}
