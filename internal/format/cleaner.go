package format

import (
	"regexp"
	"strings"
)

var (
	// a reply wrapped in a single code fence, with or without a language tag
	fenceRegex = regexp.MustCompile("(?s)^```+[\\w-]*\\s*\\n(.*?)\\n?```+$")

	// chatty models sometimes label the answer
	labelRegex = regexp.MustCompile(`(?i)^(translation|translated text|here is the translation)\s*(\([^)]*\))?\s*:\s*`)

	quotePairs = [][2]string{
		{`"`, `"`},
		{"'", "'"},
		{"“", "”"},
		{"„", "”"},
		{"«", "»"},
		{"「", "」"},
	}
)

// CleanTranslation strips packaging that models add around a translation:
// a surrounding code fence, a leading "Translation:" label and one pair of
// wrapping quotes. The text itself is left alone.
func CleanTranslation(response string) string {
	cleaned := strings.TrimSpace(response)

	cleaned = CleanFence(cleaned)
	cleaned = labelRegex.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	return StripQuotes(cleaned)
}

// CleanFence extracts the content of a reply that is a single fenced block
func CleanFence(response string) string {
	match := fenceRegex.FindStringSubmatch(strings.TrimSpace(response))
	if match == nil {
		return response
	}
	return strings.TrimSpace(match[1])
}

// StripQuotes removes one pair of matching quotes around the whole text
// quotes inside the text are kept, so "a" and "b" stays as it is
func StripQuotes(text string) string {
	for _, pair := range quotePairs {
		open, closing := pair[0], pair[1]
		if len(text) < len(open)+len(closing) {
			continue
		}
		if !strings.HasPrefix(text, open) || !strings.HasSuffix(text, closing) {
			continue
		}
		inner := text[len(open) : len(text)-len(closing)]
		if strings.Contains(inner, open) || strings.Contains(inner, closing) {
			continue
		}
		return strings.TrimSpace(inner)
	}
	return text
}
