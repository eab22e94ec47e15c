// Package lang normalizes language codes and names them for prompts and listings.
package lang

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Auto asks for the source language to be detected from the text
const Auto = "auto"

// common lists the codes shown by the languages command
var common = []string{
	"ar", "bg", "bn", "ca", "cs", "da", "de", "el", "en", "es",
	"et", "fa", "fi", "fr", "he", "hi", "hr", "hu", "id", "it",
	"ja", "ko", "lt", "lv", "ms", "nl", "no", "pl", "pt", "pt-BR",
	"ro", "ru", "sk", "sl", "sr", "sv", "sw", "th", "tr", "uk",
	"ur", "vi", "zh", "zh-Hant",
}

// Normalize returns the canonical BCP 47 form of code
// "auto" is passed through unchanged
func Normalize(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("language code is empty")
	}
	if strings.EqualFold(code, Auto) {
		return Auto, nil
	}

	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return tag.String(), nil
}

// DisplayName returns the English name of code, or code itself when unknown
func DisplayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return name
}

// Common returns the language codes most translation models handle well
func Common() []string {
	out := make([]string, len(common))
	copy(out, common)
	return out
}
