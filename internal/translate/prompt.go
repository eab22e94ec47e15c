package translate

import (
	"fmt"
	"sort"
)

// DefaultSystemPrompt instructs the model to act as a plain translator
const DefaultSystemPrompt = `You are a professional translator.
Translate the user's text from {source_name} ({source}) to {target_name} ({target}).
Preserve meaning, tone and formatting.
Output only the translated text, without quotes, notes or explanations.`

// PlayfulSystemPrompt keeps the translation readable but mixes in words from other languages
const PlayfulSystemPrompt = `You are a funny but still understandable translator.

Goal:
- Translate {source_name} to {target_name}, but make it playful by sprinkling MANY languages.

Rules:
- Sprinkle MANY short words or very short phrases from at least EIGHT other languages.
- Aim for 2-3 foreign words per sentence when possible.
- Output only the translated text.`

const (
	StyleDefault = "default"
	StylePlayful = "playful"
)

var presets = map[string]string{
	StyleDefault: DefaultSystemPrompt,
	StylePlayful: PlayfulSystemPrompt,
}

// Styles returns the names of the built-in instruction presets
func Styles() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveConfig picks the system instruction for a run
// an explicit prompt wins; the default style leaves the prompt empty
func ResolveConfig(style, systemPrompt string) (Config, error) {
	if systemPrompt != "" {
		return Config{SystemPrompt: systemPrompt}, nil
	}
	if style == "" || style == StyleDefault {
		return Config{}, nil
	}

	preset, ok := presets[style]
	if !ok {
		return Config{}, fmt.Errorf("unknown style %q (available: %v)", style, Styles())
	}
	return Config{SystemPrompt: preset}, nil
}
