package cmd

import (
	"fmt"
	"strings"

	"github.com/chriscorrea/babel/internal/config"
	"github.com/chriscorrea/babel/internal/llm/common"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
)

// promptForTranslation asks for the text and both languages, starting from the resolved config
// the text is trimmed here; whitespace-only input is refused
func promptForTranslation(cfg *config.Config, ask askFunc) error {
	cyan := color.New(color.FgCyan).SprintFunc()

	var text string
	textPrompt := &survey.Multiline{
		Message: fmt.Sprintf("%s Text to translate:", cyan("📝")),
	}
	if err := ask(textPrompt, &text, survey.WithValidator(survey.Required)); err != nil {
		return common.NewError(common.CategoryConfig, "interactive input failed", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return common.NewError(common.CategoryConfig, "nothing to translate", nil).
			WithHint("Enter some text, or pass it with --text")
	}
	cfg.Translation.Text = text

	source := cfg.Translation.Source
	sourcePrompt := &survey.Input{
		Message: fmt.Sprintf("%s Source language (or auto):", cyan("🌐")),
		Default: source,
	}
	if err := ask(sourcePrompt, &source); err != nil {
		return common.NewError(common.CategoryConfig, "interactive input failed", err)
	}

	target := cfg.Translation.Target
	targetPrompt := &survey.Input{
		Message: fmt.Sprintf("%s Target language:", cyan("🎯")),
		Default: target,
	}
	if err := ask(targetPrompt, &target); err != nil {
		return common.NewError(common.CategoryConfig, "interactive input failed", err)
	}

	if s := strings.TrimSpace(source); s != "" {
		cfg.Translation.Source = s
	}
	if t := strings.TrimSpace(target); t != "" {
		cfg.Translation.Target = t
	}
	return nil
}
