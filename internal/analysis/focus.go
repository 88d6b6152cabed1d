package analysis

import (
	"context"
	"strings"

	"github.com/brian/letter-agent/internal/fetch"
	"github.com/brian/letter-agent/internal/llm"
	"github.com/brian/letter-agent/internal/prompts"
)

// defaultFocusOptions are offered when the model cannot produce suggestions.
var defaultFocusOptions = []string{
	"Request specific legislative action on the main issue",
	"Express concern about local community impact",
	"Ask for the official's position and voting record",
	"Urge support for affected constituents",
	"Request a town hall or public meeting on the issue",
	"Ask for federal or state funding to address the problem",
}

// focusCount is how many options the prompt asks for.
const focusCount = 6

// SuggestFocus asks the model for focus areas tailored to the articles.
// Any failure falls back to the fixed defaults; this call never errors.
func (a *Analyzer) SuggestFocus(ctx context.Context, articles []*fetch.Article, state string) []string {
	if len(articles) == 0 {
		return defaultFocusOptions
	}

	template, err := prompts.Get("analysis.json", "suggest-focus")
	if err != nil {
		return defaultFocusOptions
	}

	prompt := prompts.Format(template, map[string]string{
		"Articles": articlesBlock(articles),
		"State":    state,
	})

	raw, err := a.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return defaultFocusOptions
	}

	options := parseNumberedList(raw)
	if len(options) < focusCount {
		return defaultFocusOptions
	}
	return options[:focusCount]
}

// parseNumberedList extracts "1. ..." style lines from model output.
func parseNumberedList(raw string) []string {
	var options []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > 2 && line[0] >= '1' && line[0] <= '9' && (line[1] == '.' || line[1] == ')') {
			option := strings.TrimSpace(line[2:])
			if option != "" {
				options = append(options, option)
			}
		}
	}
	return options
}
