// Package analysis turns fetched news articles into a structured issue brief.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brian/letter-agent/internal/fetch"
	"github.com/brian/letter-agent/internal/llm"
	"github.com/brian/letter-agent/internal/prompts"
	"github.com/brian/letter-agent/internal/types"
)

// maxKeyPoints caps the brief's key points regardless of what the model returns.
const maxKeyPoints = 5

// Analyzer produces issue briefs from article content.
type Analyzer struct {
	client llm.Client
}

// NewAnalyzer creates an Analyzer backed by the given LLM client.
func NewAnalyzer(client llm.Client) *Analyzer {
	return &Analyzer{client: client}
}

// briefResponse is the JSON shape the analysis prompt asks the model for.
type briefResponse struct {
	Topic     string   `json:"topic"`
	KeyPoints []string `json:"key_points"`
	Summary   string   `json:"summary"`
}

// Analyze extracts key points and a topic from the articles and files the
// result under a closed category. The category decision is deterministic:
// the model only supplies a free-text guess that DetectCategory resolves.
func (a *Analyzer) Analyze(ctx context.Context, articles []*fetch.Article) (*types.Brief, error) {
	if len(articles) == 0 {
		return nil, fmt.Errorf("no articles to analyze")
	}

	template, err := prompts.Get("analysis.json", "analyze-articles")
	if err != nil {
		return nil, err
	}

	prompt := prompts.Format(template, map[string]string{
		"Articles": articlesBlock(articles),
	})

	raw, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("article analysis failed: %w", err)
	}

	var resp briefResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	if len(resp.KeyPoints) == 0 {
		return nil, fmt.Errorf("analysis produced no key points")
	}
	if len(resp.KeyPoints) > maxKeyPoints {
		resp.KeyPoints = resp.KeyPoints[:maxKeyPoints]
	}

	sources := make([]string, 0, len(articles))
	var combined strings.Builder
	for _, article := range articles {
		sources = append(sources, article.URL)
		combined.WriteString(article.Text)
		combined.WriteString(" ")
	}

	return &types.Brief{
		Category:  DetectCategory(resp.Topic, combined.String()),
		KeyPoints: resp.KeyPoints,
		Sources:   sources,
		Summary:   resp.Summary,
	}, nil
}

// articlesBlock renders the articles into the prompt's input block. Text is
// already length-capped at fetch time.
func articlesBlock(articles []*fetch.Article) string {
	var b strings.Builder
	for i, article := range articles {
		fmt.Fprintf(&b, "Article %d: %s (%s)\n%s\n\n", i+1, article.Title, article.Source, article.Text)
	}
	return b.String()
}
