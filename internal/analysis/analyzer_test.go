package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brian/letter-agent/internal/fetch"
	"github.com/brian/letter-agent/internal/llm"
	"github.com/brian/letter-agent/internal/types"
)

// stubClient is a deterministic llm.Client for tests.
type stubClient struct {
	response string
	err      error
	prompts  []string
}

func (s *stubClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubClient) GetModel(llm.ModelTier) string { return "stub" }
func (s *stubClient) Close() error                  { return nil }

func sampleArticles() []*fetch.Article {
	return []*fetch.Article{
		{
			URL:    "https://example.com/hospital",
			Title:  "Rural Hospital Faces Closure",
			Source: "example.com",
			Text:   "The county hospital may close, leaving patients without nearby medical care.",
		},
		{
			URL:    "https://example.com/medicaid",
			Title:  "Medicaid Changes Proposed",
			Source: "example.com",
			Text:   "Proposed Medicaid changes would affect insurance coverage statewide.",
		},
	}
}

func TestAnalyze(t *testing.T) {
	client := &stubClient{
		response: `{"topic": "rural healthcare access", "key_points": ["County hospital faces closure", "Medicaid changes reduce coverage"], "summary": "Rural healthcare access is shrinking."}`,
	}
	analyzer := NewAnalyzer(client)

	brief, err := analyzer.Analyze(context.Background(), sampleArticles())
	require.NoError(t, err)

	assert.Equal(t, types.TopicHealthcare, brief.Category)
	assert.Len(t, brief.KeyPoints, 2)
	assert.Equal(t, []string{"https://example.com/hospital", "https://example.com/medicaid"}, brief.Sources)
	assert.Equal(t, "Rural healthcare access is shrinking.", brief.Summary)

	// The prompt carried the article content.
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Rural Hospital Faces Closure")
}

func TestAnalyzeFencedResponse(t *testing.T) {
	client := &stubClient{
		response: "```json\n{\"topic\": \"energy\", \"key_points\": [\"Pipeline capacity\"], \"summary\": \"s\"}\n```",
	}
	analyzer := NewAnalyzer(client)

	brief, err := analyzer.Analyze(context.Background(), sampleArticles()[:1])
	require.NoError(t, err)
	assert.Equal(t, types.TopicEnergy, brief.Category)
}

func TestAnalyzeTruncatesKeyPoints(t *testing.T) {
	client := &stubClient{
		response: `{"topic": "taxes", "key_points": ["a","b","c","d","e","f","g"], "summary": "s"}`,
	}
	analyzer := NewAnalyzer(client)

	brief, err := analyzer.Analyze(context.Background(), sampleArticles()[:1])
	require.NoError(t, err)
	assert.Len(t, brief.KeyPoints, maxKeyPoints)
}

func TestAnalyzeErrors(t *testing.T) {
	t.Run("no articles", func(t *testing.T) {
		analyzer := NewAnalyzer(&stubClient{})
		_, err := analyzer.Analyze(context.Background(), nil)
		require.Error(t, err)
	})

	t.Run("service failure", func(t *testing.T) {
		analyzer := NewAnalyzer(&stubClient{err: &llm.ServiceError{Message: "quota exceeded"}})
		_, err := analyzer.Analyze(context.Background(), sampleArticles())
		require.Error(t, err)
		var svcErr *llm.ServiceError
		assert.True(t, errors.As(err, &svcErr))
	})

	t.Run("unparseable response", func(t *testing.T) {
		analyzer := NewAnalyzer(&stubClient{response: "not json"})
		_, err := analyzer.Analyze(context.Background(), sampleArticles())
		require.Error(t, err)
	})

	t.Run("empty key points", func(t *testing.T) {
		analyzer := NewAnalyzer(&stubClient{response: `{"topic": "t", "key_points": [], "summary": "s"}`})
		_, err := analyzer.Analyze(context.Background(), sampleArticles())
		require.Error(t, err)
	})
}
