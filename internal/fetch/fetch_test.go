package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<html>
<head>
  <title>Rural Hospital Faces Closure - Example News</title>
  <meta property="og:title" content="Rural Hospital Faces Closure">
</head>
<body>
  <nav>Home | News | Sports</nav>
  <article>
    <p>The county hospital may close within six months, officials said.</p>
    <p>Thousands of patients would lose access to emergency medical care.</p>
  </article>
  <footer>Copyright Example News</footer>
</body>
</html>`

func TestURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "LetterAgent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "county hospital")
}

func TestURLErrors(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		_, err := URL(context.Background(), "not-a-url", nil)
		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr)
	})

	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := URL(context.Background(), server.URL, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}

func TestExtractArticleText(t *testing.T) {
	title, text, err := ExtractArticleText(articleHTML)
	require.NoError(t, err)

	// og:title wins over the <title> tag.
	assert.Equal(t, "Rural Hospital Faces Closure", title)
	assert.Contains(t, text, "county hospital may close")
	assert.Contains(t, text, "emergency medical care")
	// Navigation and footer noise is stripped.
	assert.NotContains(t, text, "Home | News")
	assert.NotContains(t, text, "Copyright")
}

func TestExtractArticleTextFallsBackToBody(t *testing.T) {
	html := `<html><head><title>Plain Page</title></head><body><p>Just a paragraph.</p></body></html>`
	title, text, err := ExtractArticleText(html)
	require.NoError(t, err)
	assert.Equal(t, "Plain Page", title)
	assert.Contains(t, text, "Just a paragraph.")
}

func TestFetchArticle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	article, err := FetchArticle(context.Background(), server.URL, false, false)
	require.NoError(t, err)
	assert.Equal(t, "Rural Hospital Faces Closure", article.Title)
	assert.Contains(t, article.Text, "county hospital")
	assert.Equal(t, server.URL, article.URL)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("short"))
	assert.False(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength+1)))
}

func TestSource(t *testing.T) {
	assert.Equal(t, "example.com", Source("https://www.example.com/news/article"))
	assert.Equal(t, "news.okstate.example", Source("https://news.okstate.example/a"))
	assert.Equal(t, "unknown", Source("::bad::"))
}
