package fetch

import (
	"context"
	"fmt"
)

// Article is the extracted content of one news article.
type Article struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Source string `json:"source"`
	Text   string `json:"text"`
}

// maxArticleChars caps stored article text; long pages blow up prompt size.
const maxArticleChars = 5000

// FetchArticle retrieves one article and extracts its title and body text.
// When useBrowser is set and the HTTP fetch yields too little text, the page
// is re-rendered in a headless browser before giving up.
func FetchArticle(ctx context.Context, urlStr string, useBrowser, verbose bool) (*Article, error) {
	result, err := URL(ctx, urlStr, nil)
	if err != nil {
		return nil, err
	}

	title, text, err := ExtractArticleText(result.HTML)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	if useBrowser && ShouldUseBrowser(text) {
		if html, browserErr := BrowserSimple(ctx, urlStr, verbose); browserErr == nil {
			if browserTitle, browserText, extractErr := ExtractArticleText(html); extractErr == nil && len(browserText) > len(text) {
				title, text = browserTitle, browserText
			}
		}
		// Browser failures fall through to the HTTP content.
	}

	if text == "" {
		return nil, &Error{URL: urlStr, Message: "no article text extracted"}
	}
	if len(text) > maxArticleChars {
		text = text[:maxArticleChars]
	}
	if title == "" {
		title = "Untitled"
	}

	return &Article{
		URL:    urlStr,
		Title:  title,
		Source: Source(urlStr),
		Text:   text,
	}, nil
}

// Summary returns a one-line description of the article for display.
func (a *Article) Summary() string {
	return fmt.Sprintf("%s (%s)", a.Title, a.Source)
}
