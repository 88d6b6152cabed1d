package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ArticleSelectors returns selectors tried in order for news article bodies.
func ArticleSelectors() []string {
	return []string{
		"article",
		"[itemprop='articleBody']",
		".article-body",
		".article-content",
		".story-body",
		".post-content",
		".entry-content",
		"main",
		".content",
		"#content",
	}
}

// noiseSelectors are elements stripped before text extraction.
const noiseSelectors = "nav, footer, header, aside, script, style, noscript, figure, " +
	".ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup, .newsletter-signup, " +
	".related-articles, .share-tools, .comments"

// ExtractArticleText parses HTML and returns the article title and body text.
// Selectors are tried in order; the body element is the fallback when none match.
func ExtractArticleText(html string) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())
	if og, ok := doc.Find("meta[property='og:title']").Attr("content"); ok && og != "" {
		title = strings.TrimSpace(og)
	}

	doc.Find(noiseSelectors).Remove()

	var mainContent *goquery.Selection
	for _, selector := range ArticleSelectors() {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}
	if mainContent == nil {
		mainContent = doc.Find("body")
	}

	text = cleanWhitespace(mainContent.Text())
	return title, text, nil
}

// cleanWhitespace normalizes whitespace in extracted text.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
