package searxng

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rhuss/mcp-searxng/pkg/debug"
)

// Selectors for the SearXNG simple theme result page.
const (
	resultSelector  = "article.result"
	linkSelector    = "a.url_header"
	titleSelector   = "h3"
	contentSelector = "p.content"
)

// Extract parses a SearXNG result page and returns up to maxResults
// results in document order.
//
// Only the first maxResults result articles are considered. Articles
// without a link are dropped, so fewer results may be returned. Missing
// titles and snippets are replaced by NoTitle and NoDescription. Markup
// without result articles yields an empty, non-nil slice.
func Extract(markup []byte, maxResults int) ([]Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing result page: %w", err)
	}
	return extractDocument(doc, maxResults), nil
}

func extractDocument(doc *goquery.Document, maxResults int) []Result {
	results := make([]Result, 0)
	if maxResults <= 0 {
		return results
	}

	articles := doc.Find(resultSelector)
	debug.Log("extract", "result articles found", "count", articles.Length(), "max_results", maxResults)
	if articles.Length() > maxResults {
		articles = articles.Slice(0, maxResults)
	}

	articles.Each(func(i int, article *goquery.Selection) {
		link := article.Find(linkSelector).First()
		href, ok := link.Attr("href")
		if !ok {
			debug.Log("extract", "skipping result without link", "index", i)
			return
		}

		results = append(results, Result{
			Title:   textOr(article.Find(titleSelector).First(), NoTitle),
			URL:     href,
			Content: textOr(article.Find(contentSelector).First(), NoDescription),
		})
	})

	return results
}

// textOr returns the trimmed text of sel, or fallback when sel is empty.
func textOr(sel *goquery.Selection, fallback string) string {
	if sel.Length() == 0 {
		return fallback
	}
	return strings.TrimSpace(sel.Text())
}
