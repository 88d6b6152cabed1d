package analysis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/brian/letter-agent/internal/fetch"
)

// maxConcurrentFetches bounds parallel article downloads.
const maxConcurrentFetches = 4

// FetchAll retrieves the given article URLs concurrently. Per-URL failures
// are returned as warnings; the call fails only when nothing could be
// fetched. Results keep the input URL order.
func FetchAll(ctx context.Context, urls []string, useBrowser, verbose bool) ([]*fetch.Article, []string, error) {
	if len(urls) == 0 {
		return nil, nil, fmt.Errorf("no article URLs given")
	}

	articles := make([]*fetch.Article, len(urls))
	errs := make([]error, len(urls))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentFetches)

	for i, urlStr := range urls {
		group.Go(func() error {
			article, err := fetch.FetchArticle(groupCtx, urlStr, useBrowser, verbose)
			if err != nil {
				errs[i] = err
				return nil
			}
			articles[i] = article
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	var fetched []*fetch.Article
	var warnings []string
	for i := range urls {
		if errs[i] != nil {
			warnings = append(warnings, fmt.Sprintf("failed to fetch %s: %v", urls[i], errs[i]))
			continue
		}
		fetched = append(fetched, articles[i])
	}

	if len(fetched) == 0 {
		return nil, warnings, fmt.Errorf("all %d article fetches failed", len(urls))
	}
	return fetched, warnings, nil
}
