// Package httputil fetches remote documents for the data sources.
//
// [Client] wraps net/http with the three things every remote source needs:
//
//   - response caching through a [cache.Cache] keyed by namespace and key
//   - [Retry] with exponential backoff for transient failures
//   - observability hooks for each request
//
// Transient failures are network errors, 5xx responses and 429 rate limits;
// they are wrapped with [Retryable]. A 404 maps to [ErrNotFound] and is
// returned at once.
//
//	c := httputil.NewClient()
//	c.Cache, c.TTL = fileCache, time.Hour
//	body, err := c.Get(ctx, "sheets", sheetID, exportURL)
package httputil
