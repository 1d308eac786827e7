package source

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/observability"
	"github.com/matzehuels/kintree/pkg/record"
)

// DefaultRowsTTL is how long fetched rows stay fresh.
const DefaultRowsTTL = 10 * time.Minute

// Cached serves rows from a cache, fetching from Source on a miss.
type Cached struct {
	Source Source
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
	// Refresh skips the lookup but still stores the fresh rows.
	Refresh bool
	Logger  *log.Logger
}

// NewCached wraps src with the default keyer and TTL.
func NewCached(src Source, c cache.Cache) *Cached {
	return &Cached{Source: src, Cache: c, Keyer: cache.NewDefaultKeyer(), TTL: DefaultRowsTTL}
}

func (s *Cached) Kind() string     { return s.Source.Kind() }
func (s *Cached) Location() string { return s.Source.Location() }

// Fetch returns cached rows when present. Cache failures are logged and
// fall through to the source.
func (s *Cached) Fetch(ctx context.Context) ([]record.Row, error) {
	key := s.Keyer.RowsKey(s.Source.Kind(), s.Source.Location())
	hooks := observability.Cache()

	if !s.Refresh {
		data, hit, err := s.Cache.Get(ctx, key)
		switch {
		case err != nil:
			s.warn("rows cache read failed", "err", err)
		case hit:
			var rows []record.Row
			if err := json.Unmarshal(data, &rows); err == nil {
				hooks.OnCacheHit(ctx, "rows")
				return rows, nil
			}
			s.warn("rows cache entry unreadable", "key", key)
		}
		hooks.OnCacheMiss(ctx, "rows")
	}

	rows, err := s.Source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(rows)
	if err == nil {
		err = s.Cache.Set(ctx, key, data, s.TTL)
	}
	if err != nil {
		s.warn("rows cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, "rows", len(data))
	}
	return rows, nil
}

func (s *Cached) warn(msg string, kv ...any) {
	if s.Logger != nil {
		s.Logger.Warn(msg, kv...)
	}
}
