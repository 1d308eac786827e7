package session

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/focus"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/view"
)

// Params configures a new session.
type Params struct {
	Source      string
	Layout      layout.Options
	Diagnostics *graph.Diagnostics
	// Screen size of the host; zero values use the defaults.
	Width, Height float64
}

// MemoryStore holds live sessions in process. Each access extends the
// session by the store TTL.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *log.Logger
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// WithLogger sets the logger passed to every viewer.
func WithLogger(l *log.Logger) MemoryOption {
	return func(s *MemoryStore) { s.logger = l }
}

// NewMemoryStore creates an empty store. A ttl <= 0 uses DefaultTTL.
func NewMemoryStore(ttl time.Duration, opts ...MemoryOption) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Create loads g into a new viewer and registers it under a random ID.
func (s *MemoryStore) Create(g *family.Graph, p Params) (*Session, error) {
	if p.Width <= 0 || p.Height <= 0 {
		p.Width, p.Height = DefaultScreenWidth, DefaultScreenHeight
	}
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		Source:    p.Source,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		camera:    &camera{vp: focus.NewViewport(p.Width, p.Height, nil)},
	}
	logger := s.logger.With("session", sess.ID[:8])
	sess.viewer = view.New(
		view.WithLayoutOptions(p.Layout),
		view.WithCamera(sess.camera),
		view.WithLogger(logger),
	)
	if err := sess.viewer.Load(g); err != nil {
		return nil, err
	}
	sess.viewer.SetDiagnostics(p.Diagnostics)

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	logger.Info("session created", "source", p.Source)
	return sess, nil
}

// Get returns a live session and extends its expiry.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, notFound(id, ErrNotFound)
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, notFound(id, ErrNotFound)
	}
	if sess.IsExpired(now) {
		delete(s.sessions, id)
		return nil, notFound(id, ErrExpired)
	}
	sess.ExpiresAt = now.Add(s.ttl)
	return sess, nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Cleanup removes expired sessions and returns how many were removed.
func (s *MemoryStore) Cleanup(ctx context.Context) int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if sess.IsExpired(now) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		s.logger.Debug("expired sessions removed", "count", n)
	}
	return n
}

// Run calls Cleanup every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Cleanup(ctx)
		}
	}
}

// Len returns the number of stored sessions, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func notFound(id string, cause error) error {
	return kerrors.Wrap(kerrors.ErrCodeSessionNotFound, fmt.Errorf("session %s: %w", id, cause), "session %q not found", id)
}
