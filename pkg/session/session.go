// Package session keeps interactive views alive between requests.
//
// A [Session] wraps one [view.Viewer] together with the camera it drives.
// The HTTP host creates one per browser tab and feeds it the events it
// receives; the viewer is not safe for concurrent use, so every access goes
// through [Session.Do].
//
// Two stores are provided:
//   - [MemoryStore]: live sessions of the HTTP host, with sliding expiry
//   - [FileStore]: the last selection and query of the CLI browser, so the
//     next run resumes where the previous one stopped
//
// # Usage
//
//	store := session.NewMemoryStore(session.DefaultTTL)
//	sess, err := store.Create(g, session.Params{Source: "family.csv"})
//	if err != nil {
//	    return err
//	}
//	err = sess.Do(func(v *view.Viewer) error {
//	    return v.Click("binh")
//	})
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/matzehuels/kintree/pkg/focus"
	"github.com/matzehuels/kintree/pkg/view"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// Default durations and screen size.
const (
	// DefaultTTL is how long an idle session is kept.
	DefaultTTL = 30 * time.Minute

	// DefaultStateTTL is how long the CLI remembers the last selection.
	DefaultStateTTL = 30 * 24 * time.Hour

	DefaultScreenWidth  = 1280.0
	DefaultScreenHeight = 800.0
)

// Session is one interactive view.
type Session struct {
	ID        string    `json:"id"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	mu     sync.Mutex
	viewer *view.Viewer
	camera *camera
}

// IsExpired reports whether the session has expired at now.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Do runs fn with exclusive access to the viewer.
func (s *Session) Do(fn func(v *view.Viewer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.viewer)
}

// Camera returns the view the camera is moving to and the fit request that
// started the move.
func (s *Session) Camera() (focus.View, focus.FitRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera.vp.Target(), s.camera.last
}

// Resize changes the screen size used for later fits.
func (s *Session) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera.vp.Resize(width, height)
}

// camera forwards to a viewport and remembers the last request.
type camera struct {
	vp   *focus.Viewport
	last focus.FitRequest
}

func (c *camera) Fit(req focus.FitRequest) {
	c.last = req
	c.vp.Fit(req)
}

func (c *camera) SetBounds(b focus.BoundsFunc) { c.vp.SetBounds(b) }
