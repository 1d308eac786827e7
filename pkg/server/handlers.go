package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/focus"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/render"
	"github.com/matzehuels/kintree/pkg/search"
	"github.com/matzehuels/kintree/pkg/session"
	"github.com/matzehuels/kintree/pkg/view"
)

type sessionState struct {
	ID     string           `json:"id"`
	State  string           `json:"state"`
	Graph  graph.Graph      `json:"graph"`
	Search view.SearchState `json:"search"`
	Info   *view.Info       `json:"info,omitempty"`
	Camera cameraState      `json:"camera"`
}

type cameraState struct {
	View focus.View       `json:"view"`
	Fit  focus.FitRequest `json:"fit"`
}

type createRequest struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Refresh bool    `json:"refresh"`
}

type selectRequest struct {
	ID string `json:"id"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type keyRequest struct {
	Key string `json:"key"`
}

type pickRequest struct {
	Index int `json:"index"`
}

type measureRequest struct {
	Sizes  map[string]layout.Size `json:"sizes"`
	Width  float64                `json:"width"`
	Height float64                `json:"height"`
}

type deleteRequest struct {
	NodeIDs []string `json:"node_ids"`
	EdgeIDs []string `json:"edge_ids"`
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *session.Session)

func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		h(w, r, sess)
	}
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = render.FormatJSON
	}
	opts := s.opts
	opts.Formats = []string{format}
	opts.Selected = q.Get("selected")
	opts.Refresh, _ = strconv.ParseBool(q.Get("refresh"))

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	opts := s.opts
	opts.Refresh = req.Refresh

	res, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess, err := s.store.Create(res.Family, session.Params{
		Source:      opts.Source,
		Layout:      opts.Layout,
		Diagnostics: res.Document.Diagnostics,
		Width:       req.Width,
		Height:      req.Height,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	s.respond(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req selectRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.event(w, sess, func(v *view.Viewer) error { return v.Click(req.ID) })
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	s.event(w, sess, func(v *view.Viewer) error {
		v.CloseInfo()
		return nil
	})
}

func (s *Server) handlePane(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	s.event(w, sess, func(v *view.Viewer) error {
		v.PaneClick()
		return nil
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req searchRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.event(w, sess, func(v *view.Viewer) error {
		v.SearchFocus()
		v.SearchInput(req.Query)
		return nil
	})
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req keyRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	key, ok := search.ParseKey(req.Key)
	if !ok {
		s.writeError(w, kerrors.New(kerrors.ErrCodeInvalidInput, "unknown key %q", req.Key))
		return
	}
	s.event(w, sess, func(v *view.Viewer) error {
		v.SearchKey(key)
		return nil
	})
}

func (s *Server) handlePick(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req pickRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.event(w, sess, func(v *view.Viewer) error {
		if !v.SearchPick(req.Index) {
			return kerrors.New(kerrors.ErrCodeInvalidInput, "no candidate at index %d", req.Index)
		}
		return nil
	})
}

func (s *Server) handleMeasure(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req measureRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sess.Resize(req.Width, req.Height)
	s.event(w, sess, func(v *view.Viewer) error { return v.Measure(req.Sizes) })
}

func (s *Server) handleDeleteNodes(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req deleteRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	var deleted bool
	_ = sess.Do(func(v *view.Viewer) error {
		deleted = v.Delete(req.NodeIDs, req.EdgeIDs)
		return nil
	})
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// event applies fn and answers with the resulting state.
func (s *Server) event(w http.ResponseWriter, sess *session.Session, fn func(v *view.Viewer) error) {
	if err := sess.Do(fn); err != nil {
		s.writeError(w, err)
		return
	}
	s.respond(w, http.StatusOK, sess)
}

func (s *Server) respond(w http.ResponseWriter, status int, sess *session.Session) {
	st := sessionState{ID: sess.ID, State: focus.Idle.String()}
	_ = sess.Do(func(v *view.Viewer) error {
		st.Graph = v.Snapshot()
		st.Search = v.Search()
		if v.SelectedID() != "" {
			st.State = focus.Focused.String()
		}
		if info, ok := v.Info(); ok {
			st.Info = &info
		}
		return nil
	})
	st.Camera.View, st.Camera.Fit = sess.Camera()
	writeJSON(w, status, st)
}
