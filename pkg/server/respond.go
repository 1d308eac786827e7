package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := string(kerrors.GetCode(err))
	if code == "" {
		code = string(kerrors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: kerrors.UserMessage(err)}})
}

func statusFor(err error) int {
	switch kerrors.KindOf(err) {
	case kerrors.KindNotFound:
		return http.StatusNotFound
	case kerrors.KindStructure:
		return http.StatusUnprocessableEntity
	case kerrors.KindNetwork:
		return http.StatusBadGateway
	case kerrors.KindInput:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// decode reads a JSON body into v. An empty body leaves v unchanged.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "invalid request body: %v", err)
	}
	return nil
}

var contentTypes = map[string]string{
	"json": "application/json; charset=utf-8",
	"dot":  "text/vnd.graphviz; charset=utf-8",
	"svg":  "image/svg+xml",
	"png":  "image/png",
	"html": "text/html; charset=utf-8",
}
