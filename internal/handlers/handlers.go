package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"partyhub/internal/config"
	"partyhub/internal/game"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	session *game.Session
	config  *config.Config
}

// New creates a new handler
func New(session *game.Session, cfg *config.Config) *Handler {
	return &Handler{session: session, config: cfg}
}

// Session returns the handler's session (for testing)
func (h *Handler) Session() *game.Session {
	return h.session
}

// errorBody is the uniform error response: a human message plus a stable
// machine kind.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

var kindStatus = map[string]int{
	"not_found":       http.StatusNotFound,
	"invalid_phase":   http.StatusConflict,
	"invalid_content": http.StatusBadRequest,
	"invalid_mode":    http.StatusBadRequest,
	"unauthorized":    http.StatusForbidden,
	"self_target":     http.StatusBadRequest,
	"bad_request":     http.StatusBadRequest,
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, err error) {
	kind := game.ErrorKind(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusBadRequest
	}
	respondJSON(w, status, errorBody{Error: err.Error(), Kind: kind})
}

// decodeJSON fills v from the request body. An empty body is fine; every
// request type has usable zero values.
func decodeJSON(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// statusResponse acknowledges a mutation and tells pollers where the
// version moved.
type statusResponse struct {
	OK      bool   `json:"ok"`
	Version uint64 `json:"version"`
}

func (h *Handler) ack(w http.ResponseWriter) {
	respondJSON(w, http.StatusOK, statusResponse{OK: true, Version: h.session.Version()})
}
