package handlers

import (
	"fmt"
	"net/http"

	"partyhub/internal/game"
)

// hostKeyFrom pulls the host credential from the X-Host-Key header, or the
// key query parameter for links the host opens in a plain browser tab.
func hostKeyFrom(r *http.Request) string {
	if key := r.Header.Get("X-Host-Key"); key != "" {
		return key
	}
	return r.URL.Query().Get("key")
}

// requireOp guards a route according to the session op table: host-only
// ops demand the host key, checked with plain equality. Failures never
// leak whether a round is running.
func (h *Handler) requireOp(op game.Op) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if op.HostOnly() && hostKeyFrom(r) != h.session.HostKey() {
				respondError(w, fmt.Errorf("%w: valid host key required", game.ErrUnauthorized))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
