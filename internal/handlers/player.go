package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"partyhub/internal/game"
)

type joinRequest struct {
	Name string `json:"name"`
}

type joinResponse struct {
	ID      game.PlayerID `json:"id"`
	Name    string        `json:"name"`
	Version uint64        `json:"version"`
}

// Join adds a player to the party and hands back their identity. The id
// doubles as the credential for later actions; this is a living-room
// server, not a bank.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	p, err := h.session.Join(req.Name)
	if err != nil {
		respondError(w, err)
		return
	}

	log.Printf("✅ %s joined the party", p.Name)
	respondJSON(w, http.StatusCreated, joinResponse{
		ID:      p.ID,
		Name:    p.Name,
		Version: h.session.Version(),
	})
}

type renameRequest struct {
	Player game.PlayerID `json:"player"`
	Name   string        `json:"name"`
}

// Rename changes a player's display name.
func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.session.Rename(req.Player, req.Name); err != nil {
		respondError(w, err)
		return
	}
	h.ack(w)
}

// actionRequest carries a submit or vote. Numeric fields are pointers so
// choice 0 and "no choice" stay distinguishable.
type actionRequest struct {
	Player game.PlayerID `json:"player"`
	Text   string        `json:"text,omitempty"`
	Choice *int          `json:"choice,omitempty"`
	Guess  *int          `json:"guess,omitempty"`
	Target game.PlayerID `json:"target,omitempty"`
	Entry  *int          `json:"entry,omitempty"`
}

func (a actionRequest) input() game.Input {
	in := game.EmptyInput()
	in.Text = a.Text
	in.Target = a.Target
	if a.Choice != nil {
		in.Choice = *a.Choice
	}
	if a.Guess != nil {
		in.Guess = *a.Guess
	}
	if a.Entry != nil {
		in.Entry = *a.Entry
	}
	return in
}

// Submit stores the caller's answer for the collecting phase. Resubmitting
// replaces the earlier answer.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.session.Submit(req.Player, req.input()); err != nil {
		respondError(w, err)
		return
	}
	h.ack(w)
}

// Vote stores the caller's vote; same shape as Submit.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.session.Vote(req.Player, req.input()); err != nil {
		respondError(w, err)
		return
	}
	h.ack(w)
}

// noChangeResponse tells a poller its version is still current.
type noChangeResponse struct {
	Version  uint64 `json:"version"`
	NoChange bool   `json:"noChange"`
}

// State is the polling endpoint. ?since=N returns no-change when the
// session hasn't moved; ?player=ID adds the caller's own fragment;
// ?wait=1 long-polls until something changes or the poll window closes.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	since, _ := strconv.ParseUint(q.Get("since"), 10, 64)
	viewer := game.PlayerID(q.Get("player"))
	if viewer != "" {
		h.session.Touch(viewer)
	}

	if q.Get("wait") == "1" {
		ctx, cancel := context.WithTimeout(r.Context(), h.config.Server.PollTimeout)
		defer cancel()
		if snap, changed := h.session.WaitSnapshot(ctx, since, viewer); changed {
			respondJSON(w, http.StatusOK, snap)
			return
		}
		respondJSON(w, http.StatusOK, noChangeResponse{Version: h.session.Version(), NoChange: true})
		return
	}

	if snap, changed := h.session.SnapshotFor(since, viewer); changed {
		respondJSON(w, http.StatusOK, snap)
		return
	}
	respondJSON(w, http.StatusOK, noChangeResponse{Version: h.session.Version(), NoChange: true})
}
