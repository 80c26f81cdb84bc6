package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"partyhub/internal/game"
)

type startRoundResponse struct {
	OK      bool       `json:"ok"`
	Version uint64     `json:"version"`
	Round   int        `json:"round"`
	Mode    game.Mode  `json:"mode"`
	Label   string     `json:"label"`
	Phase   game.Phase `json:"phase"`
}

// StartRound begins a new round. Body is a game.RoundRequest; an empty
// prompt draws from the built-in decks.
func (h *Handler) StartRound(w http.ResponseWriter, r *http.Request) {
	var req game.RoundRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	round, err := h.session.StartRound(req)
	if err != nil {
		log.Printf("❌ Start round failed: %v", err)
		respondError(w, err)
		return
	}

	log.Printf("🚀 Round %d started: %s", round.Number, round.Mode.Label())
	respondJSON(w, http.StatusOK, startRoundResponse{
		OK:      true,
		Version: h.session.Version(),
		Round:   round.Number,
		Mode:    round.Mode,
		Label:   round.Mode.Label(),
		Phase:   round.Phase,
	})
}

type advanceResponse struct {
	OK      bool   `json:"ok"`
	Changed bool   `json:"changed"`
	Version uint64 `json:"version"`
}

// Advance opens the voting phase of a two-phase round. Repeating it while
// voting is already open reports changed=false.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	changed, err := h.session.AdvanceToVoting()
	if err != nil {
		respondError(w, err)
		return
	}
	if changed {
		log.Printf("📡 Voting is open")
	}
	respondJSON(w, http.StatusOK, advanceResponse{OK: true, Changed: changed, Version: h.session.Version()})
}

type revealResponse struct {
	OK      bool                `json:"ok"`
	Version uint64              `json:"version"`
	Reveal  *game.RevealPayload `json:"reveal"`
}

// Reveal scores the round and returns the frozen payload. Safe to repeat:
// the payload never changes and points are applied once.
func (h *Handler) Reveal(w http.ResponseWriter, r *http.Request) {
	payload, err := h.session.Reveal()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, revealResponse{OK: true, Version: h.session.Version(), Reveal: payload})
}

type awardRequest struct {
	Player game.PlayerID `json:"player"`
	Points int           `json:"points"`
}

// Award grants host points after a reveal. Zero points means one.
func (h *Handler) Award(w http.ResponseWriter, r *http.Request) {
	var req awardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.session.AwardPoints(req.Player, req.Points); err != nil {
		respondError(w, err)
		return
	}
	h.ack(w)
}

type kickRequest struct {
	Player game.PlayerID `json:"player"`
}

// Kick removes a player from play. Their scores and history remain.
func (h *Handler) Kick(w http.ResponseWriter, r *http.Request) {
	var req kickRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.session.Kick(req.Player); err != nil {
		respondError(w, err)
		return
	}
	log.Printf("✅ Player %s kicked", req.Player)
	h.ack(w)
}

// HostState is the host's polling endpoint: the public snapshot plus
// hidden round state, per-player ticks, deck levels, and the join URL.
func (h *Handler) HostState(w http.ResponseWriter, r *http.Request) {
	since, _ := strconv.ParseUint(r.URL.Query().Get("since"), 10, 64)
	snap, changed := h.session.HostSnapshot(since)
	if !changed {
		respondJSON(w, http.StatusOK, noChangeResponse{Version: h.session.Version(), NoChange: true})
		return
	}
	snap.JoinURL = h.joinURL(r)
	respondJSON(w, http.StatusOK, snap)
}

// Recap exports the whole session: standings and every round's result.
func (h *Handler) Recap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", `attachment; filename="partyhub-recap.json"`)
	respondJSON(w, http.StatusOK, h.session.Recap())
}

// ShareQR serves a QR code of the join URL for the host to put on a TV.
func (h *Handler) ShareQR(w http.ResponseWriter, r *http.Request) {
	png, err := generateQRCode(h.joinURL(r))
	if err != nil {
		log.Printf("❌ QR generation failed: %v", err)
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// joinURL is what players type or scan to get in.
func (h *Handler) joinURL(r *http.Request) string {
	if base := h.config.Server.BaseURL; base != "" {
		return base
	}
	return getBaseURL(r)
}

// generateQRCode renders the URL as a PNG QR code with medium error
// correction. The writer wants a file, so it goes through a temp path.
func generateQRCode(url string) ([]byte, error) {
	qrc, err := qrcode.NewWith(url,
		qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
		qrcode.WithEncodingMode(qrcode.EncModeByte),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	tmpFile := fmt.Sprintf("%s/partyhub_qr_%d.png", os.TempDir(), time.Now().UnixNano())
	wr, err := standard.New(tmpFile,
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
		standard.WithQRWidth(8),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create writer: %w", err)
	}
	if err := qrc.Save(wr); err != nil {
		return nil, fmt.Errorf("failed to save QR code: %w", err)
	}

	data, err := os.ReadFile(tmpFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read QR code file: %w", err)
	}
	os.Remove(tmpFile)

	return data, nil
}

// getBaseURL constructs the base URL from the request, honoring proxy
// headers.
func getBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
