package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"partyhub/internal/game"
)

func TestHostRoutesRequireKey(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"StartRound", http.MethodPost, "/api/host/round/start"},
		{"Advance", http.MethodPost, "/api/host/round/advance"},
		{"Reveal", http.MethodPost, "/api/host/round/reveal"},
		{"Award", http.MethodPost, "/api/host/award"},
		{"Kick", http.MethodPost, "/api/host/kick"},
		{"State", http.MethodGet, "/api/host/state"},
		{"Recap", http.MethodGet, "/api/host/recap"},
		{"ShareQR", http.MethodGet, "/api/host/qr.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(tt.method, tt.path, nil, nil)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Contains(t, w.Body.String(), "unauthorized")

			w = ts.do(tt.method, tt.path, nil, map[string]string{"X-Host-Key": "0000000000000000"})
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestUnauthorizedAwardLeavesScoresAlone(t *testing.T) {
	ts := newTestServer(t)
	a := ts.join("Ana")

	ts.hostPost("/api/host/round/start", game.RoundRequest{Mode: game.ModeHotSeat, Prompt: "Hidden talent?"})
	ts.hostPost("/api/host/round/reveal", nil)

	w := ts.post("/api/host/award", map[string]interface{}{"player": a.ID, "points": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.get("/api/state")
	var snap game.Snapshot
	decodeBody(t, w, &snap)
	if len(snap.Scoreboard) != 1 || snap.Scoreboard[0].Points != 0 {
		t.Errorf("rejected award must not touch the scoreboard, got %+v", snap.Scoreboard)
	}
}

func TestHostKeySources(t *testing.T) {
	ts := newTestServer(t)

	t.Run("Header", func(t *testing.T) {
		w := ts.hostGet("/api/host/state")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("QueryParam", func(t *testing.T) {
		w := ts.get("/api/host/state?key=" + ts.hostKey)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("PlayerRoutesNeedNoKey", func(t *testing.T) {
		w := ts.post("/api/join", map[string]string{"name": "Ana"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestHostRoundFlow(t *testing.T) {
	ts := newTestServer(t)
	a := ts.join("Ana")
	b := ts.join("Bea")
	c := ts.join("Cal")

	w := ts.hostPost("/api/host/round/start", game.RoundRequest{
		Mode:   game.ModeVoteBattle,
		Prompt: "Best excuse for being late?",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	for _, p := range []struct {
		id   game.PlayerID
		text string
	}{
		{a.ID, "my cat hid the car keys"},
		{b.ID, "got stuck behind a parade"},
		{c.ID, "time is a social construct"},
	} {
		w = ts.post("/api/submit", map[string]string{"player": string(p.id), "text": p.text})
		if w.Code != http.StatusOK {
			t.Fatalf("submit: expected 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	w = ts.hostPost("/api/host/round/advance", nil)
	var adv advanceResponse
	decodeBody(t, w, &adv)
	if w.Code != http.StatusOK || !adv.Changed {
		t.Fatalf("advance: expected changed=true, got %d %+v", w.Code, adv)
	}

	// Advancing again is a no-op, not an error
	w = ts.hostPost("/api/host/round/advance", nil)
	decodeBody(t, w, &adv)
	if w.Code != http.StatusOK || adv.Changed {
		t.Fatalf("repeat advance: expected changed=false, got %d %+v", w.Code, adv)
	}

	votes := map[game.PlayerID]int{a.ID: 2, b.ID: 3, c.ID: 2}
	for id, entry := range votes {
		w = ts.post("/api/vote", map[string]interface{}{"player": id, "entry": entry})
		if w.Code != http.StatusOK {
			t.Fatalf("vote: expected 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	w = ts.hostPost("/api/host/round/reveal", nil)
	var revealed revealResponse
	decodeBody(t, w, &revealed)
	if w.Code != http.StatusOK || revealed.Reveal == nil {
		t.Fatalf("reveal: expected payload, got %d: %s", w.Code, w.Body.String())
	}
	if len(revealed.Reveal.Winners) != 1 || revealed.Reveal.Winners[0] != "Bea" {
		t.Errorf("expected Bea to win, got %v", revealed.Reveal.Winners)
	}

	w = ts.hostPost("/api/host/award", map[string]interface{}{"player": b.ID, "points": 2})
	if w.Code != http.StatusOK {
		t.Errorf("award: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = ts.hostPost("/api/host/kick", map[string]interface{}{"player": c.ID})
	if w.Code != http.StatusOK {
		t.Errorf("kick: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = ts.hostPost("/api/host/kick", map[string]interface{}{"player": c.ID})
	if w.Code != http.StatusNotFound {
		t.Errorf("kick twice: expected 404, got %d", w.Code)
	}
}

func TestHostState(t *testing.T) {
	ts := newTestServer(t)
	a := ts.join("Ana")
	ts.join("Bea")

	correct := 1
	w := ts.hostPost("/api/host/round/start", game.RoundRequest{
		Mode:    game.ModeTrivia,
		Prompt:  "What is 2+2?",
		Options: []string{"3", "4"},
		Correct: &correct,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = ts.post("/api/submit", map[string]interface{}{"player": a.ID, "choice": 1})
	if w.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d", w.Code)
	}

	w = ts.hostGet("/api/host/state?since=0")
	if w.Code != http.StatusOK {
		t.Fatalf("state: expected 200, got %d", w.Code)
	}
	var snap game.HostSnapshot
	decodeBody(t, w, &snap)

	if snap.Secrets == nil || snap.Secrets.Correct == nil || *snap.Secrets.Correct != 1 {
		t.Errorf("expected the answer in the host secrets, got %+v", snap.Secrets)
	}
	if len(snap.Ticks) != 2 {
		t.Fatalf("expected 2 ticks, got %d", len(snap.Ticks))
	}
	submitted := map[string]bool{}
	for _, tick := range snap.Ticks {
		submitted[tick.Name] = tick.Submitted
	}
	if !submitted["Ana"] || submitted["Bea"] {
		t.Errorf("expected only Ana marked submitted, got %v", submitted)
	}
	if len(snap.Modes) != 9 {
		t.Errorf("expected 9 modes, got %d", len(snap.Modes))
	}
	if len(snap.Decks) != 8 {
		t.Errorf("expected 8 deck levels, got %v", snap.Decks)
	}
	if snap.JoinURL == "" {
		t.Error("expected a join url")
	}

	// The no-change path works for hosts too
	w = ts.hostGet("/api/host/state?since=" + strconv.FormatUint(snap.Version, 10))
	var noChange noChangeResponse
	decodeBody(t, w, &noChange)
	if !noChange.NoChange {
		t.Errorf("expected no-change, got %s", w.Body.String())
	}
}

func TestRecapEndpoint(t *testing.T) {
	ts := newTestServer(t)
	a := ts.join("Ana")
	b := ts.join("Bea")

	ts.hostPost("/api/host/round/start", game.RoundRequest{Mode: game.ModeMostLikely, Prompt: "Who snores loudest?"})
	ts.post("/api/submit", map[string]interface{}{"player": a.ID, "target": b.ID})
	ts.post("/api/submit", map[string]interface{}{"player": b.ID, "target": b.ID})
	ts.hostPost("/api/host/round/reveal", nil)

	w := ts.hostGet("/api/host/recap")
	if w.Code != http.StatusOK {
		t.Fatalf("recap: expected 200, got %d", w.Code)
	}
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	var recap game.Recap
	decodeBody(t, w, &recap)
	if len(recap.Rounds) != 1 || recap.Rounds[0].Result == nil {
		t.Fatalf("expected one revealed round, got %+v", recap.Rounds)
	}
	if len(recap.Standings) != 2 || recap.Standings[0].Name != "Bea" {
		t.Errorf("expected Bea on top, got %+v", recap.Standings)
	}
}

func TestShareQR(t *testing.T) {
	ts := newTestServer(t)

	w := ts.hostGet("/api/host/qr.png")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("expected a PNG payload")
	}
}
