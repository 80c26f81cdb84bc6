package game

import "time"

// onlineWindow is how recently a player must have polled to show as online.
// Liveness is cosmetic; nobody is ejected for going quiet.
const onlineWindow = 30 * time.Second

// PlayerView is one roster line. IDs are visible to the whole party since
// player-targeted votes need them; the session trusts the living room.
type PlayerView struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	Active bool     `json:"active"`
	Online bool     `json:"online"`
}

// RoundView is the public slice of the current round: the prompt, progress
// counts, the frozen candidates during voting, and the reveal once frozen.
type RoundView struct {
	Number      int            `json:"number"`
	Mode        Mode           `json:"mode"`
	Label       string         `json:"label"`
	Phase       Phase          `json:"phase"`
	Prompt      Prompt         `json:"prompt"`
	StartedAt   time.Time      `json:"startedAt"`
	Submissions int            `json:"submissions"`
	Votes       int            `json:"votes"`
	Entries     []Entry        `json:"entries,omitempty"`
	Reveal      *RevealPayload `json:"reveal,omitempty"`
}

// YouView is the per-player fragment added when the poll names a player.
type YouView struct {
	ID        PlayerID     `json:"id"`
	Name      string       `json:"name"`
	Points    int          `json:"points"`
	Active    bool         `json:"active"`
	Submitted bool         `json:"submitted"`
	Voted     bool         `json:"voted"`
	Private   *PrivateView `json:"private,omitempty"`
}

// Snapshot is one versioned view of the whole session. Clients poll with
// their last seen version and get either a full snapshot or no-change.
type Snapshot struct {
	Version    uint64       `json:"version"`
	Phase      Phase        `json:"phase"`
	Players    []PlayerView `json:"players"`
	Scoreboard []ScoreRow   `json:"scoreboard"`
	Round      *RoundView   `json:"round,omitempty"`
	You        *YouView     `json:"you,omitempty"`
}

// PlayerTick is the host's per-player progress line.
type PlayerTick struct {
	Player    PlayerID `json:"player"`
	Name      string   `json:"name"`
	Submitted bool     `json:"submitted"`
	Voted     bool     `json:"voted"`
}

// ModeView describes one playable mode for the host's round picker.
type ModeView struct {
	Key   Mode   `json:"key"`
	Label string `json:"label"`
}

// HostSnapshot is the public snapshot plus everything hidden: round
// secrets, per-player ticks, deck levels. JoinURL is filled at the edge
// where the server's address is known.
type HostSnapshot struct {
	Snapshot
	Secrets *RoundSecrets  `json:"secrets,omitempty"`
	Ticks   []PlayerTick   `json:"ticks,omitempty"`
	Decks   map[string]int `json:"decks,omitempty"`
	Modes   []ModeView     `json:"modes"`
	JoinURL string         `json:"joinUrl,omitempty"`
}

func buildPlayerViews(reg *Registry, now time.Time) []PlayerView {
	players := reg.List()
	out := make([]PlayerView, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerView{
			ID:     p.ID,
			Name:   p.Name,
			Active: p.Active,
			Online: p.Active && now.Sub(p.LastSeen) < onlineWindow,
		})
	}
	return out
}

func buildRoundView(r *Round) *RoundView {
	if r == nil {
		return nil
	}
	view := &RoundView{
		Number:      r.Number,
		Mode:        r.Mode,
		Label:       r.Mode.Label(),
		Phase:       r.Phase,
		Prompt:      r.Prompt,
		StartedAt:   r.CreatedAt,
		Submissions: len(r.Submissions),
		Votes:       len(r.Votes),
		Reveal:      r.Reveal,
	}
	if r.Phase == PhaseVoting && len(r.Entries) > 0 {
		view.Entries = r.Entries
	}
	return view
}

func buildTicks(reg *Registry, r *Round) []PlayerTick {
	if r == nil {
		return nil
	}
	players := reg.ActivePlayers()
	out := make([]PlayerTick, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerTick{
			Player:    p.ID,
			Name:      p.Name,
			Submitted: r.HasSubmitted(p.ID),
			Voted:     r.HasVoted(p.ID),
		})
	}
	return out
}

func buildModeViews() []ModeView {
	modes := Modes()
	out := make([]ModeView, 0, len(modes))
	for _, m := range modes {
		out = append(out, ModeView{Key: m, Label: m.Label()})
	}
	return out
}
