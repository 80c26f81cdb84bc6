package game

import "time"

// Recap is the end-of-night export: final standings plus every round's
// frozen result, newest last.
type Recap struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Standings   []ScoreRow   `json:"standings"`
	Rounds      []RecapRound `json:"rounds"`
}

// RecapRound is one line of session history. Result is nil only for a
// round that was never revealed, which can only be the last one.
type RecapRound struct {
	Number    int            `json:"number"`
	Mode      Mode           `json:"mode"`
	Label     string         `json:"label"`
	Prompt    string         `json:"prompt,omitempty"`
	StartedAt time.Time      `json:"startedAt"`
	Result    *RevealPayload `json:"result,omitempty"`
}

func buildRecap(reg *Registry, board *Scoreboard, rounds []*Round) *Recap {
	out := &Recap{
		GeneratedAt: time.Now().UTC(),
		Standings:   board.Rows(reg),
		Rounds:      make([]RecapRound, 0, len(rounds)),
	}
	for _, r := range rounds {
		out.Rounds = append(out.Rounds, RecapRound{
			Number:    r.Number,
			Mode:      r.Mode,
			Label:     r.Mode.Label(),
			Prompt:    r.Prompt.Text,
			StartedAt: r.CreatedAt,
			Result:    r.Reveal,
		})
	}
	return out
}
