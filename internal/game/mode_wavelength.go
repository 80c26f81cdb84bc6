package game

import (
	"fmt"
	"sort"
	"strings"
)

// Wavelength: the host knows a hidden target on a 0-100 spectrum, players
// guess a number, closest guess wins. Ties share the points.

type wavelengthState struct {
	Target int
}

type wavelengthStrategy struct {
	noVotePhase
	noPrivateView
}

func (wavelengthStrategy) Mode() Mode { return ModeWavelength }

func (wavelengthStrategy) Caps() Capabilities {
	return Capabilities{NumericGuess: true, AutoScored: true}
}

func (wavelengthStrategy) Begin(r *Round, req RoundRequest, env *Env) error {
	text := CleanText(req.Prompt, env.Rules.TextMaxLen)
	if text == "" {
		drawn, err := env.Decks.DrawText(ModeWavelength)
		if err != nil {
			return err
		}
		text = drawn
	}

	target := env.Rng.Intn(101)
	if req.Target != nil {
		if *req.Target < 0 || *req.Target > 100 {
			return fmt.Errorf("%w: target must be between 0 and 100", ErrInvalidContent)
		}
		target = *req.Target
	}

	r.Prompt = Prompt{Text: text}
	r.Hidden = &wavelengthState{Target: target}
	return nil
}

func (wavelengthStrategy) Submit(r *Round, p *Player, in Input, env *Env) error {
	if in.Guess < 0 || in.Guess > 100 {
		return fmt.Errorf("%w: guess must be between 0 and 100", ErrInvalidContent)
	}
	r.putSubmission(p.ID, Submission{Guess: in.Guess})
	return nil
}

func (wavelengthStrategy) Vote(*Round, *Player, Input, *Env) error {
	return fmt.Errorf("%w: wavelength has no voting", ErrInvalidMode)
}

func (wavelengthStrategy) Score(r *Round, env *Env) (map[PlayerID]int, *RevealPayload) {
	st := r.Hidden.(*wavelengthState)

	type guessRow struct {
		id       PlayerID
		name     string
		guess    int
		distance int
	}
	rows := make([]guessRow, 0, len(r.Submissions))
	total := 0
	for id, sub := range r.Submissions {
		rows = append(rows, guessRow{
			id:       id,
			name:     env.Reg.Name(id),
			guess:    sub.Guess,
			distance: abs(sub.Guess - st.Target),
		})
		total += sub.Guess
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].distance != rows[j].distance {
			return rows[i].distance < rows[j].distance
		}
		return strings.ToLower(rows[i].name) < strings.ToLower(rows[j].name)
	})

	deltas := make(map[PlayerID]int)
	winners := make([]PlayerID, 0)
	if len(rows) > 0 {
		closest := rows[0].distance
		for _, row := range rows {
			if row.distance == closest {
				deltas[row.id] = env.Rules.WavelengthPoints
				winners = append(winners, row.id)
			}
		}
	}

	answers := make([]RevealAnswer, 0, len(rows))
	for _, row := range rows {
		answers = append(answers, RevealAnswer{
			Player:   row.name,
			Guess:    intPtr(row.guess),
			Distance: intPtr(row.distance),
		})
	}

	payload := &RevealPayload{
		Prompt:  r.Prompt.Text,
		Target:  intPtr(st.Target),
		Answers: answers,
		Winners: winnerNames(env, winners),
	}
	if len(rows) > 0 {
		payload.AverageGuess = floatPtr(float64(total) / float64(len(rows)))
	} else {
		payload.Note = "No guesses came in."
	}
	return deltas, payload
}

func (wavelengthStrategy) Secrets(r *Round, env *Env) *RoundSecrets {
	st := r.Hidden.(*wavelengthState)
	return &RoundSecrets{Target: intPtr(st.Target)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
