package game

import "fmt"

// Free-text modes: players type answers, nobody votes. Hot Seat is scored
// entirely by the host; Quick Draw can auto-award unique answers.

// cleanSubmissionText applies the shared text hygiene: collapse, truncate,
// profanity screen.
func cleanSubmissionText(text string, limit int, env *Env) (string, error) {
	cleaned := CleanText(text, limit)
	if cleaned == "" {
		return "", fmt.Errorf("%w: an answer is required", ErrInvalidContent)
	}
	if ContainsBannedWord(cleaned, env.Rules.ProfanityFilter) {
		return "", fmt.Errorf("%w: keep it PG-13", ErrInvalidContent)
	}
	return cleaned, nil
}

// --- Hot Seat ---

type hotSeatStrategy struct {
	noVotePhase
	noSecrets
	noPrivateView
}

func (hotSeatStrategy) Mode() Mode { return ModeHotSeat }

func (hotSeatStrategy) Caps() Capabilities {
	return Capabilities{FreeText: true, HostAwarded: true}
}

func (hotSeatStrategy) Begin(r *Round, req RoundRequest, env *Env) error {
	text := CleanText(req.Prompt, env.Rules.TextMaxLen)
	if text == "" {
		drawn, err := env.Decks.DrawText(ModeHotSeat)
		if err != nil {
			return err
		}
		text = drawn
	}
	r.Prompt = Prompt{Text: text}
	return nil
}

func (hotSeatStrategy) Submit(r *Round, p *Player, in Input, env *Env) error {
	cleaned, err := cleanSubmissionText(in.Text, env.Rules.TextMaxLen, env)
	if err != nil {
		return err
	}
	r.putSubmission(p.ID, Submission{Text: cleaned})
	return nil
}

func (hotSeatStrategy) Vote(*Round, *Player, Input, *Env) error {
	return fmt.Errorf("%w: hot seat has no voting", ErrInvalidMode)
}

func (hotSeatStrategy) Score(r *Round, env *Env) (map[PlayerID]int, *RevealPayload) {
	answers := make([]RevealAnswer, 0, len(r.Submissions))
	for _, sub := range r.orderedSubmissions() {
		answers = append(answers, RevealAnswer{
			Player: env.Reg.Name(sub.Player),
			Text:   sub.Text,
		})
	}
	payload := &RevealPayload{
		Prompt:  r.Prompt.Text,
		Answers: answers,
		Note:    "Host awards points for the best answers.",
	}
	return nil, payload
}

// --- Quick Draw ---

type quickDrawStrategy struct {
	noVotePhase
	noSecrets
	noPrivateView
}

func (quickDrawStrategy) Mode() Mode { return ModeQuickDraw }

func (quickDrawStrategy) Caps() Capabilities {
	return Capabilities{FreeText: true, AutoScored: true, HostAwarded: true}
}

func (quickDrawStrategy) Begin(r *Round, req RoundRequest, env *Env) error {
	text := CleanText(req.Prompt, env.Rules.TextMaxLen)
	if text == "" {
		drawn, err := env.Decks.DrawText(ModeQuickDraw)
		if err != nil {
			return err
		}
		text = drawn
	}
	r.Prompt = Prompt{Text: text}
	return nil
}

func (quickDrawStrategy) Submit(r *Round, p *Player, in Input, env *Env) error {
	cleaned, err := cleanSubmissionText(in.Text, env.Rules.QuickDrawMaxLen, env)
	if err != nil {
		return err
	}
	r.putSubmission(p.ID, Submission{Text: cleaned})
	return nil
}

func (quickDrawStrategy) Vote(*Round, *Player, Input, *Env) error {
	return fmt.Errorf("%w: quick draw has no voting", ErrInvalidMode)
}

func (quickDrawStrategy) Score(r *Round, env *Env) (map[PlayerID]int, *RevealPayload) {
	groups := make(map[string][]PlayerID)
	for id, sub := range r.Submissions {
		normalized := NormalizeAnswer(sub.Text)
		if normalized == "" {
			continue
		}
		groups[normalized] = append(groups[normalized], id)
	}
	unique := make(map[PlayerID]bool)
	for _, ids := range groups {
		if len(ids) == 1 {
			unique[ids[0]] = true
		}
	}

	deltas := make(map[PlayerID]int)
	winners := make([]PlayerID, 0)
	autoScored := env.Rules.QuickDrawScoring == "unique"
	if autoScored {
		for id := range unique {
			deltas[id] = env.Rules.QuickDrawPoints
			winners = append(winners, id)
		}
	}

	answers := make([]RevealAnswer, 0, len(r.Submissions))
	for _, sub := range r.orderedSubmissions() {
		answers = append(answers, RevealAnswer{
			Player: env.Reg.Name(sub.Player),
			Text:   sub.Text,
			Unique: boolPtr(unique[sub.Player]),
		})
	}

	payload := &RevealPayload{
		Prompt:  r.Prompt.Text,
		Answers: answers,
	}
	if autoScored {
		payload.Winners = winnerNames(env, winners)
		payload.Note = "Unique answers score."
	} else {
		payload.Note = "Host picks the winner."
	}
	return deltas, payload
}
