package game

import "fmt"

// Prompt-direct vote modes: the player's "vote" is their submission, so
// Vote aliases Submit and everything resolves in the collecting phase.

// --- Most Likely To ---

type mostLikelyStrategy struct {
	noVotePhase
	noSecrets
	noPrivateView
}

func (mostLikelyStrategy) Mode() Mode { return ModeMostLikely }

func (mostLikelyStrategy) Caps() Capabilities {
	return Capabilities{ChoiceVote: true, AutoScored: true}
}

func (mostLikelyStrategy) Begin(r *Round, req RoundRequest, env *Env) error {
	text := CleanText(req.Prompt, env.Rules.TextMaxLen)
	if text == "" {
		drawn, err := env.Decks.DrawText(ModeMostLikely)
		if err != nil {
			return err
		}
		text = drawn
	}
	r.Prompt = Prompt{Text: text}
	return nil
}

func (s mostLikelyStrategy) Submit(r *Round, p *Player, in Input, env *Env) error {
	if in.Target == "" {
		return fmt.Errorf("%w: pick a player", ErrInvalidContent)
	}
	if _, err := env.Reg.Get(in.Target); err != nil {
		return fmt.Errorf("%w: vote target is not in the party", ErrInvalidContent)
	}
	// Voting for yourself is allowed here; confidence is part of the game.
	r.putSubmission(p.ID, Submission{Target: in.Target})
	return nil
}

func (s mostLikelyStrategy) Vote(r *Round, p *Player, in Input, env *Env) error {
	return s.Submit(r, p, in, env)
}

func (mostLikelyStrategy) Score(r *Round, env *Env) (map[PlayerID]int, *RevealPayload) {
	tally := make(map[PlayerID]int)
	for _, sub := range r.Submissions {
		tally[sub.Target]++
	}
	winners, _ := maxVotedPlayers(tally)

	deltas := make(map[PlayerID]int)
	for _, id := range winners {
		deltas[id] = env.Rules.MostLikelyPoints
	}

	display := make(map[string]int, len(tally))
	for id, n := range tally {
		display[env.Reg.Name(id)] = n
	}
	payload := &RevealPayload{
		Prompt:  r.Prompt.Text,
		Tally:   display,
		Winners: winnerNames(env, winners),
	}
	if len(winners) == 0 {
		payload.Note = "No votes were cast."
	}
	return deltas, payload
}

// --- Would You Rather ---

type wouldYouRatherStrategy struct {
	noVotePhase
	noSecrets
	noPrivateView
}

func (wouldYouRatherStrategy) Mode() Mode { return ModeWouldYouRather }

func (wouldYouRatherStrategy) Caps() Capabilities {
	return Capabilities{ChoiceVote: true, AutoScored: true}
}

func (wouldYouRatherStrategy) Begin(r *Round, req RoundRequest, env *Env) error {
	var pair WyrPair
	switch len(req.Options) {
	case 0:
		pair = env.Decks.DrawWyr()
	case 2:
		pair = WyrPair{
			A: CleanText(req.Options[0], env.Rules.TextMaxLen),
			B: CleanText(req.Options[1], env.Rules.TextMaxLen),
		}
		if pair.A == "" || pair.B == "" {
			return fmt.Errorf("%w: both options are required", ErrInvalidContent)
		}
	default:
		return fmt.Errorf("%w: would-you-rather takes exactly two options", ErrInvalidContent)
	}
	r.Prompt = Prompt{Text: "Would you rather...", Options: []string{pair.A, pair.B}}
	return nil
}

func (s wouldYouRatherStrategy) Submit(r *Round, p *Player, in Input, env *Env) error {
	if in.Choice != 0 && in.Choice != 1 {
		return fmt.Errorf("%w: choose option 0 or 1", ErrInvalidContent)
	}
	r.putSubmission(p.ID, Submission{Choice: in.Choice})
	return nil
}

func (s wouldYouRatherStrategy) Vote(r *Round, p *Player, in Input, env *Env) error {
	return s.Submit(r, p, in, env)
}

func (wouldYouRatherStrategy) Score(r *Round, env *Env) (map[PlayerID]int, *RevealPayload) {
	counts := [2]int{}
	for _, sub := range r.Submissions {
		if sub.Choice == 0 || sub.Choice == 1 {
			counts[sub.Choice]++
		}
	}

	majority := -1
	switch {
	case counts[0] > counts[1]:
		majority = 0
	case counts[1] > counts[0]:
		majority = 1
	}

	deltas := make(map[PlayerID]int)
	payload := &RevealPayload{
		Options: r.Prompt.Options,
		Tally: map[string]int{
			r.Prompt.Options[0]: counts[0],
			r.Prompt.Options[1]: counts[1],
		},
	}
	switch {
	case len(r.Submissions) == 0:
		payload.Note = "Nobody picked a side."
	case majority < 0:
		payload.Note = "Split decision!"
	default:
		payload.Note = fmt.Sprintf("Majority: %s", r.Prompt.Options[majority])
	}

	if env.Rules.MajorityPoints > 0 && majority >= 0 {
		winners := make([]PlayerID, 0)
		for id, sub := range r.Submissions {
			if sub.Choice == majority {
				deltas[id] = env.Rules.MajorityPoints
				winners = append(winners, id)
			}
		}
		payload.Winners = winnerNames(env, winners)
	}
	return deltas, payload
}

// --- Trivia ---

type triviaState struct {
	Correct int
}

type triviaStrategy struct {
	noVotePhase
	noPrivateView
}

func (triviaStrategy) Mode() Mode { return ModeTrivia }

func (triviaStrategy) Caps() Capabilities {
	return Capabilities{ChoiceVote: true, AutoScored: true}
}

func (triviaStrategy) Begin(r *Round, req RoundRequest, env *Env) error {
	var q TriviaQuestion
	if len(req.Options) == 0 && req.Prompt == "" {
		q = env.Decks.DrawTrivia()
	} else {
		if len(req.Options) < 2 || len(req.Options) > 6 {
			return fmt.Errorf("%w: trivia needs 2 to 6 options", ErrInvalidContent)
		}
		if req.Correct == nil {
			return fmt.Errorf("%w: trivia needs the correct option index", ErrInvalidContent)
		}
		if *req.Correct < 0 || *req.Correct >= len(req.Options) {
			return fmt.Errorf("%w: correct index %d out of range", ErrInvalidContent, *req.Correct)
		}
		q = TriviaQuestion{
			Question: CleanText(req.Prompt, env.Rules.TextMaxLen),
			Answer:   *req.Correct,
		}
		for _, opt := range req.Options {
			cleaned := CleanText(opt, env.Rules.TextMaxLen)
			if cleaned == "" {
				return fmt.Errorf("%w: empty trivia option", ErrInvalidContent)
			}
			q.Options = append(q.Options, cleaned)
		}
		if q.Question == "" {
			return fmt.Errorf("%w: trivia needs a question", ErrInvalidContent)
		}
	}
	r.Prompt = Prompt{Text: q.Question, Options: q.Options}
	r.Hidden = &triviaState{Correct: q.Answer}
	return nil
}

func (s triviaStrategy) Submit(r *Round, p *Player, in Input, env *Env) error {
	if in.Choice < 0 || in.Choice >= len(r.Prompt.Options) {
		return fmt.Errorf("%w: answer must be one of the offered choices", ErrInvalidContent)
	}
	r.putSubmission(p.ID, Submission{Choice: in.Choice})
	return nil
}

func (s triviaStrategy) Vote(r *Round, p *Player, in Input, env *Env) error {
	return s.Submit(r, p, in, env)
}

func (triviaStrategy) Score(r *Round, env *Env) (map[PlayerID]int, *RevealPayload) {
	st := r.Hidden.(*triviaState)

	tally := make(map[string]int, len(r.Prompt.Options))
	deltas := make(map[PlayerID]int)
	winners := make([]PlayerID, 0)
	for id, sub := range r.Submissions {
		tally[r.Prompt.Options[sub.Choice]]++
		if sub.Choice == st.Correct {
			deltas[id] = env.Rules.TriviaPoints
			winners = append(winners, id)
		}
	}

	payload := &RevealPayload{
		Prompt:  r.Prompt.Text,
		Options: r.Prompt.Options,
		Tally:   tally,
		Correct: intPtr(st.Correct),
		Winners: winnerNames(env, winners),
	}
	return deltas, payload
}

func (triviaStrategy) Secrets(r *Round, env *Env) *RoundSecrets {
	st := r.Hidden.(*triviaState)
	return &RoundSecrets{Correct: intPtr(st.Correct)}
}
