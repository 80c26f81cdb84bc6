package game

import "fmt"

// Spyfall Lite: everyone but the spy learns the location and a role; the
// spy has to blend in. Collecting is the question phase (players request
// their role), voting is the accusation. If the table corners the spy the
// non-spies score, otherwise the spy scores double.

type spyfallState struct {
	Location string
	Spy      PlayerID
	Roles    map[PlayerID]string
}

type spyfallStrategy struct{}

func (spyfallStrategy) Mode() Mode { return ModeSpyfall }

func (spyfallStrategy) Caps() Capabilities {
	return Capabilities{
		ChoiceVote:         true,
		HostAwarded:        true,
		AutoScored:         true,
		TwoPhase:           true,
		VotesOnSubmissions: true,
	}
}

func (spyfallStrategy) Begin(r *Round, req RoundRequest, env *Env) error {
	players := env.Reg.ActivePlayers()
	if len(players) < 2 {
		return fmt.Errorf("%w: spyfall needs at least 2 players", ErrInvalidContent)
	}

	var location string
	pool := req.Options
	if req.Prompt != "" {
		location = CleanText(req.Prompt, env.Rules.TextMaxLen)
	} else {
		card := env.Decks.DrawSpyfall()
		location = card.Location
		pool = card.Roles
	}
	if len(pool) == 0 {
		pool = fallbackSpyfallRoles
	}

	spy := players[env.Rng.Intn(len(players))]

	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	env.Rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	roles := make(map[PlayerID]string, len(players)-1)
	idx := 0
	for _, p := range players {
		if p.ID == spy.ID {
			continue
		}
		roles[p.ID] = shuffled[idx%len(shuffled)]
		idx++
	}

	r.Prompt = Prompt{Text: "Ask questions, find the spy."}
	r.Hidden = &spyfallState{Location: location, Spy: spy.ID, Roles: roles}
	return nil
}

// Submit is the role-reveal request: it marks the player as having seen
// their card so the host can tell who is ready.
func (spyfallStrategy) Submit(r *Round, p *Player, in Input, env *Env) error {
	r.putSubmission(p.ID, Submission{Ack: true})
	return nil
}

func (spyfallStrategy) OpenVoting(r *Round, env *Env) error {
	return nil
}

func (spyfallStrategy) Vote(r *Round, p *Player, in Input, env *Env) error {
	if in.Target == "" {
		return fmt.Errorf("%w: accuse somebody", ErrInvalidContent)
	}
	if _, err := env.Reg.Get(in.Target); err != nil {
		return fmt.Errorf("%w: accused player is not in the party", ErrInvalidContent)
	}
	if in.Target == p.ID && !env.Rules.SpyfallSelfVote {
		return fmt.Errorf("%w: you cannot accuse yourself", ErrSelfTarget)
	}
	r.putVote(p.ID, Vote{Target: in.Target})
	return nil
}

func (spyfallStrategy) Score(r *Round, env *Env) (map[PlayerID]int, *RevealPayload) {
	st := r.Hidden.(*spyfallState)

	tally := make(map[PlayerID]int)
	for _, v := range r.Votes {
		tally[v.Target]++
	}
	accused, _ := maxVotedPlayers(tally)
	caught := false
	for _, id := range accused {
		if id == st.Spy {
			caught = true
		}
	}

	deltas := make(map[PlayerID]int)
	if caught {
		for _, p := range env.Reg.ActivePlayers() {
			if p.ID != st.Spy {
				deltas[p.ID] = env.Rules.SpyCaughtPoints
			}
		}
	} else {
		deltas[st.Spy] = env.Rules.SpyEscapePoints
	}

	display := make(map[string]int, len(tally))
	for id, n := range tally {
		display[env.Reg.Name(id)] = n
	}
	payload := &RevealPayload{
		Location: st.Location,
		Spy:      env.Reg.Name(st.Spy),
		Caught:   boolPtr(caught),
		Tally:    display,
		Winners:  winnerNames(env, accused),
	}
	if caught {
		payload.Note = "The spy was caught!"
	} else {
		payload.Note = "The spy slipped away."
	}
	return deltas, payload
}

func (spyfallStrategy) Secrets(r *Round, env *Env) *RoundSecrets {
	st := r.Hidden.(*spyfallState)
	roles := make(map[string]string, len(st.Roles))
	for id, role := range st.Roles {
		roles[env.Reg.Name(id)] = role
	}
	return &RoundSecrets{
		Location: st.Location,
		Spy:      env.Reg.Name(st.Spy),
		Roles:    roles,
	}
}

func (spyfallStrategy) PrivateView(r *Round, p *Player, env *Env) *PrivateView {
	st := r.Hidden.(*spyfallState)
	if p.ID == st.Spy {
		return &PrivateView{
			Role: "Spy",
			Note: "You are the spy. Figure out the location without getting caught.",
		}
	}
	role := st.Roles[p.ID]
	if role == "" {
		role = "Guest"
	}
	return &PrivateView{Location: st.Location, Role: role}
}
