package game

import (
	"fmt"
	"sort"
)

// Mafia/Werewolf: one round is one night+day cycle. Collecting is the
// night (werewolves pick a victim, the seer inspects, villagers sleep),
// advancing to voting resolves the night, and the day vote is settled at
// reveal together with the win check. Starting another mafia round while
// no faction has won continues the same game with the surviving cast.

const (
	roleWerewolf = "werewolf"
	roleSeer     = "seer"
	roleVillager = "villager"

	factionVillagers  = "villagers"
	factionWerewolves = "werewolves"
)

type mafiaState struct {
	Roles map[PlayerID]string
	Alive []PlayerID
	Cycle int

	NightVictim PlayerID
	Eliminated  PlayerID
	SeerPeeks   map[string]string
	Winner      string
}

func (st *mafiaState) alive(id PlayerID) bool {
	for _, a := range st.Alive {
		if a == id {
			return true
		}
	}
	return false
}

func (st *mafiaState) kill(id PlayerID) {
	out := st.Alive[:0]
	for _, a := range st.Alive {
		if a != id {
			out = append(out, a)
		}
	}
	st.Alive = out
}

// winner reports the faction that has won, or "" while the game is live.
// An empty village decides nothing.
func (st *mafiaState) winner() string {
	if len(st.Alive) == 0 {
		return ""
	}
	wolves := 0
	for _, id := range st.Alive {
		if st.Roles[id] == roleWerewolf {
			wolves++
		}
	}
	if wolves == 0 {
		return factionVillagers
	}
	if wolves >= len(st.Alive)-wolves {
		return factionWerewolves
	}
	return ""
}

type mafiaStrategy struct{}

func (mafiaStrategy) Mode() Mode { return ModeMafia }

func (mafiaStrategy) Caps() Capabilities {
	return Capabilities{
		ChoiceVote:  true,
		HostAwarded: true,
		TwoPhase:    true,
	}
}

func (mafiaStrategy) Begin(r *Round, req RoundRequest, env *Env) error {
	if st := carriedMafiaGame(env); st != nil {
		st.Cycle++
		st.NightVictim = ""
		st.Eliminated = ""
		r.Hidden = st
		r.Prompt = Prompt{Text: fmt.Sprintf("Night %d falls over the village.", st.Cycle)}
		return nil
	}

	players := env.Reg.ActivePlayers()
	if len(players) < env.Rules.MafiaMinPlayers {
		return fmt.Errorf("%w: mafia needs at least %d players", ErrInvalidContent, env.Rules.MafiaMinPlayers)
	}

	shuffled := make([]PlayerID, len(players))
	for i, p := range players {
		shuffled[i] = p.ID
	}
	env.Rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	wolves := env.Rules.MafiaWolves
	if wolves <= 0 {
		wolves = 1
		if len(players) >= 7 {
			wolves = 2
		}
	} else if wolves > 2 {
		wolves = 2
	}
	seers := 0
	if env.Rules.MafiaSeer && len(players) >= 4 {
		seers = 1
	}
	if max := len(players) - seers - 1; wolves > max {
		wolves = max
	}
	if wolves < 1 {
		wolves = 1
	}

	roles := make(map[PlayerID]string, len(players))
	for i, id := range shuffled {
		switch {
		case i < wolves:
			roles[id] = roleWerewolf
		case i < wolves+seers:
			roles[id] = roleSeer
		default:
			roles[id] = roleVillager
		}
	}

	alive := make([]PlayerID, len(players))
	for i, p := range players {
		alive[i] = p.ID
	}

	r.Hidden = &mafiaState{
		Roles:     roles,
		Alive:     alive,
		Cycle:     1,
		SeerPeeks: make(map[string]string),
	}
	r.Prompt = Prompt{Text: "Night 1 falls over the village."}
	return nil
}

// carriedMafiaGame returns a copy of the previous round's mafia state when
// that game is still undecided, so a new round continues it.
func carriedMafiaGame(env *Env) *mafiaState {
	if env.Prev == nil || env.Prev.Mode != ModeMafia {
		return nil
	}
	prev, ok := env.Prev.Hidden.(*mafiaState)
	if !ok || prev.Winner != "" || len(prev.Alive) == 0 {
		return nil
	}
	st := &mafiaState{
		Roles:     make(map[PlayerID]string, len(prev.Roles)),
		Alive:     append([]PlayerID(nil), prev.Alive...),
		Cycle:     prev.Cycle,
		SeerPeeks: make(map[string]string, len(prev.SeerPeeks)),
	}
	for id, role := range prev.Roles {
		st.Roles[id] = role
	}
	for name, verdict := range prev.SeerPeeks {
		st.SeerPeeks[name] = verdict
	}
	return st
}

func (mafiaStrategy) Submit(r *Round, p *Player, in Input, env *Env) error {
	st := r.Hidden.(*mafiaState)
	role, dealt := st.Roles[p.ID]
	if !dealt {
		return fmt.Errorf("%w: you joined mid-game, sit this one out", ErrInvalidContent)
	}
	if !st.alive(p.ID) {
		return fmt.Errorf("%w: you have been eliminated", ErrInvalidContent)
	}

	switch role {
	case roleWerewolf, roleSeer:
		if in.Target == "" {
			return fmt.Errorf("%w: pick a target", ErrInvalidContent)
		}
		if in.Target == p.ID {
			return fmt.Errorf("%w: you cannot target yourself", ErrSelfTarget)
		}
		if !st.alive(in.Target) {
			return fmt.Errorf("%w: target is not alive", ErrInvalidContent)
		}
		r.putSubmission(p.ID, Submission{Target: in.Target})
	default:
		r.putSubmission(p.ID, Submission{Ack: true})
	}
	return nil
}

// OpenVoting resolves the night: the werewolves' majority pick dies (ties
// broken at random), and the seer's final inspection is answered.
func (mafiaStrategy) OpenVoting(r *Round, env *Env) error {
	st := r.Hidden.(*mafiaState)

	for _, sub := range r.Submissions {
		if st.Roles[sub.Player] != roleSeer || sub.Target == "" {
			continue
		}
		verdict := "not a werewolf"
		if st.Roles[sub.Target] == roleWerewolf {
			verdict = "a werewolf"
		}
		st.SeerPeeks[env.Reg.Name(sub.Target)] = verdict
	}

	tally := make(map[PlayerID]int)
	for _, sub := range r.Submissions {
		if st.Roles[sub.Player] != roleWerewolf || sub.Target == "" {
			continue
		}
		if st.alive(sub.Target) {
			tally[sub.Target]++
		}
	}
	if victims, _ := maxVotedPlayers(tally); len(victims) > 0 {
		sort.Slice(victims, func(i, j int) bool { return victims[i] < victims[j] })
		victim := victims[env.Rng.Intn(len(victims))]
		st.kill(victim)
		st.NightVictim = victim
	}

	st.Winner = st.winner()
	return nil
}

func (mafiaStrategy) Vote(r *Round, p *Player, in Input, env *Env) error {
	st := r.Hidden.(*mafiaState)
	if st.Winner != "" {
		return fmt.Errorf("%w: the game is already decided", ErrInvalidPhase)
	}
	if _, dealt := st.Roles[p.ID]; !dealt {
		return fmt.Errorf("%w: you joined mid-game, sit this one out", ErrInvalidContent)
	}
	if !st.alive(p.ID) {
		return fmt.Errorf("%w: you have been eliminated", ErrInvalidContent)
	}
	if in.Target == "" {
		return fmt.Errorf("%w: vote for somebody", ErrInvalidContent)
	}
	if !st.alive(in.Target) {
		return fmt.Errorf("%w: target is not alive", ErrInvalidContent)
	}
	r.putVote(p.ID, Vote{Target: in.Target})
	return nil
}

// Score resolves the day vote, runs the win check, and reports the cycle.
// No points are awarded automatically; the host hands those out.
func (mafiaStrategy) Score(r *Round, env *Env) (map[PlayerID]int, *RevealPayload) {
	st := r.Hidden.(*mafiaState)

	tally := make(map[PlayerID]int)
	if st.Winner == "" {
		for _, v := range r.Votes {
			if st.alive(v.Target) {
				tally[v.Target]++
			}
		}
		if condemned, _ := maxVotedPlayers(tally); len(condemned) > 0 {
			sort.Slice(condemned, func(i, j int) bool { return condemned[i] < condemned[j] })
			victim := condemned[env.Rng.Intn(len(condemned))]
			st.kill(victim)
			st.Eliminated = victim
		}
		st.Winner = st.winner()
	}

	display := make(map[string]int, len(tally))
	for id, n := range tally {
		display[env.Reg.Name(id)] = n
	}
	aliveNames := make([]string, 0, len(st.Alive))
	for _, id := range st.Alive {
		aliveNames = append(aliveNames, env.Reg.Name(id))
	}

	payload := &RevealPayload{
		Cycle:         st.Cycle,
		Alive:         aliveNames,
		WinnerFaction: st.Winner,
	}
	if len(display) > 0 {
		payload.Tally = display
	}
	if st.NightVictim != "" {
		payload.NightVictim = env.Reg.Name(st.NightVictim)
	}
	if st.Eliminated != "" {
		payload.Eliminated = env.Reg.Name(st.Eliminated)
	}
	switch st.Winner {
	case factionVillagers:
		payload.Note = "The last werewolf is gone. Villagers win!"
	case factionWerewolves:
		payload.Note = "The werewolves overrun the village."
	default:
		payload.Note = "No faction has won. Start another round to continue the game."
	}
	if st.Winner != "" && env.Rules.MafiaRevealRoles {
		roles := make(map[string]string, len(st.Roles))
		for id, role := range st.Roles {
			roles[env.Reg.Name(id)] = role
		}
		payload.Roles = roles
	}
	return nil, payload
}

func (mafiaStrategy) Secrets(r *Round, env *Env) *RoundSecrets {
	st := r.Hidden.(*mafiaState)
	roles := make(map[string]string, len(st.Roles))
	for id, role := range st.Roles {
		roles[env.Reg.Name(id)] = role
	}
	aliveNames := make([]string, 0, len(st.Alive))
	for _, id := range st.Alive {
		aliveNames = append(aliveNames, env.Reg.Name(id))
	}
	sec := &RoundSecrets{
		Roles: roles,
		Alive: aliveNames,
	}
	if st.NightVictim != "" {
		sec.NightVictim = env.Reg.Name(st.NightVictim)
	}
	if len(st.SeerPeeks) > 0 {
		sec.SeerPeeks = st.SeerPeeks
	}
	return sec
}

func (mafiaStrategy) PrivateView(r *Round, p *Player, env *Env) *PrivateView {
	st := r.Hidden.(*mafiaState)
	role, dealt := st.Roles[p.ID]
	if !dealt {
		return &PrivateView{
			Alive: boolPtr(false),
			Note:  "You joined mid-game. You will be dealt in next game.",
		}
	}
	view := &PrivateView{Role: role, Alive: boolPtr(st.alive(p.ID))}
	if !st.alive(p.ID) {
		view.Note = "You have been eliminated."
		return view
	}
	switch role {
	case roleWerewolf:
		view.Note = "Pick a victim during the night."
	case roleSeer:
		view.Note = "Inspect one player each night."
		if len(st.SeerPeeks) > 0 {
			view.SeerPeeks = st.SeerPeeks
		}
	}
	return view
}
