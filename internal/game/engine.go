package game

import "fmt"

// Engine owns the round lifecycle: the phase machine, the current round,
// and the immutable history of superseded rounds. It is not self-locking;
// the Session serializes every call.
type Engine struct {
	rounds []*Round
}

// NewEngine creates an engine with no rounds; phase starts idle.
func NewEngine() *Engine {
	return &Engine{}
}

// Current returns the live round, or nil before the first start.
func (e *Engine) Current() *Round {
	if len(e.rounds) == 0 {
		return nil
	}
	return e.rounds[len(e.rounds)-1]
}

// Rounds returns the full round history, oldest first.
func (e *Engine) Rounds() []*Round {
	return e.rounds
}

// Phase reports the session phase: idle before any round, otherwise the
// current round's phase.
func (e *Engine) Phase() Phase {
	r := e.Current()
	if r == nil {
		return PhaseIdle
	}
	return r.Phase
}

// StartRound begins a new round. Valid from idle or revealed only;
// starting over a live round is a genuine host error, never treated as a
// retry. The previous round, if any, is superseded intact.
func (e *Engine) StartRound(req RoundRequest, env *Env) (*Round, error) {
	if !e.Phase().CanStartRound() {
		return nil, fmt.Errorf("%w: round %d is still %s", ErrInvalidPhase, e.Current().Number, e.Phase())
	}
	mode, err := ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}
	strat, err := StrategyFor(mode)
	if err != nil {
		return nil, err
	}

	env.Prev = e.Current()
	r := newRound(len(e.rounds)+1, mode)
	if err := strat.Begin(r, req, env); err != nil {
		return nil, err
	}
	e.rounds = append(e.rounds, r)
	return r, nil
}

// Submit stores a player's submission through the mode strategy.
func (e *Engine) Submit(p *Player, in Input, env *Env) error {
	r := e.Current()
	if r == nil || r.Phase != PhaseCollecting {
		return fmt.Errorf("%w: submissions are closed", ErrInvalidPhase)
	}
	strat, err := StrategyFor(r.Mode)
	if err != nil {
		return err
	}
	return strat.Submit(r, p, in, env)
}

// Vote stores a player's vote. Single-phase modes take votes while
// collecting (the vote is the submission); two-phase modes only after the
// host opened voting.
func (e *Engine) Vote(p *Player, in Input, env *Env) error {
	r := e.Current()
	if r == nil {
		return fmt.Errorf("%w: no active round", ErrInvalidPhase)
	}
	strat, err := StrategyFor(r.Mode)
	if err != nil {
		return err
	}
	caps := strat.Caps()
	if !caps.ChoiceVote {
		return fmt.Errorf("%w: %s has no voting", ErrInvalidMode, r.Mode.Label())
	}
	want := PhaseCollecting
	if caps.TwoPhase {
		want = PhaseVoting
	}
	if r.Phase != want {
		return fmt.Errorf("%w: voting not open", ErrInvalidPhase)
	}
	return strat.Vote(r, p, in, env)
}

// AdvanceToVoting moves a two-phase round from collecting to voting,
// freezing the candidate set. Already voting is an idempotent no-op; the
// returned bool reports whether anything changed.
func (e *Engine) AdvanceToVoting(env *Env) (bool, error) {
	r := e.Current()
	if r == nil {
		return false, fmt.Errorf("%w: no active round", ErrInvalidPhase)
	}
	strat, err := StrategyFor(r.Mode)
	if err != nil {
		return false, err
	}
	if !strat.Caps().TwoPhase {
		return false, fmt.Errorf("%w: %s has no separate voting phase", ErrInvalidMode, r.Mode.Label())
	}
	switch r.Phase {
	case PhaseVoting:
		return false, nil
	case PhaseCollecting:
	default:
		return false, fmt.Errorf("%w: cannot open voting from %s", ErrInvalidPhase, r.Phase)
	}
	if err := strat.OpenVoting(r, env); err != nil {
		return false, err
	}
	r.Phase = PhaseVoting
	return true, nil
}

// Reveal scores the round and freezes its payload. A second call in
// revealed returns the frozen payload with nil deltas and scored=false so
// the caller knows not to touch the scoreboard again.
func (e *Engine) Reveal(env *Env) (*RevealPayload, map[PlayerID]int, bool, error) {
	r := e.Current()
	if r == nil {
		return nil, nil, false, fmt.Errorf("%w: no active round", ErrInvalidPhase)
	}
	if r.Phase == PhaseRevealed {
		return r.Reveal, nil, false, nil
	}
	strat, err := StrategyFor(r.Mode)
	if err != nil {
		return nil, nil, false, err
	}
	deltas, payload := strat.Score(r, env)
	payload.Mode = r.Mode
	payload.Label = r.Mode.Label()
	if len(deltas) > 0 {
		payload.Awards = deltas
	}
	r.Reveal = payload
	r.Phase = PhaseRevealed
	return payload, deltas, true, nil
}
