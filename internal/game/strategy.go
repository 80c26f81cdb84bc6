package game

import (
	"fmt"
	"math/rand"
	"sort"

	"partyhub/internal/config"
)

// Env bundles what strategies need besides the round itself: the roster,
// the rule set, the prompt decks, randomness, and the previous round (for
// modes that carry state across rounds, like mafia's night/day cycles).
type Env struct {
	Reg   *Registry
	Rules config.GameRules
	Decks *DeckService
	Rng   *rand.Rand
	Prev  *Round
}

// Strategy is the per-mode behavior contract. The engine owns phase gating
// and history; strategies own content validation, storage shape, hidden
// state, scoring, and the reveal payload.
type Strategy interface {
	Mode() Mode
	Caps() Capabilities

	// Begin validates the host's request and prepares the round: resolves
	// the prompt (drawing from the decks when none is given) and sets up
	// any hidden state such as targets or roles.
	Begin(r *Round, req RoundRequest, env *Env) error

	// Submit validates and stores one player's submission. Only called
	// while the round is collecting.
	Submit(r *Round, p *Player, in Input, env *Env) error

	// Vote validates and stores one player's vote. For single-phase modes
	// this runs during collecting; for two-phase modes during voting.
	Vote(r *Round, p *Player, in Input, env *Env) error

	// OpenVoting freezes whatever the voting phase needs (vote-battle
	// candidates, mafia night resolution). Two-phase modes only.
	OpenVoting(r *Round, env *Env) error

	// Score computes per-player point deltas and the frozen reveal payload.
	Score(r *Round, env *Env) (map[PlayerID]int, *RevealPayload)

	// Secrets returns the host-only view of hidden round state.
	Secrets(r *Round, env *Env) *RoundSecrets

	// PrivateView returns the player-specific fragment for asymmetric
	// modes; nil when the mode has nothing private to show.
	PrivateView(r *Round, p *Player, env *Env) *PrivateView
}

// strategies is the closed mode set. Adding a mode means adding a Strategy
// here, nowhere else.
var strategies = map[Mode]Strategy{
	ModeMostLikely:     mostLikelyStrategy{},
	ModeWouldYouRather: wouldYouRatherStrategy{},
	ModeTrivia:         triviaStrategy{},
	ModeHotSeat:        hotSeatStrategy{},
	ModeQuickDraw:      quickDrawStrategy{},
	ModeWavelength:     wavelengthStrategy{},
	ModeVoteBattle:     voteBattleStrategy{},
	ModeSpyfall:        spyfallStrategy{},
	ModeMafia:          mafiaStrategy{},
}

// StrategyFor resolves a mode to its strategy.
func StrategyFor(mode Mode) (Strategy, error) {
	s, ok := strategies[mode]
	if !ok {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidMode, mode)
	}
	return s, nil
}

// Modes lists every supported mode in a stable order, for host UIs.
func Modes() []Mode {
	out := make([]Mode, 0, len(strategies))
	for m := range strategies {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label() < out[j].Label() })
	return out
}

// Embeddable defaults for the strategy methods most modes leave empty.

type noVotePhase struct{}

func (noVotePhase) OpenVoting(*Round, *Env) error { return ErrInvalidMode }

type noSecrets struct{}

func (noSecrets) Secrets(*Round, *Env) *RoundSecrets { return nil }

type noPrivateView struct{}

func (noPrivateView) PrivateView(*Round, *Player, *Env) *PrivateView { return nil }

// maxVotedPlayers returns the players holding the highest tally, with the
// count. An all-zero tally returns nothing: nobody wins an election with
// no votes.
func maxVotedPlayers(tally map[PlayerID]int) ([]PlayerID, int) {
	top := 0
	for _, n := range tally {
		if n > top {
			top = n
		}
	}
	if top == 0 {
		return nil, 0
	}
	winners := make([]PlayerID, 0, 1)
	for id, n := range tally {
		if n == top {
			winners = append(winners, id)
		}
	}
	return winners, top
}

// winnerNames resolves winner ids to sorted display names.
func winnerNames(env *Env, ids []PlayerID) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, env.Reg.Name(id))
	}
	sort.Strings(names)
	return names
}
