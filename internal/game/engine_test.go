package game

import (
	"errors"
	"math/rand"
	"testing"

	"partyhub/internal/config"
)

// newTestEnv builds a strategy environment around the mini decks, a seeded
// rng, and rules straight from DefaultGameRules. The mode and session tests
// all share it.
func newTestEnv(t *testing.T, names ...string) (*Env, []*Player) {
	t.Helper()
	decks, err := NewDeckService([]byte(miniDeckYAML), testRng())
	if err != nil {
		t.Fatalf("mini decks should parse: %v", err)
	}
	reg := NewRegistry()
	players := make([]*Player, 0, len(names))
	for _, name := range names {
		players = append(players, reg.Join(name))
	}
	return &Env{
		Reg:   reg,
		Rules: config.DefaultGameRules(),
		Decks: decks,
		Rng:   rand.New(rand.NewSource(7)),
	}, players
}

func TestEngineLifecycle(t *testing.T) {
	env, players := newTestEnv(t, "Ana", "Bea", "Cal")
	e := NewEngine()

	if e.Phase() != PhaseIdle {
		t.Fatalf("expected idle before any round, got %s", e.Phase())
	}
	if e.Current() != nil {
		t.Fatal("expected no current round before the first start")
	}

	r, err := e.StartRound(RoundRequest{Mode: ModeMostLikely, Prompt: "Who naps the most?"}, env)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if r.Number != 1 || r.Phase != PhaseCollecting {
		t.Errorf("expected round 1 collecting, got %d %s", r.Number, r.Phase)
	}

	// Starting over a live round is a host error, never a retry
	if _, err := e.StartRound(RoundRequest{Mode: ModeMostLikely}, env); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("expected ErrInvalidPhase starting over a live round, got %v", err)
	}

	for _, p := range players {
		in := EmptyInput()
		in.Target = players[0].ID
		if err := e.Submit(p, in, env); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	payload, deltas, scored, err := e.Reveal(env)
	if err != nil {
		t.Fatalf("reveal failed: %v", err)
	}
	if !scored {
		t.Error("first reveal should score")
	}
	if len(deltas) == 0 {
		t.Error("expected point deltas from a voted round")
	}
	if payload.Mode != ModeMostLikely || payload.Label != "Most Likely To" {
		t.Errorf("payload should carry mode and label, got %s %q", payload.Mode, payload.Label)
	}
	if e.Phase() != PhaseRevealed {
		t.Errorf("expected revealed, got %s", e.Phase())
	}

	// Repeat reveal returns the same frozen payload and never rescores
	again, deltas2, scored2, err := e.Reveal(env)
	if err != nil {
		t.Fatalf("repeat reveal failed: %v", err)
	}
	if scored2 || deltas2 != nil {
		t.Error("repeat reveal must not score again")
	}
	if again != payload {
		t.Error("repeat reveal should return the frozen payload")
	}

	r2, err := e.StartRound(RoundRequest{Mode: ModeHotSeat}, env)
	if err != nil {
		t.Fatalf("start after reveal failed: %v", err)
	}
	if r2.Number != 2 {
		t.Errorf("expected round 2, got %d", r2.Number)
	}
	if len(e.Rounds()) != 2 {
		t.Errorf("expected 2 rounds in history, got %d", len(e.Rounds()))
	}
}

func TestEngineStartGateAcrossModes(t *testing.T) {
	env, _ := newTestEnv(t, "Ana", "Bea", "Cal", "Dee")
	e := NewEngine()

	for _, mode := range Modes() {
		if _, err := e.StartRound(RoundRequest{Mode: mode}, env); err != nil {
			t.Fatalf("%s: start failed: %v", mode, err)
		}
		if _, err := e.StartRound(RoundRequest{Mode: mode}, env); !errors.Is(err, ErrInvalidPhase) {
			t.Errorf("%s: expected ErrInvalidPhase starting while collecting, got %v", mode, err)
		}

		strat, err := StrategyFor(mode)
		if err != nil {
			t.Fatalf("%s: no strategy: %v", mode, err)
		}
		if strat.Caps().TwoPhase {
			if _, err := e.AdvanceToVoting(env); err != nil {
				t.Fatalf("%s: advance failed: %v", mode, err)
			}
			if _, err := e.StartRound(RoundRequest{Mode: mode}, env); !errors.Is(err, ErrInvalidPhase) {
				t.Errorf("%s: expected ErrInvalidPhase starting while voting, got %v", mode, err)
			}
		}

		if _, _, _, err := e.Reveal(env); err != nil {
			t.Fatalf("%s: reveal failed: %v", mode, err)
		}
	}
}

func TestEngineRejectsUnknownMode(t *testing.T) {
	env, _ := newTestEnv(t, "Ana")
	e := NewEngine()
	if _, err := e.StartRound(RoundRequest{Mode: "karaoke"}, env); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode, got %v", err)
	}
}

func TestEngineNoRoundGating(t *testing.T) {
	env, players := newTestEnv(t, "Ana")
	e := NewEngine()

	if err := e.Submit(players[0], EmptyInput(), env); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("expected ErrInvalidPhase submitting before any round, got %v", err)
	}
	if err := e.Vote(players[0], EmptyInput(), env); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("expected ErrInvalidPhase voting before any round, got %v", err)
	}
	if _, err := e.AdvanceToVoting(env); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("expected ErrInvalidPhase advancing before any round, got %v", err)
	}
	if _, _, _, err := e.Reveal(env); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("expected ErrInvalidPhase revealing before any round, got %v", err)
	}
}

func TestEngineTwoPhaseGating(t *testing.T) {
	env, players := newTestEnv(t, "Ana", "Bea", "Cal")
	e := NewEngine()
	a, b := players[0], players[1]

	if _, err := e.StartRound(RoundRequest{Mode: ModeVoteBattle, Prompt: "Best excuse"}, env); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	text := EmptyInput()
	text.Text = "my dog ate the bus"
	if err := e.Submit(a, text, env); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Two-phase modes take votes only after the host opens voting
	vote := EmptyInput()
	vote.Entry = 1
	if err := e.Vote(b, vote, env); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("expected ErrInvalidPhase voting while collecting, got %v", err)
	}

	changed, err := e.AdvanceToVoting(env)
	if err != nil || !changed {
		t.Fatalf("expected advance to change phase, got %v %v", changed, err)
	}
	// Advancing again is an idempotent no-op
	changed, err = e.AdvanceToVoting(env)
	if err != nil {
		t.Fatalf("repeat advance errored: %v", err)
	}
	if changed {
		t.Error("repeat advance should report no change")
	}

	// Submissions are closed once voting opens
	if err := e.Submit(b, text, env); !errors.Is(err, ErrInvalidPhase) {
		t.Errorf("expected ErrInvalidPhase submitting during voting, got %v", err)
	}
	if err := e.Vote(b, vote, env); err != nil {
		t.Errorf("vote during voting failed: %v", err)
	}
}

func TestEngineSinglePhaseHasNoAdvance(t *testing.T) {
	env, players := newTestEnv(t, "Ana", "Bea")
	e := NewEngine()

	if _, err := e.StartRound(RoundRequest{Mode: ModeMostLikely, Prompt: "Who?"}, env); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := e.AdvanceToVoting(env); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode advancing a single-phase round, got %v", err)
	}

	// Vote aliases submit for prompt-direct modes
	in := EmptyInput()
	in.Target = players[0].ID
	if err := e.Vote(players[1], in, env); err != nil {
		t.Fatalf("vote while collecting failed: %v", err)
	}
	if !e.Current().HasSubmitted(players[1].ID) {
		t.Error("a single-phase vote should land as the submission")
	}
}

func TestEngineVoteNeedsVotingMode(t *testing.T) {
	env, players := newTestEnv(t, "Ana")
	e := NewEngine()

	if _, err := e.StartRound(RoundRequest{Mode: ModeHotSeat, Prompt: "Hidden talent?"}, env); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := e.Vote(players[0], EmptyInput(), env); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode voting in a no-vote mode, got %v", err)
	}
}
