package game

import (
	"errors"
	"testing"
)

func guessInput(guess int) Input {
	in := EmptyInput()
	in.Guess = guess
	return in
}

func TestWavelengthRound(t *testing.T) {
	env, players := newTestEnv(t, "Bea", "Ana", "Cal")
	b, a, c := players[0], players[1], players[2]
	e := NewEngine()

	req := RoundRequest{Mode: ModeWavelength, Prompt: "Cold / Hot", Target: intPtr(70)}
	r, err := e.StartRound(req, env)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	strat, _ := StrategyFor(ModeWavelength)
	sec := strat.Secrets(r, env)
	if sec == nil || sec.Target == nil || *sec.Target != 70 {
		t.Fatalf("expected secret target 70, got %+v", sec)
	}

	if err := e.Submit(a, guessInput(101), env); !errors.Is(err, ErrInvalidContent) {
		t.Errorf("expected ErrInvalidContent for guess 101, got %v", err)
	}
	if err := e.Submit(a, EmptyInput(), env); !errors.Is(err, ErrInvalidContent) {
		t.Errorf("expected ErrInvalidContent when no guess is given, got %v", err)
	}

	if err := e.Submit(a, guessInput(60), env); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := e.Submit(b, guessInput(80), env); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := e.Submit(c, guessInput(10), env); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	payload, deltas, _, err := e.Reveal(env)
	if err != nil {
		t.Fatalf("reveal failed: %v", err)
	}
	// Ana and Bea are both 10 off; ties share the points
	if deltas[a.ID] != 1 || deltas[b.ID] != 1 || len(deltas) != 2 {
		t.Errorf("expected the tied closest guesses to score, got %v", deltas)
	}
	if payload.Target == nil || *payload.Target != 70 {
		t.Errorf("reveal should expose the target, got %+v", payload.Target)
	}
	if payload.AverageGuess == nil || *payload.AverageGuess != 50 {
		t.Errorf("expected average 50, got %+v", payload.AverageGuess)
	}

	if len(payload.Answers) != 3 {
		t.Fatalf("expected 3 answers, got %d", len(payload.Answers))
	}
	// Sorted by distance, name breaking the tie
	if payload.Answers[0].Player != "Ana" || payload.Answers[1].Player != "Bea" || payload.Answers[2].Player != "Cal" {
		t.Errorf("unexpected answer order: %+v", payload.Answers)
	}
	if payload.Answers[2].Distance == nil || *payload.Answers[2].Distance != 60 {
		t.Errorf("expected Cal at distance 60, got %+v", payload.Answers[2])
	}
}

func TestWavelengthRandomTarget(t *testing.T) {
	env, _ := newTestEnv(t, "Ana")
	e := NewEngine()

	r, err := e.StartRound(RoundRequest{Mode: ModeWavelength, Prompt: "Cold / Hot"}, env)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	st := r.Hidden.(*wavelengthState)
	if st.Target < 0 || st.Target > 100 {
		t.Errorf("random target out of range: %d", st.Target)
	}
}

func TestWavelengthBadTarget(t *testing.T) {
	env, _ := newTestEnv(t, "Ana")
	e := NewEngine()
	_, err := e.StartRound(RoundRequest{Mode: ModeWavelength, Prompt: "x", Target: intPtr(101)}, env)
	if !errors.Is(err, ErrInvalidContent) {
		t.Errorf("expected ErrInvalidContent for target 101, got %v", err)
	}
}

func TestWavelengthNoGuesses(t *testing.T) {
	env, _ := newTestEnv(t, "Ana")
	e := NewEngine()
	if _, err := e.StartRound(RoundRequest{Mode: ModeWavelength, Prompt: "x", Target: intPtr(50)}, env); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	payload, deltas, _, err := e.Reveal(env)
	if err != nil {
		t.Fatalf("reveal failed: %v", err)
	}
	if len(deltas) != 0 {
		t.Errorf("expected no deltas, got %v", deltas)
	}
	if payload.Note != "No guesses came in." {
		t.Errorf("unexpected note %q", payload.Note)
	}
	if payload.AverageGuess != nil {
		t.Errorf("expected no average, got %v", *payload.AverageGuess)
	}
}
