package game

// Phase represents a round's position in its lifecycle. Transitions are
// monotonic within a round: idle -> collecting -> voting -> revealed, with
// voting skipped for single-phase modes. Starting a new round resets to
// collecting; no phase is ever revisited within the same round.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseCollecting Phase = "collecting"
	PhaseVoting     Phase = "voting"
	PhaseRevealed   Phase = "revealed"
)

// AcceptsInput reports whether player submissions or votes can still arrive.
func (p Phase) AcceptsInput() bool {
	return p == PhaseCollecting || p == PhaseVoting
}

// CanStartRound reports whether a new round may begin from this phase.
// Collecting and voting are live play; starting over them is a genuine
// host error, not a retry.
func (p Phase) CanStartRound() bool {
	return p == PhaseIdle || p == PhaseRevealed
}
