package game

import "fmt"

// Mode identifies one of the nine supported game types. The set is closed:
// every mode is backed by a Strategy registered in strategy.go and carries a
// fixed capability profile.
type Mode string

const (
	ModeMostLikely     Mode = "mlt"
	ModeWouldYouRather Mode = "wyr"
	ModeTrivia         Mode = "trivia"
	ModeHotSeat        Mode = "hotseat"
	ModeQuickDraw      Mode = "quickdraw"
	ModeWavelength     Mode = "wavelength"
	ModeVoteBattle     Mode = "votebattle"
	ModeSpyfall        Mode = "spyfall"
	ModeMafia          Mode = "mafia"
)

// modeLabels maps wire keys to display names shown on host and reveal screens.
var modeLabels = map[Mode]string{
	ModeMostLikely:     "Most Likely To",
	ModeWouldYouRather: "Would You Rather",
	ModeTrivia:         "Trivia",
	ModeHotSeat:        "Hot Seat",
	ModeQuickDraw:      "Quick Draw",
	ModeWavelength:     "Wavelength",
	ModeVoteBattle:     "Vote Battle",
	ModeSpyfall:        "Spyfall Lite",
	ModeMafia:          "Mafia",
}

// Label returns the display name for the mode, or the raw key if unknown.
func (m Mode) Label() string {
	if label, ok := modeLabels[m]; ok {
		return label
	}
	return string(m)
}

// ParseMode validates a wire key against the closed mode set.
func ParseMode(key string) (Mode, error) {
	m := Mode(key)
	if _, ok := modeLabels[m]; !ok {
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidMode, key)
	}
	return m, nil
}

// Capabilities is a mode's fixed profile: which input shapes it accepts,
// how voting works, and how points get awarded. The engine and the boundary
// consult the profile instead of branching on mode.
type Capabilities struct {
	FreeText     bool // accepts free-text submissions
	ChoiceVote   bool // accepts a binary/multi-choice or player-target vote
	NumericGuess bool // accepts a numeric guess
	HostAwarded  bool // points come from explicit host awards after reveal
	AutoScored   bool // the strategy computes point deltas at reveal

	// TwoPhase modes separate collecting from voting; the host must call
	// advanceToVoting before votes are accepted. Single-phase modes treat a
	// vote during collecting as the player's submission.
	TwoPhase bool

	// VotesOnSubmissions marks modes whose vote targets are other players'
	// submissions, which makes self-voting rejectable.
	VotesOnSubmissions bool
}
