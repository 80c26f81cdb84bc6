package game

import (
	"sort"
	"time"
)

// Input carries one player action as decoded by the boundary. Numeric
// fields use -1 for "absent" so option index 0 stays representable; build
// inputs with EmptyInput to get the sentinels right.
type Input struct {
	Text   string
	Choice int
	Guess  int
	Target PlayerID
	Entry  int
}

// EmptyInput returns an Input with every optional numeric unset.
func EmptyInput() Input {
	return Input{Choice: -1, Guess: -1, Entry: -1}
}

// Submission is one player's stored answer for the round. Exactly one
// content field is meaningful per mode. Seq is assigned on first write and
// survives overwrites so candidate ordering ignores resubmissions.
type Submission struct {
	Player PlayerID
	Seq    int
	At     time.Time

	Text   string
	Choice int
	Guess  int
	Target PlayerID
	Ack    bool
}

// Vote is one player's stored vote. Target for player-directed votes,
// Entry for submission-directed ones.
type Vote struct {
	Voter PlayerID
	Seq   int
	At    time.Time

	Target PlayerID
	Entry  int
}

// Entry is one anonymized vote-battle candidate, frozen from the
// submission set when voting opens. ID is the submission's Seq.
type Entry struct {
	ID     int      `json:"id"`
	Author PlayerID `json:"-"`
	Text   string   `json:"text"`
}

// Prompt is the public part of a round's content. Hidden pieces (trivia
// answer, wavelength target, roles) live in the round's strategy state.
type Prompt struct {
	Text    string   `json:"text,omitempty"`
	Options []string `json:"options,omitempty"`
}

// RoundRequest is the host's startRound payload. Empty Prompt draws from
// the built-in decks; Correct and Target let the host hand-craft trivia
// and wavelength rounds.
type RoundRequest struct {
	Mode    Mode     `json:"mode"`
	Prompt  string   `json:"prompt,omitempty"`
	Options []string `json:"options,omitempty"`
	Correct *int     `json:"correct,omitempty"`
	Target  *int     `json:"target,omitempty"`
}

// Round is one play-through of a mode. Superseded rounds stay in the
// engine's history untouched; only the current round ever mutates.
type Round struct {
	Number    int
	Mode      Mode
	Phase     Phase
	Prompt    Prompt
	CreatedAt time.Time

	Submissions map[PlayerID]*Submission
	Votes       map[PlayerID]*Vote
	Entries     []Entry

	// Reveal is computed exactly once and frozen; repeat reveals return it
	// unchanged.
	Reveal *RevealPayload

	// Hidden holds the strategy's secret state, never serialized directly.
	Hidden interface{}

	nextSeq int
}

func newRound(number int, mode Mode) *Round {
	return &Round{
		Number:      number,
		Mode:        mode,
		Phase:       PhaseCollecting,
		CreatedAt:   time.Now(),
		Submissions: make(map[PlayerID]*Submission),
		Votes:       make(map[PlayerID]*Vote),
		nextSeq:     1,
	}
}

// putSubmission stores sub for the player, last-write-wins. The first
// write's Seq is kept so entry order is stable under resubmission.
func (r *Round) putSubmission(id PlayerID, sub Submission) {
	sub.Player = id
	sub.At = time.Now()
	if prev, ok := r.Submissions[id]; ok {
		sub.Seq = prev.Seq
	} else {
		sub.Seq = r.nextSeq
		r.nextSeq++
	}
	r.Submissions[id] = &sub
}

// putVote stores the player's vote, last-write-wins.
func (r *Round) putVote(id PlayerID, v Vote) {
	v.Voter = id
	v.At = time.Now()
	if prev, ok := r.Votes[id]; ok {
		v.Seq = prev.Seq
	} else {
		v.Seq = r.nextSeq
		r.nextSeq++
	}
	r.Votes[id] = &v
}

// orderedSubmissions returns submissions in first-write order.
func (r *Round) orderedSubmissions() []*Submission {
	out := make([]*Submission, 0, len(r.Submissions))
	for _, sub := range r.Submissions {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// HasSubmitted reports whether the player has a live submission.
func (r *Round) HasSubmitted(id PlayerID) bool {
	_, ok := r.Submissions[id]
	return ok
}

// HasVoted reports whether the player has a live vote.
func (r *Round) HasVoted(id PlayerID) bool {
	_, ok := r.Votes[id]
	return ok
}

// entryByID finds a frozen vote-battle candidate.
func (r *Round) entryByID(id int) (*Entry, bool) {
	for i := range r.Entries {
		if r.Entries[i].ID == id {
			return &r.Entries[i], true
		}
	}
	return nil, false
}
