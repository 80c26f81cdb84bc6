package game

// RevealPayload is the frozen result of a round. Strategies populate the
// fields relevant to their mode; JSON omits the rest. Marshaling is
// deterministic (encoding/json sorts map keys), which keeps repeated
// reveals byte-identical.
type RevealPayload struct {
	Mode   Mode   `json:"mode"`
	Label  string `json:"label"`
	Prompt string `json:"prompt,omitempty"`

	// Voting modes
	Options []string         `json:"options,omitempty"`
	Tally   map[string]int   `json:"tally,omitempty"`
	Winners []string         `json:"winners,omitempty"`
	Awards  map[PlayerID]int `json:"awards,omitempty"`

	// Trivia
	Correct *int `json:"correct,omitempty"`

	// Free-text and numeric modes
	Answers      []RevealAnswer `json:"answers,omitempty"`
	Target       *int           `json:"target,omitempty"`
	AverageGuess *float64       `json:"averageGuess,omitempty"`

	// Vote battle
	Entries []RevealEntry `json:"entries,omitempty"`

	// Spyfall
	Location string `json:"location,omitempty"`
	Spy      string `json:"spy,omitempty"`
	Caught   *bool  `json:"caught,omitempty"`

	// Mafia
	Cycle         int               `json:"cycle,omitempty"`
	NightVictim   string            `json:"nightVictim,omitempty"`
	Eliminated    string            `json:"eliminated,omitempty"`
	Alive         []string          `json:"alive,omitempty"`
	WinnerFaction string            `json:"winnerFaction,omitempty"`
	Roles         map[string]string `json:"roles,omitempty"`

	Note string `json:"note,omitempty"`
}

// RevealAnswer is one player's answer as shown on the reveal screen.
type RevealAnswer struct {
	Player   string `json:"player"`
	Text     string `json:"text,omitempty"`
	Guess    *int   `json:"guess,omitempty"`
	Distance *int   `json:"distance,omitempty"`
	Unique   *bool  `json:"unique,omitempty"`
}

// RevealEntry is one vote-battle candidate with its author unmasked.
type RevealEntry struct {
	ID     int    `json:"id"`
	Author string `json:"author"`
	Text   string `json:"text"`
	Votes  int    `json:"votes"`
}

// RoundSecrets is the hidden round state shown only on the host screen.
type RoundSecrets struct {
	Correct     *int              `json:"correct,omitempty"`
	Target      *int              `json:"target,omitempty"`
	Location    string            `json:"location,omitempty"`
	Spy         string            `json:"spy,omitempty"`
	Roles       map[string]string `json:"roles,omitempty"`
	Alive       []string          `json:"alive,omitempty"`
	NightVictim string            `json:"nightVictim,omitempty"`
	SeerPeeks   map[string]string `json:"seerPeeks,omitempty"`
}

// PrivateView is the asymmetric per-player fragment (assigned roles,
// seer results). Only the owning player's poll sees it.
type PrivateView struct {
	Role      string            `json:"role,omitempty"`
	Location  string            `json:"location,omitempty"`
	Alive     *bool             `json:"alive,omitempty"`
	SeerPeeks map[string]string `json:"seerPeeks,omitempty"`
	Note      string            `json:"note,omitempty"`
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func floatPtr(v float64) *float64 { return &v }
