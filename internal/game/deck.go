package game

// Deck content types, mirroring the sections of static/prompt-decks.yaml.

// WyrPair is one would-you-rather dilemma.
type WyrPair struct {
	A string `yaml:"a" json:"a"`
	B string `yaml:"b" json:"b"`
}

// TriviaQuestion is one multiple-choice question. Answer indexes Options.
type TriviaQuestion struct {
	Question string   `yaml:"question" json:"question"`
	Options  []string `yaml:"options" json:"options"`
	Answer   int      `yaml:"answer" json:"answer"`
}

// SpyfallLocation is one location card with the roles dealt to non-spies.
type SpyfallLocation struct {
	Location string   `yaml:"location" json:"location"`
	Roles    []string `yaml:"roles" json:"roles"`
}

// Decks holds every built-in prompt pool.
type Decks struct {
	MostLikely     []string          `yaml:"most_likely"`
	WouldYouRather []WyrPair         `yaml:"would_you_rather"`
	Trivia         []TriviaQuestion  `yaml:"trivia"`
	HotSeat        []string          `yaml:"hot_seat"`
	QuickDraw      []string          `yaml:"quick_draw"`
	Wavelength     []string          `yaml:"wavelength"`
	VoteBattle     []string          `yaml:"vote_battle"`
	Spyfall        []SpyfallLocation `yaml:"spyfall"`
}

// fallbackSpyfallRoles covers locations whose role list runs out of entries
// or was left empty in a custom deck file.
var fallbackSpyfallRoles = []string{"Local", "Worker", "Visitor", "Manager", "Regular", "Rookie"}
