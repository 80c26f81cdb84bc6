package game

import (
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"
)

// DeckService owns the prompt pools and hands out prompts for rounds the
// host starts without supplying one. Draws are without repetition: each
// mode has a shuffled bag of undrawn indexes that refills once exhausted,
// so a long session cycles the whole deck before repeating anything.
//
// Not self-locking; the Session serializes access like every other
// engine collaborator.
type DeckService struct {
	decks Decks
	bags  map[Mode][]int
	rng   *rand.Rand
}

// NewDeckService parses deck YAML (normally the embedded
// static/prompt-decks.yaml) and validates that every mode has something
// to draw.
func NewDeckService(raw []byte, rng *rand.Rand) (*DeckService, error) {
	var decks Decks
	if err := yaml.Unmarshal(raw, &decks); err != nil {
		return nil, fmt.Errorf("failed to parse prompt decks: %w", err)
	}
	if err := ValidateDecks(&decks); err != nil {
		return nil, err
	}
	return &DeckService{
		decks: decks,
		bags:  make(map[Mode][]int),
		rng:   rng,
	}, nil
}

// ValidateDecks checks every pool for emptiness and malformed entries.
// scripts/decklint runs this against the shipped file.
func ValidateDecks(d *Decks) error {
	if len(d.MostLikely) == 0 {
		return fmt.Errorf("deck most_likely is empty")
	}
	if len(d.WouldYouRather) == 0 {
		return fmt.Errorf("deck would_you_rather is empty")
	}
	for i, pair := range d.WouldYouRather {
		if pair.A == "" || pair.B == "" {
			return fmt.Errorf("would_you_rather[%d]: both options are required", i)
		}
	}
	if len(d.Trivia) == 0 {
		return fmt.Errorf("deck trivia is empty")
	}
	for i, q := range d.Trivia {
		if q.Question == "" {
			return fmt.Errorf("trivia[%d]: question is required", i)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("trivia[%d]: at least two options required", i)
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return fmt.Errorf("trivia[%d]: answer index %d out of range", i, q.Answer)
		}
	}
	if len(d.HotSeat) == 0 {
		return fmt.Errorf("deck hot_seat is empty")
	}
	if len(d.QuickDraw) == 0 {
		return fmt.Errorf("deck quick_draw is empty")
	}
	if len(d.Wavelength) == 0 {
		return fmt.Errorf("deck wavelength is empty")
	}
	if len(d.VoteBattle) == 0 {
		return fmt.Errorf("deck vote_battle is empty")
	}
	if len(d.Spyfall) == 0 {
		return fmt.Errorf("deck spyfall is empty")
	}
	for i, loc := range d.Spyfall {
		if loc.Location == "" {
			return fmt.Errorf("spyfall[%d]: location is required", i)
		}
	}
	return nil
}

// Sizes returns the pool size per deck section, for decklint output.
func (d *DeckService) Sizes() map[string]int {
	return map[string]int{
		"most_likely":      len(d.decks.MostLikely),
		"would_you_rather": len(d.decks.WouldYouRather),
		"trivia":           len(d.decks.Trivia),
		"hot_seat":         len(d.decks.HotSeat),
		"quick_draw":       len(d.decks.QuickDraw),
		"wavelength":       len(d.decks.Wavelength),
		"vote_battle":      len(d.decks.VoteBattle),
		"spyfall":          len(d.decks.Spyfall),
	}
}

// draw pulls the next undrawn index for a mode, reshuffling a fresh bag
// when the current one is empty.
func (d *DeckService) draw(mode Mode, poolSize int) int {
	bag := d.bags[mode]
	if len(bag) == 0 {
		bag = d.rng.Perm(poolSize)
	}
	idx := bag[len(bag)-1]
	d.bags[mode] = bag[:len(bag)-1]
	return idx
}

// DrawText draws a prompt for the plain-text decks. Modes with structured
// prompts have their own draw methods.
func (d *DeckService) DrawText(mode Mode) (string, error) {
	var pool []string
	switch mode {
	case ModeMostLikely:
		pool = d.decks.MostLikely
	case ModeHotSeat:
		pool = d.decks.HotSeat
	case ModeQuickDraw:
		pool = d.decks.QuickDraw
	case ModeWavelength:
		pool = d.decks.Wavelength
	case ModeVoteBattle:
		pool = d.decks.VoteBattle
	default:
		return "", fmt.Errorf("%w: no text deck for %s", ErrInvalidMode, mode)
	}
	return pool[d.draw(mode, len(pool))], nil
}

// DrawWyr draws a would-you-rather pair.
func (d *DeckService) DrawWyr() WyrPair {
	return d.decks.WouldYouRather[d.draw(ModeWouldYouRather, len(d.decks.WouldYouRather))]
}

// DrawTrivia draws a trivia question.
func (d *DeckService) DrawTrivia() TriviaQuestion {
	return d.decks.Trivia[d.draw(ModeTrivia, len(d.decks.Trivia))]
}

// DrawSpyfall draws a location card.
func (d *DeckService) DrawSpyfall() SpyfallLocation {
	return d.decks.Spyfall[d.draw(ModeSpyfall, len(d.decks.Spyfall))]
}
