package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PlayerID is the opaque stable identity assigned at join.
type PlayerID string

// Player represents one joined device. Owned by the Registry; all fields
// are guarded by the session lock.
type Player struct {
	ID       PlayerID
	Name     string
	JoinedAt time.Time
	LastSeen time.Time

	// Active is cleared when the host kicks a player. Inactive players keep
	// their scoreboard rows and round history but can no longer act.
	Active bool
}

// NewPlayer creates a new player with a fresh identity.
func NewPlayer(name string) *Player {
	now := time.Now()
	return &Player{
		ID:       PlayerID(uuid.New().String()),
		Name:     name,
		JoinedAt: now,
		LastSeen: now,
		Active:   true,
	}
}

// Registry tracks every player that ever joined the session, in join order.
// It is not self-locking: the Session serializes access.
type Registry struct {
	players map[PlayerID]*Player
	order   []PlayerID
}

// NewRegistry creates an empty player registry.
func NewRegistry() *Registry {
	return &Registry{players: make(map[PlayerID]*Player)}
}

// Join allocates a new identity. Duplicate names never fail: a numeric
// suffix keeps the roster readable since names are cosmetic, not identity.
// An empty name gets an automatic one.
func (r *Registry) Join(name string) *Player {
	if name == "" {
		name = fmt.Sprintf("Player %d", len(r.order)+1)
	}
	name = r.uniqueName(name)

	p := NewPlayer(name)
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
	return p
}

func (r *Registry) uniqueName(name string) string {
	taken := make(map[string]bool, len(r.players))
	for _, p := range r.players {
		taken[p.Name] = true
	}
	if !taken[name] {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s %d", name, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

// Get returns an active player. Unknown or kicked ids are ErrNotFound so a
// stale client gets a clean signal to rejoin.
func (r *Registry) Get(id PlayerID) (*Player, error) {
	p, ok := r.players[id]
	if !ok || !p.Active {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// Lookup returns a player regardless of active state, for history display.
func (r *Registry) Lookup(id PlayerID) (*Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

// Touch updates last-seen. Used for liveness display only, never ejection.
func (r *Registry) Touch(id PlayerID) {
	if p, ok := r.players[id]; ok {
		p.LastSeen = time.Now()
	}
}

// Rename changes the display name, keeping the cosmetic uniqueness rule.
func (r *Registry) Rename(id PlayerID, name string) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidContent)
	}
	if name != p.Name {
		p.Name = r.uniqueName(name)
	}
	return nil
}

// Deactivate marks a player inactive. The player is never hard-deleted so
// prior rounds and scores keep resolving their id.
func (r *Registry) Deactivate(id PlayerID) error {
	p, err := r.Get(id)
	if err != nil {
		return err
	}
	p.Active = false
	return nil
}

// List returns all players in join order, including inactive ones.
func (r *Registry) List() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

// ActivePlayers returns the players eligible for gameplay, in join order.
func (r *Registry) ActivePlayers() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		if p := r.players[id]; p.Active {
			out = append(out, p)
		}
	}
	return out
}

// Name resolves an id to a display name, falling back to a short id stub
// when the player is unknown.
func (r *Registry) Name(id PlayerID) string {
	if p, ok := r.players[id]; ok {
		return p.Name
	}
	s := string(id)
	if len(s) > 8 {
		s = s[:8]
	}
	return s
}

// JoinIndex returns the player's join position, used as the scoreboard
// tiebreak. Unknown ids sort last.
func (r *Registry) JoinIndex(id PlayerID) int {
	for i, pid := range r.order {
		if pid == id {
			return i
		}
	}
	return len(r.order)
}
