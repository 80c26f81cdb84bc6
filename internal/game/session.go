package game

import (
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"partyhub/internal/config"
)

// Session is the one live party. It owns the roster, the round engine, the
// scoreboard, and the change counter, and serializes every operation under
// a single lock. Readers get versioned snapshots; pollers that already
// have the current version get a cheap no-change answer.
type Session struct {
	mu     sync.RWMutex
	rules  config.GameRules
	reg    *Registry
	engine *Engine
	board  *Scoreboard
	decks  *DeckService
	rng    *rand.Rand

	hostKey   string
	createdAt time.Time

	// version bumps on every accepted mutation. changed is closed and
	// replaced on each bump so long-pollers wake without polling the lock.
	version uint64
	changed chan struct{}
}

// NewSession creates a fresh session with a new host key and an empty
// roster. The rng drives prompt draws and role assignment; tests pass a
// seeded one.
func NewSession(rules config.GameRules, decks *DeckService, rng *rand.Rand) *Session {
	return &Session{
		rules:     rules,
		reg:       NewRegistry(),
		engine:    NewEngine(),
		board:     NewScoreboard(),
		decks:     decks,
		rng:       rng,
		hostKey:   newHostKey(),
		createdAt: time.Now(),
		version:   1,
		changed:   make(chan struct{}),
	}
}

func newHostKey() string {
	b := make([]byte, 8)
	crand.Read(b)
	return hex.EncodeToString(b)
}

// HostKey returns the process-lifetime host credential. It is printed at
// startup and checked with plain equality at the HTTP boundary.
func (s *Session) HostKey() string {
	return s.hostKey
}

// Version returns the current change counter.
func (s *Session) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// env must be called with the lock held.
func (s *Session) env() *Env {
	return &Env{Reg: s.reg, Rules: s.rules, Decks: s.decks, Rng: s.rng}
}

// bump must be called with the write lock held, after a successful change.
func (s *Session) bump() {
	s.version++
	close(s.changed)
	s.changed = make(chan struct{})
}

// Join adds a player. Empty names get an automatic one; rude names are
// rejected rather than laundered.
func (s *Session) Join(name string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = CleanText(name, s.rules.NameMaxLen)
	if ContainsBannedWord(name, s.rules.ProfanityFilter) {
		return nil, fmt.Errorf("%w: pick a friendlier name", ErrInvalidContent)
	}
	p := s.reg.Join(name)
	s.board.Ensure(p.ID)
	s.bump()
	return p, nil
}

// Rename changes a player's display name.
func (s *Session) Rename(id PlayerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = CleanText(name, s.rules.NameMaxLen)
	if ContainsBannedWord(name, s.rules.ProfanityFilter) {
		return fmt.Errorf("%w: pick a friendlier name", ErrInvalidContent)
	}
	if err := s.reg.Rename(id, name); err != nil {
		return err
	}
	s.bump()
	return nil
}

// Kick deactivates a player and withdraws their live submission and vote
// so departed players don't decide the round in progress. Scores and
// history stay.
func (s *Session) Kick(id PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reg.Deactivate(id); err != nil {
		return err
	}
	if r := s.engine.Current(); r != nil && r.Phase != PhaseRevealed {
		delete(r.Submissions, id)
		delete(r.Votes, id)
	}
	s.bump()
	return nil
}

// Touch records player liveness without bumping the version; a poll is
// not a change.
func (s *Session) Touch(id PlayerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.Touch(id)
}

// Submit stores a player's submission for the collecting phase.
func (s *Session) Submit(id PlayerID, in Input) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.reg.Get(id)
	if err != nil {
		return err
	}
	if err := s.engine.Submit(p, in, s.env()); err != nil {
		return err
	}
	s.reg.Touch(id)
	s.bump()
	return nil
}

// Vote stores a player's vote.
func (s *Session) Vote(id PlayerID, in Input) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.reg.Get(id)
	if err != nil {
		return err
	}
	if err := s.engine.Vote(p, in, s.env()); err != nil {
		return err
	}
	s.reg.Touch(id)
	s.bump()
	return nil
}

// StartRound begins a new round of the requested mode.
func (s *Session) StartRound(req RoundRequest) (*Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.engine.StartRound(req, s.env())
	if err != nil {
		return nil, err
	}
	s.bump()
	return r, nil
}

// AdvanceToVoting opens the voting phase of a two-phase round. Calling it
// again while voting is a no-op and does not bump the version.
func (s *Session) AdvanceToVoting() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.engine.AdvanceToVoting(s.env())
	if err != nil {
		return false, err
	}
	if changed {
		s.bump()
	}
	return changed, nil
}

// Reveal scores and freezes the current round. Repeat calls return the
// frozen payload unchanged and never touch the scoreboard again.
func (s *Session) Reveal() (*RevealPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, deltas, scored, err := s.engine.Reveal(s.env())
	if err != nil {
		return nil, err
	}
	if scored {
		s.board.apply(deltas)
		s.bump()
	}
	return payload, nil
}

// AwardPoints adds host-granted points to a player after the reveal.
// Zero means one, so a bare award button does the obvious thing.
func (s *Session) AwardPoints(id PlayerID, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine.Phase() != PhaseRevealed {
		return fmt.Errorf("%w: points are awarded after the reveal", ErrInvalidPhase)
	}
	if points == 0 {
		points = 1
	}
	if err := s.board.ApplyDelta(id, points); err != nil {
		return err
	}
	s.bump()
	return nil
}

// Snapshot returns the public view when the version has moved past since.
func (s *Session) Snapshot(since uint64) (*Snapshot, bool) {
	return s.SnapshotFor(since, "")
}

// SnapshotFor returns the public view plus the viewer's own fragment.
// The second result is false when nothing changed since the given version.
func (s *Session) SnapshotFor(since uint64, viewer PlayerID) (*Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.version <= since {
		return nil, false
	}
	return s.snapshotLocked(viewer), true
}

// WaitSnapshot blocks until the version passes since or the context ends,
// then reports like SnapshotFor. The caller bounds the wait with its
// context; no lock is held while waiting.
func (s *Session) WaitSnapshot(ctx context.Context, since uint64, viewer PlayerID) (*Snapshot, bool) {
	for {
		s.mu.RLock()
		if s.version > since {
			snap := s.snapshotLocked(viewer)
			s.mu.RUnlock()
			return snap, true
		}
		ch := s.changed
		s.mu.RUnlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return nil, false
		}
	}
}

// HostSnapshot returns everything: the public view, hidden round state,
// per-player progress ticks, and deck levels.
func (s *Session) HostSnapshot(since uint64) (*HostSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.version <= since {
		return nil, false
	}
	host := &HostSnapshot{
		Snapshot: *s.snapshotLocked(""),
		Ticks:    buildTicks(s.reg, s.engine.Current()),
		Decks:    s.decks.Sizes(),
		Modes:    buildModeViews(),
	}
	if r := s.engine.Current(); r != nil {
		if strat, err := StrategyFor(r.Mode); err == nil {
			host.Secrets = strat.Secrets(r, s.env())
		}
	}
	return host, true
}

// Recap summarizes the whole session: standings plus every round's frozen
// result.
func (s *Session) Recap() *Recap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return buildRecap(s.reg, s.board, s.engine.Rounds())
}

func (s *Session) snapshotLocked(viewer PlayerID) *Snapshot {
	snap := &Snapshot{
		Version:    s.version,
		Phase:      s.engine.Phase(),
		Players:    buildPlayerViews(s.reg, time.Now()),
		Scoreboard: s.board.Rows(s.reg),
		Round:      buildRoundView(s.engine.Current()),
	}
	if viewer != "" {
		snap.You = s.youLocked(viewer)
	}
	return snap
}

func (s *Session) youLocked(id PlayerID) *YouView {
	p, ok := s.reg.Lookup(id)
	if !ok {
		return nil
	}
	you := &YouView{
		ID:     p.ID,
		Name:   p.Name,
		Points: s.board.Total(p.ID),
		Active: p.Active,
	}
	if r := s.engine.Current(); r != nil {
		you.Submitted = r.HasSubmitted(p.ID)
		you.Voted = r.HasVoted(p.ID)
		if strat, err := StrategyFor(r.Mode); err == nil {
			you.Private = strat.PrivateView(r, p, s.env())
		}
	}
	return you
}
