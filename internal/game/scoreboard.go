package game

import (
	"fmt"
	"sort"
)

// Scoreboard holds cumulative points. Deltas only ever add; reveal and
// host awards both flow through ApplyDelta so the audit story stays in
// one place. Not self-locking: the Session serializes access.
type Scoreboard struct {
	points map[PlayerID]int
}

// NewScoreboard creates an empty scoreboard.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{points: make(map[PlayerID]int)}
}

// Ensure creates a zero row for the player if none exists.
func (s *Scoreboard) Ensure(id PlayerID) {
	if _, ok := s.points[id]; !ok {
		s.points[id] = 0
	}
}

// ApplyDelta adds delta to the player's total. The row must exist, so
// typos in host awards surface instead of minting phantom rows.
func (s *Scoreboard) ApplyDelta(id PlayerID, delta int) error {
	if _, ok := s.points[id]; !ok {
		return fmt.Errorf("%w: no scoreboard row for %s", ErrNotFound, id)
	}
	s.points[id] += delta
	return nil
}

// apply folds reveal deltas in. Unlike ApplyDelta it creates missing rows,
// since strategies may award players the board never saw ensured.
func (s *Scoreboard) apply(deltas map[PlayerID]int) {
	for id, delta := range deltas {
		s.points[id] += delta
	}
}

// Total returns the player's current points.
func (s *Scoreboard) Total(id PlayerID) int {
	return s.points[id]
}

// ScoreRow is one scoreboard line as shown to clients.
type ScoreRow struct {
	Player PlayerID `json:"player"`
	Name   string   `json:"name"`
	Points int      `json:"points"`
	Active bool     `json:"active"`
}

// Rows returns the standings sorted by points descending, join order
// breaking ties so the board doesn't shuffle players with equal scores.
func (s *Scoreboard) Rows(reg *Registry) []ScoreRow {
	rows := make([]ScoreRow, 0, len(s.points))
	for _, p := range reg.List() {
		pts, ok := s.points[p.ID]
		if !ok {
			continue
		}
		rows = append(rows, ScoreRow{
			Player: p.ID,
			Name:   p.Name,
			Points: pts,
			Active: p.Active,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return reg.JoinIndex(rows[i].Player) < reg.JoinIndex(rows[j].Player)
	})
	return rows
}
