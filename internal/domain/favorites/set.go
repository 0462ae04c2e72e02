// internal/domain/favorites/set.go
package favorites

import "gamestore/internal/domain/catalog"

// Set holds a user's favorite games: full game snapshots, unique by ID.
// Full snapshots (not bare IDs) are kept because the remote store's
// array-union/array-remove operations compare whole element values.
type Set struct {
	items []catalog.Game
}

// NewSet builds a set from loaded items, dropping duplicates and
// un-normalizable entries.
func NewSet(items []catalog.Game) *Set {
	s := &Set{}
	for _, it := range items {
		g, err := catalog.Normalize(it)
		if err != nil {
			continue
		}
		if s.Contains(g.ID) {
			continue
		}
		s.items = append(s.items, g)
	}
	return s
}

// Contains reports membership by game ID. Linear scan; favorite counts
// stay small at this scale.
func (s *Set) Contains(id int64) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			return true
		}
	}
	return false
}

// Add appends a game. Returns false when the ID is already present.
func (s *Set) Add(game catalog.Game) bool {
	if s.Contains(game.ID) {
		return false
	}
	s.items = append(s.items, game)
	return true
}

// Remove deletes the game with the given ID, returning the removed
// snapshot so a failed remote removal can re-insert it.
func (s *Set) Remove(id int64) (catalog.Game, bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			g := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			return g, true
		}
	}
	return catalog.Game{}, false
}

// Items returns a copy of the current favorites.
func (s *Set) Items() []catalog.Game {
	out := make([]catalog.Game, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of favorites.
func (s *Set) Len() int {
	return len(s.items)
}
