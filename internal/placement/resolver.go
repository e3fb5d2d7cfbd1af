package placement

import "fmt"

// Candidate is a player offered by the partial-fit resolver.
type Candidate struct {
	ID   string
	Name string
}

// Key identifies the candidate inside a selection. Players without an id
// fall back to their display name.
func (c Candidate) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Name
}

// Selection tracks which players to relocate when a tee time only has room
// for some of them. Adding beyond capacity evicts the oldest selected key.
type Selection struct {
	candidates []Candidate
	capacity   int
	selected   []string // insertion order
}

// NewSelection creates a selection seeded with the first canFit candidates.
// Candidates sharing a key with an earlier one are dropped.
func NewSelection(candidates []Candidate, canFit int) *Selection {
	if canFit < 0 {
		canFit = 0
	}
	s := &Selection{capacity: canFit}
	for _, c := range candidates {
		if s.hasCandidate(c.Key()) {
			continue
		}
		s.candidates = append(s.candidates, c)
		if len(s.selected) < s.capacity {
			s.selected = append(s.selected, c.Key())
		}
	}
	return s
}

// Candidates returns the players offered for selection in source order.
func (s *Selection) Candidates() []Candidate {
	result := make([]Candidate, len(s.candidates))
	copy(result, s.candidates)
	return result
}

// Capacity returns the maximum number of selected players.
func (s *Selection) Capacity() int {
	return s.capacity
}

// Len returns the number of selected players.
func (s *Selection) Len() int {
	return len(s.selected)
}

// IsSelected reports whether key is selected.
func (s *Selection) IsSelected(key string) bool {
	return s.indexOf(key) >= 0
}

// Toggle flips the selection of key.
// When already at capacity the oldest selected key is evicted.
// Keys that are not candidates are ignored.
func (s *Selection) Toggle(key string) {
	if !s.hasCandidate(key) {
		return
	}
	if i := s.indexOf(key); i >= 0 {
		s.selected = append(s.selected[:i], s.selected[i+1:]...)
		return
	}
	if s.capacity == 0 {
		return
	}
	if len(s.selected) >= s.capacity {
		s.selected = s.selected[1:]
	}
	s.selected = append(s.selected, key)
}

// IDs returns the selected keys in insertion order.
func (s *Selection) IDs() []string {
	result := make([]string, len(s.selected))
	copy(result, s.selected)
	return result
}

// CanConfirm reports whether the selection may be submitted.
func (s *Selection) CanConfirm() bool {
	return len(s.selected) > 0
}

// Label returns the "n/m selected" counter.
func (s *Selection) Label() string {
	return fmt.Sprintf("%d/%d selected", len(s.selected), s.capacity)
}

func (s *Selection) hasCandidate(key string) bool {
	for _, c := range s.candidates {
		if c.Key() == key {
			return true
		}
	}
	return false
}

func (s *Selection) indexOf(key string) int {
	for i, k := range s.selected {
		if k == key {
			return i
		}
	}
	return -1
}
