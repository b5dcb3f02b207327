package compare

import "github.com/stattrackr/stattrackr/internal/stats"

type Slot int

const (
	SlotA Slot = iota
	SlotB
)

func (s Slot) String() string {
	if s == SlotB {
		return "B"
	}

	return "A"
}

// Selection is the ordered pair of entities picked for comparison.
type Selection struct {
	slots [2]stats.Entity
}

func (s *Selection) Set(slot Slot, entity stats.Entity) {
	s.slots[slot] = entity
}

func (s *Selection) Clear(slot Slot) {
	s.slots[slot] = nil
}

func (s *Selection) Reset() {
	s.slots = [2]stats.Entity{}
}

func (s *Selection) Get(slot Slot) stats.Entity {
	return s.slots[slot]
}

func (s *Selection) Ready() bool {
	return s.slots[SlotA] != nil && s.slots[SlotB] != nil
}

// Result compares the selected pair, ErrIncomplete until both slots are filled.
func (s *Selection) Result() (Result, error) {
	if !s.Ready() {
		return Result{}, ErrIncomplete
	}

	return Compare(s.slots[SlotA], s.slots[SlotB])
}
