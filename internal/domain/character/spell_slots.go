package character

import (
	"fmt"

	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
)

const MaxSpellLevel = 9

// SlotLevel tracks slots of one spell level.
type SlotLevel struct {
	Total int `json:"total"`
	Used  int `json:"used"`
}

// Remaining returns unused slots.
func (s *SlotLevel) Remaining() int {
	return s.Total - s.Used
}

// Use consumes a slot. It returns false when none remain.
func (s *SlotLevel) Use() bool {
	if s.Remaining() <= 0 {
		return false
	}
	s.Used++
	return true
}

// Restore gives back count slots, never dropping usage below 0.
func (s *SlotLevel) Restore(count int) {
	s.Used = max(0, s.Used-count)
}

// RestoreAll resets usage (long rest).
func (s *SlotLevel) RestoreAll() {
	s.Used = 0
}

// SpellSlots is the per-level slot pool. It is an array so copies are deep.
type SpellSlots struct {
	Levels [MaxSpellLevel]SlotLevel `json:"levels"`
}

// NewSpellSlots builds a pool from totals indexed by level, starting at 1.
func NewSpellSlots(totals map[int]int) SpellSlots {
	var slots SpellSlots
	for level, total := range totals {
		if level >= 1 && level <= MaxSpellLevel {
			slots.Levels[level-1].Total = total
		}
	}
	return slots
}

func (s *SpellSlots) level(level int) (*SlotLevel, error) {
	if level < 1 || level > MaxSpellLevel {
		return nil, dnderr.InvalidArgumentf("spell slot level %d out of range", level)
	}
	return &s.Levels[level-1], nil
}

// Remaining returns unused slots at a level, 0 for out of range levels.
func (s *SpellSlots) Remaining(level int) int {
	slot, err := s.level(level)
	if err != nil {
		return 0
	}
	return slot.Remaining()
}

// UseSlot consumes a slot of the given level.
func (s *SpellSlots) UseSlot(level int) error {
	slot, err := s.level(level)
	if err != nil {
		return err
	}
	if !slot.Use() {
		return dnderr.RulesViolationf(SlotPrerequisite(level), "no level %d spell slots remaining", level)
	}
	return nil
}

// RestoreSlot gives back count slots at a level.
func (s *SpellSlots) RestoreSlot(level, count int) error {
	slot, err := s.level(level)
	if err != nil {
		return err
	}
	slot.Restore(count)
	return nil
}

// RestoreAll resets every level.
func (s *SpellSlots) RestoreAll() {
	for i := range s.Levels {
		s.Levels[i].RestoreAll()
	}
}

// PactSlots is the warlock pact magic pool. All slots share one level and
// come back on a short rest.
type PactSlots struct {
	Level int `json:"level"`
	Total int `json:"total"`
	Used  int `json:"used"`
}

// Remaining returns unused pact slots.
func (p *PactSlots) Remaining() int {
	return p.Total - p.Used
}

// Use consumes a pact slot. It returns false when none remain.
func (p *PactSlots) Use() bool {
	if p.Remaining() <= 0 {
		return false
	}
	p.Used++
	return true
}

// RestoreAll resets usage (short rest).
func (p *PactSlots) RestoreAll() {
	p.Used = 0
}

// SlotPrerequisite names the missing resource in rules violations.
func SlotPrerequisite(level int) string {
	return fmt.Sprintf("spell_slot_level_%d", level)
}
