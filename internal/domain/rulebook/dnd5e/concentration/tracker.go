// Package concentration enforces one concentration spell per caster and
// rolls the Constitution save when a concentrating creature takes damage.
package concentration

import (
	"log"

	"github.com/KirkDiggler/dnd-combat-engine/internal/dice"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
)

// Reasons recorded when concentration ends
const (
	ReasonFailedSave = "Failed concentration save"
	ReasonReplaced   = "Started concentrating on another spell"
	ReasonExpired    = "duration expired"
	ReasonDropped    = "Concentration dropped"
	ReasonDowned     = "Dropped to 0 hit points"
	MinimumSaveDC    = 10
)

// Ended describes a concentration that just ended.
type Ended struct {
	CharacterID string                  `json:"character_id"`
	Previous    character.Concentration `json:"previous"`
	Reason      string                  `json:"reason"`
}

// SaveResult is the outcome of a damage triggered concentration save.
type SaveResult struct {
	CharacterID string `json:"character_id"`
	SpellKey    string `json:"spell_key"`
	SpellName   string `json:"spell_name"`
	Damage      int    `json:"damage"`
	DC          int    `json:"dc"`
	Roll        int    `json:"roll"`
	Modifier    int    `json:"modifier"`
	Total       int    `json:"total"`
	Success     bool   `json:"success"`

	// Broken is set when the failed save ended concentration
	Broken *Ended `json:"broken,omitempty"`
}

// TrackerConfig holds tracker dependencies
type TrackerConfig struct {
	Roller dice.Roller
}

// Tracker operates on the Concentration field of a combatant. Keeping the
// record on the combatant means at most one can exist per caster.
type Tracker struct {
	roller dice.Roller
}

// NewTracker creates a concentration tracker
func NewTracker(cfg *TrackerConfig) *Tracker {
	if cfg == nil || cfg.Roller == nil {
		panic("dice roller is required")
	}
	return &Tracker{roller: cfg.Roller}
}

// SaveDC is max(10, damage / 2).
func SaveDC(damage int) int {
	return max(MinimumSaveDC, damage/2)
}

// Start replaces any existing concentration in one assignment and returns
// the concentration that was ended, if any.
func (t *Tracker) Start(c *character.Combatant, next character.Concentration) (*character.Concentration, *Ended) {
	var ended *Ended
	if c.Concentration != nil {
		ended = &Ended{CharacterID: c.ID, Previous: *c.Concentration, Reason: ReasonReplaced}
		log.Printf("Concentration: %s stops concentrating on %s to start %s", c.Name, c.Concentration.SpellName, next.SpellName)
	}
	started := next
	c.Concentration = &started
	return c.Concentration, ended
}

// Break removes concentration unconditionally. It returns nil when the
// combatant was not concentrating.
func (t *Tracker) Break(c *character.Combatant, reason string) *Ended {
	if c.Concentration == nil {
		return nil
	}
	ended := &Ended{CharacterID: c.ID, Previous: *c.Concentration, Reason: reason}
	c.Concentration = nil
	log.Printf("Concentration: %s lost concentration on %s: %s", c.Name, ended.Previous.SpellName, reason)
	return ended
}

// Find returns the concentration for a given spell, if that is the one held.
func (t *Tracker) Find(c *character.Combatant, spellKey string) (*character.Concentration, bool) {
	if c.Concentration == nil || c.Concentration.SpellKey != spellKey {
		return nil, false
	}
	return c.Concentration, true
}

// CheckOnDamage rolls d20 + Constitution modifier against SaveDC(damage).
// A natural 20 always succeeds, a natural 1 always fails. Returns nil when
// the combatant is not concentrating or took no damage.
func (t *Tracker) CheckOnDamage(c *character.Combatant, damage int) (*SaveResult, error) {
	if c.Concentration == nil || damage <= 0 {
		return nil, nil
	}

	conMod := c.Modifier(shared.AttributeConstitution)
	roll, err := t.roller.Roll(1, 20, conMod)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll concentration save")
	}

	natural := roll.Rolls[0]
	result := &SaveResult{
		CharacterID: c.ID,
		SpellKey:    c.Concentration.SpellKey,
		SpellName:   c.Concentration.SpellName,
		Damage:      damage,
		DC:          SaveDC(damage),
		Roll:        natural,
		Modifier:    conMod,
		Total:       roll.Total,
	}
	result.Success = natural == 20 || (natural != 1 && result.Total >= result.DC)

	if !result.Success {
		result.Broken = t.Break(c, ReasonFailedSave)
	}
	return result, nil
}

// Tick advances a round-limited concentration by one round and ends it
// when the counter runs out.
func (t *Tracker) Tick(c *character.Combatant) *Ended {
	if c.Concentration == nil || !c.Concentration.Tick() {
		return nil
	}
	return t.Break(c, ReasonExpired)
}

// DamageOutcome is damage applied to a combatant plus whatever happened to
// its concentration as a result.
type DamageOutcome struct {
	Report character.DamageReport `json:"report"`
	Save   *SaveResult            `json:"save,omitempty"`

	// Ended is set when the damage broke concentration, by a failed save
	// or by dropping the combatant to 0 HP
	Ended *Ended `json:"ended,omitempty"`
}

// ApplyDamage applies damage and then checks concentration on the damage
// actually taken. A combatant dropped to 0 HP loses concentration without
// a save.
func (t *Tracker) ApplyDamage(c *character.Combatant, amount int, damageType shared.DamageType, critical bool) (*DamageOutcome, error) {
	outcome := &DamageOutcome{Report: c.TakeDamage(amount, damageType, critical)}

	if c.Concentration == nil {
		return outcome, nil
	}
	if c.HitPoints.Current == 0 && outcome.Report.Amount > 0 {
		outcome.Ended = t.Break(c, ReasonDowned)
		return outcome, nil
	}

	save, err := t.CheckOnDamage(c, outcome.Report.Amount)
	if err != nil {
		return nil, err
	}
	outcome.Save = save
	if save != nil {
		outcome.Ended = save.Broken
	}
	return outcome, nil
}
