package character

import (
	"slices"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
)

// HitPoints is a value type; operations return the updated value.
type HitPoints struct {
	Current int `json:"current"`
	Max     int `json:"max"`
	Temp    int `json:"temp"`
}

// DamageSplit describes how damage was absorbed.
type DamageSplit struct {
	Amount   int `json:"amount"`    // after resistance
	Absorbed int `json:"absorbed"`  // by temporary HP
	Taken    int `json:"taken"`     // from real HP
	Overflow int `json:"overflow"`  // damage beyond 0 HP
	HPBefore int `json:"hp_before"` // real HP before damage
}

// Damage applies damage to temporary HP first, then real HP, never below 0.
func (hp HitPoints) Damage(amount int) (HitPoints, DamageSplit) {
	split := DamageSplit{Amount: max(0, amount), HPBefore: hp.Current}
	remaining := split.Amount

	if hp.Temp > 0 {
		split.Absorbed = min(hp.Temp, remaining)
		hp.Temp -= split.Absorbed
		remaining -= split.Absorbed
	}

	split.Taken = min(hp.Current, remaining)
	split.Overflow = remaining - split.Taken
	hp.Current -= split.Taken
	return hp, split
}

// Heal restores HP up to max and returns the amount actually gained.
func (hp HitPoints) Heal(amount int) (HitPoints, int) {
	if amount <= 0 {
		return hp, 0
	}
	before := hp.Current
	hp.Current = min(hp.Max, hp.Current+amount)
	return hp, hp.Current - before
}

// WithTemp grants temporary HP. Pools do not stack, the higher one is kept.
func (hp HitPoints) WithTemp(amount int) HitPoints {
	hp.Temp = max(hp.Temp, amount)
	return hp
}

// Bloodied reports HP at or below half.
func (hp HitPoints) Bloodied() bool {
	return hp.Current <= hp.Max/2
}

// AdjustDamage applies immunity, resistance and vulnerability in that order
// of precedence.
func (c *Combatant) AdjustDamage(amount int, damageType shared.DamageType) int {
	if damageType == shared.DamageTypeNone {
		return amount
	}
	switch {
	case slices.Contains(c.Immunities, damageType):
		return 0
	case slices.Contains(c.Resistances, damageType):
		return amount / 2
	case slices.Contains(c.Vulnerabilities, damageType):
		return amount * 2
	default:
		return amount
	}
}

// DamageReport is the outcome of TakeDamage.
type DamageReport struct {
	DamageSplit
	DamageType    shared.DamageType `json:"damage_type,omitempty"`
	HPAfter       int               `json:"hp_after"`
	DroppedToZero bool              `json:"dropped_to_zero"`
	Died          bool              `json:"died"`
}

// TakeDamage adjusts for damage type, drains temporary HP, then real HP.
// At 0 HP characters accrue death save failures, and overflow of at least
// max HP kills outright.
func (c *Combatant) TakeDamage(amount int, damageType shared.DamageType, critical bool) DamageReport {
	adjusted := c.AdjustDamage(max(0, amount), damageType)
	wasDown := c.HitPoints.Current == 0

	var split DamageSplit
	c.HitPoints, split = c.HitPoints.Damage(adjusted)
	report := DamageReport{
		DamageSplit: split,
		DamageType:  damageType,
		HPAfter:     c.HitPoints.Current,
	}

	if c.HitPoints.Current > 0 || adjusted == 0 || split.Absorbed == adjusted {
		return report
	}

	report.DroppedToZero = !wasDown
	if c.Kind == KindMonster {
		report.Died = true
		return report
	}

	wasDead := c.DeathSaves.Dead
	switch {
	case split.Overflow >= c.HitPoints.Max && c.HitPoints.Max > 0:
		c.DeathSaves = c.DeathSaves.Kill()
	case wasDown:
		c.DeathSaves = c.DeathSaves.DamagedWhileDown(critical)
	default:
		c.DeathSaves = DeathSaves{}
	}
	report.Died = c.DeathSaves.Dead && !wasDead
	return report
}

// Heal restores HP. Healing a downed character resets death saves.
func (c *Combatant) Heal(amount int) int {
	if c.DeathSaves.Dead {
		return 0
	}
	var gained int
	c.HitPoints, gained = c.HitPoints.Heal(amount)
	if gained > 0 {
		c.DeathSaves = DeathSaves{}
	}
	return gained
}

// AddTempHP grants temporary hit points, keeping the higher pool.
func (c *Combatant) AddTempHP(amount int) {
	c.HitPoints = c.HitPoints.WithTemp(amount)
}
