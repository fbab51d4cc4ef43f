package events

import "reflect"

// CombatStarted opens an encounter
type CombatStarted struct {
	Order []string `json:"order"`
}

// CombatEnded closes an encounter
type CombatEnded struct {
	Round int `json:"round"`
}

// InitiativeRolled is one fighter's initiative
type InitiativeRolled struct {
	FighterID string `json:"fighter_id"`
	Name      string `json:"name"`
	Roll      int    `json:"roll"`
	Modifier  int    `json:"modifier"`
	Total     int    `json:"total"`
}

// InitiativeOrder is the fixed turn order
type InitiativeOrder struct {
	Names []string `json:"names"`
}

// RoundEnded is emitted before the next round's first turn
type RoundEnded struct {
	Round int `json:"round"`
}

// TurnStarted opens a fighter's turn
type TurnStarted struct {
	Round     int    `json:"round"`
	FighterID string `json:"fighter_id"`
	Name      string `json:"name"`
}

// TurnEnded closes a fighter's turn
type TurnEnded struct {
	Round     int    `json:"round"`
	FighterID string `json:"fighter_id"`
	Name      string `json:"name"`
}

// ActionTaken records a consumed action budget
type ActionTaken struct {
	Name       string `json:"name"`
	Action     string `json:"action"`
	ActionType string `json:"action_type"`
	TargetName string `json:"target_name,omitempty"`
}

// Moved records movement spent
type Moved struct {
	Name      string `json:"name"`
	Feet      int    `json:"feet"`
	Remaining int    `json:"remaining"`
}

// AttackResolved is one weapon attack
type AttackResolved struct {
	AttackerName  string `json:"attacker_name"`
	TargetName    string `json:"target_name"`
	WeaponName    string `json:"weapon_name"`
	Mode          string `json:"mode"`
	NaturalRoll   int    `json:"natural_roll"`
	DiscardedRoll int    `json:"discarded_roll,omitempty"`
	AttackRoll    int    `json:"attack_roll"`
	TargetAC      int    `json:"target_ac"`
	Hit           bool   `json:"hit"`
	CriticalHit   bool   `json:"critical_hit"`
	CriticalMiss  bool   `json:"critical_miss"`
	Damage        int    `json:"damage"`
	DamageType    string `json:"damage_type,omitempty"`
	Mastery       string `json:"mastery,omitempty"`
}

// SpellCast is a spell being cast
type SpellCast struct {
	CasterName  string   `json:"caster_name"`
	SpellName   string   `json:"spell_name"`
	SlotLevel   int      `json:"slot_level"`
	TargetNames []string `json:"target_names,omitempty"`
}

// DamageDealt is damage landing on a target
type DamageDealt struct {
	TargetID   string `json:"target_id"`
	TargetName string `json:"target_name"`
	Amount     int    `json:"amount"`
	DamageType string `json:"damage_type,omitempty"`
	Source     string `json:"source"`
	HPAfter    int    `json:"hp_after"`
	Dropped    bool   `json:"dropped,omitempty"`
	Died       bool   `json:"died,omitempty"`
}

// HealingReceived is healing landing on a target
type HealingReceived struct {
	TargetID   string `json:"target_id"`
	TargetName string `json:"target_name"`
	Amount     int    `json:"amount"`
	Overheal   int    `json:"overheal,omitempty"`
	Source     string `json:"source"`
	HPAfter    int    `json:"hp_after"`
}

// ConditionChanged is a condition applied to or lifted from a target
type ConditionChanged struct {
	TargetID   string `json:"target_id"`
	TargetName string `json:"target_name"`
	Condition  string `json:"condition"`
	Source     string `json:"source,omitempty"`
}

// SavingThrow is a target's save against an effect
type SavingThrow struct {
	TargetName string `json:"target_name"`
	SaveType   string `json:"save_type"`
	DC         int    `json:"dc"`
	Roll       int    `json:"roll"`
	Total      int    `json:"total"`
	Success    bool   `json:"success"`
	Source     string `json:"source"`
}

// DeathSave is a downed character's death saving throw
type DeathSave struct {
	Name       string `json:"name"`
	Roll       int    `json:"roll"`
	Success    bool   `json:"success"`
	Successes  int    `json:"successes"`
	Failures   int    `json:"failures"`
	Stabilized bool   `json:"stabilized,omitempty"`
	Died       bool   `json:"died,omitempty"`
	Regained   bool   `json:"regained,omitempty"`
}

// ConcentrationStarted is a caster beginning to concentrate
type ConcentrationStarted struct {
	Name      string `json:"name"`
	SpellName string `json:"spell_name"`
}

// ConcentrationBroken is a concentration ending for any reason
type ConcentrationBroken struct {
	Name      string `json:"name"`
	SpellName string `json:"spell_name"`
	Reason    string `json:"reason"`
}

// ConcentrationSaveRequired announces a damage-triggered save
type ConcentrationSaveRequired struct {
	Name      string `json:"name"`
	SpellName string `json:"spell_name"`
	DC        int    `json:"dc"`
}

// ConcentrationSaveResult is the outcome of that save
type ConcentrationSaveResult struct {
	Name      string `json:"name"`
	SpellName string `json:"spell_name"`
	Roll      int    `json:"roll"`
	Modifier  int    `json:"modifier"`
	Total     int    `json:"total"`
	DC        int    `json:"dc"`
	Success   bool   `json:"success"`
}

// EffectExpired is a lasting spell effect ending
type EffectExpired struct {
	TargetName string `json:"target_name"`
	SpellName  string `json:"spell_name"`
}

// SummonChanged is a summoned creature appearing or leaving
type SummonChanged struct {
	SummonerName string `json:"summoner_name"`
	Name         string `json:"name"`
	SpellName    string `json:"spell_name,omitempty"`
}

var payloadTypes = map[Kind]func() any{
	KindCombatStarted:             func() any { return &CombatStarted{} },
	KindCombatEnded:               func() any { return &CombatEnded{} },
	KindInitiativeRolled:          func() any { return &InitiativeRolled{} },
	KindInitiativeOrder:           func() any { return &InitiativeOrder{} },
	KindRoundEnded:                func() any { return &RoundEnded{} },
	KindTurnStarted:               func() any { return &TurnStarted{} },
	KindTurnEnded:                 func() any { return &TurnEnded{} },
	KindActionTaken:               func() any { return &ActionTaken{} },
	KindMoved:                     func() any { return &Moved{} },
	KindAttackResolved:            func() any { return &AttackResolved{} },
	KindSpellCast:                 func() any { return &SpellCast{} },
	KindDamageDealt:               func() any { return &DamageDealt{} },
	KindHealingReceived:           func() any { return &HealingReceived{} },
	KindConditionApplied:          func() any { return &ConditionChanged{} },
	KindConditionRemoved:          func() any { return &ConditionChanged{} },
	KindSavingThrow:               func() any { return &SavingThrow{} },
	KindDeathSave:                 func() any { return &DeathSave{} },
	KindConcentrationStarted:      func() any { return &ConcentrationStarted{} },
	KindConcentrationBroken:       func() any { return &ConcentrationBroken{} },
	KindConcentrationSaveRequired: func() any { return &ConcentrationSaveRequired{} },
	KindConcentrationSaveResult:   func() any { return &ConcentrationSaveResult{} },
	KindEffectExpired:             func() any { return &EffectExpired{} },
	KindSummonCreated:             func() any { return &SummonChanged{} },
	KindSummonDismissed:           func() any { return &SummonChanged{} },
}

// derefPayload stores payloads by value, matching how the engine builds them.
func derefPayload(p any) any {
	v := reflect.ValueOf(p)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		return v.Elem().Interface()
	}
	return p
}
