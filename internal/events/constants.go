package events

// Event kinds
const (
	// Combat lifecycle
	KindCombatStarted    Kind = "combat_started"
	KindCombatEnded      Kind = "combat_ended"
	KindInitiativeRolled Kind = "initiative_rolled"
	KindInitiativeOrder  Kind = "initiative_order"
	KindRoundEnded       Kind = "round_ended"
	KindTurnStarted      Kind = "turn_started"
	KindTurnEnded        Kind = "turn_ended"

	// Turn budget
	KindActionTaken Kind = "action_taken"
	KindMoved       Kind = "moved"

	// Resolution
	KindAttackResolved   Kind = "attack_resolved"
	KindSpellCast        Kind = "spell_cast"
	KindDamageDealt      Kind = "damage_dealt"
	KindHealingReceived  Kind = "healing_received"
	KindConditionApplied Kind = "condition_applied"
	KindConditionRemoved Kind = "condition_removed"
	KindSavingThrow      Kind = "saving_throw_result"
	KindDeathSave        Kind = "death_save"

	// Concentration
	KindConcentrationStarted      Kind = "concentration_started"
	KindConcentrationBroken       Kind = "concentration_broken"
	KindConcentrationSaveRequired Kind = "concentration_save_required"
	KindConcentrationSaveResult   Kind = "concentration_save_result"

	// Lasting effects
	KindEffectExpired   Kind = "effect_expired"
	KindSummonCreated   Kind = "summon_created"
	KindSummonDismissed Kind = "summon_dismissed"
)

// Priority levels for in-process listeners. Lower runs first.
const (
	PriorityState     = 0   // Projections of combat state
	PriorityLog       = 100 // Combat log
	PriorityBroadcast = 200 // Outbound sinks
)
