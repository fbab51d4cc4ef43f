package shared

// ConditionType represents standard D&D 5e conditions
type ConditionType string

const (
	ConditionBlinded       ConditionType = "blinded"
	ConditionCharmed       ConditionType = "charmed"
	ConditionDeafened      ConditionType = "deafened"
	ConditionFrightened    ConditionType = "frightened"
	ConditionGrappled      ConditionType = "grappled"
	ConditionIncapacitated ConditionType = "incapacitated"
	ConditionInvisible     ConditionType = "invisible"
	ConditionParalyzed     ConditionType = "paralyzed"
	ConditionPetrified     ConditionType = "petrified"
	ConditionPoisoned      ConditionType = "poisoned"
	ConditionProne         ConditionType = "prone"
	ConditionRestrained    ConditionType = "restrained"
	ConditionStunned       ConditionType = "stunned"
	ConditionUnconscious   ConditionType = "unconscious"
	ConditionExhaustion    ConditionType = "exhaustion"
)

// Condition is a condition applied to a combatant. RoundsRemaining of 0
// means it lasts until removed.
type Condition struct {
	Type            ConditionType `json:"type"`
	Source          string        `json:"source,omitempty"`
	RoundsRemaining int           `json:"rounds_remaining,omitempty"`
}
