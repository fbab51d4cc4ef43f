package character

// Concentration binds a caster to one spell. RoundsRemaining is 0 when the
// spell is not measured in rounds.
type Concentration struct {
	SpellKey        string `json:"spell_key"`
	SpellName       string `json:"spell_name"`
	StartedRound    int    `json:"started_round,omitempty"`
	RoundsRemaining int    `json:"rounds_remaining,omitempty"`
}

// Tick decrements a round-limited concentration and reports expiry.
func (c *Concentration) Tick() bool {
	if c.RoundsRemaining <= 0 {
		return false
	}
	c.RoundsRemaining--
	return c.RoundsRemaining <= 0
}
