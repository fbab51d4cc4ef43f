package magic

// Spell is reference data. Level 0 is a cantrip.
type Spell struct {
	Key           string `json:"key" yaml:"key"`
	Name          string `json:"name" yaml:"name"`
	Level         int    `json:"level" yaml:"level"`
	School        string `json:"school,omitempty" yaml:"school,omitempty"`
	Concentration bool   `json:"concentration,omitempty" yaml:"concentration,omitempty"`

	// ConcentrationRounds limits concentration in rounds, 0 for none
	ConcentrationRounds int `json:"concentration_rounds,omitempty" yaml:"concentration_rounds,omitempty"`

	Templates []EffectTemplate `json:"templates" yaml:"templates"`
}

// IsCantrip reports a level 0 spell.
func (s *Spell) IsCantrip() bool {
	return s.Level == 0
}
