package character

// DeathSaves tracks saves while a character is at 0 HP. Stable and Dead are
// mutually exclusive.
type DeathSaves struct {
	Successes int  `json:"successes"`
	Failures  int  `json:"failures"`
	Stable    bool `json:"stable"`
	Dead      bool `json:"dead"`
}

// DeathSaveOutcome is the result of one death saving throw.
type DeathSaveOutcome struct {
	Natural    int  `json:"natural"`
	Success    bool `json:"success"`
	RegainedHP bool `json:"regained_hp"`
	Stabilized bool `json:"stabilized"`
	Died       bool `json:"died"`
}

// Roll records a natural d20 death save. 10 or higher succeeds, a natural 20
// wakes the character with 1 HP and a natural 1 counts as two failures.
func (d DeathSaves) Roll(natural int) (DeathSaves, DeathSaveOutcome) {
	out := DeathSaveOutcome{Natural: natural}
	if d.Dead || d.Stable {
		return d, out
	}

	switch {
	case natural == 20:
		out.Success = true
		out.RegainedHP = true
		return DeathSaves{}, out
	case natural == 1:
		d = d.addFailures(2)
	case natural >= 10:
		out.Success = true
		d.Successes++
		if d.Successes >= 3 {
			d = DeathSaves{Stable: true}
			out.Stabilized = true
		}
	default:
		d = d.addFailures(1)
	}
	out.Died = d.Dead
	return d, out
}

// DamagedWhileDown adds one failure, two on a critical hit. Damage also ends
// stability.
func (d DeathSaves) DamagedWhileDown(critical bool) DeathSaves {
	if d.Dead {
		return d
	}
	d.Stable = false
	if critical {
		return d.addFailures(2)
	}
	return d.addFailures(1)
}

// Kill marks the character dead.
func (d DeathSaves) Kill() DeathSaves {
	return DeathSaves{Failures: 3, Dead: true, Successes: d.Successes}
}

func (d DeathSaves) addFailures(n int) DeathSaves {
	d.Failures = min(3, d.Failures+n)
	if d.Failures >= 3 {
		d.Dead = true
		d.Stable = false
	}
	return d
}

// RollDeathSave applies a natural d20 to a downed character. A natural 20
// brings them back with 1 HP.
func (c *Combatant) RollDeathSave(natural int) DeathSaveOutcome {
	if c.Kind == KindMonster || c.HitPoints.Current > 0 {
		return DeathSaveOutcome{Natural: natural}
	}
	var out DeathSaveOutcome
	c.DeathSaves, out = c.DeathSaves.Roll(natural)
	if out.RegainedHP {
		c.HitPoints.Current = 1
	}
	return out
}
