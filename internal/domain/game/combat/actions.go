package combat

import (
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
)

// requireTurn checks that combat is active and it is the fighter's turn.
func (c *Combat) requireTurn(fighterID string) (*Fighter, error) {
	if c.State != StateActive || c.CurrentTurn == nil {
		return nil, dnderr.CombatNotActive(c.ID)
	}
	f, ok := c.Fighter(fighterID)
	if !ok {
		return nil, dnderr.NotFoundf("fighter %s not in combat", fighterID).WithMeta(dnderr.MetaFighterID, fighterID)
	}
	if c.CurrentTurn.FighterID != fighterID {
		return nil, dnderr.NotYourTurn(fighterID)
	}
	return f, nil
}

// CheckTurn reports whether the fighter may act now without spending
// anything.
func (c *Combat) CheckTurn(fighterID string) error {
	_, err := c.requireTurn(fighterID)
	return err
}

// TakeAction spends one budget. Reactions may be taken by any fighter on
// any turn, everything else only by the current fighter.
func (c *Combat) TakeAction(fighterID string, actionType ActionType, action Action, targetID string) (TurnAction, []events.Event, error) {
	if !actionType.Valid() {
		return TurnAction{}, nil, dnderr.InvalidArgumentf("unknown action type %q", actionType)
	}
	if _, err := ParseAction(string(action)); err != nil {
		return TurnAction{}, nil, err
	}
	if targetID != "" {
		if _, ok := c.Fighter(targetID); !ok {
			return TurnAction{}, nil, dnderr.NotFoundf("target %s not in combat", targetID)
		}
	}

	if actionType == ActionTypeReaction {
		return c.takeReaction(fighterID, action, targetID)
	}

	f, err := c.requireTurn(fighterID)
	if err != nil {
		return TurnAction{}, nil, err
	}

	var entry TurnAction
	switch actionType {
	case ActionTypeAction:
		entry, err = c.CurrentTurn.UseAction(action, targetID)
	case ActionTypeBonusAction:
		entry, err = c.CurrentTurn.UseBonusAction(action, targetID)
	default:
		entry = c.CurrentTurn.record(f.ID, ActionTypeFree, action, targetID)
	}
	if err != nil {
		return TurnAction{}, nil, dnderr.Wrap(err, "cannot "+string(action)).WithMeta(dnderr.MetaFighterID, f.ID)
	}

	return entry, []events.Event{c.actionEvent(f, entry)}, nil
}

func (c *Combat) takeReaction(fighterID string, action Action, targetID string) (TurnAction, []events.Event, error) {
	if c.State != StateActive || c.CurrentTurn == nil {
		return TurnAction{}, nil, dnderr.CombatNotActive(c.ID)
	}
	f, ok := c.Fighter(fighterID)
	if !ok {
		return TurnAction{}, nil, dnderr.NotFoundf("fighter %s not in combat", fighterID)
	}
	if f.ReactionUsed {
		return TurnAction{}, nil, dnderr.ActionAlreadyUsed(string(ActionTypeReaction)).WithMeta(dnderr.MetaFighterID, f.ID)
	}

	f.ReactionUsed = true
	entry := c.CurrentTurn.record(f.ID, ActionTypeReaction, action, targetID)
	return entry, []events.Event{c.actionEvent(f, entry)}, nil
}

func (c *Combat) actionEvent(f *Fighter, entry TurnAction) events.Event {
	payload := events.ActionTaken{Name: f.Name, Action: string(entry.Action), ActionType: string(entry.ActionType)}
	if target, ok := c.Fighter(entry.TargetID); ok {
		payload.TargetName = target.Name
	}
	return events.New(events.KindActionTaken, f.actor(), payload)
}

// Move spends movement from the current turn and returns the feet moved.
func (c *Combat) Move(fighterID string, feet int) (int, []events.Event, error) {
	f, err := c.requireTurn(fighterID)
	if err != nil {
		return 0, nil, err
	}
	moved, err := c.CurrentTurn.UseMovement(feet)
	if err != nil {
		return 0, nil, err
	}
	return moved, []events.Event{events.New(events.KindMoved, f.actor(), events.Moved{
		Name: f.Name, Feet: moved, Remaining: c.CurrentTurn.RemainingMovement(),
	})}, nil
}

// Dash spends the given budget and adds the fighter's speed to this turn's
// movement.
func (c *Combat) Dash(fighterID string, actionType ActionType) ([]events.Event, error) {
	if actionType != ActionTypeAction && actionType != ActionTypeBonusAction {
		return nil, dnderr.InvalidArgument("dash uses the action or bonus action")
	}
	_, evs, err := c.TakeAction(fighterID, actionType, ActionDash, "")
	if err != nil {
		return nil, err
	}
	f, _ := c.Fighter(fighterID)
	c.CurrentTurn.MovementTotal += f.Speed
	return evs, nil
}

// Ready spends the action to hold a response for later this round.
func (c *Combat) Ready(fighterID, targetID string) ([]events.Event, error) {
	_, evs, err := c.TakeAction(fighterID, ActionTypeAction, ActionReady, targetID)
	return evs, err
}

// Delay records that the fighter held their turn. It spends no budget.
func (c *Combat) Delay(fighterID string) ([]events.Event, error) {
	_, evs, err := c.TakeAction(fighterID, ActionTypeFree, ActionDelay, "")
	return evs, err
}
