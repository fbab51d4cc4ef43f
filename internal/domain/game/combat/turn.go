package combat

import (
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
)

// ActionType is the budget an action consumes
type ActionType string

const (
	ActionTypeAction      ActionType = "action"
	ActionTypeBonusAction ActionType = "bonus_action"
	ActionTypeReaction    ActionType = "reaction"
	// ActionTypeFree consumes no budget
	ActionTypeFree ActionType = "free"
)

// Valid reports whether the type names a budget
func (t ActionType) Valid() bool {
	switch t {
	case ActionTypeAction, ActionTypeBonusAction, ActionTypeReaction, ActionTypeFree:
		return true
	}
	return false
}

// Action is what a fighter does with a budget
type Action string

const (
	ActionAttack    Action = "attack"
	ActionCastSpell Action = "cast_spell"
	ActionDash      Action = "dash"
	ActionDisengage Action = "disengage"
	ActionDodge     Action = "dodge"
	ActionHelp      Action = "help"
	ActionHide      Action = "hide"
	ActionReady     Action = "ready"
	ActionSearch    Action = "search"
	ActionUseObject Action = "use_object"
	ActionDelay     Action = "delay"
)

var knownActions = map[Action]bool{
	ActionAttack: true, ActionCastSpell: true, ActionDash: true, ActionDisengage: true,
	ActionDodge: true, ActionHelp: true, ActionHide: true, ActionReady: true,
	ActionSearch: true, ActionUseObject: true, ActionDelay: true,
}

// ParseAction validates an action kind
func ParseAction(s string) (Action, error) {
	action := Action(s)
	if !knownActions[action] {
		return "", dnderr.InvalidArgumentf("unknown action kind %q", s)
	}
	return action, nil
}

// TurnAction records one use of a budget. ActorID differs from the turn's
// fighter for reactions taken on someone else's turn.
type TurnAction struct {
	ActorID    string     `json:"actor_id"`
	ActionType ActionType `json:"action_type"`
	Action     Action     `json:"action"`
	TargetID   string     `json:"target_id,omitempty"`
}

// Turn is one fighter's slice of a round. The reaction lives on the Fighter
// because it outlasts the turn.
type Turn struct {
	FighterID       string       `json:"fighter_id"`
	Round           int          `json:"round"`
	ActionUsed      bool         `json:"action_used"`
	BonusActionUsed bool         `json:"bonus_action_used"`
	MovementUsed    int          `json:"movement_used"`
	MovementTotal   int          `json:"movement_total"`
	Actions         []TurnAction `json:"actions,omitempty"`
	Completed       bool         `json:"completed"`
}

// NewTurn opens a turn with fresh budgets
func NewTurn(fighterID string, round, movement int) *Turn {
	return &Turn{
		FighterID:     fighterID,
		Round:         round,
		MovementTotal: movement,
	}
}

// CanTakeAction reports whether the action is unused
func (t *Turn) CanTakeAction() bool {
	return !t.ActionUsed && !t.Completed
}

// CanTakeBonusAction reports whether the bonus action is unused
func (t *Turn) CanTakeBonusAction() bool {
	return !t.BonusActionUsed && !t.Completed
}

// RemainingMovement in feet
func (t *Turn) RemainingMovement() int {
	return max(0, t.MovementTotal-t.MovementUsed)
}

// UseAction spends the action
func (t *Turn) UseAction(action Action, targetID string) (TurnAction, error) {
	if !t.CanTakeAction() {
		return TurnAction{}, dnderr.ActionAlreadyUsed(string(ActionTypeAction))
	}
	t.ActionUsed = true
	return t.record(t.FighterID, ActionTypeAction, action, targetID), nil
}

// UseBonusAction spends the bonus action
func (t *Turn) UseBonusAction(action Action, targetID string) (TurnAction, error) {
	if !t.CanTakeBonusAction() {
		return TurnAction{}, dnderr.ActionAlreadyUsed(string(ActionTypeBonusAction))
	}
	t.BonusActionUsed = true
	return t.record(t.FighterID, ActionTypeBonusAction, action, targetID), nil
}

// UseMovement spends up to feet of movement and returns the feet actually
// moved.
func (t *Turn) UseMovement(feet int) (int, error) {
	if feet <= 0 {
		return 0, dnderr.InvalidArgumentf("invalid movement: %d feet", feet)
	}
	actual := min(feet, t.RemainingMovement())
	t.MovementUsed += actual
	return actual, nil
}

func (t *Turn) record(actorID string, actionType ActionType, action Action, targetID string) TurnAction {
	entry := TurnAction{ActorID: actorID, ActionType: actionType, Action: action, TargetID: targetID}
	t.Actions = append(t.Actions, entry)
	return entry
}

func (t *Turn) clone() *Turn {
	if t == nil {
		return nil
	}
	out := *t
	out.Actions = append([]TurnAction(nil), t.Actions...)
	return &out
}
