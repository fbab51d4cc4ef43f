// Package combat is the encounter state machine: initiative, turn and round
// sequencing, and per-turn budgets. Methods mutate the Combat and return the
// events they caused; callers serialize access and persist the result.
package combat

import (
	"log"
	"slices"
	"sort"
	"time"

	"github.com/KirkDiggler/dnd-combat-engine/internal/dice"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-engine/internal/effects"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
)

// State is the encounter lifecycle. It only moves forward.
type State string

const (
	StatePreparing         State = "preparing"
	StateRollingInitiative State = "rolling_initiative"
	StateActive            State = "active"
	StateEnded             State = "ended"
)

// maxHistory bounds the closed turns kept on the combat
const maxHistory = 20

// Fighter is a combatant's role in one combat. Its ID is the combatant ID.
type Fighter struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Initiative         *int   `json:"initiative,omitempty"`
	InitiativeModifier int    `json:"initiative_modifier"`
	Speed              int    `json:"speed"`
	Surprised          bool   `json:"surprised,omitempty"`
	RegistrationIndex  int    `json:"registration_index"`

	// ReactionUsed resets when the fighter's own turn starts
	ReactionUsed bool `json:"reaction_used,omitempty"`

	// Mastery riders, spent by the fighter's next attack roll
	VexTargetID string `json:"vex_target_id,omitempty"`
	Sapped      bool   `json:"sapped,omitempty"`
}

// NewFighter creates a fighter from a combatant
func NewFighter(c *character.Combatant, surprised bool) *Fighter {
	return &Fighter{
		ID:                 c.ID,
		Name:               c.Name,
		InitiativeModifier: c.Modifier(shared.AttributeDexterity),
		Speed:              c.MovementSpeed(),
		Surprised:          surprised,
	}
}

// HasRolled reports whether initiative is in
func (f *Fighter) HasRolled() bool {
	return f.Initiative != nil
}

func (f *Fighter) actor() events.Actor {
	return events.Actor{ID: f.ID, Name: f.Name}
}

// Combat is one encounter
type Combat struct {
	ID        string     `json:"id"`
	GameID    string     `json:"game_id"`
	State     State      `json:"state"`
	Round     int        `json:"round"`
	TurnIndex int        `json:"turn_index"`
	Fighters  []*Fighter `json:"fighters"`

	// Order holds fighter IDs by initiative once fixed
	Order       []string `json:"order,omitempty"`
	CurrentTurn *Turn    `json:"current_turn,omitempty"`
	History     []Turn   `json:"history,omitempty"`

	Effects effects.Manager `json:"effects"`

	// Version is bumped by the repository on every save
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"created_at"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// NewCombat creates a combat in the preparing state
func NewCombat(id, gameID string) *Combat {
	return &Combat{
		ID:        id,
		GameID:    gameID,
		State:     StatePreparing,
		CreatedAt: time.Now().UTC(),
	}
}

// Fighter looks up a fighter by ID
func (c *Combat) Fighter(id string) (*Fighter, bool) {
	for _, f := range c.Fighters {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// IsActive reports the active state
func (c *Combat) IsActive() bool {
	return c.State == StateActive
}

// AddFighter registers a fighter while the combat is being set up.
func (c *Combat) AddFighter(f *Fighter) error {
	if c.State != StatePreparing && c.State != StateRollingInitiative {
		return dnderr.IllegalStatef("cannot add fighters to a combat that is %s", c.State).
			WithMeta(dnderr.MetaCombatID, c.ID)
	}
	if f == nil || f.ID == "" {
		return dnderr.InvalidArgument("fighter ID is required")
	}
	if _, exists := c.Fighter(f.ID); exists {
		return dnderr.AlreadyExistsf("fighter %s already in combat", f.ID)
	}
	f.RegistrationIndex = len(c.Fighters)
	f.Initiative = nil
	c.Fighters = append(c.Fighters, f)
	return nil
}

// BeginInitiative asks every fighter for an initiative roll.
func (c *Combat) BeginInitiative() error {
	if c.State != StatePreparing {
		return dnderr.IllegalStatef("cannot roll initiative for a combat that is %s", c.State).
			WithMeta(dnderr.MetaCombatID, c.ID)
	}
	if len(c.Fighters) == 0 {
		return dnderr.IllegalState("combat has no fighters")
	}
	c.State = StateRollingInitiative
	return nil
}

// PendingInitiative returns the fighter if it still owes an initiative roll.
// The second value is false when there is no such pending request.
func (c *Combat) PendingInitiative(fighterID string) (*Fighter, bool) {
	if c.State != StateRollingInitiative {
		return nil, false
	}
	f, ok := c.Fighter(fighterID)
	if !ok || f.HasRolled() {
		return nil, false
	}
	return f, true
}

// InitiativeResult is one rolled initiative
type InitiativeResult struct {
	FighterID string `json:"fighter_id"`
	Roll      int    `json:"roll"`
	Modifier  int    `json:"modifier"`
	Total     int    `json:"total"`

	// Started is true when this was the last roll and combat began
	Started bool `json:"started"`
}

// RollInitiative rolls d20 + Dexterity modifier for a pending fighter. It
// returns (nil, nil, nil) when the fighter has no pending request. The last
// roll fixes the order and starts combat.
func (c *Combat) RollInitiative(roller dice.Roller, fighterID string) (*InitiativeResult, []events.Event, error) {
	f, pending := c.PendingInitiative(fighterID)
	if !pending {
		return nil, nil, nil
	}

	roll, err := roller.Roll(1, 20, f.InitiativeModifier)
	if err != nil {
		return nil, nil, dnderr.Wrap(err, "failed to roll initiative")
	}

	total := roll.Total
	f.Initiative = &total
	result := &InitiativeResult{FighterID: f.ID, Roll: roll.Kept(), Modifier: f.InitiativeModifier, Total: total}

	evs := []events.Event{events.New(events.KindInitiativeRolled, f.actor(), events.InitiativeRolled{
		FighterID: f.ID, Name: f.Name, Roll: result.Roll, Modifier: result.Modifier, Total: total,
	})}

	if c.AllInitiativeRolled() {
		startEvents, err := c.Start()
		if err != nil {
			return nil, nil, err
		}
		result.Started = true
		evs = append(evs, startEvents...)
	}
	return result, evs, nil
}

// AllInitiativeRolled reports whether no fighter owes a roll
func (c *Combat) AllInitiativeRolled() bool {
	for _, f := range c.Fighters {
		if !f.HasRolled() {
			return false
		}
	}
	return len(c.Fighters) > 0
}

// InitiativeOrder sorts fighters by initiative, highest first, keeping
// registration order on ties.
func (c *Combat) InitiativeOrder() []*Fighter {
	ordered := slices.Clone(c.Fighters)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := initiativeOf(ordered[i]), initiativeOf(ordered[j])
		if a != b {
			return a > b
		}
		return ordered[i].RegistrationIndex < ordered[j].RegistrationIndex
	})
	return ordered
}

func initiativeOf(f *Fighter) int {
	if f.Initiative == nil {
		return -1 << 31
	}
	return *f.Initiative
}

// Start fixes the initiative order and opens round 1.
func (c *Combat) Start() ([]events.Event, error) {
	if c.State != StateRollingInitiative {
		return nil, dnderr.IllegalStatef("cannot start a combat that is %s", c.State).
			WithMeta(dnderr.MetaCombatID, c.ID)
	}
	if !c.AllInitiativeRolled() {
		return nil, dnderr.IllegalState("not every fighter has rolled initiative").
			WithMeta(dnderr.MetaCombatID, c.ID)
	}

	ordered := c.InitiativeOrder()
	c.Order = make([]string, len(ordered))
	names := make([]string, len(ordered))
	for i, f := range ordered {
		c.Order[i] = f.ID
		names[i] = f.Name
	}

	now := time.Now().UTC()
	c.State = StateActive
	c.StartedAt = &now
	c.Round = 1
	c.TurnIndex = 0

	log.Printf("Combat: %s started with order %v", c.ID, names)

	evs := []events.Event{
		events.New(events.KindInitiativeOrder, events.Actor{}, events.InitiativeOrder{Names: names}),
		events.New(events.KindCombatStarted, events.Actor{}, events.CombatStarted{Order: names}),
	}
	return append(evs, c.openTurn()), nil
}

// CurrentFighter returns the fighter whose turn it is
func (c *Combat) CurrentFighter() (*Fighter, bool) {
	if c.State != StateActive || c.TurnIndex < 0 || c.TurnIndex >= len(c.Order) {
		return nil, false
	}
	return c.Fighter(c.Order[c.TurnIndex])
}

func (c *Combat) openTurn() events.Event {
	f, _ := c.CurrentFighter()
	f.ReactionUsed = false
	c.CurrentTurn = NewTurn(f.ID, c.Round, f.Speed)
	return events.New(events.KindTurnStarted, f.actor(), events.TurnStarted{Round: c.Round, FighterID: f.ID, Name: f.Name})
}

func (c *Combat) closeTurn() (events.Event, bool) {
	if c.CurrentTurn == nil || c.CurrentTurn.Completed {
		return events.Event{}, false
	}
	c.CurrentTurn.Completed = true
	c.History = append(c.History, *c.CurrentTurn.clone())
	if len(c.History) > maxHistory {
		c.History = c.History[len(c.History)-maxHistory:]
	}

	f, _ := c.Fighter(c.CurrentTurn.FighterID)
	if f == nil {
		return events.Event{}, false
	}
	return events.New(events.KindTurnEnded, f.actor(), events.TurnEnded{Round: c.CurrentTurn.Round, FighterID: f.ID, Name: f.Name}), true
}

// Advance is the outcome of AdvanceTurn. Closing events end the old turn
// (and round), Opening starts the new one; round processing happens between.
type Advance struct {
	Closing  []events.Event `json:"closing"`
	Opening  []events.Event `json:"opening"`
	NewRound bool           `json:"new_round"`

	// Expired holds effects and summons whose rounds ran out at the wrap
	Expired effects.Expired `json:"expired"`
}

// Events returns closing then opening events
func (a *Advance) Events() []events.Event {
	return append(slices.Clone(a.Closing), a.Opening...)
}

// AdvanceTurn closes the current turn and opens the next. Past the last
// fighter it wraps to the first, increments the round and ticks lasting
// spell effects.
func (c *Combat) AdvanceTurn() (*Advance, error) {
	if c.State != StateActive {
		return nil, dnderr.CombatNotActive(c.ID)
	}

	advance := &Advance{}
	if ended, ok := c.closeTurn(); ok {
		advance.Closing = append(advance.Closing, ended)
	}

	c.TurnIndex++
	if c.TurnIndex >= len(c.Order) {
		advance.Closing = append(advance.Closing,
			events.New(events.KindRoundEnded, events.Actor{}, events.RoundEnded{Round: c.Round}))
		c.TurnIndex = 0
		c.Round++
		advance.NewRound = true
		advance.Expired = c.Effects.ProcessRoundEnd()
	}

	advance.Opening = append(advance.Opening, c.openTurn())
	return advance, nil
}

// End finishes the combat. Ending an ended combat does nothing.
func (c *Combat) End() []events.Event {
	if c.State == StateEnded {
		return nil
	}

	var evs []events.Event
	if c.State == StateActive {
		if ended, ok := c.closeTurn(); ok {
			evs = append(evs, ended)
		}
	}

	now := time.Now().UTC()
	c.State = StateEnded
	c.EndedAt = &now
	c.CurrentTurn = nil

	log.Printf("Combat: %s ended in round %d", c.ID, c.Round)
	return append(evs, events.New(events.KindCombatEnded, events.Actor{}, events.CombatEnded{Round: c.Round}))
}

// TurnOrderEntry is one row of the turn order display
type TurnOrderEntry struct {
	FighterID   string `json:"fighter_id"`
	Name        string `json:"name"`
	Initiative  *int   `json:"initiative,omitempty"`
	IsCurrent   bool   `json:"is_current"`
	IsSurprised bool   `json:"is_surprised"`
}

// TurnOrder lists fighters by initiative with current and surprised flags
func (c *Combat) TurnOrder() []TurnOrderEntry {
	current, _ := c.CurrentFighter()
	ordered := c.InitiativeOrder()
	entries := make([]TurnOrderEntry, len(ordered))
	for i, f := range ordered {
		entries[i] = TurnOrderEntry{
			FighterID:   f.ID,
			Name:        f.Name,
			Initiative:  f.Initiative,
			IsCurrent:   current != nil && current.ID == f.ID,
			IsSurprised: f.Surprised,
		}
	}
	return entries
}

// Clone deep copies the combat so a rejected action can be discarded
func (c *Combat) Clone() *Combat {
	if c == nil {
		return nil
	}
	out := *c
	out.Fighters = make([]*Fighter, len(c.Fighters))
	for i, f := range c.Fighters {
		fighter := *f
		if f.Initiative != nil {
			initiative := *f.Initiative
			fighter.Initiative = &initiative
		}
		out.Fighters[i] = &fighter
	}
	out.Order = slices.Clone(c.Order)
	out.CurrentTurn = c.CurrentTurn.clone()
	out.History = make([]Turn, len(c.History))
	for i := range c.History {
		out.History[i] = *c.History[i].clone()
	}
	out.Effects = c.Effects.Clone()
	if c.StartedAt != nil {
		started := *c.StartedAt
		out.StartedAt = &started
	}
	if c.EndedAt != nil {
		ended := *c.EndedAt
		out.EndedAt = &ended
	}
	return &out
}
