package encounters_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/game/combat"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/encounters"
	"github.com/KirkDiggler/dnd-combat-engine/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// RepositoryTestSuite runs the same contract against every implementation
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func(t *testing.T) encounters.Repository
	repo    encounters.Repository
	ctx     context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo(s.T())
}

func newEncounter(id, gameID string) *encounters.Encounter {
	fighter := testutils.CreateTestFighter("aria", "Aria")
	goblin := testutils.CreateTestGoblin("gob", "Goblin")

	c := combat.NewCombat(id, gameID)
	_ = c.AddFighter(combat.NewFighter(fighter, false))
	_ = c.AddFighter(combat.NewFighter(goblin, false))

	return &encounters.Encounter{
		Combat: c,
		Combatants: map[string]*character.Combatant{
			fighter.ID: fighter,
			goblin.ID:  goblin,
		},
	}
}

func (s *RepositoryTestSuite) TestCreateAndGet() {
	enc := newEncounter("combat-1", "game-1")
	s.Require().NoError(s.repo.Create(s.ctx, enc))
	s.Equal(int64(1), enc.Combat.Version)

	got, err := s.repo.Get(s.ctx, "combat-1")
	s.Require().NoError(err)
	s.Equal("game-1", got.Combat.GameID)
	s.Len(got.Combat.Fighters, 2)
	s.Equal(28, got.Combatants["aria"].HitPoints.Current)
	s.Equal(int64(1), got.Combat.Version)
}

func (s *RepositoryTestSuite) TestCreateDuplicate() {
	s.Require().NoError(s.repo.Create(s.ctx, newEncounter("combat-1", "game-1")))

	err := s.repo.Create(s.ctx, newEncounter("combat-1", "game-1"))
	s.True(dnderr.IsAlreadyExists(err))
}

func (s *RepositoryTestSuite) TestCreateValidates() {
	s.True(dnderr.IsInvalidArgument(s.repo.Create(s.ctx, nil)))
	s.True(dnderr.IsInvalidArgument(s.repo.Create(s.ctx, &encounters.Encounter{Combat: combat.NewCombat("", "game-1")})))
}

func (s *RepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, "nope")
	s.True(dnderr.IsNotFound(err))
	s.Equal("nope", dnderr.GetMeta(err)[dnderr.MetaCombatID])
}

func (s *RepositoryTestSuite) TestGetReturnsCopy() {
	s.Require().NoError(s.repo.Create(s.ctx, newEncounter("combat-1", "game-1")))

	got, err := s.repo.Get(s.ctx, "combat-1")
	s.Require().NoError(err)
	got.Combatants["aria"].HitPoints.Current = 1
	got.Combat.Round = 9

	again, err := s.repo.Get(s.ctx, "combat-1")
	s.Require().NoError(err)
	s.Equal(28, again.Combatants["aria"].HitPoints.Current)
	s.Equal(0, again.Combat.Round)
}

func (s *RepositoryTestSuite) TestUpdateBumpsVersion() {
	s.Require().NoError(s.repo.Create(s.ctx, newEncounter("combat-1", "game-1")))

	got, err := s.repo.Get(s.ctx, "combat-1")
	s.Require().NoError(err)
	got.Combatants["gob"].HitPoints.Current = 2

	s.Require().NoError(s.repo.Update(s.ctx, got))
	s.Equal(int64(2), got.Combat.Version)

	stored, err := s.repo.Get(s.ctx, "combat-1")
	s.Require().NoError(err)
	s.Equal(2, stored.Combatants["gob"].HitPoints.Current)
	s.Equal(int64(2), stored.Combat.Version)
}

func (s *RepositoryTestSuite) TestUpdateStaleVersionAborts() {
	s.Require().NoError(s.repo.Create(s.ctx, newEncounter("combat-1", "game-1")))

	first, err := s.repo.Get(s.ctx, "combat-1")
	s.Require().NoError(err)
	second, err := s.repo.Get(s.ctx, "combat-1")
	s.Require().NoError(err)

	first.Combatants["gob"].HitPoints.Current = 0
	s.Require().NoError(s.repo.Update(s.ctx, first))

	second.Combatants["gob"].HitPoints.Current = 5
	err = s.repo.Update(s.ctx, second)
	s.True(dnderr.IsAborted(err))
	s.False(dnderr.IsRejection(err))

	stored, err := s.repo.Get(s.ctx, "combat-1")
	s.Require().NoError(err)
	s.Equal(0, stored.Combatants["gob"].HitPoints.Current)
}

func (s *RepositoryTestSuite) TestUpdateMissing() {
	err := s.repo.Update(s.ctx, newEncounter("ghost", "game-1"))
	s.True(dnderr.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestDelete() {
	s.Require().NoError(s.repo.Create(s.ctx, newEncounter("combat-1", "game-1")))
	s.Require().NoError(s.repo.Delete(s.ctx, "combat-1"))

	_, err := s.repo.Get(s.ctx, "combat-1")
	s.True(dnderr.IsNotFound(err))

	all, err := s.repo.GetByGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Empty(all)

	s.True(dnderr.IsNotFound(s.repo.Delete(s.ctx, "combat-1")))
}

func (s *RepositoryTestSuite) TestGetActiveByGame() {
	active, err := s.repo.GetActiveByGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Nil(active)

	ended := newEncounter("combat-old", "game-1")
	ended.Combat.State = combat.StateEnded
	s.Require().NoError(s.repo.Create(s.ctx, ended))

	active, err = s.repo.GetActiveByGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Nil(active)

	s.Require().NoError(s.repo.Create(s.ctx, newEncounter("combat-new", "game-1")))
	s.Require().NoError(s.repo.Create(s.ctx, newEncounter("combat-other", "game-2")))

	active, err = s.repo.GetActiveByGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Require().NotNil(active)
	s.Equal("combat-new", active.ID())

	all, err := s.repo.GetByGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *RepositoryTestSuite) TestCreateRejectsSecondUnfinishedInGame() {
	s.Require().NoError(s.repo.Create(s.ctx, newEncounter("combat-1", "game-1")))

	err := s.repo.Create(s.ctx, newEncounter("combat-2", "game-1"))
	s.True(dnderr.IsAlreadyExists(err))
	s.Equal("combat-1", dnderr.GetMeta(err)[dnderr.MetaCombatID])

	s.NoError(s.repo.Create(s.ctx, newEncounter("combat-3", "game-2")))
}

func (s *RepositoryTestSuite) TestConcurrentCreatesKeepOneUnfinished() {
	const callers = 10
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.repo.Create(s.ctx, newEncounter(fmt.Sprintf("combat-%d", i), "game-1"))
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		s.True(dnderr.IsAlreadyExists(err) || dnderr.IsAborted(err), "unexpected error %v", err)
	}
	s.Equal(1, created)

	all, err := s.repo.GetByGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Len(all, 1)
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(*testing.T) encounters.Repository {
			return encounters.NewInMemoryRepository()
		},
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(t *testing.T) encounters.Repository {
			client, _ := testutils.CreateTestRedisClient(t)
			return encounters.NewRedis(client)
		},
	})
}

func TestEncounterClone(t *testing.T) {
	enc := newEncounter("combat-1", "game-1")
	clone := enc.Clone()

	clone.Combatants["aria"].HitPoints.Current = 3
	clone.Combat.Fighters[0].Speed = 5

	assert.Equal(t, 28, enc.Combatants["aria"].HitPoints.Current)
	assert.Equal(t, 30, enc.Combat.Fighters[0].Speed)
	assert.Nil(t, (*encounters.Encounter)(nil).Clone())
}
