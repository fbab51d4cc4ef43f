package combatants_test

import (
	"context"
	"errors"
	"testing"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/combatants"
	"github.com/KirkDiggler/dnd-combat-engine/internal/testutils"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	newRepo func(t *testing.T) combatants.Repository
	repo    combatants.Repository
	ctx     context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo(s.T())
}

func (s *RepositoryTestSuite) TestSaveAndGet() {
	cleric := testutils.CreateTestCleric("cleric-1", "Tomas")
	cleric.AddCondition(shared.Condition{Type: shared.ConditionPoisoned, Source: "goblin-1"})
	s.Require().NoError(s.repo.Save(s.ctx, cleric))

	got, err := s.repo.Get(s.ctx, "cleric-1")
	s.Require().NoError(err)
	s.Equal("Tomas", got.Name)
	s.True(got.HasCondition(shared.ConditionPoisoned))
	s.Require().NotNil(got.Spellcasting)
	s.Equal(cleric.Spellcasting.Slots, got.Spellcasting.Slots)
}

func (s *RepositoryTestSuite) TestSaveReplaces() {
	fighter := testutils.CreateTestFighter("f-1", "Aria")
	s.Require().NoError(s.repo.Save(s.ctx, fighter))

	fighter.HitPoints.Current = 4
	s.Require().NoError(s.repo.Save(s.ctx, fighter))

	got, err := s.repo.Get(s.ctx, "f-1")
	s.Require().NoError(err)
	s.Equal(4, got.HitPoints.Current)
}

func (s *RepositoryTestSuite) TestSaveValidates() {
	s.True(dnderr.IsInvalidArgument(s.repo.Save(s.ctx, nil)))
	s.True(dnderr.IsInvalidArgument(s.repo.Save(s.ctx, &character.Combatant{Name: "nameless"})))
	s.True(dnderr.IsInvalidArgument(s.repo.Save(s.ctx, &character.Combatant{ID: "x"})))
}

func (s *RepositoryTestSuite) TestSaveAllIsAllOrNothing() {
	good := testutils.CreateTestGoblin("gob-1", "Goblin")
	bad := &character.Combatant{ID: "broken"}

	err := s.repo.SaveAll(s.ctx, []*character.Combatant{good, bad})
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, "gob-1")
	s.True(dnderr.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestGetManyKeepsOrder() {
	s.Require().NoError(s.repo.SaveAll(s.ctx, []*character.Combatant{
		testutils.CreateTestFighter("a", "A"),
		testutils.CreateTestWizard("b", "B"),
		testutils.CreateTestGoblin("c", "C"),
	}))

	got, err := s.repo.GetMany(s.ctx, []string{"c", "a", "b"})
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("c", got[0].ID)
	s.Equal("a", got[1].ID)
	s.Equal("b", got[2].ID)

	_, err = s.repo.GetMany(s.ctx, []string{"a", "missing"})
	s.True(dnderr.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestGetReturnsCopy() {
	s.Require().NoError(s.repo.Save(s.ctx, testutils.CreateTestFighter("f-1", "Aria")))

	got, err := s.repo.Get(s.ctx, "f-1")
	s.Require().NoError(err)
	got.HitPoints.Current = 0

	again, err := s.repo.Get(s.ctx, "f-1")
	s.Require().NoError(err)
	s.Equal(28, again.HitPoints.Current)
}

func (s *RepositoryTestSuite) TestDelete() {
	s.Require().NoError(s.repo.Save(s.ctx, testutils.CreateTestFighter("f-1", "Aria")))
	s.Require().NoError(s.repo.Delete(s.ctx, "f-1"))

	_, err := s.repo.Get(s.ctx, "f-1")
	s.True(dnderr.IsNotFound(err))
	s.True(dnderr.IsNotFound(s.repo.Delete(s.ctx, "f-1")))
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(*testing.T) combatants.Repository {
			return combatants.NewInMemoryRepository()
		},
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func(t *testing.T) combatants.Repository {
			client, _ := testutils.CreateTestRedisClient(t)
			return combatants.NewRedisRepository(&combatants.RedisRepoConfig{Client: client})
		},
	})
}

func TestRedisRepository_Unavailable(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := combatants.NewRedisRepository(&combatants.RedisRepoConfig{Client: client})

	mock.ExpectDel("combatant:f-1").SetErr(errors.New("i/o timeout"))

	err := repo.Delete(context.Background(), "f-1")
	require.Error(t, err)
	assert.Equal(t, dnderr.CodeUnavailable, dnderr.GetCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
