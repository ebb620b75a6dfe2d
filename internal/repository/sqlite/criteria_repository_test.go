package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/mathsprout/internal/models"
	"github.com/vytor/mathsprout/internal/repository"
	"github.com/vytor/mathsprout/internal/repository/sqlite"
	"github.com/vytor/mathsprout/internal/testutil"
)

type CriteriaRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.CriteriaRepository
}

func (s *CriteriaRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewCriteriaRepository(s.db)
}

func (s *CriteriaRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CriteriaRepositorySuite) TestSeededDefaults() {
	criteria, err := s.repo.ForGameType(context.Background(), "addition")
	s.Require().NoError(err)
	s.Require().Len(criteria, 3)
	for i, c := range criteria {
		s.Assert().Equal(i+1, c.Level)
		s.Assert().Greater(c.RequiredScore, 0.0)
	}
}

func (s *CriteriaRepositorySuite) TestGameTypes() {
	gameTypes, err := s.repo.GameTypes(context.Background())
	s.Require().NoError(err)
	s.Assert().Equal([]string{"addition", "matching", "subtraction"}, gameTypes)
}

func (s *CriteriaRepositorySuite) TestGet() {
	ctx := context.Background()

	c, err := s.repo.Get(ctx, "matching", 2)
	s.Require().NoError(err)
	s.Require().NotNil(c)
	s.Assert().Equal("matching", c.GameType)

	missing, err := s.repo.Get(ctx, "matching", 9)
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func (s *CriteriaRepositorySuite) TestUpsert() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Upsert(ctx, models.LevelCriterion{GameType: "fractions", Level: 1, RequiredScore: 30}))
	s.Require().NoError(s.repo.Upsert(ctx, models.LevelCriterion{GameType: "fractions", Level: 1, RequiredScore: 45}))

	c, err := s.repo.Get(ctx, "fractions", 1)
	s.Require().NoError(err)
	s.Require().NotNil(c)
	s.Assert().Equal(45.0, c.RequiredScore)

	criteria, err := s.repo.ForGameType(ctx, "fractions")
	s.Require().NoError(err)
	s.Assert().Len(criteria, 1)
}

func (s *CriteriaRepositorySuite) TestForGameType_Unknown() {
	criteria, err := s.repo.ForGameType(context.Background(), "geometry")
	s.Require().NoError(err)
	s.Assert().Empty(criteria)
}

func TestCriteriaRepositorySuite(t *testing.T) {
	suite.Run(t, new(CriteriaRepositorySuite))
}
