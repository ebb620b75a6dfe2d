package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/mathsprout/internal/models"
)

// MockCriteriaRepository is a mock implementation of repository.CriteriaRepository
type MockCriteriaRepository struct {
	mock.Mock
}

func (m *MockCriteriaRepository) ForGameType(ctx context.Context, gameType string) ([]models.LevelCriterion, error) {
	args := m.Called(ctx, gameType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LevelCriterion), args.Error(1)
}

func (m *MockCriteriaRepository) Get(ctx context.Context, gameType string, level int) (*models.LevelCriterion, error) {
	args := m.Called(ctx, gameType, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LevelCriterion), args.Error(1)
}

func (m *MockCriteriaRepository) GameTypes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCriteriaRepository) Upsert(ctx context.Context, criterion models.LevelCriterion) error {
	args := m.Called(ctx, criterion)
	return args.Error(0)
}
