package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/mathsprout/internal/models"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Insert(ctx context.Context, session models.GameSession) (int64, error) {
	args := m.Called(ctx, session)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) Get(ctx context.Context, id int64) (*models.GameSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameSession), args.Error(1)
}

func (m *MockSessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.GameSession, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GameSession), args.Error(1)
}

func (m *MockSessionRepository) Count(ctx context.Context, filter models.SessionFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockSessionRepository) BestScore(ctx context.Context, studentID, gameType string, level int) (*float64, error) {
	args := m.Called(ctx, studentID, gameType, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

func (m *MockSessionRepository) QuestionAttempts(ctx context.Context, sessionID int64) ([]models.QuestionAttempt, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuestionAttempt), args.Error(1)
}
