package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathsprout/internal/errors"
	"github.com/vytor/mathsprout/internal/models"
	"github.com/vytor/mathsprout/internal/services"
	"github.com/vytor/mathsprout/internal/testutil/mocks"
)

func newProgressionService() (services.ProgressionService, *mocks.MockSessionRepository, *mocks.MockCriteriaRepository) {
	sessions := new(mocks.MockSessionRepository)
	criteria := new(mocks.MockCriteriaRepository)
	return services.NewProgressionService(sessions, criteria, 3), sessions, criteria
}

func score(v float64) *float64 { return &v }

func TestCheckLevelUnlock_LevelOneNeedsNoData(t *testing.T) {
	svc, sessions, criteria := newProgressionService()

	unlocked, err := svc.CheckLevelUnlock(context.Background(), "student-1", "addition", 1)
	require.NoError(t, err)
	assert.True(t, unlocked)

	sessions.AssertNotCalled(t, "BestScore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	criteria.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckLevelUnlock_NoAttemptSkipsCriterion(t *testing.T) {
	svc, sessions, criteria := newProgressionService()
	sessions.On("BestScore", mock.Anything, "student-1", "addition", 1).Return(nil, nil)

	unlocked, err := svc.CheckLevelUnlock(context.Background(), "student-1", "addition", 2)
	require.NoError(t, err)
	assert.False(t, unlocked)
	criteria.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckLevelUnlock_Threshold(t *testing.T) {
	tests := []struct {
		best float64
		want bool
	}{
		{best: 70, want: true},
		{best: 69.99, want: false},
	}

	for _, tt := range tests {
		svc, sessions, criteria := newProgressionService()
		sessions.On("BestScore", mock.Anything, "student-1", "addition", 2).Return(score(tt.best), nil)
		criteria.On("Get", mock.Anything, "addition", 2).Return(&models.LevelCriterion{GameType: "addition", Level: 2, RequiredScore: 100}, nil)

		unlocked, err := svc.CheckLevelUnlock(context.Background(), "student-1", "addition", 3)
		require.NoError(t, err)
		assert.Equal(t, tt.want, unlocked, "best=%v", tt.best)
	}
}

func TestCheckLevelUnlock_MissingCriterionIsNotFound(t *testing.T) {
	svc, sessions, criteria := newProgressionService()
	sessions.On("BestScore", mock.Anything, "student-1", "fractions", 1).Return(score(90), nil)
	criteria.On("Get", mock.Anything, "fractions", 1).Return(nil, nil)

	_, err := svc.CheckLevelUnlock(context.Background(), "student-1", "fractions", 2)

	appErr := appError(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

func TestCheckLevelUnlock_InvalidCriterion(t *testing.T) {
	svc, sessions, criteria := newProgressionService()
	sessions.On("BestScore", mock.Anything, "student-1", "addition", 1).Return(score(90), nil)
	criteria.On("Get", mock.Anything, "addition", 1).Return(&models.LevelCriterion{GameType: "addition", Level: 1, RequiredScore: 0}, nil)

	_, err := svc.CheckLevelUnlock(context.Background(), "student-1", "addition", 2)

	appErr := appError(t, err)
	assert.Equal(t, errors.ErrCodeInvalidCriterion, appErr.Code)
	assert.Equal(t, 422, appErr.Status)
}

func TestCheckLevelUnlock_RequiresGameType(t *testing.T) {
	svc, _, _ := newProgressionService()

	_, err := svc.CheckLevelUnlock(context.Background(), "student-1", " ", 2)

	assert.Equal(t, errors.ErrCodeValidation, appError(t, err).Code)
}

func TestGetLevelProgress(t *testing.T) {
	svc, sessions, criteria := newProgressionService()
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	played := []models.GameSession{
		{StudentID: "student-1", GameType: "addition", Level: 1, Score: 50, Timestamp: ts},
		{StudentID: "student-1", GameType: "addition", Level: 1, Score: 90, Timestamp: ts},
		{StudentID: "student-1", GameType: "addition", Level: 1, Score: 80, Timestamp: ts},
	}
	sessions.On("List", mock.Anything, models.SessionFilter{StudentID: "student-1", GameType: "addition"}).Return(played, nil)
	criteria.On("ForGameType", mock.Anything, "addition").Return([]models.LevelCriterion{
		{GameType: "addition", Level: 1, RequiredScore: 100},
		{GameType: "addition", Level: 2, RequiredScore: 100},
	}, nil)

	views, err := svc.GetLevelProgress(context.Background(), "student-1", "addition")
	require.NoError(t, err)

	require.Len(t, views, 2)
	assert.Equal(t, 90.0, views[0].HighScore)
	assert.Equal(t, 3, views[0].Attempts)
	assert.False(t, views[1].Locked)
}

func TestSetCriterion(t *testing.T) {
	svc, _, criteria := newProgressionService()
	c := models.LevelCriterion{GameType: "addition", Level: 2, RequiredScore: 60}
	criteria.On("Upsert", mock.Anything, c).Return(nil)

	require.NoError(t, svc.SetCriterion(context.Background(), c))
	criteria.AssertExpectations(t)
}

func TestSetCriterion_Rejects(t *testing.T) {
	tests := []struct {
		name string
		c    models.LevelCriterion
	}{
		{"zero required score", models.LevelCriterion{GameType: "addition", Level: 1, RequiredScore: 0}},
		{"negative required score", models.LevelCriterion{GameType: "addition", Level: 1, RequiredScore: -5}},
		{"level zero", models.LevelCriterion{GameType: "addition", Level: 0, RequiredScore: 10}},
		{"beyond max level", models.LevelCriterion{GameType: "addition", Level: 4, RequiredScore: 10}},
		{"no game type", models.LevelCriterion{Level: 1, RequiredScore: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, criteria := newProgressionService()

			err := svc.SetCriterion(context.Background(), tt.c)

			assert.Equal(t, errors.ErrCodeValidation, appError(t, err).Code)
			criteria.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}
