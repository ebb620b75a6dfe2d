package repository

import (
	"context"

	"github.com/vytor/mathsprout/internal/models"
)

// SessionRepository handles game session data access. Sessions are
// append-only.
type SessionRepository interface {
	Insert(ctx context.Context, session models.GameSession) (int64, error)
	Get(ctx context.Context, id int64) (*models.GameSession, error)
	List(ctx context.Context, filter models.SessionFilter) ([]models.GameSession, error)
	Count(ctx context.Context, filter models.SessionFilter) (int, error)
	BestScore(ctx context.Context, studentID, gameType string, level int) (*float64, error)
	QuestionAttempts(ctx context.Context, sessionID int64) ([]models.QuestionAttempt, error)
}
