package repository

import (
	"context"

	"github.com/vytor/mathsprout/internal/models"
)

// CriteriaRepository handles level criterion reference data
type CriteriaRepository interface {
	ForGameType(ctx context.Context, gameType string) ([]models.LevelCriterion, error)
	Get(ctx context.Context, gameType string, level int) (*models.LevelCriterion, error)
	GameTypes(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, criterion models.LevelCriterion) error
}
