package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/mathsprout/internal/logger"
	"github.com/vytor/mathsprout/internal/models"
	"github.com/vytor/mathsprout/internal/repository"
)

type criteriaRepository struct {
	db *sql.DB
}

// NewCriteriaRepository creates a new CriteriaRepository implementation
func NewCriteriaRepository(db *sql.DB) repository.CriteriaRepository {
	return &criteriaRepository{db: db}
}

func (r *criteriaRepository) ForGameType(ctx context.Context, gameType string) ([]models.LevelCriterion, error) {
	log := logger.FromContext(ctx).WithPrefix("criteria_repo")
	log.Debug("listing criteria: game_type=%s", gameType)

	rows, err := r.db.QueryContext(ctx, `
SELECT game_type, level, required_score
FROM level_criteria
WHERE game_type = ?
ORDER BY level ASC
`, gameType)
	if err != nil {
		log.Error("failed to query criteria: %v", err)
		return nil, err
	}
	defer rows.Close()

	criteria := []models.LevelCriterion{}
	for rows.Next() {
		var c models.LevelCriterion
		if err := rows.Scan(&c.GameType, &c.Level, &c.RequiredScore); err != nil {
			log.Error("failed to scan criterion row: %v", err)
			return nil, err
		}
		criteria = append(criteria, c)
	}
	log.Debug("found %d criteria", len(criteria))
	return criteria, rows.Err()
}

func (r *criteriaRepository) Get(ctx context.Context, gameType string, level int) (*models.LevelCriterion, error) {
	log := logger.FromContext(ctx).WithPrefix("criteria_repo")
	log.Debug("getting criterion: game_type=%s, level=%d", gameType, level)

	var c models.LevelCriterion
	err := r.db.QueryRowContext(ctx, `
SELECT game_type, level, required_score
FROM level_criteria
WHERE game_type = ? AND level = ?
`, gameType, level).Scan(&c.GameType, &c.Level, &c.RequiredScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("criterion not found: game_type=%s, level=%d", gameType, level)
			return nil, nil
		}
		log.Error("failed to get criterion: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *criteriaRepository) GameTypes(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("criteria_repo")
	log.Debug("listing game types")

	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT game_type FROM level_criteria ORDER BY game_type ASC`)
	if err != nil {
		log.Error("failed to query game types: %v", err)
		return nil, err
	}
	defer rows.Close()

	gameTypes := []string{}
	for rows.Next() {
		var gt string
		if err := rows.Scan(&gt); err != nil {
			log.Error("failed to scan game type row: %v", err)
			return nil, err
		}
		gameTypes = append(gameTypes, gt)
	}
	return gameTypes, rows.Err()
}

func (r *criteriaRepository) Upsert(ctx context.Context, c models.LevelCriterion) error {
	log := logger.FromContext(ctx).WithPrefix("criteria_repo")
	log.Debug("upserting criterion: game_type=%s, level=%d, required_score=%v", c.GameType, c.Level, c.RequiredScore)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO level_criteria (game_type, level, required_score)
VALUES (?, ?, ?)
ON CONFLICT(game_type, level) DO UPDATE SET
    required_score = excluded.required_score,
    updated_at = CURRENT_TIMESTAMP
`, c.GameType, c.Level, c.RequiredScore)
	if err != nil {
		log.Error("failed to upsert criterion: %v", err)
		return err
	}
	return nil
}
