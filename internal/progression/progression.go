// Package progression decides how far a student has come through the levels
// of a game type and whether the next level is open to them.
//
// A level moves from locked to unlocked once the student's best score on the
// previous level reaches AdvancementThreshold percent of that level's
// required score. Best scores only ever grow, so a level never locks again.
package progression

import (
	"fmt"

	"github.com/vytor/mathsprout/internal/aggregate"
	"github.com/vytor/mathsprout/internal/models"
)

// AdvancementThreshold is the percentage of a level's required score a
// student must reach to unlock the following level.
const AdvancementThreshold = 70.0

// InvalidCriterionError is returned when a criterion cannot be used to
// measure progress, e.g. a non-positive required score.
type InvalidCriterionError struct {
	GameType      string
	Level         int
	RequiredScore float64
}

func (e *InvalidCriterionError) Error() string {
	return fmt.Sprintf("invalid level criterion for %s level %d: required score %v must be positive", e.GameType, e.Level, e.RequiredScore)
}

// MissingCriterionError is returned when an unlock decision needs a
// criterion that the reference data does not contain.
type MissingCriterionError struct {
	GameType string
	Level    int
}

func (e *MissingCriterionError) Error() string {
	return fmt.Sprintf("level criterion not found for %s level %d", e.GameType, e.Level)
}

type levelBest struct {
	highScore float64
	attempts  int
}

// ComputeLevelProgress builds one view per level in 1..maxLevel that has a
// criterion. Sessions and criteria for other game types are ignored.
func ComputeLevelProgress(gameType string, sessions []models.GameSession, criteria []models.LevelCriterion, maxLevel int) ([]models.LevelProgressView, error) {
	if err := aggregate.Validate(sessions); err != nil {
		return nil, err
	}

	best := make(map[int]*levelBest)
	for _, s := range sessions {
		if s.GameType != gameType {
			continue
		}
		b, ok := best[s.Level]
		if !ok {
			b = &levelBest{highScore: s.Score}
			best[s.Level] = b
		}
		if s.Score > b.highScore {
			b.highScore = s.Score
		}
		b.attempts++
	}

	byLevel := make(map[int]models.LevelCriterion)
	for _, c := range criteria {
		if c.GameType == gameType {
			byLevel[c.Level] = c
		}
	}

	views := make([]models.LevelProgressView, 0, maxLevel)
	// best score and criterion of the previous level; prev is nil when it had no criterion
	var prev *models.LevelCriterion
	var prevHigh float64
	for level := 1; level <= maxLevel; level++ {
		c, ok := byLevel[level]
		if !ok {
			prev = nil
			continue
		}
		if c.RequiredScore <= 0 {
			return nil, &InvalidCriterionError{GameType: gameType, Level: level, RequiredScore: c.RequiredScore}
		}

		view := models.LevelProgressView{
			Level:         level,
			RequiredScore: c.RequiredScore,
		}
		if b, ok := best[level]; ok {
			view.HighScore = b.highScore
			view.Attempts = b.attempts
			view.Progress = progressPercent(b.highScore, c.RequiredScore)
		}
		view.Locked = level > 1 && (prev == nil || !meetsThreshold(prevHigh, prev.RequiredScore))

		views = append(views, view)
		prev = &c
		prevHigh = view.HighScore
	}
	return views, nil
}

// CheckUnlock reports whether level is open given the best score recorded at
// level-1 (nil when never attempted) and the criterion for level-1.
func CheckUnlock(gameType string, level int, bestPrev *float64, criterionPrev *models.LevelCriterion) (bool, error) {
	if level <= 1 {
		return true, nil
	}
	if bestPrev == nil {
		return false, nil
	}
	if criterionPrev == nil {
		return false, &MissingCriterionError{GameType: gameType, Level: level - 1}
	}
	if criterionPrev.RequiredScore <= 0 {
		return false, &InvalidCriterionError{GameType: gameType, Level: level - 1, RequiredScore: criterionPrev.RequiredScore}
	}
	return meetsThreshold(*bestPrev, criterionPrev.RequiredScore), nil
}

func progressPercent(highScore, requiredScore float64) float64 {
	p := 100 * highScore / requiredScore
	if p > 100 {
		return 100
	}
	return p
}

// meetsThreshold is the only place the advancement threshold is compared, so
// the lock state in progress views and CheckUnlock always agree. Progress is
// for display only; the comparison scales the required score instead.
func meetsThreshold(highScore, requiredScore float64) bool {
	return highScore >= AdvancementThreshold/100*requiredScore
}
