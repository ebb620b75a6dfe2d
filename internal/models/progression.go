package models

// LevelCriterion is the score a student must reach to complete a level.
type LevelCriterion struct {
	GameType      string  `json:"gameType" validate:"required,max=64"`
	Level         int     `json:"level" validate:"gte=1"`
	RequiredScore float64 `json:"requiredScore" validate:"gt=0"`
}

// LevelProgressView is a derived, never persisted, per-level summary.
type LevelProgressView struct {
	Level         int     `json:"level"`
	HighScore     float64 `json:"highScore"`
	Attempts      int     `json:"attempts"`
	Progress      float64 `json:"progress"`
	Locked        bool    `json:"locked"`
	RequiredScore float64 `json:"requiredScore"`
}

type LevelUnlockRequest struct {
	GameType string `json:"gameType" validate:"required"`
	Level    *int   `json:"level" validate:"required"`
}

type LevelUnlockResponse struct {
	Unlocked bool `json:"unlocked"`
}

type SetCriterionRequest struct {
	RequiredScore float64 `json:"requiredScore" validate:"gt=0"`
}
