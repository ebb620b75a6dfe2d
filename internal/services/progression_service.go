package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vytor/mathsprout/internal/errors"
	"github.com/vytor/mathsprout/internal/logger"
	"github.com/vytor/mathsprout/internal/models"
	"github.com/vytor/mathsprout/internal/progression"
	"github.com/vytor/mathsprout/internal/repository"
	"github.com/vytor/mathsprout/internal/validation"
)

// ProgressionService handles level progress, unlock checks and the level
// criteria reference data
type ProgressionService interface {
	GetLevelProgress(ctx context.Context, studentID, gameType string) ([]models.LevelProgressView, error)
	CheckLevelUnlock(ctx context.Context, studentID, gameType string, level int) (bool, error)
	ListCriteria(ctx context.Context, gameType string) ([]models.LevelCriterion, error)
	SetCriterion(ctx context.Context, criterion models.LevelCriterion) error
}

type progressionService struct {
	sessionRepo  repository.SessionRepository
	criteriaRepo repository.CriteriaRepository
	maxLevel     int
}

// NewProgressionService creates a new ProgressionService. Progress views
// cover levels 1..maxLevel.
func NewProgressionService(sessionRepo repository.SessionRepository, criteriaRepo repository.CriteriaRepository, maxLevel int) ProgressionService {
	return &progressionService{
		sessionRepo:  sessionRepo,
		criteriaRepo: criteriaRepo,
		maxLevel:     maxLevel,
	}
}

func (s *progressionService) GetLevelProgress(ctx context.Context, studentID, gameType string) ([]models.LevelProgressView, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting level progress: student_id=%s, game_type=%s", studentID, gameType)

	if strings.TrimSpace(gameType) == "" {
		return nil, errors.NewValidationError("gameType", "is required")
	}

	sessions, err := s.sessionRepo.List(ctx, models.SessionFilter{StudentID: studentID, GameType: gameType})
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return levelProgress(ctx, s.criteriaRepo, gameType, sessions, s.maxLevel)
}

func (s *progressionService) CheckLevelUnlock(ctx context.Context, studentID, gameType string, level int) (bool, error) {
	log := logger.FromContext(ctx)
	log.Debug("checking level unlock: student_id=%s, game_type=%s, level=%d", studentID, gameType, level)

	if strings.TrimSpace(gameType) == "" {
		return false, errors.NewValidationError("gameType", "is required")
	}

	var (
		best      *float64
		criterion *models.LevelCriterion
		err       error
	)
	if level > 1 {
		best, err = s.sessionRepo.BestScore(ctx, studentID, gameType, level-1)
		if err != nil {
			log.Error("failed to get best score: %v", err)
			return false, errors.NewInternalError(err)
		}
		if best != nil {
			criterion, err = s.criteriaRepo.Get(ctx, gameType, level-1)
			if err != nil {
				log.Error("failed to get level criterion: %v", err)
				return false, errors.NewInternalError(err)
			}
		}
	}

	unlocked, err := progression.CheckUnlock(gameType, level, best, criterion)
	if err != nil {
		log.Warn("unlock check failed: %v", err)
		return false, domainError(err)
	}
	log.Debug("level unlock decided: game_type=%s, level=%d, unlocked=%t", gameType, level, unlocked)
	return unlocked, nil
}

func (s *progressionService) ListCriteria(ctx context.Context, gameType string) ([]models.LevelCriterion, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing criteria: game_type=%s", gameType)

	criteria, err := s.criteriaRepo.ForGameType(ctx, gameType)
	if err != nil {
		log.Error("failed to list criteria: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return criteria, nil
}

func (s *progressionService) SetCriterion(ctx context.Context, criterion models.LevelCriterion) error {
	log := logger.FromContext(ctx)
	log.Debug("setting criterion: game_type=%s, level=%d, required_score=%v", criterion.GameType, criterion.Level, criterion.RequiredScore)

	if fe := validation.First(criterion); fe != nil {
		return errors.NewValidationError(fe.Field, fe.Message)
	}
	if criterion.Level > s.maxLevel {
		return errors.NewValidationError("level", fmt.Sprintf("must be at most %d", s.maxLevel))
	}

	if err := s.criteriaRepo.Upsert(ctx, criterion); err != nil {
		log.Error("failed to store criterion: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("criterion updated: game_type=%s, level=%d, required_score=%v", criterion.GameType, criterion.Level, criterion.RequiredScore)
	return nil
}

// levelProgress loads the criteria for gameType and computes progress views
// over sessions.
func levelProgress(ctx context.Context, criteriaRepo repository.CriteriaRepository, gameType string, sessions []models.GameSession, maxLevel int) ([]models.LevelProgressView, error) {
	log := logger.FromContext(ctx)

	criteria, err := criteriaRepo.ForGameType(ctx, gameType)
	if err != nil {
		log.Error("failed to load criteria for %s: %v", gameType, err)
		return nil, errors.NewInternalError(err)
	}

	views, err := progression.ComputeLevelProgress(gameType, sessions, criteria, maxLevel)
	if err != nil {
		log.Warn("failed to compute level progress for %s: %v", gameType, err)
		return nil, domainError(err)
	}
	return views, nil
}
