package services

import (
	"context"

	"github.com/vytor/mathsprout/internal/aggregate"
	"github.com/vytor/mathsprout/internal/errors"
	"github.com/vytor/mathsprout/internal/logger"
	"github.com/vytor/mathsprout/internal/models"
	"github.com/vytor/mathsprout/internal/repository"
)

// StatsService handles statistics for students and classes
type StatsService interface {
	GetStudentStats(ctx context.Context, studentID string) (*models.StudentStats, error)
	GetStudentReport(ctx context.Context, studentID string) (*models.AggregateReport, error)
	GetClassReport(ctx context.Context, filter models.ClassFilter) (*models.ClassReport, error)
}

type statsService struct {
	sessionRepo  repository.SessionRepository
	criteriaRepo repository.CriteriaRepository
	studentRepo  repository.StudentRepository
	maxLevel     int
}

// NewStatsService creates a new StatsService
func NewStatsService(sessionRepo repository.SessionRepository, criteriaRepo repository.CriteriaRepository, studentRepo repository.StudentRepository, maxLevel int) StatsService {
	return &statsService{
		sessionRepo:  sessionRepo,
		criteriaRepo: criteriaRepo,
		studentRepo:  studentRepo,
		maxLevel:     maxLevel,
	}
}

func (s *statsService) GetStudentStats(ctx context.Context, studentID string) (*models.StudentStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting student stats: student_id=%s", studentID)

	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.List(ctx, models.SessionFilter{StudentID: studentID})
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	report, err := aggregate.AggregateForStudent(studentID, sessions)
	if err != nil {
		log.Warn("failed to aggregate sessions: %v", err)
		return nil, domainError(err)
	}

	gameTypes, err := s.criteriaRepo.GameTypes(ctx)
	if err != nil {
		log.Error("failed to list game types: %v", err)
		return nil, errors.NewInternalError(err)
	}

	levels := make(map[string][]models.LevelProgressView, len(gameTypes))
	for _, gameType := range gameTypes {
		views, err := levelProgress(ctx, s.criteriaRepo, gameType, sessions, s.maxLevel)
		if err != nil {
			return nil, err
		}
		levels[gameType] = views
	}

	return &models.StudentStats{
		Name:            student.Name,
		TotalScore:      report.TotalScore,
		TotalQuestions:  report.TotalQuestions,
		AverageAccuracy: report.Accuracy,
		TotalTime:       report.TotalTime,
		GameTypeStats:   report.GameTypeStats,
		Levels:          levels,
		Sessions:        sessions,
	}, nil
}

func (s *statsService) GetStudentReport(ctx context.Context, studentID string) (*models.AggregateReport, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting student report: student_id=%s", studentID)

	if _, err := s.getStudent(ctx, studentID); err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.List(ctx, models.SessionFilter{StudentID: studentID})
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	report, err := aggregate.AggregateForStudent(studentID, sessions)
	if err != nil {
		log.Warn("failed to aggregate sessions: %v", err)
		return nil, domainError(err)
	}
	return &report, nil
}

func (s *statsService) GetClassReport(ctx context.Context, filter models.ClassFilter) (*models.ClassReport, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting class report: classroom_id=%s, game_type=%s, since=%v", filter.ClassroomID, filter.GameType, filter.Since)

	sessions, err := s.sessionRepo.List(ctx, models.SessionFilter{
		ClassroomID: filter.ClassroomID,
		GameType:    filter.GameType,
		Since:       filter.Since,
	})
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}

	report, err := aggregate.AggregateClass(sessions)
	if err != nil {
		log.Warn("failed to aggregate class sessions: %v", err)
		return nil, domainError(err)
	}
	return &report, nil
}

func (s *statsService) getStudent(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.studentRepo.Get(ctx, studentID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get student: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if student == nil {
		return nil, errors.NewNotFoundError("student", studentID)
	}
	return student, nil
}
