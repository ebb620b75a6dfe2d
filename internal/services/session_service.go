package services

import (
	"context"
	"time"

	"github.com/vytor/mathsprout/internal/aggregate"
	"github.com/vytor/mathsprout/internal/errors"
	"github.com/vytor/mathsprout/internal/logger"
	"github.com/vytor/mathsprout/internal/models"
	"github.com/vytor/mathsprout/internal/repository"
	"github.com/vytor/mathsprout/internal/validation"
)

// SessionService handles recording and reading game sessions
type SessionService interface {
	SubmitSession(ctx context.Context, studentID string, req models.SubmitSessionRequest) (*models.GameSession, error)
	ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.GameSession, int, error)
	GetQuestionAttempts(ctx context.Context, studentID string, sessionID int64) ([]models.QuestionAttempt, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	now         func() time.Time
}

// NewSessionService creates a new SessionService
func NewSessionService(sessionRepo repository.SessionRepository) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

func (s *sessionService) SubmitSession(ctx context.Context, studentID string, req models.SubmitSessionRequest) (*models.GameSession, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting session: student_id=%s, game_type=%s, level=%d", studentID, req.GameType, req.Level)

	if fe := validation.First(req); fe != nil {
		return nil, errors.NewValidationError(fe.Field, fe.Message)
	}

	ts := s.now().UTC()
	if req.Timestamp != nil {
		ts = req.Timestamp.UTC()
	}

	session := models.GameSession{
		StudentID:          studentID,
		GameType:           req.GameType,
		Level:              req.Level,
		Score:              req.Score,
		PointsAvailable:    req.PointsAvailable,
		QuestionsAttempted: req.QuestionsAttempted,
		CorrectAnswers:     req.CorrectAnswers,
		TotalTime:          req.TotalTime,
		Timestamp:          ts,
	}
	for _, q := range req.Questions {
		qts := ts
		if q.Timestamp != nil {
			qts = q.Timestamp.UTC()
		}
		session.Questions = append(session.Questions, models.QuestionAttempt{
			Question:  q.Question,
			Answer:    q.Answer,
			Correct:   q.Correct,
			TimeTaken: q.TimeTaken,
			Timestamp: qts,
		})
	}

	if err := aggregate.Validate([]models.GameSession{session}); err != nil {
		log.Warn("rejecting malformed session: %v", err)
		return nil, domainError(err)
	}

	id, err := s.sessionRepo.Insert(ctx, session)
	if err != nil {
		log.Error("failed to store session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	session.ID = id
	for i := range session.Questions {
		session.Questions[i].SessionID = id
	}

	log.Info("session recorded: id=%d, student_id=%s, game_type=%s, level=%d, score=%v", id, studentID, session.GameType, session.Level, session.Score)
	return &session, nil
}

func (s *sessionService) ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.GameSession, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing sessions: student_id=%s, game_type=%s", filter.StudentID, filter.GameType)

	sessions, err := s.sessionRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	total, err := s.sessionRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count sessions: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return sessions, total, nil
}

// GetQuestionAttempts returns the answers recorded for one of the student's
// own sessions. Sessions of other students are reported as not found.
func (s *sessionService) GetQuestionAttempts(ctx context.Context, studentID string, sessionID int64) ([]models.QuestionAttempt, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting question attempts: student_id=%s, session_id=%d", studentID, sessionID)

	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if session == nil || session.StudentID != studentID {
		return nil, errors.NewNotFoundError("session", sessionID)
	}

	attempts, err := s.sessionRepo.QuestionAttempts(ctx, sessionID)
	if err != nil {
		log.Error("failed to get question attempts: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return attempts, nil
}
