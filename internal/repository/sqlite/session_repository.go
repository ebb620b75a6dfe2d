package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/mathsprout/internal/logger"
	"github.com/vytor/mathsprout/internal/models"
	"github.com/vytor/mathsprout/internal/repository"
)

var sessionColumns = []string{
	"id", "student_id", "game_type", "level", "score", "points_available",
	"questions_attempted", "correct_answers", "total_time", "timestamp",
}

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (models.GameSession, error) {
	var s models.GameSession
	err := row.Scan(&s.ID, &s.StudentID, &s.GameType, &s.Level, &s.Score, &s.PointsAvailable,
		&s.QuestionsAttempted, &s.CorrectAnswers, &s.TotalTime, &s.Timestamp)
	return s, err
}

// applyFilter adds the WHERE clauses shared by List and Count.
func applyFilter(query squirrel.SelectBuilder, filter models.SessionFilter) squirrel.SelectBuilder {
	if filter.StudentID != "" {
		query = query.Where(squirrel.Eq{"student_id": filter.StudentID})
	}
	if filter.GameType != "" {
		query = query.Where(squirrel.Eq{"game_type": filter.GameType})
	}
	if filter.Level > 0 {
		query = query.Where(squirrel.Eq{"level": filter.Level})
	}
	if filter.ClassroomID != "" {
		query = query.Where(squirrel.Expr("student_id IN (SELECT id FROM students WHERE classroom_id = ?)", filter.ClassroomID))
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"timestamp": filter.Since.UTC()})
	}
	return query
}

func (r *sessionRepository) Insert(ctx context.Context, s models.GameSession) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: student_id=%s, game_type=%s, level=%d, questions=%d", s.StudentID, s.GameType, s.Level, len(s.Questions))

	var id int64
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO game_sessions (
    student_id, game_type, level, score, points_available,
    questions_attempted, correct_answers, total_time, timestamp
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, s.StudentID, s.GameType, s.Level, s.Score, s.PointsAvailable, s.QuestionsAttempted, s.CorrectAnswers, s.TotalTime, s.Timestamp.UTC())
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		if err != nil {
			return err
		}
		if len(s.Questions) == 0 {
			return nil
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO question_attempts (session_id, question, answer, correct, time_taken, timestamp)
VALUES (?, ?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, q := range s.Questions {
			if _, err := stmt.ExecContext(ctx, id, q.Question, q.Answer, q.Correct, q.TimeTaken, q.Timestamp.UTC()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert session: %v", err)
		return 0, err
	}
	log.Debug("session inserted: id=%d", id)
	return id, nil
}

func (r *sessionRepository) Get(ctx context.Context, id int64) (*models.GameSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%d", id)

	query, args, err := sqlBuilder.Select(sessionColumns...).From("game_sessions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	s, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("session not found: id=%d", id)
			return nil, nil
		}
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	return &s, nil
}

// List returns matching sessions oldest first. A non-positive limit returns
// every match.
func (r *sessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.GameSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing sessions with filter: student_id=%s, game_type=%s, level=%d, classroom_id=%s, since=%v",
		filter.StudentID, filter.GameType, filter.Level, filter.ClassroomID, filter.Since)

	query := applyFilter(sqlBuilder.Select(sessionColumns...).From("game_sessions"), filter).
		OrderBy("timestamp ASC", "id ASC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			// SQLite only accepts OFFSET after a LIMIT
			query = query.Limit(uint64(1<<63 - 1))
		}
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	sessions := []models.GameSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		sessions = append(sessions, s)
	}
	log.Debug("found %d sessions", len(sessions))
	return sessions, rows.Err()
}

func (r *sessionRepository) Count(ctx context.Context, filter models.SessionFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("counting sessions with filter: student_id=%s, game_type=%s, level=%d, classroom_id=%s",
		filter.StudentID, filter.GameType, filter.Level, filter.ClassroomID)

	sqlStr, args, err := applyFilter(sqlBuilder.Select("COUNT(*)").From("game_sessions"), filter).ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count sessions: %v", err)
		return 0, err
	}
	return count, nil
}

// BestScore returns the highest score the student reached on a level, or nil
// when the level was never attempted.
func (r *sessionRepository) BestScore(ctx context.Context, studentID, gameType string, level int) (*float64, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("fetching best score: student_id=%s, game_type=%s, level=%d", studentID, gameType, level)

	var best sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
SELECT MAX(score)
FROM game_sessions
WHERE student_id = ? AND game_type = ? AND level = ?
`, studentID, gameType, level).Scan(&best)
	if err != nil {
		log.Error("failed to fetch best score: %v", err)
		return nil, err
	}
	if !best.Valid {
		return nil, nil
	}
	return &best.Float64, nil
}

func (r *sessionRepository) QuestionAttempts(ctx context.Context, sessionID int64) ([]models.QuestionAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("fetching question attempts: session_id=%d", sessionID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, session_id, question, answer, correct, time_taken, timestamp
FROM question_attempts
WHERE session_id = ?
ORDER BY id ASC
`, sessionID)
	if err != nil {
		log.Error("failed to query question attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	attempts := []models.QuestionAttempt{}
	for rows.Next() {
		var q models.QuestionAttempt
		if err := rows.Scan(&q.ID, &q.SessionID, &q.Question, &q.Answer, &q.Correct, &q.TimeTaken, &q.Timestamp); err != nil {
			log.Error("failed to scan question attempt row: %v", err)
			return nil, err
		}
		attempts = append(attempts, q)
	}
	log.Debug("found %d question attempts", len(attempts))
	return attempts, rows.Err()
}
