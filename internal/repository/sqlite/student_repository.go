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

type studentRepository struct {
	db *sql.DB
}

// NewStudentRepository creates a new StudentRepository implementation
func NewStudentRepository(db *sql.DB) repository.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Get(ctx context.Context, id string) (*models.Student, error) {
	log := logger.FromContext(ctx).WithPrefix("student_repo")
	log.Debug("getting student: id=%s", id)

	var st models.Student
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, grade_level, classroom_id, email, created_at
FROM students
WHERE id = ?
`, id).Scan(&st.ID, &st.Name, &st.GradeLevel, &st.ClassroomID, &st.Email, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("student not found: id=%s", id)
			return nil, nil
		}
		log.Error("failed to get student: %v", err)
		return nil, err
	}
	return &st, nil
}

// List returns the roster ordered by name. An empty classroomID lists every
// student.
func (r *studentRepository) List(ctx context.Context, classroomID string) ([]models.Student, error) {
	log := logger.FromContext(ctx).WithPrefix("student_repo")
	log.Debug("listing students: classroom_id=%s", classroomID)

	query := sqlBuilder.Select("id", "name", "grade_level", "classroom_id", "email", "created_at").
		From("students").
		OrderBy("name ASC", "id ASC")
	if classroomID != "" {
		query = query.Where(squirrel.Eq{"classroom_id": classroomID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list students: %v", err)
		return nil, err
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var st models.Student
		if err := rows.Scan(&st.ID, &st.Name, &st.GradeLevel, &st.ClassroomID, &st.Email, &st.CreatedAt); err != nil {
			log.Error("failed to scan student row: %v", err)
			return nil, err
		}
		students = append(students, st)
	}
	log.Debug("found %d students", len(students))
	return students, rows.Err()
}

func (r *studentRepository) Insert(ctx context.Context, st models.Student) error {
	log := logger.FromContext(ctx).WithPrefix("student_repo")
	log.Debug("inserting student: id=%s, classroom_id=%s", st.ID, st.ClassroomID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO students (id, name, grade_level, classroom_id, email, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, st.ID, st.Name, st.GradeLevel, st.ClassroomID, st.Email, st.CreatedAt.UTC())
	if err != nil {
		log.Error("failed to insert student: %v", err)
		return err
	}
	return nil
}
