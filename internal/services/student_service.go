package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/mathsprout/internal/errors"
	"github.com/vytor/mathsprout/internal/logger"
	"github.com/vytor/mathsprout/internal/models"
	"github.com/vytor/mathsprout/internal/repository"
	"github.com/vytor/mathsprout/internal/validation"
)

// StudentService handles the student roster
type StudentService interface {
	CreateStudent(ctx context.Context, req models.CreateStudentRequest) (*models.Student, error)
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	ListStudents(ctx context.Context, classroomID string) ([]models.Student, error)
}

type studentService struct {
	studentRepo repository.StudentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repository.StudentRepository) StudentService {
	return &studentService{studentRepo: studentRepo}
}

func (s *studentService) CreateStudent(ctx context.Context, req models.CreateStudentRequest) (*models.Student, error) {
	log := logger.FromContext(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.ClassroomID = strings.TrimSpace(req.ClassroomID)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	log.Debug("creating student: classroom_id=%s", req.ClassroomID)

	if fe := validation.First(req); fe != nil {
		return nil, errors.NewValidationError(fe.Field, fe.Message)
	}

	student := models.Student{
		ID:          uuid.NewString(),
		Name:        req.Name,
		GradeLevel:  req.GradeLevel,
		ClassroomID: req.ClassroomID,
		Email:       req.Email,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.studentRepo.Insert(ctx, student); err != nil {
		log.Error("failed to create student: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("student created: id=%s", student.ID)
	return &student, nil
}

func (s *studentService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting student: id=%s", id)

	student, err := s.studentRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get student: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if student == nil {
		return nil, errors.NewNotFoundError("student", id)
	}
	return student, nil
}

func (s *studentService) ListStudents(ctx context.Context, classroomID string) ([]models.Student, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing students: classroom_id=%s", classroomID)

	students, err := s.studentRepo.List(ctx, classroomID)
	if err != nil {
		log.Error("failed to list students: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return students, nil
}
