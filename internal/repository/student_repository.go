package repository

import (
	"context"

	"github.com/vytor/mathsprout/internal/models"
)

// StudentRepository handles student roster data access
type StudentRepository interface {
	Get(ctx context.Context, id string) (*models.Student, error)
	List(ctx context.Context, classroomID string) ([]models.Student, error)
	Insert(ctx context.Context, student models.Student) error
}
