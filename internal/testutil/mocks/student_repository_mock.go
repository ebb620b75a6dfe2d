package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/mathsprout/internal/models"
)

// MockStudentRepository is a mock implementation of repository.StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Get(ctx context.Context, id string) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context, classroomID string) ([]models.Student, error) {
	args := m.Called(ctx, classroomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Student), args.Error(1)
}

func (m *MockStudentRepository) Insert(ctx context.Context, student models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}
