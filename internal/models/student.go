package models

import "time"

type Student struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	GradeLevel  int       `json:"gradeLevel"` // 0 = kindergarten
	ClassroomID string    `json:"classroomId,omitempty"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateStudentRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	GradeLevel  int    `json:"gradeLevel" validate:"gte=0,lte=12"`
	ClassroomID string `json:"classroomId" validate:"max=64"`
	Email       string `json:"email" validate:"omitempty,email"`
}
