package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathsprout/internal/models"
	"github.com/vytor/mathsprout/internal/validation"
)

func TestStruct_ValidSession(t *testing.T) {
	s := models.GameSession{
		StudentID:          "s1",
		GameType:           "addition",
		Level:              1,
		Score:              10,
		QuestionsAttempted: 5,
		CorrectAnswers:     5,
		Timestamp:          time.Now(),
	}

	assert.Nil(t, validation.Struct(s))
	assert.Nil(t, validation.First(s))
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.GameSession)
		field   string
		message string
	}{
		{
			name:    "missing student",
			mutate:  func(s *models.GameSession) { s.StudentID = "" },
			field:   "studentId",
			message: "is required",
		},
		{
			name:    "level zero",
			mutate:  func(s *models.GameSession) { s.Level = 0 },
			field:   "level",
			message: "must be at least 1",
		},
		{
			name:    "negative score",
			mutate:  func(s *models.GameSession) { s.Score = -1 },
			field:   "score",
			message: "must be at least 0",
		},
		{
			name:    "more correct than attempted",
			mutate:  func(s *models.GameSession) { s.CorrectAnswers = 6 },
			field:   "correctAnswers",
			message: "must not exceed questionsAttempted",
		},
		{
			name:    "zero timestamp",
			mutate:  func(s *models.GameSession) { s.Timestamp = time.Time{} },
			field:   "timestamp",
			message: "is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.GameSession{
				StudentID:          "s1",
				GameType:           "addition",
				Level:              1,
				QuestionsAttempted: 5,
				CorrectAnswers:     5,
				Timestamp:          time.Now(),
			}
			tt.mutate(&s)

			fe := validation.First(s)
			require.NotNil(t, fe)
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, tt.message, fe.Message)
		})
	}
}

func TestStruct_NestedQuestionPath(t *testing.T) {
	req := models.SubmitSessionRequest{
		GameType: "addition",
		Level:    1,
		Questions: []models.SubmitQuestionRequest{
			{Question: "1+1", Answer: "2", Correct: true},
			{Question: "", Answer: "3"},
		},
	}

	errs := validation.Struct(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "questions[1].question", errs[0].Field)
}

func TestStruct_Email(t *testing.T) {
	req := models.CreateStudentRequest{Name: "Ada", GradeLevel: 3, Email: "not-an-email"}

	fe := validation.First(req)
	require.NotNil(t, fe)
	assert.Equal(t, "email", fe.Field)
	assert.Equal(t, "email must be a valid email address", fe.Error())
}
