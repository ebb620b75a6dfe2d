package models

import "time"

// GameSession is one completed play-through of a game at a given level.
// Sessions are append-only: once stored they are never updated or deleted.
type GameSession struct {
	ID                 int64             `json:"id"`
	StudentID          string            `json:"studentId" validate:"required"`
	GameType           string            `json:"gameType" validate:"required"`
	Level              int               `json:"level" validate:"gte=1"`
	Score              float64           `json:"score" validate:"gte=0"`
	PointsAvailable    float64           `json:"pointsAvailable" validate:"gte=0"`
	QuestionsAttempted int               `json:"questionsAttempted" validate:"gte=0"`
	CorrectAnswers     int               `json:"correctAnswers" validate:"gte=0,ltefield=QuestionsAttempted"`
	TotalTime          float64           `json:"totalTime" validate:"gte=0"` // seconds
	Timestamp          time.Time         `json:"timestamp" validate:"required"`
	Questions          []QuestionAttempt `json:"questions,omitempty" validate:"-"`
}

// QuestionAttempt is a single answered question inside a session.
type QuestionAttempt struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"sessionId"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Correct   bool      `json:"correct"`
	TimeTaken float64   `json:"timeTaken"` // seconds
	Timestamp time.Time `json:"timestamp"`
}

// SessionFilter narrows a session read. Zero values mean "no constraint".
type SessionFilter struct {
	StudentID   string
	GameType    string
	Level       int
	ClassroomID string
	Since       *time.Time
	Limit       int
	Offset      int
}

// SubmitSessionRequest is the payload a game client posts when a session ends.
type SubmitSessionRequest struct {
	GameType           string                  `json:"gameType" validate:"required,max=64"`
	Level              int                     `json:"level" validate:"gte=1"`
	Score              float64                 `json:"score" validate:"gte=0"`
	PointsAvailable    float64                 `json:"pointsAvailable" validate:"gte=0"`
	QuestionsAttempted int                     `json:"questionsAttempted" validate:"gte=0"`
	CorrectAnswers     int                     `json:"correctAnswers" validate:"gte=0,ltefield=QuestionsAttempted"`
	TotalTime          float64                 `json:"totalTime" validate:"gte=0"`
	Timestamp          *time.Time              `json:"timestamp"`
	Questions          []SubmitQuestionRequest `json:"questions" validate:"dive"`
}

type SubmitQuestionRequest struct {
	Question  string     `json:"question" validate:"required"`
	Answer    string     `json:"answer"`
	Correct   bool       `json:"correct"`
	TimeTaken float64    `json:"timeTaken" validate:"gte=0"`
	Timestamp *time.Time `json:"timestamp"`
}
