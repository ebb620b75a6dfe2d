package models

import "time"

type GameTypeStat struct {
	TotalScore   float64 `json:"totalScore"`
	Sessions     int     `json:"sessions"`
	AverageScore float64 `json:"averageScore"`
}

type LevelStat struct {
	Sessions           int     `json:"sessions"`
	QuestionsAttempted int     `json:"questionsAttempted"`
	CorrectAnswers     int     `json:"correctAnswers"`
	Accuracy           float64 `json:"accuracy"`
}

// AggregateReport is the rollup of a set of sessions.
type AggregateReport struct {
	TotalScore            float64                  `json:"totalScore"`
	TotalQuestions        int                      `json:"totalQuestions"`
	TotalCorrect          int                      `json:"totalCorrect"`
	TotalTime             float64                  `json:"totalTime"`
	Accuracy              float64                  `json:"accuracy"`
	TotalSessions         int                      `json:"totalSessions"`
	AverageTimePerSession float64                  `json:"averageTimePerSession"`
	GameTypeStats         map[string]*GameTypeStat `json:"gameTypeStats"`
	LevelStats            map[int]*LevelStat       `json:"levelStats"`
}

// TrendPoint summarises the sessions played on one UTC day.
type TrendPoint struct {
	Date         string  `json:"date"`
	Sessions     int     `json:"sessions"`
	AverageScore float64 `json:"averageScore"`
	Accuracy     float64 `json:"accuracy"`
}

// ClassReport is an AggregateReport over a whole class.
type ClassReport struct {
	AggregateReport
	TotalStudents int          `json:"totalStudents"`
	Trends        []TrendPoint `json:"trends"`
}

// ClassFilter scopes a class report.
type ClassFilter struct {
	ClassroomID string
	GameType    string
	Since       *time.Time
}

// StudentStats is the student dashboard payload. Field names are fixed for
// existing consumers.
type StudentStats struct {
	Name            string                         `json:"name"`
	TotalScore      float64                        `json:"totalScore"`
	TotalQuestions  int                            `json:"totalQuestions"`
	AverageAccuracy float64                        `json:"averageAccuracy"`
	TotalTime       float64                        `json:"totalTime"`
	GameTypeStats   map[string]*GameTypeStat       `json:"gameTypeStats"`
	Levels          map[string][]LevelProgressView `json:"levels"`
	Sessions        []GameSession                  `json:"sessions"`
}
