// Package aggregate rolls game sessions up into per-student and per-class
// reports. Every function is pure: it reads the snapshot it is given and
// keeps no state between calls.
package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/vytor/mathsprout/internal/models"
	"github.com/vytor/mathsprout/internal/validation"
)

// MalformedRecordError is returned when a session does not have the shape of
// a GameSession. Missing data is never coerced to zero.
type MalformedRecordError struct {
	Index     int
	SessionID int64
	Field     string
	Reason    string
}

func (e *MalformedRecordError) Error() string {
	if e.SessionID != 0 {
		return fmt.Sprintf("malformed session record at index %d (id %d): %s %s", e.Index, e.SessionID, e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed session record at index %d: %s %s", e.Index, e.Field, e.Reason)
}

// Validate checks every session and returns a *MalformedRecordError for the
// first one that violates the GameSession shape.
func Validate(sessions []models.GameSession) error {
	for i := range sessions {
		if fe := validation.First(sessions[i]); fe != nil {
			return &MalformedRecordError{
				Index:     i,
				SessionID: sessions[i].ID,
				Field:     fe.Field,
				Reason:    fe.Message,
			}
		}
	}
	return nil
}

// Aggregate sums sessions into a report. An empty input yields a zero report.
func Aggregate(sessions []models.GameSession) (models.AggregateReport, error) {
	if err := Validate(sessions); err != nil {
		return models.AggregateReport{}, err
	}

	report := models.AggregateReport{
		GameTypeStats: make(map[string]*models.GameTypeStat),
		LevelStats:    make(map[int]*models.LevelStat),
	}

	for _, s := range sessions {
		report.TotalScore += s.Score
		report.TotalQuestions += s.QuestionsAttempted
		report.TotalCorrect += s.CorrectAnswers
		report.TotalTime += s.TotalTime
		report.TotalSessions++

		gt, ok := report.GameTypeStats[s.GameType]
		if !ok {
			gt = &models.GameTypeStat{}
			report.GameTypeStats[s.GameType] = gt
		}
		gt.TotalScore += s.Score
		gt.Sessions++
		gt.AverageScore = gt.TotalScore / float64(gt.Sessions)

		ls, ok := report.LevelStats[s.Level]
		if !ok {
			ls = &models.LevelStat{}
			report.LevelStats[s.Level] = ls
		}
		ls.Sessions++
		ls.QuestionsAttempted += s.QuestionsAttempted
		ls.CorrectAnswers += s.CorrectAnswers
		ls.Accuracy = Accuracy(ls.CorrectAnswers, ls.QuestionsAttempted)
	}

	report.Accuracy = Accuracy(report.TotalCorrect, report.TotalQuestions)
	if report.TotalSessions > 0 {
		report.AverageTimePerSession = report.TotalTime / float64(report.TotalSessions)
	}
	return report, nil
}

// AggregateForStudent aggregates only the sessions belonging to studentID.
func AggregateForStudent(studentID string, sessions []models.GameSession) (models.AggregateReport, error) {
	if err := Validate(sessions); err != nil {
		return models.AggregateReport{}, err
	}

	own := make([]models.GameSession, 0, len(sessions))
	for _, s := range sessions {
		if s.StudentID == studentID {
			own = append(own, s)
		}
	}
	return Aggregate(own)
}

// AggregateClass aggregates a whole class and counts distinct students.
func AggregateClass(sessions []models.GameSession) (models.ClassReport, error) {
	report, err := Aggregate(sessions)
	if err != nil {
		return models.ClassReport{}, err
	}

	students := make(map[string]struct{})
	for _, s := range sessions {
		students[s.StudentID] = struct{}{}
	}

	return models.ClassReport{
		AggregateReport: report,
		TotalStudents:   len(students),
		Trends:          DailyTrends(sessions),
	}, nil
}

// DailyTrends buckets sessions by the UTC date they were played on and
// returns one point per day in ascending date order. Sessions are assumed
// to be valid.
func DailyTrends(sessions []models.GameSession) []models.TrendPoint {
	type bucket struct {
		sessions  int
		score     float64
		attempted int
		correct   int
	}

	days := make(map[string]*bucket)
	for _, s := range sessions {
		day := s.Timestamp.UTC().Format(time.DateOnly)
		b, ok := days[day]
		if !ok {
			b = &bucket{}
			days[day] = b
		}
		b.sessions++
		b.score += s.Score
		b.attempted += s.QuestionsAttempted
		b.correct += s.CorrectAnswers
	}

	trends := make([]models.TrendPoint, 0, len(days))
	for day, b := range days {
		trends = append(trends, models.TrendPoint{
			Date:         day,
			Sessions:     b.sessions,
			AverageScore: b.score / float64(b.sessions),
			Accuracy:     Accuracy(b.correct, b.attempted),
		})
	}
	// DateOnly strings sort chronologically.
	sort.Slice(trends, func(i, j int) bool { return trends[i].Date < trends[j].Date })
	return trends
}

// Accuracy is correct/attempted as a percentage, or 0 when nothing was attempted.
func Accuracy(correct, attempted int) float64 {
	if attempted <= 0 {
		return 0
	}
	return float64(correct) / float64(attempted) * 100
}
