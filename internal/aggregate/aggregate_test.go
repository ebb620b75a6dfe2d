package aggregate_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mathsprout/internal/aggregate"
	"github.com/vytor/mathsprout/internal/models"
)

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func session(studentID, gameType string, level int, score float64, attempted, correct int, totalTime float64) models.GameSession {
	return models.GameSession{
		StudentID:          studentID,
		GameType:           gameType,
		Level:              level,
		Score:              score,
		QuestionsAttempted: attempted,
		CorrectAnswers:     correct,
		TotalTime:          totalTime,
		Timestamp:          now,
	}
}

func TestAggregate_Empty(t *testing.T) {
	for _, in := range [][]models.GameSession{nil, {}} {
		report, err := aggregate.Aggregate(in)
		require.NoError(t, err)

		assert.Zero(t, report.TotalScore)
		assert.Zero(t, report.TotalQuestions)
		assert.Zero(t, report.TotalCorrect)
		assert.Zero(t, report.TotalTime)
		assert.Zero(t, report.TotalSessions)
		assert.Zero(t, report.AverageTimePerSession)
		assert.Equal(t, 0.0, report.Accuracy)
		assert.Empty(t, report.GameTypeStats)
		assert.Empty(t, report.LevelStats)
	}
}

func TestAggregate_Totals(t *testing.T) {
	sessions := []models.GameSession{
		session("s1", "addition", 1, 50, 10, 8, 60),
		session("s1", "addition", 2, 90, 10, 9, 45),
		session("s1", "subtraction", 1, 30, 5, 2, 15),
	}

	report, err := aggregate.Aggregate(sessions)
	require.NoError(t, err)

	assert.Equal(t, 170.0, report.TotalScore)
	assert.Equal(t, 25, report.TotalQuestions)
	assert.Equal(t, 19, report.TotalCorrect)
	assert.Equal(t, 120.0, report.TotalTime)
	assert.Equal(t, 3, report.TotalSessions)
	assert.InDelta(t, 40.0, report.AverageTimePerSession, 1e-9)
	assert.InDelta(t, 100.0*19/25, report.Accuracy, 1e-9)
}

func TestAggregate_GameTypeAverageTracksRunningTotals(t *testing.T) {
	sessions := []models.GameSession{
		session("s1", "addition", 1, 50, 1, 1, 1),
		session("s1", "matching", 1, 10, 1, 1, 1),
		session("s1", "addition", 1, 90, 1, 1, 1),
		session("s1", "addition", 1, 80, 1, 1, 1),
	}

	report, err := aggregate.Aggregate(sessions)
	require.NoError(t, err)

	require.Contains(t, report.GameTypeStats, "addition")
	add := report.GameTypeStats["addition"]
	assert.Equal(t, 220.0, add.TotalScore)
	assert.Equal(t, 3, add.Sessions)
	assert.InDelta(t, add.TotalScore/float64(add.Sessions), add.AverageScore, 1e-9)

	match := report.GameTypeStats["matching"]
	assert.Equal(t, 1, match.Sessions)
	assert.Equal(t, 10.0, match.AverageScore)
}

func TestAggregate_LevelStats(t *testing.T) {
	sessions := []models.GameSession{
		session("s1", "addition", 1, 50, 10, 5, 1),
		session("s1", "subtraction", 1, 50, 10, 10, 1),
		session("s1", "addition", 2, 50, 0, 0, 1),
	}

	report, err := aggregate.Aggregate(sessions)
	require.NoError(t, err)

	require.Len(t, report.LevelStats, 2)
	assert.Equal(t, 2, report.LevelStats[1].Sessions)
	assert.InDelta(t, 75.0, report.LevelStats[1].Accuracy, 1e-9)
	assert.Equal(t, 1, report.LevelStats[2].Sessions)
	assert.Equal(t, 0.0, report.LevelStats[2].Accuracy)
}

func TestAggregate_NoQuestionsAttemptedMeansZeroAccuracy(t *testing.T) {
	report, err := aggregate.Aggregate([]models.GameSession{
		session("s1", "matching", 1, 40, 0, 0, 30),
	})
	require.NoError(t, err)

	assert.Equal(t, 40.0, report.TotalScore)
	assert.Equal(t, 0.0, report.Accuracy)
}

func TestAggregate_MalformedRecord(t *testing.T) {
	bad := session("", "addition", 1, 10, 1, 1, 1)
	bad.ID = 42
	sessions := []models.GameSession{
		session("s1", "addition", 1, 10, 1, 1, 1),
		bad,
	}

	_, err := aggregate.Aggregate(sessions)
	require.Error(t, err)

	var mre *aggregate.MalformedRecordError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, 1, mre.Index)
	assert.Equal(t, int64(42), mre.SessionID)
	assert.Equal(t, "studentId", mre.Field)
	assert.Contains(t, err.Error(), "index 1")
	assert.Contains(t, err.Error(), "id 42")
}

func TestAggregate_MalformedRecordCases(t *testing.T) {
	tests := []struct {
		name  string
		s     models.GameSession
		field string
	}{
		{"missing game type", session("s1", "", 1, 1, 1, 1, 1), "gameType"},
		{"level below one", session("s1", "addition", 0, 1, 1, 1, 1), "level"},
		{"negative time", session("s1", "addition", 1, 1, 1, 1, -5), "totalTime"},
		{"correct exceeds attempted", session("s1", "addition", 1, 1, 2, 3, 1), "correctAnswers"},
		{"missing timestamp", models.GameSession{StudentID: "s1", GameType: "addition", Level: 1}, "timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := aggregate.Aggregate([]models.GameSession{tt.s})

			var mre *aggregate.MalformedRecordError
			require.True(t, errors.As(err, &mre))
			assert.Equal(t, 0, mre.Index)
			assert.Equal(t, tt.field, mre.Field)
		})
	}
}

func TestAggregateForStudent(t *testing.T) {
	sessions := []models.GameSession{
		session("s1", "addition", 1, 50, 10, 8, 60),
		session("s2", "addition", 1, 70, 10, 10, 30),
		session("s1", "matching", 1, 20, 4, 1, 20),
	}

	report, err := aggregate.AggregateForStudent("s1", sessions)
	require.NoError(t, err)

	assert.Equal(t, 70.0, report.TotalScore)
	assert.Equal(t, 2, report.TotalSessions)
	assert.InDelta(t, 100.0*9/14, report.Accuracy, 1e-9)

	empty, err := aggregate.AggregateForStudent("nobody", sessions)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalSessions)
	assert.Equal(t, 0.0, empty.Accuracy)
}

func TestAggregateForStudent_ValidatesWholeSnapshot(t *testing.T) {
	sessions := []models.GameSession{
		session("s1", "addition", 1, 50, 10, 8, 60),
		session("s2", "", 1, 70, 10, 10, 30),
	}

	_, err := aggregate.AggregateForStudent("s1", sessions)

	var mre *aggregate.MalformedRecordError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, 1, mre.Index)
}

func TestAggregateClass_CountsDistinctStudents(t *testing.T) {
	sessions := []models.GameSession{
		session("s1", "addition", 1, 10, 1, 1, 1),
		session("s2", "addition", 1, 10, 1, 1, 1),
		session("s3", "addition", 1, 10, 1, 1, 1),
		session("s1", "matching", 2, 10, 1, 1, 1),
		session("s2", "matching", 2, 10, 1, 1, 1),
		session("s1", "subtraction", 3, 10, 1, 1, 1),
	}

	report, err := aggregate.AggregateClass(sessions)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalStudents)
	assert.Equal(t, 6, report.TotalSessions)
	assert.Equal(t, 60.0, report.TotalScore)
}

func TestAggregateClass_Empty(t *testing.T) {
	report, err := aggregate.AggregateClass(nil)
	require.NoError(t, err)

	assert.Zero(t, report.TotalStudents)
	assert.Equal(t, 0.0, report.Accuracy)
	assert.Empty(t, report.Trends)
}

func TestDailyTrends(t *testing.T) {
	at := func(s models.GameSession, ts time.Time) models.GameSession {
		s.Timestamp = ts
		return s
	}
	sessions := []models.GameSession{
		at(session("s1", "addition", 1, 40, 10, 5, 30), now.Add(24*time.Hour)),
		at(session("s1", "addition", 1, 80, 10, 10, 30), now),
		at(session("s2", "addition", 1, 20, 10, 0, 30), now.Add(2*time.Hour)),
		// 23:30 at UTC-5 is the next UTC day
		at(session("s2", "matching", 1, 90, 4, 3, 30), time.Date(2024, 3, 1, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))),
	}

	trends := aggregate.DailyTrends(sessions)

	require.Len(t, trends, 2)
	assert.Equal(t, models.TrendPoint{Date: "2024-03-01", Sessions: 2, AverageScore: 50, Accuracy: 50}, trends[0])
	assert.Equal(t, "2024-03-02", trends[1].Date)
	assert.Equal(t, 2, trends[1].Sessions)
	assert.Equal(t, 65.0, trends[1].AverageScore)
	assert.InDelta(t, 100*8.0/14.0, trends[1].Accuracy, 1e-9)
}

func TestAggregateClass_IncludesTrends(t *testing.T) {
	report, err := aggregate.AggregateClass([]models.GameSession{
		session("s1", "addition", 1, 10, 2, 1, 5),
		session("s2", "addition", 1, 30, 2, 2, 5),
	})
	require.NoError(t, err)

	require.Len(t, report.Trends, 1)
	assert.Equal(t, "2024-03-01", report.Trends[0].Date)
	assert.Equal(t, 20.0, report.Trends[0].AverageScore)
	assert.Equal(t, 75.0, report.Trends[0].Accuracy)
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.0, aggregate.Accuracy(0, 0))
	assert.Equal(t, 0.0, aggregate.Accuracy(3, 0))
	assert.Equal(t, 50.0, aggregate.Accuracy(1, 2))
	assert.Equal(t, 100.0, aggregate.Accuracy(4, 4))
}
