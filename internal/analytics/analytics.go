// Package analytics aggregates scores for the dashboard and analytics views.
package analytics

import (
	"sort"
	"time"

	"github.com/gradewise-dev/gradewise/internal/models"
)

// SubjectAverage is the mean score of one subject.
type SubjectAverage struct {
	SubjectID uint    `json:"subjectId"`
	Name      string  `json:"name"`
	Average   float64 `json:"average"`
	Count     int     `json:"count"`
}

// TrendPoint is one score in a subject's history.
type TrendPoint struct {
	ScoreID        uint      `json:"scoreId"`
	AssignmentName string    `json:"assignmentName"`
	Value          float64   `json:"value"`
	Date           time.Time `json:"date"`
}

// SubjectAverages returns one entry per subject, in subject order. Subjects without scores
// average 0.
func SubjectAverages(subjects []models.Subject, scores []models.Score) []SubjectAverage {
	sums := make(map[uint]float64, len(subjects))
	counts := make(map[uint]int, len(subjects))

	for _, score := range scores {
		sums[score.SubjectID] += score.Value
		counts[score.SubjectID]++
	}

	averages := make([]SubjectAverage, 0, len(subjects))
	for _, subject := range subjects {
		avg := SubjectAverage{SubjectID: subject.ID, Name: subject.Name, Count: counts[subject.ID]}
		if avg.Count > 0 {
			avg.Average = sums[subject.ID] / float64(avg.Count)
		}
		averages = append(averages, avg)
	}

	return averages
}

// Trend returns the scores of one subject ordered by date, then id.
func Trend(scores []models.Score, subjectID uint) []TrendPoint {
	points := []TrendPoint{}

	for _, score := range scores {
		if score.SubjectID != subjectID {
			continue
		}
		points = append(points, TrendPoint{
			ScoreID:        score.ID,
			AssignmentName: score.AssignmentName,
			Value:          score.Value,
			Date:           time.Time(score.Date),
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		if !points[i].Date.Equal(points[j].Date) {
			return points[i].Date.Before(points[j].Date)
		}
		return points[i].ScoreID < points[j].ScoreID
	})

	return points
}

// Trends returns Trend for every subject, keyed by subject id.
func Trends(subjects []models.Subject, scores []models.Score) map[uint][]TrendPoint {
	trends := make(map[uint][]TrendPoint, len(subjects))
	for _, subject := range subjects {
		trends[subject.ID] = Trend(scores, subject.ID)
	}
	return trends
}

// OverallAverage is the mean of all scores, or 0 with ok=false when there are none.
func OverallAverage(scores []models.Score) (avg float64, ok bool) {
	if len(scores) == 0 {
		return 0, false
	}

	var sum float64
	for _, score := range scores {
		sum += score.Value
	}

	return sum / float64(len(scores)), true
}

// RecentGoals returns at most n goals in store order.
func RecentGoals(goals []models.Goal, n int) []models.Goal {
	if n < 0 {
		n = 0
	}
	if len(goals) <= n {
		return goals
	}
	return goals[:n]
}
