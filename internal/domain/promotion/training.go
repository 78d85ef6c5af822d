package promotion

import (
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
)

type TrainingStatus string

const (
	TrainingUpcoming  TrainingStatus = "upcoming"
	TrainingCurrent   TrainingStatus = "current"
	TrainingCompleted TrainingStatus = "completed"
)

// StatusAt derives the assignment status at now. A training ending exactly now is still current.
func StatusAt(a record.TrainingAssignment, now time.Time) TrainingStatus {
	switch {
	case a.StartTime.After(now):
		return TrainingUpcoming
	case a.EndTime.Before(now):
		return TrainingCompleted
	default:
		return TrainingCurrent
	}
}

// Summarize counts assignments by derived status.
func Summarize(assignments []record.TrainingAssignment, now time.Time) TrainingSummary {
	var s TrainingSummary
	for _, a := range assignments {
		switch StatusAt(a, now) {
		case TrainingUpcoming:
			s.Upcoming++
		case TrainingCurrent:
			s.Current++
		case TrainingCompleted:
			s.Completed++
		}
	}
	return s
}
