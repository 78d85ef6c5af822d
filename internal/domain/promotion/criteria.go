package promotion

import (
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
)

// Snapshot is the employee's current state that readiness criteria are evaluated against.
type Snapshot struct {
	Employee        record.Employee
	LatestKPI       *record.KPIRecord
	LatestPromotion *record.PromotionRecord
	Trainings       []record.TrainingAssignment
	Now             time.Time
}

// PositionStart is the start of the current position: the latest promotion date, falling back to
// the hire date for employees never promoted. ok is false when neither is on record.
func (s Snapshot) PositionStart() (start time.Time, ok bool) {
	if s.LatestPromotion != nil {
		return s.LatestPromotion.PromotionDate, true
	}
	if s.Employee.HireDate != nil {
		return *s.Employee.HireDate, true
	}
	return time.Time{}, false
}

// CurrentPosition is the latest promotion's new position, or the employee record's position without history.
func (s Snapshot) CurrentPosition() string {
	if s.LatestPromotion != nil && s.LatestPromotion.NewPosition != "" {
		return s.LatestPromotion.NewPosition
	}
	return s.Employee.Position
}

// Criterion is one independent readiness predicate.
type Criterion struct {
	Category    string
	Requirement string
	Evaluate    func(s Snapshot) (currentStatus string, met bool)
}

type Thresholds struct {
	MinKPI                float64
	MinTenureMonths       int
	MinCompletedTrainings int
}

func DefaultThresholds() Thresholds {
	return Thresholds{MinKPI: 75, MinTenureMonths: 12, MinCompletedTrainings: 2}
}

// DefaultCriteria returns the standard promotion checklist.
func DefaultCriteria(t Thresholds) []Criterion {
	return []Criterion{
		PerformanceCriterion(t.MinKPI),
		TenureCriterion(t.MinTenureMonths),
		TrainingCriterion(t.MinCompletedTrainings),
		LeadershipCriterion(),
	}
}

func PerformanceCriterion(minKPI float64) Criterion {
	return Criterion{
		Category:    "Performance",
		Requirement: fmt.Sprintf("Current KPI of at least %g", minKPI),
		Evaluate: func(s Snapshot) (string, bool) {
			if s.LatestKPI == nil {
				return "Not rated", false
			}
			return fmt.Sprintf("KPI %g (%s)", s.LatestKPI.Value, s.LatestKPI.Rank), s.LatestKPI.Value >= minKPI
		},
	}
}

func TenureCriterion(minMonths int) Criterion {
	return Criterion{
		Category:    "Tenure",
		Requirement: fmt.Sprintf("At least %d months in current position", minMonths),
		Evaluate: func(s Snapshot) (string, bool) {
			start, ok := s.PositionStart()
			if !ok {
				return "No position start date on record", false
			}
			months := MonthsBetween(start, s.Now)
			return fmt.Sprintf("%d months in position", months), months >= minMonths
		},
	}
}

func TrainingCriterion(minCompleted int) Criterion {
	return Criterion{
		Category:    "Training",
		Requirement: fmt.Sprintf("At least %d completed trainings", minCompleted),
		Evaluate: func(s Snapshot) (string, bool) {
			completed := Summarize(s.Trainings, s.Now).Completed
			return fmt.Sprintf("%d completed", completed), completed >= minCompleted
		},
	}
}

func LeadershipCriterion() Criterion {
	return Criterion{
		Category:    "Leadership",
		Requirement: "Recognised leadership responsibility",
		Evaluate: func(s Snapshot) (string, bool) {
			if s.Employee.LeadershipFlag {
				return "Leadership responsibility on record", true
			}
			return "No leadership responsibility on record", false
		},
	}
}

// Evaluate runs every criterion against the snapshot.
func Evaluate(criteria []Criterion, s Snapshot) Readiness {
	results := make([]CriterionResult, 0, len(criteria))
	met := 0
	for _, c := range criteria {
		status, ok := c.Evaluate(s)
		if ok {
			met++
		}
		results = append(results, CriterionResult{
			Category:      c.Category,
			Requirement:   c.Requirement,
			CurrentStatus: status,
			Met:           ok,
		})
	}

	var percent float64
	if len(criteria) > 0 {
		percent = math.Round(float64(met)/float64(len(criteria))*100*100) / 100
	}
	return Readiness{Criteria: results, MetCount: met, TotalCount: len(criteria), PercentMet: percent}
}

// MonthsBetween counts whole calendar months elapsed from start to end.
func MonthsBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return max(months, 0)
}
