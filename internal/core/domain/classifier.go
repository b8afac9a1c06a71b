package domain

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// Classification is the time-derived view of a deadline at a given instant.
// It is never persisted: the same deadline classifies differently an hour later.
type Classification struct {
	DaysRemaining int
	Priority      Priority
	Overdue       bool
}

// DaysRemaining is ceil((deadline - now) / 1 day); negative once the deadline passed.
func DaysRemaining(deadline, now time.Time) int {
	return int(math.Ceil(float64(deadline.Sub(now)) / float64(day)))
}

// ClassifyPriority maps time-to-deadline onto a tier:
// <=2 days high, 3-7 medium, 8-15 normal, otherwise (or no deadline) low.
func ClassifyPriority(deadline, now time.Time) Priority {
	if deadline.IsZero() {
		return PriorityLow
	}
	switch days := DaysRemaining(deadline, now); {
	case days <= 2:
		return PriorityHigh
	case days <= 7:
		return PriorityMedium
	case days <= 15:
		return PriorityNormal
	default:
		return PriorityLow
	}
}

// IsOverdue is true when the deadline has passed and the work is not completed.
func IsOverdue(deadline, now time.Time, stage Stage) bool {
	return stage != StageCompleted && !deadline.IsZero() && deadline.Before(now)
}

// EffectiveStage is the stage a reader should see: overdue wins over any
// non-completed stored stage once the deadline has passed.
func EffectiveStage(stage Stage, deadline, now time.Time) Stage {
	if IsOverdue(deadline, now, stage) {
		return StageOverdue
	}
	return stage
}

func Classify(deadline, now time.Time, stage Stage) Classification {
	c := Classification{
		Priority: ClassifyPriority(deadline, now),
		Overdue:  IsOverdue(deadline, now, stage),
	}
	if !deadline.IsZero() {
		c.DaysRemaining = DaysRemaining(deadline, now)
	}
	return c
}
