package domain

import (
	"slices"
	"time"
)

type Activity struct {
	Type     ActivityType
	Text     string
	AuthorID string
	At       time.Time
}

// Subtask is owned by exactly one Task and is only mutated through it.
type Subtask struct {
	ID        string
	Title     string
	Tag       string
	Deadline  time.Time
	CreatedAt time.Time
	// Priority is what the client asked for. Business rules use the derived tier.
	Priority   Priority
	Members    []string
	Stage      Stage
	IsTrashed  bool
	Activities []Activity
}

func (s Subtask) Classify(now time.Time) Classification {
	return Classify(s.Deadline, now, s.Stage)
}

func (s Subtask) EffectivePriority(now time.Time) Priority {
	return ClassifyPriority(s.Deadline, now)
}

func (s Subtask) EffectiveStage(now time.Time) Stage {
	return EffectiveStage(s.Stage, s.Deadline, now)
}

func (s Subtask) HasMember(userID string) bool {
	return slices.Contains(s.Members, userID)
}

func (s Subtask) HasActivity() bool {
	return len(s.Activities) > 0
}

// stageFromActivity is the stage a revived subtask falls back to.
func (s Subtask) stageFromActivity() Stage {
	if s.HasActivity() {
		return StageInProgress
	}
	return StageTodo
}

func (s *Subtask) settle(now time.Time) {
	if IsOverdue(s.Deadline, now, s.Stage) {
		s.Stage = StageOverdue
	}
}

func (s Subtask) clone() Subtask {
	s.Members = slices.Clone(s.Members)
	s.Activities = slices.Clone(s.Activities)
	return s
}

// SubtaskView is a subtask annotated with its derived state at one instant.
type SubtaskView struct {
	Subtask
	DerivedPriority Priority
	EffectiveStage  Stage
	DaysRemaining   int
}

func (s Subtask) View(now time.Time) SubtaskView {
	c := s.Classify(now)
	return SubtaskView{
		Subtask:         s,
		DerivedPriority: c.Priority,
		EffectiveStage:  s.EffectiveStage(now),
		DaysRemaining:   c.DaysRemaining,
	}
}
