package domain

import "strings"

type Stage string

const (
	StageTodo       Stage = "todo"
	StageInProgress Stage = "in-progress"
	StageCompleted  Stage = "completed"
	StageOverdue    Stage = "overdue"
)

// ParseStage accepts the canonical names plus the spellings older clients
// send ("in progress", "in_progress"), case-insensitively.
func ParseStage(value string) (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "todo":
		return StageTodo, nil
	case "in-progress", "in progress", "in_progress":
		return StageInProgress, nil
	case "completed":
		return StageCompleted, nil
	case "overdue":
		return StageOverdue, nil
	default:
		return "", ErrInvalidStage
	}
}

func (s Stage) Valid() bool {
	switch s {
	case StageTodo, StageInProgress, StageCompleted, StageOverdue:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every tier from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityNormal, PriorityLow}

func ParsePriority(value string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(value)))
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

func (p Priority) Valid() bool {
	return p.Rank() >= 0
}

// Rank orders tiers by urgency: low 0 … high 3. Unknown values rank -1.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityNormal:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return -1
}

type ActivityType string

const (
	ActivityAssigned   ActivityType = "assigned"
	ActivityStarted    ActivityType = "started"
	ActivityInProgress ActivityType = "in-progress"
	ActivityBug        ActivityType = "bug"
	ActivityCompleted  ActivityType = "completed"
	ActivityCommented  ActivityType = "commented"
)

func ParseActivityType(value string) (ActivityType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "assigned":
		return ActivityAssigned, nil
	case "started":
		return ActivityStarted, nil
	case "in-progress", "in progress", "in_progress":
		return ActivityInProgress, nil
	case "bug":
		return ActivityBug, nil
	case "completed":
		return ActivityCompleted, nil
	case "commented":
		return ActivityCommented, nil
	default:
		return "", ErrInvalidActivityType
	}
}

type TrashAction string

const (
	TrashActionDelete     TrashAction = "delete"
	TrashActionDeleteAll  TrashAction = "deleteAll"
	TrashActionRestore    TrashAction = "restore"
	TrashActionRestoreAll TrashAction = "restoreAll"
)

func ParseTrashAction(value string) (TrashAction, error) {
	switch a := TrashAction(strings.TrimSpace(value)); a {
	case TrashActionDelete, TrashActionDeleteAll, TrashActionRestore, TrashActionRestoreAll:
		return a, nil
	default:
		return "", ErrInvalidTrashAction
	}
}

// Bulk reports whether the action ignores the target id.
func (a TrashAction) Bulk() bool {
	return a == TrashActionDeleteAll || a == TrashActionRestoreAll
}
