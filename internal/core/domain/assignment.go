package domain

import (
	"slices"
	"time"
)

// AssignmentResult summarises a backfill run over high-priority subtasks.
type AssignmentResult struct {
	Candidates []string
	// Assigned maps subtask id to the members added to it.
	Assigned map[string][]string
}

func (r AssignmentResult) Total() int {
	n := 0
	for _, m := range r.Assigned {
		n += len(m)
	}
	return n
}

// AutoAssignFromLowerPriority adds to the target subtask every member of a
// sibling subtask whose derived priority is below high.
func (t *Task) AutoAssignFromLowerPriority(subtaskID string, now time.Time) ([]string, error) {
	if t.IsLocked(now) {
		return nil, ErrTaskLocked
	}
	i := t.subtaskIndex(subtaskID)
	if i < 0 || t.Subtasks[i].IsTrashed {
		return nil, ErrSubtaskNotFound
	}

	var pool []string
	for j, s := range t.Subtasks {
		if j == i || s.IsTrashed || s.EffectivePriority(now) == PriorityHigh {
			continue
		}
		pool = append(pool, s.Members...)
	}

	target := &t.Subtasks[i]
	var added []string
	for _, m := range t.filterTeam(pool) {
		if !target.HasMember(m) {
			added = append(added, m)
		}
	}
	if len(added) == 0 {
		return nil, ErrNoCandidateMembers
	}
	target.Members = append(target.Members, added...)
	t.UpdatedAt = now
	return added, nil
}

// AssignFreeMembersToHighPriority pulls in team members who are unassigned,
// stuck only on overdue work, or only on completed work, and adds them to
// every high-priority subtask. It never removes a member.
func (t *Task) AssignFreeMembersToHighPriority(now time.Time) (AssignmentResult, error) {
	if t.IsLocked(now) {
		return AssignmentResult{}, ErrTaskLocked
	}
	result := AssignmentResult{Assigned: map[string][]string{}}

	type load struct{ open, overdue, completed int }
	loads := map[string]*load{}
	for _, s := range t.ActiveSubtasks() {
		stage := s.EffectiveStage(now)
		for _, m := range UniqueIDs(s.Members) {
			l, ok := loads[m]
			if !ok {
				l = &load{}
				loads[m] = l
			}
			switch stage {
			case StageCompleted:
				l.completed++
			case StageOverdue:
				l.overdue++
			default:
				l.open++
			}
		}
	}

	for _, m := range t.Team {
		l, ok := loads[m]
		switch {
		case !ok:
			result.Candidates = append(result.Candidates, m)
		case l.open == 0 && l.completed == 0 && l.overdue > 0:
			result.Candidates = append(result.Candidates, m)
		case l.open == 0 && l.overdue == 0 && l.completed > 0:
			result.Candidates = append(result.Candidates, m)
		}
	}
	if len(result.Candidates) == 0 {
		return result, nil
	}

	for i := range t.Subtasks {
		s := &t.Subtasks[i]
		if s.IsTrashed || s.EffectivePriority(now) != PriorityHigh {
			continue
		}
		for _, m := range result.Candidates {
			if slices.Contains(s.Members, m) {
				continue
			}
			s.Members = append(s.Members, m)
			result.Assigned[s.ID] = append(result.Assigned[s.ID], m)
		}
	}
	if result.Total() > 0 {
		t.UpdatedAt = now
	}
	return result, nil
}
