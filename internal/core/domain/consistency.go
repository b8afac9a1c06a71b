package domain

import (
	"slices"
	"strings"
	"time"
)

type CreateSubtaskInput struct {
	Title    string
	Tag      string
	Deadline time.Time
	Members  []string
	// Priority is stored as given; empty means low.
	Priority Priority
}

type UpdateSubtaskInput struct {
	Title      *string
	Tag        *string
	Deadline   *time.Time
	Members    []string
	MembersSet bool
	Priority   *Priority
	// PreviousStage is the stage the client last displayed. It lets an overdue
	// subtask whose deadline moved into the future leave the overdue state.
	PreviousStage *Stage
}

type PostActivityInput struct {
	SubtaskID string
	Type      ActivityType
	Text      string
	AuthorID  string
}

// Reconcile re-derives the stored stages from the clock and the subtask
// collection. Every write path runs it before the aggregate is persisted.
func (t *Task) Reconcile(now time.Time) {
	for i := range t.Subtasks {
		t.Subtasks[i].settle(now)
	}
	t.rollup()
	t.settle(now)
	t.UpdatedAt = now
}

// rollup keeps "completed" equivalent to "every active subtask completed".
func (t *Task) rollup() {
	active, done := t.progress()
	switch {
	case active > 0 && done == active:
		t.Stage = StageCompleted
	case t.Stage == StageCompleted && done < active:
		t.Stage = StageInProgress
	}
}

func (t *Task) settle(now time.Time) {
	switch {
	case IsOverdue(t.Deadline, now, t.Stage):
		t.Stage = StageOverdue
	case t.Stage == StageOverdue:
		t.Stage = t.stageFromProgress()
	}
}

func (t *Task) progress() (active, done int) {
	for _, s := range t.Subtasks {
		if s.IsTrashed {
			continue
		}
		active++
		if s.Stage == StageCompleted {
			done++
		}
	}
	return active, done
}

func (t *Task) hasOpenSubtasks() bool {
	active, done := t.progress()
	return done < active
}

func (t *Task) stageFromProgress() Stage {
	for _, s := range t.ActiveSubtasks() {
		if s.HasActivity() || s.Stage != StageTodo {
			return StageInProgress
		}
	}
	return StageTodo
}

func (t *Task) latestSubtaskDeadline() time.Time {
	var latest time.Time
	for _, s := range t.Subtasks {
		if s.Deadline.After(latest) {
			latest = s.Deadline
		}
	}
	return latest
}

// ApplyUpdate applies a partial update. A locked task only accepts a deadline
// extension, optionally together with a move to in-progress or completed.
// Nothing is modified when an error is returned.
func (t *Task) ApplyUpdate(in UpdateTaskInput, now time.Time) error {
	if t.IsLocked(now) {
		return t.applyLockedUpdate(in, now)
	}

	title := t.Title
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
		if title == "" {
			return ErrInvalidTaskPayload
		}
	}

	deadline := t.Deadline
	if in.Deadline != nil {
		if in.Deadline.IsZero() {
			return ErrInvalidTaskPayload
		}
		deadline = *in.Deadline
	}
	if deadline.Before(t.latestSubtaskDeadline()) {
		return ErrTaskDeadlineBeforeSubtask
	}

	team := t.Team
	if in.TeamSet {
		team = UniqueIDs(in.Team)
		if len(team) == 0 {
			return ErrInvalidTaskPayload
		}
	}

	stage := t.Stage
	if in.Stage != nil {
		if !in.Stage.Valid() {
			return ErrInvalidStage
		}
		stage = *in.Stage
	}
	if stage == StageCompleted && t.hasOpenSubtasks() {
		return ErrOpenSubtasks
	}

	t.Title = title
	t.Deadline = deadline
	t.Team = team
	t.Stage = stage
	if in.TeamSet {
		t.pruneMembers()
	}
	t.Reconcile(now)
	return nil
}

func (t *Task) applyLockedUpdate(in UpdateTaskInput, now time.Time) error {
	if in.Deadline == nil || !in.Deadline.After(t.Deadline) {
		return ErrTaskLocked
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) != t.Title {
		return ErrTaskLocked
	}
	if in.TeamSet && !sameIDSet(in.Team, t.Team) {
		return ErrTaskLocked
	}

	stage := t.Stage
	if in.Stage != nil && *in.Stage != t.Stage {
		switch *in.Stage {
		case StageInProgress:
		case StageCompleted:
			if t.hasOpenSubtasks() {
				return ErrOpenSubtasks
			}
		default:
			return ErrTaskLocked
		}
		stage = *in.Stage
	}

	t.Deadline = *in.Deadline
	t.Stage = stage
	t.Reconcile(now)
	return nil
}

// pruneMembers drops subtask members that are no longer on the team.
func (t *Task) pruneMembers() {
	for i := range t.Subtasks {
		t.Subtasks[i].Members = t.filterTeam(t.Subtasks[i].Members)
	}
}

// AddSubtask appends a subtask. Members outside the team are silently
// dropped. A completed task goes back to in-progress.
func (t *Task) AddSubtask(in CreateSubtaskInput, now time.Time) (Subtask, error) {
	if t.IsLocked(now) {
		return Subtask{}, ErrTaskLocked
	}
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Deadline.IsZero() {
		return Subtask{}, ErrInvalidSubtaskPayload
	}
	if in.Deadline.After(t.Deadline) {
		return Subtask{}, ErrSubtaskDeadlineExceedsTask
	}
	priority := in.Priority
	if priority == "" {
		priority = PriorityLow
	}
	if !priority.Valid() {
		return Subtask{}, ErrInvalidPriority
	}

	sub := Subtask{
		ID:        NewID(),
		Title:     title,
		Tag:       strings.TrimSpace(in.Tag),
		Deadline:  in.Deadline,
		CreatedAt: now,
		Priority:  priority,
		Members:   t.filterTeam(in.Members),
		Stage:     StageTodo,
	}
	if t.Stage == StageCompleted {
		t.Stage = StageInProgress
	}
	t.Subtasks = append(t.Subtasks, sub)
	t.reindex()
	t.Reconcile(now)

	added, _ := t.Subtask(sub.ID)
	return added, nil
}

// UpdateSubtask applies a partial update to one subtask. Moving the deadline
// later, or out of an overdue state the client saw as something else,
// recomputes the stage from the activity log. Completed subtasks keep
// their stage.
func (t *Task) UpdateSubtask(id string, in UpdateSubtaskInput, now time.Time) (Subtask, error) {
	if t.IsLocked(now) {
		return Subtask{}, ErrTaskLocked
	}
	i := t.subtaskIndex(id)
	if i < 0 {
		return Subtask{}, ErrSubtaskNotFound
	}

	sub := t.Subtasks[i].clone()
	wasOverdue := sub.EffectiveStage(now) == StageOverdue
	oldDeadline := sub.Deadline

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return Subtask{}, ErrInvalidSubtaskPayload
		}
		sub.Title = title
	}
	if in.Tag != nil {
		sub.Tag = strings.TrimSpace(*in.Tag)
	}
	if in.Deadline != nil {
		if in.Deadline.IsZero() {
			return Subtask{}, ErrInvalidSubtaskPayload
		}
		if in.Deadline.After(t.Deadline) {
			return Subtask{}, ErrSubtaskDeadlineExceedsTask
		}
		sub.Deadline = *in.Deadline
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return Subtask{}, ErrInvalidPriority
		}
		sub.Priority = *in.Priority
	}
	if in.PreviousStage != nil && !in.PreviousStage.Valid() {
		return Subtask{}, ErrInvalidStage
	}
	if in.MembersSet {
		sub.Members = t.filterTeam(in.Members)
	}

	if in.Deadline != nil && sub.Stage != StageCompleted {
		extended := in.Deadline.After(oldDeadline)
		revived := wasOverdue && in.Deadline.After(now) &&
			in.PreviousStage != nil && *in.PreviousStage != StageOverdue
		if extended || revived {
			sub.Stage = sub.stageFromActivity()
		}
	}

	t.Subtasks[i] = sub
	t.Reconcile(now)
	return t.Subtasks[i].clone(), nil
}

// RecordActivity appends an activity authored by one of the subtask's
// members and advances the subtask and task stages accordingly.
func (t *Task) RecordActivity(in PostActivityInput, now time.Time) (Subtask, error) {
	i := t.subtaskIndex(in.SubtaskID)
	if i < 0 || t.Subtasks[i].IsTrashed {
		return Subtask{}, ErrSubtaskNotFound
	}
	if _, err := ParseActivityType(string(in.Type)); err != nil {
		return Subtask{}, err
	}
	sub := &t.Subtasks[i]
	if !sub.HasMember(in.AuthorID) {
		return Subtask{}, ErrNotSubtaskMember
	}

	sub.Activities = append(sub.Activities, Activity{
		Type:     in.Type,
		Text:     strings.TrimSpace(in.Text),
		AuthorID: in.AuthorID,
		At:       now,
	})
	switch {
	case in.Type == ActivityCompleted:
		sub.Stage = StageCompleted
	case sub.Stage == StageTodo:
		sub.Stage = StageInProgress
	}
	sub.settle(now)

	if t.Stage == StageTodo && t.hasOpenSubtasks() {
		t.Stage = StageInProgress
	}
	t.Reconcile(now)
	return t.Subtasks[i].clone(), nil
}

// RemoveSubtask hard-deletes a subtask. When every remaining subtask is
// completed the task is promoted to completed.
func (t *Task) RemoveSubtask(id string, now time.Time) error {
	if t.IsLocked(now) {
		return ErrTaskLocked
	}
	return t.purgeSubtask(id, now)
}

func (t *Task) purgeSubtask(id string, now time.Time) error {
	i := t.subtaskIndex(id)
	if i < 0 {
		return ErrSubtaskNotFound
	}
	t.Subtasks = slices.Delete(t.Subtasks, i, i+1)
	t.reindex()
	t.Reconcile(now)
	return nil
}

// BackfillHighPriority copies the members of low-priority subtasks into every
// high-priority subtask that is still open. Only team members are copied.
// It returns the number of assignments made.
func (t *Task) BackfillHighPriority(now time.Time) int {
	var pool []string
	for _, s := range t.ActiveSubtasks() {
		if s.EffectivePriority(now) == PriorityLow {
			pool = append(pool, s.Members...)
		}
	}
	pool = t.filterTeam(pool)
	if len(pool) == 0 {
		return 0
	}

	assigned := 0
	for i := range t.Subtasks {
		s := &t.Subtasks[i]
		if s.IsTrashed || s.Stage == StageCompleted || s.EffectivePriority(now) != PriorityHigh {
			continue
		}
		for _, m := range pool {
			if !s.HasMember(m) {
				s.Members = append(s.Members, m)
				assigned++
			}
		}
	}
	return assigned
}
