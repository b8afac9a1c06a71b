package domain

import "time"

// TrashedSubtask is a trashed subtask lifted out of its parent so it can be
// restored without walking the task hierarchy.
type TrashedSubtask struct {
	Subtask
	TaskID    string
	TaskTitle string
}

// Trash soft-deletes the task. It reports whether anything changed.
func (t *Task) Trash() bool {
	if t.IsTrashed {
		return false
	}
	t.IsTrashed = true
	return true
}

func (t *Task) Restore() bool {
	if !t.IsTrashed {
		return false
	}
	t.IsTrashed = false
	return true
}

// TrashSubtask soft-deletes one subtask. Trashed subtasks no longer count
// toward the task's completion.
func (t *Task) TrashSubtask(id string, now time.Time) (bool, error) {
	return t.setSubtaskTrashed(id, true, now)
}

func (t *Task) RestoreSubtask(id string, now time.Time) (bool, error) {
	return t.setSubtaskTrashed(id, false, now)
}

func (t *Task) setSubtaskTrashed(id string, trashed bool, now time.Time) (bool, error) {
	i := t.subtaskIndex(id)
	if i < 0 {
		return false, ErrSubtaskNotFound
	}
	if t.Subtasks[i].IsTrashed == trashed {
		return false, nil
	}
	t.Subtasks[i].IsTrashed = trashed
	t.Reconcile(now)
	return true, nil
}

// PurgeSubtask hard-deletes a subtask as part of the trash lifecycle. On a
// locked task only subtasks already in the trash can be purged.
func (t *Task) PurgeSubtask(id string, now time.Time) error {
	i := t.subtaskIndex(id)
	if i < 0 {
		return ErrSubtaskNotFound
	}
	if !t.Subtasks[i].IsTrashed && t.IsLocked(now) {
		return ErrTaskLocked
	}
	return t.purgeSubtask(id, now)
}

// PurgeTrashedSubtasks hard-deletes every trashed subtask and returns how many went.
func (t *Task) PurgeTrashedSubtasks(now time.Time) int {
	kept := t.Subtasks[:0]
	removed := 0
	for _, s := range t.Subtasks {
		if s.IsTrashed {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	t.Subtasks = kept
	if removed > 0 {
		t.reindex()
		t.Reconcile(now)
	}
	return removed
}

func (t *Task) RestoreTrashedSubtasks(now time.Time) int {
	restored := 0
	for i := range t.Subtasks {
		if t.Subtasks[i].IsTrashed {
			t.Subtasks[i].IsTrashed = false
			restored++
		}
	}
	if restored > 0 {
		t.Reconcile(now)
	}
	return restored
}

func (t *Task) TrashedSubtasks() []TrashedSubtask {
	var out []TrashedSubtask
	for _, s := range t.Subtasks {
		if s.IsTrashed {
			out = append(out, TrashedSubtask{Subtask: s.clone(), TaskID: t.ID, TaskTitle: t.Title})
		}
	}
	return out
}

// CollectTrashedSubtasks gathers the trashed subtasks of all tasks in order.
func CollectTrashedSubtasks(tasks []Task) []TrashedSubtask {
	out := make([]TrashedSubtask, 0)
	for i := range tasks {
		out = append(out, tasks[i].TrashedSubtasks()...)
	}
	return out
}
