package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID         string
	Name       string
	Path       string
	UploadedAt time.Time
}

// Task is the aggregate root. Subtasks live inside it and are addressed
// through the task's own index; callers get copies, never pointers into it.
type Task struct {
	ID         string
	Title      string
	Deadline   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Stage      Stage
	Team       []string
	Subtasks   []Subtask
	Documents  []Document
	Activities []Activity
	IsTrashed  bool
	// Version is bumped by the repository on every successful save.
	Version int64

	index map[string]int
}

type CreateTaskInput struct {
	Title    string
	Team     []string
	Stage    Stage
	Deadline time.Time
	// Assets are storage paths of documents uploaded before the task existed.
	Assets []string
}

type UpdateTaskInput struct {
	Title    *string
	Deadline *time.Time
	Team     []string
	TeamSet  bool
	Stage    *Stage
}

// NewID returns a fresh identifier for tasks, subtasks and documents.
func NewID() string {
	return uuid.NewString()
}

// NewTask validates the input and builds a task. A deadline already in the
// past forces the stage to overdue unless the task is created completed.
func NewTask(in CreateTaskInput, authorID string, now time.Time) (Task, error) {
	title := strings.TrimSpace(in.Title)
	team := UniqueIDs(in.Team)
	if title == "" || len(team) == 0 || in.Deadline.IsZero() || !in.Stage.Valid() {
		return Task{}, ErrInvalidTaskPayload
	}

	task := Task{
		ID:        NewID(),
		Title:     title,
		Deadline:  in.Deadline,
		CreatedAt: now,
		UpdatedAt: now,
		Stage:     in.Stage,
		Team:      team,
		Activities: []Activity{{
			Type:     ActivityAssigned,
			Text:     "Task created",
			AuthorID: authorID,
			At:       now,
		}},
	}
	for _, asset := range in.Assets {
		asset = strings.TrimSpace(asset)
		if asset == "" {
			continue
		}
		task.Documents = append(task.Documents, Document{
			ID:         NewID(),
			Name:       documentName(asset),
			Path:       asset,
			UploadedAt: now,
		})
	}
	task.Reconcile(now)
	return task, nil
}

// IsLocked: the deadline has passed and the task is not completed.
func (t *Task) IsLocked(now time.Time) bool {
	return IsOverdue(t.Deadline, now, t.Stage)
}

func (t *Task) Priority(now time.Time) Priority {
	return ClassifyPriority(t.Deadline, now)
}

func (t *Task) EffectiveStage(now time.Time) Stage {
	return EffectiveStage(t.Stage, t.Deadline, now)
}

func (t *Task) HasTeamMember(userID string) bool {
	return slices.Contains(t.Team, userID)
}

// Subtask returns a copy of the subtask with the given id.
func (t *Task) Subtask(id string) (Subtask, bool) {
	i := t.subtaskIndex(id)
	if i < 0 {
		return Subtask{}, false
	}
	return t.Subtasks[i].clone(), true
}

func (t *Task) ActiveSubtasks() []Subtask {
	out := make([]Subtask, 0, len(t.Subtasks))
	for _, s := range t.Subtasks {
		if !s.IsTrashed {
			out = append(out, s)
		}
	}
	return out
}

// SubtasksWithPriority annotates the active subtasks with derived state.
func (t *Task) SubtasksWithPriority(now time.Time) []SubtaskView {
	active := t.ActiveSubtasks()
	out := make([]SubtaskView, 0, len(active))
	for _, s := range active {
		out = append(out, s.View(now))
	}
	return out
}

func (t *Task) Document(id string) (Document, bool) {
	for _, d := range t.Documents {
		if d.ID == id {
			return d, true
		}
	}
	return Document{}, false
}

// MemberIDs lists every user referenced by the aggregate, team first.
func (t *Task) MemberIDs() []string {
	ids := slices.Clone(t.Team)
	for _, s := range t.Subtasks {
		ids = append(ids, s.Members...)
		for _, a := range s.Activities {
			ids = append(ids, a.AuthorID)
		}
	}
	for _, a := range t.Activities {
		ids = append(ids, a.AuthorID)
	}
	return UniqueIDs(ids)
}

// Duplicate copies the task under fresh ids. Trashed subtasks and documents
// are not carried over; blobs belong to exactly one task.
func (t *Task) Duplicate(now time.Time) Task {
	dup := Task{
		ID:        NewID(),
		Title:     t.Title + " - Duplicate",
		Deadline:  t.Deadline,
		CreatedAt: now,
		UpdatedAt: now,
		Stage:     t.Stage,
		Team:      slices.Clone(t.Team),
		Activities: []Activity{{
			Type: ActivityAssigned,
			Text: "Task duplicated from " + t.ID,
			At:   now,
		}},
	}
	for _, s := range t.ActiveSubtasks() {
		c := s.clone()
		c.ID = NewID()
		dup.Subtasks = append(dup.Subtasks, c)
	}
	dup.reindex()
	dup.Reconcile(now)
	return dup
}

func (t *Task) subtaskIndex(id string) int {
	if i, ok := t.index[id]; ok && i < len(t.Subtasks) && t.Subtasks[i].ID == id {
		return i
	}
	t.reindex()
	if i, ok := t.index[id]; ok {
		return i
	}
	return -1
}

func (t *Task) reindex() {
	t.index = make(map[string]int, len(t.Subtasks))
	for i, s := range t.Subtasks {
		t.index[s.ID] = i
	}
}

// filterTeam keeps the ids that belong to the team, without duplicates.
func (t *Task) filterTeam(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range UniqueIDs(ids) {
		if t.HasTeamMember(id) {
			out = append(out, id)
		}
	}
	return out
}

// UniqueIDs trims, drops empties and collapses duplicates, keeping first-seen order.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sameIDSet(a, b []string) bool {
	a, b = UniqueIDs(a), UniqueIDs(b)
	if len(a) != len(b) {
		return false
	}
	for _, id := range a {
		if !slices.Contains(b, id) {
			return false
		}
	}
	return true
}

func documentName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// AttachDocuments records documents already written to the blob store.
func (t *Task) AttachDocuments(docs []Document, now time.Time) {
	t.Documents = append(t.Documents, docs...)
	t.UpdatedAt = now
}

func (t *Task) RemoveDocument(id string, now time.Time) (Document, error) {
	for i, d := range t.Documents {
		if d.ID == id {
			t.Documents = slices.Delete(t.Documents, i, i+1)
			t.UpdatedAt = now
			return d, nil
		}
	}
	return Document{}, ErrDocumentNotFound
}
