package db

import (
	"encoding/json"
	"fmt"
	"time"

	"taskmanager/internal/core/domain"
)

type subtaskDoc struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Tag        string        `json:"tag,omitempty"`
	Deadline   time.Time     `json:"deadline"`
	CreatedAt  time.Time     `json:"createdAt"`
	Priority   string        `json:"priority"`
	Members    []string      `json:"members"`
	Stage      string        `json:"stage"`
	IsTrashed  bool          `json:"isTrashed"`
	Activities []activityDoc `json:"activities"`
}

type activityDoc struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	AuthorID string    `json:"by,omitempty"`
	At       time.Time `json:"date"`
}

type documentDoc struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func mapDomainTaskToRow(task domain.Task) (taskRow, error) {
	subtasks := make([]subtaskDoc, 0, len(task.Subtasks))
	for _, s := range task.Subtasks {
		subtasks = append(subtasks, subtaskDoc{
			ID:         s.ID,
			Title:      s.Title,
			Tag:        s.Tag,
			Deadline:   s.Deadline.UTC(),
			CreatedAt:  s.CreatedAt.UTC(),
			Priority:   string(s.Priority),
			Members:    nonNil(s.Members),
			Stage:      string(s.Stage),
			IsTrashed:  s.IsTrashed,
			Activities: activityDocs(s.Activities),
		})
	}
	documents := make([]documentDoc, 0, len(task.Documents))
	for _, d := range task.Documents {
		documents = append(documents, documentDoc{
			ID:         d.ID,
			Name:       d.Name,
			Path:       d.Path,
			UploadedAt: d.UploadedAt.UTC(),
		})
	}

	row := taskRow{
		ID:        task.ID,
		Title:     task.Title,
		Stage:     string(task.Stage),
		Deadline:  task.Deadline.UTC(),
		CreatedAt: task.CreatedAt.UTC(),
		UpdatedAt: task.UpdatedAt.UTC(),
		IsTrashed: task.IsTrashed,
		Version:   task.Version,
	}
	var err error
	if row.Team, err = encode(nonNil(task.Team)); err != nil {
		return taskRow{}, fmt.Errorf("encode team: %w", err)
	}
	if row.Subtasks, err = encode(subtasks); err != nil {
		return taskRow{}, fmt.Errorf("encode subtasks: %w", err)
	}
	if row.Documents, err = encode(documents); err != nil {
		return taskRow{}, fmt.Errorf("encode documents: %w", err)
	}
	if row.Activities, err = encode(activityDocs(task.Activities)); err != nil {
		return taskRow{}, fmt.Errorf("encode activities: %w", err)
	}
	return row, nil
}

func mapTaskRowToDomainTask(row taskRow) (domain.Task, error) {
	task := domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Stage:     domain.Stage(row.Stage),
		Deadline:  row.Deadline.UTC(),
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
		IsTrashed: row.IsTrashed,
		Version:   row.Version,
	}

	var (
		subtasks   []subtaskDoc
		documents  []documentDoc
		activities []activityDoc
	)
	if err := decode(row.Team, &task.Team); err != nil {
		return domain.Task{}, fmt.Errorf("decode team of task %s: %w", row.ID, err)
	}
	if err := decode(row.Subtasks, &subtasks); err != nil {
		return domain.Task{}, fmt.Errorf("decode subtasks of task %s: %w", row.ID, err)
	}
	if err := decode(row.Documents, &documents); err != nil {
		return domain.Task{}, fmt.Errorf("decode documents of task %s: %w", row.ID, err)
	}
	if err := decode(row.Activities, &activities); err != nil {
		return domain.Task{}, fmt.Errorf("decode activities of task %s: %w", row.ID, err)
	}

	for _, s := range subtasks {
		task.Subtasks = append(task.Subtasks, domain.Subtask{
			ID:         s.ID,
			Title:      s.Title,
			Tag:        s.Tag,
			Deadline:   s.Deadline.UTC(),
			CreatedAt:  s.CreatedAt.UTC(),
			Priority:   domain.Priority(s.Priority),
			Members:    s.Members,
			Stage:      domain.Stage(s.Stage),
			IsTrashed:  s.IsTrashed,
			Activities: domainActivities(s.Activities),
		})
	}
	for _, d := range documents {
		task.Documents = append(task.Documents, domain.Document{
			ID:         d.ID,
			Name:       d.Name,
			Path:       d.Path,
			UploadedAt: d.UploadedAt.UTC(),
		})
	}
	task.Activities = domainActivities(activities)
	return task, nil
}

func activityDocs(in []domain.Activity) []activityDoc {
	out := make([]activityDoc, 0, len(in))
	for _, a := range in {
		out = append(out, activityDoc{
			Type:     string(a.Type),
			Text:     a.Text,
			AuthorID: a.AuthorID,
			At:       a.At.UTC(),
		})
	}
	return out
}

func domainActivities(in []activityDoc) []domain.Activity {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Activity, 0, len(in))
	for _, a := range in {
		out = append(out, domain.Activity{
			Type:     domain.ActivityType(a.Type),
			Text:     a.Text,
			AuthorID: a.AuthorID,
			At:       a.At.UTC(),
		})
	}
	return out
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decode(raw string, v any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
