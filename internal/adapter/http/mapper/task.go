package mapper

import (
	"fmt"
	"time"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

const DocumentRoute = "/api/task/%s/documents/%s"

func ToTaskItems(tasks []domain.Task, users map[string]domain.User, now time.Time) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for i := range tasks {
		items = append(items, ToTaskItem(tasks[i], users, now))
	}
	return items
}

// ToTaskItem renders the task as the client sees it at now: derived priority
// and stage, and only the subtasks that are not trashed.
func ToTaskItem(task domain.Task, users map[string]domain.User, now time.Time) dto.TaskItem {
	c := domain.Classify(task.Deadline, now, task.Stage)
	item := dto.TaskItem{
		ID:             task.ID,
		Title:          task.Title,
		Stage:          string(task.Stage),
		EffectiveStage: string(task.EffectiveStage(now)),
		Priority:       string(c.Priority),
		DaysRemaining:  c.DaysRemaining,
		IsLocked:       task.IsLocked(now),
		Deadline:       formatTime(task.Deadline),
		CreatedAt:      formatTime(task.CreatedAt),
		UpdatedAt:      formatTime(task.UpdatedAt),
		IsTrashed:      task.IsTrashed,
		Team:           ToUserRefs(task.Team, users),
		Subtasks:       make([]dto.SubtaskItem, 0, len(task.Subtasks)),
		Documents:      ToDocumentItems(task.ID, task.Documents),
		Activities:     toActivityItems(task.Activities, users),
		Version:        task.Version,
	}
	for _, v := range task.SubtasksWithPriority(now) {
		item.Subtasks = append(item.Subtasks, toSubtaskItem(v, users))
	}
	return item
}

func ToSubtaskItem(sub domain.Subtask, users map[string]domain.User, now time.Time) dto.SubtaskItem {
	return toSubtaskItem(sub.View(now), users)
}

func ToTrashedSubtaskItems(subs []domain.TrashedSubtask, users map[string]domain.User, now time.Time) []dto.TrashedSubtaskItem {
	items := make([]dto.TrashedSubtaskItem, 0, len(subs))
	for _, s := range subs {
		items = append(items, dto.TrashedSubtaskItem{
			SubtaskItem: ToSubtaskItem(s.Subtask, users, now),
			TaskID:      s.TaskID,
			TaskTitle:   s.TaskTitle,
		})
	}
	return items
}

func toSubtaskItem(v domain.SubtaskView, users map[string]domain.User) dto.SubtaskItem {
	return dto.SubtaskItem{
		ID:             v.ID,
		Title:          v.Title,
		Tag:            v.Tag,
		Deadline:       formatTime(v.Deadline),
		CreatedAt:      formatTime(v.CreatedAt),
		Priority:       string(v.DerivedPriority),
		StoredPriority: string(v.Subtask.Priority),
		Stage:          string(v.Stage),
		EffectiveStage: string(v.EffectiveStage),
		DaysRemaining:  v.DaysRemaining,
		Members:        ToUserRefs(v.Members, users),
		Activities:     toActivityItems(v.Activities, users),
		IsTrashed:      v.IsTrashed,
	}
}

func ToDocumentItems(taskID string, docs []domain.Document) []dto.DocumentItem {
	items := make([]dto.DocumentItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, dto.DocumentItem{
			ID:         d.ID,
			Name:       d.Name,
			URL:        documentURL(taskID, d.ID),
			UploadedAt: formatTime(d.UploadedAt),
		})
	}
	return items
}

// ToUserRefs keeps ids the directory could not resolve as bare references.
func ToUserRefs(ids []string, users map[string]domain.User) []dto.UserRef {
	refs := make([]dto.UserRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, toUserRef(id, users))
	}
	return refs
}

func ToUserItems(users []domain.User) []dto.UserItem {
	items := make([]dto.UserItem, 0, len(users))
	for _, u := range users {
		items = append(items, dto.UserItem{
			UserRef:   dto.UserRef{ID: u.ID, Name: u.Name, Title: u.Title, Role: u.Role, Email: u.Email},
			IsAdmin:   u.IsAdmin,
			IsActive:  u.IsActive,
			CreatedAt: formatTime(u.CreatedAt),
		})
	}
	return items
}

func toUserRef(id string, users map[string]domain.User) dto.UserRef {
	u, ok := users[id]
	if !ok {
		return dto.UserRef{ID: id}
	}
	return dto.UserRef{ID: u.ID, Name: u.Name, Title: u.Title, Role: u.Role, Email: u.Email}
}

func toActivityItems(activities []domain.Activity, users map[string]domain.User) []dto.ActivityItem {
	items := make([]dto.ActivityItem, 0, len(activities))
	for _, a := range activities {
		item := dto.ActivityItem{
			Type:     string(a.Type),
			Activity: a.Text,
			Date:     formatTime(a.At),
		}
		if a.AuthorID != "" {
			ref := toUserRef(a.AuthorID, users)
			item.By = &ref
		}
		items = append(items, item)
	}
	return items
}

func documentURL(taskID, documentID string) string {
	return fmt.Sprintf(DocumentRoute, taskID, documentID)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
