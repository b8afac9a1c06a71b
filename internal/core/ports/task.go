package ports

import (
	"context"
	"io"
	"time"

	"taskmanager/internal/core/domain"
)

// TaskRepository stores whole task aggregates. Subtasks are never stored or
// loaded on their own; the repository only indexes them to find their parent.
type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) error
	GetByID(ctx context.Context, id string) (domain.Task, error)
	GetBySubtaskID(ctx context.Context, subtaskID string) (domain.Task, error)
	// Save persists the aggregate if its Version is still current and bumps it.
	Save(ctx context.Context, task *domain.Task) error
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	ListWithTrashedSubtasks(ctx context.Context) ([]domain.Task, error)
	Delete(ctx context.Context, id string) error
	DeleteTrashed(ctx context.Context) (int64, error)
	RestoreTrashed(ctx context.Context) (int64, error)
}

type UserDirectory interface {
	FindUsers(ctx context.Context, ids []string) ([]domain.User, error)
	ListActiveUsers(ctx context.Context, limit int) ([]domain.User, error)
}

// BlobStore keeps uploaded documents. Paths are opaque to the core.
type BlobStore interface {
	Put(ctx context.Context, name string, content io.Reader) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

type Notifier interface {
	Notify(ctx context.Context, notice domain.Notice) error
}

type TaskService interface {
	CreateTask(ctx context.Context, actor domain.Actor, in domain.CreateTaskInput) (domain.Task, error)
	DuplicateTask(ctx context.Context, id string) (domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.TaskDetails, error)
	ListTasks(ctx context.Context, filter domain.TaskFilter) (domain.TaskListing, error)
	ListTrashedSubtasks(ctx context.Context) ([]domain.TrashedSubtask, error)
	UpdateTask(ctx context.Context, id string, in domain.UpdateTaskInput) (domain.Task, error)
	TrashTask(ctx context.Context, id string) error
	DeleteRestoreTask(ctx context.Context, id string, action domain.TrashAction) error

	CreateSubtask(ctx context.Context, taskID string, in domain.CreateSubtaskInput) (domain.Subtask, error)
	UpdateSubtask(ctx context.Context, subtaskID string, in domain.UpdateSubtaskInput) (domain.Subtask, error)
	DeleteSubtask(ctx context.Context, taskID, subtaskID string) error
	TrashSubtask(ctx context.Context, subtaskID string) error
	DeleteRestoreSubtask(ctx context.Context, taskID, subtaskID string, action domain.TrashAction) error
	PostActivity(ctx context.Context, taskID string, in domain.PostActivityInput) (domain.Subtask, error)

	AutoAssignFromLowerPriority(ctx context.Context, taskID, subtaskID string) ([]string, error)
	AssignMissingToHighPriority(ctx context.Context, taskID string) (domain.AssignmentResult, error)

	UploadDocuments(ctx context.Context, taskID string, files []domain.Upload) ([]domain.Document, error)
	OpenDocument(ctx context.Context, taskID, documentID string) (domain.Document, io.ReadCloser, error)
	DeleteDocument(ctx context.Context, taskID, documentID string) error

	Dashboard(ctx context.Context, actor domain.Actor) (domain.Dashboard, error)
	Report(ctx context.Context, from, to *time.Time) ([]domain.Task, error)
}
