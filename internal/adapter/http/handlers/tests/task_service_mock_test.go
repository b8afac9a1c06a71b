package tests

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

type taskServiceMock struct {
	mock.Mock
}

var _ ports.TaskService = (*taskServiceMock)(nil)

func (m *taskServiceMock) CreateTask(ctx context.Context, actor domain.Actor, in domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, actor, in)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DuplicateTask(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id string) (domain.TaskDetails, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.TaskDetails), args.Error(1)
}

func (m *taskServiceMock) ListTasks(ctx context.Context, filter domain.TaskFilter) (domain.TaskListing, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.TaskListing), args.Error(1)
}

func (m *taskServiceMock) ListTrashedSubtasks(ctx context.Context) ([]domain.TrashedSubtask, error) {
	args := m.Called(ctx)

	var subs []domain.TrashedSubtask
	if value := args.Get(0); value != nil {
		subs = value.([]domain.TrashedSubtask)
	}
	return subs, args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, id string, in domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) TrashTask(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *taskServiceMock) DeleteRestoreTask(ctx context.Context, id string, action domain.TrashAction) error {
	return m.Called(ctx, id, action).Error(0)
}

func (m *taskServiceMock) CreateSubtask(ctx context.Context, taskID string, in domain.CreateSubtaskInput) (domain.Subtask, error) {
	args := m.Called(ctx, taskID, in)
	return args.Get(0).(domain.Subtask), args.Error(1)
}

func (m *taskServiceMock) UpdateSubtask(ctx context.Context, subtaskID string, in domain.UpdateSubtaskInput) (domain.Subtask, error) {
	args := m.Called(ctx, subtaskID, in)
	return args.Get(0).(domain.Subtask), args.Error(1)
}

func (m *taskServiceMock) DeleteSubtask(ctx context.Context, taskID, subtaskID string) error {
	return m.Called(ctx, taskID, subtaskID).Error(0)
}

func (m *taskServiceMock) TrashSubtask(ctx context.Context, subtaskID string) error {
	return m.Called(ctx, subtaskID).Error(0)
}

func (m *taskServiceMock) DeleteRestoreSubtask(ctx context.Context, taskID, subtaskID string, action domain.TrashAction) error {
	return m.Called(ctx, taskID, subtaskID, action).Error(0)
}

func (m *taskServiceMock) PostActivity(ctx context.Context, taskID string, in domain.PostActivityInput) (domain.Subtask, error) {
	args := m.Called(ctx, taskID, in)
	return args.Get(0).(domain.Subtask), args.Error(1)
}

func (m *taskServiceMock) AutoAssignFromLowerPriority(ctx context.Context, taskID, subtaskID string) ([]string, error) {
	args := m.Called(ctx, taskID, subtaskID)

	var added []string
	if value := args.Get(0); value != nil {
		added = value.([]string)
	}
	return added, args.Error(1)
}

func (m *taskServiceMock) AssignMissingToHighPriority(ctx context.Context, taskID string) (domain.AssignmentResult, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(domain.AssignmentResult), args.Error(1)
}

func (m *taskServiceMock) UploadDocuments(ctx context.Context, taskID string, files []domain.Upload) ([]domain.Document, error) {
	args := m.Called(ctx, taskID, files)

	var docs []domain.Document
	if value := args.Get(0); value != nil {
		docs = value.([]domain.Document)
	}
	return docs, args.Error(1)
}

func (m *taskServiceMock) OpenDocument(ctx context.Context, taskID, documentID string) (domain.Document, io.ReadCloser, error) {
	args := m.Called(ctx, taskID, documentID)

	var rc io.ReadCloser
	if value := args.Get(1); value != nil {
		rc = value.(io.ReadCloser)
	}
	return args.Get(0).(domain.Document), rc, args.Error(2)
}

func (m *taskServiceMock) DeleteDocument(ctx context.Context, taskID, documentID string) error {
	return m.Called(ctx, taskID, documentID).Error(0)
}

func (m *taskServiceMock) Dashboard(ctx context.Context, actor domain.Actor) (domain.Dashboard, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(domain.Dashboard), args.Error(1)
}

func (m *taskServiceMock) Report(ctx context.Context, from, to *time.Time) ([]domain.Task, error) {
	args := m.Called(ctx, from, to)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}
