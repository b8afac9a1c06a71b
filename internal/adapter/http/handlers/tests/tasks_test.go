package tests

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	h := newHarness(t)
	task := sampleTask(t, fixedNow.Add(24*time.Hour), "u1")

	h.svc.On("CreateTask", mock.Anything, admin, mock.MatchedBy(func(in domain.CreateTaskInput) bool {
		return in.Title == "Launch" &&
			len(in.Team) == 1 && in.Team[0] == "u1" &&
			in.Stage == domain.StageTodo &&
			in.Deadline.Equal(time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC))
	})).Return(task, nil).Once()

	rec := h.json(http.MethodPost, "/api/task/create", `{"title":"Launch","team":["u1"],"stage":"todo","deadline":"2026-03-11"}`, admin)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := decode[dto.TaskResponse](t, rec)
	require.True(t, got.Status)
	require.Equal(t, "Task created successfully.", got.Message)
	require.Equal(t, task.ID, got.Task.ID)
	require.Equal(t, "high", got.Task.Priority)
	require.Equal(t, "todo", got.Task.EffectiveStage)
	require.Equal(t, 1, got.Task.DaysRemaining)
	require.False(t, got.Task.IsLocked)
	require.Len(t, got.Task.Team, 1)
	require.Equal(t, "u1", got.Task.Team[0].ID)
	require.NotNil(t, got.Task.Subtasks)
	require.Equal(t, "2026-03-11T12:00:00Z", got.Task.Deadline)
}

func TestTaskHandler_CreateTask_Localized(t *testing.T) {
	h := newHarness(t)
	h.svc.On("CreateTask", mock.Anything, admin, mock.Anything).Return(sampleTask(t, fixedNow.Add(time.Hour), "u1"), nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/task/create", jsonBody(`{"title":"Launch","team":["u1"],"stage":"todo","deadline":"2026-03-11T18:00:00Z"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	rec := h.send(req, &admin)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "Tâche créée avec succès.", decode[dto.TaskResponse](t, rec).Message)
}

func TestTaskHandler_CreateTask_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		actor   domain.Actor
		status  int
		message string
	}{
		{"member", `{"title":"Launch","team":["u1"],"stage":"todo","deadline":"2026-03-11"}`, member, http.StatusForbidden, "Only administrators can do this."},
		{"missing team", `{"title":"Launch","deadline":"2026-03-11"}`, admin, http.StatusBadRequest, "Title, team, stage and deadline are required."},
		{"missing stage", `{"title":"Launch","team":["u1"],"deadline":"2026-03-11"}`, admin, http.StatusBadRequest, "Title, team, stage and deadline are required."},
		{"blank stage", `{"title":"Launch","team":["u1"],"stage":" ","deadline":"2026-03-11"}`, admin, http.StatusBadRequest, "Title, team, stage and deadline are required."},
		{"bad deadline", `{"title":"Launch","team":["u1"],"stage":"todo","deadline":"soon"}`, admin, http.StatusBadRequest, "Title, team, stage and deadline are required."},
		{"bad stage", `{"title":"Launch","team":["u1"],"deadline":"2026-03-11","stage":"done"}`, admin, http.StatusBadRequest, "Unknown stage."},
		{"not json", `title=Launch`, admin, http.StatusBadRequest, "Title, team, stage and deadline are required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			rec := h.json(http.MethodPost, "/api/task/create", tt.body, tt.actor)
			requireError(t, rec, tt.status, tt.message)
		})
	}
}

func TestTaskHandler_RequiresToken(t *testing.T) {
	h := newHarness(t)

	rec := h.send(httptest.NewRequest(http.MethodGet, "/api/task", nil), nil)

	requireError(t, rec, http.StatusUnauthorized, "You need to be signed in.")
}

func TestTaskHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", domain.ErrTaskNotFound, http.StatusNotFound, "Task not found."},
		{"wrapped not found", fmt.Errorf("load: %w", domain.ErrTaskNotFound), http.StatusNotFound, "Task not found."},
		{"locked", domain.ErrTaskLocked, http.StatusForbidden, "The task deadline has passed. Extend the deadline to make changes."},
		{"conflict", fmt.Errorf("save task x: %w", domain.ErrConcurrentUpdate), http.StatusConflict, "The task was changed by someone else, reload it and try again."},
		{"deadline", domain.ErrTaskDeadlineBeforeSubtask, http.StatusBadRequest, "The task deadline cannot be earlier than one of its subtask deadlines."},
		{"unknown user", fmt.Errorf("%w: ghost", domain.ErrUserNotFound), http.StatusNotFound, "User not found."},
		{"internal", errors.New("db is down"), http.StatusInternalServerError, "Something went wrong, please try again later."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.svc.On("UpdateTask", mock.Anything, "t1", mock.Anything).Return(domain.Task{}, tt.err).Once()

			rec := h.json(http.MethodPut, "/api/task/update/t1", `{"title":"Renamed"}`, admin)

			requireError(t, rec, tt.status, tt.message)
		})
	}
}

func TestTaskHandler_GetTask_NotFoundLocalized(t *testing.T) {
	h := newHarness(t)
	h.svc.On("GetTask", mock.Anything, "missing").Return(domain.TaskDetails{}, domain.ErrTaskNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/task/missing", nil)
	req.Header.Set("Accept-Language", "fr")
	rec := h.send(req, &member)

	requireError(t, rec, http.StatusNotFound, "Tâche introuvable.")
}

func TestTaskHandler_GetTask_ResolvesUsers(t *testing.T) {
	h := newHarness(t)
	task := sampleTask(t, fixedNow.Add(10*24*time.Hour), "u1")
	sub, err := task.AddSubtask(domain.CreateSubtaskInput{Title: "Write", Deadline: fixedNow.Add(24 * time.Hour), Members: []string{"u1"}}, fixedNow)
	require.NoError(t, err)
	_, err = task.TrashSubtask(sub.ID, fixedNow)
	require.NoError(t, err)
	visible, err := task.AddSubtask(domain.CreateSubtaskInput{Title: "Review", Deadline: fixedNow.Add(3 * 24 * time.Hour), Members: []string{"u1"}}, fixedNow)
	require.NoError(t, err)

	h.svc.On("GetTask", mock.Anything, task.ID).Return(domain.TaskDetails{
		Task:  task,
		Users: map[string]domain.User{"u1": {ID: "u1", Name: "Ada", Email: "ada@example.com"}},
	}, nil).Once()

	rec := h.send(httptest.NewRequest(http.MethodGet, "/api/task/"+task.ID, nil), &member)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.TaskResponse](t, rec).Task
	require.Equal(t, "Ada", got.Team[0].Name)
	require.Len(t, got.Subtasks, 1, "trashed subtasks are hidden")
	require.Equal(t, visible.ID, got.Subtasks[0].ID)
	require.Equal(t, "medium", got.Subtasks[0].Priority)
	require.Equal(t, "low", got.Subtasks[0].StoredPriority)
	require.Equal(t, "Ada", got.Subtasks[0].Members[0].Name)
	require.Equal(t, "admin", got.Activities[0].By.ID)
}

func TestTaskHandler_ListTasks(t *testing.T) {
	h := newHarness(t)
	overdue := domain.StageOverdue
	h.svc.On("ListTasks", mock.Anything, domain.TaskFilter{Stage: &overdue, Trashed: true, Search: "launch"}).
		Return(domain.TaskListing{Tasks: []domain.Task{sampleTask(t, fixedNow.Add(-time.Hour), "u1")}}, nil).Once()

	rec := h.send(httptest.NewRequest(http.MethodGet, "/api/task?stage=overdue&isTrashed=true&search=%20launch%20", nil), &member)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[dto.TaskListResponse](t, rec)
	require.Len(t, got.Tasks, 1)
	require.Equal(t, "overdue", got.Tasks[0].EffectiveStage)
	require.True(t, got.Tasks[0].IsLocked)
	require.NotNil(t, got.TrashedSubtasks)
}

func TestTaskHandler_ListTasks_BadQuery(t *testing.T) {
	h := newHarness(t)

	rec := h.send(httptest.NewRequest(http.MethodGet, "/api/task?isTrashed=maybe", nil), &member)
	requireError(t, rec, http.StatusBadRequest, "Invalid query parameters.")

	rec = h.send(httptest.NewRequest(http.MethodGet, "/api/task?stage=later", nil), &member)
	requireError(t, rec, http.StatusBadRequest, "Unknown stage.")
}

func TestTaskHandler_UpdateTask_Partial(t *testing.T) {
	h := newHarness(t)
	task := sampleTask(t, fixedNow.Add(5*24*time.Hour), "u1")
	h.svc.On("UpdateTask", mock.Anything, task.ID, mock.MatchedBy(func(in domain.UpdateTaskInput) bool {
		return in.Deadline != nil && in.Title == nil && in.Stage == nil && !in.TeamSet
	})).Return(task, nil).Once()

	rec := h.json(http.MethodPut, "/api/task/update/"+task.ID, `{"deadline":"2026-03-15"}`, admin)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Task updated successfully.", decode[dto.TaskResponse](t, rec).Message)
}

func TestTaskHandler_UpdateTask_RejectsEmptyAndNull(t *testing.T) {
	h := newHarness(t)

	for _, body := range []string{`{}`, `{"title":null}`, `{"team":null}`, `{"title":"  "}`} {
		rec := h.json(http.MethodPut, "/api/task/update/t1", body, admin)
		requireError(t, rec, http.StatusBadRequest, "Title, team, stage and deadline are required.")
	}
}

func TestTaskHandler_TrashTask(t *testing.T) {
	h := newHarness(t)
	h.svc.On("TrashTask", mock.Anything, "t1").Return(nil).Once()

	rec := h.json(http.MethodPut, "/api/task/t1", "", admin)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.Envelope](t, rec)
	require.True(t, got.Status)
	require.Equal(t, "Task moved to trash.", got.Message)
}

func TestTaskHandler_DuplicateTask(t *testing.T) {
	h := newHarness(t)
	dup := sampleTask(t, fixedNow.Add(24*time.Hour), "u1")
	h.svc.On("DuplicateTask", mock.Anything, "t1").Return(dup, nil).Once()

	rec := h.json(http.MethodPost, "/api/task/duplicate/t1", "", admin)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, dup.ID, decode[dto.TaskResponse](t, rec).Task.ID)
}

func TestTaskHandler_DeleteRestoreTask(t *testing.T) {
	h := newHarness(t)
	h.svc.On("DeleteRestoreTask", mock.Anything, "t1", domain.TrashActionRestore).Return(nil).Once()
	h.svc.On("DeleteRestoreTask", mock.Anything, "", domain.TrashActionDeleteAll).Return(nil).Once()

	rec := h.json(http.MethodDelete, "/api/task/delete-restore/t1?actionType=restore", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Task restored successfully.", decode[dto.Envelope](t, rec).Message)

	rec = h.json(http.MethodDelete, "/api/task/delete-restore?actionType=deleteAll", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "All trashed tasks deleted.", decode[dto.Envelope](t, rec).Message)

	rec = h.json(http.MethodDelete, "/api/task/delete-restore?actionType=delete", "", admin)
	requireError(t, rec, http.StatusBadRequest, "The task id is invalid.")

	rec = h.json(http.MethodDelete, "/api/task/delete-restore/t1?actionType=purge", "", admin)
	requireError(t, rec, http.StatusBadRequest, "Invalid action type.")

	rec = h.json(http.MethodDelete, "/api/task/delete-restore/t1", "", admin)
	requireError(t, rec, http.StatusBadRequest, "Invalid action type.")
}

func TestTaskHandler_Dashboard(t *testing.T) {
	h := newHarness(t)
	task := sampleTask(t, fixedNow.Add(24*time.Hour), "u1")
	h.svc.On("Dashboard", mock.Anything, member).Return(domain.Summarize([]domain.Task{task}, fixedNow), nil).Once()

	rec := h.send(httptest.NewRequest(http.MethodGet, "/api/task/dashboard", nil), &member)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.DashboardResponse](t, rec)
	require.Equal(t, 1, got.TotalTasks)
	require.Len(t, got.LastTasks, 1)
	require.Equal(t, map[string]int{"todo": 1}, got.ByStage)
	require.Equal(t, []dto.PriorityCount{{Name: "high", Total: 1}}, got.ByPriority)
	require.NotNil(t, got.Users)
}

func TestTaskHandler_Report(t *testing.T) {
	h := newHarness(t)
	h.svc.On("Report", mock.Anything,
		mock.MatchedBy(func(from *time.Time) bool {
			return from != nil && from.Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
		}),
		mock.MatchedBy(func(to *time.Time) bool {
			return to != nil && to.Equal(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond))
		}),
	).Return([]domain.Task{sampleTask(t, fixedNow.Add(24*time.Hour), "u1")}, nil).Once()

	rec := h.send(httptest.NewRequest(http.MethodGet, "/api/task/report?startDate=2026-03-01&endDate=2026-03-01", nil), &member)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[dto.ReportResponse](t, rec)
	require.Equal(t, 1, got.Total)

	rec = h.send(httptest.NewRequest(http.MethodGet, "/api/task/report?startDate=2026-03-05&endDate=2026-03-01", nil), &member)
	requireError(t, rec, http.StatusBadRequest, "The end date must not be before the start date.")
}

func TestHealth_DatabaseDown(t *testing.T) {
	h := newHarness(t)

	rec := h.send(httptest.NewRequest(http.MethodGet, "/api/health", nil), nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "down", decode[map[string]any](t, rec)["message"])

	rec = h.send(httptest.NewRequest(http.MethodGet, "/api/health/report", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[map[string]any](t, rec)["status"].(map[string]any)
	require.Equal(t, "down", status["database"])
}
