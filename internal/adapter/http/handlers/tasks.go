package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/mapper"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/http/validation"
	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
	"taskmanager/pkg/apierrors"
)

type TaskHandler struct {
	taskService    ports.TaskService
	now            func() time.Time
	maxUploadBytes int64
}

type TaskHandlerOption func(*TaskHandler)

// WithClock sets the instant used to derive priorities in responses.
func WithClock(now func() time.Time) TaskHandlerOption {
	return func(h *TaskHandler) {
		h.now = now
	}
}

func WithMaxUploadBytes(n int64) TaskHandlerOption {
	return func(h *TaskHandler) {
		h.maxUploadBytes = n
	}
}

func NewTaskHandler(taskService ports.TaskService, opts ...TaskHandlerOption) *TaskHandler {
	h := &TaskHandler{
		taskService:    taskService,
		now:            time.Now,
		maxUploadBytes: 20 << 20,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}
	in, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		respondError(c, "create task", err)
		return
	}

	actor, _ := middleware.GetActor(c)
	task, err := h.taskService.CreateTask(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, "create task", err)
		return
	}

	c.JSON(http.StatusCreated, dto.TaskResponse{
		Envelope: envelope(c, MsgTaskCreated),
		Task:     mapper.ToTaskItem(task, nil, h.now()),
	})
}

func (h *TaskHandler) DuplicateTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.taskService.DuplicateTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, "duplicate task", err, zap.String("task_id", id))
		return
	}

	c.JSON(http.StatusCreated, dto.TaskResponse{
		Envelope: envelope(c, MsgTaskDuplicated),
		Task:     mapper.ToTaskItem(task, nil, h.now()),
	})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	details, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get task", err, zap.String("task_id", id))
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{
		Envelope: envelope(c, MsgSuccess),
		Task:     mapper.ToTaskItem(details.Task, details.Users, h.now()),
	})
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	var q dto.ListTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidQuery)
		return
	}
	filter, err := validation.BuildTaskFilter(q)
	if err != nil {
		respondError(c, "list tasks", err)
		return
	}

	listing, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "list tasks", err)
		return
	}

	now := h.now()
	c.JSON(http.StatusOK, dto.TaskListResponse{
		Envelope:        envelope(c, MsgSuccess),
		Tasks:           mapper.ToTaskItems(listing.Tasks, listing.Users, now),
		TrashedSubtasks: mapper.ToTrashedSubtaskItems(listing.TrashedSubtasks, listing.Users, now),
	})
}

func (h *TaskHandler) ListTrashedSubtasks(c *gin.Context) {
	trashed, err := h.taskService.ListTrashedSubtasks(c.Request.Context())
	if err != nil {
		respondError(c, "list trashed subtasks", err)
		return
	}

	c.JSON(http.StatusOK, dto.TrashedSubtasksResponse{
		Envelope:        envelope(c, MsgSuccess),
		TrashedSubtasks: mapper.ToTrashedSubtaskItems(trashed, nil, h.now()),
	})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, raw, ok := bindPartial[dto.UpdateTaskRequest](c, apierrors.MsgInvalidTaskPayload)
	if !ok {
		return
	}
	in, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		respondError(c, "update task", err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, "update task", err, zap.String("task_id", id))
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{
		Envelope: envelope(c, MsgTaskUpdated),
		Task:     mapper.ToTaskItem(task, nil, h.now()),
	})
}

func (h *TaskHandler) TrashTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.taskService.TrashTask(c.Request.Context(), id); err != nil {
		respondError(c, "trash task", err, zap.String("task_id", id))
		return
	}

	c.JSON(http.StatusOK, envelope(c, MsgTaskTrashed))
}

// DeleteRestoreTask serves both /delete-restore and /delete-restore/:id; the
// bulk actions ignore the id.
func (h *TaskHandler) DeleteRestoreTask(c *gin.Context) {
	action, err := domain.ParseTrashAction(c.Query("actionType"))
	if err != nil {
		respondError(c, "delete or restore task", err)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if !action.Bulk() && id == "" {
		respondBadRequest(c, apierrors.MsgInvalidTaskID)
		return
	}

	if err := h.taskService.DeleteRestoreTask(c.Request.Context(), id, action); err != nil {
		respondError(c, "delete or restore task", err, zap.String("task_id", id), zap.String("action", string(action)))
		return
	}

	msg := map[domain.TrashAction]string{
		domain.TrashActionDelete:     MsgTaskDeleted,
		domain.TrashActionDeleteAll:  MsgTrashedTasksDeleted,
		domain.TrashActionRestore:    MsgTaskRestored,
		domain.TrashActionRestoreAll: MsgTrashedTasksRestored,
	}[action]
	c.JSON(http.StatusOK, envelope(c, msg))
}

func pathID(c *gin.Context, name string) (string, bool) {
	id := strings.TrimSpace(c.Param(name))
	if id == "" {
		respondBadRequest(c, apierrors.MsgInvalidTaskID)
		return "", false
	}
	return id, true
}

// bindPartial decodes the body into the typed request and into a raw map, so
// absent fields can be told apart from zero values.
func bindPartial[T any](c *gin.Context, msgKey string) (T, map[string]json.RawMessage, bool) {
	var req T
	var raw map[string]json.RawMessage

	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		respondBadRequest(c, msgKey)
		return req, nil, false
	}
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		respondBadRequest(c, msgKey)
		return req, nil, false
	}
	return req, raw, true
}
