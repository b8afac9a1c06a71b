package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/mapper"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/http/validation"
	"taskmanager/internal/core/domain"
	"taskmanager/pkg/apierrors"
)

func (h *TaskHandler) CreateSubtask(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidSubtaskPayload)
		return
	}
	in, err := validation.BuildCreateSubtaskInput(req)
	if err != nil {
		respondError(c, "create subtask", err)
		return
	}

	sub, err := h.taskService.CreateSubtask(c.Request.Context(), taskID, in)
	if err != nil {
		respondError(c, "create subtask", err, zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusCreated, dto.SubtaskResponse{
		Envelope: envelope(c, MsgSubtaskCreated),
		Subtask:  mapper.ToSubtaskItem(sub, nil, h.now()),
	})
}

func (h *TaskHandler) UpdateSubtask(c *gin.Context) {
	subtaskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	req, raw, ok := bindPartial[dto.UpdateSubtaskRequest](c, apierrors.MsgInvalidSubtaskPayload)
	if !ok {
		return
	}
	in, err := validation.BuildUpdateSubtaskInput(req, raw)
	if err != nil {
		respondError(c, "update subtask", err)
		return
	}

	sub, err := h.taskService.UpdateSubtask(c.Request.Context(), subtaskID, in)
	if err != nil {
		respondError(c, "update subtask", err, zap.String("subtask_id", subtaskID))
		return
	}

	c.JSON(http.StatusOK, dto.SubtaskResponse{
		Envelope: envelope(c, MsgSubtaskUpdated),
		Subtask:  mapper.ToSubtaskItem(sub, nil, h.now()),
	})
}

func (h *TaskHandler) DeleteSubtask(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}
	subtaskID, ok := pathID(c, "subtaskId")
	if !ok {
		return
	}
	if err := h.taskService.DeleteSubtask(c.Request.Context(), taskID, subtaskID); err != nil {
		respondError(c, "delete subtask", err, zap.String("task_id", taskID), zap.String("subtask_id", subtaskID))
		return
	}

	c.JSON(http.StatusOK, envelope(c, MsgSubtaskDeleted))
}

func (h *TaskHandler) TrashSubtask(c *gin.Context) {
	subtaskID, ok := pathID(c, "subtaskId")
	if !ok {
		return
	}
	if err := h.taskService.TrashSubtask(c.Request.Context(), subtaskID); err != nil {
		respondError(c, "trash subtask", err, zap.String("subtask_id", subtaskID))
		return
	}

	c.JSON(http.StatusOK, envelope(c, MsgSubtaskTrashed))
}

func (h *TaskHandler) DeleteRestoreSubtask(c *gin.Context) {
	action, err := domain.ParseTrashAction(c.Query("actionType"))
	if err != nil {
		respondError(c, "delete or restore subtask", err)
		return
	}
	taskID := c.Param("taskId")
	subtaskID := c.Param("subtaskId")

	if err := h.taskService.DeleteRestoreSubtask(c.Request.Context(), taskID, subtaskID, action); err != nil {
		respondError(c, "delete or restore subtask", err,
			zap.String("task_id", taskID),
			zap.String("subtask_id", subtaskID),
			zap.String("action", string(action)),
		)
		return
	}

	msg := map[domain.TrashAction]string{
		domain.TrashActionDelete:     MsgSubtaskDeleted,
		domain.TrashActionDeleteAll:  MsgTrashedSubtasksDeleted,
		domain.TrashActionRestore:    MsgSubtaskRestored,
		domain.TrashActionRestoreAll: MsgTrashedSubtasksRestored,
	}[action]
	c.JSON(http.StatusOK, envelope(c, msg))
}

func (h *TaskHandler) PostActivity(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PostActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidActivityPayload)
		return
	}
	actor, _ := middleware.GetActor(c)
	in, err := validation.BuildPostActivityInput(req, actor.UserID)
	if err != nil {
		respondError(c, "post activity", err)
		return
	}

	sub, err := h.taskService.PostActivity(c.Request.Context(), taskID, in)
	if err != nil {
		respondError(c, "post activity", err, zap.String("task_id", taskID), zap.String("subtask_id", in.SubtaskID))
		return
	}

	c.JSON(http.StatusOK, dto.SubtaskResponse{
		Envelope: envelope(c, MsgActivityPosted),
		Subtask:  mapper.ToSubtaskItem(sub, nil, h.now()),
	})
}

func (h *TaskHandler) AutoAssign(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}
	subtaskID, ok := pathID(c, "subtaskId")
	if !ok {
		return
	}

	added, err := h.taskService.AutoAssignFromLowerPriority(c.Request.Context(), taskID, subtaskID)
	if err != nil {
		respondError(c, "auto assign", err, zap.String("task_id", taskID), zap.String("subtask_id", subtaskID))
		return
	}

	c.JSON(http.StatusOK, dto.AutoAssignResponse{
		Envelope: envelope(c, MsgMembersAssigned),
		Assigned: added,
	})
}

// AssignMissingHigh works on the whole task; the subtask segment of the route
// only identifies where the request was made from.
func (h *TaskHandler) AssignMissingHigh(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	result, err := h.taskService.AssignMissingToHighPriority(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, "assign missing members", err, zap.String("task_id", taskID))
		return
	}

	msg := MsgMembersAssigned
	if result.Total() == 0 {
		msg = MsgNothingToAssign
	}
	assigned := result.Assigned
	if assigned == nil {
		assigned = map[string][]string{}
	}
	candidates := result.Candidates
	if candidates == nil {
		candidates = []string{}
	}
	c.JSON(http.StatusOK, dto.AssignMissingResponse{
		Envelope:   envelope(c, msg),
		Candidates: candidates,
		Assigned:   assigned,
		Total:      result.Total(),
	})
}
