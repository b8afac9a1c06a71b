package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/mapper"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/http/validation"
	"taskmanager/pkg/apierrors"
)

func (h *TaskHandler) Dashboard(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	d, err := h.taskService.Dashboard(c.Request.Context(), actor)
	if err != nil {
		respondError(c, "dashboard", err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToDashboardResponse(d, envelope(c, MsgSuccess).Message, h.now()))
}

func (h *TaskHandler) Report(c *gin.Context) {
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidQuery)
		return
	}
	from, to, err := validation.BuildReportWindow(q)
	if err != nil {
		respondError(c, "report", err)
		return
	}

	tasks, err := h.taskService.Report(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, "report", err)
		return
	}

	c.JSON(http.StatusOK, dto.ReportResponse{
		Envelope: envelope(c, MsgSuccess),
		Total:    len(tasks),
		Tasks:    mapper.ToTaskItems(tasks, nil, h.now()),
	})
}
