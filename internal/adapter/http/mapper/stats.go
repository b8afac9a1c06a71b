package mapper

import (
	"time"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

func ToDashboardResponse(d domain.Dashboard, message string, now time.Time) dto.DashboardResponse {
	resp := dto.DashboardResponse{
		Envelope:   dto.Envelope{Status: true, Message: message},
		TotalTasks: d.TotalTasks,
		LastTasks:  ToTaskItems(d.LastTasks, nil, now),
		ByStage:    make(map[string]int, len(d.ByStage)),
		ByPriority: make([]dto.PriorityCount, 0, len(d.ByPriority)),
		Users:      ToUserItems(d.Users),
	}
	for stage, n := range d.ByStage {
		resp.ByStage[string(stage)] = n
	}
	for _, p := range d.ByPriority {
		resp.ByPriority = append(resp.ByPriority, dto.PriorityCount{Name: string(p.Priority), Total: p.Total})
	}
	return resp
}
