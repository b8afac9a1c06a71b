package validation

import (
	"strconv"
	"strings"
	"time"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

func BuildTaskFilter(q dto.ListTasksQuery) (domain.TaskFilter, error) {
	filter := domain.TaskFilter{Search: strings.TrimSpace(q.Search)}

	if s := strings.TrimSpace(q.Stage); s != "" {
		stage, err := domain.ParseStage(s)
		if err != nil {
			return domain.TaskFilter{}, err
		}
		filter.Stage = &stage
	}
	if s := strings.TrimSpace(q.IsTrashed); s != "" {
		trashed, err := strconv.ParseBool(s)
		if err != nil {
			return domain.TaskFilter{}, domain.ErrValidation
		}
		filter.Trashed = trashed
	}
	return filter, nil
}

// BuildReportWindow parses the optional bounds. A bare end date covers the
// whole of that day.
func BuildReportWindow(q dto.ReportQuery) (from, to *time.Time, err error) {
	if s := strings.TrimSpace(q.StartDate); s != "" {
		t, err := ParseDate(s)
		if err != nil {
			return nil, nil, domain.ErrValidation
		}
		from = &t
	}
	if s := strings.TrimSpace(q.EndDate); s != "" {
		t, err := ParseDate(s)
		if err != nil {
			return nil, nil, domain.ErrValidation
		}
		if _, perr := time.Parse(time.DateOnly, s); perr == nil {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, domain.ErrInvalidDateRange
	}
	return from, to, nil
}
