package validation

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, domain.ErrInvalidTaskPayload
	}

	if strings.TrimSpace(req.Stage) == "" {
		return domain.CreateTaskInput{}, domain.ErrInvalidTaskPayload
	}
	stage, err := domain.ParseStage(req.Stage)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	deadline, err := ParseDate(req.Deadline)
	if err != nil {
		return domain.CreateTaskInput{}, domain.ErrInvalidTaskPayload
	}

	return domain.CreateTaskInput{
		Title:    title,
		Team:     req.Team,
		Stage:    stage,
		Deadline: deadline,
		Assets:   req.Assets,
	}, nil
}

// BuildUpdateTaskInput only sets the fields present in the raw body; null is
// rejected for every field.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasAnyField(raw, "title", "team", "stage", "deadline") {
		return domain.UpdateTaskInput{}, domain.ErrInvalidTaskPayload
	}
	for _, field := range []string{"title", "team", "stage", "deadline"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.UpdateTaskInput{}, domain.ErrInvalidTaskPayload
		}
	}

	var in domain.UpdateTaskInput
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, domain.ErrInvalidTaskPayload
		}
		in.Title = &value
	}
	if hasJSONField(raw, "team") {
		in.Team = req.Team
		in.TeamSet = true
	}
	if req.Stage != nil {
		stage, err := domain.ParseStage(*req.Stage)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		in.Stage = &stage
	}
	if req.Deadline != nil {
		deadline, err := ParseDate(*req.Deadline)
		if err != nil {
			return domain.UpdateTaskInput{}, domain.ErrInvalidTaskPayload
		}
		in.Deadline = &deadline
	}
	return in, nil
}

// ParseDate accepts RFC 3339 timestamps and bare dates, which mean midnight UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func hasAnyField(raw map[string]json.RawMessage, fields ...string) bool {
	for _, f := range fields {
		if hasJSONField(raw, f) {
			return true
		}
	}
	return false
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
