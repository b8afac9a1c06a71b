package validation

import (
	"encoding/json"
	"strings"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

func BuildCreateSubtaskInput(req dto.CreateSubtaskRequest) (domain.CreateSubtaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateSubtaskInput{}, domain.ErrInvalidSubtaskPayload
	}
	deadline, err := ParseDate(req.Deadline)
	if err != nil {
		return domain.CreateSubtaskInput{}, domain.ErrInvalidSubtaskPayload
	}

	var priority domain.Priority
	if strings.TrimSpace(req.Priority) != "" {
		if priority, err = domain.ParsePriority(req.Priority); err != nil {
			return domain.CreateSubtaskInput{}, err
		}
	}

	return domain.CreateSubtaskInput{
		Title:    title,
		Tag:      req.Tag,
		Deadline: deadline,
		Members:  req.Members,
		Priority: priority,
	}, nil
}

func BuildUpdateSubtaskInput(req dto.UpdateSubtaskRequest, raw map[string]json.RawMessage) (domain.UpdateSubtaskInput, error) {
	fields := []string{"title", "tag", "deadline", "members", "priority"}
	if !hasAnyField(raw, fields...) {
		return domain.UpdateSubtaskInput{}, domain.ErrInvalidSubtaskPayload
	}
	for _, field := range append(fields, "previousStage") {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			return domain.UpdateSubtaskInput{}, domain.ErrInvalidSubtaskPayload
		}
	}

	in := domain.UpdateSubtaskInput{Title: req.Title, Tag: req.Tag}
	if req.Deadline != nil {
		deadline, err := ParseDate(*req.Deadline)
		if err != nil {
			return domain.UpdateSubtaskInput{}, domain.ErrInvalidSubtaskPayload
		}
		in.Deadline = &deadline
	}
	if hasJSONField(raw, "members") {
		in.Members = req.Members
		in.MembersSet = true
	}
	if req.Priority != nil {
		priority, err := domain.ParsePriority(*req.Priority)
		if err != nil {
			return domain.UpdateSubtaskInput{}, err
		}
		in.Priority = &priority
	}
	if req.PreviousStage != nil {
		stage, err := domain.ParseStage(*req.PreviousStage)
		if err != nil {
			return domain.UpdateSubtaskInput{}, err
		}
		in.PreviousStage = &stage
	}
	return in, nil
}

func BuildPostActivityInput(req dto.PostActivityRequest, authorID string) (domain.PostActivityInput, error) {
	subtaskID := strings.TrimSpace(req.SubtaskID)
	if subtaskID == "" {
		return domain.PostActivityInput{}, domain.ErrInvalidSubtaskPayload
	}
	activityType, err := domain.ParseActivityType(req.Type)
	if err != nil {
		return domain.PostActivityInput{}, err
	}
	return domain.PostActivityInput{
		SubtaskID: subtaskID,
		Type:      activityType,
		Text:      req.Activity,
		AuthorID:  authorID,
	}, nil
}
