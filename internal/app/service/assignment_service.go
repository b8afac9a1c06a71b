package service

import (
	"context"
	"time"

	"taskmanager/internal/core/domain"
)

func (s *TaskService) AutoAssignFromLowerPriority(ctx context.Context, taskID, subtaskID string) ([]string, error) {
	var added []string
	task, err := s.mutate(ctx, taskID, func(task *domain.Task, now time.Time) error {
		var err error
		added, err = task.AutoAssignFromLowerPriority(subtaskID, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	sub, _ := task.Subtask(subtaskID)
	s.notify(ctx, domain.Notice{
		TaskID: task.ID,
		Team:   added,
		Text:   "You have been assigned to the high priority subtask " + sub.Title + ".",
	})
	return added, nil
}

func (s *TaskService) AssignMissingToHighPriority(ctx context.Context, taskID string) (domain.AssignmentResult, error) {
	var result domain.AssignmentResult
	task, err := s.mutate(ctx, taskID, func(task *domain.Task, now time.Time) error {
		var err error
		if result, err = task.AssignFreeMembersToHighPriority(now); err != nil {
			return err
		}
		if result.Total() == 0 {
			return errUnchanged
		}
		return nil
	})
	if err != nil {
		return domain.AssignmentResult{}, err
	}

	if result.Total() > 0 {
		s.notify(ctx, domain.Notice{
			TaskID: task.ID,
			Team:   result.Candidates,
			Text:   "You have been assigned to high priority work on " + task.Title + ".",
		})
	}
	return result, nil
}
