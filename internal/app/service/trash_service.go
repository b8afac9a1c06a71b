package service

import (
	"context"
	"fmt"
	"time"

	"taskmanager/internal/core/domain"
)

func (s *TaskService) ListTrashedSubtasks(ctx context.Context) ([]domain.TrashedSubtask, error) {
	tasks, err := s.taskRepository.ListWithTrashedSubtasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trashed subtasks: %w", err)
	}
	return domain.CollectTrashedSubtasks(tasks), nil
}

func (s *TaskService) TrashSubtask(ctx context.Context, subtaskID string) error {
	_, err := s.mutateBySubtask(ctx, subtaskID, func(task *domain.Task, now time.Time) error {
		changed, err := task.TrashSubtask(subtaskID, now)
		if err != nil {
			return err
		}
		if !changed {
			return errUnchanged
		}
		return nil
	})
	return err
}

func (s *TaskService) DeleteRestoreSubtask(ctx context.Context, taskID, subtaskID string, action domain.TrashAction) error {
	switch action {
	case domain.TrashActionDelete:
		_, err := s.mutate(ctx, taskID, func(task *domain.Task, now time.Time) error {
			return task.PurgeSubtask(subtaskID, now)
		})
		return err

	case domain.TrashActionRestore:
		_, err := s.mutate(ctx, taskID, func(task *domain.Task, now time.Time) error {
			changed, err := task.RestoreSubtask(subtaskID, now)
			if err != nil {
				return err
			}
			if !changed {
				return errUnchanged
			}
			return nil
		})
		return err

	case domain.TrashActionDeleteAll:
		return s.eachTaskWithTrashedSubtasks(ctx, func(task *domain.Task, now time.Time) int {
			return task.PurgeTrashedSubtasks(now)
		})

	case domain.TrashActionRestoreAll:
		return s.eachTaskWithTrashedSubtasks(ctx, func(task *domain.Task, now time.Time) int {
			return task.RestoreTrashedSubtasks(now)
		})
	}
	return domain.ErrInvalidTrashAction
}

// eachTaskWithTrashedSubtasks applies a bulk trash action task by task, so
// every parent is reconciled and saved on its own.
func (s *TaskService) eachTaskWithTrashedSubtasks(ctx context.Context, fn func(task *domain.Task, now time.Time) int) error {
	tasks, err := s.taskRepository.ListWithTrashedSubtasks(ctx)
	if err != nil {
		return fmt.Errorf("list trashed subtasks: %w", err)
	}
	for _, t := range tasks {
		_, err := s.mutate(ctx, t.ID, func(task *domain.Task, now time.Time) error {
			if fn(task, now) == 0 {
				return errUnchanged
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
