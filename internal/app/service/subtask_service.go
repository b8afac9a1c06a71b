package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskmanager/internal/core/domain"
)

func (s *TaskService) CreateSubtask(ctx context.Context, taskID string, in domain.CreateSubtaskInput) (domain.Subtask, error) {
	var created domain.Subtask
	task, err := s.mutate(ctx, taskID, func(task *domain.Task, now time.Time) error {
		sub, err := task.AddSubtask(in, now)
		if err != nil {
			return err
		}
		s.backfill(task, now)
		created, _ = task.Subtask(sub.ID)
		return nil
	})
	if err != nil {
		return domain.Subtask{}, err
	}

	s.notify(ctx, domain.Notice{
		TaskID: task.ID,
		Team:   created.Members,
		Text:   fmt.Sprintf("Subtask %q of %q has been assigned to you.", created.Title, task.Title),
	})
	return created, nil
}

func (s *TaskService) UpdateSubtask(ctx context.Context, subtaskID string, in domain.UpdateSubtaskInput) (domain.Subtask, error) {
	var updated domain.Subtask
	_, err := s.mutateBySubtask(ctx, subtaskID, func(task *domain.Task, now time.Time) error {
		if _, err := task.UpdateSubtask(subtaskID, in, now); err != nil {
			return err
		}
		s.backfill(task, now)
		updated, _ = task.Subtask(subtaskID)
		return nil
	})
	if err != nil {
		return domain.Subtask{}, err
	}
	return updated, nil
}

func (s *TaskService) DeleteSubtask(ctx context.Context, taskID, subtaskID string) error {
	_, err := s.mutate(ctx, taskID, func(task *domain.Task, now time.Time) error {
		return task.RemoveSubtask(subtaskID, now)
	})
	return err
}

func (s *TaskService) PostActivity(ctx context.Context, taskID string, in domain.PostActivityInput) (domain.Subtask, error) {
	var sub domain.Subtask
	_, err := s.mutate(ctx, taskID, func(task *domain.Task, now time.Time) error {
		var err error
		sub, err = task.RecordActivity(in, now)
		return err
	})
	if err != nil {
		return domain.Subtask{}, err
	}
	return sub, nil
}

func (s *TaskService) backfill(task *domain.Task, now time.Time) {
	if n := task.BackfillHighPriority(now); n > 0 {
		zap.L().Info("members backfilled into high priority subtasks",
			zap.String("task_id", task.ID),
			zap.Int("assignments", n),
		)
	}
}
