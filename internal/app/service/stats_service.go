package service

import (
	"context"
	"fmt"
	"time"

	"taskmanager/internal/core/domain"
)

const dashboardUsers = 10

// Dashboard summarises the non-trashed tasks visible to the actor. Admins see
// every task and the most recent active users; members see their own tasks.
func (s *TaskService) Dashboard(ctx context.Context, actor domain.Actor) (domain.Dashboard, error) {
	filter := domain.TaskFilter{}
	if !actor.IsAdmin {
		filter.MemberID = actor.UserID
	}
	tasks, err := s.taskRepository.List(ctx, filter)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("list dashboard tasks: %w", err)
	}

	d := domain.Summarize(tasks, s.now())
	if actor.IsAdmin {
		users, err := s.users.ListActiveUsers(ctx, dashboardUsers)
		if err != nil {
			return domain.Dashboard{}, fmt.Errorf("list active users: %w", err)
		}
		d.Users = users
	}
	return d, nil
}

// Report lists the non-trashed tasks created inside the window. Either bound
// may be nil.
func (s *TaskService) Report(ctx context.Context, from, to *time.Time) ([]domain.Task, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, domain.ErrInvalidDateRange
	}
	tasks, err := s.taskRepository.List(ctx, domain.TaskFilter{CreatedFrom: from, CreatedTo: to})
	if err != nil {
		return nil, fmt.Errorf("list report tasks: %w", err)
	}
	return tasks, nil
}
