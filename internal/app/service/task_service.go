package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

// errUnchanged lets a mutation report that the aggregate is already in the
// requested state, so nothing is written.
var errUnchanged = errors.New("task unchanged")

type TaskService struct {
	taskRepository ports.TaskRepository
	users          ports.UserDirectory
	blobs          ports.BlobStore
	notifier       ports.Notifier

	locks *keyedMutex
	now   func() time.Time
}

type Option func(*TaskService)

// WithClock replaces the wall clock used to derive priorities and stages.
func WithClock(now func() time.Time) Option {
	return func(s *TaskService) {
		s.now = now
	}
}

func NewTaskService(
	taskRepository ports.TaskRepository,
	users ports.UserDirectory,
	blobs ports.BlobStore,
	notifier ports.Notifier,
	opts ...Option,
) *TaskService {
	s := &TaskService{
		taskRepository: taskRepository,
		users:          users,
		blobs:          blobs,
		notifier:       notifier,
		locks:          newKeyedMutex(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskService) CreateTask(ctx context.Context, actor domain.Actor, in domain.CreateTaskInput) (domain.Task, error) {
	now := s.now()
	task, err := domain.NewTask(in, actor.UserID, now)
	if err != nil {
		return domain.Task{}, err
	}
	if err := s.ensureUsers(ctx, task.Team); err != nil {
		return domain.Task{}, err
	}
	if err := s.taskRepository.Create(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.notify(ctx, domain.Notice{
		TaskID: task.ID,
		Team:   task.Team,
		Text:   fmt.Sprintf("New task %q has been assigned to you, deadline %s.", task.Title, task.Deadline.Format(time.DateOnly)),
	})
	return task, nil
}

func (s *TaskService) DuplicateTask(ctx context.Context, id string) (domain.Task, error) {
	src, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	dup := src.Duplicate(s.now())
	if err := s.taskRepository.Create(ctx, dup); err != nil {
		return domain.Task{}, fmt.Errorf("duplicate task %s: %w", id, err)
	}

	s.notify(ctx, domain.Notice{
		TaskID: dup.ID,
		Team:   dup.Team,
		Text:   fmt.Sprintf("Task %q has been duplicated and assigned to you.", dup.Title),
	})
	return dup, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (domain.TaskDetails, error) {
	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return domain.TaskDetails{}, err
	}
	return domain.TaskDetails{
		Task:  task,
		Users: s.lookupUsers(ctx, task.MemberIDs()),
	}, nil
}

func (s *TaskService) ListTasks(ctx context.Context, filter domain.TaskFilter) (domain.TaskListing, error) {
	tasks, err := s.taskRepository.List(ctx, filter)
	if err != nil {
		return domain.TaskListing{}, fmt.Errorf("list tasks: %w", err)
	}

	now := s.now()
	if filter.Stage != nil {
		kept := tasks[:0]
		for _, t := range tasks {
			if t.EffectiveStage(now) == *filter.Stage {
				kept = append(kept, t)
			}
		}
		tasks = kept
	}

	trashed, err := s.ListTrashedSubtasks(ctx)
	if err != nil {
		return domain.TaskListing{}, err
	}

	var ids []string
	for i := range tasks {
		ids = append(ids, tasks[i].MemberIDs()...)
	}
	return domain.TaskListing{
		Tasks:           tasks,
		TrashedSubtasks: trashed,
		Users:           s.lookupUsers(ctx, ids),
	}, nil
}

// UpdateTask checks new team members only after the lock rules accepted the
// update, so a locked task always reports the lock.
func (s *TaskService) UpdateTask(ctx context.Context, id string, in domain.UpdateTaskInput) (domain.Task, error) {
	return s.mutate(ctx, id, func(task *domain.Task, now time.Time) error {
		if err := task.ApplyUpdate(in, now); err != nil {
			return err
		}
		if in.TeamSet {
			return s.ensureUsers(ctx, in.Team)
		}
		return nil
	})
}

func (s *TaskService) TrashTask(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, id, func(task *domain.Task, _ time.Time) error {
		if !task.Trash() {
			return errUnchanged
		}
		return nil
	})
	return err
}

func (s *TaskService) DeleteRestoreTask(ctx context.Context, id string, action domain.TrashAction) error {
	switch action {
	case domain.TrashActionDelete:
		task, err := s.taskRepository.GetByID(ctx, id)
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		unlock := s.locks.lock(id)
		err = s.taskRepository.Delete(ctx, id)
		unlock()
		if err != nil && !errors.Is(err, domain.ErrTaskNotFound) {
			return fmt.Errorf("delete task %s: %w", id, err)
		}
		s.dropBlobs(ctx, task.Documents)
		return nil

	case domain.TrashActionDeleteAll:
		trashed, err := s.taskRepository.List(ctx, domain.TaskFilter{Trashed: true})
		if err != nil {
			return fmt.Errorf("list trashed tasks: %w", err)
		}
		n, err := s.taskRepository.DeleteTrashed(ctx)
		if err != nil {
			return fmt.Errorf("delete trashed tasks: %w", err)
		}
		for i := range trashed {
			s.dropBlobs(ctx, trashed[i].Documents)
		}
		zap.L().Info("trashed tasks deleted", zap.Int64("count", n))
		return nil

	case domain.TrashActionRestore:
		_, err := s.mutate(ctx, id, func(task *domain.Task, _ time.Time) error {
			if !task.Restore() {
				return errUnchanged
			}
			return nil
		})
		return err

	case domain.TrashActionRestoreAll:
		n, err := s.taskRepository.RestoreTrashed(ctx)
		if err != nil {
			return fmt.Errorf("restore trashed tasks: %w", err)
		}
		zap.L().Info("trashed tasks restored", zap.Int64("count", n))
		return nil
	}
	return domain.ErrInvalidTrashAction
}

// mutate runs fn against a freshly loaded aggregate while holding the task's
// lock and persists the result. The repository rejects the save if another
// process wrote the task in between.
func (s *TaskService) mutate(ctx context.Context, taskID string, fn func(task *domain.Task, now time.Time) error) (domain.Task, error) {
	unlock := s.locks.lock(taskID)
	defer unlock()

	task, err := s.taskRepository.GetByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if err := fn(&task, s.now()); err != nil {
		if errors.Is(err, errUnchanged) {
			return task, nil
		}
		return domain.Task{}, err
	}
	if err := s.taskRepository.Save(ctx, &task); err != nil {
		return domain.Task{}, fmt.Errorf("save task %s: %w", taskID, err)
	}
	return task, nil
}

// mutateBySubtask resolves the parent of a subtask and mutates it.
func (s *TaskService) mutateBySubtask(ctx context.Context, subtaskID string, fn func(task *domain.Task, now time.Time) error) (domain.Task, error) {
	parent, err := s.taskRepository.GetBySubtaskID(ctx, subtaskID)
	if err != nil {
		return domain.Task{}, err
	}
	return s.mutate(ctx, parent.ID, fn)
}

// ensureUsers fails with ErrUserNotFound when any id is unknown.
func (s *TaskService) ensureUsers(ctx context.Context, ids []string) error {
	ids = domain.UniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}
	found, err := s.users.FindUsers(ctx, ids)
	if err != nil {
		return fmt.Errorf("find users: %w", err)
	}
	if len(found) == len(ids) {
		return nil
	}
	known := make(map[string]struct{}, len(found))
	for _, u := range found {
		known[u.ID] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrUserNotFound, strings.Join(missing, ", "))
}

// lookupUsers resolves ids for display. A directory failure degrades to
// bare ids rather than failing the read.
func (s *TaskService) lookupUsers(ctx context.Context, ids []string) map[string]domain.User {
	out := map[string]domain.User{}
	ids = domain.UniqueIDs(ids)
	if len(ids) == 0 {
		return out
	}
	users, err := s.users.FindUsers(ctx, ids)
	if err != nil {
		zap.L().Warn("failed to resolve users", zap.Int("count", len(ids)), zap.Error(err))
		return out
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out
}

func (s *TaskService) notify(ctx context.Context, notice domain.Notice) {
	if s.notifier == nil || len(notice.Team) == 0 {
		return
	}
	if err := s.notifier.Notify(ctx, notice); err != nil {
		zap.L().Warn("failed to send notification",
			zap.String("task_id", notice.TaskID),
			zap.Error(err),
		)
	}
}

var _ ports.TaskService = (*TaskService)(nil)
