package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of them so the transport
// layer can pick a status code with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrLocked     = errors.New("locked")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrTaskNotFound     = fmt.Errorf("task %w", ErrNotFound)
	ErrSubtaskNotFound  = fmt.Errorf("subtask %w", ErrNotFound)
	ErrDocumentNotFound = fmt.Errorf("document %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)

	ErrInvalidTaskPayload         = fmt.Errorf("%w: invalid task payload", ErrValidation)
	ErrInvalidSubtaskPayload      = fmt.Errorf("%w: invalid subtask payload", ErrValidation)
	ErrInvalidStage               = fmt.Errorf("%w: invalid stage", ErrValidation)
	ErrInvalidPriority            = fmt.Errorf("%w: invalid priority", ErrValidation)
	ErrInvalidActivityType        = fmt.Errorf("%w: invalid activity type", ErrValidation)
	ErrInvalidTrashAction         = fmt.Errorf("%w: invalid action type", ErrValidation)
	ErrSubtaskDeadlineExceedsTask = fmt.Errorf("%w: subtask deadline exceeds task deadline", ErrValidation)
	ErrTaskDeadlineBeforeSubtask  = fmt.Errorf("%w: task deadline precedes a subtask deadline", ErrValidation)
	ErrOpenSubtasks               = fmt.Errorf("%w: task has subtasks that are not completed", ErrValidation)
	ErrNoCandidateMembers         = fmt.Errorf("%w: no members available to assign", ErrValidation)
	ErrNoDocuments                = fmt.Errorf("%w: no documents uploaded", ErrValidation)
	ErrInvalidDateRange           = fmt.Errorf("%w: end date precedes start date", ErrValidation)

	ErrTaskLocked        = fmt.Errorf("task is %w", ErrLocked)
	ErrNotSubtaskMember  = fmt.Errorf("%w: actor is not assigned to the subtask", ErrForbidden)
	ErrConcurrentUpdate  = fmt.Errorf("%w: task was modified concurrently", ErrConflict)
	ErrDocumentsNotSaved = errors.New("no document could be stored")
)
