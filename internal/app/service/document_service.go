package service

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"taskmanager/internal/core/domain"
)

// UploadDocuments stores every file it can and attaches those to the task.
// A file the blob store rejects is skipped; only a batch with no stored file
// is an error.
func (s *TaskService) UploadDocuments(ctx context.Context, taskID string, files []domain.Upload) ([]domain.Document, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoDocuments
	}
	if _, err := s.taskRepository.GetByID(ctx, taskID); err != nil {
		return nil, err
	}

	now := s.now()
	stored := make([]domain.Document, 0, len(files))
	for _, f := range files {
		path, err := s.blobs.Put(ctx, f.Name, f.Content)
		if err != nil {
			zap.L().Warn("failed to store document",
				zap.String("task_id", taskID),
				zap.String("name", f.Name),
				zap.Error(err),
			)
			continue
		}
		stored = append(stored, domain.Document{
			ID:         domain.NewID(),
			Name:       f.Name,
			Path:       path,
			UploadedAt: now,
		})
	}
	if len(stored) == 0 {
		return nil, domain.ErrDocumentsNotSaved
	}

	_, err := s.mutate(ctx, taskID, func(task *domain.Task, now time.Time) error {
		task.AttachDocuments(stored, now)
		return nil
	})
	if err != nil {
		s.dropBlobs(ctx, stored)
		return nil, err
	}
	return stored, nil
}

// OpenDocument returns the document metadata and its content. The caller
// closes the reader.
func (s *TaskService) OpenDocument(ctx context.Context, taskID, documentID string) (domain.Document, io.ReadCloser, error) {
	task, err := s.taskRepository.GetByID(ctx, taskID)
	if err != nil {
		return domain.Document{}, nil, err
	}
	doc, ok := task.Document(documentID)
	if !ok {
		return domain.Document{}, nil, domain.ErrDocumentNotFound
	}
	rc, err := s.blobs.Open(ctx, doc.Path)
	if err != nil {
		return domain.Document{}, nil, err
	}
	return doc, rc, nil
}

func (s *TaskService) DeleteDocument(ctx context.Context, taskID, documentID string) error {
	var removed domain.Document
	_, err := s.mutate(ctx, taskID, func(task *domain.Task, now time.Time) error {
		var err error
		removed, err = task.RemoveDocument(documentID, now)
		return err
	})
	if err != nil {
		return err
	}
	s.dropBlobs(ctx, []domain.Document{removed})
	return nil
}

// dropBlobs removes stored content best-effort. The metadata is already gone
// or was never written, so a failure only leaves an orphan file behind.
func (s *TaskService) dropBlobs(ctx context.Context, docs []domain.Document) {
	for _, d := range docs {
		if err := s.blobs.Delete(ctx, d.Path); err != nil {
			zap.L().Warn("failed to delete document blob",
				zap.String("path", d.Path),
				zap.Error(err),
			)
		}
	}
}
