package handlers

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/mapper"
	"taskmanager/internal/core/domain"
	"taskmanager/pkg/apierrors"
)

const uploadField = "files"

func (h *TaskHandler) UploadDocuments(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		respondBadRequest(c, apierrors.MsgNoDocuments)
		return
	}
	headers := form.File[uploadField]
	if len(headers) == 0 {
		respondBadRequest(c, apierrors.MsgNoDocuments)
		return
	}
	for _, fh := range headers {
		if fh.Size > h.maxUploadBytes {
			respondBadRequest(c, apierrors.MsgDocumentTooLarge)
			return
		}
	}

	uploads := make([]domain.Upload, 0, len(headers))
	files := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			zap.L().Warn("failed to open uploaded file", zap.String("name", fh.Filename), zap.Error(err))
			continue
		}
		files = append(files, f)
		uploads = append(uploads, domain.Upload{Name: fh.Filename, Content: f})
	}

	docs, err := h.taskService.UploadDocuments(c.Request.Context(), taskID, uploads)
	if err != nil {
		respondError(c, "upload documents", err, zap.String("task_id", taskID))
		return
	}

	c.JSON(http.StatusCreated, dto.DocumentsResponse{
		Envelope:  envelope(c, MsgDocumentsUploaded),
		Documents: mapper.ToDocumentItems(taskID, docs),
	})
}

func (h *TaskHandler) GetDocument(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	docID := c.Param("docId")

	doc, content, err := h.taskService.OpenDocument(c.Request.Context(), taskID, docID)
	if err != nil {
		respondError(c, "get document", err, zap.String("task_id", taskID), zap.String("document_id", docID))
		return
	}
	defer content.Close()

	contentType := mime.TypeByExtension(filepath.Ext(doc.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, content, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.Name),
	})
}

func (h *TaskHandler) DeleteDocument(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	docID := c.Param("docId")

	if err := h.taskService.DeleteDocument(c.Request.Context(), taskID, docID); err != nil {
		respondError(c, "delete document", err, zap.String("task_id", taskID), zap.String("document_id", docID))
		return
	}

	c.JSON(http.StatusOK, envelope(c, MsgDocumentDeleted))
}
