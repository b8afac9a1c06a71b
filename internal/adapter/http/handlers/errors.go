package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/blob"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/domain"
	"taskmanager/pkg/apierrors"
)

type errorMapping struct {
	err    error
	status int
	msgKey string
}

// Specific errors first; the kind sentinels at the end catch the rest.
var errorMappings = []errorMapping{
	{domain.ErrTaskNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrSubtaskNotFound, http.StatusNotFound, apierrors.MsgSubtaskNotFound},
	{domain.ErrDocumentNotFound, http.StatusNotFound, apierrors.MsgDocumentNotFound},
	{domain.ErrUserNotFound, http.StatusNotFound, apierrors.MsgUserNotFound},

	{domain.ErrInvalidTaskPayload, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload},
	{domain.ErrInvalidSubtaskPayload, http.StatusBadRequest, apierrors.MsgInvalidSubtaskPayload},
	{domain.ErrInvalidStage, http.StatusBadRequest, apierrors.MsgInvalidStage},
	{domain.ErrInvalidPriority, http.StatusBadRequest, apierrors.MsgInvalidPriority},
	{domain.ErrInvalidActivityType, http.StatusBadRequest, apierrors.MsgInvalidActivityType},
	{domain.ErrInvalidTrashAction, http.StatusBadRequest, apierrors.MsgInvalidActionType},
	{domain.ErrSubtaskDeadlineExceedsTask, http.StatusBadRequest, apierrors.MsgSubtaskDeadlineExceedsTask},
	{domain.ErrTaskDeadlineBeforeSubtask, http.StatusBadRequest, apierrors.MsgTaskDeadlineBeforeSubtask},
	{domain.ErrOpenSubtasks, http.StatusBadRequest, apierrors.MsgOpenSubtasks},
	{domain.ErrNoCandidateMembers, http.StatusBadRequest, apierrors.MsgNoCandidateMembers},
	{domain.ErrNoDocuments, http.StatusBadRequest, apierrors.MsgNoDocuments},
	{domain.ErrInvalidDateRange, http.StatusBadRequest, apierrors.MsgInvalidDateRange},
	{blob.ErrTooLarge, http.StatusBadRequest, apierrors.MsgDocumentTooLarge},

	{domain.ErrTaskLocked, http.StatusForbidden, apierrors.MsgTaskLocked},
	{domain.ErrNotSubtaskMember, http.StatusForbidden, apierrors.MsgNotSubtaskMember},
	{domain.ErrConcurrentUpdate, http.StatusConflict, apierrors.MsgConcurrentUpdate},
	{domain.ErrDocumentsNotSaved, http.StatusInternalServerError, apierrors.MsgDocumentsNotSaved},

	{domain.ErrValidation, http.StatusBadRequest, apierrors.MsgInvalidQuery},
	{domain.ErrNotFound, http.StatusNotFound, apierrors.MsgTaskNotFound},
	{domain.ErrLocked, http.StatusForbidden, apierrors.MsgTaskLocked},
	{domain.ErrForbidden, http.StatusForbidden, apierrors.MsgAdminOnly},
	{domain.ErrConflict, http.StatusConflict, apierrors.MsgConcurrentUpdate},
}

func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.msgKey
		}
	}
	return http.StatusInternalServerError, apierrors.MsgInternal
}

// respondError writes the localized error envelope. Server faults are logged
// with the operation; their detail never reaches the client.
func respondError(c *gin.Context, operation string, err error, fields ...zap.Field) {
	status, msgKey := statusFor(err)
	if status >= http.StatusInternalServerError {
		fields = append(fields,
			zap.String("operation", operation),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		zap.L().Error("request failed", fields...)
	}
	c.JSON(status, apierrors.CreateError(status, msgKey, middleware.GetLang(c)))
}

func respondBadRequest(c *gin.Context, msgKey string) {
	c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, msgKey, middleware.GetLang(c)))
}
