package handlers

import (
	"github.com/gin-gonic/gin"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/pkg/translator"
)

const (
	MsgSuccess                 = "success"
	MsgTaskCreated             = "taskCreated"
	MsgTaskDuplicated          = "taskDuplicated"
	MsgTaskUpdated             = "taskUpdated"
	MsgTaskTrashed             = "taskTrashed"
	MsgTaskDeleted             = "taskDeleted"
	MsgTaskRestored            = "taskRestored"
	MsgTrashedTasksDeleted     = "trashedTasksDeleted"
	MsgTrashedTasksRestored    = "trashedTasksRestored"
	MsgSubtaskCreated          = "subtaskCreated"
	MsgSubtaskUpdated          = "subtaskUpdated"
	MsgSubtaskDeleted          = "subtaskDeleted"
	MsgSubtaskTrashed          = "subtaskTrashed"
	MsgSubtaskRestored         = "subtaskRestored"
	MsgTrashedSubtasksDeleted  = "trashedSubtasksDeleted"
	MsgTrashedSubtasksRestored = "trashedSubtasksRestored"
	MsgActivityPosted          = "activityPosted"
	MsgMembersAssigned         = "membersAssigned"
	MsgNothingToAssign         = "nothingToAssign"
	MsgDocumentsUploaded       = "documentsUploaded"
	MsgDocumentDeleted         = "documentDeleted"
)

func envelope(c *gin.Context, msgKey string) dto.Envelope {
	return dto.Envelope{Status: true, Message: translator.Translate(msgKey, middleware.GetLang(c))}
}
