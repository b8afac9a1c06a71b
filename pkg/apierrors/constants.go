package apierrors

const (
	MsgInternal         = "internalError"
	MsgUnauthorized     = "unauthorized"
	MsgAdminOnly        = "adminOnly"
	MsgConcurrentUpdate = "concurrentUpdate"

	MsgInvalidTaskID              = "invalidTaskID"
	MsgInvalidTaskPayload         = "invalidTaskPayload"
	MsgInvalidSubtaskPayload      = "invalidSubtaskPayload"
	MsgInvalidActivityPayload     = "invalidActivityPayload"
	MsgInvalidStage               = "invalidStage"
	MsgInvalidPriority            = "invalidPriority"
	MsgInvalidActivityType        = "invalidActivityType"
	MsgInvalidActionType          = "invalidActionType"
	MsgInvalidQuery               = "invalidQuery"
	MsgInvalidDateRange           = "invalidDateRange"
	MsgSubtaskDeadlineExceedsTask = "subtaskDeadlineExceedsTask"
	MsgTaskDeadlineBeforeSubtask  = "taskDeadlineBeforeSubtask"
	MsgOpenSubtasks               = "openSubtasks"
	MsgNoCandidateMembers         = "noCandidateMembers"
	MsgNoDocuments                = "noDocuments"
	MsgDocumentTooLarge           = "documentTooLarge"

	MsgTaskNotFound     = "taskNotFound"
	MsgSubtaskNotFound  = "subtaskNotFound"
	MsgDocumentNotFound = "documentNotFound"
	MsgUserNotFound     = "userNotFound"

	MsgTaskLocked       = "taskLocked"
	MsgNotSubtaskMember = "notSubtaskMember"

	MsgDocumentsNotSaved = "documentsNotSaved"
)
