package tests

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

func TestTaskHandler_CreateSubtask(t *testing.T) {
	h := newHarness(t)
	task := sampleTask(t, fixedNow.Add(10*24*time.Hour), "u1")
	sub, err := task.AddSubtask(domain.CreateSubtaskInput{Title: "Write", Deadline: fixedNow.Add(24 * time.Hour), Members: []string{"u1"}}, fixedNow)
	require.NoError(t, err)

	h.svc.On("CreateSubtask", mock.Anything, task.ID, mock.MatchedBy(func(in domain.CreateSubtaskInput) bool {
		return in.Title == "Write" && in.Priority == domain.PriorityHigh && len(in.Members) == 1
	})).Return(sub, nil).Once()

	rec := h.json(http.MethodPut, "/api/task/create-subtask/"+task.ID,
		`{"title":" Write ","deadline":"2026-03-11","members":["u1"],"priority":"high"}`, admin)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := decode[dto.SubtaskResponse](t, rec)
	require.Equal(t, "Subtask added successfully.", got.Message)
	require.Equal(t, sub.ID, got.Subtask.ID)
	require.Equal(t, "high", got.Subtask.Priority)
}

func TestTaskHandler_CreateSubtask_Rejections(t *testing.T) {
	h := newHarness(t)

	rec := h.json(http.MethodPut, "/api/task/create-subtask/t1", `{"title":"Write"}`, admin)
	requireError(t, rec, http.StatusBadRequest, "Title and deadline are required for a subtask.")

	rec = h.json(http.MethodPut, "/api/task/create-subtask/t1", `{"title":"Write","deadline":"2026-03-11","priority":"urgent"}`, admin)
	requireError(t, rec, http.StatusBadRequest, "Unknown priority.")

	h.svc.On("CreateSubtask", mock.Anything, "t1", mock.Anything).Return(domain.Subtask{}, domain.ErrSubtaskDeadlineExceedsTask).Once()
	rec = h.json(http.MethodPut, "/api/task/create-subtask/t1", `{"title":"Write","deadline":"2027-01-01"}`, admin)
	requireError(t, rec, http.StatusBadRequest, "The subtask deadline cannot be later than the task deadline.")
}

func TestTaskHandler_UpdateSubtask(t *testing.T) {
	h := newHarness(t)
	h.svc.On("UpdateSubtask", mock.Anything, "s1", mock.MatchedBy(func(in domain.UpdateSubtaskInput) bool {
		return in.MembersSet && len(in.Members) == 0 && in.Title == nil && in.PreviousStage != nil &&
			*in.PreviousStage == domain.StageInProgress
	})).Return(domain.Subtask{ID: "s1", Title: "Write", Stage: domain.StageInProgress, Priority: domain.PriorityLow}, nil).Once()

	rec := h.json(http.MethodPut, "/api/task/update-subtask/s1", `{"members":[],"previousStage":"in progress"}`, admin)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "s1", decode[dto.SubtaskResponse](t, rec).Subtask.ID)

	rec = h.json(http.MethodPut, "/api/task/update-subtask/s1", `{"previousStage":"todo"}`, admin)
	requireError(t, rec, http.StatusBadRequest, "Title and deadline are required for a subtask.")
}

func TestTaskHandler_DeleteRestoreSubtask(t *testing.T) {
	h := newHarness(t)
	h.svc.On("DeleteRestoreSubtask", mock.Anything, "t1", "s1", domain.TrashActionRestoreAll).Return(nil).Once()

	rec := h.json(http.MethodPatch, "/api/task/t1/subtasks/s1?actionType=restoreAll", "", admin)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "All trashed subtasks restored.", decode[dto.Envelope](t, rec).Message)

	rec = h.json(http.MethodPatch, "/api/task/t1/subtasks/s1?actionType=wipe", "", admin)
	requireError(t, rec, http.StatusBadRequest, "Invalid action type.")
}

func TestTaskHandler_TrashSubtask_AllowsMembers(t *testing.T) {
	h := newHarness(t)
	h.svc.On("TrashSubtask", mock.Anything, "s1").Return(nil).Once()

	rec := h.json(http.MethodPut, "/api/task/trash-subtask/s1", "", member)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Subtask moved to trash.", decode[dto.Envelope](t, rec).Message)
}

func TestTaskHandler_PostActivity_UsesSignedInUser(t *testing.T) {
	h := newHarness(t)
	h.svc.On("PostActivity", mock.Anything, "t1", domain.PostActivityInput{
		SubtaskID: "s1",
		Type:      domain.ActivityCompleted,
		Text:      "done",
		AuthorID:  member.UserID,
	}).Return(domain.Subtask{
		ID:    "s1",
		Stage: domain.StageCompleted,
		Activities: []domain.Activity{
			{Type: domain.ActivityCompleted, Text: "done", AuthorID: member.UserID, At: fixedNow},
		},
	}, nil).Once()

	rec := h.json(http.MethodPost, "/api/task/activity/t1", `{"type":"completed","activity":"done","subtaskId":"s1"}`, member)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[dto.SubtaskResponse](t, rec)
	require.Equal(t, "completed", got.Subtask.Stage)
	require.Equal(t, member.UserID, got.Subtask.Activities[0].By.ID)
}

func TestTaskHandler_PostActivity_Rejections(t *testing.T) {
	h := newHarness(t)

	rec := h.json(http.MethodPost, "/api/task/activity/t1", `{"type":"completed"}`, member)
	requireError(t, rec, http.StatusBadRequest, "Activity type and subtask are required.")

	rec = h.json(http.MethodPost, "/api/task/activity/t1", `{"type":"celebrated","subtaskId":"s1"}`, member)
	requireError(t, rec, http.StatusBadRequest, "Unknown activity type.")

	h.svc.On("PostActivity", mock.Anything, "t1", mock.Anything).Return(domain.Subtask{}, domain.ErrNotSubtaskMember).Once()
	rec = h.json(http.MethodPost, "/api/task/activity/t1", `{"type":"started","subtaskId":"s1"}`, member)
	requireError(t, rec, http.StatusForbidden, "You are not assigned to this subtask.")
}

func TestTaskHandler_AutoAssign(t *testing.T) {
	h := newHarness(t)
	h.svc.On("AutoAssignFromLowerPriority", mock.Anything, "t1", "s1").Return([]string{"u2"}, nil).Once()

	rec := h.json(http.MethodPost, "/api/task/auto-assign/t1/s1", "", admin)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.AutoAssignResponse](t, rec)
	require.Equal(t, []string{"u2"}, got.Assigned)
}

func TestTaskHandler_AssignMissingHigh(t *testing.T) {
	h := newHarness(t)
	h.svc.On("AssignMissingToHighPriority", mock.Anything, "t1").
		Return(domain.AssignmentResult{Candidates: []string{"u2"}, Assigned: map[string][]string{"s1": {"u2"}}}, nil).Once()

	rec := h.json(http.MethodPost, "/api/task/assign-missing-high/t1/ignored", "", admin)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.AssignMissingResponse](t, rec)
	require.Equal(t, "Members assigned successfully.", got.Message)
	require.Equal(t, 1, got.Total)
	require.Equal(t, map[string][]string{"s1": {"u2"}}, got.Assigned)
}

func TestTaskHandler_AssignMissingHigh_NothingToDo(t *testing.T) {
	h := newHarness(t)
	h.svc.On("AssignMissingToHighPriority", mock.Anything, "t1").Return(domain.AssignmentResult{}, nil).Once()

	rec := h.json(http.MethodPost, "/api/task/assign-missing-high/t1/s1", "", admin)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":true,"message":"Every member already has work.","candidates":[],"assigned":{},"total":0}`, rec.Body.String())
}

func multipartRequest(t *testing.T, path string, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("note", "ignored"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestTaskHandler_UploadDocuments(t *testing.T) {
	h := newHarness(t)
	doc := domain.Document{ID: "d1", Name: "brief.txt", Path: "t1/d1-brief.txt", UploadedAt: fixedNow}
	h.svc.On("UploadDocuments", mock.Anything, "t1", mock.MatchedBy(func(uploads []domain.Upload) bool {
		if len(uploads) != 1 || uploads[0].Name != "brief.txt" {
			return false
		}
		content, err := io.ReadAll(uploads[0].Content)
		return err == nil && string(content) == "hello"
	})).Return([]domain.Document{doc}, nil).Once()

	rec := h.send(multipartRequest(t, "/api/task/upload/t1", map[string]string{"brief.txt": "hello"}), &admin)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	got := decode[dto.DocumentsResponse](t, rec)
	require.Len(t, got.Documents, 1)
	require.Equal(t, "/api/task/t1/documents/d1", got.Documents[0].URL)
}

func TestTaskHandler_UploadDocuments_Rejections(t *testing.T) {
	h := newHarness(t)

	rec := h.send(multipartRequest(t, "/api/task/upload/t1", nil), &admin)
	requireError(t, rec, http.StatusBadRequest, "No documents were uploaded.")

	rec = h.send(multipartRequest(t, "/api/task/upload/t1", map[string]string{"big.bin": strings.Repeat("x", 2<<10)}), &admin)
	requireError(t, rec, http.StatusBadRequest, "The document is too large.")

	rec = h.json(http.MethodPost, "/api/task/upload/t1", `{"files":[]}`, admin)
	requireError(t, rec, http.StatusBadRequest, "No documents were uploaded.")

	h.svc.On("UploadDocuments", mock.Anything, "t1", mock.Anything).Return(nil, domain.ErrDocumentsNotSaved).Once()
	rec = h.send(multipartRequest(t, "/api/task/upload/t1", map[string]string{"a.txt": "a"}), &admin)
	requireError(t, rec, http.StatusInternalServerError, "None of the documents could be saved.")
}

func TestTaskHandler_GetDocument_Streams(t *testing.T) {
	h := newHarness(t)
	h.svc.On("OpenDocument", mock.Anything, "t1", "d1").
		Return(domain.Document{ID: "d1", Name: "notes.txt"}, io.NopCloser(strings.NewReader("line one")), nil).Once()

	rec := h.send(httptest.NewRequest(http.MethodGet, "/api/task/t1/documents/d1", nil), &member)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "line one", rec.Body.String())
	require.Equal(t, `attachment; filename="notes.txt"`, rec.Header().Get("Content-Disposition"))
	require.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
}

func TestTaskHandler_DeleteDocument(t *testing.T) {
	h := newHarness(t)
	h.svc.On("DeleteDocument", mock.Anything, "t1", "missing").Return(domain.ErrDocumentNotFound).Once()

	rec := h.json(http.MethodDelete, "/api/task/t1/documents/missing", "", admin)

	requireError(t, rec, http.StatusNotFound, "Document not found.")
}
