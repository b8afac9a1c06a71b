package tests

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/http/handlers"
	"taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/core/domain"
	"taskmanager/pkg/apierrors"
	"taskmanager/pkg/translator"
)

const jwtSecret = "handler-test-secret"

var (
	fixedNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	admin    = domain.Actor{UserID: "admin", IsAdmin: true}
	member   = domain.Actor{UserID: "u1"}
)

type harness struct {
	t      *testing.T
	router *gin.Engine
	svc    *taskServiceMock
	auth   *middleware.Auth
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	svc := new(taskServiceMock)
	auth := middleware.NewAuth(jwtSecret)

	router := gin.New()
	taskHandler := handlers.NewTaskHandler(svc,
		handlers.WithClock(func() time.Time { return fixedNow }),
		handlers.WithMaxUploadBytes(1<<10),
	)
	httpadapter.RegisterRoutes(router, auth, handlers.NewHealthHandler(nil, "taskmanager", "test"), taskHandler)

	t.Cleanup(func() { svc.AssertExpectations(t) })
	return &harness{t: t, router: router, svc: svc, auth: auth}
}

func (h *harness) send(req *http.Request, actor *domain.Actor) *httptest.ResponseRecorder {
	h.t.Helper()
	if actor != nil {
		token, err := h.auth.Sign(*actor, time.Hour)
		require.NoError(h.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", translator.LanguageEn)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

// json sends body as JSON on behalf of actor.
func (h *harness) json(method, path, body string, actor domain.Actor) *httptest.ResponseRecorder {
	h.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return h.send(req, &actor)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	got := decode[apierrors.JsonErr](t, rec)
	require.False(t, got.Status)
	require.Equal(t, status, got.Code)
	require.Equal(t, message, got.Message)
}

func sampleTask(t *testing.T, deadline time.Time, team ...string) domain.Task {
	t.Helper()
	task, err := domain.NewTask(domain.CreateTaskInput{
		Title:    "Launch",
		Team:     team,
		Stage:    domain.StageTodo,
		Deadline: deadline,
	}, admin.UserID, fixedNow)
	require.NoError(t, err)
	return task
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}
