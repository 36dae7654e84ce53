package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyhive/studyhive-backend/internal/domain/entity"
	"github.com/studyhive/studyhive-backend/internal/domain/service"
	"github.com/studyhive/studyhive-backend/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeUsers struct {
	mu    sync.Mutex
	users []entity.User
}

func (s *fakeUsers) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	user.ID = fmt.Sprintf("user-%d", len(s.users)+1)
	s.users = append(s.users, *user)
	return user, nil
}

func (s *fakeUsers) Get(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]string
}

func (s *fakeSessions) Set(_ context.Context, sessionID, userID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = userID
	return nil
}

func (s *fakeSessions) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[sessionID]
	if !ok {
		return "", fmt.Errorf("session not found")
	}
	return userID, nil
}

func (s *fakeSessions) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []entity.Event
}

func (s *fakeEvents) Create(_ context.Context, event *entity.Event) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.ID = fmt.Sprintf("ev-%d", len(s.events)+1)
	s.events = append(s.events, *event)
	return event, nil
}

func (s *fakeEvents) Get(_ context.Context, userID, id string) (*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id && e.UserID == userID {
			e := e
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeEvents) GetByUser(_ context.Context, userID string, from, to time.Time) ([]entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Event
	for _, e := range s.events {
		if e.UserID != userID {
			continue
		}
		if !from.IsZero() && e.Deadline.Before(from) {
			continue
		}
		if !to.IsZero() && e.Deadline.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *fakeEvents) GetUpcoming(_ context.Context, userID string, after time.Time) ([]entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Event
	for _, e := range s.events {
		if e.UserID == userID && e.Deadline.After(after) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeEvents) Delete(_ context.Context, userID, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.events {
		if e.ID == id && e.UserID == userID {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type fakeAlerts struct {
	mu     sync.Mutex
	alerts []entity.Alert
}

func (s *fakeAlerts) Create(_ context.Context, alert *entity.Alert) (*entity.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert.ID = fmt.Sprintf("alert-%d", len(s.alerts)+1)
	alert.CreatedAt = time.Now().UTC()
	s.alerts = append(s.alerts, *alert)
	return alert, nil
}

func (s *fakeAlerts) GetByRelatedEvent(_ context.Context, eventID string) (*entity.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.alerts {
		if a.RelatedEventID != nil && *a.RelatedEventID == eventID {
			a := a
			return &a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeAlerts) GetUnread(_ context.Context, userID string) ([]entity.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Alert
	for _, a := range s.alerts {
		if a.UserID == userID && !a.Read {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAlerts) MarkRead(_ context.Context, userID, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID == id && s.alerts[i].UserID == userID {
			s.alerts[i].Read = true
			return 1, nil
		}
	}
	return 0, nil
}

type fakeTasks struct {
	mu    sync.Mutex
	tasks []entity.Task
}

func (s *fakeTasks) Create(_ context.Context, task *entity.Task) (*entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task.ID = fmt.Sprintf("task-%d", len(s.tasks)+1)
	s.tasks = append(s.tasks, *task)
	return task, nil
}

func (s *fakeTasks) Get(_ context.Context, userID, id string) (*entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id && t.UserID == userID {
			t := t
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeTasks) GetByUser(_ context.Context, userID string) ([]entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *fakeTasks) Update(_ context.Context, task *entity.Task) (*entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = *task
		}
	}
	return task, nil
}

func (s *fakeTasks) Delete(_ context.Context, userID, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id && t.UserID == userID {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeEvents, *fakeAlerts) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar(), Name: "test"}

	users := &fakeUsers{}
	sessions := &fakeSessions{sessions: make(map[string]string)}
	events := &fakeEvents{}
	alerts := &fakeAlerts{}
	tasks := &fakeTasks{}

	authService := service.NewAuthService(users, sessions, "test-secret", time.Hour)
	eventService := service.NewEventService(events)
	alertService := service.NewAlertService(alerts, events, users, nil, log)
	taskService := service.NewTaskService(tasks)

	return NewRouter(authService, eventService, alertService, taskService, log), events, alerts
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlannerRequiresAuth(t *testing.T) {
	r, _, _ := newTestRouter(t)

	for _, path := range []string{"/planner/alerts", "/planner/upcoming-deadlines", "/planner/tasks"} {
		w := doJSON(t, r, nethttp.MethodGet, path, "", nil)
		require.Equal(t, nethttp.StatusUnauthorized, w.Code, path)
	}

	w := doJSON(t, r, nethttp.MethodGet, "/planner/alerts", "not-a-token", nil)
	require.Equal(t, nethttp.StatusUnauthorized, w.Code)
}

func TestPlannerFlow(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, nethttp.MethodPost, "/auth/register", "", gin.H{
		"email": "ann@studyhive.io", "password": "correct horse", "name": "Ann",
	})
	require.Equal(t, nethttp.StatusCreated, w.Code)

	w = doJSON(t, r, nethttp.MethodPost, "/auth/login", "", gin.H{
		"email": "ann@studyhive.io", "password": "correct horse",
	})
	require.Equal(t, nethttp.StatusOK, w.Code)
	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Token)
	token := loginResp.Token

	// A naive deadline has no defined instant; the boundary rejects it.
	w = doJSON(t, r, nethttp.MethodPost, "/planner/events", token, gin.H{
		"title": "Essay", "deadline": "2099-01-02T15:04:05",
	})
	require.Equal(t, nethttp.StatusBadRequest, w.Code)

	w = doJSON(t, r, nethttp.MethodPost, "/planner/events", token, gin.H{
		"title": "Essay", "deadline": "2099-01-02T15:04:05Z",
	})
	require.Equal(t, nethttp.StatusCreated, w.Code)

	w = doJSON(t, r, nethttp.MethodPost, "/planner/events", token, gin.H{
		"title": "Past due", "deadline": "2001-01-02T15:04:05Z",
	})
	require.Equal(t, nethttp.StatusCreated, w.Code)

	// Upcoming deadlines exclude the already-passed event.
	w = doJSON(t, r, nethttp.MethodGet, "/planner/upcoming-deadlines", token, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	var upcoming []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &upcoming))
	require.Len(t, upcoming, 1)
	require.Equal(t, "Essay", upcoming[0]["title"])

	// The feed reports the passed event as expired, computed live.
	w = doJSON(t, r, nethttp.MethodGet, "/planner/alerts", token, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	var feed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &feed))
	require.Len(t, feed, 1)
	require.Equal(t, "expired", feed[0]["type"])
	require.Equal(t, "Deadline expired: Past due", feed[0]["message"])

	w = doJSON(t, r, nethttp.MethodPost, "/planner/alerts/nope/read", token, nil)
	require.Equal(t, nethttp.StatusNotFound, w.Code)

	w = doJSON(t, r, nethttp.MethodPost, "/planner/tasks", token, gin.H{"title": "Revise ch. 3"})
	require.Equal(t, nethttp.StatusCreated, w.Code)
	w = doJSON(t, r, nethttp.MethodGet, "/planner/tasks", token, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)

	// Logout revokes the session behind the still-valid token.
	w = doJSON(t, r, nethttp.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	w = doJSON(t, r, nethttp.MethodGet, "/planner/alerts", token, nil)
	require.Equal(t, nethttp.StatusUnauthorized, w.Code)
}

func TestMarkReadDoesNotLeakAcrossUsers(t *testing.T) {
	r, _, alerts := newTestRouter(t)

	register := func(email string) string {
		w := doJSON(t, r, nethttp.MethodPost, "/auth/register", "", gin.H{
			"email": email, "password": "correct horse",
		})
		require.Equal(t, nethttp.StatusCreated, w.Code)
		w = doJSON(t, r, nethttp.MethodPost, "/auth/login", "", gin.H{
			"email": email, "password": "correct horse",
		})
		require.Equal(t, nethttp.StatusOK, w.Code)
		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Token
	}

	tokenA := register("a@studyhive.io")
	tokenB := register("b@studyhive.io")

	alerts.alerts = append(alerts.alerts, entity.Alert{ID: "alert-a", UserID: "user-1", Message: "for A"})

	w := doJSON(t, r, nethttp.MethodPost, "/planner/alerts/alert-a/read", tokenB, nil)
	require.Equal(t, nethttp.StatusNotFound, w.Code)
	require.False(t, alerts.alerts[0].Read)

	w = doJSON(t, r, nethttp.MethodPost, "/planner/alerts/alert-a/read", tokenA, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	require.True(t, alerts.alerts[0].Read)
}
