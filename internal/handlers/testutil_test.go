package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/studenthub/studenthub-api/internal/auth"
	"github.com/studenthub/studenthub-api/internal/database"
	"github.com/studenthub/studenthub-api/internal/dto"
	"github.com/studenthub/studenthub-api/internal/realtime"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenManager
	hub    *realtime.Hub
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	hub := realtime.NewHub()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return testEnv{
		db:     db,
		router: NewRouter(db, tokens, hub, logger),
		tokens: tokens,
		hub:    hub,
	}
}

// doRequest performs a request against the test router. A non-empty token is
// sent as a bearer credential; a non-nil body is JSON encoded.
func (env testEnv) doRequest(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// signUp registers a student through the API and returns the auth payload.
func (env testEnv) signUp(t *testing.T, name string, isAdmin bool) dto.AuthPayloadDTO {
	t.Helper()

	w := env.doRequest(t, http.MethodPost, "/api/auth/signup", "", map[string]interface{}{
		"name":     name,
		"password": "supersecret",
		"is_admin": isAdmin,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payload dto.AuthPayloadDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

// createProject creates a project through the API with the given roster.
func (env testEnv) createProject(t *testing.T, adminToken, title string, studentIDs []uint64) dto.ProjectDTO {
	t.Helper()

	w := env.doRequest(t, http.MethodPost, "/api/projects", adminToken, map[string]interface{}{
		"title":       title,
		"student_ids": studentIDs,
		"start_date":  "2025-01-01",
		"end_date":    "2025-12-31",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var project dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	return project
}

// createTask creates a task through the API.
func (env testEnv) createTask(t *testing.T, token string, body map[string]interface{}) dto.TaskDTO {
	t.Helper()

	w := env.doRequest(t, http.MethodPost, "/api/tasks", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var task dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func taskPath(id uint64) string {
	return fmt.Sprintf("/api/tasks/%d", id)
}
