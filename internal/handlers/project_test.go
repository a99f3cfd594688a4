package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studenthub/studenthub-api/internal/dto"
	apierrors "github.com/studenthub/studenthub-api/internal/errors"
	"github.com/studenthub/studenthub-api/internal/models"
)

func projectPath(id uint64) string {
	return fmt.Sprintf("/api/projects/%d", id)
}

func TestProject_WritesRequireAdmin(t *testing.T) {
	env := setupTestEnv(t)
	member := env.signUp(t, "member", false)

	w := env.doRequest(t, http.MethodPost, "/api/projects", member.Token, map[string]interface{}{
		"title":      "Forbidden Project",
		"start_date": "2025-01-01",
		"end_date":   "2025-12-31",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, apierrors.ErrCodeForbidden, decodeBody(t, w)["code"])

	// Reads stay open to any authenticated caller.
	w = env.doRequest(t, http.MethodGet, "/api/projects", member.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProject_CreateNormalizesDates(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signUp(t, "admin", true)

	w := env.doRequest(t, http.MethodPost, "/api/projects", admin.Token, map[string]interface{}{
		"title":      "Date Project",
		"start_date": "2025-06-15",
		"end_date":   "2025-09-30T12:00:00+02:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var project dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	require.Equal(t, "2025-06-15T00:00:00Z", project.StartDate)
	require.Equal(t, "2025-09-30T10:00:00Z", project.EndDate)
	require.Equal(t, models.StatusPending, project.Status)
}

func TestProject_CreateRejectsUnparseableDate(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signUp(t, "admin", true)

	w := env.doRequest(t, http.MethodPost, "/api/projects", admin.Token, map[string]interface{}{
		"title":      "Bad Dates",
		"start_date": "15/06/2025",
		"end_date":   "2025-12-31",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, apierrors.ErrCodeValidation, decodeBody(t, w)["code"])
}

func TestProject_CreateRejectsUnknownRosterStudents(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signUp(t, "admin", true)

	w := env.doRequest(t, http.MethodPost, "/api/projects", admin.Token, map[string]interface{}{
		"title":       "Ghost Roster",
		"student_ids": []uint64{9999},
		"start_date":  "2025-01-01",
		"end_date":    "2025-12-31",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, apierrors.ErrCodeValidation, decodeBody(t, w)["code"])
}

func TestProject_PartialUpdatePreservesOmittedFields(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signUp(t, "admin", true)

	project := env.createProject(t, admin.Token, "Original Title", nil)

	w := env.doRequest(t, http.MethodPatch, projectPath(project.ID), admin.Token, map[string]interface{}{
		"description": "now with a description",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "Original Title", updated.Title)
	require.Equal(t, "now with a description", updated.Description)
	require.Equal(t, project.StartDate, updated.StartDate)
	require.Equal(t, project.EndDate, updated.EndDate)

	// An explicit empty string overwrites.
	w = env.doRequest(t, http.MethodPatch, projectPath(project.ID), admin.Token, map[string]interface{}{
		"description": "",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Empty(t, updated.Description)
}

func TestProject_FailedRosterUpdateWritesNothing(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signUp(t, "admin", true)

	project := env.createProject(t, admin.Token, "Before", nil)

	// A bad roster must abort the whole update, not just the roster part.
	w := env.doRequest(t, http.MethodPatch, projectPath(project.ID), admin.Token, map[string]interface{}{
		"title":       "After",
		"status":      models.StatusCompleted,
		"student_ids": []uint64{9999},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, apierrors.ErrCodeValidation, decodeBody(t, w)["code"])

	w = env.doRequest(t, http.MethodGet, projectPath(project.ID), admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stored dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	require.Equal(t, "Before", stored.Title)
	require.Equal(t, models.StatusPending, stored.Status)
}

func TestProject_RosterReplacementUnassignsRemovedStudents(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signUp(t, "admin", true)
	alice := env.signUp(t, "alice", false)
	bob := env.signUp(t, "bob", false)

	project := env.createProject(t, admin.Token, "Roster Project", []uint64{alice.User.ID, bob.User.ID})

	task := env.createTask(t, admin.Token, map[string]interface{}{
		"name":                "Alice's task",
		"project_id":          project.ID,
		"assigned_student_id": alice.User.ID,
		"due_date":            "2025-06-01",
	})
	require.NotNil(t, task.AssignedStudent)

	// Replace the roster with just Bob; Alice's assignment must be cleared.
	w := env.doRequest(t, http.MethodPatch, projectPath(project.ID), admin.Token, map[string]interface{}{
		"student_ids": []uint64{bob.User.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Len(t, updated.Students, 1)
	require.Equal(t, bob.User.ID, updated.Students[0].ID)

	w = env.doRequest(t, http.MethodGet, taskPath(task.ID), admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded dto.TaskDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reloaded))
	require.Nil(t, reloaded.AssignedStudent)
}

func TestProject_DeleteReportsWhetherAnythingWasRemoved(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signUp(t, "admin", true)
	project := env.createProject(t, admin.Token, "Doomed", nil)

	w := env.doRequest(t, http.MethodDelete, projectPath(project.ID), admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decodeBody(t, w)["deleted"])

	w = env.doRequest(t, http.MethodDelete, projectPath(project.ID), admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, decodeBody(t, w)["deleted"])

	w = env.doRequest(t, http.MethodGet, projectPath(project.ID), admin.Token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProject_GetUnknownIDReturnsNotFound(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signUp(t, "admin", true)

	w := env.doRequest(t, http.MethodGet, projectPath(12345), admin.Token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, apierrors.ErrCodeNotFound, decodeBody(t, w)["code"])
}
