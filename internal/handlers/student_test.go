package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/studenthub/studenthub-api/internal/dto"
	apierrors "github.com/studenthub/studenthub-api/internal/errors"
)

func TestStudent_UpdateRequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)
	user := env.signUp(t, "plainuser", false)

	w := env.doRequest(t, http.MethodPatch, fmt.Sprintf("/api/students/%d", user.User.ID), user.Token, map[string]interface{}{
		"name": "renamed",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, apierrors.ErrCodeForbidden, decodeBody(t, w)["code"])
}

func TestStudent_PartialUpdate(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signUp(t, "admin", true)

	w := env.doRequest(t, http.MethodPost, "/api/auth/signup", "", map[string]interface{}{
		"name":          "student-a",
		"password":      "supersecret",
		"university_id": "U-1234",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.AuthPayloadDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Only the university id is provided; the name must survive. An
	// explicitly empty value overwrites.
	w = env.doRequest(t, http.MethodPatch, fmt.Sprintf("/api/students/%d", created.User.ID), admin.Token, map[string]interface{}{
		"university_id": "",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated dto.StudentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "student-a", updated.Name)
	require.Empty(t, updated.UniversityID)
}

func TestStudent_RenameToExistingNameConflicts(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signUp(t, "admin", true)
	env.signUp(t, "occupied", false)
	victim := env.signUp(t, "renamable", false)

	w := env.doRequest(t, http.MethodPatch, fmt.Sprintf("/api/students/%d", victim.User.ID), admin.Token, map[string]interface{}{
		"name": "occupied",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestStudent_DeleteIsIdempotentlyObservable(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signUp(t, "admin", true)
	user := env.signUp(t, "doomed", false)

	path := fmt.Sprintf("/api/students/%d", user.User.ID)

	first := env.doRequest(t, http.MethodDelete, path, admin.Token, nil)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, map[string]interface{}{"deleted": true}, decodeBody(t, first))

	second := env.doRequest(t, http.MethodDelete, path, admin.Token, nil)
	require.Equal(t, http.StatusOK, second.Code)
	require.Equal(t, map[string]interface{}{"deleted": false}, decodeBody(t, second))

	never := env.doRequest(t, http.MethodDelete, "/api/students/99999", admin.Token, nil)
	require.Equal(t, http.StatusOK, never.Code)
	require.Equal(t, map[string]interface{}{"deleted": false}, decodeBody(t, never))
}

func TestStudent_ListAndGet(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signUp(t, "admin", true)
	other := env.signUp(t, "classmate", false)

	w := env.doRequest(t, http.MethodGet, "/api/students", admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var students []dto.StudentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &students))
	require.Len(t, students, 2)

	w = env.doRequest(t, http.MethodGet, fmt.Sprintf("/api/students/%d", other.User.ID), admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var single dto.StudentDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &single))
	require.Equal(t, "classmate", single.Name)
}
