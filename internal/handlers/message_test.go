package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studenthub/studenthub-api/internal/dto"
	apierrors "github.com/studenthub/studenthub-api/internal/errors"
	"github.com/studenthub/studenthub-api/internal/models"
)

func (env testEnv) sendMessage(t *testing.T, token string, senderID, recipientID uint64, text string) dto.MessageDTO {
	t.Helper()

	w := env.doRequest(t, http.MethodPost, "/api/messages", token, map[string]interface{}{
		"sender_id":    senderID,
		"recipient_id": recipientID,
		"text":         text,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var message dto.MessageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &message))
	return message
}

func TestMessage_CreatePopulatesParticipants(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.signUp(t, "alice", false)
	bob := env.signUp(t, "bob", false)

	message := env.sendMessage(t, alice.Token, alice.User.ID, bob.User.ID, "hey bob")
	require.Equal(t, "hey bob", message.Text)
	require.NotNil(t, message.Sender)
	require.Equal(t, "alice", message.Sender.Name)
	require.NotNil(t, message.Recipient)
	require.Equal(t, "bob", message.Recipient.Name)
	require.NotEmpty(t, message.Timestamp)
}

func TestMessage_UnknownParticipantLeavesNothingBehind(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.signUp(t, "alice", false)

	w := env.doRequest(t, http.MethodPost, "/api/messages", alice.Token, map[string]interface{}{
		"sender_id":    alice.User.ID,
		"recipient_id": uint64(9999),
		"text":         "into the void",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, apierrors.ErrCodeNotFound, decodeBody(t, w)["code"])

	// The failed send must not have written a record.
	var count int64
	require.NoError(t, env.db.Model(&models.Message{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestMessage_ConversationIsSymmetricAndOrdered(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.signUp(t, "alice", false)
	bob := env.signUp(t, "bob", false)
	carol := env.signUp(t, "carol", false)

	env.sendMessage(t, alice.Token, alice.User.ID, bob.User.ID, "first")
	env.sendMessage(t, bob.Token, bob.User.ID, alice.User.ID, "second")
	env.sendMessage(t, alice.Token, alice.User.ID, bob.User.ID, "third")
	// Noise from a different pair must not leak in.
	env.sendMessage(t, carol.Token, carol.User.ID, alice.User.ID, "unrelated")

	fetch := func(a, b uint64) []dto.MessageDTO {
		path := fmt.Sprintf("/api/messages/conversation?student_id=%d&with=%d", a, b)
		w := env.doRequest(t, http.MethodGet, path, alice.Token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var messages []dto.MessageDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
		return messages
	}

	forward := fetch(alice.User.ID, bob.User.ID)
	reverse := fetch(bob.User.ID, alice.User.ID)
	require.Equal(t, forward, reverse)

	require.Len(t, forward, 3)
	require.Equal(t, "first", forward[0].Text)
	require.Equal(t, "second", forward[1].Text)
	require.Equal(t, "third", forward[2].Text)
}

func TestMessage_ConversationDefaultsToCaller(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.signUp(t, "alice", false)
	bob := env.signUp(t, "bob", false)

	env.sendMessage(t, alice.Token, alice.User.ID, bob.User.ID, "hello")

	path := fmt.Sprintf("/api/messages/conversation?with=%d", bob.User.ID)
	w := env.doRequest(t, http.MethodGet, path, alice.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var messages []dto.MessageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
	require.Len(t, messages, 1)
	require.Equal(t, "hello", messages[0].Text)
}

func TestMessage_UpdateAndDeleteAreAdminOnly(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.signUp(t, "admin", true)
	alice := env.signUp(t, "alice", false)
	bob := env.signUp(t, "bob", false)

	message := env.sendMessage(t, alice.Token, alice.User.ID, bob.User.ID, "typo-riddled")
	path := fmt.Sprintf("/api/messages/%d", message.ID)

	w := env.doRequest(t, http.MethodPatch, path, alice.Token, map[string]string{"text": "fixed"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = env.doRequest(t, http.MethodPatch, path, admin.Token, map[string]string{"text": "fixed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated dto.MessageDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, "fixed", updated.Text)

	w = env.doRequest(t, http.MethodDelete, path, admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, decodeBody(t, w)["deleted"])

	w = env.doRequest(t, http.MethodDelete, path, admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, decodeBody(t, w)["deleted"])
}

func TestMessage_CreatePublishesToRecipientSubscribers(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.signUp(t, "alice", false)
	bob := env.signUp(t, "bob", false)

	ch, cancel := env.hub.Subscribe(bob.User.ID)
	defer cancel()

	sent := env.sendMessage(t, alice.Token, alice.User.ID, bob.User.ID, "ping")

	select {
	case received := <-ch:
		require.Equal(t, sent.ID, received.ID)
		require.Equal(t, "ping", received.Text)
	case <-time.After(time.Second):
		t.Fatal("expected a published message for the recipient")
	}
}
