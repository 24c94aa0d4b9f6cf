package controllers_test

import (
	"net/http"
	"testing"

	"github.com/cybersleuth25/unisphere/internal/app/models"
	"github.com/cybersleuth25/unisphere/internal/app/models/dto"
	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
)

func TestStartConversationReturnsID(t *testing.T) {
	env := newTestEnv(t)
	env.chatSvc.startResp = &dto.StartConversationResponse{ConversationID: 15}
	token := env.token(t, 1, "ada@unisphere.edu", models.RoleStudent)

	rec := env.do(t, http.MethodPost, "/api/v1/conversations", token, dto.StartConversationRequest{
		Email: "grace@unisphere.edu",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data dto.StartConversationResponse `json:"data"`
	}
	decodeResponse(t, rec, &resp)
	if resp.Data.ConversationID != 15 {
		t.Errorf("conversation_id = %d, want 15", resp.Data.ConversationID)
	}
}

func TestStartConversationRequiresFriendship(t *testing.T) {
	env := newTestEnv(t)
	env.chatSvc.startErr = apperrors.ErrNotFriends
	token := env.token(t, 1, "ada@unisphere.edu", models.RoleStudent)

	rec := env.do(t, http.MethodPost, "/api/v1/conversations", token, dto.StartConversationRequest{
		Email: "stranger@unisphere.edu",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403: %s", rec.Code, rec.Body.String())
	}
}

func TestListMessagesReturnsHistory(t *testing.T) {
	env := newTestEnv(t)
	env.chatSvc.listResp = []dto.MessageResponse{
		{ID: 1, SenderEmail: "grace@unisphere.edu", Body: "hey", IsRead: true},
		{ID: 2, SenderEmail: "ada@unisphere.edu", Body: "hi", IsRead: false},
	}
	token := env.token(t, 1, "ada@unisphere.edu", models.RoleStudent)

	rec := env.do(t, http.MethodGet, "/api/v1/conversations/15/messages", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data []dto.MessageResponse `json:"data"`
	}
	decodeResponse(t, rec, &resp)
	if len(resp.Data) != 2 {
		t.Fatalf("messages = %+v", resp.Data)
	}
	if resp.Data[0].Body != "hey" || resp.Data[0].SenderEmail != "grace@unisphere.edu" {
		t.Errorf("first message = %+v", resp.Data[0])
	}
}

func TestListMessagesOutsiderIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	env.chatSvc.listErr = apperrors.ErrNotParticipant
	token := env.token(t, 99, "outsider@unisphere.edu", models.RoleStudent)

	rec := env.do(t, http.MethodGet, "/api/v1/conversations/15/messages", token, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403: %s", rec.Code, rec.Body.String())
	}
}

func TestListMessagesUnknownConversation(t *testing.T) {
	env := newTestEnv(t)
	env.chatSvc.listErr = apperrors.ErrConversationNotFound
	token := env.token(t, 1, "ada@unisphere.edu", models.RoleStudent)

	rec := env.do(t, http.MethodGet, "/api/v1/conversations/404/messages", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestSendMessageReturnsCreated(t *testing.T) {
	env := newTestEnv(t)
	env.chatSvc.sendResp = &dto.MessageResponse{
		ID:          3,
		SenderEmail: "ada@unisphere.edu",
		Body:        "see you at the library",
	}
	token := env.token(t, 1, "ada@unisphere.edu", models.RoleStudent)

	rec := env.do(t, http.MethodPost, "/api/v1/conversations/15/messages", token, dto.SendMessageRequest{
		Body: "see you at the library",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	if env.chatSvc.sentBody != "see you at the library" {
		t.Errorf("service received body %q", env.chatSvc.sentBody)
	}

	var resp struct {
		Data dto.MessageResponse `json:"data"`
	}
	decodeResponse(t, rec, &resp)
	if resp.Data.ID != 3 || resp.Data.Body != "see you at the library" {
		t.Errorf("message = %+v", resp.Data)
	}
}

func TestSendMessageBlankBodyIsBadRequest(t *testing.T) {
	env := newTestEnv(t)
	env.chatSvc.sendErr = apperrors.ErrEmptyMessage
	token := env.token(t, 1, "ada@unisphere.edu", models.RoleStudent)

	rec := env.do(t, http.MethodPost, "/api/v1/conversations/15/messages", token, dto.SendMessageRequest{
		Body: "   ",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}
