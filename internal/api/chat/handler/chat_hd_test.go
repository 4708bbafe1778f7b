package chatHandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"HealthAssistant/internal/api/chat"
	chatRepository "HealthAssistant/internal/api/chat/repository"
	chatService "HealthAssistant/internal/api/chat/service"
	"HealthAssistant/internal/middleware"
	"HealthAssistant/pkg/log"
	"HealthAssistant/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := log.NewLogger()
	store := chatRepository.NewMemoryStore(logger)
	svc := chatService.New(logger, store, nil, nil, nil, utils.New())

	app := fiber.New()
	handler := New(logger, validator.New(), middleware.New(logger), svc)
	handler.Start(app.Group("/api/v1"))

	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeChatResponse(t *testing.T, resp *http.Response) chat.ChatResponse {
	t.Helper()

	var envelope chat.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestProcessMessage_Endpoint(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/chat/", `{"message":"I have a fever and cough for 3 days"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decodeChatResponse(t, resp)
	assert.True(t, strings.HasPrefix(envelope.SessionID, "session_"))
	assert.Equal(t, "symptom_analysis", envelope.Intent)
	assert.NotNil(t, envelope.FollowUpQuestions)
	assert.NotEmpty(t, envelope.Result.Message)
}

func TestProcessMessage_EmptyMessageRejected(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/chat/", `{"message":""}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProcessMessage_UnknownSession(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/chat/", `{"message":"hello","session_id":"session_missing"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestConversationLifecycle_Endpoints(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/chat/", `{"message":"I have a headache"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	sessionID := decodeChatResponse(t, resp).SessionID

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/conversation/"+sessionID, nil)
	getResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, getResp.StatusCode)

	var conversation chat.ConversationResponse
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&conversation))
	assert.Len(t, conversation.Turns, 2)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/chat/conversation/"+sessionID, nil)
	delResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, delResp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/chat/conversation/"+sessionID, nil)
	getResp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, getResp.StatusCode)
}

func TestGetCapabilities_Endpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/capabilities", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var capabilities chat.CapabilitiesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&capabilities))
	assert.Len(t, capabilities.Capabilities, 6)
}
