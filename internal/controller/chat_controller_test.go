package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"legislation-qa-be/internal/dto"
	"legislation-qa-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatService struct {
	hadDeadline    bool
	blockUntilDone bool
}

func (f *fakeChatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	_, f.hadDeadline = ctx.Deadline()
	if f.blockUntilDone {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return &dto.CreateSessionResponse{SessionId: uuid.NewString(), CreatedAt: time.Now()}, nil
}

func (f *fakeChatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	_, f.hadDeadline = ctx.Deadline()
	if f.blockUntilDone {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return &dto.SendChatResponse{SessionId: request.SessionId, Response: "ok", Route: "Simple"}, nil
}

func newTestApp(svc *fakeChatService, timeout time.Duration) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewChatController(svc, timeout).RegisterRoutes(app.Group("/api"))
	return app
}

func sendChatRequest(t *testing.T, app *fiber.App, msTimeout int) *http.Response {
	t.Helper()

	body, err := json.Marshal(dto.SendChatRequest{
		SessionId: uuid.NewString(),
		Message:   "what does article 5 say?",
	})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/api/chat/v1", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, msTimeout)
	require.NoError(t, err)
	return resp
}

func TestSendChatDerivesDeadline(t *testing.T) {
	svc := &fakeChatService{}
	app := newTestApp(svc, 30*time.Second)

	resp := sendChatRequest(t, app, 2000)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, svc.hadDeadline, "service context should carry a deadline")
}

func TestCreateSessionDerivesDeadline(t *testing.T) {
	svc := &fakeChatService{}
	app := newTestApp(svc, 30*time.Second)

	req, err := http.NewRequest(http.MethodPost, "/api/chat/v1/sessions", nil)
	require.NoError(t, err)

	resp, err := app.Test(req, 2000)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, svc.hadDeadline, "service context should carry a deadline")
}

// A downstream call that never returns on its own (stalled store, hung
// model) must still surface as a failed request once the deadline passes.
func TestSendChatFailsWhenDownstreamStalls(t *testing.T) {
	svc := &fakeChatService{blockUntilDone: true}
	app := newTestApp(svc, 50*time.Millisecond)

	started := time.Now()
	resp := sendChatRequest(t, app, 5000)
	elapsed := time.Since(started)

	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	assert.Less(t, elapsed, 2*time.Second, "request should return shortly after the deadline")
}

func TestNewChatControllerDefaultsTimeout(t *testing.T) {
	svc := &fakeChatService{blockUntilDone: false}
	app := newTestApp(svc, 0)

	resp := sendChatRequest(t, app, 2000)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, svc.hadDeadline, "zero config value should fall back to a default deadline")
}
