package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"whatsapp-storefront-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDialogService struct {
	turns []*dto.InboundMessage
}

func (f *fakeDialogService) HandleTurn(ctx context.Context, msg *dto.InboundMessage) (*dto.TurnResult, error) {
	f.turns = append(f.turns, msg)
	return &dto.TurnResult{Reply: "ok"}, nil
}

func (f *fakeDialogService) ResetSession(ctx context.Context, phoneNumberId, userId string) error {
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newWebhookApp(t *testing.T) (*fiber.App, *fakeDialogService) {
	t.Helper()
	dialog := &fakeDialogService{}
	app := fiber.New()
	NewWebhookController(dialog, "secret-token", noopLogger{}).RegisterRoutes(app)
	return app, dialog
}

func TestWebhookVerify(t *testing.T) {
	app, _ := newWebhookApp(t)

	t.Run("valid handshake echoes challenge", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=secret-token&hub.challenge=12345", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "12345", string(body))
	})

	t.Run("wrong token is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("wrong mode is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/webhook?hub.mode=unsubscribe&hub.verify_token=secret-token", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestWebhookEvent(t *testing.T) {
	textEvent := `{
		"entry": [{"changes": [{"value": {
			"metadata": {"phone_number_id": "15550001111"},
			"messages": [{"from": "5511999990000", "type": "text", "text": {"body": "oi"}}]
		}}]}]
	}`

	t.Run("text message reaches the engine", func(t *testing.T) {
		app, dialog := newWebhookApp(t)

		req := httptest.NewRequest("POST", "/webhook", strings.NewReader(textEvent))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		require.Len(t, dialog.turns, 1)
		assert.Equal(t, "15550001111", dialog.turns[0].PhoneNumberId)
		assert.Equal(t, "5511999990000", dialog.turns[0].From)
		assert.Equal(t, "oi", dialog.turns[0].Text)
	})

	t.Run("status event is acked and ignored", func(t *testing.T) {
		app, dialog := newWebhookApp(t)

		statusEvent := `{"entry": [{"changes": [{"value": {"metadata": {"phone_number_id": "15550001111"}, "statuses": [{"id": "x"}]}}]}]}`
		req := httptest.NewRequest("POST", "/webhook", strings.NewReader(statusEvent))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Empty(t, dialog.turns)
	})

	t.Run("garbage body is still acked", func(t *testing.T) {
		app, dialog := newWebhookApp(t)

		req := httptest.NewRequest("POST", "/webhook", strings.NewReader("not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Empty(t, dialog.turns)
	})
}
