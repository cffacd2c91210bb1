package sendGrid_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Muhammed-KRM/E-ticaret/internal/models"
	"github.com/Muhammed-KRM/E-ticaret/pkg/sendGrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sendgridV3Payload struct {
	Personalizations []struct {
		To         []map[string]string `json:"to"`
		Cc         []map[string]string `json:"cc,omitempty"`
		Subject    string              `json:"subject"`
		CustomArgs map[string]string   `json:"custom_args,omitempty"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func setupEmailService(t *testing.T, handler http.HandlerFunc) (sendGrid.EmailService, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service := sendGrid.NewEmailService(sendGrid.Config{
		APIKey:    "SG.test-api-key",
		FromEmail: "shop@example.com",
		FromName:  "Storefront",
		BaseURL:   server.URL,
	})

	return service, server
}

func TestEmailService_Send(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Plain and HTML content", func(t *testing.T) {
		// Arrange
		var payload sendgridV3Payload
		service, _ := setupEmailService(t, func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, "Bearer SG.test-api-key", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusAccepted)
		})

		req := &models.EmailNotificationRequest{
			To:          "buyer@example.com",
			CC:          []string{"ops@example.com"},
			Subject:     "Order confirmed",
			Content:     "Thanks for your order",
			HTMLContent: "<p>Thanks for your order</p>",
			Metadata:    map[string]string{"event": "order_placed"},
		}

		// Act
		err := service.Send(ctx, req)

		// Assert
		require.NoError(t, err)
		require.Len(t, payload.Personalizations, 1)
		assert.Equal(t, "buyer@example.com", payload.Personalizations[0].To[0]["email"])
		assert.Equal(t, "ops@example.com", payload.Personalizations[0].Cc[0]["email"])
		assert.Equal(t, "Order confirmed", payload.Personalizations[0].Subject)
		assert.Equal(t, "order_placed", payload.Personalizations[0].CustomArgs["event"])
		assert.Equal(t, "shop@example.com", payload.From["email"])
		require.Len(t, payload.Content, 2)
		assert.Equal(t, "text/plain", payload.Content[0].Type)
		assert.Equal(t, "text/html", payload.Content[1].Type)
	})

	t.Run("Success - HTML block omitted when empty", func(t *testing.T) {
		var payload sendgridV3Payload
		service, _ := setupEmailService(t, func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &payload)
			w.WriteHeader(http.StatusAccepted)
		})

		err := service.Send(ctx, &models.EmailNotificationRequest{To: "a@example.com", Subject: "s", Content: "c"})

		require.NoError(t, err)
		assert.Len(t, payload.Content, 1)
	})

	t.Run("Failure - API error status", func(t *testing.T) {
		service, _ := setupEmailService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors":[{"message":"Invalid email"}]}`))
		})

		err := service.Send(ctx, &models.EmailNotificationRequest{To: "bad@example.com", Subject: "s", Content: "c"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send email, status code: 400")
	})

	t.Run("Failure - Network error", func(t *testing.T) {
		service, server := setupEmailService(t, func(w http.ResponseWriter, r *http.Request) {})
		server.Close()

		err := service.Send(ctx, &models.EmailNotificationRequest{To: "a@example.com", Subject: "s", Content: "c"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to send email")
	})

	t.Run("Failure - Not configured", func(t *testing.T) {
		service := sendGrid.NewEmailService(sendGrid.Config{FromEmail: "shop@example.com"})

		err := service.Send(ctx, &models.EmailNotificationRequest{To: "a@example.com", Subject: "s", Content: "c"})

		assert.ErrorIs(t, err, sendGrid.ErrNotConfigured)
	})
}
