package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/phone-1/messages", r.URL.Path)
		assert.Equal(t, "Bearer wa-token", r.Header.Get("Authorization"))

		var body sendMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "5511999998888", body.To)
		assert.Equal(t, "pagamento_aprovado", body.Template.Name)
		assert.Equal(t, "pt_BR", body.Template.Language.Code)
		require.Len(t, body.Template.Components, 1)
		require.Len(t, body.Template.Components[0].Parameters, 2)
		assert.Equal(t, "Ana", body.Template.Components[0].Parameters[0].Text)

		w.Write([]byte(`{"messaging_product": "whatsapp", "messages": [{"id": "wamid.123"}]}`))
	}))
	defer server.Close()

	client := NewClient("wa-token", "phone-1", server.URL)
	id, err := client.SendMessage(context.Background(), SendMessageInput{
		PhoneNumber:  "5511999998888",
		TemplateName: "pagamento_aprovado",
		Parameters:   []string{"Ana", "R$ 49,90"},
	})

	require.NoError(t, err)
	assert.Equal(t, "wamid.123", id)
}

func TestSendMessageAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "Template name does not exist", "code": 132001}}`))
	}))
	defer server.Close()

	_, err := NewClient("wa-token", "phone-1", server.URL).SendMessage(context.Background(), SendMessageInput{PhoneNumber: "1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Template name does not exist")
}

func TestSendMessageNotConfigured(t *testing.T) {
	_, err := NewClient("", "", "").SendMessage(context.Background(), SendMessageInput{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
