package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type fakeBroker struct{ closed bool }

func (f fakeBroker) IsClosed() bool { return f.closed }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		broker     BrokerConn
		wantStatus int
		wantState  string
	}{
		{"tudo ok", fakePinger{}, fakeBroker{}, http.StatusOK, "healthy"},
		{"banco fora", fakePinger{err: errors.New("refused")}, fakeBroker{}, http.StatusServiceUnavailable, "degraded"},
		{"rabbit fechado", fakePinger{}, fakeBroker{closed: true}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, tt.broker, true)
			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp HealthResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.wantState, resp.Status)
			assert.Equal(t, "configured", resp.Dependencies["mercadopago"])
		})
	}
}
