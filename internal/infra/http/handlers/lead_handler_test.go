package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func TestHandleSync(t *testing.T) {
	tests := []struct {
		name       string
		report     usecase.SyncReport
		err        error
		wantStatus int
	}{
		{"ok", usecase.SyncReport{Completed: true, Rows: 3, Upserted: 3}, nil, http.StatusOK},
		{"sem coluna de id", usecase.SyncReport{}, &usecase.DomainError{Code: usecase.CodeSubmissionIDMissing, Message: "coluna ausente"}, http.StatusUnprocessableEntity},
		{"planilha fora", usecase.SyncReport{}, &usecase.TechnicalError{Code: usecase.CodeSheetFetchFailed, Message: "falha ao ler planilha", Err: errors.New("403")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncer := new(MockLeadSyncer)
			syncer.On("SyncAll", mock.Anything).Return(tt.report, tt.err)

			h := NewLeadHandler(syncer, new(MockLeadRepository), zap.NewNop().Sugar())
			w := httptest.NewRecorder()
			h.HandleSync(w, httptest.NewRequest(http.MethodPost, "/leads/sync", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.err == nil {
				var report usecase.SyncReport
				require.NoError(t, json.NewDecoder(w.Body).Decode(&report))
				assert.Equal(t, tt.report, report)
			}
		})
	}
}

func TestHandleGetLead(t *testing.T) {
	paidAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := new(MockLeadRepository)
	repo.On("FindByUID", mock.Anything, "sub-1").Return(&entity.Lead{
		UID:           "sub-1",
		Name:          "Ana",
		PaymentStatus: entity.PaymentApproved,
		PaidAt:        &paidAt,
		AmountPaid:    49.9,
	}, nil)
	repo.On("FindByUID", mock.Anything, "nope").Return(nil, entity.ErrLeadNotFound)

	h := NewLeadHandler(new(MockLeadSyncer), repo, zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	h.HandleGet(w, withURLParam(httptest.NewRequest(http.MethodGet, "/leads/sub-1", nil), "uid", "sub-1"))
	assert.Equal(t, http.StatusOK, w.Code)
	var resp LeadResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "approved", resp.PaymentStatus)
	assert.Equal(t, 49.9, resp.AmountPaid)

	w = httptest.NewRecorder()
	h.HandleGet(w, withURLParam(httptest.NewRequest(http.MethodGet, "/leads/nope", nil), "uid", "nope"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
