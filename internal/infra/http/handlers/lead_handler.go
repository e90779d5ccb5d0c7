package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type LeadHandler struct {
	Syncer   usecase.LeadSyncer
	LeadRepo entity.LeadRepositoryInterface
	Log      *zap.SugaredLogger
}

func NewLeadHandler(syncer usecase.LeadSyncer, leadRepo entity.LeadRepositoryInterface, log *zap.SugaredLogger) *LeadHandler {
	return &LeadHandler{
		Syncer:   syncer,
		LeadRepo: leadRepo,
		Log:      log,
	}
}

type LeadResponse struct {
	UID           string     `json:"uid"`
	Name          string     `json:"name"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	RegisteredAt  time.Time  `json:"registered_at"`
	StartedTest   bool       `json:"started_test"`
	CompletedTest bool       `json:"completed_test"`
	PaymentStatus string     `json:"payment_status"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	AmountPaid    float64    `json:"amount_paid"`
}

// HandleSync: POST /leads/sync
func (h *LeadHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	report, err := h.Syncer.SyncAll(r.Context())
	middleware.RecordLeadSync("http", report.Upserted, err)
	if err != nil {
		if usecase.IsTechnicalError(err) {
			middleware.RecordIntegrationError("sheets")
		}
		h.Log.Errorw("sync manual falhou", "code", usecase.ErrorCode(err), "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// HandleGet: GET /leads/{uid}
func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	lead, err := h.LeadRepo.FindByUID(r.Context(), uid)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.Log.Errorw("erro ao buscar lead", "uid", uid, "error", err)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LeadResponse{
		UID:           lead.UID,
		Name:          lead.Name,
		Email:         lead.Email,
		Phone:         lead.Phone,
		RegisteredAt:  lead.RegisteredAt,
		StartedTest:   lead.StartedTest,
		CompletedTest: lead.CompletedTest,
		PaymentStatus: string(lead.PaymentStatus),
		PaidAt:        lead.PaidAt,
		AmountPaid:    lead.AmountPaid,
	})
}
