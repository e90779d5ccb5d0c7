package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

const OriginManual = "MANUAL"

type ProcessPaymentUseCase struct {
	Reconciler PaymentReconciler
	Repo       entity.LeadRepositoryInterface
	Queue      QueueProducerInterface
	Log        *zap.SugaredLogger
}

func NewProcessPaymentUseCase(
	reconciler PaymentReconciler,
	repo entity.LeadRepositoryInterface,
	queue QueueProducerInterface,
	log *zap.SugaredLogger,
) *ProcessPaymentUseCase {
	return &ProcessPaymentUseCase{
		Reconciler: reconciler,
		Repo:       repo,
		Queue:      queue,
		Log:        log,
	}
}

// Execute concilia um pagamento aprovado e, se deu certo, publica a notificação na fila.
// Falha de publicação é só logada: o pagamento já está gravado.
func (uc *ProcessPaymentUseCase) Execute(ctx context.Context, input ProcessPaymentInput) error {
	uid := strings.TrimSpace(input.UID)
	if uid == "" {
		return &DomainError{Code: CodeValidation, Message: "uid é obrigatório"}
	}
	if input.Amount <= 0 {
		return &DomainError{Code: CodeValidation, Message: "transaction_amount deve ser maior que zero"}
	}

	if !uc.Reconciler.MarkPaid(ctx, uid, input.Amount) {
		return &TechnicalError{
			Code:    CodeReconciliationFailed,
			Message: "não foi possível marcar o lead " + uid + " como pago",
		}
	}

	origin := input.Origin
	if origin == "" {
		origin = OriginManual
	}

	payload := queue.PaymentApprovedPayload{
		UID:       uid,
		PaymentID: input.PaymentID,
		Amount:    input.Amount,
		Phone:     input.Phone,
		Origin:    origin,
	}

	lead, err := uc.Repo.FindByUID(ctx, uid)
	if err != nil {
		uc.Log.Warnw("lead pago mas não recarregado para notificação", "uid", uid, "error", err)
	} else {
		payload.Name = lead.Name
		payload.Email = lead.Email
		if payload.Phone == "" {
			payload.Phone = lead.Phone
		}
	}

	if uc.Queue == nil {
		return nil
	}
	if err := uc.Queue.PublishPaymentApproved(ctx, payload); err != nil {
		uc.Log.Errorw("CRITICAL: pagamento gravado, mas falha ao publicar notificação", "uid", uid, "error", err)
		return nil
	}

	uc.Log.Infow("notificação de pagamento enfileirada", "uid", uid, "origin", origin)
	return nil
}
