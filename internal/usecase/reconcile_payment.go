package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type ReconcilePaymentUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Syncer LeadSyncer
	Log    *zap.SugaredLogger
	now    func() time.Time
}

func NewReconcilePaymentUseCase(repo entity.LeadRepositoryInterface, syncer LeadSyncer, log *zap.SugaredLogger) *ReconcilePaymentUseCase {
	return &ReconcilePaymentUseCase{
		Repo:   repo,
		Syncer: syncer,
		Log:    log,
		now:    time.Now,
	}
}

// MarkPaid marca o lead como pago. Nunca propaga erro: qualquer falha é logada e vira false.
func (uc *ReconcilePaymentUseCase) MarkPaid(ctx context.Context, uid string, amount float64) bool {
	if _, err := uc.EnsureRecordExists(ctx, uid); err != nil {
		uc.Log.Errorw("conciliação abortada: lead indisponível", "uid", uid, "amount", amount, "error", err)
		return false
	}

	if err := uc.ApplyPayment(ctx, uid, amount); err != nil {
		uc.Log.Errorw("conciliação falhou ao gravar pagamento", "uid", uid, "amount", amount, "error", err)
		return false
	}

	uc.Log.Infow("lead marcado como pago", "uid", uid, "amount", amount)
	return true
}

// EnsureRecordExists garante que o lead está no banco. Se não estiver, roda um único
// Bulk Sync e confere de novo. Retorna true quando o registro só passou a existir após o sync.
func (uc *ReconcilePaymentUseCase) EnsureRecordExists(ctx context.Context, uid string) (bool, error) {
	_, err := uc.Repo.FindByUID(ctx, uid)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, entity.ErrLeadNotFound) {
		return false, fmt.Errorf("erro ao buscar lead %s: %w", uid, err)
	}

	uc.Log.Infow("lead ausente no banco, sincronizando planilha", "uid", uid)
	if _, err := uc.Syncer.SyncAll(ctx); err != nil {
		return false, fmt.Errorf("sync antes da conciliação falhou: %w", err)
	}

	if _, err := uc.Repo.FindByUID(ctx, uid); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return false, fmt.Errorf("lead %s continua ausente após sync: %w", uid, err)
		}
		return false, fmt.Errorf("erro ao buscar lead %s após sync: %w", uid, err)
	}
	return true, nil
}

// ApplyPayment grava status approved, paidAt e o valor. Falha com ErrLeadNotFound se
// nenhuma linha foi atualizada.
func (uc *ReconcilePaymentUseCase) ApplyPayment(ctx context.Context, uid string, amount float64) error {
	update := entity.PaymentUpdate{
		Status:     entity.PaymentApproved,
		PaidAt:     uc.now(),
		AmountPaid: amount,
	}
	if err := uc.Repo.UpdatePayment(ctx, uid, update); err != nil {
		return fmt.Errorf("erro ao atualizar pagamento do lead %s: %w", uid, err)
	}
	return nil
}
