package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type LeadSyncWorker struct {
	syncer       usecase.LeadSyncer
	tickInterval time.Duration
	log          *zap.SugaredLogger
}

func NewLeadSyncWorker(syncer usecase.LeadSyncer, interval time.Duration, log *zap.SugaredLogger) *LeadSyncWorker {
	return &LeadSyncWorker{
		syncer:       syncer,
		tickInterval: interval,
		log:          log,
	}
}

// Start roda um sync imediato e depois um a cada tickInterval, até o contexto ser cancelado.
// Intervalo <= 0 desliga o worker.
func (w *LeadSyncWorker) Start(ctx context.Context) {
	if w.tickInterval <= 0 {
		w.log.Infow("sync agendado desligado", "interval", w.tickInterval)
		return
	}

	w.log.Infow("lead sync worker iniciado", "interval", w.tickInterval)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Infow("lead sync worker encerrado")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *LeadSyncWorker) runOnce(ctx context.Context) {
	report, err := w.syncer.SyncAll(ctx)
	middleware.RecordLeadSync("schedule", report.Upserted, err)
	if err != nil {
		if usecase.IsTechnicalError(err) {
			middleware.RecordIntegrationError("sheets")
		}
		w.log.Errorw("sync agendado falhou", "code", usecase.ErrorCode(err), "error", err)
		return
	}

	if report.Failed > 0 {
		w.log.Warnw("sync agendado com falhas", "failed", report.Failed, "upserted", report.Upserted)
	}
}
