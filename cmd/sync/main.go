package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/xavierca1/ligue-leads/internal/infra/config"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/sheets"
	"github.com/xavierca1/ligue-leads/internal/infra/logger"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// Roda um único Bulk Sync e sai. Pensado para cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuração inválida: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao criar logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("falha ao conectar no banco", "error", err)
	}
	defer db.Close()

	sheetClient, err := sheets.NewClient(ctx, cfg.GoogleCredentials)
	if err != nil {
		log.Fatalw("falha ao criar cliente do Google Sheets", "error", err)
	}

	syncUC := usecase.NewSyncLeadsUseCase(
		sheetClient,
		database.NewLeadRepository(db),
		usecase.DefaultColumnMapping(),
		cfg.SpreadsheetID,
		cfg.SheetRange,
		log,
	)

	report, err := syncUC.SyncAll(ctx)
	if err != nil {
		log.Errorw("sync falhou", "code", usecase.ErrorCode(err), "error", err)
		os.Exit(1)
	}

	fmt.Printf("Sync concluído: %d linhas, %d upserts, %d falhas, %d ignoradas\n",
		report.Rows, report.Upserted, report.Failed, report.Skipped)
	if report.Failed > 0 {
		os.Exit(2)
	}
}
