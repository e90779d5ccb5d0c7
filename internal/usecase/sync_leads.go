package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type SyncLeadsUseCase struct {
	Sheets        SheetReader
	Repo          entity.LeadRepositoryInterface
	Mapping       ColumnMapping
	SpreadsheetID string
	SheetRange    string
	Log           *zap.SugaredLogger
}

func NewSyncLeadsUseCase(
	sheets SheetReader,
	repo entity.LeadRepositoryInterface,
	mapping ColumnMapping,
	spreadsheetID, sheetRange string,
	log *zap.SugaredLogger,
) *SyncLeadsUseCase {
	return &SyncLeadsUseCase{
		Sheets:        sheets,
		Repo:          repo,
		Mapping:       mapping,
		SpreadsheetID: spreadsheetID,
		SheetRange:    sheetRange,
		Log:           log,
	}
}

// SyncAll relê a planilha inteira e faz upsert de cada linha, uma por vez.
// Retorna erro apenas quando a planilha não pôde ser lida ou não tem a coluna de submission id;
// falhas de linhas individuais são contadas no relatório.
func (uc *SyncLeadsUseCase) SyncAll(ctx context.Context) (SyncReport, error) {
	var report SyncReport

	rows, err := uc.Sheets.ReadRange(ctx, uc.SpreadsheetID, uc.SheetRange)
	if err != nil {
		return report, &TechnicalError{
			Code:    CodeSheetFetchFailed,
			Message: "falha ao ler planilha",
			Err:     err,
		}
	}

	if len(rows) < 2 {
		uc.Log.Infow("planilha sem linhas de dados, nada a sincronizar", "range", uc.SheetRange)
		return report, nil
	}

	cols := uc.Mapping.resolve(rows[0])
	if cols.uid < 0 {
		return report, &DomainError{
			Code:    CodeSubmissionIDMissing,
			Message: fmt.Sprintf("coluna de submission id não encontrada no cabeçalho %v", rows[0]),
		}
	}

	for _, row := range rows[1:] {
		report.Rows++

		lead := uc.buildLead(row, cols)
		if lead == nil {
			report.Skipped++
			continue
		}

		if err := uc.Repo.Upsert(ctx, lead); err != nil {
			report.Failed++
			uc.Log.Warnw("falha no upsert do lead", "uid", lead.UID, "error", err)
			continue
		}
		report.Upserted++
	}

	report.Completed = true
	uc.Log.Infow("sync de leads concluído",
		"rows", report.Rows,
		"upserted", report.Upserted,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
	return report, nil
}

func (uc *SyncLeadsUseCase) buildLead(row []string, cols columnIndex) *entity.Lead {
	uid := cell(row, cols.uid)
	if uid == "" {
		return nil
	}

	completed := cell(row, uc.Mapping.CompletionColumn) != ""

	lead := entity.NewLead(
		uid,
		cell(row, cols.name),
		cell(row, cols.email),
		parseTimestampOrNow(cell(row, cols.timestamp)),
		completed,
	)
	lead.Phone = cell(row, cols.phone)
	return lead
}
