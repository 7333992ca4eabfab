package worker

import (
	"context"
	"fmt"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/infra"
	"isletmeapp/internal/model"
	"isletmeapp/internal/repository"

	"github.com/rs/zerolog/log"
)

// ReportWorker builds the daily treasury PDF and mails it to the
// configured recipient.
type ReportWorker struct {
	pools       repository.CashPoolRepository
	debts       func(ctx context.Context) ([]dto.DebtEntryResponse, error)
	mailer      *infra.Mailer
	recipient   string
	storagePath string
}

func NewReportWorker(
	pools repository.CashPoolRepository,
	debts func(ctx context.Context) ([]dto.DebtEntryResponse, error),
	mailer *infra.Mailer,
	recipient string,
	storagePath string,
) *ReportWorker {
	return &ReportWorker{
		pools:       pools,
		debts:       debts,
		mailer:      mailer,
		recipient:   recipient,
		storagePath: storagePath,
	}
}

func (w *ReportWorker) Handle(ctx context.Context, p ReportPayload) error {
	pools, err := w.pools.List(ctx)
	if err != nil {
		return fmt.Errorf("report: list pools: %w", err)
	}
	ordered := make([]model.CashPool, 0, len(pools))
	for _, id := range model.PoolIDs {
		for _, pool := range pools {
			if pool.ID == id {
				ordered = append(ordered, pool)
			}
		}
	}

	debts, err := w.debts(ctx)
	if err != nil {
		return fmt.Errorf("report: compute debts: %w", err)
	}

	pdfPath, err := infra.GenerateTreasuryReportPDF(p.Date, ordered, debts, w.storagePath)
	if err != nil {
		return err
	}

	if w.recipient == "" {
		log.Warn().Str("date", p.Date).Msg("report: no recipient configured, PDF written only")
		return nil
	}

	subject := fmt.Sprintf("Günlük Kasa Raporu %s", p.Date)
	body := fmt.Sprintf("%s tarihli kasa raporu ektedir.", p.Date)
	if err := w.mailer.SendReport(w.recipient, subject, body, pdfPath); err != nil {
		return fmt.Errorf("report: send mail: %w", err)
	}

	log.Info().Str("date", p.Date).Str("pdf", pdfPath).Msg("daily report sent")
	return nil
}
