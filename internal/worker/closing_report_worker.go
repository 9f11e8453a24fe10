package worker

// closing_report_worker.go
// Processes closing-report jobs from QueueClosingReport: generates the
// closing-summary PDF and mails it to the configured back-office address.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jesusfb/carmu-api/internal/infra"
	"github.com/jesusfb/carmu-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ClosingReportWorker builds and delivers the per-close summary report.
type ClosingReportWorker struct {
	boxes          repository.CashboxRepository
	mailer         *infra.Mailer
	reportEmail    string
	pdfStoragePath string
}

func NewClosingReportWorker(boxes repository.CashboxRepository, mailer *infra.Mailer, reportEmail, pdfStoragePath string) *ClosingReportWorker {
	return &ClosingReportWorker{
		boxes:          boxes,
		mailer:         mailer,
		reportEmail:    reportEmail,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single closing-report job:
//  1. Parse ClosingReportPayload from the job envelope
//  2. Fetch the closing record with its sealed ledger
//  3. Generate the summary PDF
//  4. Mail it to the back-office report address
func (w *ClosingReportWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ClosingReportPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Malformed payloads never recover; do not retry.
		log.Error().Err(err).Msg("closing_report_worker: invalid payload")
		return nil
	}
	recordID, err := uuid.Parse(payload.ClosingRecordID)
	if err != nil {
		log.Error().Str("closing_record_id", payload.ClosingRecordID).Msg("closing_report_worker: invalid record id")
		return nil
	}

	rec, err := w.boxes.FindClosingByID(ctx, recordID)
	if err != nil {
		return fmt.Errorf("closing_report_worker: fetch record: %w", err)
	}

	pdfPath, err := infra.GenerateClosingPDF(rec, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("closing_report_worker: generate pdf: %w", err)
	}

	if w.reportEmail == "" {
		log.Warn().Msg("closing_report_worker: no report email configured — skipping send")
		return nil
	}

	subject := fmt.Sprintf("Cierre de caja — %s", rec.BoxName)
	body := fmt.Sprintf(
		"Caja: %s\nCajero: %s\nCerrada por: %s\nCierre: %s\n\nSe adjunta el resumen en PDF.",
		rec.BoxName, rec.CashierName, rec.UserName, rec.ClosingDate.Format("02/01/2006 15:04"),
	)
	if err := w.mailer.SendClosingReport(w.reportEmail, subject, body, pdfPath); err != nil {
		return fmt.Errorf("closing_report_worker: send mail: %w", err)
	}

	log.Info().
		Str("closing_record_id", recordID.String()).
		Str("to", w.reportEmail).
		Msg("closing_report_worker: report sent")
	return nil
}
