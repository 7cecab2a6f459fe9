package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/quote"
)

// QuoteJobs contains quote-related cron jobs
type QuoteJobs struct {
	quoteService quote.QuoteService
}

// NewQuoteJobs creates quote cron jobs
func NewQuoteJobs(quoteService quote.QuoteService) *QuoteJobs {
	return &QuoteJobs{
		quoteService: quoteService,
	}
}

// RegisterJobs registers all quote-related cron jobs
func (j *QuoteJobs) RegisterJobs(scheduler *Scheduler) {
	// Sweep quotes past their validity date every hour. Reads also settle
	// expiry lazily; the sweep keeps lists and reports honest in between.
	scheduler.AddJob(
		"expire_due_quotes",
		1*time.Hour,
		j.ExpireDueQuotes,
	)
}

// ExpireDueQuotes moves every non-terminal quote past valid_until to EXPIRED
func (j *QuoteJobs) ExpireDueQuotes(ctx context.Context) error {
	moved, err := j.quoteService.ExpireDue(ctx)
	if err != nil {
		return err
	}
	if moved > 0 {
		slog.Info("Expired overdue quotes", "count", moved)
	}
	return nil
}
