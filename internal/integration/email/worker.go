package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/integration/email/templates"
)

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
	}
}

// BatchResult counts what one pass over the queue did.
type BatchResult struct {
	Sent     int
	Retrying int
	Failed   int
}

// Worker drains the email queue. Jobs whose send fails are rescheduled with
// backoff until their attempts run out.
type Worker struct {
	queue    adapter.EmailQueueRepository
	sender   adapter.EmailSender
	renderer *templates.Renderer
	clock    adapter.Clock
	config   WorkerConfig
}

// NewWorker creates a new email worker.
func NewWorker(
	queue adapter.EmailQueueRepository,
	sender adapter.EmailSender,
	renderer *templates.Renderer,
	clock adapter.Clock,
	config WorkerConfig,
) *Worker {
	defaults := DefaultWorkerConfig()
	if config.PollInterval <= 0 {
		config.PollInterval = defaults.PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	return &Worker{
		queue:    queue,
		sender:   sender,
		renderer: renderer,
		clock:    clock,
		config:   config,
	}
}

// Start polls the queue until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.config.PollInterval,
		"batch_size", w.config.BatchSize,
	)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	w.ProcessNow(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-ticker.C:
			w.ProcessNow(ctx)
		}
	}
}

// ProcessNow processes one batch of due emails.
func (w *Worker) ProcessNow(ctx context.Context) BatchResult {
	var result BatchResult

	jobs, err := w.queue.GetPendingJobs(ctx, w.clock.Now(), w.config.BatchSize)
	if err != nil {
		slog.Error("Failed to get pending email jobs", "error", err)
		return result
	}
	if len(jobs) == 0 {
		return result
	}

	slog.Debug("Processing email batch", "count", len(jobs))

	for _, job := range jobs {
		if ctx.Err() != nil {
			return result
		}
		switch w.processJob(ctx, job) {
		case entity.EmailStatusSent:
			result.Sent++
		case entity.EmailStatusPending:
			result.Retrying++
		case entity.EmailStatusFailed:
			result.Failed++
		}
	}
	return result
}

// Drain processes batches until nothing is due or a batch makes no progress.
func (w *Worker) Drain(ctx context.Context) BatchResult {
	var total BatchResult
	for ctx.Err() == nil {
		batch := w.ProcessNow(ctx)
		total.Sent += batch.Sent
		total.Retrying += batch.Retrying
		total.Failed += batch.Failed
		if batch.Sent+batch.Failed == 0 {
			break
		}
	}
	return total
}

func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) entity.EmailStatus {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"recipient", job.RecipientEmail,
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as processing", "error", err)
		return entity.EmailStatusProcessing
	}

	html, text, err := w.render(job)
	if err != nil {
		logger.Error("Failed to render email template", "error", err)
		return w.fail(ctx, job, err, true)
	}

	sent, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("Failed to send email", "error", err)
		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodePermanentEmailFailure
		return w.fail(ctx, job, err, permanent)
	}

	job.MarkSent(sent.ProviderID, w.clock.Now().UTC())
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
	}

	logger.Info("Email sent", "provider_id", sent.ProviderID)
	return entity.EmailStatusSent
}

func (w *Worker) render(job *entity.EmailJob) (string, string, error) {
	name := string(job.TemplateType)
	if !w.renderer.Has(name) {
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template type",
			domainerror.ErrInvalidTemplate,
		)
	}
	return w.renderer.Render(name, templates.NoticeDataFromMap(job.TemplateData))
}

func (w *Worker) fail(ctx context.Context, job *entity.EmailJob, err error, permanent bool) entity.EmailStatus {
	job.MarkFailed(err, permanent, w.clock.Now().UTC())

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		slog.Error("Failed to update job after failure", "job_id", job.ID, "error", updateErr)
	}

	if job.Status == entity.EmailStatusFailed {
		slog.Warn("Email job permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
	} else {
		slog.Info("Email job scheduled for retry",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"scheduled_at", job.ScheduledAt,
		)
	}
	return job.Status
}
