package email

import (
	"context"
	"fmt"

	"github.com/billing-panel/backend/internal/application/adapter"
	"github.com/billing-panel/backend/internal/domain/entity"
	domainerror "github.com/billing-panel/backend/internal/domain/error"
	"github.com/billing-panel/backend/internal/integration/email/templates"
)

// Service renders customer emails. Payment requests go out synchronously,
// everything else through the queue.
type Service struct {
	queue       adapter.EmailQueueRepository
	sender      adapter.EmailSender
	renderer    *templates.Renderer
	clock       adapter.Clock
	companyName string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, clock adapter.Clock, companyName string) *Service {
	return &Service{
		queue:       queue,
		sender:      sender,
		renderer:    renderer,
		clock:       clock,
		companyName: companyName,
	}
}

// Subject returns the subject line used for a template.
func (s *Service) Subject(input adapter.CustomerEmailInput) string {
	switch input.Template {
	case entity.TemplatePaymentRequest:
		return fmt.Sprintf("Invoice for %s - %s", input.Period, s.companyName)
	case entity.TemplatePaymentReminder:
		return fmt.Sprintf("Payment reminder: invoice %s is overdue", input.Period)
	case entity.TemplateFinalReminder:
		return fmt.Sprintf("Final reminder: invoice %s is %d days overdue", input.Period, input.DaysOverdue)
	case entity.TemplateLowBalanceAlert:
		return "Low balance alert - " + s.companyName
	case entity.TemplateAccountSuspended:
		return "Your account has been suspended"
	case entity.TemplateAccountShutdown:
		return "Your account has been shut down"
	}
	return s.companyName
}

func (s *Service) noticeData(input adapter.CustomerEmailInput) templates.NoticeData {
	return templates.NoticeData{
		CompanyName:    s.companyName,
		CustomerName:   input.CustomerName,
		Period:         input.Period,
		AmountDue:      input.AmountDue,
		DueDate:        input.DueDate,
		DaysOverdue:    input.DaysOverdue,
		PaymentLinkURL: input.PaymentLinkURL,
		Reason:         input.Reason,
		Balance:        input.Balance,
		MinimumBalance: input.MinimumBalance,
	}
}

func (s *Service) validate(input adapter.CustomerEmailInput) error {
	if input.CustomerEmail == "" {
		return domainerror.NewEmailError(
			domainerror.ErrCodeMissingRecipient,
			"customer has no email address",
			domainerror.ErrMissingRecipient,
		)
	}
	if !s.renderer.Has(string(input.Template)) {
		return domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template type",
			domainerror.ErrInvalidTemplate,
		)
	}
	return nil
}

// SendPaymentRequest renders and sends the payment request email synchronously.
func (s *Service) SendPaymentRequest(ctx context.Context, input adapter.CustomerEmailInput) (*adapter.SendEmailResult, error) {
	input.Template = entity.TemplatePaymentRequest
	if err := s.validate(input); err != nil {
		return nil, err
	}

	html, text, err := s.renderer.Render(string(input.Template), s.noticeData(input))
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render payment request",
			err,
		)
	}

	return s.sender.Send(ctx, adapter.SendEmailInput{
		To:      input.CustomerEmail,
		Name:    input.CustomerName,
		Subject: s.Subject(input),
		HTML:    html,
		Text:    text,
	})
}

// QueueCustomerNotice queues a reminder, alert or account notice for the worker.
func (s *Service) QueueCustomerNotice(ctx context.Context, input adapter.CustomerEmailInput) error {
	if err := s.validate(input); err != nil {
		return err
	}

	customerID := input.CustomerID
	job := entity.NewEmailJob(
		input.Template,
		input.CustomerEmail,
		input.CustomerName,
		s.Subject(input),
		s.noticeData(input).Map(),
	)
	job.CustomerID = &customerID
	job.InvoiceID = input.InvoiceID
	// The worker selects due jobs by the same clock.
	job.CreatedAt = s.clock.Now().UTC()
	job.ScheduledAt = job.CreatedAt

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue customer notice",
			err,
		)
	}
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
