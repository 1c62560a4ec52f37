package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bioscrap/internal/metrics"
	"bioscrap/internal/relay"
)

const (
	subject  = "New Contact Inquiry - BioScrap Website"
	fromName = "BioScrap Website"

	sentTitle   = "Message Sent!"
	sentMessage = "We'll get back to you within 24 hours."
)

// Service forwards contact form submissions to the forms API.
type Service struct {
	transport relay.Transport
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewService(transport relay.Transport, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{transport: transport, metrics: m, logger: logger}
}

// Submit sends the form. The reply is only positive when the forms API confirmed it.
func (s *Service) Submit(ctx context.Context, req *SubmitContactRequest) (*SubmitContactResponse, error) {
	form := buildForm(req)

	if err := s.transport.Submit(ctx, form); err != nil {
		s.metrics.RecordSubmission("contact", "failed")
		s.logger.Warn("contact submission failed", zap.Error(err))

		var rejection *relay.RejectionError
		if errors.As(err, &rejection) && rejection.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrSendFailed, rejection.Message)
		}
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	s.metrics.RecordSubmission("contact", "ok")
	return &SubmitContactResponse{Title: sentTitle, Message: sentMessage}, nil
}

func buildForm(req *SubmitContactRequest) relay.Form {
	var form relay.Form
	form.Add("subject", subject)
	form.Add("from_name", fromName)
	form.Add("Name", strings.TrimSpace(req.Name))
	form.Add("Email", strings.TrimSpace(req.Email))
	form.Add("Phone", strings.TrimSpace(req.Phone))
	if service := strings.TrimSpace(req.Service); service != "" {
		form.Add("Service", service)
	}
	form.Add("Message", req.Message)
	return form
}
