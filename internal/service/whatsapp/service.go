package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockbook/internal/domain/models"
	client "github.com/mamadbah2/stockbook/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// ReportFormatter renders a summary report as message text.
type ReportFormatter interface {
	FormatText(report models.Report) string
}

// MetaWhatsAppService delivers messages through the WhatsApp Cloud API.
type MetaWhatsAppService struct {
	client    client.Client
	formatter ReportFormatter
	recipient string
	logger    *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance. recipient is the
// default destination of scheduled reports.
func NewMetaWhatsAppService(c client.Client, formatter ReportFormatter, recipient string, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		client:    c,
		formatter: formatter,
		recipient: recipient,
		logger:    logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// Name identifies this service as a report publisher.
func (s *MetaWhatsAppService) Name() string { return "whatsapp" }

// Publish sends report to the configured default recipient.
func (s *MetaWhatsAppService) Publish(ctx context.Context, report models.Report) error {
	if s.recipient == "" {
		return errors.New("no report recipient configured")
	}
	return s.SendReport(ctx, s.recipient, report)
}

// SendReport renders report as text and sends it to a single recipient.
func (s *MetaWhatsAppService) SendReport(ctx context.Context, to string, report models.Report) error {
	if s.formatter == nil {
		return errors.New("no report formatter configured")
	}
	text := s.formatter.FormatText(report)
	if n := utf8.RuneCountInString(text); n > client.MaxBodyLength {
		s.logger.Warn("summary report exceeds message limit and will be truncated",
			zap.Int("length", n),
			zap.Int("limit", client.MaxBodyLength),
			zap.Stringer("start", report.Start),
			zap.Stringer("end", report.End))
	}
	err := s.SendOutbound(ctx, models.OutboundMessageRequest{To: to, Message: text})
	if err != nil {
		return fmt.Errorf("send summary %s..%s: %w", report.Start, report.End, err)
	}
	s.logger.Info("summary report sent",
		zap.String("to", to),
		zap.Stringer("start", report.Start),
		zap.Stringer("end", report.End))
	return nil
}

// SendOutbound lets internal operators push quick notifications.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	return err
}
