package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"

	"preetenglish/internal/models"
)

// Mailer delivers report summaries via Amazon SES. When no from address is
// configured the mailer is disabled and sends become no-ops, so pipeline
// runs never fail on missing email configuration.
type Mailer struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	logger    *zap.Logger
}

// NewMailer creates a mailer. An empty fromEmail yields a disabled mailer.
func NewMailer(ctx context.Context, awsRegion, fromEmail, fromName string, logger *zap.Logger) (*Mailer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fromEmail == "" {
		logger.Info("report mailer disabled: no from address configured")
		return &Mailer{enabled: false, logger: logger}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info("report mailer enabled",
		zap.String("from", fromEmail),
		zap.String("region", awsRegion))
	return &Mailer{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		logger:    logger,
	}, nil
}

// IsEnabled reports whether sends will actually go out
func (m *Mailer) IsEnabled() bool {
	return m.enabled
}

// SendAuditReport emails the rendered audit summary
func (m *Mailer) SendAuditReport(ctx context.Context, toEmail string, summary *models.AuditSummary) error {
	subject := fmt.Sprintf("Content audit: %d/%d passed (%s profile)",
		summary.Passed, summary.Total, summary.Profile)
	return m.send(ctx, toEmail, subject, AuditMarkdown(summary))
}

// SendValidationReport emails the rendered validation summary
func (m *Mailer) SendValidationReport(ctx context.Context, toEmail string, summary *models.ValidationSummary) error {
	subject := fmt.Sprintf("Content validation: %d/%d valid", summary.Valid, summary.Total)
	return m.send(ctx, toEmail, subject, ValidationMarkdown(summary))
}

func (m *Mailer) send(ctx context.Context, toEmail, subject, markdown string) error {
	if !m.enabled {
		m.logger.Info("skipping report email, mailer disabled",
			zap.String("to", toEmail),
			zap.String("subject", subject))
		return nil
	}

	fromAddress := m.fromEmail
	if m.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(markdownToHTML(markdown)),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(markdown),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send report to %s: %w", toEmail, err)
	}
	if result.MessageId != nil {
		m.logger.Info("report email sent",
			zap.String("to", toEmail),
			zap.String("message_id", *result.MessageId))
	}
	return nil
}

// markdownToHTML wraps the markdown in a minimal preformatted HTML shell.
// Mail clients render the text part anyway; the HTML part just keeps the
// table alignment readable.
func markdownToHTML(markdown string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><body><pre style=\"font-family: monospace;\">")
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	b.WriteString(replacer.Replace(markdown))
	b.WriteString("</pre></body></html>")
	return b.String()
}
