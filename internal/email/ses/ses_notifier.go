package ses

import (
	"context"
	"fmt"
	"html"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"dgiconsole/internal/config"
	"dgiconsole/internal/domain"
	"dgiconsole/internal/port"
)

type sendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesNotifier struct {
	client     sendEmailAPI
	from       string
	to         string
	consoleURL string
}

// NewSESNotifier creates a new SES-backed ClearanceNotifier. Static
// credentials are used when configured; otherwise the default AWS chain.
func NewSESNotifier(ctx context.Context, cfg *config.EmailConfig) (port.ClearanceNotifier, error) {
	if cfg.NotifyAddress == "" {
		return nil, fmt.Errorf("email.notify_address is required for the ses provider")
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return newNotifier(sesv2.NewFromConfig(awsCfg), cfg), nil
}

func newNotifier(client sendEmailAPI, cfg *config.EmailConfig) *sesNotifier {
	return &sesNotifier{
		client:     client,
		from:       fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress),
		to:         cfg.NotifyAddress,
		consoleURL: cfg.ConsoleURL,
	}
}

func (s *sesNotifier) NotifyClearance(ctx context.Context, invoice domain.Invoice) error {
	msg := buildMessage(invoice, s.invoiceURL(invoice.ID))

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: []string{s.to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.html)},
					Text: &types.Content{Data: aws.String(msg.text)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func (s *sesNotifier) invoiceURL(id int64) string {
	return fmt.Sprintf("%s/invoices/%s", s.consoleURL, url.PathEscape(fmt.Sprint(id)))
}

type message struct {
	subject string
	text    string
	html    string
}

func buildMessage(invoice domain.Invoice, link string) message {
	number := invoice.Number
	if number == "" {
		number = fmt.Sprintf("#%d", invoice.ID)
	}

	if reason, rejected := invoice.RejectionReason(); rejected {
		return message{
			subject: fmt.Sprintf("Invoice %s was rejected by the DGI", number),
			text: fmt.Sprintf("Invoice %s for %s was rejected during clearance.\n\nReason: %s\n\nReview it at %s\n",
				number, invoice.CustomerName, reason, link),
			html: fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #B91C1C;">Invoice %s rejected</h2>
  <p>Invoice %s for %s was rejected during clearance.</p>
  <p><strong>Reason:</strong> %s</p>
  <p><a href="%s">Open the invoice</a> to correct it and move it back to Draft.</p>
</body>
</html>`, html.EscapeString(number), html.EscapeString(number), html.EscapeString(invoice.CustomerName),
				html.EscapeString(reason), link),
		}
	}

	return message{
		subject: fmt.Sprintf("Invoice %s was validated by the DGI", number),
		text: fmt.Sprintf("Invoice %s for %s passed clearance.\n\nView it at %s\n",
			number, invoice.CustomerName, link),
		html: fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #15803D;">Invoice %s validated</h2>
  <p>Invoice %s for %s passed clearance.</p>
  <p><a href="%s">Open the invoice</a></p>
</body>
</html>`, html.EscapeString(number), html.EscapeString(number), html.EscapeString(invoice.CustomerName), link),
	}
}
