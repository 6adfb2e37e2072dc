package email

import (
	"fmt"

	"github.com/hypernova-labs/dashboard-service/internal/models"
	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"
)

// ResendService maneja el envío de correos electrónicos usando Resend API
type ResendService struct {
	client    *resend.Client
	fromEmail string
	baseURL   string
	logger    *logrus.Logger
}

// NewResendService crea una nueva instancia de ResendService
func NewResendService(apiKey, fromEmail, baseURL string, logger *logrus.Logger) *ResendService {
	return &ResendService{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		baseURL:   baseURL,
		logger:    logger,
	}
}

// SendInvoiceCreatedEmail notifica al cliente que se registró una factura a
// su nombre. El fallo del envío no afecta la mutación ya persistida.
func (s *ResendService) SendInvoiceCreatedEmail(invoice *models.Invoice, customer *models.Customer) error {
	subject := fmt.Sprintf("New invoice for %s", customer.Name)

	htmlContent := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>Hola %s,</h2>
        <p>Se registró una nueva factura a tu nombre:</p>
        <ul>
            <li><strong>Monto:</strong> $%.2f</li>
            <li><strong>Estado:</strong> %s</li>
            <li><strong>Fecha:</strong> %s</li>
        </ul>
        <p>Puedes consultarla en <a href="%s/dashboard/invoices">el dashboard</a>.</p>
    </div>
</body>
</html>`,
		customer.Name,
		float64(invoice.Amount)/100,
		invoice.Status,
		invoice.Date,
		s.baseURL)

	request := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{customer.Email},
		Subject: subject,
		Html:    htmlContent,
	}

	result, err := s.client.Emails.Send(request)
	if err != nil {
		return fmt.Errorf("error sending email via Resend: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"email_id": result.Id,
		"to":       customer.Email,
		"subject":  subject,
	}).Info("Email sent successfully via Resend")

	return nil
}
