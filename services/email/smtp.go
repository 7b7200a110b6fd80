package email

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"

	"sweetcrumb-bakery-api/models"
	"sweetcrumb-bakery-api/utils"
)

const senderAddress = "no-reply@sweetcrumbbakery.ca"

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

type SMTPService struct {
	config SMTPConfig
}

func NewSMTPService(config SMTPConfig) *SMTPService {
	return &SMTPService{
		config: config,
	}
}

func (s *SMTPService) SendEmail(to, subject, body string) error {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         s.config.Host,
	}

	conn, err := net.Dial("tcp", fmt.Sprintf("%s:%s", s.config.Host, s.config.Port))
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %v", err)
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %v", err)
	}
	defer client.Close()

	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %v", err)
	}

	if err = client.Mail(senderAddress); err != nil {
		return fmt.Errorf("failed to set sender: %v", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %v", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to create email body writer: %v", err)
	}

	headers := fmt.Sprintf(
		"From: Sweetcrumb Bakery <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n",
		senderAddress, to, subject,
	)

	if _, err = w.Write([]byte(headers + body)); err != nil {
		return fmt.Errorf("failed to write email body: %v", err)
	}

	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close email body writer: %v", err)
	}

	return client.Quit()
}

func (s *SMTPService) SendOrderConfirmationEmail(to string, order *models.Order) error {
	body := RenderOrderConfirmation(order)
	return s.SendEmail(to, "We received your order!", body)
}

func (s *SMTPService) SendOrderStatusEmail(to string, order *models.Order) error {
	subject := fmt.Sprintf("Order update: %s", order.Status)
	return s.SendEmail(to, subject, RenderOrderStatus(order))
}

func (s *SMTPService) SendQuoteEmail(to string, request *models.CustomCakeRequest) error {
	subject := fmt.Sprintf("Your custom cake quote: %s", utils.FormatMoney(request.QuoteAmount))
	return s.SendEmail(to, subject, RenderQuote(request))
}

func (s *SMTPService) SendWelcomeEmail(to string) error {
	return s.SendEmail(to, "Welcome to the Sweetcrumb newsletter", RenderWelcome())
}
