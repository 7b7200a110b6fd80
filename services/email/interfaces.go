package email

import "sweetcrumb-bakery-api/models"

type EmailSender interface {
	SendEmail(to, subject, body string) error
	SendOrderConfirmationEmail(to string, order *models.Order) error
	SendOrderStatusEmail(to string, order *models.Order) error
	SendQuoteEmail(to string, request *models.CustomCakeRequest) error
	SendWelcomeEmail(to string) error
}
