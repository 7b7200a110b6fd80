package email

import (
	"fmt"
	"strings"

	"sweetcrumb-bakery-api/models"
	"sweetcrumb-bakery-api/utils"
)

const emailShell = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Sweetcrumb Bakery</title>
</head>
<body style="margin: 0; padding: 0; background-color: #fdf6f0; font-family: Georgia, 'Times New Roman', serif;">
    <table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%" style="background-color: #fdf6f0;">
        <tr>
            <td align="center" style="padding: 40px 20px;">
                <table role="presentation" cellspacing="0" cellpadding="0" border="0" width="600" style="background-color: #ffffff; border-radius: 8px;">
                    <tr>
                        <td style="padding: 32px; border-bottom: 2px solid #e8b4b8;">
                            <h1 style="margin: 0; color: #7d4f50;">Sweetcrumb Bakery</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 32px; color: #3d3d3d;">
                            %s
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 24px 32px; background-color: #fdf6f0; color: #8a8a8a; font-size: 12px;">
                            Sweetcrumb Bakery &middot; custom cakes baked with love
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

// RenderOrderConfirmation builds the checkout confirmation email with the
// itemized breakdown and the e-Transfer instructions.
func RenderOrderConfirmation(order *models.Order) string {
	var items strings.Builder
	for _, item := range order.Items {
		items.WriteString(fmt.Sprintf(
			"<tr><td>%s%s</td><td align=\"center\">%d</td><td align=\"right\">%s</td></tr>",
			item.Title, sizeSuffix(item.SelectedSize), item.Quantity,
			utils.FormatMoney(item.UnitPrice*float64(item.Quantity)),
		))
	}

	b := order.Breakdown
	content := fmt.Sprintf(`
        <h2>Thank you, %s!</h2>
        <p>Your order <strong>%s</strong> has been received and is awaiting your e-Transfer.
        Once we confirm the payment we will start working on it right away.</p>
        <table width="100%%" cellpadding="6" style="border-collapse: collapse;">
            <tr><th align="left">Item</th><th>Qty</th><th align="right">Price</th></tr>
            %s
        </table>
        <hr>
        <p>
            Subtotal: %s<br>
            Registration discount: -%s<br>
            Promo discount: -%s<br>
            Tax (HST): %s<br>
            Delivery fee: %s<br>
            <strong>Total: %s</strong>
        </p>
        <p>Please send your e-Transfer for the total above. Your order status page
        updates as soon as we receive it.</p>
    `, order.CustomerName, order.ID, items.String(),
		utils.FormatMoney(b.Subtotal),
		utils.FormatMoney(b.RegistrationDiscountAmount),
		utils.FormatMoney(b.PromoDiscountAmount),
		utils.FormatMoney(b.Tax),
		utils.FormatMoney(b.DeliveryFee),
		utils.FormatMoney(b.Total))

	return fmt.Sprintf(emailShell, content)
}

func RenderOrderStatus(order *models.Order) string {
	content := fmt.Sprintf(`
        <h2>Order update</h2>
        <p>Hi %s, your order <strong>%s</strong> placed on %s is now:</p>
        <p style="font-size: 20px; color: #7d4f50;"><strong>%s</strong></p>
    `, order.CustomerName, order.ID, utils.FormatDate(order.CreatedAt), order.Status)

	return fmt.Sprintf(emailShell, content)
}

func RenderQuote(request *models.CustomCakeRequest) string {
	content := fmt.Sprintf(`
        <h2>Your custom cake quote is ready</h2>
        <p>Hi %s, we priced your %s cake (%s, %s):</p>
        <p style="font-size: 24px; color: #7d4f50;"><strong>%s</strong></p>
        <p>Reply to this email or visit your request page to approve the quote
        and we will get baking.</p>
    `, request.Name, request.Occasion, request.Size, request.Flavor,
		utils.FormatMoney(request.QuoteAmount))

	return fmt.Sprintf(emailShell, content)
}

func RenderWelcome() string {
	content := `
        <h2>Welcome!</h2>
        <p>You are on the list. Expect seasonal specials, new flavors and the
        occasional subscriber-only promo code.</p>
    `
	return fmt.Sprintf(emailShell, content)
}

func sizeSuffix(size string) string {
	if size == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", size)
}
