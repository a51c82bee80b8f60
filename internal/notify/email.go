package notify

import (
	"fmt"
	"html"

	"github.com/shopspring/decimal"

	"pricetrack/internal/models"
)

// PriceDropEmail builds the alert subject and HTML body for a price drop.
func PriceDropEmail(userName string, product *models.Product, newPrice, oldPrice decimal.Decimal) (subject, body string) {
	subject = fmt.Sprintf("Price Drop Alert: %s", product.Name)

	discountPct := decimal.Zero
	saved := decimal.Zero
	if oldPrice.GreaterThan(newPrice) && oldPrice.IsPositive() {
		saved = oldPrice.Sub(newPrice)
		discountPct = saved.Div(oldPrice).Mul(decimal.NewFromInt(100)).Round(0)
	}

	name := html.EscapeString(userName)
	productName := html.EscapeString(product.Name)

	imageBlock := ""
	if product.ImageURL != nil && *product.ImageURL != "" {
		imageBlock = fmt.Sprintf(
			`<img src=%q alt=%q style="max-width:300px;border-radius:8px;display:block;margin:10px auto;">`,
			*product.ImageURL, productName,
		)
	}

	body = fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:20px;">
  <h2 style="color:#13ec5b;">Price Drop Alert!</h2>
  <p>Great news, %s!</p>
  <p>The price of <strong>%s</strong> has dropped.</p>
  %s
  <div style="background:#f5f5f5;padding:20px;border-radius:8px;margin:20px 0;">
    <p><strong>Old Price:</strong> <span style="text-decoration:line-through;">&#8377;%s</span></p>
    <p><strong>New Price:</strong> <span style="color:#13ec5b;font-size:24px;font-weight:bold;">&#8377;%s</span></p>
    <p><strong>You Save:</strong> &#8377;%s (%s%% OFF)</p>
  </div>
  <a href=%q style="display:inline-block;background:#13ec5b;color:#102216;padding:12px 24px;text-decoration:none;border-radius:6px;font-weight:bold;">Buy Now</a>
  <p style="margin-top:30px;color:#666;font-size:12px;">You're receiving this because you set a price alert.</p>
</div>`,
		name, productName, imageBlock,
		oldPrice.StringFixed(0), newPrice.StringFixed(0),
		saved.StringFixed(0), discountPct.String(),
		product.URL,
	)

	return subject, body
}
