// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gearup-sports/storefront-backend/internal/config"
	"github.com/gearup-sports/storefront-backend/internal/domain/order"
	"github.com/gearup-sports/storefront-backend/internal/pkg/currency"
)

// Service sends transactional emails via the configured provider
type Service struct {
	config    *config.Config
	templates *template.Template
	client    *http.Client
}

// NewService creates a new email service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config:    cfg,
		templates: template.Must(template.New("email").Parse(emailTemplates)),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send dispatches an email using the configured provider
func (s *Service) Send(ctx context.Context, email *Email) error {
	switch s.config.External.Email.Provider {
	case "smtp":
		return s.sendSMTP(email)
	case "resend":
		return s.sendResend(ctx, email)
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.External.Email.Provider)
	}
}

// SendOrderConfirmation sends the order confirmation email
func (s *Service) SendOrderConfirmation(ctx context.Context, o *order.Order) error {
	data := orderConfirmationData{
		SiteName:     s.config.App.Name,
		CustomerName: strings.TrimSpace(o.ShippingAddress.FirstName + " " + o.ShippingAddress.LastName),
		OrderNumber:  o.OrderNumber,
		OrderDate:    o.CreatedAt.Format("2 January 2006"),
		Subtotal:     currency.FormatINR(o.Subtotal),
		Shipping:     currency.FormatINR(o.Shipping),
		Tax:          currency.FormatINR(o.Tax),
		Total:        currency.FormatINR(o.Total),
	}
	if o.EstimatedDelivery != nil {
		data.EstimatedDelivery = o.EstimatedDelivery.Format("2 January 2006")
	}

	for _, item := range o.Items {
		variant := item.Size
		if item.Color != "" {
			if variant != "" {
				variant += " / "
			}
			variant += item.Color
		}
		data.Items = append(data.Items, orderLineData{
			Name:     item.Name,
			Variant:  variant,
			Quantity: item.Quantity,
			Total:    currency.FormatINR(item.Total),
		})
	}

	htmlContent, err := s.render("order_confirmation", data)
	if err != nil {
		return err
	}

	return s.Send(ctx, &Email{
		To:          []string{o.ShippingAddress.Email},
		Subject:     fmt.Sprintf("Your %s order %s is confirmed", s.config.App.Name, o.OrderNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
	})
}

// SendWelcome sends the account welcome email
func (s *Service) SendWelcome(ctx context.Context, toEmail, name string) error {
	htmlContent, err := s.render("welcome", welcomeData{
		SiteName:     s.config.App.Name,
		CustomerName: name,
	})
	if err != nil {
		return err
	}

	return s.Send(ctx, &Email{
		To:          []string{toEmail},
		Subject:     fmt.Sprintf("Welcome to %s!", s.config.App.Name),
		HTMLContent: htmlContent,
		Type:        EmailTypeWelcome,
	})
}

func (s *Service) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}

const emailTemplates = `
{{define "welcome"}}
<html><body>
<h2>Welcome to {{.SiteName}}, {{.CustomerName}}!</h2>
<p>Your account is ready. Browse our cricket, football, badminton and fitness ranges and gear up for your next game.</p>
</body></html>
{{end}}

{{define "order_confirmation"}}
<html><body>
<h2>Thanks for your order, {{.CustomerName}}!</h2>
<p>Order <strong>{{.OrderNumber}}</strong> placed on {{.OrderDate}}.</p>
<table>
{{range .Items}}<tr><td>{{.Name}}{{if .Variant}} ({{.Variant}}){{end}} &times; {{.Quantity}}</td><td>{{.Total}}</td></tr>
{{end}}
<tr><td>Subtotal</td><td>{{.Subtotal}}</td></tr>
<tr><td>Shipping</td><td>{{.Shipping}}</td></tr>
<tr><td>GST</td><td>{{.Tax}}</td></tr>
<tr><td><strong>Total</strong></td><td><strong>{{.Total}}</strong></td></tr>
</table>
{{if .EstimatedDelivery}}<p>Estimated delivery: {{.EstimatedDelivery}}</p>{{end}}
<p>We will email you again when your order ships.</p>
</body></html>
{{end}}
`
