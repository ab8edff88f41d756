// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/gearup-sports/storefront-backend/internal/config"
	"github.com/gearup-sports/storefront-backend/internal/domain/order"
	"github.com/gearup-sports/storefront-backend/internal/pkg/currency"
)

// Service generates PDF invoices for orders
type Service struct {
	config   *config.Config
	template *template.Template
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config:   cfg,
		template: template.Must(template.New("invoice").Parse(invoiceTemplate)),
	}
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	SiteName      string
	GSTRateLabel  string
	Order         *order.Order
	CustomerName  string
	Items         []InvoiceLine
	Subtotal      string
	Shipping      string
	Tax           string
	Total         string
}

// InvoiceLine is one rendered invoice row
type InvoiceLine struct {
	Name      string
	Variant   string
	Quantity  int
	UnitPrice string
	Total     string
}

// GenerateInvoice renders an order invoice as a PDF
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", o.OrderNumber),
		InvoiceDate:   o.CreatedAt.Format("2 January 2006"),
		SiteName:      s.config.App.Name,
		GSTRateLabel:  fmt.Sprintf("GST (%.0f%%)", float64(s.config.Pricing.TaxRateBps)/100),
		Order:         o,
		CustomerName:  o.ShippingAddress.FirstName + " " + o.ShippingAddress.LastName,
		Subtotal:      currency.FormatINR(o.Subtotal),
		Shipping:      currency.FormatINR(o.Shipping),
		Tax:           currency.FormatINR(o.Tax),
		Total:         currency.FormatINR(o.Total),
	}

	for _, item := range o.Items {
		variant := item.Size
		if item.Color != "" {
			if variant != "" {
				variant += " / "
			}
			variant += item.Color
		}
		data.Items = append(data.Items, InvoiceLine{
			Name:      item.Name,
			Variant:   variant,
			Quantity:  item.Quantity,
			UnitPrice: currency.FormatINR(item.Price),
			Total:     currency.FormatINR(item.Total),
		})
	}

	var htmlBuf bytes.Buffer
	if err := s.template.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render invoice template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(htmlBuf.Bytes()))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Invoice {{.InvoiceNumber}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 0; padding: 24px; color: #222; }
  .header { display: flex; justify-content: space-between; border-bottom: 2px solid #1a56db; padding-bottom: 12px; }
  .brand { font-size: 24px; font-weight: bold; color: #1a56db; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  th, td { text-align: left; padding: 8px; border-bottom: 1px solid #ddd; }
  th { background: #f3f4f6; }
  .totals td { border: none; padding: 4px 8px; }
  .totals .grand { font-weight: bold; font-size: 16px; border-top: 2px solid #222; }
  .right { text-align: right; }
</style>
</head>
<body>
  <div class="header">
    <div class="brand">{{.SiteName}}</div>
    <div>
      <div><strong>{{.InvoiceNumber}}</strong></div>
      <div>{{.InvoiceDate}}</div>
    </div>
  </div>

  <h3>Billed to</h3>
  <p>
    {{.CustomerName}}<br>
    {{.Order.ShippingAddress.Street}}<br>
    {{.Order.ShippingAddress.City}}, {{.Order.ShippingAddress.State}} {{.Order.ShippingAddress.PostalCode}}<br>
    {{.Order.ShippingAddress.Country}}
  </p>

  <table>
    <tr><th>Item</th><th>Qty</th><th class="right">Unit Price</th><th class="right">Amount</th></tr>
    {{range .Items}}
    <tr>
      <td>{{.Name}}{{if .Variant}} ({{.Variant}}){{end}}</td>
      <td>{{.Quantity}}</td>
      <td class="right">{{.UnitPrice}}</td>
      <td class="right">{{.Total}}</td>
    </tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td></td><td class="right">Subtotal</td><td class="right">{{.Subtotal}}</td></tr>
    <tr><td></td><td class="right">Shipping</td><td class="right">{{.Shipping}}</td></tr>
    <tr><td></td><td class="right">{{.GSTRateLabel}}</td><td class="right">{{.Tax}}</td></tr>
    <tr class="grand"><td></td><td class="right grand">Total</td><td class="right grand">{{.Total}}</td></tr>
  </table>

  <p>Order {{.Order.OrderNumber}} &middot; Payment: {{.Order.PaymentMethod}}</p>
</body>
</html>
`
