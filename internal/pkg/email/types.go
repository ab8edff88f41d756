// internal/pkg/email/types.go
package email

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeWelcome           EmailType = "welcome"
	EmailTypeOrderConfirmation EmailType = "order_confirmation"
	EmailTypeOrderShipped      EmailType = "order_shipped"
)

// Email represents an email message
type Email struct {
	To          []string  `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"html_content"`
	Type        EmailType `json:"type"`
}

// orderConfirmationData feeds the order confirmation template
type orderConfirmationData struct {
	SiteName          string
	CustomerName      string
	OrderNumber       string
	OrderDate         string
	Items             []orderLineData
	Subtotal          string
	Shipping          string
	Tax               string
	Total             string
	EstimatedDelivery string
}

type orderLineData struct {
	Name     string
	Variant  string
	Quantity int
	Total    string
}

// welcomeData feeds the welcome template
type welcomeData struct {
	SiteName     string
	CustomerName string
}
