// internal/domain/payment/upi.go
package payment

import (
	"context"
	"fmt"
	"math/rand"
	"net/url"
	"time"

	"github.com/gearup-sports/storefront-backend/internal/config"
	"github.com/gearup-sports/storefront-backend/internal/pkg/currency"
)

// UPIMethod identifies a UPI payment app
type UPIMethod string

const (
	UPIMethodGPay      UPIMethod = "gpay"
	UPIMethodPhonePe   UPIMethod = "phonepe"
	UPIMethodPaytm     UPIMethod = "paytm"
	UPIMethodBHIM      UPIMethod = "bhim"
	UPIMethodAmazonPay UPIMethod = "amazonpay"
	UPIMethodWhatsApp  UPIMethod = "whatsapp"
)

// UPIMethodInfo describes a UPI app for the payment method list
type UPIMethodInfo struct {
	Method      UPIMethod `json:"method"`
	DisplayName string    `json:"display_name"`
	DeepLink    string    `json:"deep_link"` // App-specific URI scheme
}

// upiMethods lists the supported UPI apps with their deep link schemes
var upiMethods = []UPIMethodInfo{
	{UPIMethodGPay, "Google Pay", "tez://upi/pay"},
	{UPIMethodPhonePe, "PhonePe", "phonepe://pay"},
	{UPIMethodPaytm, "Paytm", "paytmmp://pay"},
	{UPIMethodBHIM, "BHIM UPI", "upi://pay"},
	{UPIMethodAmazonPay, "Amazon Pay", "amzn://pay"},
	{UPIMethodWhatsApp, "WhatsApp Pay", "whatsapp://pay"},
}

// UPIMethods returns the supported UPI payment apps
func UPIMethods() []UPIMethodInfo {
	methods := make([]UPIMethodInfo, len(upiMethods))
	copy(methods, upiMethods)
	return methods
}

// IsValidUPIMethod reports whether the method is a supported UPI app
func IsValidUPIMethod(method string) bool {
	for _, m := range upiMethods {
		if string(m.Method) == method {
			return true
		}
	}
	return false
}

// UPIRequest represents a UPI collection request
type UPIRequest struct {
	Method      UPIMethod `json:"method"`
	OrderNumber string    `json:"order_number"`
	Amount      int64     `json:"amount"` // In paise
}

// UPIResponse is the structured result of a payment attempt. Failures
// are results, not errors; transport problems are errors.
type UPIResponse struct {
	Success       bool      `json:"success"`
	Method        UPIMethod `json:"method"`
	TransactionID string    `json:"transaction_id,omitempty"`
	ProviderRef   string    `json:"provider_ref,omitempty"`
	Amount        int64     `json:"amount"`
	FailureReason string    `json:"failure_reason,omitempty"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// UPIGateway simulates a UPI payment provider. Real provider integration
// sits behind the same request and response shapes.
type UPIGateway struct {
	config *config.UPIConfig
	rng    *rand.Rand
}

// NewUPIGateway creates a simulated UPI gateway
func NewUPIGateway(cfg *config.UPIConfig) *UPIGateway {
	return &UPIGateway{
		config: cfg,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// PaymentURL builds the upi://pay collection URL for the request
func (g *UPIGateway) PaymentURL(req *UPIRequest) string {
	params := url.Values{}
	params.Set("pa", g.config.PayeeVPA)
	params.Set("pn", g.config.PayeeName)
	params.Set("am", fmt.Sprintf("%.2f", currency.ToRupees(req.Amount)))
	params.Set("cu", "INR")
	params.Set("tn", fmt.Sprintf("Payment for order %s", req.OrderNumber))
	params.Set("tr", req.OrderNumber)
	params.Set("mc", g.config.MerchantCode)

	return "upi://pay?" + params.Encode()
}

// QRString returns the payload encoded into the checkout QR code
func (g *UPIGateway) QRString(req *UPIRequest) string {
	return g.PaymentURL(req)
}

// Process simulates the payment round trip. It waits a random interval
// within the configured delay window, honouring context cancellation,
// then resolves to success or failure per the configured success rate.
func (g *UPIGateway) Process(ctx context.Context, req *UPIRequest) (*UPIResponse, error) {
	if !IsValidUPIMethod(string(req.Method)) {
		return nil, fmt.Errorf("unsupported UPI method: %s", req.Method)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}

	delay := g.config.MinDelay
	if window := g.config.MaxDelay - g.config.MinDelay; window > 0 {
		delay += time.Duration(g.rng.Int63n(int64(window)))
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(delay):
	}

	response := &UPIResponse{
		Method:      req.Method,
		Amount:      req.Amount,
		ProcessedAt: time.Now().UTC(),
	}

	if g.rng.Float64() < g.config.SuccessRate {
		response.Success = true
		response.TransactionID = g.newTransactionID("TXN")
		response.ProviderRef = g.newTransactionID("PAY")
	} else {
		response.FailureReason = g.randomFailureReason()
	}

	return response, nil
}

func (g *UPIGateway) newTransactionID(prefix string) string {
	return fmt.Sprintf("%s%d%04d", prefix, time.Now().UnixMilli(), g.rng.Intn(10000))
}

var failureReasons = []string{
	"Payment declined by bank",
	"Insufficient balance",
	"UPI PIN attempts exceeded",
	"Transaction timed out at the payer app",
}

func (g *UPIGateway) randomFailureReason() string {
	return failureReasons[g.rng.Intn(len(failureReasons))]
}
