// internal/domain/payment/razorpay.go
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gearup-sports/storefront-backend/internal/config"
)

// RazorpayClient is a minimal client for the Razorpay Orders API, used
// for card and netbanking payments.
type RazorpayClient struct {
	config     *config.RazorpayConfig
	httpClient *http.Client
}

// NewRazorpayClient creates a new Razorpay API client
func NewRazorpayClient(cfg *config.RazorpayConfig) *RazorpayClient {
	return &RazorpayClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RazorpayOrder represents an order created with Razorpay
type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // In paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Enabled reports whether Razorpay credentials are configured
func (c *RazorpayClient) Enabled() bool {
	return c.config.KeyID != "" && c.config.KeySecret != ""
}

// CreateOrder creates a Razorpay order for the given amount in paise.
// The receipt is our order number, so gateway records reconcile against
// storefront orders.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amount int64, receipt string) (*RazorpayOrder, error) {
	payload := map[string]interface{}{
		"amount":   amount,
		"currency": "INR",
		"receipt":  receipt,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.config.KeyID, c.config.KeySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("razorpay request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read razorpay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("razorpay returned status %d: %s", resp.StatusCode, respBody)
	}

	var order RazorpayOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("failed to decode razorpay order: %w", err)
	}

	return &order, nil
}

// VerifySignature checks the payment signature returned by Razorpay
// checkout. The signature is HMAC-SHA256 of "<orderID>|<paymentID>"
// keyed with the API secret.
func (c *RazorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.config.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
