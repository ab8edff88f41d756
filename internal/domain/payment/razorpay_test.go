// internal/domain/payment/razorpay_test.go
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/gearup-sports/storefront-backend/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	client := NewRazorpayClient(&config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "test_secret",
	})

	mac := hmac.New(sha256.New, []byte("test_secret"))
	mac.Write([]byte("order_abc|pay_xyz"))
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, client.VerifySignature("order_abc", "pay_xyz", valid))
	assert.False(t, client.VerifySignature("order_abc", "pay_xyz", "tampered"))
	assert.False(t, client.VerifySignature("order_other", "pay_xyz", valid))
}

func TestEnabled(t *testing.T) {
	assert.False(t, NewRazorpayClient(&config.RazorpayConfig{}).Enabled())
	assert.True(t, NewRazorpayClient(&config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "test_secret",
	}).Enabled())
}
