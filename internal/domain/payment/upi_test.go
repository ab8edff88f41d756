// internal/domain/payment/upi_test.go
package payment

import (
	"context"
	"math/rand"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gearup-sports/storefront-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway(successRate float64, seed int64) *UPIGateway {
	g := NewUPIGateway(&config.UPIConfig{
		PayeeVPA:     "gearupsports@okaxis",
		PayeeName:    "GearUp Sports",
		MerchantCode: "5411",
		SuccessRate:  successRate,
		MinDelay:     time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
	})
	g.rng = rand.New(rand.NewSource(seed))
	return g
}

func TestPaymentURL(t *testing.T) {
	gateway := testGateway(1.0, 1)
	raw := gateway.PaymentURL(&UPIRequest{
		Method:      UPIMethodGPay,
		OrderNumber: "GS-2026-042",
		Amount:      315000,
	})

	require.True(t, strings.HasPrefix(raw, "upi://pay?"))

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	params := parsed.Query()

	assert.Equal(t, "gearupsports@okaxis", params.Get("pa"))
	assert.Equal(t, "GearUp Sports", params.Get("pn"))
	assert.Equal(t, "3150.00", params.Get("am"))
	assert.Equal(t, "INR", params.Get("cu"))
	assert.Equal(t, "GS-2026-042", params.Get("tr"))
	assert.Equal(t, "5411", params.Get("mc"))
}

func TestQRStringMatchesPaymentURL(t *testing.T) {
	gateway := testGateway(1.0, 1)
	req := &UPIRequest{Method: UPIMethodPhonePe, OrderNumber: "GS-2026-001", Amount: 100000}

	assert.Equal(t, gateway.PaymentURL(req), gateway.QRString(req))
}

func TestProcess_Success(t *testing.T) {
	gateway := testGateway(1.0, 1)

	resp, err := gateway.Process(context.Background(), &UPIRequest{
		Method:      UPIMethodGPay,
		OrderNumber: "GS-2026-001",
		Amount:      138000,
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, strings.HasPrefix(resp.TransactionID, "TXN"))
	assert.True(t, strings.HasPrefix(resp.ProviderRef, "PAY"))
	assert.Equal(t, int64(138000), resp.Amount)
	assert.Empty(t, resp.FailureReason)
}

func TestProcess_FailureIsAResultNotAnError(t *testing.T) {
	gateway := testGateway(0.0, 1)

	resp, err := gateway.Process(context.Background(), &UPIRequest{
		Method:      UPIMethodPaytm,
		OrderNumber: "GS-2026-002",
		Amount:      50000,
	})

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Empty(t, resp.TransactionID)
	assert.NotEmpty(t, resp.FailureReason)
}

func TestProcess_RejectsUnsupportedMethod(t *testing.T) {
	gateway := testGateway(1.0, 1)

	_, err := gateway.Process(context.Background(), &UPIRequest{
		Method:      "venmo",
		OrderNumber: "GS-2026-003",
		Amount:      50000,
	})
	assert.Error(t, err)
}

func TestProcess_RejectsNonPositiveAmount(t *testing.T) {
	gateway := testGateway(1.0, 1)

	_, err := gateway.Process(context.Background(), &UPIRequest{
		Method:      UPIMethodBHIM,
		OrderNumber: "GS-2026-004",
		Amount:      0,
	})
	assert.Error(t, err)
}

func TestProcess_HonoursContextCancellation(t *testing.T) {
	gateway := testGateway(1.0, 1)
	gateway.config.MinDelay = time.Minute
	gateway.config.MaxDelay = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := gateway.Process(ctx, &UPIRequest{
		Method:      UPIMethodGPay,
		OrderNumber: "GS-2026-005",
		Amount:      50000,
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUPIMethods(t *testing.T) {
	methods := UPIMethods()
	assert.Len(t, methods, 6)

	assert.True(t, IsValidUPIMethod("gpay"))
	assert.True(t, IsValidUPIMethod("whatsapp"))
	assert.False(t, IsValidUPIMethod("cash"))
}
