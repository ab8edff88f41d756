// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gearup-sports/storefront-backend/internal/config"
	"github.com/gearup-sports/storefront-backend/internal/domain/cart"
	"github.com/gearup-sports/storefront-backend/internal/domain/order"
	"github.com/gearup-sports/storefront-backend/internal/domain/payment"
	"github.com/sirupsen/logrus"
)

// ErrAuthRequired is returned when checkout is attempted without an
// authenticated user. Guests can carry a cart but cannot place orders.
var ErrAuthRequired = errors.New("authentication required to place an order")

// OrderMailer sends order lifecycle emails
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, o *order.Order) error
}

// Service orchestrates the checkout flow: address validation, payment
// method selection, payment processing and order creation.
type Service struct {
	config       *config.Config
	cartService  *cart.Service
	orderService *order.Service
	upiGateway   *payment.UPIGateway
	razorpay     *payment.RazorpayClient
	mailer       OrderMailer
	logger       *logrus.Logger
}

// NewService creates a new checkout service
func NewService(
	cfg *config.Config,
	cartService *cart.Service,
	orderService *order.Service,
	upiGateway *payment.UPIGateway,
	razorpay *payment.RazorpayClient,
	mailer OrderMailer,
	logger *logrus.Logger,
) *Service {
	return &Service{
		config:       cfg,
		cartService:  cartService,
		orderService: orderService,
		upiGateway:   upiGateway,
		razorpay:     razorpay,
		mailer:       mailer,
		logger:       logger,
	}
}

// PaymentMethodInfo describes a payment method offered at checkout
type PaymentMethodInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"` // upi, gateway, cod
	DeepLink    string `json:"deep_link,omitempty"`
	Description string `json:"description,omitempty"`
}

// AddressValidation is the structured result of address validation.
// Field problems are reported per field so the client can highlight them.
type AddressValidation struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// CheckoutSummary is the review step payload: cart contents, the price
// breakdown and the available payment methods.
type CheckoutSummary struct {
	Cart           *cart.CartResponse  `json:"cart"`
	Quote          order.Quote         `json:"quote"`
	PaymentMethods []PaymentMethodInfo `json:"payment_methods"`
}

// PlaceOrderRequest represents a checkout submission
type PlaceOrderRequest struct {
	ShippingAddress order.Address `json:"shipping_address" binding:"required"`
	PaymentMethod   string        `json:"payment_method" binding:"required"`
}

// PlaceOrderResult is the outcome of a checkout attempt. Payment
// failures are reported here, not as errors: the order exists in
// pending state and payment can be retried.
type PlaceOrderResult struct {
	Order         *order.Order         `json:"order"`
	PaymentStatus order.PaymentStatus  `json:"payment_status"`
	Payment       *payment.UPIResponse `json:"payment,omitempty"`
	RazorpayOrder *RazorpayCheckout    `json:"razorpay_order,omitempty"`
	FailureReason string               `json:"failure_reason,omitempty"`
}

// RazorpayCheckout carries the gateway order details the client needs
// to open the Razorpay checkout widget
type RazorpayCheckout struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// GetCheckoutSummary builds the review step for the user's cart
func (s *Service) GetCheckoutSummary(ctx context.Context, userID uint) (*CheckoutSummary, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}

	cartResponse, err := s.cartService.GetCart(ctx, &userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	return &CheckoutSummary{
		Cart:           cartResponse,
		Quote:          s.orderService.PricingRules().Quote(cartResponse.Totals.Subtotal),
		PaymentMethods: s.PaymentMethods(),
	}, nil
}

// PaymentMethods returns the payment methods offered at checkout
func (s *Service) PaymentMethods() []PaymentMethodInfo {
	var methods []PaymentMethodInfo

	for _, m := range payment.UPIMethods() {
		methods = append(methods, PaymentMethodInfo{
			ID:       string(m.Method),
			Name:     m.DisplayName,
			Type:     "upi",
			DeepLink: m.DeepLink,
		})
	}

	if s.razorpay.Enabled() {
		methods = append(methods, PaymentMethodInfo{
			ID:          "razorpay",
			Name:        "Card / Netbanking",
			Type:        "gateway",
			Description: "Credit card, debit card and netbanking via Razorpay",
		})
	}

	methods = append(methods, PaymentMethodInfo{
		ID:          "cod",
		Name:        "Cash on Delivery",
		Type:        "cod",
		Description: "Pay in cash when your order arrives",
	})

	return methods
}

// ValidateAddress checks a shipping address field by field
func (s *Service) ValidateAddress(addr *order.Address) *AddressValidation {
	problems := map[string]string{}

	required := map[string]string{
		"first_name":  addr.FirstName,
		"last_name":   addr.LastName,
		"phone":       addr.Phone,
		"street":      addr.Street,
		"city":        addr.City,
		"state":       addr.State,
		"postal_code": addr.PostalCode,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			problems[field] = "required"
		}
	}

	if addr.Email == "" || !strings.Contains(addr.Email, "@") {
		problems["email"] = "valid email required"
	}
	if addr.PostalCode != "" && !validPostalCode(addr.PostalCode) {
		problems["postal_code"] = "must be a 6-digit PIN code"
	}
	if addr.Phone != "" && !validPhone(addr.Phone) {
		problems["phone"] = "must be a 10-digit mobile number"
	}

	return &AddressValidation{Valid: len(problems) == 0, Errors: problems}
}

// PlaceOrder runs the full checkout: validates the address, creates the
// order in pending state and processes payment. A declined payment
// leaves the order pending with the failure reason attached.
func (s *Service) PlaceOrder(ctx context.Context, userID uint, req *PlaceOrderRequest) (*PlaceOrderResult, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}

	if validation := s.ValidateAddress(&req.ShippingAddress); !validation.Valid {
		return nil, fmt.Errorf("invalid shipping address: %v", validation.Errors)
	}

	if !s.validPaymentMethod(req.PaymentMethod) {
		return nil, fmt.Errorf("unsupported payment method: %s", req.PaymentMethod)
	}

	createdOrder, err := s.orderService.CreateOrder(ctx, userID, &order.CreateOrderRequest{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_number": createdOrder.OrderNumber,
		"user_id":      userID,
		"total":        createdOrder.Total,
		"method":       req.PaymentMethod,
	}).Info("Order created, processing payment")

	switch {
	case payment.IsValidUPIMethod(req.PaymentMethod):
		return s.processUPIPayment(ctx, createdOrder, req.PaymentMethod)
	case req.PaymentMethod == "razorpay":
		return s.initiateRazorpayPayment(ctx, createdOrder)
	default: // cod
		return s.confirmCashOnDelivery(ctx, createdOrder)
	}
}

// ConfirmRazorpayPayment verifies the checkout widget's signature and
// confirms the order
func (s *Service) ConfirmRazorpayPayment(ctx context.Context, userID, orderID uint, gatewayOrderID, paymentID, signature string) (*order.Order, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}

	o, err := s.orderService.GetOrder(userID, orderID)
	if err != nil {
		return nil, err
	}

	if !s.razorpay.VerifySignature(gatewayOrderID, paymentID, signature) {
		failed := &order.Payment{
			Method:        "razorpay",
			ProviderRef:   paymentID,
			Amount:        o.Total,
			Status:        order.PaymentStatusFailed,
			FailureReason: "signature verification failed",
		}
		if err := s.orderService.RecordPayment(o.ID, failed); err != nil {
			s.logger.WithError(err).Warn("Failed to record declined payment")
		}
		return nil, fmt.Errorf("payment signature verification failed")
	}

	paid := &order.Payment{
		Method:      "razorpay",
		ProviderRef: paymentID,
		Amount:      o.Total,
		Status:      order.PaymentStatusPaid,
	}
	if err := s.orderService.RecordPayment(o.ID, paid); err != nil {
		return nil, err
	}

	confirmed, err := s.orderService.GetOrder(userID, o.ID)
	if err != nil {
		return nil, err
	}

	s.sendConfirmationEmail(confirmed)
	return confirmed, nil
}

// Private helper methods

func (s *Service) processUPIPayment(ctx context.Context, o *order.Order, method string) (*PlaceOrderResult, error) {
	upiResponse, err := s.upiGateway.Process(ctx, &payment.UPIRequest{
		Method:      payment.UPIMethod(method),
		OrderNumber: o.OrderNumber,
		Amount:      o.Total,
	})
	if err != nil {
		return nil, fmt.Errorf("payment processing failed: %w", err)
	}

	record := &order.Payment{
		Method:        method,
		TransactionID: upiResponse.TransactionID,
		ProviderRef:   upiResponse.ProviderRef,
		Amount:        o.Total,
		Status:        order.PaymentStatusFailed,
		FailureReason: upiResponse.FailureReason,
		ProcessedAt:   &upiResponse.ProcessedAt,
	}
	if upiResponse.Success {
		record.Status = order.PaymentStatusPaid
	}

	if err := s.orderService.RecordPayment(o.ID, record); err != nil {
		return nil, err
	}

	refreshed, err := s.orderService.GetOrder(o.UserID, o.ID)
	if err != nil {
		return nil, err
	}

	result := &PlaceOrderResult{
		Order:         refreshed,
		PaymentStatus: refreshed.PaymentStatus,
		Payment:       upiResponse,
		FailureReason: upiResponse.FailureReason,
	}

	if upiResponse.Success {
		s.sendConfirmationEmail(refreshed)
	} else {
		s.logger.WithFields(logrus.Fields{
			"order_number": o.OrderNumber,
			"reason":       upiResponse.FailureReason,
		}).Warn("UPI payment declined")
	}

	return result, nil
}

func (s *Service) initiateRazorpayPayment(ctx context.Context, o *order.Order) (*PlaceOrderResult, error) {
	gatewayOrder, err := s.razorpay.CreateOrder(ctx, o.Total, o.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to initiate gateway payment: %w", err)
	}

	return &PlaceOrderResult{
		Order:         o,
		PaymentStatus: order.PaymentStatusPending,
		RazorpayOrder: &RazorpayCheckout{
			OrderID:  gatewayOrder.ID,
			Amount:   gatewayOrder.Amount,
			Currency: gatewayOrder.Currency,
			KeyID:    s.config.External.Razorpay.KeyID,
		},
	}, nil
}

func (s *Service) confirmCashOnDelivery(ctx context.Context, o *order.Order) (*PlaceOrderResult, error) {
	record := &order.Payment{
		Method: "cod",
		Amount: o.Total,
		Status: order.PaymentStatusPaid,
	}
	if err := s.orderService.RecordPayment(o.ID, record); err != nil {
		return nil, err
	}

	refreshed, err := s.orderService.GetOrder(o.UserID, o.ID)
	if err != nil {
		return nil, err
	}

	s.sendConfirmationEmail(refreshed)

	return &PlaceOrderResult{
		Order:         refreshed,
		PaymentStatus: refreshed.PaymentStatus,
	}, nil
}

func (s *Service) validPaymentMethod(method string) bool {
	for _, m := range s.PaymentMethods() {
		if m.ID == method {
			return true
		}
	}
	return false
}

func (s *Service) sendConfirmationEmail(o *order.Order) {
	if s.mailer == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.mailer.SendOrderConfirmation(ctx, o); err != nil {
			s.logger.WithError(err).WithField("order_number", o.OrderNumber).
				Warn("Failed to send order confirmation email")
		}
	}()
}

func validPostalCode(pin string) bool {
	if len(pin) != 6 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return pin[0] != '0'
}

func validPhone(phone string) bool {
	digits := strings.TrimPrefix(strings.TrimPrefix(phone, "+91"), "0")
	digits = strings.ReplaceAll(digits, " ", "")
	if len(digits) != 10 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
