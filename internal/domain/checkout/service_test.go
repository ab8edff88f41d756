// internal/domain/checkout/service_test.go
package checkout

import (
	"testing"

	"github.com/gearup-sports/storefront-backend/internal/domain/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() order.Address {
	return order.Address{
		FirstName:  "Rohan",
		LastName:   "Sharma",
		Email:      "rohan@example.com",
		Phone:      "9876543210",
		Street:     "12 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
		Country:    "India",
	}
}

func TestValidateAddress_Valid(t *testing.T) {
	s := &Service{}
	result := s.ValidateAddress(&order.Address{
		FirstName:  "Rohan",
		LastName:   "Sharma",
		Email:      "rohan@example.com",
		Phone:      "+91 98765 43210",
		Street:     "12 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
	})

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateAddress_MissingFields(t *testing.T) {
	s := &Service{}
	result := s.ValidateAddress(&order.Address{})

	require.False(t, result.Valid)
	for _, field := range []string{"first_name", "last_name", "email", "phone", "street", "city", "state", "postal_code"} {
		assert.Contains(t, result.Errors, field)
	}
}

func TestValidateAddress_BadPostalCode(t *testing.T) {
	s := &Service{}

	addr := validAddress()
	addr.PostalCode = "0123456"
	result := s.ValidateAddress(&addr)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "postal_code")

	addr.PostalCode = "012345" // PIN codes never start with zero
	result = s.ValidateAddress(&addr)
	assert.False(t, result.Valid)
}

func TestValidateAddress_BadPhone(t *testing.T) {
	s := &Service{}

	addr := validAddress()
	addr.Phone = "12345"
	result := s.ValidateAddress(&addr)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "phone")
}

func TestValidateAddress_BadEmail(t *testing.T) {
	s := &Service{}

	addr := validAddress()
	addr.Email = "not-an-email"
	result := s.ValidateAddress(&addr)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "email")
}

func TestValidPostalCode(t *testing.T) {
	assert.True(t, validPostalCode("560001"))
	assert.False(t, validPostalCode("56001"))
	assert.False(t, validPostalCode("5600011"))
	assert.False(t, validPostalCode("56000a"))
	assert.False(t, validPostalCode("060001"))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, validPhone("9876543210"))
	assert.True(t, validPhone("+919876543210"))
	assert.True(t, validPhone("+91 98765 43210"))
	assert.False(t, validPhone("98765"))
	assert.False(t, validPhone("98765abcde"))
}
