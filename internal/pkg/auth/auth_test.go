// internal/pkg/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/gearup-sports/storefront-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "GearUp Sports"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-key-at-least-32-characters-long",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4}, // Min cost keeps tests fast
	}
}

func TestJWT_AccessTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAccessToken(42, "rohan@example.com", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "rohan@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, "access", claims.TokenType)
}

func TestJWT_RefreshTokenRejectedAsAccessToken(t *testing.T) {
	manager := NewJWTManager(testConfig())

	refresh, err := manager.GenerateRefreshToken(42, "rohan@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(refresh)
	assert.Error(t, err)

	claims, err := manager.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestJWT_TamperedTokenRejected(t *testing.T) {
	manager := NewJWTManager(testConfig())

	token, err := manager.GenerateAccessToken(42, "rohan@example.com", true)
	require.NoError(t, err)

	_, err = manager.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc"))
}

func TestPassword_HashAndVerify(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	hash, err := manager.HashPassword("Str0ng!Pazz")
	require.NoError(t, err)
	require.NotEqual(t, "Str0ng!Pazz", hash)

	assert.NoError(t, manager.VerifyPassword("Str0ng!Pazz", hash))
	assert.Error(t, manager.VerifyPassword("wrong-password", hash))
}

func TestValidatePassword(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ng!Pazz", false},
		{"too short", "S0r!t", true},
		{"no uppercase", "str0ng!pazz", true},
		{"no lowercase", "STR0NG!PAZZ", true},
		{"no number", "Strong!Pazz", true},
		{"no special", "Str0ngPazz9", true},
		{"sequential numbers", "Str0ng!123", true},
		{"sequential letters mixed case", "Str0ng!aBc", true},
		{"common word", "Password9!x", true},
		{"repeating characters", "Str0ng!Paaaz", true},
		{"repeating run at end", "Str0ng!Pzzz", true},
		{"two repeats allowed", "Str0ng!Paaz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manager.ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
