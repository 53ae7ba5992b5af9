package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsdepot/partsdepot-backend/pkg/config"
)

func TestComputeSignatureKnownValue(t *testing.T) {
	t.Parallel()

	// sha512("order-1" + "200" + "118.36" + "secret")
	sig := ComputeSignature("order-1", "200", "118.36", "secret")
	assert.Len(t, sig, 128)
	assert.Equal(t, sig, ComputeSignature("order-1", "200", "118.36", "secret"))
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	sig := ComputeSignature("order-1", "201", "51.98", "secret")
	assert.True(t, VerifySignature("order-1", "201", "51.98", "secret", sig))

	// any field drift invalidates the signature
	assert.False(t, VerifySignature("order-2", "201", "51.98", "secret", sig))
	assert.False(t, VerifySignature("order-1", "202", "51.98", "secret", sig))
	assert.False(t, VerifySignature("order-1", "201", "51.99", "secret", sig))
	assert.False(t, VerifySignature("order-1", "201", "51.98", "other", sig))
	assert.False(t, VerifySignature("order-1", "201", "51.98", "secret", ""))
}

func TestGatewayRedirectURL(t *testing.T) {
	t.Parallel()

	gw, err := NewGateway(config.PaymentConfig{
		RedirectBaseURL: "https://pay.partsdepot.example/checkout",
		CallbackSecret:  "secret",
		MerchantCode:    "partsdepot",
	})
	require.NoError(t, err)

	u, err := gw.RedirectURL("abc-123", decimal.RequireFromString("118.4"))
	require.NoError(t, err)
	assert.Contains(t, u, "order_id=abc-123")
	assert.Contains(t, u, "amount=118.40")
	assert.Contains(t, u, "merchant=partsdepot")
}

func TestGatewayRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewGateway(config.PaymentConfig{RedirectBaseURL: "https://pay.example"})
	require.Error(t, err)
}

func TestGatewayVerifyCallback(t *testing.T) {
	t.Parallel()

	gw, err := NewGateway(config.PaymentConfig{
		RedirectBaseURL: "https://pay.example",
		CallbackSecret:  "secret",
		MerchantCode:    "partsdepot",
	})
	require.NoError(t, err)

	sig := ComputeSignature("order-1", StatusSettlement, "51.98", "secret")
	assert.True(t, gw.VerifyCallback("order-1", StatusSettlement, "51.98", sig))
	assert.False(t, gw.VerifyCallback("order-1", StatusCancel, "51.98", sig))
}
