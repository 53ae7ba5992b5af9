package payment

import (
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/partsdepot/partsdepot-backend/pkg/config"
	"github.com/partsdepot/partsdepot-backend/pkg/errors"
)

// Status codes reported by the gateway on callbacks.
const (
	StatusCapture    = "200"
	StatusSettlement = "201"
	StatusCancel     = "202"
)

// Gateway builds hosted-checkout redirect URLs and verifies callbacks.
type Gateway struct {
	cfg config.PaymentConfig
}

func NewGateway(cfg config.PaymentConfig) (*Gateway, error) {
	if cfg.CallbackSecret == "" {
		return nil, errors.New(errors.CodeInternal, "payment callback secret is required")
	}
	if cfg.RedirectBaseURL == "" {
		return nil, errors.New(errors.CodeInternal, "payment redirect base URL is required")
	}
	return &Gateway{cfg: cfg}, nil
}

// RedirectURL returns the hosted payment page URL for an order.
func (g *Gateway) RedirectURL(orderID string, total decimal.Decimal) (string, error) {
	base, err := url.Parse(g.cfg.RedirectBaseURL)
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, err, "parsing payment redirect base URL")
	}

	q := base.Query()
	q.Set("merchant", g.cfg.MerchantCode)
	q.Set("order_id", orderID)
	q.Set("amount", total.StringFixed(2))
	base.RawQuery = q.Encode()

	return base.String(), nil
}

// VerifyCallback validates the signature on a gateway callback payload.
func (g *Gateway) VerifyCallback(orderID, statusCode, grossAmount, signature string) bool {
	return VerifySignature(orderID, statusCode, grossAmount, g.cfg.CallbackSecret, signature)
}
