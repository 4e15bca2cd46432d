package gateway

import (
	"fmt"
	"strconv"

	"github.com/and161185/payform/internal/model"
	"github.com/and161185/payform/internal/signer"
	"github.com/and161185/payform/internal/utils"
)

var redirectSignKeys = []string{"shop_id", "amount", "currency", "shop_invoice_id"}

type RedirectConfig struct {
	Action     string
	SuccessURL string
	FailedURL  string
	Policy     utils.DescriptionPolicy
}

type RedirectBuilder struct {
	merchant Merchant
	cfg      RedirectConfig
}

func NewRedirectBuilder(merchant Merchant, cfg RedirectConfig) *RedirectBuilder {
	return &RedirectBuilder{merchant: merchant, cfg: cfg}
}

// Build signs the order for the redirect gateway. Nothing is sent; the
// browser posts the form itself.
func (b *RedirectBuilder) Build(order model.Order, currency model.Currency) (Form, error) {
	request := map[string]any{
		"shop_id":         b.merchant.ShopID,
		"amount":          order.Amount,
		"currency":        currency.Numeric,
		"shop_invoice_id": order.ID,
	}

	sign, err := signer.Sign(request, redirectSignKeys, b.merchant.Secret)
	if err != nil {
		return Form{}, fmt.Errorf("sign redirect request: %w", err)
	}

	return Form{
		Action: b.cfg.Action,
		Fields: []Field{
			{Name: "amount", Value: strconv.FormatInt(order.Amount, 10)},
			{Name: "currency", Value: strconv.Itoa(currency.Numeric)},
			{Name: "shop_id", Value: strconv.Itoa(b.merchant.ShopID)},
			{Name: "shop_invoice_id", Value: strconv.FormatInt(order.ID, 10)},
			{Name: "sign", Value: sign},
			{Name: "description", Value: b.cfg.Policy.Apply(order.Description)},
			{Name: "failed_url", Value: b.cfg.FailedURL},
			{Name: "success_url", Value: b.cfg.SuccessURL},
		},
	}, nil
}
