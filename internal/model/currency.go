package model

import (
	"fmt"

	"github.com/and161185/payform/internal/errs"
)

type GatewayKind string

const (
	GatewayRedirect GatewayKind = "redirect"
	GatewayInvoice  GatewayKind = "invoice"
)

type Currency struct {
	Code    string      `yaml:"code"`
	Label   string      `yaml:"label"`
	Numeric int         `yaml:"numeric"`
	Gateway GatewayKind `yaml:"gateway"`
}

// CurrencyTable keeps the select order of the payment form.
type CurrencyTable struct {
	list   []Currency
	byCode map[string]Currency
}

func DefaultCurrencies() []Currency {
	return []Currency{
		{Code: "w1_uah", Label: "UAH", Numeric: 980, Gateway: GatewayInvoice},
		{Code: "card_rub", Label: "RUB", Numeric: 643, Gateway: GatewayRedirect},
	}
}

func NewCurrencyTable(currencies []Currency) (*CurrencyTable, error) {
	if len(currencies) == 0 {
		return nil, fmt.Errorf("currency table is empty")
	}

	table := &CurrencyTable{byCode: make(map[string]Currency, len(currencies))}
	for _, c := range currencies {
		if c.Code == "" {
			return nil, fmt.Errorf("currency without code")
		}
		if c.Numeric <= 0 {
			return nil, fmt.Errorf("currency %s: numeric code must be positive", c.Code)
		}
		if c.Gateway != GatewayRedirect && c.Gateway != GatewayInvoice {
			return nil, fmt.Errorf("currency %s: unknown gateway %q", c.Code, c.Gateway)
		}
		if _, ok := table.byCode[c.Code]; ok {
			return nil, fmt.Errorf("currency %s: duplicate code", c.Code)
		}
		if c.Label == "" {
			c.Label = c.Code
		}
		table.byCode[c.Code] = c
		table.list = append(table.list, c)
	}

	return table, nil
}

func (t *CurrencyTable) Lookup(code string) (Currency, error) {
	c, ok := t.byCode[code]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %s", errs.ErrUnknownCurrency, code)
	}
	return c, nil
}

func (t *CurrencyTable) List() []Currency {
	out := make([]Currency, len(t.list))
	copy(out, t.list)
	return out
}
