package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/and161185/payform/internal/errs"
	"github.com/and161185/payform/internal/model"
	"github.com/and161185/payform/internal/signer"
	"github.com/shopspring/decimal"
)

const (
	maxResponseSize = 1 << 20
	maxErrorBody    = 512
)

var invoiceSignKeys = []string{"amount", "currency", "payway", "shop_id", "shop_invoice_id"}

// InvoiceFields are the keys of data.data in an accepted invoice, in the
// order they are rendered.
var InvoiceFields = []string{
	"WMI_CURRENCY_ID",
	"WMI_FAIL_URL",
	"WMI_MERCHANT_ID",
	"WMI_PAYMENT_AMOUNT",
	"WMI_PAYMENT_NO",
	"WMI_PTENABLED",
	"WMI_SIGNATURE",
	"WMI_SUCCESS_URL",
}

type InvoiceRequest struct {
	Amount        int64  `json:"amount"`
	Currency      int    `json:"currency"`
	Payway        string `json:"payway"`
	ShopID        int    `json:"shop_id"`
	ShopInvoiceID int64  `json:"shop_invoice_id"`
	Sign          string `json:"sign"`
	Description   string `json:"description"`
}

func NewInvoiceRequest(merchant Merchant, order model.Order, currency model.Currency) (InvoiceRequest, error) {
	request := map[string]any{
		"amount":          order.Amount,
		"currency":        currency.Numeric,
		"payway":          currency.Code,
		"shop_id":         merchant.ShopID,
		"shop_invoice_id": order.ID,
	}

	sign, err := signer.Sign(request, invoiceSignKeys, merchant.Secret)
	if err != nil {
		return InvoiceRequest{}, fmt.Errorf("sign invoice request: %w", err)
	}

	return InvoiceRequest{
		Amount:        order.Amount,
		Currency:      currency.Numeric,
		Payway:        currency.Code,
		ShopID:        merchant.ShopID,
		ShopInvoiceID: order.ID,
		Sign:          sign,
		Description:   order.Description,
	}, nil
}

// InvoiceData holds the gateway's checkout fields as the gateway sent them.
type InvoiceData map[string]string

func (d InvoiceData) Form(action string) Form {
	form := Form{Action: action}
	for _, name := range InvoiceFields {
		form.Fields = append(form.Fields, Field{Name: name, Value: d[name]})
	}
	return form
}

// AmountMatches reports whether WMI_PAYMENT_AMOUNT equals amount. ok is
// false when the gateway value is not a number.
func (d InvoiceData) AmountMatches(amount int64) (match bool, ok bool) {
	got, err := decimal.NewFromString(d["WMI_PAYMENT_AMOUNT"])
	if err != nil {
		return false, false
	}
	return got.Equal(decimal.NewFromInt(amount)), true
}

type InvoiceClient struct {
	url    string
	client *http.Client
}

func NewInvoiceClient(url string, timeout time.Duration) *InvoiceClient {
	return &InvoiceClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type invoiceResponse struct {
	Result string `json:"result"`
	Data   *struct {
		Data map[string]json.RawMessage `json:"data"`
	} `json:"data"`
}

// SubmitInvoice makes a single attempt; there is no retry.
func (c *InvoiceClient) SubmitInvoice(ctx context.Context, invoice InvoiceRequest) (InvoiceData, error) {
	payload, err := json.Marshal(invoice)
	if err != nil {
		return nil, fmt.Errorf("marshal invoice: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %v", errs.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", errs.ErrGatewayUnavailable, err)
	}
	if len(body) > maxResponseSize {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", errs.ErrGatewayBadResponse, maxResponseSize)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status code: %d, body: %s", errs.ErrGatewayUnavailable, resp.StatusCode, excerpt(body))
	}

	var response invoiceResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v, body: %s", errs.ErrGatewayBadResponse, err, excerpt(body))
	}

	if response.Result != "ok" {
		return nil, fmt.Errorf("%w: result %q, body: %s", errs.ErrGatewayRejected, response.Result, excerpt(body))
	}

	if response.Data == nil || response.Data.Data == nil {
		return nil, fmt.Errorf("%w: data.data, body: %s", errs.ErrGatewayMissingField, excerpt(body))
	}

	data := make(InvoiceData, len(InvoiceFields))
	for _, name := range InvoiceFields {
		raw, ok := response.Data.Data[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s, body: %s", errs.ErrGatewayMissingField, name, excerpt(body))
		}
		data[name] = rawText(raw)
	}

	return data, nil
}

// excerpt shortens a response body for error messages.
func excerpt(body []byte) string {
	if len(body) <= maxErrorBody {
		return string(body)
	}
	return string(body[:maxErrorBody]) + "...(truncated)"
}

// rawText unquotes JSON strings and keeps any other value as written.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
