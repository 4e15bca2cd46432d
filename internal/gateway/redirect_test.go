package gateway

import (
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/and161185/payform/internal/model"
	"github.com/and161185/payform/internal/utils"
	"github.com/stretchr/testify/require"
)

var testMerchant = Merchant{ShopID: 300969, Secret: "testsecret"}

var rub = model.Currency{Code: "card_rub", Label: "RUB", Numeric: 643, Gateway: model.GatewayRedirect}

func TestRedirectBuild(t *testing.T) {
	b := NewRedirectBuilder(testMerchant, RedirectConfig{
		Action:     "https://tip.pay-trio.com/ru/",
		SuccessURL: "https://tip.pay-trio.com/success/",
		FailedURL:  "https://tip.pay-trio.com/failed/",
		Policy:     utils.PolicyASCII,
	})

	order := model.Order{ID: 17, Amount: 1500, Currency: "card_rub", Description: "Заказ order"}
	form, err := b.Build(order, rub)
	require.NoError(t, err)
	require.Equal(t, "https://tip.pay-trio.com/ru/", form.Action)

	sum := md5.Sum([]byte("1500:643:300969:17testsecret"))
	want := map[string]string{
		"amount":          "1500",
		"currency":        "643",
		"shop_id":         "300969",
		"shop_invoice_id": "17",
		"sign":            hex.EncodeToString(sum[:]),
		"description":     " order",
		"failed_url":      "https://tip.pay-trio.com/failed/",
		"success_url":     "https://tip.pay-trio.com/success/",
	}
	require.Len(t, form.Fields, len(want))
	for name, value := range want {
		got, ok := form.Value(name)
		require.True(t, ok, name)
		require.Equal(t, value, got, name)
	}
}

func TestRedirectBuildPreservePolicy(t *testing.T) {
	b := NewRedirectBuilder(testMerchant, RedirectConfig{Policy: utils.PolicyPreserve})

	form, err := b.Build(model.Order{ID: 1, Amount: 1, Description: "Заказ"}, rub)
	require.NoError(t, err)

	got, _ := form.Value("description")
	require.Equal(t, "Заказ", got)
}
