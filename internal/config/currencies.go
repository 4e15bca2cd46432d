package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/and161185/payform/internal/model"
)

type currencyFile struct {
	Currencies []model.Currency `yaml:"currencies"`
}

func LoadCurrencies(path string) ([]model.Currency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read currencies: %w", err)
	}

	var file currencyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse currencies: %w", err)
	}

	if _, err := model.NewCurrencyTable(file.Currencies); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return file.Currencies, nil
}

// UnknownCodes lists codes that differ from the default table. Deployments
// have used both card_uah and w1_uah for the UAH payway.
func UnknownCodes(currencies []model.Currency) []string {
	known := make(map[string]bool)
	for _, c := range model.DefaultCurrencies() {
		known[c.Code] = true
	}

	var unknown []string
	for _, c := range currencies {
		if !known[c.Code] {
			unknown = append(unknown, c.Code)
		}
	}
	return unknown
}
