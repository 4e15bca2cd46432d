package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/and161185/payform/internal/model"
	"github.com/and161185/payform/internal/utils"
)

type Config struct {
	RunAddress     string `env:"RUN_ADDRESS"`
	DatabaseURI    string `env:"DATABASE_URI"`
	CurrenciesFile string `env:"CURRENCIES_FILE"`

	ShopID int    `env:"SHOP_ID" envDefault:"300969"`
	Secret string `env:"PAYMENT_SECRET"`

	RedirectURL string `env:"REDIRECT_URL" envDefault:"https://tip.pay-trio.com/ru/"`
	SuccessURL  string `env:"SUCCESS_URL" envDefault:"https://tip.pay-trio.com/success/"`
	FailedURL   string `env:"FAILED_URL" envDefault:"https://tip.pay-trio.com/failed/"`

	InvoiceURL     string        `env:"INVOICE_URL" envDefault:"https://central.pay-trio.com/invoice"`
	CheckoutURL    string        `env:"CHECKOUT_URL" envDefault:"https://wl.walletone.com/checkout/checkout/Index"`
	GatewayTimeout time.Duration `env:"GATEWAY_TIMEOUT" envDefault:"10s"`

	DescriptionPolicy utils.DescriptionPolicy `env:"DESCRIPTION_POLICY" envDefault:"ascii"`

	CSRFKey string        `env:"CSRF_KEY"`
	CSRFTTL time.Duration `env:"CSRF_TTL" envDefault:"1h"`

	KafkaBrokers string `env:"KAFKA_BROKERS"`
	KafkaTopic   string `env:"KAFKA_TOPIC" envDefault:"orders"`

	Currencies *model.CurrencyTable `env:"-"`
	Logger     *zap.SugaredLogger   `env:"-"`
}

func NewConfig() *Config {
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stdout", "server.log"}

	logger := zap.Must(logCfg.Build())

	cfg := &Config{}
	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "HTTP server address")
	flag.StringVar(&cfg.DatabaseURI, "d", "sqlite3://data.sqlite", "DB connection string")
	flag.StringVar(&cfg.CurrenciesFile, "c", "", "Currency table YAML file")
	flag.Parse()

	cfg.Logger = logger.Sugar()

	if err := ReadServerEnvironment(cfg); err != nil {
		cfg.Logger.Fatal(err)
	}

	if err := cfg.loadCurrencies(); err != nil {
		cfg.Logger.Fatal(err)
	}

	if cfg.Secret == "" {
		cfg.Logger.Warn("PAYMENT_SECRET is empty, gateways will reject signatures")
	}

	return cfg
}

func ReadServerEnvironment(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	policy, err := utils.ParseDescriptionPolicy(string(cfg.DescriptionPolicy))
	if err != nil {
		return err
	}
	cfg.DescriptionPolicy = policy

	if cfg.CSRFKey == "" {
		cfg.CSRFKey = uuid.NewString()
	}

	return nil
}

func (cfg *Config) loadCurrencies() error {
	currencies := model.DefaultCurrencies()
	if cfg.CurrenciesFile != "" {
		loaded, err := LoadCurrencies(cfg.CurrenciesFile)
		if err != nil {
			return err
		}
		for _, code := range UnknownCodes(loaded) {
			cfg.Logger.Warnf("currency %s is not in the default table, check its numeric code and gateway", code)
		}
		currencies = loaded
	}

	table, err := model.NewCurrencyTable(currencies)
	if err != nil {
		return fmt.Errorf("currency table: %w", err)
	}
	cfg.Currencies = table

	return nil
}
