package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/and161185/payform/internal/config"
	"github.com/and161185/payform/internal/deps"
	"github.com/and161185/payform/internal/events"
	"github.com/and161185/payform/internal/gateway"
	"github.com/and161185/payform/internal/server"
	"github.com/and161185/payform/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := config.NewConfig()
	defer config.Logger.Sync()

	store, err := storage.New(ctx, config.DatabaseURI)
	if err != nil {
		config.Logger.Fatal(err)
	}
	defer store.Close()

	dependencies := deps.NewDependencies(config.Logger, config.CSRFKey, config.CSRFTTL)
	invoices := gateway.NewInvoiceClient(config.InvoiceURL, config.GatewayTimeout)

	var publisher server.Publisher
	if config.KafkaBrokers != "" {
		producer := events.NewProducer(config.KafkaBrokers, config.KafkaTopic)
		defer func() {
			if err := producer.Close(); err != nil {
				config.Logger.Errorf("close kafka writer: %v", err)
			}
		}()
		publisher = producer
	}

	srv := server.NewServer(store, invoices, publisher, config, dependencies)
	if err := srv.Run(ctx); err != nil {
		config.Logger.Errorf("shutdown: %v", err)
	}
}
