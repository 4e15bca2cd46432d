package storage

import (
	"context"
	"strings"

	"github.com/and161185/payform/internal/model"
)

const sqlitePrefix = "sqlite3://"

// OrderStore is an append-only log of payment attempts.
type OrderStore interface {
	CreateOrder(ctx context.Context, order model.Order) (model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	Ping(ctx context.Context) error
	Close()
}

// New picks the backend from the URI scheme: sqlite3:// opens a SQLite file,
// anything else is handed to pgx.
func New(ctx context.Context, databaseURI string) (OrderStore, error) {
	if strings.HasPrefix(databaseURI, sqlitePrefix) {
		return NewSQLiteStorage(ctx, strings.TrimPrefix(databaseURI, sqlitePrefix))
	}
	return NewPostgreStorage(ctx, databaseURI)
}
