package storage

import (
	"context"
	"fmt"

	"github.com/and161185/payform/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStorage struct {
	db *pgxpool.Pool
}

func NewPostgreStorage(ctx context.Context, databaseURI string) (*PostgresStorage, error) {
	db, err := pgxpool.New(ctx, databaseURI)
	if err != nil {
		return nil, err
	}

	storage := &PostgresStorage{db: db}

	if err := storage.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := migratePostgres(databaseURI); err != nil {
		db.Close()
		return nil, err
	}

	return storage, nil
}

func (store *PostgresStorage) Ping(ctx context.Context) error {
	return store.db.Ping(ctx)
}

func (store *PostgresStorage) Close() {
	store.db.Close()
}

func (store *PostgresStorage) CreateOrder(ctx context.Context, order model.Order) (model.Order, error) {
	const query = `
		INSERT INTO orders (amount, currency, description, created_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := store.db.QueryRow(ctx, query, order.Amount, order.Currency, order.Description, order.CreatedDate).Scan(&order.ID)
	if err != nil {
		return model.Order{}, fmt.Errorf("insert order: %w", err)
	}

	return order, nil
}

func (store *PostgresStorage) ListOrders(ctx context.Context) ([]model.Order, error) {
	const query = `
		SELECT id, amount, currency, description, created_date
		FROM orders
		ORDER BY id DESC`

	rows, err := store.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Amount, &o.Currency, &o.Description, &o.CreatedDate); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return orders, nil
}
