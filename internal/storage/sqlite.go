package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/and161185/payform/internal/model"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens the database file at path, creating it if needed.
func NewSQLiteStorage(ctx context.Context, path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db}

	if err := storage.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrateSQLite(db); err != nil {
		db.Close()
		return nil, err
	}

	return storage, nil
}

func (store *SQLiteStorage) Ping(ctx context.Context) error {
	return store.db.PingContext(ctx)
}

func (store *SQLiteStorage) Close() {
	store.db.Close()
}

func (store *SQLiteStorage) CreateOrder(ctx context.Context, order model.Order) (model.Order, error) {
	const query = `INSERT INTO orders (amount, currency, description, created_date) VALUES (?, ?, ?, ?)`

	res, err := store.db.ExecContext(ctx, query, order.Amount, order.Currency, order.Description, order.CreatedDate.UTC())
	if err != nil {
		return model.Order{}, fmt.Errorf("insert order: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Order{}, fmt.Errorf("last insert id: %w", err)
	}
	order.ID = id

	return order, nil
}

func (store *SQLiteStorage) ListOrders(ctx context.Context) ([]model.Order, error) {
	const query = `SELECT id, amount, currency, description, created_date FROM orders ORDER BY id DESC`

	rows, err := store.db.QueryContext(ctx, query)
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
