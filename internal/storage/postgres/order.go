package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/FlavP/order-service/internal/domain/order"
)

const insertOrderSQL = `INSERT INTO orders (book_isbn, book_name, book_price, quantity, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_date, last_modified_date`

const findAllOrdersSQL = `SELECT id, book_isbn, book_name, book_price, quantity, status,
	created_date, last_modified_date
	FROM orders
	ORDER BY id`

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Insert persists o in a single statement. The id and timestamps come back
// from the database, so the returned order matches what a later read sees.
func (r *OrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	var price decimal.NullDecimal
	if o.BookPrice != nil {
		price = decimal.NullDecimal{Decimal: *o.BookPrice, Valid: true}
	}

	row := r.pool.QueryRow(ctx, insertOrderSQL,
		o.BookISBN, o.BookName, price, o.Quantity, string(o.Status),
	)
	if err := row.Scan(&o.ID, &o.CreatedDate, &o.LastModifiedDate); err != nil {
		return order.Order{}, fmt.Errorf("inserting order for %q: %w", o.BookISBN, err)
	}

	return o, nil
}

// FindAll returns every order in insertion order.
func (r *OrderRepository) FindAll(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, findAllOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		var (
			o      order.Order
			name   *string
			price  decimal.NullDecimal
			status string
		)
		if err := rows.Scan(&o.ID, &o.BookISBN, &name, &price, &o.Quantity, &status,
			&o.CreatedDate, &o.LastModifiedDate); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}

		o.BookName = name
		if price.Valid {
			p := price.Decimal
			o.BookPrice = &p
		}
		o.Status = order.Status(status)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading orders: %w", err)
	}

	return orders, nil
}
