package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"icecream-service/internal/models"
)

type orderRepo struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &orderRepo{db: db}
}

// Create places an order: both foreign keys are probed inside the transaction,
// the total is priced from the flavour's current price_per_serving, and the
// store stamps order_date at insert time. TotalPrice is rounded half away
// from zero to two decimals.
func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	if o == nil {
		return fmt.Errorf("%w: order cannot be nil", ErrInvalidInput)
	}
	if o.CustomerID <= 0 {
		return fmt.Errorf("%w: customer_id required", ErrInvalidInput)
	}
	if o.FlavourID <= 0 {
		return fmt.Errorf("%w: flavour_id required", ErrInvalidInput)
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var customerID int
	err = tx.QueryRow(ctx, `SELECT id FROM customers WHERE id = $1`, o.CustomerID).Scan(&customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("customer not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to check customer %d: %w", o.CustomerID, err)
	}

	var pricePerServing float64
	err = tx.QueryRow(ctx, `SELECT price_per_serving FROM flavours WHERE id = $1`, o.FlavourID).Scan(&pricePerServing)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("flavour not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to resolve flavour price %d: %w", o.FlavourID, err)
	}

	o.TotalPrice = round2(float64(o.Quantity) * pricePerServing)

	insert := `
		INSERT INTO orders (
			customer_id,
			flavour_id,
			quantity,
			total_price
	) VALUES ($1, $2, $3, $4)
	RETURNING id, order_date
	`

	err = tx.QueryRow(ctx, insert,
		o.CustomerID,
		o.FlavourID,
		o.Quantity,
		o.TotalPrice,
	).Scan(&o.ID, &o.OrderDate)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int) (*models.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: order ID must be positive", ErrInvalidInput)
	}

	sql := `
		SELECT
			id,
			customer_id,
			flavour_id,
			quantity,
			total_price,
			order_date
		FROM orders
		WHERE id = $1
	`

	var order models.Order

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&order.ID,
		&order.CustomerID,
		&order.FlavourID,
		&order.Quantity,
		&order.TotalPrice,
		&order.OrderDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}

	return &order, nil
}

func (r *orderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	sql := `
		SELECT
			id,
			customer_id,
			flavour_id,
			quantity,
			total_price,
			order_date
		FROM orders
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order

	for rows.Next() {
		var o models.Order

		err := rows.Scan(
			&o.ID,
			&o.CustomerID,
			&o.FlavourID,
			&o.Quantity,
			&o.TotalPrice,
			&o.OrderDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan orders: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return orders, nil
}

// GetByCustomerID joins orders with flavours, projecting the flavour name
// instead of its id. A customer with no orders yields an empty slice.
func (r *orderRepo) GetByCustomerID(ctx context.Context, customerID int) ([]models.CustomerOrder, error) {
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customer ID must be positive", ErrInvalidInput)
	}

	sql := `
		SELECT
			o.id,
			f.name,
			o.quantity,
			o.total_price
		FROM orders o
		JOIN flavours f ON o.flavour_id = f.id
		WHERE o.customer_id = $1
		ORDER BY o.id
	`

	rows, err := r.db.Query(ctx, sql, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	var orders []models.CustomerOrder

	for rows.Next() {
		var o models.CustomerOrder

		err := rows.Scan(
			&o.OrderID,
			&o.Flavour,
			&o.Quantity,
			&o.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer orders: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return orders, nil
}
