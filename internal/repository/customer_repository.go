package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"icecream-service/internal/models"
)

var customerPatchColumns = []string{"name", "email", "loyalty_points"}

type customerRepo struct {
	db *pgxpool.Pool
}

var validate = validator.New()

func NewCustomerRepository(db *pgxpool.Pool) CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, c *models.Customer) error {
	if err := validate.Struct(c); err != nil {
		var validationErr validator.ValidationErrors
		if errors.As(err, &validationErr) {
			switch validationErr[0].Field() {
			case "Email":
				return fmt.Errorf("%w: valid email required", ErrInvalidInput)
			case "Name":
				return fmt.Errorf("%w: name must be 2-150 characters", ErrInvalidInput)
			}
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if c.LoyaltyPoints < 0 {
		return fmt.Errorf("%w: loyalty_points cannot be negative", ErrInvalidInput)
	}

	sql := `
		INSERT INTO customers (
			name,
			email,
			loyalty_points
	) VALUES ($1, $2, $3)
	RETURNING id
	`

	err := r.db.QueryRow(ctx, sql,
		c.Name,
		c.Email,
		c.LoyaltyPoints,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueEmailViolation(err) {
			return fmt.Errorf("%w: email already exists", ErrDuplicate)
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id int) (*models.Customer, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `
		SELECT
			id,
			name,
			email,
			loyalty_points
		FROM customers WHERE id = $1
	`

	var customer models.Customer

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.LoyaltyPoints,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer with id %d: %w", id, err)
	}

	return &customer, nil
}

func (r *customerRepo) GetAll(ctx context.Context) ([]models.Customer, error) {
	sql := `
		SELECT
			id,
			name,
			email,
			loyalty_points
		FROM customers
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all customers: %w", err)
	}
	defer rows.Close()

	var customers []models.Customer

	for rows.Next() {
		var c models.Customer

		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Email,
			&c.LoyaltyPoints,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customers: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return customers, nil
}

func (r *customerRepo) Replace(ctx context.Context, c *models.Customer) error {
	if c.Name == "" {
		return fmt.Errorf("%w: customer name required", ErrInvalidInput)
	}
	if c.ID <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `
	UPDATE customers
	SET
		name = $1,
		email = $2,
		loyalty_points = $3
	WHERE id = $4
	`

	result, err := r.db.Exec(ctx, sql,
		c.Name,
		c.Email,
		c.LoyaltyPoints,
		c.ID,
	)
	if err != nil {
		if isUniqueEmailViolation(err) {
			return fmt.Errorf("%w: email already exists", ErrDuplicate)
		}
		return fmt.Errorf("failed to replace customer %d: %w", c.ID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *customerRepo) Patch(ctx context.Context, id int, fields map[string]any) (*models.Customer, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	// JSON numbers arrive as float64; loyalty_points is an integer column.
	if points, ok := fields["loyalty_points"].(float64); ok {
		fields["loyalty_points"] = int(points)
	}

	sql, args := buildUpdate("customers", customerPatchColumns, fields, id)
	if sql == "" {
		return r.GetByID(ctx, id)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isUniqueEmailViolation(err) {
			return nil, fmt.Errorf("%w: email already exists", ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to patch customer %d: %w", id, err)
	}

	return r.GetByID(ctx, id)
}

func (r *customerRepo) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `DELETE FROM customers WHERE id = $1`

	result, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func isUniqueEmailViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "email")
}
