package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"icecream-service/internal/models"
)

// flavourPatchColumns is the fixed whitelist of mutable flavour columns,
// in declaration order.
var flavourPatchColumns = []string{"name", "type", "price_per_serving"}

type flavourRepo struct {
	db *pgxpool.Pool
}

func NewFlavourRepository(db *pgxpool.Pool) FlavourRepository {
	return &flavourRepo{db: db}
}

func (r *flavourRepo) Create(ctx context.Context, f *models.Flavour) error {
	if f.Name == "" {
		return fmt.Errorf("%w: flavour name required", ErrInvalidInput)
	}
	if f.Type == "" {
		return fmt.Errorf("%w: flavour type required", ErrInvalidInput)
	}
	if f.PricePerServing < 0 {
		return fmt.Errorf("%w: price_per_serving cannot be negative", ErrInvalidInput)
	}

	sql := `
		INSERT INTO flavours (
			name,
			type,
			price_per_serving
	) VALUES ($1, $2, $3)
	RETURNING id
	`

	err := r.db.QueryRow(ctx, sql,
		f.Name,
		f.Type,
		f.PricePerServing,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("failed to create flavour: %w", err)
	}

	return nil
}

func (r *flavourRepo) GetByID(ctx context.Context, id int) (*models.Flavour, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `
		SELECT
			id,
			name,
			type,
			price_per_serving
		FROM flavours WHERE id = $1
		`

	var flavour models.Flavour

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&flavour.ID,
		&flavour.Name,
		&flavour.Type,
		&flavour.PricePerServing,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get flavour by id %d: %w", id, err)
	}

	return &flavour, nil
}

func (r *flavourRepo) GetAll(ctx context.Context) ([]models.Flavour, error) {
	sql := `
		SELECT
			id,
			name,
			type,
			price_per_serving
		FROM flavours
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get all flavours: %w", err)
	}
	defer rows.Close()

	return scanFlavours(rows)
}

func (r *flavourRepo) Replace(ctx context.Context, f *models.Flavour) error {
	if f.Name == "" {
		return fmt.Errorf("%w: flavour name required", ErrInvalidInput)
	}
	if f.PricePerServing < 0 {
		return fmt.Errorf("%w: price_per_serving cannot be negative", ErrInvalidInput)
	}
	if f.ID <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `
	UPDATE flavours
	SET
		name = $1,
		type = $2,
		price_per_serving = $3
	WHERE id = $4
	`

	result, err := r.db.Exec(ctx, sql,
		f.Name,
		f.Type,
		f.PricePerServing,
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to replace flavour %d: %w", f.ID, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *flavourRepo) Patch(ctx context.Context, id int, fields map[string]any) (*models.Flavour, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	// Existence probe first so a missing row is a clean 404 rather than a
	// silent zero-row update.
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	sql, args := buildUpdate("flavours", flavourPatchColumns, fields, id)
	if sql == "" {
		// No recognized columns: the row exists, so this is a no-op success.
		return r.GetByID(ctx, id)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("failed to patch flavour %d: %w", id, err)
	}

	return r.GetByID(ctx, id)
}

func (r *flavourRepo) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `DELETE FROM flavours WHERE id = $1`

	result, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete flavour %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *flavourRepo) GetByType(ctx context.Context, flavourType string) ([]models.Flavour, error) {
	if flavourType == "" {
		return nil, fmt.Errorf("%w: type cannot be empty", ErrInvalidInput)
	}

	sql := `
		SELECT
			id,
			name,
			type,
			price_per_serving
		FROM flavours WHERE type = $1
		ORDER BY id
		`

	rows, err := r.db.Query(ctx, sql, flavourType)
	if err != nil {
		return nil, fmt.Errorf("failed to get flavours by type: %w", err)
	}
	defer rows.Close()

	return scanFlavours(rows)
}

func (r *flavourRepo) GetByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]models.Flavour, error) {
	if minPrice < 0 || maxPrice < minPrice {
		return nil, fmt.Errorf("%w: invalid price range", ErrInvalidInput)
	}

	sql := `
		SELECT
			id,
			name,
			type,
			price_per_serving
		FROM flavours WHERE price_per_serving BETWEEN $1 AND $2
		ORDER BY id
		`

	rows, err := r.db.Query(ctx, sql, minPrice, maxPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to get flavours by price range: %w", err)
	}
	defer rows.Close()

	return scanFlavours(rows)
}

func (r *flavourRepo) GetCheapest(ctx context.Context, limit int) ([]models.Flavour, error) {
	return r.getRanked(ctx, "ASC", limit)
}

func (r *flavourRepo) GetPriciest(ctx context.Context, limit int) ([]models.Flavour, error) {
	return r.getRanked(ctx, "DESC", limit)
}

func (r *flavourRepo) getRanked(ctx context.Context, direction string, limit int) ([]models.Flavour, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidInput)
	}

	// direction is a fixed literal chosen by the caller, never client input.
	sql := fmt.Sprintf(`
		SELECT
			id,
			name,
			type,
			price_per_serving
		FROM flavours
		ORDER BY price_per_serving %s, id
		LIMIT $1
		`, direction)

	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ranked flavours: %w", err)
	}
	defer rows.Close()

	return scanFlavours(rows)
}

func (r *flavourRepo) GetStats(ctx context.Context) (*models.FlavourStats, error) {
	sql := `
		SELECT
			COUNT(*),
			COALESCE(AVG(price_per_serving), 0),
			COALESCE(MIN(price_per_serving), 0),
			COALESCE(MAX(price_per_serving), 0)
		FROM flavours
	`

	var stats models.FlavourStats

	err := r.db.QueryRow(ctx, sql).Scan(
		&stats.TotalFlavours,
		&stats.AveragePrice,
		&stats.CheapestPrice,
		&stats.MostExpensivePrice,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get flavour stats: %w", err)
	}

	stats.AveragePrice = round2(stats.AveragePrice)
	stats.TypesCount = make(map[string]int)

	rows, err := r.db.Query(ctx, `SELECT type, COUNT(*) FROM flavours GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("failed to get type counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var flavourType string
		var count int
		if err := rows.Scan(&flavourType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan type count: %w", err)
		}
		stats.TypesCount[flavourType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return &stats, nil
}

func scanFlavours(rows pgx.Rows) ([]models.Flavour, error) {
	var flavours []models.Flavour

	for rows.Next() {
		var f models.Flavour

		err := rows.Scan(
			&f.ID,
			&f.Name,
			&f.Type,
			&f.PricePerServing,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flavours: %w", err)
		}
		flavours = append(flavours, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return flavours, nil
}
