package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts the default catalog and customer roster, but only into empty
// tables, so an existing installation is never touched.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	var count int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM flavours").Scan(&count); err != nil {
		return fmt.Errorf("failed to count flavours: %w", err)
	}
	if count == 0 {
		flavours := []struct {
			name  string
			typ   string
			price float64
		}{
			{"schokolade", "milch", 1.5},
			{"vanille", "milch", 1.5},
			{"zitrone", "frucht", 1.3},
		}
		for _, f := range flavours {
			_, err := db.Exec(ctx,
				"INSERT INTO flavours (name, type, price_per_serving) VALUES ($1, $2, $3)",
				f.name, f.typ, f.price,
			)
			if err != nil {
				return fmt.Errorf("failed to seed flavour %s: %w", f.name, err)
			}
		}
	}

	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&count); err != nil {
		return fmt.Errorf("failed to count customers: %w", err)
	}
	if count == 0 {
		customers := []struct {
			name   string
			email  string
			points int
		}{
			{"Max Mustermann", "max@email.com", 50},
			{"Anna Schmidt", "anna@email.com", 30},
			{"Tom Weber", "tom@email.com", 80},
		}
		for _, c := range customers {
			_, err := db.Exec(ctx,
				"INSERT INTO customers (name, email, loyalty_points) VALUES ($1, $2, $3)",
				c.name, c.email, c.points,
			)
			if err != nil {
				return fmt.Errorf("failed to seed customer %s: %w", c.name, err)
			}
		}
	}

	return nil
}
