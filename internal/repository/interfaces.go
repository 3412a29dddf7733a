package repository

import (
	"context"

	"icecream-service/internal/models"
)

type FlavourRepository interface {
	Create(ctx context.Context, flavour *models.Flavour) error
	GetByID(ctx context.Context, id int) (*models.Flavour, error)
	GetAll(ctx context.Context) ([]models.Flavour, error)
	Replace(ctx context.Context, flavour *models.Flavour) error
	Patch(ctx context.Context, id int, fields map[string]any) (*models.Flavour, error)
	Delete(ctx context.Context, id int) error

	GetByType(ctx context.Context, flavourType string) ([]models.Flavour, error)
	GetByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]models.Flavour, error)
	GetCheapest(ctx context.Context, limit int) ([]models.Flavour, error)
	GetPriciest(ctx context.Context, limit int) ([]models.Flavour, error)
	GetStats(ctx context.Context) (*models.FlavourStats, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id int) (*models.Customer, error)
	GetAll(ctx context.Context) ([]models.Customer, error)
	Replace(ctx context.Context, customer *models.Customer) error
	Patch(ctx context.Context, id int, fields map[string]any) (*models.Customer, error)
	Delete(ctx context.Context, id int) error
}

// OrderRepository has no update or delete: orders are immutable once placed.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByCustomerID(ctx context.Context, customerID int) ([]models.CustomerOrder, error)
}
