package api

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"icecream-service/internal/models"
	"icecream-service/internal/repository"
)

// In-memory doubles honoring the repository contracts, seeded with the same
// rows the database seeder inserts.

type fakeFlavourRepo struct {
	flavours map[int]models.Flavour
	nextID   int
}

func newFakeFlavourRepo() *fakeFlavourRepo {
	r := &fakeFlavourRepo{flavours: make(map[int]models.Flavour)}
	seed := []models.Flavour{
		{Name: "schokolade", Type: "milch", PricePerServing: 1.5},
		{Name: "vanille", Type: "milch", PricePerServing: 1.5},
		{Name: "zitrone", Type: "frucht", PricePerServing: 1.3},
	}
	for i := range seed {
		_ = r.Create(context.Background(), &seed[i])
	}
	return r
}

func (r *fakeFlavourRepo) Create(_ context.Context, f *models.Flavour) error {
	if f.Name == "" {
		return fmt.Errorf("%w: flavour name required", repository.ErrInvalidInput)
	}
	if f.Type == "" {
		return fmt.Errorf("%w: flavour type required", repository.ErrInvalidInput)
	}
	if f.PricePerServing < 0 {
		return fmt.Errorf("%w: price_per_serving cannot be negative", repository.ErrInvalidInput)
	}
	r.nextID++
	f.ID = r.nextID
	r.flavours[f.ID] = *f
	return nil
}

func (r *fakeFlavourRepo) GetByID(_ context.Context, id int) (*models.Flavour, error) {
	f, ok := r.flavours[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func (r *fakeFlavourRepo) GetAll(_ context.Context) ([]models.Flavour, error) {
	return r.sorted(func(models.Flavour) bool { return true }), nil
}

func (r *fakeFlavourRepo) Replace(_ context.Context, f *models.Flavour) error {
	if f.Name == "" {
		return fmt.Errorf("%w: flavour name required", repository.ErrInvalidInput)
	}
	if _, ok := r.flavours[f.ID]; !ok {
		return repository.ErrNotFound
	}
	r.flavours[f.ID] = *f
	return nil
}

func (r *fakeFlavourRepo) Patch(_ context.Context, id int, fields map[string]any) (*models.Flavour, error) {
	f, ok := r.flavours[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		f.Name = v
	}
	if v, ok := fields["type"].(string); ok {
		f.Type = v
	}
	if v, ok := fields["price_per_serving"].(float64); ok {
		f.PricePerServing = v
	}
	r.flavours[id] = f
	return &f, nil
}

func (r *fakeFlavourRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.flavours[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.flavours, id)
	return nil
}

func (r *fakeFlavourRepo) GetByType(_ context.Context, flavourType string) ([]models.Flavour, error) {
	return r.sorted(func(f models.Flavour) bool { return f.Type == flavourType }), nil
}

func (r *fakeFlavourRepo) GetByPriceRange(_ context.Context, minPrice, maxPrice float64) ([]models.Flavour, error) {
	if minPrice < 0 || maxPrice < minPrice {
		return nil, fmt.Errorf("%w: invalid price range", repository.ErrInvalidInput)
	}
	return r.sorted(func(f models.Flavour) bool {
		return f.PricePerServing >= minPrice && f.PricePerServing <= maxPrice
	}), nil
}

func (r *fakeFlavourRepo) GetCheapest(_ context.Context, limit int) ([]models.Flavour, error) {
	return r.ranked(limit, true), nil
}

func (r *fakeFlavourRepo) GetPriciest(_ context.Context, limit int) ([]models.Flavour, error) {
	return r.ranked(limit, false), nil
}

func (r *fakeFlavourRepo) GetStats(_ context.Context) (*models.FlavourStats, error) {
	stats := &models.FlavourStats{TypesCount: make(map[string]int)}
	var sum float64
	first := true
	for _, f := range r.flavours {
		stats.TotalFlavours++
		sum += f.PricePerServing
		stats.TypesCount[f.Type]++
		if first || f.PricePerServing < stats.CheapestPrice {
			stats.CheapestPrice = f.PricePerServing
		}
		if first || f.PricePerServing > stats.MostExpensivePrice {
			stats.MostExpensivePrice = f.PricePerServing
		}
		first = false
	}
	if stats.TotalFlavours > 0 {
		stats.AveragePrice = math.Round(sum/float64(stats.TotalFlavours)*100) / 100
	}
	return stats, nil
}

func (r *fakeFlavourRepo) sorted(keep func(models.Flavour) bool) []models.Flavour {
	var out []models.Flavour
	for _, f := range r.flavours {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeFlavourRepo) ranked(limit int, ascending bool) []models.Flavour {
	out := r.sorted(func(models.Flavour) bool { return true })
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].PricePerServing < out[j].PricePerServing
		}
		return out[i].PricePerServing > out[j].PricePerServing
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

type fakeCustomerRepo struct {
	customers map[int]models.Customer
	nextID    int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	r := &fakeCustomerRepo{customers: make(map[int]models.Customer)}
	seed := []models.Customer{
		{Name: "Max Mustermann", Email: "max@email.com", LoyaltyPoints: 50},
		{Name: "Anna Schmidt", Email: "anna@email.com", LoyaltyPoints: 30},
		{Name: "Tom Weber", Email: "tom@email.com", LoyaltyPoints: 80},
	}
	for i := range seed {
		_ = r.Create(context.Background(), &seed[i])
	}
	return r
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *models.Customer) error {
	if len(c.Name) < 2 {
		return fmt.Errorf("%w: name must be 2-150 characters", repository.ErrInvalidInput)
	}
	if !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: valid email required", repository.ErrInvalidInput)
	}
	for _, existing := range r.customers {
		if existing.Email == c.Email {
			return fmt.Errorf("%w: email already exists", repository.ErrDuplicate)
		}
	}
	r.nextID++
	c.ID = r.nextID
	r.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id int) (*models.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) GetAll(_ context.Context) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range r.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCustomerRepo) Replace(_ context.Context, c *models.Customer) error {
	if c.Name == "" {
		return fmt.Errorf("%w: customer name required", repository.ErrInvalidInput)
	}
	if _, ok := r.customers[c.ID]; !ok {
		return repository.ErrNotFound
	}
	r.customers[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) Patch(_ context.Context, id int, fields map[string]any) (*models.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		c.Name = v
	}
	if v, ok := fields["email"].(string); ok {
		c.Email = v
	}
	if v, ok := fields["loyalty_points"].(float64); ok {
		c.LoyaltyPoints = int(v)
	}
	r.customers[id] = c
	return &c, nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.customers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

type fakeOrderRepo struct {
	flavours  *fakeFlavourRepo
	customers *fakeCustomerRepo
	orders    []models.Order
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if o.CustomerID <= 0 {
		return fmt.Errorf("%w: customer_id required", repository.ErrInvalidInput)
	}
	if o.FlavourID <= 0 {
		return fmt.Errorf("%w: flavour_id required", repository.ErrInvalidInput)
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", repository.ErrInvalidInput)
	}
	if _, err := r.customers.GetByID(ctx, o.CustomerID); err != nil {
		return fmt.Errorf("customer not found: %w", repository.ErrNotFound)
	}
	flavour, err := r.flavours.GetByID(ctx, o.FlavourID)
	if err != nil {
		return fmt.Errorf("flavour not found: %w", repository.ErrNotFound)
	}
	o.TotalPrice = math.Round(float64(o.Quantity)*flavour.PricePerServing*100) / 100
	o.ID = len(r.orders) + 1
	o.OrderDate = time.Now()
	r.orders = append(r.orders, *o)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int) (*models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeOrderRepo) GetAll(_ context.Context) ([]models.Order, error) {
	return append([]models.Order(nil), r.orders...), nil
}

func (r *fakeOrderRepo) GetByCustomerID(ctx context.Context, customerID int) ([]models.CustomerOrder, error) {
	var out []models.CustomerOrder
	for _, o := range r.orders {
		if o.CustomerID != customerID {
			continue
		}
		flavour, err := r.flavours.GetByID(ctx, o.FlavourID)
		if err != nil {
			continue
		}
		out = append(out, models.CustomerOrder{
			OrderID:    o.ID,
			Flavour:    flavour.Name,
			Quantity:   o.Quantity,
			TotalPrice: o.TotalPrice,
		})
	}
	return out, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
