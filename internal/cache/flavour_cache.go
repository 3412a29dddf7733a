package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"icecream-service/internal/models"
	"icecream-service/internal/repository"
)

const notFoundMarker = "notfound"

// CachedFlavourRepository is a read-through cache around the real flavour
// repository. Redis failures are logged and the call falls through to the
// database; the store stays the source of truth and every write invalidates.
type CachedFlavourRepository struct {
	realRepo repository.FlavourRepository
	redis    *redis.Client
	logger   *zap.Logger
	ttl      time.Duration
}

func NewCachedFlavourRepository(realRepo repository.FlavourRepository, rdb *redis.Client, logger *zap.Logger) *CachedFlavourRepository {
	return &CachedFlavourRepository{
		realRepo: realRepo,
		redis:    rdb,
		logger:   logger,
		ttl:      5 * time.Minute,
	}
}

func (c *CachedFlavourRepository) GetByID(ctx context.Context, id int) (*models.Flavour, error) {
	key := fmt.Sprintf("flavour:%d", id)

	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, repository.ErrNotFound
		}

		var flavour models.Flavour
		if err := json.Unmarshal(data, &flavour); err != nil {
			c.logger.Warn("failed to unmarshal cached flavour, continuing with DB", zap.Error(err))
			break
		}
		return &flavour, nil

	case errors.Is(err, redis.Nil):

	default:
		c.logger.Warn("redis error, continuing with DB", zap.Error(err))
	}

	flavour, err := c.realRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.redis.Set(ctx, key, notFoundMarker, time.Minute)
		}
		return nil, err
	}

	c.setJSON(ctx, key, flavour)
	return flavour, nil
}

func (c *CachedFlavourRepository) GetAll(ctx context.Context) ([]models.Flavour, error) {
	return c.getList(ctx, "flavours:all", func() ([]models.Flavour, error) {
		return c.realRepo.GetAll(ctx)
	})
}

func (c *CachedFlavourRepository) GetByType(ctx context.Context, flavourType string) ([]models.Flavour, error) {
	key := fmt.Sprintf("flavours:type:%s", flavourType)
	return c.getList(ctx, key, func() ([]models.Flavour, error) {
		return c.realRepo.GetByType(ctx, flavourType)
	})
}

func (c *CachedFlavourRepository) Create(ctx context.Context, flavour *models.Flavour) error {
	if err := c.realRepo.Create(ctx, flavour); err != nil {
		return err
	}
	c.invalidate(ctx, flavour.ID, flavour.Type)
	return nil
}

func (c *CachedFlavourRepository) Replace(ctx context.Context, flavour *models.Flavour) error {
	old, err := c.realRepo.GetByID(ctx, flavour.ID)
	if err == nil && old.Type != flavour.Type {
		c.invalidate(ctx, flavour.ID, old.Type)
	}
	if err := c.realRepo.Replace(ctx, flavour); err != nil {
		c.invalidate(ctx, flavour.ID, "")
		return err
	}
	c.invalidate(ctx, flavour.ID, flavour.Type)
	return nil
}

func (c *CachedFlavourRepository) Patch(ctx context.Context, id int, fields map[string]any) (*models.Flavour, error) {
	old, err := c.realRepo.GetByID(ctx, id)
	if err == nil {
		c.invalidate(ctx, id, old.Type)
	}
	flavour, err := c.realRepo.Patch(ctx, id, fields)
	if err != nil {
		c.invalidate(ctx, id, "")
		return nil, err
	}
	c.invalidate(ctx, id, flavour.Type)
	return flavour, nil
}

func (c *CachedFlavourRepository) Delete(ctx context.Context, id int) error {
	old, err := c.realRepo.GetByID(ctx, id)
	if err == nil {
		c.invalidate(ctx, id, old.Type)
	}
	if err := c.realRepo.Delete(ctx, id); err != nil {
		c.invalidate(ctx, id, "")
		return err
	}
	c.invalidate(ctx, id, "")
	return nil
}

// Range, ranking and stats queries change with every price write, so they are
// not cached and always hit the database.

func (c *CachedFlavourRepository) GetByPriceRange(ctx context.Context, minPrice, maxPrice float64) ([]models.Flavour, error) {
	return c.realRepo.GetByPriceRange(ctx, minPrice, maxPrice)
}

func (c *CachedFlavourRepository) GetCheapest(ctx context.Context, limit int) ([]models.Flavour, error) {
	return c.realRepo.GetCheapest(ctx, limit)
}

func (c *CachedFlavourRepository) GetPriciest(ctx context.Context, limit int) ([]models.Flavour, error) {
	return c.realRepo.GetPriciest(ctx, limit)
}

func (c *CachedFlavourRepository) GetStats(ctx context.Context) (*models.FlavourStats, error) {
	return c.realRepo.GetStats(ctx)
}

func (c *CachedFlavourRepository) getList(ctx context.Context, key string, load func() ([]models.Flavour, error)) ([]models.Flavour, error) {
	data, err := c.redis.Get(ctx, key).Bytes()

	if err == nil {
		var flavours []models.Flavour
		if err := json.Unmarshal(data, &flavours); err == nil {
			return flavours, nil
		}
		c.logger.Warn("failed to unmarshal cached flavour list, continuing with DB", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("redis error, continuing with DB", zap.Error(err))
	}

	flavours, err := load()
	if err != nil {
		return nil, err
	}

	c.setJSON(ctx, key, flavours)
	return flavours, nil
}

func (c *CachedFlavourRepository) setJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to store cache value", zap.String("key", key), zap.Error(err))
	}
}

func (c *CachedFlavourRepository) invalidate(ctx context.Context, id int, flavourType string) {
	keys := []string{fmt.Sprintf("flavour:%d", id), "flavours:all"}
	if flavourType != "" {
		keys = append(keys, fmt.Sprintf("flavours:type:%s", flavourType))
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("failed to invalidate flavour cache", zap.Int("id", id), zap.Error(err))
	}
}
