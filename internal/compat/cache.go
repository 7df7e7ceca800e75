package compat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ppmsoft/pim-core/pkg/clock"
	"github.com/ppmsoft/pim-core/pkg/db/models"
	pkgerrors "github.com/ppmsoft/pim-core/pkg/errors"
	"github.com/ppmsoft/pim-core/pkg/metrics"
)

// Cache stores precomputed compatibility payloads per product, scoped to a
// shop or global when shopID is nil. Expiry is lazy: an expired row is
// reported as a miss but left in place.
type Cache struct {
	db      *gorm.DB
	clock   clock.Clock
	ttl     time.Duration
	metrics *metrics.CompatCacheMetrics
}

// NewCache builds the cache. A nil clock falls back to the wall clock and a
// non-positive TTL falls back to fifteen minutes.
func NewCache(db *gorm.DB, c clock.Clock, ttl time.Duration, m *metrics.CompatCacheMetrics) (*Cache, error) {
	if db == nil {
		return nil, fmt.Errorf("cache database required")
	}
	if c == nil {
		c = clock.System{}
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Cache{db: db, clock: c, ttl: ttl, metrics: m}, nil
}

func scopeQuery(db *gorm.DB, productID uuid.UUID, shopID *uuid.UUID) *gorm.DB {
	db = db.Where("product_id = ?", productID)
	if shopID == nil {
		return db.Where("shop_id IS NULL")
	}
	return db.Where("shop_id = ?", *shopID)
}

// GetCached returns the payload for the scope, or nil on a miss. Expired
// entries count as misses.
func (c *Cache) GetCached(ctx context.Context, productID uuid.UUID, shopID *uuid.UUID) (json.RawMessage, error) {
	var row models.CompatibilityCache
	err := scopeQuery(c.db.WithContext(ctx), productID, shopID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.metrics.IncMiss()
			return nil, nil
		}
		return nil, err
	}
	if !row.IsFresh(c.clock.Now()) {
		c.metrics.IncMiss()
		return nil, nil
	}
	c.metrics.IncHit()
	return row.Payload, nil
}

// UpdateOrCreate writes the payload for the scope with a fresh TTL. The
// payload must be a JSON object.
func (c *Cache) UpdateOrCreate(ctx context.Context, productID uuid.UUID, shopID *uuid.UUID, payload json.RawMessage) (*models.CompatibilityCache, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}
	expiresAt := c.clock.Now().Add(c.ttl)

	var row models.CompatibilityCache
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updated := scopeQuery(tx.Model(&models.CompatibilityCache{}), productID, shopID).
			Updates(map[string]any{
				"payload":    payload,
				"expires_at": expiresAt,
			})
		if updated.Error != nil {
			return updated.Error
		}
		if updated.RowsAffected > 0 {
			return scopeQuery(tx, productID, shopID).First(&row).Error
		}

		row = models.CompatibilityCache{
			ProductID: productID,
			ShopID:    shopID,
			Payload:   payload,
			ExpiresAt: expiresAt,
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Invalidate expires the entry for the scope without removing it. Missing
// entries are fine.
func (c *Cache) Invalidate(ctx context.Context, productID uuid.UUID, shopID *uuid.UUID) error {
	past := c.clock.Now().Add(-time.Second)
	return scopeQuery(c.db.WithContext(ctx).Model(&models.CompatibilityCache{}), productID, shopID).
		Update("expires_at", past).
		Error
}

// InvalidateProduct removes every cache row for the product across all
// scopes.
func (c *Cache) InvalidateProduct(ctx context.Context, productID uuid.UUID) error {
	return c.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.CompatibilityCache{}).
		Error
}

func validatePayload(payload json.RawMessage) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "compatibility payload must be a JSON object")
	}
	return nil
}
