package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ppmsoft/pim-core/pkg/db/models"
	"github.com/ppmsoft/pim-core/pkg/enums"
	pkgerrors "github.com/ppmsoft/pim-core/pkg/errors"
	"github.com/ppmsoft/pim-core/pkg/metrics"
)

// Result is the outcome of a stock mutation. Precondition failures are
// results, not errors; only persistence failures surface as errors.
type Result string

const (
	ResultOK                   Result = "ok"
	ResultInvalidAmount        Result = "invalid_amount"
	ResultInsufficientQuantity Result = "insufficient_quantity"
	ResultNotFound             Result = "not_found"
)

// Ok reports whether the mutation was applied.
func (r Result) Ok() bool {
	return r == ResultOK
}

// String implements fmt.Stringer.
func (r Result) String() string {
	return string(r)
}

// Ledger mutates per-variant, per-warehouse stock rows. Every mutation is a
// single conditional UPDATE so the reserved <= quantity invariant cannot be
// violated by concurrent callers.
type Ledger struct {
	db      *gorm.DB
	metrics *metrics.StockLedgerMetrics
}

// NewLedger builds a ledger bound to the provided database. Metrics may be
// nil.
func NewLedger(db *gorm.DB, m *metrics.StockLedgerMetrics) (*Ledger, error) {
	if db == nil {
		return nil, fmt.Errorf("ledger database required")
	}
	return &Ledger{db: db, metrics: m}, nil
}

// WithTx returns a ledger bound to the provided transaction.
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	if tx == nil {
		return l
	}
	return &Ledger{db: tx, metrics: l.metrics}
}

// CreateWarehouse registers a stock location. Codes are unique.
func (l *Ledger) CreateWarehouse(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error) {
	err := l.db.WithContext(ctx).Create(warehouse).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict,
				fmt.Sprintf("warehouse code %q already exists", warehouse.Code))
		}
		return nil, err
	}
	return warehouse, nil
}

// ListWarehouses returns stock locations ordered by code.
func (l *Ledger) ListWarehouses(ctx context.Context, onlyActive bool) ([]models.Warehouse, error) {
	query := l.db.WithContext(ctx)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}

	var warehouses []models.Warehouse
	if err := query.Order("code ASC").Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

// EnsureRow creates the stock row for the pair when absent.
func (l *Ledger) EnsureRow(ctx context.Context, variantID, warehouseID uuid.UUID) (*models.VariantStock, error) {
	row := &models.VariantStock{VariantID: variantID, WarehouseID: warehouseID}
	err := l.db.WithContext(ctx).
		Where("variant_id = ? AND warehouse_id = ?", variantID, warehouseID).
		FirstOrCreate(row).
		Error
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Get loads the stock row for the pair.
func (l *Ledger) Get(ctx context.Context, variantID, warehouseID uuid.UUID) (*models.VariantStock, error) {
	var row models.VariantStock
	err := l.db.WithContext(ctx).
		First(&row, "variant_id = ? AND warehouse_id = ?", variantID, warehouseID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("stock row for variant %s in warehouse %s not found", variantID, warehouseID))
		}
		return nil, err
	}
	return &row, nil
}

// Reserve marks qty units as reserved when enough are available. The row is
// untouched when availability is insufficient.
func (l *Ledger) Reserve(ctx context.Context, variantID, warehouseID uuid.UUID, qty int, reason *string) (Result, error) {
	return l.mutate(ctx, enums.MovementTypeReserve, variantID, warehouseID, qty, reason, func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&models.VariantStock{}).
			Where("variant_id = ? AND warehouse_id = ?", variantID, warehouseID).
			Where("quantity - reserved >= ?", qty).
			Update("reserved", gorm.Expr("reserved + ?", qty))
	})
}

// Release returns qty reserved units to the available pool. Releasing more
// than is reserved leaves the row untouched.
func (l *Ledger) Release(ctx context.Context, variantID, warehouseID uuid.UUID, qty int, reason *string) (Result, error) {
	return l.mutate(ctx, enums.MovementTypeRelease, variantID, warehouseID, qty, reason, func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&models.VariantStock{}).
			Where("variant_id = ? AND warehouse_id = ?", variantID, warehouseID).
			Where("reserved >= ?", qty).
			Update("reserved", gorm.Expr("reserved - ?", qty))
	})
}

// AddStock increases the on-hand quantity.
func (l *Ledger) AddStock(ctx context.Context, variantID, warehouseID uuid.UUID, qty int, reason *string) (Result, error) {
	return l.mutate(ctx, enums.MovementTypeAdd, variantID, warehouseID, qty, reason, func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&models.VariantStock{}).
			Where("variant_id = ? AND warehouse_id = ?", variantID, warehouseID).
			Update("quantity", gorm.Expr("quantity + ?", qty))
	})
}

// RemoveStock decreases the on-hand quantity. Removing more than is on hand
// leaves the row untouched.
func (l *Ledger) RemoveStock(ctx context.Context, variantID, warehouseID uuid.UUID, qty int, reason *string) (Result, error) {
	return l.mutate(ctx, enums.MovementTypeRemove, variantID, warehouseID, qty, reason, func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&models.VariantStock{}).
			Where("variant_id = ? AND warehouse_id = ?", variantID, warehouseID).
			Where("quantity >= ?", qty).
			Update("quantity", gorm.Expr("quantity - ?", qty))
	})
}

// ListLowStock returns rows whose available quantity has fallen to the
// minimum stock threshold while some stock remains.
func (l *Ledger) ListLowStock(ctx context.Context) ([]models.VariantStock, error) {
	var rows []models.VariantStock
	err := l.db.WithContext(ctx).
		Where("quantity - reserved <= minimum_stock").
		Where("quantity - reserved > 0").
		Order("updated_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListMovements returns the audit trail for a variant, oldest first.
func (l *Ledger) ListMovements(ctx context.Context, variantID uuid.UUID) ([]models.StockMovement, error) {
	var rows []models.StockMovement
	err := l.db.WithContext(ctx).
		Where("variant_id = ?", variantID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (l *Ledger) mutate(
	ctx context.Context,
	movement enums.MovementType,
	variantID, warehouseID uuid.UUID,
	qty int,
	reason *string,
	update func(tx *gorm.DB) *gorm.DB,
) (Result, error) {
	if qty <= 0 {
		l.metrics.IncRejected(movement.String())
		return ResultInvalidAmount, nil
	}

	result := ResultOK
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updated := update(tx)
		if updated.Error != nil {
			return updated.Error
		}
		if updated.RowsAffected == 0 {
			var count int64
			err := tx.Model(&models.VariantStock{}).
				Where("variant_id = ? AND warehouse_id = ?", variantID, warehouseID).
				Count(&count).
				Error
			if err != nil {
				return err
			}
			if count == 0 {
				result = ResultNotFound
			} else {
				result = ResultInsufficientQuantity
			}
			return nil
		}

		entry := &models.StockMovement{
			VariantID:    variantID,
			WarehouseID:  warehouseID,
			MovementType: movement,
			Quantity:     qty,
			Reason:       reason,
		}
		return tx.Create(entry).Error
	})
	if err != nil {
		return "", err
	}

	if result.Ok() {
		l.metrics.IncApplied(movement.String())
	} else {
		l.metrics.IncRejected(movement.String())
	}
	return result, nil
}
