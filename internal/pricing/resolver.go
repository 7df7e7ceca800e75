package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ppmsoft/pim-core/pkg/clock"
	"github.com/ppmsoft/pim-core/pkg/db/models"
)

// Resolver evaluates price rows against an injected time source.
type Resolver struct {
	clock clock.Clock
}

// NewResolver builds a resolver. A nil clock falls back to the wall clock.
func NewResolver(c clock.Clock) *Resolver {
	if c == nil {
		c = clock.System{}
	}
	return &Resolver{clock: c}
}

// IsSpecialActive reports whether the special price applies right now.
func (r *Resolver) IsSpecialActive(p *models.VariantPrice) bool {
	return IsSpecialActive(p, r.clock.Now())
}

// EffectivePrice returns the price currently in force.
func (r *Resolver) EffectivePrice(p *models.VariantPrice) decimal.Decimal {
	return EffectivePrice(p, r.clock.Now())
}

// Savings returns the current absolute discount, or nil.
func (r *Resolver) Savings(p *models.VariantPrice) *decimal.Decimal {
	return Savings(p, r.clock.Now())
}

// SavingsPercentage returns the current discount percentage, or nil.
func (r *Resolver) SavingsPercentage(p *models.VariantPrice) *int {
	return SavingsPercentage(p, r.clock.Now())
}

// IsSpecialActive reports whether the special price applies at the given
// instant. Window bounds are inclusive; a nil bound is open on that side.
func IsSpecialActive(p *models.VariantPrice, now time.Time) bool {
	if p == nil || p.SpecialPrice == nil {
		return false
	}
	if p.SpecialPriceFrom != nil && now.Before(*p.SpecialPriceFrom) {
		return false
	}
	if p.SpecialPriceTo != nil && now.After(*p.SpecialPriceTo) {
		return false
	}
	return true
}

// EffectivePrice returns the special price while its window is active and
// the regular price otherwise.
func EffectivePrice(p *models.VariantPrice, now time.Time) decimal.Decimal {
	if IsSpecialActive(p, now) {
		return *p.SpecialPrice
	}
	return p.Price
}

// Savings returns the absolute discount granted by an active special price,
// or nil when no special is active.
func Savings(p *models.VariantPrice, now time.Time) *decimal.Decimal {
	if !IsSpecialActive(p, now) {
		return nil
	}
	diff := p.Price.Sub(*p.SpecialPrice)
	return &diff
}

// SavingsPercentage returns the discount as a whole-number percentage of the
// regular price, rounded to the nearest integer. Nil when no special is
// active or the regular price is not positive.
func SavingsPercentage(p *models.VariantPrice, now time.Time) *int {
	if !IsSpecialActive(p, now) {
		return nil
	}
	if !p.Price.IsPositive() {
		return nil
	}
	diff := p.Price.Sub(*p.SpecialPrice)
	pct := int(diff.Div(p.Price).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	return &pct
}
