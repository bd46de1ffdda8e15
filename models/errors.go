package models

import (
	"fmt"
	"strings"
)

// ValidationError carries every broken input constraint at once, so the
// caller can show the whole list instead of fixing fields one at a time.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

func (e *ValidationError) Add(violation string) {
	e.Violations = append(e.Violations, violation)
}

// OrNil returns the error only when at least one violation was recorded.
func (e *ValidationError) OrNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}

// InsufficientStockError reports an outgoing quantity above the on-hand
// count. Available/Requested feed the caller's user-facing message.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}

// DuplicateSkuError reports a sku colliding with a different item.
// Sku comparison is case-insensitive.
type DuplicateSkuError struct {
	Sku string
}

func (e *DuplicateSkuError) Error() string {
	return fmt.Sprintf("duplicate sku %q", e.Sku)
}
