// Package validation implements the data-integrity rule set for categories
// and cars: per-field acceptance rules, uniqueness and foreign-key lookups
// against the store, and the Spanish message catalog. Validators perform
// read-only lookups and never mutate state; store-level constraints remain
// the final integrity guarantee under concurrency.
package validation

import (
	"context"
)

// CategoryStore is the read-only category lookup surface the rules need.
type CategoryStore interface {
	// NameTaken reports whether another category already holds this name.
	// excludeID ignores the row being updated; pass 0 for creates.
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	// ActiveExists reports whether a category with this id exists AND has
	// estado = true. This is deliberately one combined predicate: callers
	// cannot distinguish an inactive category from a missing one.
	ActiveExists(ctx context.Context, id int64) (bool, error)
}

// CategoryPayload is the decoded request body for category writes. Every
// field tracks its own presence so the same payload type serves both full
// creates and partial updates.
type CategoryPayload struct {
	Name               OptionalString  `json:"name"`
	Description        OptionalString  `json:"description"`
	Priority           OptionalInt     `json:"priority"`
	DiscountPercentage OptionalDecimal `json:"discount_percentage"`
	Estado             OptionalBool    `json:"estado"`
	CreatedDate        OptionalDate    `json:"created_date"`
}

// CategoryValidator evaluates category payloads against the rule set.
type CategoryValidator struct {
	store CategoryStore
}

func NewCategoryValidator(store CategoryStore) *CategoryValidator {
	return &CategoryValidator{store: store}
}

// ValidateCreate checks a full create payload. The returned Errors map is
// empty when the payload is acceptable. A non-nil error means a store
// lookup failed, not that validation failed.
func (v *CategoryValidator) ValidateCreate(ctx context.Context, p *CategoryPayload) (Errors, error) {
	return v.validate(ctx, p, 0, true)
}

// ValidateUpdate checks a partial update payload. Absent fields are
// skipped entirely; the uniqueness check on name excludes the row being
// updated so an unchanged name never fails.
func (v *CategoryValidator) ValidateUpdate(ctx context.Context, id int64, p *CategoryPayload) (Errors, error) {
	return v.validate(ctx, p, id, false)
}

func (v *CategoryValidator) validate(ctx context.Context, p *CategoryPayload, excludeID int64, create bool) (Errors, error) {
	errs := NewErrors()

	// name: required|string|max:100|unique (self-excluding on update)
	if create || p.Name.Present {
		switch {
		case !p.Name.Present, p.Name.Null, !p.Name.Invalid && p.Name.Value == "":
			errs.Add("name", message("name", ruleRequired))
		case p.Name.Invalid:
			errs.Add("name", message("name", ruleString))
		case len([]rune(p.Name.Value)) > 100:
			errs.Add("name", maxChars("name", 100))
		default:
			taken, err := v.store.NameTaken(ctx, p.Name.Value, excludeID)
			if err != nil {
				return nil, err
			}
			if taken {
				errs.Add("name", message("name", ruleUnique))
			}
		}
	}

	// description: nullable|string|max:1000
	if p.Description.Present && !p.Description.Null {
		switch {
		case p.Description.Invalid:
			errs.Add("description", message("description", ruleString))
		case len([]rune(p.Description.Value)) > 1000:
			errs.Add("description", maxChars("description", 1000))
		}
	}

	// priority: required|integer|min:1|max:100
	if create || p.Priority.Present {
		switch {
		case !p.Priority.Present, p.Priority.Null:
			errs.Add("priority", message("priority", ruleRequired))
		case p.Priority.Invalid:
			errs.Add("priority", message("priority", ruleInteger))
		case p.Priority.Value < 1:
			errs.Add("priority", message("priority", ruleMin, 1))
		case p.Priority.Value > 100:
			errs.Add("priority", message("priority", ruleMax, 100))
		}
	}

	// discount_percentage: required|numeric|min:0|max:100
	if create || p.DiscountPercentage.Present {
		switch {
		case !p.DiscountPercentage.Present, p.DiscountPercentage.Null:
			errs.Add("discount_percentage", message("discount_percentage", ruleRequired))
		case p.DiscountPercentage.Invalid:
			errs.Add("discount_percentage", message("discount_percentage", ruleNumeric))
		case p.DiscountPercentage.Value.IsNegative():
			errs.Add("discount_percentage", message("discount_percentage", ruleMin, 0))
		case p.DiscountPercentage.Value.GreaterThan(oneHundred):
			errs.Add("discount_percentage", message("discount_percentage", ruleMax, 100))
		}
	}

	// estado: required|boolean
	if create || p.Estado.Present {
		switch {
		case !p.Estado.Present, p.Estado.Null:
			errs.Add("estado", message("estado", ruleRequired))
		case p.Estado.Invalid:
			errs.Add("estado", message("estado", ruleBoolean))
		}
	}

	// created_date: sometimes|date
	if p.CreatedDate.Present && !p.CreatedDate.Null && p.CreatedDate.Invalid {
		errs.Add("created_date", message("created_date", ruleDate))
	}

	return errs, nil
}
