package validation

import (
	"context"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// barcodePattern restricts barcodes to alphanumerics, hyphens and
// underscores. Pattern failures are reported regardless of length or
// uniqueness.
var barcodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var oneHundred = decimal.NewFromInt(100)

const minCarYear = 1900

// CarStore is the read-only car lookup surface the rules need.
type CarStore interface {
	// BarcodeTaken reports whether another car already holds this barcode.
	// excludeID ignores the row being updated; pass 0 for creates.
	BarcodeTaken(ctx context.Context, code string, excludeID int64) (bool, error)
}

// CarPayload is the decoded request body for car writes.
type CarPayload struct {
	Make         OptionalString  `json:"make"`
	Model        OptionalString  `json:"model"`
	Year         OptionalInt     `json:"year"`
	Price        OptionalDecimal `json:"price"`
	Color        OptionalString  `json:"color"`
	Status       OptionalBool    `json:"status"`
	CategoryID   OptionalInt     `json:"category_id"`
	CodigoBarras OptionalString  `json:"codigo_barras"`
}

// CarValidator evaluates car payloads against the rule set. The year upper
// bound comes from the injected clock so tests can pin the current year.
type CarValidator struct {
	categories CategoryStore
	cars       CarStore
	now        func() time.Time
}

func NewCarValidator(categories CategoryStore, cars CarStore, now func() time.Time) *CarValidator {
	if now == nil {
		now = time.Now
	}
	return &CarValidator{categories: categories, cars: cars, now: now}
}

// ValidateCreate checks a full create payload.
func (v *CarValidator) ValidateCreate(ctx context.Context, p *CarPayload) (Errors, error) {
	return v.validate(ctx, p, 0, true)
}

// ValidateUpdate checks a partial update payload. The barcode uniqueness
// check excludes the row being updated.
func (v *CarValidator) ValidateUpdate(ctx context.Context, id int64, p *CarPayload) (Errors, error) {
	return v.validate(ctx, p, id, false)
}

func (v *CarValidator) validate(ctx context.Context, p *CarPayload, excludeID int64, create bool) (Errors, error) {
	errs := NewErrors()
	currentYear := v.now().Year()

	// make: required|string|max:100
	if create || p.Make.Present {
		switch {
		case !p.Make.Present, p.Make.Null, !p.Make.Invalid && p.Make.Value == "":
			errs.Add("make", message("make", ruleRequired))
		case p.Make.Invalid:
			errs.Add("make", message("make", ruleString))
		case len([]rune(p.Make.Value)) > 100:
			errs.Add("make", maxChars("make", 100))
		}
	}

	// model: required|string|max:100
	if create || p.Model.Present {
		switch {
		case !p.Model.Present, p.Model.Null, !p.Model.Invalid && p.Model.Value == "":
			errs.Add("model", message("model", ruleRequired))
		case p.Model.Invalid:
			errs.Add("model", message("model", ruleString))
		case len([]rune(p.Model.Value)) > 100:
			errs.Add("model", maxChars("model", 100))
		}
	}

	// year: required|integer|min:1900|max:<current year>
	if create || p.Year.Present {
		switch {
		case !p.Year.Present, p.Year.Null:
			errs.Add("year", message("year", ruleRequired))
		case p.Year.Invalid:
			errs.Add("year", message("year", ruleInteger))
		case p.Year.Value < minCarYear:
			errs.Add("year", message("year", ruleMin, minCarYear))
		case p.Year.Value > int64(currentYear):
			errs.Add("year", message("year", ruleMax, currentYear))
		}
	}

	// price: required|numeric|min:0
	if create || p.Price.Present {
		switch {
		case !p.Price.Present, p.Price.Null:
			errs.Add("price", message("price", ruleRequired))
		case p.Price.Invalid:
			errs.Add("price", message("price", ruleNumeric))
		case p.Price.Value.IsNegative():
			errs.Add("price", message("price", ruleMin, 0))
		}
	}

	// color: sometimes|nullable|string|max:50
	if p.Color.Present && !p.Color.Null {
		switch {
		case p.Color.Invalid:
			errs.Add("color", message("color", ruleString))
		case len([]rune(p.Color.Value)) > 50:
			errs.Add("color", maxChars("color", 50))
		}
	}

	// status: sometimes|boolean
	if p.Status.Present && (p.Status.Null || p.Status.Invalid) {
		errs.Add("status", message("status", ruleBoolean))
	}

	// category_id: sometimes|nullable|integer + combined exists-and-active
	// predicate. The integer-type failure is reported before any lookup is
	// attempted.
	if p.CategoryID.Present && !p.CategoryID.Null {
		if p.CategoryID.Invalid {
			errs.Add("category_id", message("category_id", ruleInteger))
		} else {
			ok, err := v.categories.ActiveExists(ctx, p.CategoryID.Value)
			if err != nil {
				return nil, err
			}
			if !ok {
				errs.Add("category_id", message("category_id", ruleExists))
			}
		}
	}

	// codigo_barras: sometimes|nullable|string|max:255|regex|unique
	// (self-excluding on update)
	if p.CodigoBarras.Present && !p.CodigoBarras.Null {
		switch {
		case p.CodigoBarras.Invalid:
			errs.Add("codigo_barras", message("codigo_barras", ruleString))
		case len(p.CodigoBarras.Value) > 255:
			errs.Add("codigo_barras", maxChars("codigo_barras", 255))
		case !barcodePattern.MatchString(p.CodigoBarras.Value):
			errs.Add("codigo_barras", message("codigo_barras", ruleRegex))
		default:
			taken, err := v.cars.BarcodeTaken(ctx, p.CodigoBarras.Value, excludeID)
			if err != nil {
				return nil, err
			}
			if taken {
				errs.Add("codigo_barras", message("codigo_barras", ruleUnique))
			}
		}
	}

	return errs, nil
}
