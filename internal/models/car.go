package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Car is a single inventory vehicle, optionally linked to one category.
type Car struct {
	ID           int64           `json:"id" db:"id"`
	Make         string          `json:"make" db:"make"`
	Model        string          `json:"model" db:"model"`
	Year         int             `json:"year" db:"year"`
	Price        decimal.Decimal `json:"price" db:"price"`
	Color        *string         `json:"color" db:"color"`
	Status       bool            `json:"status" db:"status"`
	CategoryID   *int64          `json:"category_id" db:"category_id"`
	CodigoBarras *string         `json:"codigo_barras" db:"codigo_barras"`
	Category     *Category       `json:"category,omitempty" db:"-"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// CarFilter holds search and filter criteria for car listing queries.
// Every condition is pushed down to SQL; nil/zero fields are skipped.
type CarFilter struct {
	Search         string           `json:"search,omitempty"`      // Substring match on make or model
	CategoryID     *int64           `json:"category_id,omitempty"` // Filter by category
	YearFrom       *int             `json:"year_from,omitempty"`
	YearTo         *int             `json:"year_to,omitempty"`
	PriceMin       *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax       *decimal.Decimal `json:"price_max,omitempty"`
	OnlyAvailable  bool             `json:"only_available,omitempty"`  // status = true
	WithBarcode    bool             `json:"with_barcode,omitempty"`    // codigo_barras not null
	ActiveCategory bool             `json:"active_category,omitempty"` // category exists and estado = true
	Page           int              `json:"page,omitempty"`            // 1-indexed page number
	PerPage        int              `json:"per_page,omitempty"`
}
