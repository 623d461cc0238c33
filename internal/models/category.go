package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups cars and carries priority/discount metadata. Only active
// categories (estado = true) are valid targets for new car references.
type Category struct {
	ID                 int64           `json:"id" db:"id"`
	Name               string          `json:"name" db:"name"`
	Description        *string         `json:"description" db:"description"`
	Priority           int             `json:"priority" db:"priority"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" db:"discount_percentage"`
	Estado             bool            `json:"estado" db:"estado"`
	CreatedDate        time.Time       `json:"created_date" db:"created_date"`
	CarsCount          int64           `json:"cars_count" db:"-"`
	Cars               []*Car          `json:"cars,omitempty" db:"-"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// CategoryFilter holds listing criteria for category queries.
type CategoryFilter struct {
	Search   string `json:"search,omitempty"`    // Case-insensitive name substring
	WithCars bool   `json:"with_cars,omitempty"` // At least one car references it
	Page     int    `json:"page,omitempty"`      // 1-indexed page number
	PerPage  int    `json:"per_page,omitempty"`
}
