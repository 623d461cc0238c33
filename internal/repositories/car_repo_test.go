package repositories

import (
	"context"
	"testing"
	"time"

	"carmart/internal/common"
	"carmart/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var carColumns = []string{
	"id", "make", "model", "year", "price", "color", "status", "category_id", "codigo_barras", "created_at", "updated_at",
	"cat_id", "cat_name", "cat_description", "cat_priority", "cat_discount", "cat_estado", "cat_created_date", "cat_created_at", "cat_updated_at",
}

func carRowWithCategory(id int64) *pgxmock.Rows {
	now := time.Now()
	catID := int64(1)
	catName := "Sedanes"
	catPriority := 5
	catEstado := true
	return pgxmock.NewRows(carColumns).AddRow(
		id, "Toyota", "Corolla", 2020, decimal.RequireFromString("18500.50"),
		nil, true, &catID, nil, now, now,
		&catID, &catName, nil, &catPriority, decimal.NullDecimal{Decimal: decimal.RequireFromString("10.50"), Valid: true},
		&catEstado, &now, &now, &now,
	)
}

func carRowWithoutCategory(id int64) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(carColumns).AddRow(
		id, "Ford", "Fiesta", 2015, decimal.RequireFromString("7000"),
		nil, true, nil, nil, now, now,
		nil, nil, nil, nil, decimal.NullDecimal{},
		nil, nil, nil, nil,
	)
}

func TestCarRepoGetByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCarRepo(mock)

	mock.ExpectQuery(`LEFT JOIN categories cat ON cat\.id = c\.category_id\s+WHERE c\.id = \$1`).
		WithArgs(int64(9)).
		WillReturnRows(carRowWithCategory(9))

	car, err := repo.GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "Toyota", car.Make)
	require.NotNil(t, car.Category)
	assert.Equal(t, "Sedanes", car.Category.Name)
}

func TestCarRepoGetByIDWithoutCategory(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCarRepo(mock)

	mock.ExpectQuery(`LEFT JOIN categories cat ON cat\.id = c\.category_id\s+WHERE c\.id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(carRowWithoutCategory(2))

	car, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, car.Category)
	assert.Nil(t, car.CategoryID)
}

func TestCarRepoGetByIDNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCarRepo(mock)

	mock.ExpectQuery(`WHERE c\.id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCarRepoCreateDuplicateBarcode(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCarRepo(mock)

	barcode := "ABC-123"
	mock.ExpectQuery(`INSERT INTO cars`).
		WithArgs("Toyota", "Corolla", 2020, decimal.RequireFromString("100"), pgxmock.AnyArg(), true, pgxmock.AnyArg(), &barcode).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "cars_codigo_barras_unique"})

	err := repo.Create(context.Background(), &models.Car{
		Make: "Toyota", Model: "Corolla", Year: 2020,
		Price: decimal.RequireFromString("100"), Status: true, CodigoBarras: &barcode,
	})

	var cErr *common.ConflictError
	assert.ErrorAs(t, err, &cErr)
}

func TestCarRepoDeleteMissingRow(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCarRepo(mock)

	mock.ExpectExec(`DELETE FROM cars WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 404), common.ErrNotFound)
}

func TestCarRepoBarcodeTaken(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCarRepo(mock)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM cars WHERE codigo_barras = \$1 AND id <> \$2\)`).
		WithArgs("ABC-123", int64(0)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.BarcodeTaken(context.Background(), "ABC-123", 0)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestCarRepoListUnfiltered(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCarRepo(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cars c`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(`ORDER BY c\.id DESC\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(carRowWithCategory(9))

	cars, total, err := repo.List(context.Background(), models.CarFilter{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, cars, 1)
	assert.Equal(t, "Toyota", cars[0].Make)
}

func TestCarRepoListCombinedFilters(t *testing.T) {
	mock := newMockPool(t)
	repo := NewCarRepo(mock)

	catID := int64(1)
	yearFrom := 2018
	priceMax := decimal.RequireFromString("20000")

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cars c WHERE \(c\.make ILIKE \$1 OR c\.model ILIKE \$1\) AND c\.category_id = \$2 AND c\.year >= \$3 AND c\.price <= \$4 AND c\.status = true`).
		WithArgs("%cor%", catID, yearFrom, priceMax).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(`LIMIT \$5 OFFSET \$6`).
		WithArgs("%cor%", catID, yearFrom, priceMax, 10, 0).
		WillReturnRows(carRowWithCategory(9))

	cars, total, err := repo.List(context.Background(), models.CarFilter{
		Search:        "cor",
		CategoryID:    &catID,
		YearFrom:      &yearFrom,
		PriceMax:      &priceMax,
		OnlyAvailable: true,
		Page:          1,
		PerPage:       10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, cars, 1)
}
