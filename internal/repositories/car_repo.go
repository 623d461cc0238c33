package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carmart/internal/models"

	"github.com/shopspring/decimal"
)

type CarRepository interface {
	Create(ctx context.Context, car *models.Car) error
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	Update(ctx context.Context, car *models.Car) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.CarFilter) ([]*models.Car, int64, error)
	BarcodeTaken(ctx context.Context, code string, excludeID int64) (bool, error)
}

type carRepo struct {
	db DB
}

func NewCarRepo(db DB) CarRepository {
	return &carRepo{db: db}
}

func (r *carRepo) Create(ctx context.Context, car *models.Car) error {
	query := `
		INSERT INTO cars (make, model, year, price, color, status, category_id, codigo_barras, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		car.Make, car.Model, car.Year, car.Price, car.Color,
		car.Status, car.CategoryID, car.CodigoBarras,
	).Scan(&car.ID, &car.CreatedAt, &car.UpdatedAt)
	return translateErr(err)
}

func (r *carRepo) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	query := `
		SELECT c.id, c.make, c.model, c.year, c.price, c.color, c.status, c.category_id, c.codigo_barras, c.created_at, c.updated_at,
		       cat.id, cat.name, cat.description, cat.priority, cat.discount_percentage, cat.estado, cat.created_date, cat.created_at, cat.updated_at
		FROM cars c
		LEFT JOIN categories cat ON cat.id = c.category_id
		WHERE c.id = $1
	`
	car, err := scanCarWithCategory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}
	return car, nil
}

func (r *carRepo) Update(ctx context.Context, car *models.Car) error {
	query := `
		UPDATE cars
		SET make = $1, model = $2, year = $3, price = $4, color = $5, status = $6, category_id = $7, codigo_barras = $8, updated_at = NOW()
		WHERE id = $9
	`
	tag, err := r.db.Exec(ctx, query,
		car.Make, car.Model, car.Year, car.Price, car.Color,
		car.Status, car.CategoryID, car.CodigoBarras, car.ID,
	)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return translateErr(errNoRowsAffected)
	}
	return nil
}

func (r *carRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return translateErr(errNoRowsAffected)
	}
	return nil
}

// List builds the WHERE clause from the filter one condition at a time.
// Every predicate runs in SQL so the window and total always agree; the
// window is ordered by id descending with the joined category embedded.
func (r *carRepo) List(ctx context.Context, filter models.CarFilter) ([]*models.Car, int64, error) {
	conds := []string{}
	args := []any{}

	next := func() int { return len(args) + 1 }

	if filter.Search != "" {
		conds = append(conds, fmt.Sprintf(`(c.make ILIKE $%d OR c.model ILIKE $%d)`, next(), next()))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.CategoryID != nil {
		conds = append(conds, fmt.Sprintf(`c.category_id = $%d`, next()))
		args = append(args, *filter.CategoryID)
	}
	if filter.YearFrom != nil {
		conds = append(conds, fmt.Sprintf(`c.year >= $%d`, next()))
		args = append(args, *filter.YearFrom)
	}
	if filter.YearTo != nil {
		conds = append(conds, fmt.Sprintf(`c.year <= $%d`, next()))
		args = append(args, *filter.YearTo)
	}
	if filter.PriceMin != nil {
		conds = append(conds, fmt.Sprintf(`c.price >= $%d`, next()))
		args = append(args, *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		conds = append(conds, fmt.Sprintf(`c.price <= $%d`, next()))
		args = append(args, *filter.PriceMax)
	}
	if filter.OnlyAvailable {
		conds = append(conds, `c.status = true`)
	}
	if filter.WithBarcode {
		conds = append(conds, `c.codigo_barras IS NOT NULL`)
	}
	if filter.ActiveCategory {
		conds = append(conds, `EXISTS (SELECT 1 FROM categories a WHERE a.id = c.category_id AND a.estado = true)`)
	}

	where := ""
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, ` AND `)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM cars c` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	query := fmt.Sprintf(`
		SELECT c.id, c.make, c.model, c.year, c.price, c.color, c.status, c.category_id, c.codigo_barras, c.created_at, c.updated_at,
		       cat.id, cat.name, cat.description, cat.priority, cat.discount_percentage, cat.estado, cat.created_date, cat.created_at, cat.updated_at
		FROM cars c
		LEFT JOIN categories cat ON cat.id = c.category_id%s
		ORDER BY c.id DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	var cars []*models.Car
	for rows.Next() {
		car, err := scanCarWithCategory(rows)
		if err != nil {
			return nil, 0, translateErr(err)
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translateErr(err)
	}
	return cars, total, nil
}

func (r *carRepo) BarcodeTaken(ctx context.Context, code string, excludeID int64) (bool, error) {
	var taken bool
	query := `SELECT EXISTS(SELECT 1 FROM cars WHERE codigo_barras = $1 AND id <> $2)`
	if err := r.db.QueryRow(ctx, query, code, excludeID).Scan(&taken); err != nil {
		return false, translateErr(err)
	}
	return taken, nil
}

// rowScanner covers both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCarWithCategory reads one car row with the LEFT JOINed category
// columns, which are all null when the car has no category.
func scanCarWithCategory(row rowScanner) (*models.Car, error) {
	car := &models.Car{}
	var (
		catID          *int64
		catName        *string
		catDescription *string
		catPriority    *int
		catDiscount    decimal.NullDecimal
		catEstado      *bool
		catCreatedDate *time.Time
		catCreatedAt   *time.Time
		catUpdatedAt   *time.Time
	)
	err := row.Scan(
		&car.ID, &car.Make, &car.Model, &car.Year, &car.Price, &car.Color,
		&car.Status, &car.CategoryID, &car.CodigoBarras, &car.CreatedAt, &car.UpdatedAt,
		&catID, &catName, &catDescription, &catPriority, &catDiscount,
		&catEstado, &catCreatedDate, &catCreatedAt, &catUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if catID != nil {
		car.Category = &models.Category{
			ID:                 *catID,
			Name:               *catName,
			Description:        catDescription,
			Priority:           *catPriority,
			DiscountPercentage: catDiscount.Decimal,
			Estado:             *catEstado,
			CreatedDate:        *catCreatedDate,
			CreatedAt:          *catCreatedAt,
			UpdatedAt:          *catUpdatedAt,
		}
	}
	return car, nil
}
