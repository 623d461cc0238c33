package repositories

import (
	"context"
	"fmt"
	"strings"

	"carmart/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.CategoryFilter) ([]*models.Category, int64, error)
	ListActive(ctx context.Context, onlyAvailableCars bool) ([]*models.Category, error)
	ListActivePaginated(ctx context.Context, page, perPage int) ([]*models.Category, int64, error)
	CountCars(ctx context.Context, id int64) (int64, error)
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
	ActiveExists(ctx context.Context, id int64) (bool, error)
}

type categoryRepo struct {
	db DB
}

func NewCategoryRepo(db DB) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `id, name, description, priority, discount_percentage, estado, created_date, created_at, updated_at`

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, description, priority, discount_percentage, estado, created_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, CURRENT_DATE), NOW(), NOW())
		RETURNING id, created_date, created_at, updated_at
	`
	var createdDate any
	if !category.CreatedDate.IsZero() {
		createdDate = category.CreatedDate
	}
	err := r.db.QueryRow(ctx, query,
		category.Name, category.Description, category.Priority,
		category.DiscountPercentage, category.Estado, createdDate,
	).Scan(&category.ID, &category.CreatedDate, &category.CreatedAt, &category.UpdatedAt)
	return translateErr(err)
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	category := &models.Category{}
	query := `
		SELECT c.id, c.name, c.description, c.priority, c.discount_percentage, c.estado, c.created_date, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM cars WHERE cars.category_id = c.id) AS cars_count
		FROM categories c
		WHERE c.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.Description, &category.Priority,
		&category.DiscountPercentage, &category.Estado, &category.CreatedDate,
		&category.CreatedAt, &category.UpdatedAt, &category.CarsCount,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return category, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, description = $2, priority = $3, discount_percentage = $4, estado = $5, created_date = $6, updated_at = NOW()
		WHERE id = $7
	`
	tag, err := r.db.Exec(ctx, query,
		category.Name, category.Description, category.Priority,
		category.DiscountPercentage, category.Estado, category.CreatedDate, category.ID,
	)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return translateErr(errNoRowsAffected)
	}
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return translateErr(errNoRowsAffected)
	}
	return nil
}

// List returns one ordered window of categories plus the filtered total.
// Ordering is priority then name; the optional name filter is applied in
// SQL before ordering and pagination.
func (r *categoryRepo) List(ctx context.Context, filter models.CategoryFilter) ([]*models.Category, int64, error) {
	conds := []string{}
	args := []any{}
	if filter.Search != "" {
		conds = append(conds, fmt.Sprintf(`c.name ILIKE $%d`, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.WithCars {
		conds = append(conds, `EXISTS (SELECT 1 FROM cars WHERE cars.category_id = c.id)`)
	}
	where := ""
	if len(conds) > 0 {
		where = ` WHERE ` + strings.Join(conds, ` AND `)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM categories c` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.description, c.priority, c.discount_percentage, c.estado, c.created_date, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM cars WHERE cars.category_id = c.id) AS cars_count
		FROM categories c%s
		ORDER BY c.priority ASC, c.name ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(
			&category.ID, &category.Name, &category.Description, &category.Priority,
			&category.DiscountPercentage, &category.Estado, &category.CreatedDate,
			&category.CreatedAt, &category.UpdatedAt, &category.CarsCount,
		); err != nil {
			return nil, 0, translateErr(err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translateErr(err)
	}
	return categories, total, nil
}

func (r *categoryRepo) ListActive(ctx context.Context, onlyAvailableCars bool) ([]*models.Category, error) {
	categories, err := r.queryActive(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE estado = true
		ORDER BY priority ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	if err := r.attachCars(ctx, categories, onlyAvailableCars); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepo) ListActivePaginated(ctx context.Context, page, perPage int) ([]*models.Category, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories WHERE estado = true`).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	categories, err := r.queryActive(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE estado = true
		ORDER BY priority ASC, name ASC
		LIMIT $1 OFFSET $2
	`, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	if err := r.attachCars(ctx, categories, false); err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *categoryRepo) queryActive(ctx context.Context, query string, args ...any) ([]*models.Category, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(
			&category.ID, &category.Name, &category.Description, &category.Priority,
			&category.DiscountPercentage, &category.Estado, &category.CreatedDate,
			&category.CreatedAt, &category.UpdatedAt,
		); err != nil {
			return nil, translateErr(err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err)
	}
	return categories, nil
}

// attachCars loads each category's cars ordered by make then model with a
// single query and groups them in memory.
func (r *categoryRepo) attachCars(ctx context.Context, categories []*models.Category, onlyAvailable bool) error {
	if len(categories) == 0 {
		return nil
	}
	ids := make([]int64, len(categories))
	byID := make(map[int64]*models.Category, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
		byID[c.ID] = c
		c.Cars = []*models.Car{}
	}

	query := `
		SELECT id, make, model, year, price, color, status, category_id, codigo_barras, created_at, updated_at
		FROM cars
		WHERE category_id = ANY($1)
	`
	if onlyAvailable {
		query += ` AND status = true`
	}
	query += ` ORDER BY make ASC, model ASC`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return translateErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		car := &models.Car{}
		if err := rows.Scan(
			&car.ID, &car.Make, &car.Model, &car.Year, &car.Price, &car.Color,
			&car.Status, &car.CategoryID, &car.CodigoBarras, &car.CreatedAt, &car.UpdatedAt,
		); err != nil {
			return translateErr(err)
		}
		if car.CategoryID != nil {
			if category, ok := byID[*car.CategoryID]; ok {
				category.Cars = append(category.Cars, car)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return translateErr(err)
	}
	for _, c := range categories {
		c.CarsCount = int64(len(c.Cars))
	}
	return nil
}

func (r *categoryRepo) CountCars(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cars WHERE category_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, translateErr(err)
	}
	return count, nil
}

func (r *categoryRepo) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var taken bool
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND id <> $2)`
	if err := r.db.QueryRow(ctx, query, name, excludeID).Scan(&taken); err != nil {
		return false, translateErr(err)
	}
	return taken, nil
}

func (r *categoryRepo) ActiveExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND estado = true)`
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, translateErr(err)
	}
	return exists, nil
}
