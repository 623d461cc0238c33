package handlers

import (
	"net/http"

	"carmart/internal/common"
	"carmart/internal/models"
	"carmart/internal/services"
	"carmart/internal/validation"

	"github.com/labstack/echo/v4"
)

const (
	defaultPerPage       = 10
	activePerPageDefault = 5
)

// CategoryHandlers handles category-related HTTP requests
type CategoryHandlers struct {
	categoryService services.CategoryService
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(categoryService services.CategoryService) *CategoryHandlers {
	return &CategoryHandlers{categoryService: categoryService}
}

// ListCategoriesRequest represents query parameters for listing categories
type ListCategoriesRequest struct {
	Search   string `query:"search"`
	WithCars bool   `query:"with_cars"`
	Page     int    `query:"page"`
	PerPage  int    `query:"per_page"`
}

// ListCategories returns a paginated category listing, optionally filtered
// by name.
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Parámetros de consulta inválidos")
	}
	page, perPage := common.NormalizePage(req.Page, req.PerPage, defaultPerPage)

	categories, total, err := h.categoryService.List(ctx, models.CategoryFilter{
		Search:   req.Search,
		WithCars: req.WithCars,
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		return respondError(c, err)
	}
	if categories == nil {
		categories = []*models.Category{}
	}

	return c.JSON(http.StatusOK, common.Paginated{
		Data: categories,
		Meta: common.NewPageMeta(page, perPage, total),
	})
}

// CreateCategory handles creating a new category
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	var payload validation.CategoryPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Formato de petición inválido")
	}

	category, err := h.categoryService.Create(ctx, &payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

// GetCategory handles getting category details by ID
func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	category, err := h.categoryService.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// UpdateCategory handles partial updates of category details
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var payload validation.CategoryPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Formato de petición inválido")
	}

	category, err := h.categoryService.Update(ctx, id, &payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles deleting a category. Categories that still have
// cars are refused with a conflict.
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.categoryService.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListActiveCategories returns every active category with its cars embedded,
// ordered by priority then name.
func (h *CategoryHandlers) ListActiveCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.categoryService.ListActive(ctx, false)
	if err != nil {
		return respondError(c, err)
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": categories,
	})
}

// ListActiveCategoriesWithAvailableCars narrows the embedded cars to the
// available ones.
func (h *CategoryHandlers) ListActiveCategoriesWithAvailableCars(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.categoryService.ListActive(ctx, true)
	if err != nil {
		return respondError(c, err)
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": categories,
	})
}

// ListActiveCategoriesPaginated windows the active categories five per page
// unless per_page says otherwise.
func (h *CategoryHandlers) ListActiveCategoriesPaginated(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListCategoriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Parámetros de consulta inválidos")
	}
	page, perPage := common.NormalizePage(req.Page, req.PerPage, activePerPageDefault)

	categories, total, err := h.categoryService.ListActivePaginated(ctx, page, perPage)
	if err != nil {
		return respondError(c, err)
	}
	if categories == nil {
		categories = []*models.Category{}
	}

	return c.JSON(http.StatusOK, common.Paginated{
		Data: categories,
		Meta: common.NewPageMeta(page, perPage, total),
	})
}
