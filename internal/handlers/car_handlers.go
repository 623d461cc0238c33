package handlers

import (
	"net/http"
	"strconv"

	"carmart/internal/common"
	"carmart/internal/models"
	"carmart/internal/services"
	"carmart/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CarHandlers handles car-related HTTP requests
type CarHandlers struct {
	carService services.CarService
}

// NewCarHandlers creates a new car handlers instance
func NewCarHandlers(carService services.CarService) *CarHandlers {
	return &CarHandlers{carService: carService}
}

// ListCarsRequest represents query parameters for listing cars
type ListCarsRequest struct {
	Search         string `query:"search"`
	CategoryID     string `query:"category_id"`
	YearFrom       string `query:"year_from"`
	YearTo         string `query:"year_to"`
	PriceMin       string `query:"price_min"`
	PriceMax       string `query:"price_max"`
	OnlyAvailable  bool   `query:"available"`
	WithBarcode    bool   `query:"with_barcode"`
	ActiveCategory bool   `query:"active_category"`
	Page           int    `query:"page"`
	PerPage        int    `query:"per_page"`
}

// filter converts the raw query parameters into a CarFilter; unparseable
// numeric parameters are ignored rather than rejected.
func (req *ListCarsRequest) filter() models.CarFilter {
	filter := models.CarFilter{
		Search:         req.Search,
		OnlyAvailable:  req.OnlyAvailable,
		WithBarcode:    req.WithBarcode,
		ActiveCategory: req.ActiveCategory,
	}
	if v, err := strconv.ParseInt(req.CategoryID, 10, 64); err == nil {
		filter.CategoryID = &v
	}
	if v, err := strconv.Atoi(req.YearFrom); err == nil {
		filter.YearFrom = &v
	}
	if v, err := strconv.Atoi(req.YearTo); err == nil {
		filter.YearTo = &v
	}
	if v, err := decimal.NewFromString(req.PriceMin); err == nil {
		filter.PriceMin = &v
	}
	if v, err := decimal.NewFromString(req.PriceMax); err == nil {
		filter.PriceMax = &v
	}
	return filter
}

// ListCars returns a paginated car listing with the combinable filters
// applied in the store.
func (h *CarHandlers) ListCars(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListCarsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Parámetros de consulta inválidos")
	}

	filter := req.filter()
	filter.Page, filter.PerPage = common.NormalizePage(req.Page, req.PerPage, defaultPerPage)

	cars, total, err := h.carService.List(ctx, filter)
	if err != nil {
		return respondError(c, err)
	}
	if cars == nil {
		cars = []*models.Car{}
	}

	return c.JSON(http.StatusOK, common.Paginated{
		Data: cars,
		Meta: common.NewPageMeta(filter.Page, filter.PerPage, total),
	})
}

// CreateCar handles creating a new car
func (h *CarHandlers) CreateCar(c echo.Context) error {
	ctx := c.Request().Context()

	var payload validation.CarPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Formato de petición inválido")
	}

	car, err := h.carService.Create(ctx, &payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, car)
}

// GetCar handles getting car details by ID, category embedded
func (h *CarHandlers) GetCar(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	car, err := h.carService.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, car)
}

// UpdateCar handles partial updates of car details
func (h *CarHandlers) UpdateCar(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var payload validation.CarPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Formato de petición inválido")
	}

	car, err := h.carService.Update(ctx, id, &payload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, car)
}

// DeleteCar handles deleting a car
func (h *CarHandlers) DeleteCar(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.carService.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
