package services

import (
	"context"

	"carmart/internal/common"
	"carmart/internal/models"
	"carmart/internal/repositories"
	"carmart/internal/validation"
)

type CategoryService interface {
	Create(ctx context.Context, payload *validation.CategoryPayload) (*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Update(ctx context.Context, id int64, payload *validation.CategoryPayload) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.CategoryFilter) ([]*models.Category, int64, error)
	ListActive(ctx context.Context, onlyAvailableCars bool) ([]*models.Category, error)
	ListActivePaginated(ctx context.Context, page, perPage int) ([]*models.Category, int64, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	validator    *validation.CategoryValidator
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, validator *validation.CategoryValidator) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, validator: validator}
}

func (s *categoryService) Create(ctx context.Context, payload *validation.CategoryPayload) (*models.Category, error) {
	errs, err := s.validator.ValidateCreate(ctx, payload)
	if err != nil {
		return nil, err
	}
	if errs.HasErrors() {
		return nil, common.NewValidationError(errs)
	}

	category := &models.Category{
		Name:               payload.Name.Value,
		Priority:           int(payload.Priority.Value),
		DiscountPercentage: payload.DiscountPercentage.Value,
		Estado:             payload.Estado.Value,
	}
	if payload.Description.Present && !payload.Description.Null {
		category.Description = &payload.Description.Value
	}
	if payload.CreatedDate.Present && !payload.CreatedDate.Null {
		category.CreatedDate = payload.CreatedDate.Value
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// Update merges only the fields present in the payload into the stored
// record; absent fields keep their prior values.
func (s *categoryService) Update(ctx context.Context, id int64, payload *validation.CategoryPayload) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs, err := s.validator.ValidateUpdate(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	if errs.HasErrors() {
		return nil, common.NewValidationError(errs)
	}

	if payload.Name.Present {
		category.Name = payload.Name.Value
	}
	if payload.Description.Present {
		if payload.Description.Null {
			category.Description = nil
		} else {
			category.Description = &payload.Description.Value
		}
	}
	if payload.Priority.Present {
		category.Priority = int(payload.Priority.Value)
	}
	if payload.DiscountPercentage.Present {
		category.DiscountPercentage = payload.DiscountPercentage.Value
	}
	if payload.Estado.Present {
		category.Estado = payload.Estado.Value
	}
	if payload.CreatedDate.Present && !payload.CreatedDate.Null {
		category.CreatedDate = payload.CreatedDate.Value
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete refuses to remove a category that still has cars. The count check
// and the delete are two statements; a dependent inserted between them is
// an accepted race, the store-level FK still keeps references consistent.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		return err
	}
	count, err := s.categoryRepo.CountCars(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &common.ConflictError{
			Message: "No se puede eliminar la categoría porque tiene vehículos asociados.",
		}
	}
	return s.categoryRepo.Delete(ctx, id)
}

func (s *categoryService) List(ctx context.Context, filter models.CategoryFilter) ([]*models.Category, int64, error) {
	return s.categoryRepo.List(ctx, filter)
}

func (s *categoryService) ListActive(ctx context.Context, onlyAvailableCars bool) ([]*models.Category, error) {
	return s.categoryRepo.ListActive(ctx, onlyAvailableCars)
}

func (s *categoryService) ListActivePaginated(ctx context.Context, page, perPage int) ([]*models.Category, int64, error) {
	return s.categoryRepo.ListActivePaginated(ctx, page, perPage)
}
