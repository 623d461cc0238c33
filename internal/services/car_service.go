package services

import (
	"context"

	"carmart/internal/common"
	"carmart/internal/models"
	"carmart/internal/repositories"
	"carmart/internal/validation"
)

type CarService interface {
	Create(ctx context.Context, payload *validation.CarPayload) (*models.Car, error)
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	Update(ctx context.Context, id int64, payload *validation.CarPayload) (*models.Car, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.CarFilter) ([]*models.Car, int64, error)
}

type carService struct {
	carRepo   repositories.CarRepository
	validator *validation.CarValidator
}

func NewCarService(carRepo repositories.CarRepository, validator *validation.CarValidator) CarService {
	return &carService{carRepo: carRepo, validator: validator}
}

func (s *carService) Create(ctx context.Context, payload *validation.CarPayload) (*models.Car, error) {
	errs, err := s.validator.ValidateCreate(ctx, payload)
	if err != nil {
		return nil, err
	}
	if errs.HasErrors() {
		return nil, common.NewValidationError(errs)
	}

	car := &models.Car{
		Make:  payload.Make.Value,
		Model: payload.Model.Value,
		Year:  int(payload.Year.Value),
		Price: payload.Price.Value,
		// New cars are available unless the payload says otherwise.
		Status: true,
	}
	if payload.Status.Present && !payload.Status.Null {
		car.Status = payload.Status.Value
	}
	if payload.Color.Present && !payload.Color.Null {
		car.Color = &payload.Color.Value
	}
	if payload.CategoryID.Present && !payload.CategoryID.Null {
		id := payload.CategoryID.Value
		car.CategoryID = &id
	}
	if payload.CodigoBarras.Present && !payload.CodigoBarras.Null {
		car.CodigoBarras = &payload.CodigoBarras.Value
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, err
	}
	return s.carRepo.GetByID(ctx, car.ID)
}

func (s *carService) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

// Update merges only the fields present in the payload; sending null for a
// nullable field clears it, leaving it out keeps the stored value.
func (s *carService) Update(ctx context.Context, id int64, payload *validation.CarPayload) (*models.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
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

	if payload.Make.Present {
		car.Make = payload.Make.Value
	}
	if payload.Model.Present {
		car.Model = payload.Model.Value
	}
	if payload.Year.Present {
		car.Year = int(payload.Year.Value)
	}
	if payload.Price.Present {
		car.Price = payload.Price.Value
	}
	if payload.Color.Present {
		if payload.Color.Null {
			car.Color = nil
		} else {
			car.Color = &payload.Color.Value
		}
	}
	if payload.Status.Present && !payload.Status.Null {
		car.Status = payload.Status.Value
	}
	if payload.CategoryID.Present {
		if payload.CategoryID.Null {
			car.CategoryID = nil
		} else {
			catID := payload.CategoryID.Value
			car.CategoryID = &catID
		}
	}
	if payload.CodigoBarras.Present {
		if payload.CodigoBarras.Null {
			car.CodigoBarras = nil
		} else {
			car.CodigoBarras = &payload.CodigoBarras.Value
		}
	}

	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, err
	}
	return s.carRepo.GetByID(ctx, id)
}

func (s *carService) Delete(ctx context.Context, id int64) error {
	if _, err := s.carRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.carRepo.Delete(ctx, id)
}

func (s *carService) List(ctx context.Context, filter models.CarFilter) ([]*models.Car, int64, error) {
	return s.carRepo.List(ctx, filter)
}
