package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"plant_backend/internal/feature/plant/domain/entity"
	"plant_backend/internal/shared/codegen"
)

const (
	// codeLength is the length of the plant code printed on the pot.
	codeLength = 5

	// maxCodeAttempts bounds the collision-retry loop during creation.
	maxCodeAttempts = 10
)

// PlantRepository abstracts the persistence layer for plant entities.
// Following Go convention, the interface is defined by the consumer
// (usecase), not the provider (adapters).
type PlantRepository interface {
	// Create persists a new plant.
	// It returns ErrCodeAlreadyTaken if the code is already in use.
	Create(ctx context.Context, plant *entity.Plant) error

	// FindByID retrieves a plant matching the specified ID.
	// It returns ErrPlantNotFound if the plant does not exist.
	FindByID(ctx context.Context, id uint) (*entity.Plant, error)

	// FindByCode retrieves a plant matching the specified code.
	// It returns ErrPlantNotFound if the plant does not exist.
	FindByCode(ctx context.Context, code string) (*entity.Plant, error)

	// Save writes all fields of an existing plant back to storage.
	Save(ctx context.Context, plant *entity.Plant) error
}

// UpdateParams carries the full replacement state for a plant update.
// Nil pointers clear the stored value; numeric zero values overwrite.
type UpdateParams struct {
	Name          *string
	Points        int
	Level         int
	Money         int
	LastWateredAt *int64 // unix seconds
}

// plantUsecase implements the plant business logic.
type plantUsecase struct {
	plants PlantRepository
}

// NewPlantUsecase creates a new plantUsecase instance.
func NewPlantUsecase(plants PlantRepository) *plantUsecase {
	return &plantUsecase{plants: plants}
}

// Create persists a new plant with a freshly generated unique code.
// The code is checked against the store before commit; the unique index on
// the code column backs the check, so a lost race surfaces as
// ErrCodeAlreadyTaken and the loop retries with a new code.
func (u *plantUsecase) Create(ctx context.Context) (*entity.Plant, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := codegen.UpperAlnum(codeLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate plant code: %w", err)
		}

		if _, err := u.plants.FindByCode(ctx, code); err == nil {
			// Collision, try another code.
			continue
		} else if !errors.Is(err, ErrPlantNotFound) {
			return nil, err
		}

		plant := &entity.Plant{Code: code}
		if err := u.plants.Create(ctx, plant); err != nil {
			if errors.Is(err, ErrCodeAlreadyTaken) {
				continue
			}
			return nil, err
		}
		return plant, nil
	}
	return nil, ErrCodeExhausted
}

// Get retrieves a plant by its ID.
func (u *plantUsecase) Get(ctx context.Context, id uint) (*entity.Plant, error) {
	return u.plants.FindByID(ctx, id)
}

// Update replaces the mutable state of a plant with the supplied values.
// This is deliberate replace semantics: the game client always sends the
// full state, and fields it leaves out are reset.
func (u *plantUsecase) Update(ctx context.Context, id uint, params UpdateParams) (*entity.Plant, error) {
	plant, err := u.plants.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	plant.Name = params.Name
	plant.Points = params.Points
	plant.Level = params.Level
	plant.Money = params.Money
	if params.LastWateredAt != nil {
		t := time.Unix(*params.LastWateredAt, 0).UTC()
		plant.LastWateredAt = &t
	} else {
		plant.LastWateredAt = nil
	}

	if err := u.plants.Save(ctx, plant); err != nil {
		return nil, err
	}
	return plant, nil
}
