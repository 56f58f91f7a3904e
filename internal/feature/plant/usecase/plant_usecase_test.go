package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"plant_backend/internal/feature/plant/domain/entity"
)

// mockPlantRepository is a mock implementation of the PlantRepository
// interface. It simulates database operations during testing.
type mockPlantRepository struct {
	CreateFunc     func(ctx context.Context, plant *entity.Plant) error
	FindByIDFunc   func(ctx context.Context, id uint) (*entity.Plant, error)
	FindByCodeFunc func(ctx context.Context, code string) (*entity.Plant, error)
	SaveFunc       func(ctx context.Context, plant *entity.Plant) error
}

func (m *mockPlantRepository) Create(ctx context.Context, plant *entity.Plant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, plant)
	}
	plant.ID = 1
	return nil
}

func (m *mockPlantRepository) FindByID(ctx context.Context, id uint) (*entity.Plant, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrPlantNotFound
}

func (m *mockPlantRepository) FindByCode(ctx context.Context, code string) (*entity.Plant, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, ErrPlantNotFound
}

func (m *mockPlantRepository) Save(ctx context.Context, plant *entity.Plant) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, plant)
	}
	return nil
}

func TestPlantUsecase_Create(t *testing.T) {
	t.Run("successful creation with generated code", func(t *testing.T) {
		var created *entity.Plant
		mockRepo := &mockPlantRepository{
			CreateFunc: func(ctx context.Context, plant *entity.Plant) error {
				created = plant
				plant.ID = 7
				return nil
			},
		}

		uc := NewPlantUsecase(mockRepo)
		plant, err := uc.Create(context.Background())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plant.ID != 7 {
			t.Errorf("expected ID 7, got %d", plant.ID)
		}
		if created == nil || len(created.Code) != 5 {
			t.Fatalf("expected 5-character code, got %+v", created)
		}
		for _, r := range created.Code {
			if !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
				t.Errorf("unexpected character %q in code %q", r, created.Code)
			}
		}
	})

	t.Run("retries when store check finds a collision", func(t *testing.T) {
		findCalls := 0
		seen := map[string]bool{}
		mockRepo := &mockPlantRepository{
			FindByCodeFunc: func(ctx context.Context, code string) (*entity.Plant, error) {
				findCalls++
				seen[code] = true
				if findCalls == 1 {
					// First candidate already exists
					return &entity.Plant{ID: 1, Code: code}, nil
				}
				return nil, ErrPlantNotFound
			},
		}

		uc := NewPlantUsecase(mockRepo)
		plant, err := uc.Create(context.Background())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if findCalls != 2 {
			t.Errorf("expected 2 store checks, got %d", findCalls)
		}
		if !seen[plant.Code] {
			t.Error("returned code was never collision-checked")
		}
	})

	t.Run("retries when the insert loses a race", func(t *testing.T) {
		createCalls := 0
		mockRepo := &mockPlantRepository{
			CreateFunc: func(ctx context.Context, plant *entity.Plant) error {
				createCalls++
				if createCalls == 1 {
					// Another request committed the same code between the
					// check and the insert.
					return ErrCodeAlreadyTaken
				}
				plant.ID = 2
				return nil
			},
		}

		uc := NewPlantUsecase(mockRepo)
		plant, err := uc.Create(context.Background())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if createCalls != 2 {
			t.Errorf("expected 2 insert attempts, got %d", createCalls)
		}
		if plant.ID != 2 {
			t.Errorf("expected ID 2, got %d", plant.ID)
		}
	})

	t.Run("gives up after exhausting attempts", func(t *testing.T) {
		mockRepo := &mockPlantRepository{
			FindByCodeFunc: func(ctx context.Context, code string) (*entity.Plant, error) {
				return &entity.Plant{ID: 1, Code: code}, nil
			},
		}

		uc := NewPlantUsecase(mockRepo)
		_, err := uc.Create(context.Background())

		if !errors.Is(err, ErrCodeExhausted) {
			t.Errorf("expected ErrCodeExhausted, got %v", err)
		}
	})

	t.Run("store error during check is surfaced", func(t *testing.T) {
		storeErr := errors.New("connection reset")
		mockRepo := &mockPlantRepository{
			FindByCodeFunc: func(ctx context.Context, code string) (*entity.Plant, error) {
				return nil, storeErr
			},
		}

		uc := NewPlantUsecase(mockRepo)
		_, err := uc.Create(context.Background())

		if !errors.Is(err, storeErr) {
			t.Errorf("expected store error, got %v", err)
		}
	})
}

func TestPlantUsecase_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := &mockPlantRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Plant, error) {
				return &entity.Plant{ID: id, Code: "AB12C"}, nil
			},
		}

		uc := NewPlantUsecase(mockRepo)
		plant, err := uc.Get(context.Background(), 3)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plant.ID != 3 {
			t.Errorf("expected ID 3, got %d", plant.ID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc := NewPlantUsecase(&mockPlantRepository{})
		_, err := uc.Get(context.Background(), 999)

		if !errors.Is(err, ErrPlantNotFound) {
			t.Errorf("expected ErrPlantNotFound, got %v", err)
		}
	})
}

func TestPlantUsecase_Update(t *testing.T) {
	name := "Fernando"
	watered := int64(1700000000)

	existing := func() *entity.Plant {
		oldName := "Old"
		oldTime := time.Unix(1600000000, 0).UTC()
		return &entity.Plant{
			ID:            5,
			Code:          "XY9Z8",
			Name:          &oldName,
			Points:        50,
			Level:         3,
			Money:         120,
			LastWateredAt: &oldTime,
		}
	}

	t.Run("replaces all mutable fields", func(t *testing.T) {
		var saved *entity.Plant
		mockRepo := &mockPlantRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Plant, error) {
				return existing(), nil
			},
			SaveFunc: func(ctx context.Context, plant *entity.Plant) error {
				saved = plant
				return nil
			},
		}

		uc := NewPlantUsecase(mockRepo)
		plant, err := uc.Update(context.Background(), 5, UpdateParams{
			Name:          &name,
			Points:        10,
			Level:         1,
			Money:         99,
			LastWateredAt: &watered,
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved == nil {
			t.Fatal("expected plant to be saved")
		}
		if plant.Name == nil || *plant.Name != "Fernando" {
			t.Errorf("expected name 'Fernando', got %v", plant.Name)
		}
		if plant.Points != 10 || plant.Level != 1 || plant.Money != 99 {
			t.Errorf("unexpected game state: %+v", plant)
		}
		if plant.LastWateredAt == nil || plant.LastWateredAt.Unix() != watered {
			t.Errorf("expected last_watered_at %d, got %v", watered, plant.LastWateredAt)
		}
		// Code and identity are not touched by update
		if plant.Code != "XY9Z8" || plant.ID != 5 {
			t.Errorf("update must not change id/code: %+v", plant)
		}
	})

	t.Run("absent fields reset the stored values", func(t *testing.T) {
		mockRepo := &mockPlantRepository{
			FindByIDFunc: func(ctx context.Context, id uint) (*entity.Plant, error) {
				return existing(), nil
			},
		}

		uc := NewPlantUsecase(mockRepo)
		plant, err := uc.Update(context.Background(), 5, UpdateParams{})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plant.Name != nil {
			t.Errorf("expected name cleared, got %v", *plant.Name)
		}
		if plant.Points != 0 || plant.Level != 0 || plant.Money != 0 {
			t.Errorf("expected game state reset, got %+v", plant)
		}
		if plant.LastWateredAt != nil {
			t.Errorf("expected last_watered_at cleared, got %v", plant.LastWateredAt)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc := NewPlantUsecase(&mockPlantRepository{})
		_, err := uc.Update(context.Background(), 999, UpdateParams{})

		if !errors.Is(err, ErrPlantNotFound) {
			t.Errorf("expected ErrPlantNotFound, got %v", err)
		}
	})
}
