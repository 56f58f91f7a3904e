// Package handler はplantフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"plant_backend/internal/api"
	"plant_backend/internal/feature/plant/domain/entity"
	"plant_backend/internal/feature/plant/usecase"
)

// PlantUsecase はプラント操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PlantUsecase interface {
	// Create は一意なコードを持つ新しいプラントを作成します。
	Create(ctx context.Context) (*entity.Plant, error)
	// Get はIDでプラントを取得します。
	Get(ctx context.Context, id uint) (*entity.Plant, error)
	// Update はプラントの可変フィールドを与えられた値で置き換えます。
	Update(ctx context.Context, id uint, params usecase.UpdateParams) (*entity.Plant, error)
}

// PlantHandler はプラント操作のHTTPリクエストを処理します。
type PlantHandler struct {
	plants PlantUsecase
}

// NewPlantHandler はPlantHandlerの新しいインスタンスを生成します。
func NewPlantHandler(plants PlantUsecase) *PlantHandler {
	return &PlantHandler{plants: plants}
}

// plantID parses the :id path parameter. A non-numeric id cannot reference
// any plant, so it answers 404 like a missing record.
func plantID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Plant not found"})
		return 0, false
	}
	return uint(id), true
}

// Create はプラント作成APIエンドポイントを処理します。
// コードは衝突チェック付きで自動生成されます。
func (h *PlantHandler) Create(c *gin.Context) {
	plant, err := h.plants.Create(c.Request.Context())
	if err != nil {
		slog.Error("plant creation failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	slog.Info("plant created", "plant_id", plant.ID, "code", plant.Code)
	c.JSON(http.StatusCreated, api.NewPlantResponse(plant))
}

// Get はプラント取得APIエンドポイントを処理します。
func (h *PlantHandler) Get(c *gin.Context) {
	id, ok := plantID(c)
	if !ok {
		return
	}

	plant, err := h.plants.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPlantNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Plant not found"})
			return
		}
		slog.Error("plant lookup failed", "error", err, "plant_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, api.NewPlantResponse(plant))
}

// Update はプラント更新APIエンドポイントを処理します。
// replaceセマンティクス: リクエストに含まれないフィールドはゼロ値/NULLで上書きされます。
func (h *PlantHandler) Update(c *gin.Context) {
	id, ok := plantID(c)
	if !ok {
		return
	}

	var req api.UpdatePlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	plant, err := h.plants.Update(c.Request.Context(), id, usecase.UpdateParams{
		Name:          req.Name,
		Points:        req.Points,
		Level:         req.Level,
		Money:         req.Money,
		LastWateredAt: req.LastWateredAt,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrPlantNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Plant not found"})
			return
		}
		slog.Error("plant update failed", "error", err, "plant_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, api.NewPlantResponse(plant))
}
