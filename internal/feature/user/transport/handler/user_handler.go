// Package handler はuserフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"plant_backend/internal/api"
	plantentity "plant_backend/internal/feature/plant/domain/entity"
	plantusecase "plant_backend/internal/feature/plant/usecase"
	"plant_backend/internal/feature/user/domain/entity"
	"plant_backend/internal/feature/user/usecase"
	"plant_backend/internal/platform/identity"
)

// UserUsecase はユーザー操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	// Register は新規ユーザーを登録し、作成されたユーザーを返します。
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	// Login はユーザーを認証し、成功時に署名済みトークンを返します。
	Login(ctx context.Context, email, password string) (string, error)
	// Verify は確認コードを照合し、一致すればユーザーを検証済みにします。
	Verify(ctx context.Context, userID uint, code string) (*entity.User, error)
	// AttachPlant はプラントコードで参照を解決し、ユーザーのリストに追加します。
	AttachPlant(ctx context.Context, userID uint, plantCode string) (*entity.User, error)
	// ListPlants はユーザーが参照する全プラントを登録順で返します。
	ListPlants(ctx context.Context, userID uint) ([]*plantentity.Plant, error)
}

// UserHandler はユーザー操作のHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// requireUser returns the identity resolved by the middleware, or answers
// the request with 404. The resolver is advisory, so "unauthenticated" and
// "no such user" are deliberately the same response.
func requireUser(c *gin.Context) (*entity.User, bool) {
	user, ok := identity.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
		return nil, false
	}
	return user, true
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時は201と公開プロジェクションを返却
func (h *UserHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "User already exists"})
			return
		}
		slog.Error("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	slog.Info("user registered", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.NewUserResponse(user))
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 未登録メールは404、パスワード不一致は401を返却
// - 成功時はアクセストークン付きで200を返却
func (h *UserHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
		case errors.Is(err, usecase.ErrInvalidCredentials):
			slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid credentials"})
		default:
			slog.Error("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{AccessToken: token})
}

// Me は解決済みアイデンティティの公開プロジェクションを返します。
// トークンのスナップショットではなく、ストアの現在値が返ります。
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, api.NewUserResponse(user))
}

// Verify はメール確認APIエンドポイントを処理します。
// - 未認証時は404を返却
// - コード不一致時は400を返却
func (h *UserHandler) Verify(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req api.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	verified, err := h.users.Verify(c.Request.Context(), user.ID, req.VerificationCode)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidVerificationCode):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid verification code"})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
		default:
			slog.Error("verify failed", "error", err, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, api.NewUserResponse(verified))
}

// AttachPlant はプラント紐付けAPIエンドポイントを処理します。
// - 未認証時は404を返却
// - 未知のコードは404、重複紐付けは409を返却
func (h *UserHandler) AttachPlant(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req api.AttachPlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	updated, err := h.users.AttachPlant(c.Request.Context(), user.ID, req.PlantCode)
	if err != nil {
		switch {
		case errors.Is(err, plantusecase.ErrPlantNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Plant not found"})
		case errors.Is(err, usecase.ErrPlantAlreadyAttached):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Plant already exists"})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
		default:
			slog.Error("attach plant failed", "error", err, "user_id", user.ID, "plant_code", req.PlantCode)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, api.NewUserResponse(updated))
}

// ListPlants はユーザーのプラント一覧APIエンドポイントを処理します。
// - 未認証時は404を返却
func (h *UserHandler) ListPlants(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	plants, err := h.users.ListPlants(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
			return
		}
		slog.Error("list plants failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, api.NewPlantResponses(plants))
}
