package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	planthandler "plant_backend/internal/feature/plant/transport/handler"
	userhandler "plant_backend/internal/feature/user/transport/handler"
	"plant_backend/internal/platform/http/handler"
)

// NewRouter assembles the HTTP surface. The identity resolver runs on every
// route and never rejects; handlers that need an authenticated caller check
// the resolved identity themselves, so public and protected endpoints share
// one middleware chain.
func NewRouter(users *userhandler.UserHandler, plants *planthandler.PlantHandler,
	resolve gin.HandlerFunc) *gin.Engine {
	r := gin.Default()
	// ゲームクライアントはブラウザ配信のため全オリジン許可
	r.Use(cors.Default())
	r.Use(resolve)

	// 認証不要
	r.GET("/", handler.Root)
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/user/register", users.Register)
	// ログイン（トークン発行）
	r.POST("/user/login", users.Login)
	// プラント作成・取得・更新（ゲームデバイスから呼ばれる）
	r.POST("/plant", plants.Create)
	r.GET("/plant/:id", plants.Get)
	r.PUT("/plant/:id", plants.Update)

	// 解決済みアイデンティティ必須（未認証は各ハンドラーが404で応答）
	r.GET("/user", users.Me)
	r.POST("/user/verify", users.Verify)
	r.PUT("/user/plant", users.AttachPlant)
	r.GET("/user/plant", users.ListPlants)

	return r
}
