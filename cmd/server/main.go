package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"plant_backend/internal/app/config"
	"plant_backend/internal/app/router"
	plantadapters "plant_backend/internal/feature/plant/adapters"
	planthandler "plant_backend/internal/feature/plant/transport/handler"
	plantusecase "plant_backend/internal/feature/plant/usecase"
	useradapters "plant_backend/internal/feature/user/adapters"
	userhandler "plant_backend/internal/feature/user/transport/handler"
	userusecase "plant_backend/internal/feature/user/usecase"
	"plant_backend/internal/platform/cache"
	infradb "plant_backend/internal/platform/db"
	"plant_backend/internal/platform/identity"
	jwtmw "plant_backend/internal/platform/jwt"
	"plant_backend/internal/platform/mail"
	infraredis "plant_backend/internal/platform/redis"
)

func main() {
	cfg := config.Load()

	// db
	db := infradb.OpenDB(cfg.DatabaseURL, cfg.RunMigrations)

	// Redis（任意。未設定ならキャッシュなしで動作）
	var rdb *redisv9.Client
	if cfg.RedisAddr != "" {
		if tmp, err := infraredis.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
			log.Println("[WARN] Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// Repository
	userRepo := useradapters.NewUserPostgres(db)
	plantRepo := plantadapters.NewPlantPostgres(db)

	// Redisキャッシュでラップ
	cachedPlantRepo := cache.NewCachingPlantRepository(rdb, cfg.CacheTTL, plantRepo, "plants")

	// Platform
	codec := jwtmw.NewCodec(cfg.JWTSecret, cfg.JWTExpiry)
	mailer := mail.NewMailer(cfg.ResendAPIKey, cfg.EmailFrom)

	// Usecase
	userUC := userusecase.NewUserUsecase(userRepo, cachedPlantRepo, codec, mailer)
	plantUC := plantusecase.NewPlantUsecase(cachedPlantRepo)

	// Handler
	userH := userhandler.NewUserHandler(userUC)
	plantH := planthandler.NewPlantHandler(plantUC)

	// アイデンティティ解決はキャッシュを挟まず常にライブレコードを参照する
	resolve := identity.Resolve(userRepo, codec)

	// ルータ生成
	r := router.NewRouter(userH, plantH, resolve)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
