// Package db opens the application database connection.
package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	plantentity "plant_backend/internal/feature/plant/domain/entity"
	userentity "plant_backend/internal/feature/user/domain/entity"
)

// OpenDB connects to PostgreSQL with a startup retry loop and optionally
// runs the schema migrations. TranslateError lets adapters detect duplicate
// keys with gorm.ErrDuplicatedKey regardless of dialect.
func OpenDB(dsn string, runMigrations bool) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if runMigrations {
		// マイグレーション（User, UserPlant, Plant）
		// users.email / plants.code / (user_id, plant_id) の一意制約もここで張られる
		if err := db.AutoMigrate(
			&userentity.User{},
			&userentity.UserPlant{},
			&plantentity.Plant{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
