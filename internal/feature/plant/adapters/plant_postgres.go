// Package adapters はplantフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"plant_backend/internal/feature/plant/domain/entity"
	"plant_backend/internal/feature/plant/usecase"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const pgUniqueViolation = "23505"

// plantPostgres はPlantRepositoryインターフェースのPostgreSQL実装です。
type plantPostgres struct {
	db *gorm.DB
}

// plantPostgresがPlantRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PlantRepository = (*plantPostgres)(nil)

// NewPlantPostgres は指定されたgorm.DB接続でplantPostgresの新しいインスタンスを生成します。
func NewPlantPostgres(db *gorm.DB) *plantPostgres {
	return &plantPostgres{db: db}
}

// Create はプラントをデータベースに追加します。
// コードが既に使用されている場合、usecase.ErrCodeAlreadyTakenを返します。
func (r *plantPostgres) Create(ctx context.Context, p *entity.Plant) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return usecase.ErrCodeAlreadyTaken
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrCodeAlreadyTaken
		}
		return err
	}
	return nil
}

// FindByID はIDでプラントを取得します。
// プラントが存在しない場合、usecase.ErrPlantNotFoundを返します。
func (r *plantPostgres) FindByID(ctx context.Context, id uint) (*entity.Plant, error) {
	var p entity.Plant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPlantNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByCode はコードでプラントを取得します。
// プラントが存在しない場合、usecase.ErrPlantNotFoundを返します。
func (r *plantPostgres) FindByCode(ctx context.Context, code string) (*entity.Plant, error) {
	var p entity.Plant
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPlantNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save はプラントの全フィールドを書き戻します。
// 更新はreplaceセマンティクスのため、ゼロ値やNULLもそのまま書き込みます。
func (r *plantPostgres) Save(ctx context.Context, p *entity.Plant) error {
	return r.db.WithContext(ctx).Save(p).Error
}
