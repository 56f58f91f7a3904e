// Package adapters はuserフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"plant_backend/internal/feature/user/domain/entity"
	"plant_backend/internal/feature/user/usecase"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEです。
const pgUniqueViolation = "23505"

// userPostgres はUserRepositoryインターフェースのPostgreSQL実装です。
// GORMを使用してデータベース操作を行います。
type userPostgres struct {
	db *gorm.DB
}

// userPostgresがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres は指定されたgorm.DB接続でuserPostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// isUniqueViolation はドライバまたはGORMが報告する一意制約違反を判定します。
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Create はユーザーをデータベースに追加します。
// 同じメールアドレスのユーザーが既に存在する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します（プラント参照を登録順でプリロード）。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).
		Preload("Plants", orderByPosition).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID はIDでユーザーを取得します（プラント参照を登録順でプリロード）。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userPostgres) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).
		Preload("Plants", orderByPosition).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Save はユーザーのスカラーフィールドを書き戻します。
// プラント参照はAttachPlant経由でのみ変更されるため、関連は書き込み対象外です。
func (r *userPostgres) Save(ctx context.Context, u *entity.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error
}

// AttachPlant はユーザーのプラントリスト末尾に参照行を追加します。
// (user_id, plant_id)の複合主キーにより、重複追加はusecase.ErrPlantAlreadyAttachedになります。
func (r *userPostgres) AttachPlant(ctx context.Context, userID, plantID uint) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.UserPlant{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return err
	}

	row := &entity.UserPlant{
		UserID:   userID,
		PlantID:  plantID,
		Position: int(count),
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return usecase.ErrPlantAlreadyAttached
		}
		return err
	}
	return nil
}

// orderByPosition keeps the preloaded plant references in claim order.
func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
