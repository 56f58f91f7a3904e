// Package usecase はuserフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	plantentity "plant_backend/internal/feature/plant/domain/entity"
	plantusecase "plant_backend/internal/feature/plant/usecase"
	"plant_backend/internal/feature/user/domain/entity"
	jwtmw "plant_backend/internal/platform/jwt"
	"plant_backend/internal/shared/codegen"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// verificationCodeLength は登録時にメール送信される確認コードの桁数です。
	verificationCodeLength = 5
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Save は既存ユーザーのフィールドをストレージへ書き戻します。
	Save(ctx context.Context, user *entity.User) error

	// AttachPlant はユーザーのプラントリスト末尾に参照を追加します。
	// 既にリストに存在する場合、ErrPlantAlreadyAttachedを返します。
	AttachPlant(ctx context.Context, userID, plantID uint) error
}

// PlantFinder abstracts plant lookups needed when attaching and listing
// plants. It is implemented by the plant feature's repository and returns
// that package's sentinel errors.
type PlantFinder interface {
	FindByCode(ctx context.Context, code string) (*plantentity.Plant, error)
	FindByID(ctx context.Context, id uint) (*plantentity.Plant, error)
}

// TokenIssuer はログイン成功時の署名済みトークン発行を抽象化します。
type TokenIssuer interface {
	Generate(p jwtmw.Profile) (string, error)
}

// VerificationMailer delivers the verification code to a freshly registered
// user. Delivery failures never fail the registration itself.
type VerificationMailer interface {
	SendVerificationCode(ctx context.Context, email, name, code string) error
}

// userUsecase は認証とプラント帳簿のビジネスロジックを実装します。
type userUsecase struct {
	users  UserRepository
	plants PlantFinder
	tokens TokenIssuer
	mailer VerificationMailer
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, plants PlantFinder, tokens TokenIssuer, mailer VerificationMailer) *userUsecase {
	return &userUsecase{
		users:  users,
		plants: plants,
		tokens: tokens,
		mailer: mailer,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register はハッシュ化されたパスワードと確認コード付きで新規ユーザーを登録します。
// メールアドレスが既に使用されている場合、ErrEmailAlreadyExistsを返します。
func (u *userUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := codegen.Digits(verificationCodeLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	user := &entity.User{
		Name:             name,
		Email:            email,
		Password:         string(hashed),
		VerificationCode: code,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// コード送信はベストエフォート。失敗しても登録自体は成功扱い。
	if err := u.mailer.SendVerificationCode(ctx, user.Email, user.Name, code); err != nil {
		slog.Warn("failed to send verification code", "email", user.Email, "error", err)
	}

	return user, nil
}

// Login はユーザーを認証し、成功時に署名済みトークンを返します。
// 未登録メールはErrUserNotFound、パスワード不一致はErrInvalidCredentialsを返します。
func (u *userUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	// 不正なハッシュを含むあらゆる検証失敗はfail closedでErrInvalidCredentialsに潰す
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.Generate(ProfileOf(user))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Verify はユーザーの確認コードを照合し、一致すればis_verifiedを立てます。
// コードはクリアされないため、同じコードでの再実行も成功します。
func (u *userUsecase) Verify(ctx context.Context, userID uint, code string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.VerificationCode != code {
		return nil, ErrInvalidVerificationCode
	}

	user.IsVerified = true
	if err := u.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AttachPlant はプラントコードで参照を解決し、ユーザーのリスト末尾に追加します。
func (u *userUsecase) AttachPlant(ctx context.Context, userID uint, plantCode string) (*entity.User, error) {
	plant, err := u.plants.FindByCode(ctx, plantCode)
	if err != nil {
		return nil, err
	}

	if err := u.users.AttachPlant(ctx, userID, plant.ID); err != nil {
		return nil, err
	}

	// 追加後のプラントリストを含む最新状態を返す
	return u.users.FindByID(ctx, userID)
}

// ListPlants はユーザーが参照する全プラントを登録順で返します。
// 参照先が存在しないスロットはスキップします。
func (u *userUsecase) ListPlants(ctx context.Context, userID uint) ([]*plantentity.Plant, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	plants := make([]*plantentity.Plant, 0, len(user.Plants))
	for _, ref := range user.Plants {
		plant, err := u.plants.FindByID(ctx, ref.PlantID)
		if err != nil {
			if errors.Is(err, plantusecase.ErrPlantNotFound) {
				// Dangling reference: the plant was removed out-of-band.
				slog.Warn("skipping dangling plant reference", "user_id", userID, "plant_id", ref.PlantID)
				continue
			}
			return nil, err
		}
		plants = append(plants, plant)
	}
	return plants, nil
}

// ProfileOf builds the token profile snapshot from a live user record.
func ProfileOf(user *entity.User) jwtmw.Profile {
	return jwtmw.Profile{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		IsVerified: user.IsVerified,
		PlantIDs:   user.PlantIDs(),
		CreatedAt:  user.CreatedAt,
	}
}
