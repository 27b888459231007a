// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"auction_backend/internal/feature/auth/domain/entity"
	"auction_backend/internal/shared/identity"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// MaxSessionsPerUser はユーザーごとに保持するセッションの上限です。
	MaxSessionsPerUser = 5

	// dummyHash はユーザーが存在しない場合のbcrypt比較に使うダミーハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じユーザー名が既に存在する場合、ErrUsernameTakenを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername は指定されたユーザー名に一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenGenerator はアクセストークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	// GenerateToken はセッションに紐づく署名済みトークンを生成します。
	GenerateToken(userID uint, username, sessionID string) (string, error)
}

// ClientInfo はセッションに記録するクライアント情報です。
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// Registration はユーザー登録の入力です。
type Registration struct {
	Username     string
	Email        string
	Password     string
	Confirmation string
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users      UserRepository
	sessions   SessionRepository
	tokens     TokenGenerator
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
// sessionTTLはトークンの有効期限と同じ値を渡します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator, sessionTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Register は新規ユーザーを登録し、そのままログインしてトークンを返します。
// 確認用パスワードの不一致を最初に検証します。
func (u *authUsecase) Register(ctx context.Context, in Registration, client ClientInfo) (string, error) {
	username := strings.TrimSpace(in.Username)
	if in.Password != in.Confirmation {
		return "", ErrPasswordMismatch
	}
	if username == "" {
		return "", ErrUsernameRequired
	}
	if err := validatePassword(in.Password); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Username: username, Email: strings.TrimSpace(in.Email), Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return "", err
	}
	slog.Info("user registered", "user_id", user.ID, "username", user.Username)

	return u.startSession(ctx, user, client)
}

// Login はユーザーを認証し、成功時にセッションを作成してトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, username, password string, client ClientInfo) (string, error) {
	user, err := u.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("find user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	return u.startSession(ctx, user, client)
}

// startSession はセッション上限を守りながら新しいセッションを作成し、トークンを発行します。
func (u *authUsecase) startSession(ctx context.Context, user *entity.User, client ClientInfo) (string, error) {
	count, err := u.sessions.CountByUserID(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("count sessions: %w", err)
	}
	// 上限に達している場合は最も古いセッションから削除する
	for ; count >= MaxSessionsPerUser; count-- {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			return "", fmt.Errorf("evict oldest session: %w", err)
		}
	}

	now := u.now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: truncate(client.UserAgent, 512),
		IPAddress: truncate(client.IPAddress, 45),
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Username, session.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Logout は呼び出し元のセッションを失効させます。allがtrueの場合は全セッションを失効させます。
func (u *authUsecase) Logout(ctx context.Context, actor identity.Identity, all bool) error {
	if !actor.Authenticated() {
		return ErrSessionNotFound
	}
	if all {
		return u.sessions.RevokeAllByUserID(ctx, actor.UserID)
	}
	return u.sessions.Revoke(ctx, actor.SessionID)
}

// VerifySession はトークンに含まれるセッションが有効であり、userIDに属することを確認します。
func (u *authUsecase) VerifySession(ctx context.Context, sessionID string, userID uint) error {
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.UserID != userID {
		return ErrSessionNotFound
	}
	if session.IsRevoked() {
		return ErrSessionRevoked
	}
	if session.IsExpired() {
		return ErrSessionExpired
	}
	return nil
}

// PruneSessions は期限切れのセッションを削除し、削除件数を返します。
func (u *authUsecase) PruneSessions(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
