// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auction_backend/internal/api"
	"auction_backend/internal/feature/auth/transport/http/dto"
	"auction_backend/internal/feature/auth/usecase"
	"auction_backend/internal/shared/identity"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、ログイン済みのトークンを返します。
	Register(ctx context.Context, in usecase.Registration, client usecase.ClientInfo) (string, error)
	// Login はユーザーを認証し、成功時にトークンを返します。
	Login(ctx context.Context, username, password string, client usecase.ClientInfo) (string, error)
	// Logout は呼び出し元のセッションを失効させます。
	Logout(ctx context.Context, actor identity.Identity, all bool) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー、パスワード不一致、弱いパスワードは400
// - ユーザー名の重複は409
// - 成功時はトークン付きで201
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	token, err := h.auth.Register(c.Request.Context(), usecase.Registration{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	}, clientInfo(c))
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrPasswordMismatch),
		errors.Is(err, usecase.ErrWeakPassword),
		errors.Is(err, usecase.ErrUsernameRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, usecase.ErrUsernameTaken):
		slog.Warn("register failed", "error", err, "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		return
	default:
		slog.Error("register failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	slog.Info("user registration successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.TokenResponse{Token: token})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400
// - 認証失敗時は401
// - 認証成功時はトークン付きで200
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password, clientInfo(c))
	if errors.Is(err, usecase.ErrInvalidCredentials) {
		// ユーザー列挙攻撃を防止するため、ユーザー未検出とパスワード不一致を区別しない
		slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		slog.Error("login failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	slog.Info("user login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}

// Logout はセッションを失効させます。認証必須のルートに登録されます。
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
			return
		}
	}

	actor := identity.FromContext(c)
	if err := h.auth.Logout(c.Request.Context(), actor, req.All); err != nil {
		if errors.Is(err, usecase.ErrSessionNotFound) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "not logged in"})
			return
		}
		slog.Error("logout failed", "error", err, "user_id", actor.UserID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}
	slog.Info("user logged out", "user_id", actor.UserID, "all", req.All)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out."})
}
