package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auction_backend/internal/api"
	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/transport/http/dto"
	"auction_backend/internal/feature/auction/usecase"
	"auction_backend/internal/shared/identity"
)

// ListingUsecase は一覧・出品・カテゴリ・ウォッチリストの操作を定義します。
type ListingUsecase interface {
	Index(ctx context.Context) (*usecase.Listing, error)
	CreateItem(ctx context.Context, actor identity.Identity, in usecase.NewListing) (*entity.Item, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	CategoryItems(ctx context.Context, name string) (*entity.Category, []entity.Item, error)
	Watchlist(ctx context.Context, actor identity.Identity) ([]entity.Item, error)
}

// ListingHandler は一覧系のHTTPリクエストを処理します。
type ListingHandler struct {
	uc ListingUsecase
}

// NewListingHandler はListingHandlerの新しいインスタンスを生成します。
func NewListingHandler(uc ListingUsecase) *ListingHandler {
	return &ListingHandler{uc: uc}
}

func internalError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "error", err)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
}

// Index は公開中と終了済みの商品を返します。
//
// エンドポイント例:
// GET /
func (h *ListingHandler) Index(c *gin.Context) {
	listing, err := h.uc.Index(c.Request.Context())
	if err != nil {
		internalError(c, "failed to list items", err)
		return
	}
	c.JSON(http.StatusOK, dto.IndexResponse{
		Open:   dto.NewItemSummaries(listing.Open),
		Closed: dto.NewItemSummaries(listing.Closed),
	})
}

// CreateForm は出品時に選べるカテゴリを返します。
//
// エンドポイント例:
// GET /create
func (h *ListingHandler) CreateForm(c *gin.Context) {
	categories, err := h.uc.ListCategories(c.Request.Context())
	if err != nil {
		internalError(c, "failed to list categories", err)
		return
	}
	c.JSON(http.StatusOK, dto.CreateFormResponse{Categories: dto.NewCategories(categories)})
}

// Create は新しい商品を出品します。成功時は201で商品を返します。
//
// エンドポイント例:
// POST /create
func (h *ListingHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create item validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	actor := identity.FromContext(c)
	item, err := h.uc.CreateItem(c.Request.Context(), actor, req.ToListing())
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrInvalidListing), errors.Is(err, domain.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, usecase.ErrCategoryNotFound):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, usecase.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
		return
	default:
		internalError(c, "failed to create item", err)
		return
	}

	slog.Info("item listed", "item_id", item.ID, "owner_id", actor.UserID)
	c.JSON(http.StatusCreated, dto.NewItemSummary(*item))
}

// Watchlist は呼び出し元がウォッチしている商品を返します。
//
// エンドポイント例:
// GET /watchlist
func (h *ListingHandler) Watchlist(c *gin.Context) {
	items, err := h.uc.Watchlist(c.Request.Context(), identity.FromContext(c))
	if errors.Is(err, usecase.ErrUnauthenticated) {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		internalError(c, "failed to list watchlist", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemSummaries(items))
}

// Categories はカテゴリ一覧を返します。
//
// エンドポイント例:
// GET /categories
func (h *ListingHandler) Categories(c *gin.Context) {
	categories, err := h.uc.ListCategories(c.Request.Context())
	if err != nil {
		internalError(c, "failed to list categories", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCategories(categories))
}

// Category はカテゴリとその商品を返します。
//
// エンドポイント例:
// GET /categories/:name
func (h *ListingHandler) Category(c *gin.Context) {
	category, items, err := h.uc.CategoryItems(c.Request.Context(), c.Param("name"))
	if errors.Is(err, usecase.ErrCategoryNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		internalError(c, "failed to load category", err)
		return
	}
	c.JSON(http.StatusOK, dto.CategoryItemsResponse{
		Category: dto.CategoryResponse{ID: category.ID, Name: category.Name},
		Items:    dto.NewItemSummaries(items),
	})
}
