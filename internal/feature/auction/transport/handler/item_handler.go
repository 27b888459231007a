// Package handler はauctionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"auction_backend/internal/api"
	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/transport/http/dto"
	"auction_backend/internal/feature/auction/usecase"
	"auction_backend/internal/shared/identity"
)

// ItemUsecase は商品ページの操作を定義します。
type ItemUsecase interface {
	ItemDetail(ctx context.Context, actor identity.Identity, itemID uint) (*usecase.ItemView, error)
	CurrentPrice(ctx context.Context, itemID uint) (decimal.Decimal, error)
	Perform(ctx context.Context, actor identity.Identity, itemID uint, action usecase.Action) (usecase.Outcome, error)
}

// ActionRecorder は商品アクションの結果を記録します（メトリクス）。
type ActionRecorder interface {
	RecordAction(action, result string)
}

// ItemHandler は商品ページのHTTPリクエストを処理します。
type ItemHandler struct {
	uc      ItemUsecase
	metrics ActionRecorder
}

// NewItemHandler はItemHandlerの新しいインスタンスを生成します。metrics は nil でもかまいません。
func NewItemHandler(uc ItemUsecase, metrics ActionRecorder) *ItemHandler {
	return &ItemHandler{uc: uc, metrics: metrics}
}

// ruleViolations はページ上のメッセージとして表示する検証エラーです。
var ruleViolations = []error{
	domain.ErrInvalidAmount,
	domain.ErrBidTooLow,
	domain.ErrAuctionClosed,
	domain.ErrAlreadyClosed,
	domain.ErrNoBids,
	domain.ErrCommentTooLong,
}

// violationMessage は err が検証エラーであれば、ページに表示する文言を返します。
// ラップされた詳細は含めず、番兵エラーの文言だけを使います。
func violationMessage(err error) (string, bool) {
	for _, target := range ruleViolations {
		if errors.Is(err, target) {
			return target.Error(), true
		}
	}
	return "", false
}

// itemID は :id パラメータを解釈します。不正な値の場合は404を返して false を返します。
func itemID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: usecase.ErrItemNotFound.Error()})
		return 0, false
	}
	return uint(id), true
}

// Show は商品ページを返します。
//
// エンドポイント例:
// GET /items/:id
func (h *ItemHandler) Show(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	view, err := h.uc.ItemDetail(c.Request.Context(), identity.FromContext(c), id)
	if err != nil {
		h.writeLookupError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemView(view, ""))
}

// Price は商品の現在価格を返します。
//
// エンドポイント例:
// GET /items/:id/price
func (h *ItemHandler) Price(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}
	price, err := h.uc.CurrentPrice(c.Request.Context(), id)
	if err != nil {
		h.writeLookupError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPrice(id, price))
}

// Act は商品に対するアクションを1つ実行し、更新後の商品ページを返します。
// - ボディの形式不正、金額不正は400
// - 未ログインでの入札・ウォッチリスト・終了は401
// - 入札額不足などの検証エラーは422（ページとメッセージ付き）
// - 出品者以外による終了は何もせず200
func (h *ItemHandler) Act(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	var req dto.ItemActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("item action validation failed", "error", err, "item_id", id)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	action, err := req.ToAction()
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	actor := identity.FromContext(c)
	outcome, err := h.uc.Perform(ctx, actor, id, action)
	if msg, ok := violationMessage(err); ok {
		h.record(action, "rejected")
		slog.Info("item action rejected", "item_id", id, "action", action.Kind.String(), "user_id", actor.UserID, "reason", err)
		h.writeView(c, http.StatusUnprocessableEntity, id, msg)
		return
	}

	switch {
	case err == nil:
		h.record(action, "ok")
	case errors.Is(err, usecase.ErrInvalidAction):
		h.record(action, "rejected")
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, usecase.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, usecase.ErrItemNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	default:
		h.record(action, "error")
		slog.Error("item action failed", "error", err, "item_id", id, "action", action.Kind.String())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	h.writeView(c, http.StatusOK, id, outcome.Message)
}

// writeView は最新の商品ページを status で返します。
func (h *ItemHandler) writeView(c *gin.Context, status int, id uint, message string) {
	view, err := h.uc.ItemDetail(c.Request.Context(), identity.FromContext(c), id)
	if err != nil {
		h.writeLookupError(c, id, err)
		return
	}
	c.JSON(status, dto.NewItemView(view, message))
}

func (h *ItemHandler) writeLookupError(c *gin.Context, id uint, err error) {
	if errors.Is(err, usecase.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	}
	slog.Error("failed to load item", "error", err, "item_id", id)
	c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
}

func (h *ItemHandler) record(action usecase.Action, result string) {
	if h.metrics != nil {
		h.metrics.RecordAction(action.Kind.String(), result)
	}
}
