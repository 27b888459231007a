package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"
	"auction_backend/internal/shared/identity"
)

func setupItemRouter(uc *mockItemUsecase, metrics ActionRecorder, actor identity.Identity) *gin.Engine {
	h := NewItemHandler(uc, metrics)
	r := gin.New()
	r.Use(withIdentity(actor))
	r.GET("/items/:id", h.Show)
	r.GET("/items/:id/price", h.Price)
	r.POST("/items/:id", h.Act)
	return r
}

func TestItemHandler_Show(t *testing.T) {
	t.Parallel()

	t.Run("renders view with money as strings", func(t *testing.T) {
		t.Parallel()
		uc := &mockItemUsecase{
			ItemDetailFunc: func(ctx context.Context, actor identity.Identity, itemID uint) (*usecase.ItemView, error) {
				assert.Equal(t, bob, actor)
				authorID := alice.UserID
				return &usecase.ItemView{
					Item:  lamp(),
					Price: decimal.RequireFromString("25"),
					Bids: []entity.Bid{
						{ID: 3, ItemID: 7, BidderID: 2, BidderName: "bob", Amount: decimal.RequireFromString("25"), CreatedAt: created},
						{ID: 1, ItemID: 7, BidderID: 3, BidderName: "carol", Amount: decimal.RequireFromString("20"), CreatedAt: created},
					},
					Comments: []entity.Comment{{ID: 1, ItemID: 7, AuthorID: &authorID, AuthorName: "alice", Text: "Works fine", CreatedAt: created}},
					Watching: true,
				}, nil
			},
		}
		router := setupItemRouter(uc, nil, bob)

		w, body := doJSON(t, router, http.MethodGet, "/items/7", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "25.00", body["price"])
		assert.Equal(t, true, body["watching"])
		assert.NotContains(t, body, "message")
		item := body["item"].(map[string]any)
		assert.Equal(t, "10.00", item["starting_bid"])
		assert.Equal(t, "alice", item["owner"])
		assert.Equal(t, "Home", item["category"])
		bids := body["bids"].([]any)
		require.Len(t, bids, 2)
		assert.Equal(t, "25.00", bids[0].(map[string]any)["amount"])
		assert.Len(t, body["comments"], 1)
	})

	tests := []struct {
		name           string
		path           string
		err            error
		expectedStatus int
	}{
		{name: "unknown item", path: "/items/99", expectedStatus: http.StatusNotFound},
		{name: "non-numeric id", path: "/items/abc", expectedStatus: http.StatusNotFound},
		{name: "zero id", path: "/items/0", expectedStatus: http.StatusNotFound},
		{name: "repository failure", path: "/items/7", err: errDB, expectedStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			uc := &mockItemUsecase{}
			if tt.err != nil {
				uc.ItemDetailFunc = func(context.Context, identity.Identity, uint) (*usecase.ItemView, error) { return nil, tt.err }
			}
			router := setupItemRouter(uc, nil, identity.Anonymous)

			w, body := doJSON(t, router, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, body, "error")
		})
	}
}

func TestItemHandler_Price(t *testing.T) {
	t.Parallel()

	uc := &mockItemUsecase{
		CurrentPriceFunc: func(ctx context.Context, itemID uint) (decimal.Decimal, error) {
			if itemID != 7 {
				return decimal.Zero, usecase.ErrItemNotFound
			}
			return decimal.RequireFromString("10.5"), nil
		},
	}
	router := setupItemRouter(uc, nil, identity.Anonymous)

	w, body := doJSON(t, router, http.MethodGet, "/items/7/price", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"item_id": float64(7), "price": "10.50"}, body)

	w, _ = doJSON(t, router, http.MethodGet, "/items/8/price", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemHandler_Act(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		actor          identity.Identity
		body           string
		performErr     error
		outcome        usecase.Outcome
		wantAction     *usecase.Action
		expectedStatus int
		expectedMsg    string
		expectedError  string
		expectedMetric string
	}{
		{
			name:           "bid accepted",
			actor:          bob,
			body:           `{"bid_place":"10.01"}`,
			outcome:        usecase.Outcome{Message: "Bid successful"},
			wantAction:     &usecase.Action{Kind: usecase.ActionPlaceBid, Amount: "10.01"},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Bid successful",
			expectedMetric: "bid:ok",
		},
		{
			name:           "bid too low renders view with message",
			actor:          bob,
			body:           `{"bid_place":"9.99"}`,
			performErr:     domain.ErrBidTooLow,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "bid too low",
			expectedMetric: "bid:rejected",
		},
		{
			name:           "bid on closed auction",
			actor:          bob,
			body:           `{"bid_place":"50"}`,
			performErr:     domain.ErrAuctionClosed,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "auction closed",
			expectedMetric: "bid:rejected",
		},
		{
			name:           "negative amount renders view with message",
			actor:          bob,
			body:           `{"bid_place":"-5"}`,
			performErr:     fmt.Errorf("%w: must not be negative", domain.ErrInvalidAmount),
			wantAction:     &usecase.Action{Kind: usecase.ActionPlaceBid, Amount: "-5"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "invalid amount",
			expectedMetric: "bid:rejected",
		},
		{
			name:           "non-numeric amount reaches the usecase",
			actor:          bob,
			body:           `{"bid_place":"abc"}`,
			performErr:     fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, "abc"),
			wantAction:     &usecase.Action{Kind: usecase.ActionPlaceBid, Amount: "abc"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "invalid amount",
			expectedMetric: "bid:rejected",
		},
		{
			name:           "empty amount reaches the usecase",
			actor:          bob,
			body:           `{"bid_place":""}`,
			performErr:     fmt.Errorf("%w: missing", domain.ErrInvalidAmount),
			wantAction:     &usecase.Action{Kind: usecase.ActionPlaceBid, Amount: ""},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "invalid amount",
			expectedMetric: "bid:rejected",
		},
		{
			name:           "numeric amount keeps its text",
			actor:          bob,
			body:           `{"bid_place":12.50}`,
			outcome:        usecase.Outcome{Message: "Bid successful"},
			wantAction:     &usecase.Action{Kind: usecase.ActionPlaceBid, Amount: "12.50"},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Bid successful",
			expectedMetric: "bid:ok",
		},
		{
			name:           "close with no bids",
			actor:          alice,
			body:           `{"close_auction":true}`,
			performErr:     domain.ErrNoBids,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "no bids placed",
			expectedMetric: "close:rejected",
		},
		{
			name:           "second close",
			actor:          alice,
			body:           `{"close_auction":true}`,
			performErr:     domain.ErrAlreadyClosed,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "auction already closed",
			expectedMetric: "close:rejected",
		},
		{
			name:           "non-owner close is silent",
			actor:          bob,
			body:           `{"close_auction":true}`,
			outcome:        usecase.Outcome{},
			wantAction:     &usecase.Action{Kind: usecase.ActionCloseAuction},
			expectedStatus: http.StatusOK,
			expectedMetric: "close:ok",
		},
		{
			name:           "comment too long",
			actor:          bob,
			body:           `{"comment_text":"long"}`,
			performErr:     domain.ErrCommentTooLong,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    "comment too long",
			expectedMetric: "comment:rejected",
		},
		{
			name:           "watchlist add",
			actor:          bob,
			body:           `{"watchlist_action":"add"}`,
			outcome:        usecase.Outcome{Message: "Added to watchlist"},
			wantAction:     &usecase.Action{Kind: usecase.ActionAddWatchlist},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Added to watchlist",
			expectedMetric: "watchlist_add:ok",
		},
		{
			name:           "anonymous bid",
			actor:          identity.Anonymous,
			body:           `{"bid_place":"11"}`,
			performErr:     usecase.ErrUnauthenticated,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "authentication required",
		},
		{
			name:           "unknown item",
			actor:          bob,
			body:           `{"watchlist_action":"remove"}`,
			performErr:     usecase.ErrItemNotFound,
			expectedStatus: http.StatusNotFound,
			expectedError:  "item not found",
		},
		{
			name:           "repository failure",
			actor:          bob,
			body:           `{"comment_text":"hi"}`,
			performErr:     fmt.Errorf("create comment: %w", errDB),
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal server error",
			expectedMetric: "comment:error",
		},
		{
			name:           "two actions at once",
			actor:          bob,
			body:           `{"bid_place":"11","close_auction":true}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty body",
			actor:          bob,
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			actor:          bob,
			body:           `{"bid_place":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			performed := false
			uc := &mockItemUsecase{
				PerformFunc: func(ctx context.Context, actor identity.Identity, itemID uint, action usecase.Action) (usecase.Outcome, error) {
					performed = true
					assert.Equal(t, tt.actor, actor)
					assert.Equal(t, uint(7), itemID)
					if tt.wantAction != nil {
						assert.Equal(t, *tt.wantAction, action)
					}
					return tt.outcome, tt.performErr
				},
			}
			metrics := &recordingMetrics{}
			router := setupItemRouter(uc, metrics, tt.actor)

			w, body := doJSON(t, router, http.MethodPost, "/items/7", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, body["message"])
				assert.Contains(t, body, "item")
			}
			if tt.expectedStatus == http.StatusOK && tt.expectedMsg == "" {
				assert.NotContains(t, body, "message")
				assert.Contains(t, body, "item")
			}
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
			}
			if tt.expectedStatus == http.StatusBadRequest && tt.performErr == nil {
				assert.False(t, performed, "malformed bodies must not reach the usecase")
			}
			if tt.expectedMetric != "" {
				assert.Equal(t, []string{tt.expectedMetric}, metrics.calls)
			} else {
				assert.Empty(t, metrics.calls)
			}
		})
	}
}

// 金額の文字列は加工されずにParseAmountまで届く
func TestItemHandler_Act_AmountParsedByDomain(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`"abc"`, `""`, `"ten"`, `"  "`, `true`} {
		t.Run(raw, func(t *testing.T) {
			t.Parallel()

			uc := &mockItemUsecase{
				PerformFunc: func(ctx context.Context, actor identity.Identity, itemID uint, action usecase.Action) (usecase.Outcome, error) {
					_, err := domain.ParseAmount(action.Amount)
					return usecase.Outcome{}, err
				},
			}
			router := setupItemRouter(uc, nil, bob)

			w, body := doJSON(t, router, http.MethodPost, "/items/7", `{"bid_place":`+raw+`}`)

			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Equal(t, "invalid amount", body["message"])
			assert.Contains(t, body, "item")
		})
	}
}

func TestItemHandler_Act_NilMetrics(t *testing.T) {
	t.Parallel()

	router := setupItemRouter(&mockItemUsecase{}, nil, bob)

	w, _ := doJSON(t, router, http.MethodPost, "/items/7", `{"watchlist_action":"add"}`)

	assert.Equal(t, http.StatusOK, w.Code)
}
