package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/shared/identity"

	"github.com/shopspring/decimal"
)

// ItemView は商品ページに表示する内容です。
type ItemView struct {
	Item     entity.Item
	Price    decimal.Decimal
	Bids     []entity.Bid
	Comments []entity.Comment
	Watching bool
}

// auctionUsecase は商品ごとの操作を実装します。
type auctionUsecase struct {
	items     ItemRepository
	bids      BidRepository
	comments  CommentRepository
	watchlist WatchlistRepository
	now       func() time.Time
}

// NewAuctionUsecase はauctionUsecaseの新しいインスタンスを生成します。
func NewAuctionUsecase(items ItemRepository, bids BidRepository, comments CommentRepository, watchlist WatchlistRepository) *auctionUsecase {
	return &auctionUsecase{
		items:     items,
		bids:      bids,
		comments:  comments,
		watchlist: watchlist,
		now:       time.Now,
	}
}

// ItemDetail は商品を現在価格・入札・コメントとともに取得します。
// Watching はログイン中の利用者の場合のみ判定します。
func (u *auctionUsecase) ItemDetail(ctx context.Context, actor identity.Identity, itemID uint) (*ItemView, error) {
	item, err := u.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	bids, err := u.bids.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list bids of item %d: %w", itemID, err)
	}
	comments, err := u.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list comments of item %d: %w", itemID, err)
	}

	view := &ItemView{Item: *item, Bids: bids, Comments: comments}
	// 入札は高い順
	var highest *entity.Bid
	if len(bids) > 0 {
		highest = &bids[0]
	}
	view.Price = domain.CurrentPrice(*item, highest)

	if actor.Authenticated() {
		watching, err := u.watchlist.Contains(ctx, actor.UserID, itemID)
		if err != nil {
			return nil, fmt.Errorf("check watchlist: %w", err)
		}
		view.Watching = watching
	}
	return view, nil
}

// CurrentPrice は商品の最高入札額を返します。入札が無ければ開始価格です。
func (u *auctionUsecase) CurrentPrice(ctx context.Context, itemID uint) (decimal.Decimal, error) {
	item, err := u.items.FindByID(ctx, itemID)
	if err != nil {
		return decimal.Zero, err
	}
	highest, err := u.bids.Highest(ctx, itemID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("highest bid of item %d: %w", itemID, err)
	}
	return domain.CurrentPrice(*item, highest), nil
}

// Perform は actor による商品への操作を1件実行します。
func (u *auctionUsecase) Perform(ctx context.Context, actor identity.Identity, itemID uint, action Action) (Outcome, error) {
	if _, err := u.items.FindByID(ctx, itemID); err != nil {
		return Outcome{}, err
	}

	switch action.Kind {
	case ActionAddWatchlist:
		return u.addToWatchlist(ctx, actor, itemID)
	case ActionRemoveWatchlist:
		return u.removeFromWatchlist(ctx, actor, itemID)
	case ActionPlaceBid:
		return u.placeBid(ctx, actor, itemID, action.Amount)
	case ActionAddComment:
		return u.addComment(ctx, actor, itemID, action.Text)
	case ActionCloseAuction:
		return u.closeAuction(ctx, actor, itemID)
	default:
		return Outcome{}, fmt.Errorf("%w: %s", ErrInvalidAction, action.Kind)
	}
}

func (u *auctionUsecase) addToWatchlist(ctx context.Context, actor identity.Identity, itemID uint) (Outcome, error) {
	if !actor.Authenticated() {
		return Outcome{}, ErrUnauthenticated
	}
	if err := u.watchlist.Add(ctx, actor.UserID, itemID); err != nil {
		return Outcome{}, fmt.Errorf("add item %d to watchlist: %w", itemID, err)
	}
	return Outcome{Message: "Added to watchlist"}, nil
}

func (u *auctionUsecase) removeFromWatchlist(ctx context.Context, actor identity.Identity, itemID uint) (Outcome, error) {
	if !actor.Authenticated() {
		return Outcome{}, ErrUnauthenticated
	}
	if err := u.watchlist.Remove(ctx, actor.UserID, itemID); err != nil {
		return Outcome{}, fmt.Errorf("remove item %d from watchlist: %w", itemID, err)
	}
	return Outcome{Message: "Removed from watchlist"}, nil
}

// placeBid は商品のロック中に金額を現在価格と比較して検証します。
func (u *auctionUsecase) placeBid(ctx context.Context, actor identity.Identity, itemID uint, raw string) (Outcome, error) {
	if !actor.Authenticated() {
		return Outcome{}, ErrUnauthenticated
	}
	amount, err := domain.ParseAmount(raw)
	if err != nil {
		return Outcome{}, err
	}

	bid, err := u.items.PlaceBid(ctx, itemID, func(item *entity.Item, highest *entity.Bid) (*entity.Bid, error) {
		if err := domain.ValidateBid(*item, highest, amount); err != nil {
			return nil, err
		}
		return &entity.Bid{
			ItemID:     itemID,
			BidderID:   actor.UserID,
			BidderName: actor.Username,
			Amount:     amount,
			CreatedAt:  u.now(),
		}, nil
	})
	if err != nil {
		return Outcome{}, err
	}
	slog.Info("bid placed", "item_id", itemID, "bid_id", bid.ID, "bidder_id", actor.UserID, "amount", domain.FormatAmount(amount))
	return Outcome{Message: "Bid successful"}, nil
}

// addComment は未ログインの利用者と空のコメントを黙って無視します。
func (u *auctionUsecase) addComment(ctx context.Context, actor identity.Identity, itemID uint, text string) (Outcome, error) {
	text = strings.TrimSpace(text)
	if !actor.Authenticated() || text == "" {
		return Outcome{}, nil
	}
	if utf8.RuneCountInString(text) > domain.MaxCommentLength {
		return Outcome{}, domain.ErrCommentTooLong
	}

	authorID := actor.UserID
	comment := &entity.Comment{
		ItemID:     itemID,
		AuthorID:   &authorID,
		AuthorName: actor.Username,
		Text:       text,
		CreatedAt:  u.now(),
	}
	if err := u.comments.Create(ctx, comment); err != nil {
		return Outcome{}, fmt.Errorf("create comment on item %d: %w", itemID, err)
	}
	return Outcome{Message: "Comment added."}, nil
}

// closeAuction は出品者以外による終了を無視します。
func (u *auctionUsecase) closeAuction(ctx context.Context, actor identity.Identity, itemID uint) (Outcome, error) {
	if !actor.Authenticated() {
		return Outcome{}, ErrUnauthenticated
	}

	item, err := u.items.Close(ctx, itemID, func(item *entity.Item, highest *entity.Bid) error {
		return domain.CloseAuction(item, actor.UserID, highest)
	})
	if errors.Is(err, domain.ErrNotOwner) {
		slog.Warn("close attempt by non-owner ignored", "item_id", itemID, "user_id", actor.UserID)
		return Outcome{}, nil
	}
	if err != nil {
		return Outcome{}, err
	}
	slog.Info("auction closed", "item_id", itemID, "winner_id", item.OwnerID)
	return Outcome{Message: fmt.Sprintf("Auction closed. Item is now owned by %s", item.OwnerName)}, nil
}
