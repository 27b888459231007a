package domain

import (
	"auction_backend/internal/feature/auction/domain/entity"

	"github.com/shopspring/decimal"
)

// CurrentPrice は最高入札額を返します。入札が無い（highest が nil）場合は開始価格です。
func CurrentPrice(item entity.Item, highest *entity.Bid) decimal.Decimal {
	if highest == nil {
		return item.StartingBid
	}
	return highest.Amount
}

// ValidateBid はオークションが開催中で、amount が現在価格を上回る場合のみ受け付けます。
func ValidateBid(item entity.Item, highest *entity.Bid, amount decimal.Decimal) error {
	if !item.IsOpen {
		return ErrAuctionClosed
	}
	if amount.LessThanOrEqual(CurrentPrice(item, highest)) {
		return ErrBidTooLow
	}
	return nil
}

// CloseAuction はオークションを終了し、商品を最高入札者に引き渡します。
// highest は落札となる入札（最高額、同額なら最も古いもの）であること。
// エラーを返す場合 item は変更しません。
func CloseAuction(item *entity.Item, actorID uint, highest *entity.Bid) error {
	if !item.IsOpen {
		return ErrAlreadyClosed
	}
	if item.OwnerID != actorID {
		return ErrNotOwner
	}
	if highest == nil {
		return ErrNoBids
	}
	item.IsOpen = false
	item.OwnerID = highest.BidderID
	item.OwnerName = highest.BidderName
	return nil
}
