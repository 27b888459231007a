package adapters

import (
	"context"

	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"

	"gorm.io/gorm"
)

type bidGorm struct {
	db *gorm.DB
}

var _ usecase.BidRepository = (*bidGorm)(nil)

// NewBidRepository はbidGormの新しいインスタンスを生成します。
func NewBidRepository(db *gorm.DB) *bidGorm {
	return &bidGorm{db: db}
}

// bidQuery は先頭行が落札となる順に入札を並べます。
// 金額の高い順、同額なら古い順、さらにIDの小さい順です。
func bidQuery(db *gorm.DB, itemID uint) *gorm.DB {
	return db.Table("bids").
		Select("bids.*, users.username AS bidder_name").
		Joins("LEFT JOIN users ON users.id = bids.bidder_id").
		Where("bids.item_id = ?", itemID).
		Order("bids.amount_cents DESC, bids.created_at ASC, bids.id ASC")
}

func (r *bidGorm) ListByItem(ctx context.Context, itemID uint) ([]entity.Bid, error) {
	var rows []bidRow
	if err := bidQuery(r.db.WithContext(ctx), itemID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Bid, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *bidGorm) Highest(ctx context.Context, itemID uint) (*entity.Bid, error) {
	return highestBid(r.db.WithContext(ctx), itemID)
}

func highestBid(db *gorm.DB, itemID uint) (*entity.Bid, error) {
	var rows []bidRow
	if err := bidQuery(db, itemID).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	bid := rows[0].toEntity()
	return &bid, nil
}
