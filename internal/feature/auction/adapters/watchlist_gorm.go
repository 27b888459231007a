package adapters

import (
	"context"

	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type watchlistGorm struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistRepository はwatchlistGormの新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

func (r *watchlistGorm) Add(ctx context.Context, userID, itemID uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&WatchlistModel{UserID: userID, ItemID: itemID}).Error
}

func (r *watchlistGorm) Remove(ctx context.Context, userID, itemID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&WatchlistModel{}).Error
}

func (r *watchlistGorm) Contains(ctx context.Context, userID, itemID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&WatchlistModel{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error
	return count > 0, err
}

func (r *watchlistGorm) ListItems(ctx context.Context, userID uint) ([]entity.Item, error) {
	var rows []itemRow
	err := itemQuery(r.db.WithContext(ctx)).
		Joins("JOIN watchlist ON watchlist.item_id = items.id").
		Where("watchlist.user_id = ?", userID).
		Order("watchlist.created_at DESC, items.id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
