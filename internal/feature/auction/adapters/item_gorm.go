package adapters

import (
	"context"
	"errors"

	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// itemGorm は usecase.ItemRepository のGORM実装です。
type itemGorm struct {
	db *gorm.DB
}

var _ usecase.ItemRepository = (*itemGorm)(nil)

// NewItemRepository はitemGormの新しいインスタンスを生成します。
func NewItemRepository(db *gorm.DB) *itemGorm {
	return &itemGorm{db: db}
}

// itemQuery は出品者名とカテゴリ名を結合して商品を取得します。
func itemQuery(db *gorm.DB) *gorm.DB {
	return db.Table("items").
		Select("items.*, users.username AS owner_name, categories.name AS category_name").
		Joins("LEFT JOIN users ON users.id = items.owner_id").
		Joins("LEFT JOIN categories ON categories.id = items.category_id")
}

func (r *itemGorm) Create(ctx context.Context, item *entity.Item) error {
	m := ItemModel{
		Title:            item.Title,
		Description:      item.Description,
		StartingBidCents: domain.ToCents(item.StartingBid),
		IsOpen:           item.IsOpen,
		CategoryID:       item.CategoryID,
		OwnerID:          item.OwnerID,
		Image:            item.Image,
		CreatedAt:        item.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	item.ID = m.ID
	item.CreatedAt = m.CreatedAt
	return nil
}

func (r *itemGorm) FindByID(ctx context.Context, id uint) (*entity.Item, error) {
	return findItem(r.db.WithContext(ctx), id)
}

func findItem(db *gorm.DB, id uint) (*entity.Item, error) {
	var row itemRow
	if err := itemQuery(db).Where("items.id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrItemNotFound
		}
		return nil, err
	}
	item := row.toEntity()
	return &item, nil
}

func (r *itemGorm) ListByStatus(ctx context.Context, open bool) ([]entity.Item, error) {
	return r.list(itemQuery(r.db.WithContext(ctx)).Where("items.is_open = ?", open))
}

func (r *itemGorm) ListByCategory(ctx context.Context, categoryID uint) ([]entity.Item, error) {
	return r.list(itemQuery(r.db.WithContext(ctx)).Where("items.category_id = ?", categoryID))
}

func (r *itemGorm) list(q *gorm.DB) ([]entity.Item, error) {
	var rows []itemRow
	if err := q.Order("items.created_at DESC, items.id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// lockItem は同じ商品への入札と終了を直列化する行ロックを取得します。
// SQLiteには行ロックが無く句は無視されますが、書き込みは常に直列です。
func lockItem(tx *gorm.DB, id uint) (*entity.Item, error) {
	var m ItemModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return findItem(tx, id)
}

// PlaceBid はロックした商品に対して decide を評価し、入札を追加します。
func (r *itemGorm) PlaceBid(ctx context.Context, itemID uint, decide usecase.BidDecision) (*entity.Bid, error) {
	var placed *entity.Bid
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := lockItem(tx, itemID)
		if err != nil {
			return err
		}
		highest, err := highestBid(tx, itemID)
		if err != nil {
			return err
		}
		bid, err := decide(item, highest)
		if err != nil {
			return err
		}

		m := BidModel{
			ItemID:      itemID,
			BidderID:    bid.BidderID,
			AmountCents: domain.ToCents(bid.Amount),
			CreatedAt:   bid.CreatedAt,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		bid.ID = m.ID
		bid.ItemID = itemID
		bid.CreatedAt = m.CreatedAt
		placed = bid
		return nil
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// Close はロックした商品に対して decide を評価し、終了後の状態を保存します。
func (r *itemGorm) Close(ctx context.Context, itemID uint, decide usecase.CloseDecision) (*entity.Item, error) {
	var closed *entity.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := lockItem(tx, itemID)
		if err != nil {
			return err
		}
		highest, err := highestBid(tx, itemID)
		if err != nil {
			return err
		}
		if err := decide(item, highest); err != nil {
			return err
		}

		if err := tx.Model(&ItemModel{}).Where("id = ?", itemID).Updates(map[string]any{
			"is_open":  item.IsOpen,
			"owner_id": item.OwnerID,
		}).Error; err != nil {
			return err
		}
		closed = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}
