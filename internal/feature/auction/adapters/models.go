// Package adapters はauctionフィーチャーのGORMリポジトリ実装を提供します。
package adapters

import (
	"time"

	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/domain/entity"
	authentity "auction_backend/internal/feature/auth/domain/entity"
)

// CategoryModel は categories テーブルのGORMモデルです。
type CategoryModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:64;not null;uniqueIndex"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// ItemModel は items テーブルのGORMモデルです。
// 金額の列はセント単位の整数で保持します。
type ItemModel struct {
	ID               uint           `gorm:"primaryKey"`
	Title            string         `gorm:"size:64;not null"`
	Description      string         `gorm:"size:200;not null;default:''"`
	StartingBidCents int64          `gorm:"not null;check:chk_items_starting_bid,starting_bid_cents >= 0"`
	IsOpen           bool           `gorm:"not null;index"`
	CategoryID       *uint          `gorm:"index"`
	Category         *CategoryModel `gorm:"constraint:OnDelete:SET NULL"`
	OwnerID          uint           `gorm:"not null;index"`
	Image            string         `gorm:"size:512;not null"`
	CreatedAt        time.Time      `gorm:"not null;index"`
}

func (ItemModel) TableName() string {
	return "items"
}

// BidModel は bids テーブルのGORMモデルです。
type BidModel struct {
	ID          uint       `gorm:"primaryKey"`
	ItemID      uint       `gorm:"not null;index:idx_bids_item_amount,priority:1"`
	Item        *ItemModel `gorm:"constraint:OnDelete:CASCADE"`
	BidderID    uint       `gorm:"not null;index"`
	AmountCents int64      `gorm:"not null;index:idx_bids_item_amount,priority:2;check:chk_bids_amount,amount_cents >= 0"`
	CreatedAt   time.Time  `gorm:"not null"`
}

func (BidModel) TableName() string {
	return "bids"
}

// CommentModel は comments テーブルのGORMモデルです。
// 投稿者が削除されてもコメントは残り、author_id が NULL になります。
type CommentModel struct {
	ID        uint             `gorm:"primaryKey"`
	ItemID    uint             `gorm:"not null;index"`
	Item      *ItemModel       `gorm:"constraint:OnDelete:CASCADE"`
	AuthorID  *uint            `gorm:"index"`
	Author    *authentity.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	Text      string           `gorm:"size:200;not null"`
	Likes     uint             `gorm:"not null;default:0"`
	CreatedAt time.Time        `gorm:"not null"`
}

func (CommentModel) TableName() string {
	return "comments"
}

// WatchlistModel は (user, item) の組を1件表します。
type WatchlistModel struct {
	UserID    uint       `gorm:"primaryKey;autoIncrement:false"`
	ItemID    uint       `gorm:"primaryKey;autoIncrement:false;index"`
	Item      *ItemModel `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (WatchlistModel) TableName() string {
	return "watchlist"
}

// Models はAutoMigrate用にauctionフィーチャーの全テーブルを返します。
// 参照される側を先に並べます。users テーブルは作成済みである必要があります。
func Models() []any {
	return []any{&CategoryModel{}, &ItemModel{}, &BidModel{}, &CommentModel{}, &WatchlistModel{}}
}

// itemRow は出品者のユーザー名とカテゴリ名を結合した商品行です。
type itemRow struct {
	ID               uint
	Title            string
	Description      string
	StartingBidCents int64
	IsOpen           bool
	CategoryID       *uint
	CategoryName     *string
	OwnerID          uint
	OwnerName        *string
	Image            string
	CreatedAt        time.Time
}

func (r itemRow) toEntity() entity.Item {
	return entity.Item{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		StartingBid:  domain.FromCents(r.StartingBidCents),
		IsOpen:       r.IsOpen,
		CategoryID:   r.CategoryID,
		CategoryName: deref(r.CategoryName),
		OwnerID:      r.OwnerID,
		OwnerName:    deref(r.OwnerName),
		Image:        r.Image,
		CreatedAt:    r.CreatedAt,
	}
}

// bidRow は入札者のユーザー名を結合した入札行です。
type bidRow struct {
	ID          uint
	ItemID      uint
	BidderID    uint
	BidderName  *string
	AmountCents int64
	CreatedAt   time.Time
}

func (r bidRow) toEntity() entity.Bid {
	return entity.Bid{
		ID:         r.ID,
		ItemID:     r.ItemID,
		BidderID:   r.BidderID,
		BidderName: deref(r.BidderName),
		Amount:     domain.FromCents(r.AmountCents),
		CreatedAt:  r.CreatedAt,
	}
}

// commentRow は投稿者のユーザー名を結合したコメント行です。
type commentRow struct {
	ID         uint
	ItemID     uint
	AuthorID   *uint
	AuthorName *string
	Text       string
	Likes      uint
	CreatedAt  time.Time
}

func (r commentRow) toEntity() entity.Comment {
	return entity.Comment{
		ID:         r.ID,
		ItemID:     r.ItemID,
		AuthorID:   r.AuthorID,
		AuthorName: deref(r.AuthorName),
		Text:       r.Text,
		Likes:      r.Likes,
		CreatedAt:  r.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
