package usecase

import (
	"context"

	"auction_backend/internal/feature/auction/domain/entity"
)

// BidDecision はロック中の商品と現在の最高入札（無ければ nil）を見て、
// 追加する入札か、中断するためのエラーを返します。
type BidDecision func(item *entity.Item, highest *entity.Bid) (*entity.Bid, error)

// CloseDecision はロック中の商品を終了状態に変更するか、中断するためのエラーを返します。
type CloseDecision func(item *entity.Item, highest *entity.Bid) error

// ItemRepository は商品の永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ItemRepository interface {
	// Create は新しい商品を保存し、IDを設定します。
	Create(ctx context.Context, item *entity.Item) error

	// FindByID は商品が存在しない場合 ErrItemNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.Item, error)

	// ListByStatus は開催中または終了済みの商品を新しい順に返します。
	ListByStatus(ctx context.Context, open bool) ([]entity.Item, error)

	// ListByCategory はカテゴリの商品を新しい順に返します。
	ListByCategory(ctx context.Context, categoryID uint) ([]entity.Item, error)

	// PlaceBid は商品行のロック中に decide を実行し、
	// 返された入札を同じトランザクションで追加します。
	PlaceBid(ctx context.Context, itemID uint, decide BidDecision) (*entity.Bid, error)

	// Close は商品行のロック中に decide を実行し、
	// 開催状態と所有者を同じトランザクションで保存します。
	Close(ctx context.Context, itemID uint, decide CloseDecision) (*entity.Item, error)
}

// BidRepository は商品の入札を読み取ります。
type BidRepository interface {
	// ListByItem は商品の入札を金額の高い順に返します。
	ListByItem(ctx context.Context, itemID uint) ([]entity.Bid, error)

	// Highest は落札となる入札を返します。入札が無ければ nil です。
	Highest(ctx context.Context, itemID uint) (*entity.Bid, error)
}

// CommentRepository はコメントを保存します。
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	ListByItem(ctx context.Context, itemID uint) ([]entity.Comment, error)
}

// WatchlistRepository はユーザーごとのウォッチリストを保存します。
type WatchlistRepository interface {
	// Add は冪等です。
	Add(ctx context.Context, userID, itemID uint) error
	// Remove は冪等です。
	Remove(ctx context.Context, userID, itemID uint) error
	Contains(ctx context.Context, userID, itemID uint) (bool, error)
	ListItems(ctx context.Context, userID uint) ([]entity.Item, error)
}

// CategoryRepository はカテゴリの永続化レイヤーを抽象化します。
type CategoryRepository interface {
	// List は全カテゴリを名前順に返します。
	List(ctx context.Context) ([]entity.Category, error)

	// FindByID はカテゴリが存在しない場合 ErrCategoryNotFound を返します。
	FindByID(ctx context.Context, id uint) (*entity.Category, error)

	// FindByName はカテゴリが存在しない場合 ErrCategoryNotFound を返します。
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// Ensure は同名のカテゴリが無ければ作成し、
	// 作成したかどうかを返します。
	Ensure(ctx context.Context, name string) (*entity.Category, bool, error)
}
