package usecase

import "fmt"

// ActionKind は商品ページへのPOSTが行う操作の種類です。
type ActionKind int

const (
	ActionAddWatchlist ActionKind = iota + 1
	ActionRemoveWatchlist
	ActionPlaceBid
	ActionAddComment
	ActionCloseAuction
)

// String はログとメトリクスで使う名前を返します。
func (k ActionKind) String() string {
	switch k {
	case ActionAddWatchlist:
		return "watchlist_add"
	case ActionRemoveWatchlist:
		return "watchlist_remove"
	case ActionPlaceBid:
		return "bid"
	case ActionAddComment:
		return "comment"
	case ActionCloseAuction:
		return "close"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action は商品に対する排他的な操作のひとつです。
// Amount は ActionPlaceBid、Text は ActionAddComment の場合のみ設定されます。
type Action struct {
	Kind   ActionKind
	Amount string
	Text   string
}

// AddWatchlist はウォッチリストへ追加する操作を返します。
func AddWatchlist() Action { return Action{Kind: ActionAddWatchlist} }

// RemoveWatchlist はウォッチリストから削除する操作を返します。
func RemoveWatchlist() Action { return Action{Kind: ActionRemoveWatchlist} }

// PlaceBid は入力された金額文字列で入札する操作を返します。
func PlaceBid(amount string) Action { return Action{Kind: ActionPlaceBid, Amount: amount} }

// AddComment はコメントを投稿する操作を返します。
func AddComment(text string) Action { return Action{Kind: ActionAddComment, Text: text} }

// CloseAuction はオークションを終了する操作を返します。
func CloseAuction() Action { return Action{Kind: ActionCloseAuction} }

// Outcome は操作の結果です。操作が無視された場合 Message は空です。
type Outcome struct {
	Message string
}
