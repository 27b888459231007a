// Package domain は入札とオークション終了のルールを提供します。
package domain

import "errors"

// ルール違反のエラー。ハンドラーはこれらをメッセージとして利用者に返します。
var (
	// ErrInvalidAmount は金額が未入力、数値でない、または範囲外の場合に返されます。
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrBidTooLow は入札額が現在価格を上回らない場合に返されます。
	ErrBidTooLow = errors.New("bid too low")

	// ErrAuctionClosed は終了済みのオークションに入札した場合に返されます。
	ErrAuctionClosed = errors.New("auction closed")

	// ErrAlreadyClosed は終了済みのオークションを再度終了しようとした場合に返されます。
	ErrAlreadyClosed = errors.New("auction already closed")

	// ErrNotOwner は出品者以外が終了しようとした場合に返されます。
	ErrNotOwner = errors.New("only the owner can close the auction")

	// ErrNoBids は入札の無いオークションを終了しようとした場合に返されます。
	ErrNoBids = errors.New("no bids placed")

	// ErrCommentTooLong は MaxCommentLength を超えるコメントに対して返されます。
	ErrCommentTooLong = errors.New("comment too long")
)
