// Package usecase はauctionフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrItemNotFound はIDに該当する商品が無い場合に返されます。
	ErrItemNotFound = errors.New("item not found")

	// ErrCategoryNotFound はIDまたは名前に該当するカテゴリが無い場合に返されます。
	ErrCategoryNotFound = errors.New("category not found")

	// ErrUnauthenticated はログインが必要な操作を未ログインで行った場合に返されます。
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidListing は出品内容の検証に失敗した場合に返されます。
	ErrInvalidListing = errors.New("invalid listing")

	// ErrInvalidAction は未知の操作に対して返されます。
	ErrInvalidAction = errors.New("invalid action")
)
