// Package entity defines the domain entities for the auction feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultImageURL is used when a listing is created without an image.
const DefaultImageURL = "https://images.vexels.com/media/users/3/145641/isolated/preview/30bc99162bca69bdbd27451ceeef8848-earth-stone-illustration.png"

// Item represents an auction listing.
// OwnerID changes exactly once, when the auction is closed.
type Item struct {
	ID           uint
	Title        string
	Description  string
	StartingBid  decimal.Decimal
	IsOpen       bool
	CategoryID   *uint
	CategoryName string
	OwnerID      uint
	OwnerName    string
	Image        string
	CreatedAt    time.Time
}
