package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is a monetary offer on an Item. Bids are append-only.
type Bid struct {
	ID         uint
	ItemID     uint
	BidderID   uint
	BidderName string
	Amount     decimal.Decimal
	CreatedAt  time.Time
}
