package entity

import "time"

// Comment is a note left on an Item.
// AuthorID is nil when the authoring user no longer exists.
type Comment struct {
	ID         uint
	ItemID     uint
	AuthorID   *uint
	AuthorName string
	Text       string
	Likes      uint
	CreatedAt  time.Time
}
