package dto

import (
	"time"

	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"

	"github.com/shopspring/decimal"
)

// ItemSummary is an item as shown in lists.
type ItemSummary struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartingBid string    `json:"starting_bid"`
	IsOpen      bool      `json:"is_open"`
	Category    string    `json:"category,omitempty"`
	Owner       string    `json:"owner"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

// BidResponse is one bid on the item page.
type BidResponse struct {
	ID        uint      `json:"id"`
	Bidder    string    `json:"bidder"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentResponse is one comment on the item page.
type CommentResponse struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Likes     uint      `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemViewResponse is the item page. Message carries the outcome of a POST.
type ItemViewResponse struct {
	Item     ItemSummary       `json:"item"`
	Price    string            `json:"price"`
	Bids     []BidResponse     `json:"bids"`
	Comments []CommentResponse `json:"comments"`
	Watching bool              `json:"watching"`
	Message  string            `json:"message,omitempty"`
}

// PriceResponse is the body of GET /items/:id/price.
type PriceResponse struct {
	ItemID uint   `json:"item_id"`
	Price  string `json:"price"`
}

// IndexResponse is the front page.
type IndexResponse struct {
	Open   []ItemSummary `json:"open"`
	Closed []ItemSummary `json:"closed"`
}

// CategoryResponse is a category choice.
type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CategoryItemsResponse is a category page.
type CategoryItemsResponse struct {
	Category CategoryResponse `json:"category"`
	Items    []ItemSummary    `json:"items"`
}

// CreateFormResponse lists the categories a new item can be filed under.
type CreateFormResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// NewItemSummary converts an item.
func NewItemSummary(it entity.Item) ItemSummary {
	return ItemSummary{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		StartingBid: domain.FormatAmount(it.StartingBid),
		IsOpen:      it.IsOpen,
		Category:    it.CategoryName,
		Owner:       it.OwnerName,
		Image:       it.Image,
		CreatedAt:   it.CreatedAt,
	}
}

// NewItemSummaries converts items, never returning nil.
func NewItemSummaries(items []entity.Item) []ItemSummary {
	out := make([]ItemSummary, 0, len(items))
	for _, it := range items {
		out = append(out, NewItemSummary(it))
	}
	return out
}

// NewCategories converts categories, never returning nil.
func NewCategories(categories []entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out
}

// NewItemView converts the item page.
func NewItemView(v *usecase.ItemView, message string) ItemViewResponse {
	bids := make([]BidResponse, 0, len(v.Bids))
	for _, b := range v.Bids {
		bids = append(bids, BidResponse{ID: b.ID, Bidder: b.BidderName, Amount: domain.FormatAmount(b.Amount), CreatedAt: b.CreatedAt})
	}
	comments := make([]CommentResponse, 0, len(v.Comments))
	for _, c := range v.Comments {
		comments = append(comments, CommentResponse{ID: c.ID, Author: c.AuthorName, Text: c.Text, Likes: c.Likes, CreatedAt: c.CreatedAt})
	}
	return ItemViewResponse{
		Item:     NewItemSummary(v.Item),
		Price:    domain.FormatAmount(v.Price),
		Bids:     bids,
		Comments: comments,
		Watching: v.Watching,
		Message:  message,
	}
}

// NewPrice converts a current price.
func NewPrice(itemID uint, price decimal.Decimal) PriceResponse {
	return PriceResponse{ItemID: itemID, Price: domain.FormatAmount(price)}
}
