// Package dto defines request and response bodies for the auction HTTP API.
package dto

import (
	"errors"

	"auction_backend/internal/feature/auction/usecase"
)

// ErrMalformedAction is returned when a request body does not select exactly one action.
var ErrMalformedAction = errors.New("exactly one of watchlist_action, bid_place, comment_text, close_auction is required")

// ItemActionRequest is the body of POST /items/:id. Exactly one field must be present.
type ItemActionRequest struct {
	WatchlistAction *string     `json:"watchlist_action"` // "add" or "remove"
	BidPlace        *AmountText `json:"bid_place"`
	CommentText     *string     `json:"comment_text"`
	CloseAuction    *bool       `json:"close_auction"`
}

// ToAction converts the request into the action it selects.
func (r ItemActionRequest) ToAction() (usecase.Action, error) {
	set := 0
	for _, present := range []bool{r.WatchlistAction != nil, r.BidPlace != nil, r.CommentText != nil, r.CloseAuction != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return usecase.Action{}, ErrMalformedAction
	}

	switch {
	case r.WatchlistAction != nil:
		switch *r.WatchlistAction {
		case "add":
			return usecase.AddWatchlist(), nil
		case "remove":
			return usecase.RemoveWatchlist(), nil
		}
		return usecase.Action{}, errors.New(`watchlist_action must be "add" or "remove"`)
	case r.BidPlace != nil:
		return usecase.PlaceBid(r.BidPlace.String()), nil
	case r.CommentText != nil:
		return usecase.AddComment(*r.CommentText), nil
	default:
		if !*r.CloseAuction {
			return usecase.Action{}, errors.New("close_auction must be true")
		}
		return usecase.CloseAuction(), nil
	}
}

// CreateItemRequest is the body of POST /create.
type CreateItemRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	StartingBid AmountText `json:"starting_bid" binding:"required"`
	CategoryID  uint       `json:"category_id" binding:"required"`
	ImageURL    string     `json:"image_url"`
}

// ToListing converts the request into usecase input.
func (r CreateItemRequest) ToListing() usecase.NewListing {
	return usecase.NewListing{
		Title:       r.Title,
		Description: r.Description,
		StartingBid: r.StartingBid.String(),
		CategoryID:  r.CategoryID,
		ImageURL:    r.ImageURL,
	}
}
