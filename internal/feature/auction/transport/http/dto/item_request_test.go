package dto

import (
	"encoding/json"
	"testing"

	"auction_backend/internal/feature/auction/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemActionRequest_ToAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    usecase.Action
		wantErr bool
	}{
		{name: "watchlist add", body: `{"watchlist_action":"add"}`, want: usecase.AddWatchlist()},
		{name: "watchlist remove", body: `{"watchlist_action":"remove"}`, want: usecase.RemoveWatchlist()},
		{name: "unknown watchlist value", body: `{"watchlist_action":"toggle"}`, wantErr: true},
		{name: "bid as string", body: `{"bid_place":"10.01"}`, want: usecase.PlaceBid("10.01")},
		{name: "bid as number keeps its text", body: `{"bid_place":25.50}`, want: usecase.PlaceBid("25.50")},
		{name: "non-numeric bid is passed through", body: `{"bid_place":"abc"}`, want: usecase.PlaceBid("abc")},
		{name: "empty bid is passed through", body: `{"bid_place":""}`, want: usecase.PlaceBid("")},
		{name: "null bid selects nothing", body: `{"bid_place":null}`, wantErr: true},
		{name: "comment", body: `{"comment_text":"Nice lamp"}`, want: usecase.AddComment("Nice lamp")},
		{name: "empty comment still selects comment", body: `{"comment_text":""}`, want: usecase.AddComment("")},
		{name: "close", body: `{"close_auction":true}`, want: usecase.CloseAuction()},
		{name: "close false", body: `{"close_auction":false}`, wantErr: true},
		{name: "nothing", body: `{}`, wantErr: true},
		{name: "two actions", body: `{"bid_place":"11","comment_text":"hi"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var req ItemActionRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			got, err := req.ToAction()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestItemActionRequest_MalformedSentinel(t *testing.T) {
	t.Parallel()

	_, err := ItemActionRequest{}.ToAction()
	assert.ErrorIs(t, err, ErrMalformedAction)
}

func TestAmountText_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want AmountText
	}{
		{name: "string", body: `"10.01"`, want: "10.01"},
		{name: "number", body: `10.50`, want: "10.50"},
		{name: "escaped string", body: `"1\u0030"`, want: "10"},
		{name: "not a number", body: `"abc"`, want: "abc"},
		{name: "empty", body: `""`, want: ""},
		{name: "bool kept as text", body: `true`, want: "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got AmountText
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateItemRequest_ToListing(t *testing.T) {
	t.Parallel()

	var req CreateItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Lamp","starting_bid":12.5,"category_id":3,"image_url":"https://x/y.png"}`), &req))

	got := req.ToListing()
	assert.Equal(t, usecase.NewListing{Title: "Lamp", StartingBid: "12.5", CategoryID: 3, ImageURL: "https://x/y.png"}, got)

	require.NoError(t, json.Unmarshal([]byte(`{"title":"Lamp","starting_bid":"ten","category_id":3}`), &req))
	assert.Equal(t, "ten", req.ToListing().StartingBid)
}
