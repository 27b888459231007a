package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"auction_backend/internal/feature/auction/domain"
	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/shared/identity"
)

const (
	// MaxTitleLength は商品タイトルの最大文字数です。
	MaxTitleLength = 64
	// MaxDescriptionLength は商品説明の最大文字数です。
	MaxDescriptionLength = 200
)

// NewListing は出品時の入力です。
type NewListing struct {
	Title       string
	Description string
	StartingBid string
	CategoryID  uint
	ImageURL    string
}

// Listing はトップページの内容で、開催中と終了済みの商品です。
type Listing struct {
	Open   []entity.Item
	Closed []entity.Item
}

// listingUsecase は一覧表示、出品、ウォッチリストを実装します。
type listingUsecase struct {
	items      ItemRepository
	categories CategoryRepository
	watchlist  WatchlistRepository
}

// NewListingUsecase はlistingUsecaseの新しいインスタンスを生成します。
func NewListingUsecase(items ItemRepository, categories CategoryRepository, watchlist WatchlistRepository) *listingUsecase {
	return &listingUsecase{items: items, categories: categories, watchlist: watchlist}
}

// Index は開催中と終了済みの商品を返します。
func (u *listingUsecase) Index(ctx context.Context) (*Listing, error) {
	open, err := u.items.ListByStatus(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list open items: %w", err)
	}
	closed, err := u.items.ListByStatus(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list closed items: %w", err)
	}
	return &Listing{Open: open, Closed: closed}, nil
}

// CreateItem は actor を出品者として新しい商品を出品します。
func (u *listingUsecase) CreateItem(ctx context.Context, actor identity.Identity, in NewListing) (*entity.Item, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidListing)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return nil, fmt.Errorf("%w: title exceeds %d characters", ErrInvalidListing, MaxTitleLength)
	}
	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description exceeds %d characters", ErrInvalidListing, MaxDescriptionLength)
	}
	startingBid, err := domain.ParseAmount(in.StartingBid)
	if err != nil {
		return nil, err
	}
	category, err := u.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	image := strings.TrimSpace(in.ImageURL)
	if image == "" {
		image = entity.DefaultImageURL
	} else if !isWebURL(image) {
		return nil, fmt.Errorf("%w: image must be an http(s) URL", ErrInvalidListing)
	}

	categoryID := category.ID
	item := &entity.Item{
		Title:        title,
		Description:  description,
		StartingBid:  startingBid,
		IsOpen:       true,
		CategoryID:   &categoryID,
		CategoryName: category.Name,
		OwnerID:      actor.UserID,
		OwnerName:    actor.Username,
		Image:        image,
	}
	if err := u.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// ListCategories は全カテゴリを返します。
func (u *listingUsecase) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return u.categories.List(ctx)
}

// CategoryItems は名前でカテゴリを取得し、その商品とともに返します。
func (u *listingUsecase) CategoryItems(ctx context.Context, name string) (*entity.Category, []entity.Item, error) {
	category, err := u.categories.FindByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	items, err := u.items.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list items of category %q: %w", name, err)
	}
	return category, items, nil
}

// Watchlist は actor がウォッチしている商品を返します。
func (u *listingUsecase) Watchlist(ctx context.Context, actor identity.Identity) ([]entity.Item, error) {
	if !actor.Authenticated() {
		return nil, ErrUnauthenticated
	}
	return u.watchlist.ListItems(ctx, actor.UserID)
}

// SeedCategories は names のカテゴリを作成し、新規作成した件数を返します。
func (u *listingUsecase) SeedCategories(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		_, ok, err := u.categories.Ensure(ctx, name)
		if err != nil {
			return created, fmt.Errorf("ensure category %q: %w", name, err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
