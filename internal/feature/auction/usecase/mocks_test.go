package usecase_test

import (
	"context"
	"errors"
	"sort"

	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"
)

// ErrDB is a sentinel shared between mocks and expectations.
var ErrDB = errors.New("database error")

// fakeItemRepository is an in-memory ItemRepository that also serves bids,
// so PlaceBid and Close see the same state as the read methods.
type fakeItemRepository struct {
	items  map[uint]*entity.Item
	bids   []entity.Bid
	nextID uint

	createErr error
	findErr   error
	listErr   error
}

func newFakeItemRepository(items ...entity.Item) *fakeItemRepository {
	f := &fakeItemRepository{items: map[uint]*entity.Item{}}
	for i := range items {
		it := items[i]
		f.items[it.ID] = &it
	}
	return f
}

func (f *fakeItemRepository) Create(ctx context.Context, item *entity.Item) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	item.ID = 100 + f.nextID
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeItemRepository) FindByID(ctx context.Context, id uint) (*entity.Item, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	it, ok := f.items[id]
	if !ok {
		return nil, usecase.ErrItemNotFound
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItemRepository) ListByStatus(ctx context.Context, open bool) ([]entity.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []entity.Item
	for _, it := range f.sorted() {
		if it.IsOpen == open {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItemRepository) ListByCategory(ctx context.Context, categoryID uint) ([]entity.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []entity.Item
	for _, it := range f.sorted() {
		if it.CategoryID != nil && *it.CategoryID == categoryID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItemRepository) sorted() []entity.Item {
	out := make([]entity.Item, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeItemRepository) PlaceBid(ctx context.Context, itemID uint, decide usecase.BidDecision) (*entity.Bid, error) {
	item, err := f.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	highest, _ := f.Highest(ctx, itemID)
	bid, err := decide(item, highest)
	if err != nil {
		return nil, err
	}
	bid.ID = uint(len(f.bids) + 1)
	f.bids = append(f.bids, *bid)
	return bid, nil
}

func (f *fakeItemRepository) Close(ctx context.Context, itemID uint, decide usecase.CloseDecision) (*entity.Item, error) {
	item, err := f.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	highest, _ := f.Highest(ctx, itemID)
	if err := decide(item, highest); err != nil {
		return nil, err
	}
	f.items[itemID] = item
	cp := *item
	return &cp, nil
}

// ListByItem and Highest make the fake a BidRepository too.
func (f *fakeItemRepository) ListByItem(ctx context.Context, itemID uint) ([]entity.Bid, error) {
	var out []entity.Bid
	for _, b := range f.bids {
		if b.ItemID == itemID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeItemRepository) Highest(ctx context.Context, itemID uint) (*entity.Bid, error) {
	bids, _ := f.ListByItem(ctx, itemID)
	if len(bids) == 0 {
		return nil, nil
	}
	return &bids[0], nil
}

// mockCommentRepository records created comments.
type mockCommentRepository struct {
	created   []entity.Comment
	createErr error
}

func (m *mockCommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = uint(len(m.created) + 1)
	m.created = append(m.created, *c)
	return nil
}

func (m *mockCommentRepository) ListByItem(ctx context.Context, itemID uint) ([]entity.Comment, error) {
	var out []entity.Comment
	for _, c := range m.created {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

// fakeWatchlist is a set of (user, item) pairs.
type fakeWatchlist struct {
	set   map[[2]uint]struct{}
	items *fakeItemRepository
	err   error
}

func newFakeWatchlist(items *fakeItemRepository) *fakeWatchlist {
	return &fakeWatchlist{set: map[[2]uint]struct{}{}, items: items}
}

func (w *fakeWatchlist) Add(ctx context.Context, userID, itemID uint) error {
	if w.err != nil {
		return w.err
	}
	w.set[[2]uint{userID, itemID}] = struct{}{}
	return nil
}

func (w *fakeWatchlist) Remove(ctx context.Context, userID, itemID uint) error {
	if w.err != nil {
		return w.err
	}
	delete(w.set, [2]uint{userID, itemID})
	return nil
}

func (w *fakeWatchlist) Contains(ctx context.Context, userID, itemID uint) (bool, error) {
	if w.err != nil {
		return false, w.err
	}
	_, ok := w.set[[2]uint{userID, itemID}]
	return ok, nil
}

func (w *fakeWatchlist) ListItems(ctx context.Context, userID uint) ([]entity.Item, error) {
	if w.err != nil {
		return nil, w.err
	}
	var out []entity.Item
	for _, it := range w.items.sorted() {
		if _, ok := w.set[[2]uint{userID, it.ID}]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

// mockCategoryRepository serves a fixed set of categories.
type mockCategoryRepository struct {
	categories []entity.Category
	ensureErr  error
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	return m.categories, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, usecase.ErrCategoryNotFound
}

func (m *mockCategoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			cp := c
			return &cp, nil
		}
	}
	return nil, usecase.ErrCategoryNotFound
}

func (m *mockCategoryRepository) Ensure(ctx context.Context, name string) (*entity.Category, bool, error) {
	if m.ensureErr != nil {
		return nil, false, m.ensureErr
	}
	if c, err := m.FindByName(ctx, name); err == nil {
		return c, false, nil
	}
	c := entity.Category{ID: uint(len(m.categories) + 1), Name: name}
	m.categories = append(m.categories, c)
	return &c, true, nil
}
