package adapters

import (
	"testing"
	"time"

	"auction_backend/internal/feature/auction/domain"
	authentity "auction_backend/internal/feature/auth/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB prepares an in-memory SQLite database for testing.
// The pool is pinned to one connection so every query sees the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// comments reference users, which belong to the auth feature
	require.NoError(t, db.AutoMigrate(&authentity.User{}), "failed to migrate users")
	require.NoError(t, db.AutoMigrate(Models()...), "failed to migrate tables")

	return db
}

func seedUser(t *testing.T, db *gorm.DB, id uint, username string) {
	t.Helper()
	require.NoError(t, db.Exec("INSERT INTO users (id, username, password) VALUES (?, ?, '')", id, username).Error)
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *CategoryModel {
	t.Helper()
	m := &CategoryModel{Name: name}
	require.NoError(t, db.Create(m).Error, "failed to seed category")
	return m
}

func seedItem(t *testing.T, db *gorm.DB, title string, ownerID uint, startingBid string, open bool, categoryID *uint, createdAt time.Time) *ItemModel {
	t.Helper()
	m := &ItemModel{
		Title:            title,
		StartingBidCents: domain.ToCents(decimal.RequireFromString(startingBid)),
		IsOpen:           open,
		CategoryID:       categoryID,
		OwnerID:          ownerID,
		Image:            "https://example.com/x.png",
		CreatedAt:        createdAt,
	}
	require.NoError(t, db.Create(m).Error, "failed to seed item")
	return m
}

func seedBid(t *testing.T, db *gorm.DB, itemID, bidderID uint, amount string, createdAt time.Time) *BidModel {
	t.Helper()
	m := &BidModel{
		ItemID:      itemID,
		BidderID:    bidderID,
		AmountCents: domain.ToCents(decimal.RequireFromString(amount)),
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(m).Error, "failed to seed bid")
	return m
}
