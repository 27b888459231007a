package adapters

import (
	"context"

	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"

	"gorm.io/gorm"
)

type commentGorm struct {
	db *gorm.DB
}

var _ usecase.CommentRepository = (*commentGorm)(nil)

// NewCommentRepository はcommentGormの新しいインスタンスを生成します。
func NewCommentRepository(db *gorm.DB) *commentGorm {
	return &commentGorm{db: db}
}

func (r *commentGorm) Create(ctx context.Context, c *entity.Comment) error {
	m := CommentModel{
		ItemID:    c.ItemID,
		AuthorID:  c.AuthorID,
		Text:      c.Text,
		Likes:     c.Likes,
		CreatedAt: c.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	return nil
}

// ListByItem はコメントを古い順に返します。
func (r *commentGorm) ListByItem(ctx context.Context, itemID uint) ([]entity.Comment, error) {
	var rows []commentRow
	err := r.db.WithContext(ctx).Table("comments").
		Select("comments.*, users.username AS author_name").
		Joins("LEFT JOIN users ON users.id = comments.author_id").
		Where("comments.item_id = ?", itemID).
		Order("comments.created_at ASC, comments.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Comment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}
