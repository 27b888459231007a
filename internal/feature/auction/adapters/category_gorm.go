package adapters

import (
	"context"
	"errors"

	"auction_backend/internal/feature/auction/domain/entity"
	"auction_backend/internal/feature/auction/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type categoryGorm struct {
	db *gorm.DB
}

var _ usecase.CategoryRepository = (*categoryGorm)(nil)

// NewCategoryRepository はcategoryGormの新しいインスタンスを生成します。
func NewCategoryRepository(db *gorm.DB) *categoryGorm {
	return &categoryGorm{db: db}
}

func (r *categoryGorm) List(ctx context.Context) ([]entity.Category, error) {
	var ms []CategoryModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Category, 0, len(ms))
	for _, m := range ms {
		out = append(out, entity.Category{ID: m.ID, Name: m.Name})
	}
	return out, nil
}

func (r *categoryGorm) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	return r.find(ctx, "id = ?", id)
}

func (r *categoryGorm) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.find(ctx, "name = ?", name)
}

func (r *categoryGorm) find(ctx context.Context, query string, arg any) (*entity.Category, error) {
	var m CategoryModel
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCategoryNotFound
		}
		return nil, err
	}
	return &entity.Category{ID: m.ID, Name: m.Name}, nil
}

// Ensure は name のカテゴリが無ければ作成します。
// 同時に作成された場合は先に挿入された行を読み直して返します。
func (r *categoryGorm) Ensure(ctx context.Context, name string) (*entity.Category, bool, error) {
	m := CategoryModel{Name: name}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&m)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return &entity.Category{ID: m.ID, Name: m.Name}, true, nil
	}
	existing, err := r.FindByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
