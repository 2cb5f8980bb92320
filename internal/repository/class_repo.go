package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TinaTech-Developers/school-management-system/internal/model"
)

// ClassRepository 班级数据访问接口
type ClassRepository interface {
	Create(ctx context.Context, class *model.Class) error
	GetByID(ctx context.Context, id string) (*model.Class, error)
	List(ctx context.Context) ([]model.Class, error)
	Update(ctx context.Context, class *model.Class) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type classRepo struct {
	db *gorm.DB
}

// NewClassRepo 创建 ClassRepository 实例
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) Create(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *classRepo) GetByID(ctx context.Context, id string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("class_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) List(ctx context.Context) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Order("name ASC").
		Find(&classes).Error
	return classes, err
}

func (r *classRepo) Update(ctx context.Context, class *model.Class) error {
	return r.db.WithContext(ctx).Save(class).Error
}

func (r *classRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Class{}).
		Where("class_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
