package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"gorm.io/gorm"
)

type GormRepository[T any] struct {
	db *gorm.DB
}

func NewGorm[T any](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db}
}

func (r *GormRepository[T]) Create(ctx context.Context, v *T) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *GormRepository[T]) List(ctx context.Context, order Order) ([]T, error) {
	out := make([]T, 0)
	q := r.db.WithContext(ctx)
	if order == NewestFirst {
		q = q.Order("created_at DESC")
	} else {
		q = q.Order("created_at ASC")
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepository[T]) Get(ctx context.Context, id string) (*T, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var out T
	if err := r.db.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (r *GormRepository[T]) First(ctx context.Context) (*T, error) {
	var out T
	if err := r.db.WithContext(ctx).Order("created_at ASC").Take(&out).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (r *GormRepository[T]) Save(ctx context.Context, v *T) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *GormRepository[T]) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error
	return n, err
}

// validID keeps malformed ids away from the uuid column, where postgres
// would reject them with a cast error instead of an empty result.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
