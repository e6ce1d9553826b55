package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

type Order int

const (
	OldestFirst Order = iota
	NewestFirst
)

// Repository persists one document type. Every document is independent:
// there are no cross-document transactions.
type Repository[T any] interface {
	Create(ctx context.Context, v *T) error
	List(ctx context.Context, order Order) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	// First returns the oldest document, or ErrNotFound when the table is empty.
	First(ctx context.Context) (*T, error)
	Save(ctx context.Context, v *T) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

func base(v any) *Model {
	if e, ok := v.(Entity); ok {
		return e.Base()
	}
	return nil
}
