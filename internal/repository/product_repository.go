package repository

import (
	"context"

	"github.com/rugue/FullStackEcommerce/internal/domain/model"
)

// ProductUpdate carries the partial-update fields; nil means "leave as is".
type ProductUpdate struct {
	Name        *string
	Description *string
	Image       *string
	Price       *float64
}

type ProductRepository interface {
	Create(ctx context.Context, product model.Product) (int64, error)
	FindByID(ctx context.Context, productID int64) (model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, productID int64, upd ProductUpdate) error
	Delete(ctx context.Context, productID int64) error

	// ExistingIDs returns which of the given product ids exist in the catalog.
	// Duplicate input ids must not produce duplicate output ids.
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
