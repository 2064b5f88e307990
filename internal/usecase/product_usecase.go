package usecase

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/rugue/FullStackEcommerce/internal/domain/model"
	repo "github.com/rugue/FullStackEcommerce/internal/repository"
)

// ProductUsecase is plain single-table CRUD. No cross-entity logic lives
// here; order validation reads the catalog through its own transaction.
type ProductUsecase struct {
	products repo.ProductRepository
	logger   *log.Entry
}

func NewProductUsecase(products repo.ProductRepository, logger *log.Entry) *ProductUsecase {
	if logger == nil {
		logger = log.New().WithField("component", "product-usecase")
	}
	return &ProductUsecase{products: products, logger: logger}
}

type CreateProductInput struct {
	Name        string
	Description string
	Image       string
	Price       float64
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Image       *string
	Price       *float64
}

func (u *ProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	items, err := u.products.List(ctx)
	if err != nil {
		return nil, storeError(u.logger, "product list", err)
	}
	if items == nil {
		items = []model.Product{}
	}
	return items, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := u.products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, storeError(u.logger, "product read", err)
	}
	return p, nil
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	if in.Name == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be non-negative")
	}

	p := model.Product{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		Price:       in.Price,
	}
	id, err := u.products.Create(ctx, p)
	if err != nil {
		return model.Product{}, storeError(u.logger, "product insert", err)
	}
	p.ID = id
	return p, nil
}

func (u *ProductUsecase) Update(ctx context.Context, productID int64, in UpdateProductInput) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Price != nil && *in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be non-negative")
	}

	err := u.products.Update(ctx, productID, repo.ProductUpdate{
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		Price:       in.Price,
	})
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, storeError(u.logger, "product update", err)
	}

	return u.Get(ctx, productID)
}

func (u *ProductUsecase) Delete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.products.Delete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return storeError(u.logger, "product delete", err)
	}
	return nil
}
