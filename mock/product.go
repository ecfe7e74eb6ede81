package mock

import (
	"context"

	"github.com/fwojciec/prex"
)

var _ prex.ProductService = (*ProductService)(nil)

// ProductService is a mock implementation of prex.ProductService.
type ProductService struct {
	SaveProductFn      func(ctx context.Context, rec *prex.ProductRecord) error
	FindProductByURLFn func(ctx context.Context, url string) (*prex.ProductRecord, error)
	FindProductsFn     func(ctx context.Context, filter prex.ProductFilter) ([]*prex.ProductRecord, error)
	DeleteProductFn    func(ctx context.Context, url string) error
}

func (s *ProductService) SaveProduct(ctx context.Context, rec *prex.ProductRecord) error {
	return s.SaveProductFn(ctx, rec)
}

func (s *ProductService) FindProductByURL(ctx context.Context, url string) (*prex.ProductRecord, error) {
	return s.FindProductByURLFn(ctx, url)
}

func (s *ProductService) FindProducts(ctx context.Context, filter prex.ProductFilter) ([]*prex.ProductRecord, error) {
	return s.FindProductsFn(ctx, filter)
}

func (s *ProductService) DeleteProduct(ctx context.Context, url string) error {
	return s.DeleteProductFn(ctx, url)
}
