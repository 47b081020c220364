package services

import (
	"context"
	"strings"

	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/models"
	"github.com/nassimidr/Emall/repository"
)

// SearchResult is the merged response of the three collection scans.
type SearchResult struct {
	Malls    []models.Mall    `json:"malls"`
	Shops    []models.Shop    `json:"shops"`
	Products []models.Product `json:"products"`
}

// SearchService fans a free-text query out across malls, shops and
// products. No ranking or pagination; store order is returned as-is.
type SearchService interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
}

type searchService struct {
	malls    repository.MallRepository
	shops    repository.ShopRepository
	products repository.ProductRepository
}

func NewSearchService(malls repository.MallRepository, shops repository.ShopRepository, products repository.ProductRepository) SearchService {
	return &searchService{malls: malls, shops: shops, products: products}
}

func (s *searchService) Search(ctx context.Context, query string) (*SearchResult, error) {
	result := &SearchResult{
		Malls:    []models.Mall{},
		Shops:    []models.Shop{},
		Products: []models.Product{},
	}

	// An empty pattern would match everything; answer with nothing instead.
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return result, nil
	}

	malls, err := s.malls.Search(ctx, query)
	if err != nil {
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	result.Malls = malls

	shops, err := s.shops.Search(ctx, query)
	if err != nil {
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	result.Shops = shops

	products, err := s.products.Search(ctx, query)
	if err != nil {
		return nil, apperrors.ErrServerFault.Wrap(err)
	}
	result.Products = products

	return result, nil
}
