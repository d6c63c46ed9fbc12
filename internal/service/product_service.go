package service

import (
	"context"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/pkg/apperror"
	"fashion-chatbot-be/internal/repository/memory"
	"fashion-chatbot-be/internal/repository/specification"
	"fashion-chatbot-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	defaultRecommendationLimit = 5
	defaultSimilarLimit        = 8
)

// IProductService is the catalog adapter. FindProduct backs cart views and
// SearchProducts backs chat replies.
type IProductService interface {
	FindProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	SearchProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)

	GetRecommendations(ctx context.Context, q *dto.ProductListQuery) (*dto.ProductListResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductDetailResponse, error)
	GetSimilarProducts(ctx context.Context, q *dto.ProductListQuery) (*dto.ProductListResponse, error)
}

type productService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.ProductCache
}

func NewProductService(uowFactory unitofwork.RepositoryFactory, cache *memory.ProductCache) IProductService {
	return &productService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *productService) FindProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if s.cache != nil {
		if p, found := s.cache.Get(id); found {
			return p, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(id, product)
	}
	return product, nil
}

func (s *productService) SearchProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ProductRepository().FindAll(ctx,
		specification.MatchesProductFilter{Filter: filter},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func listFilter(q *dto.ProductListQuery, defaultLimit int) entity.ProductFilter {
	filter := entity.ProductFilter{InStockOnly: true, Limit: q.Limit}
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if q.Category != "" {
		filter.Categories = []string{q.Category}
	}
	if q.Style != "" {
		filter.Styles = []string{q.Style}
	}
	return filter
}

func (s *productService) GetRecommendations(ctx context.Context, q *dto.ProductListQuery) (*dto.ProductListResponse, error) {
	products, err := s.SearchProducts(ctx, listFilter(q, defaultRecommendationLimit))
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Success: true, Products: toProductDTOs(products)}, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductDetailResponse, error) {
	product, err := s.FindProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NotFound("Không tìm thấy sản phẩm")
	}
	return &dto.ProductDetailResponse{Success: true, Product: toProductDTO(product)}, nil
}

func (s *productService) GetSimilarProducts(ctx context.Context, q *dto.ProductListQuery) (*dto.ProductListResponse, error) {
	filter := listFilter(q, defaultSimilarLimit)
	if q.Exclude != "" {
		if id, err := uuid.Parse(q.Exclude); err == nil {
			filter.Exclude = &id
		}
	}

	products, err := s.SearchProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{Success: true, Products: toProductDTOs(products)}, nil
}
