package service

import (
	"context"
	"fmt"
	"strings"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/model"
	"isletmeapp/internal/repository"
)

// CatalogService covers the small supporting read models: the product catalog
// used to prefill sale forms and the recent activity feed.
type CatalogService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context) ([]dto.ProductResponse, error)
	RecentActivity(ctx context.Context) ([]dto.ActivityLogResponse, error)
}

type catalogService struct {
	products repository.ProductRepository
	activity repository.ActivityLogRepository
}

func NewCatalogService(products repository.ProductRepository, activity repository.ActivityLogRepository) CatalogService {
	return &catalogService{products: products, activity: activity}
}

func (s *catalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: ürün adı boş olamaz", ErrValidation)
	}
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: ürün fiyatı sıfırdan büyük olmalı", ErrValidation)
	}
	product := &model.Product{Name: name, Price: req.Price}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return &dto.ProductResponse{
		ID:    product.ID.String(),
		Name:  product.Name,
		Price: product.Price,
	}, nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		out[i] = dto.ProductResponse{ID: p.ID.String(), Name: p.Name, Price: p.Price}
	}
	return out, nil
}

func (s *catalogService) RecentActivity(ctx context.Context) ([]dto.ActivityLogResponse, error) {
	logs, err := s.activity.ListRecent(ctx, 20)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityLogResponse, len(logs))
	for i, l := range logs {
		out[i] = dto.ActivityLogResponse{
			ID:        l.ID.String(),
			Actor:     l.Actor,
			Action:    l.Action,
			Details:   l.Details,
			CreatedAt: isoTime(l.CreatedAt),
		}
	}
	return out, nil
}
