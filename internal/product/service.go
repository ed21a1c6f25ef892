package product

import (
	"context"
	"errors"

	"shopfront-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context) ([]Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch products", zap.Error(err))
		return nil, err
	}
	return products, nil
}

func (s *service) GetByID(ctx context.Context, id int) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, p Product) (Product, error) {
	if p.Name == "" {
		return Product{}, errors.New("name cannot be empty")
	}
	if p.Price < 0 {
		return Product{}, errors.New("price cannot be negative")
	}
	if p.Stock < 0 {
		return Product{}, errors.New("stock cannot be negative")
	}

	return s.repo.Create(ctx, p)
}
