package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
	"github.com/99minutos/admin-dashboard/internal/pkg/metrics"
)

type productService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewProductService returns the super_admin product use cases.
func NewProductService(repo ports.ProductRepository, log zerolog.Logger) ports.ProductAdminService {
	return &productService{repo: repo, log: log, now: time.Now}
}

func (s *productService) List(ctx context.Context, page ports.Page) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx, normalizePage(page))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *productService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if err := checkProduct(in); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	now := s.now().UTC()
	p := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Image:       imageOf(in.Image),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.recordImage(in.Image)
	metrics.MutationsTotal.WithLabelValues("products", "create").Inc()
	s.log.Info().Int64("product_id", created.ProductID).Str("name", created.Name).Msg("product created")
	return created, nil
}

// Update replaces the fields of a product. The stored image is kept unless a
// new one is uploaded.
func (s *productService) Update(ctx context.Context, id int64, in ports.ProductInput) (*domain.Product, error) {
	if err := checkProduct(in); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	if in.Image != nil {
		p.Image = imageOf(in.Image)
	}
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.recordImage(in.Image)
	metrics.MutationsTotal.WithLabelValues("products", "update").Inc()
	s.log.Info().Int64("product_id", id).Msg("product updated")
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	metrics.MutationsTotal.WithLabelValues("products", "delete").Inc()
	s.log.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

func (s *productService) recordImage(img *ports.ProductImageInput) {
	if img != nil {
		metrics.ImageBytesTotal.Add(float64(img.Size))
	}
}

func checkProduct(in ports.ProductInput) error {
	if in.Price < 0 {
		return fmt.Errorf("price must not be negative: %w", domain.ErrValidation)
	}
	if in.Stock < 0 {
		return fmt.Errorf("stock must not be negative: %w", domain.ErrValidation)
	}
	return nil
}

func imageOf(in *ports.ProductImageInput) *domain.ProductImage {
	if in == nil {
		return nil
	}
	return &domain.ProductImage{FileName: in.FileName, Size: in.Size}
}
