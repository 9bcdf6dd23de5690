package catalog

import (
	"context"

	"salonbooking/internal/domain"
)

type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) error
	Update(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Service, error)
	ListActive(ctx context.Context) ([]domain.Service, error)
	ListActiveForStaff(ctx context.Context, staffID int64) ([]domain.Service, error)
	Delete(ctx context.Context, id int64) error
}

type StaffRepository interface {
	Create(ctx context.Context, s *domain.Staff) error
	Update(ctx context.Context, s *domain.Staff) error
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Staff, error)
	ListActive(ctx context.Context) ([]domain.Staff, error)
	ListActiveForService(ctx context.Context, serviceID int64) ([]domain.Staff, error)
	Delete(ctx context.Context, id int64) error
}
