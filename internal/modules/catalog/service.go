package catalog

import (
	"context"
	"errors"

	"salonbooking/internal/domain"
	"salonbooking/internal/pkg/utils"
	"salonbooking/internal/pkg/validator"
	"salonbooking/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	services ServiceRepository
	staff    StaffRepository
}

func NewService(services ServiceRepository, staff StaffRepository) *Service {
	return &Service{services: services, staff: staff}
}

// ---------- public reads ----------

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.services.ListActive(ctx)
}

func (s *Service) GetServiceBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	svc, err := s.services.GetBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrNotFound
	}
	return svc, nil
}

func (s *Service) ListStaff(ctx context.Context) ([]domain.Staff, error) {
	return s.staff.ListActive(ctx)
}

func (s *Service) GetStaffBySlug(ctx context.Context, slug string) (*domain.Staff, error) {
	st, err := s.staff.GetBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !st.IsActive {
		return nil, ErrNotFound
	}
	return st, nil
}

// ListStaffForService answers "who can perform this service".
func (s *Service) ListStaffForService(ctx context.Context, serviceID int64) ([]domain.Staff, error) {
	return s.staff.ListActiveForService(ctx, serviceID)
}

func (s *Service) ListServicesForStaff(ctx context.Context, staffID int64) ([]domain.Service, error) {
	return s.services.ListActiveForStaff(ctx, staffID)
}

// ---------- admin writes ----------

func (s *Service) CreateService(ctx context.Context, req CreateServiceRequest) (*domain.Service, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, ErrValidation
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}

	svc := &domain.Service{
		Name:             req.Name,
		Slug:             slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		DurationMinutes:  req.DurationMinutes,
		Price:            req.Price,
		IsActive:         true,
		DisplayOrder:     req.DisplayOrder,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return svc, nil
}

func (s *Service) UpdateService(ctx context.Context, id int64, req UpdateServiceRequest) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.ShortDescription != nil {
		svc.ShortDescription = *req.ShortDescription
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, ErrValidation
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrValidation
		}
		svc.Price = *req.Price
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		svc.DisplayOrder = *req.DisplayOrder
	}

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, id int64) error {
	err := s.services.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrInUse):
		return ErrInUse
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	}
	return err
}

func (s *Service) CreateStaff(ctx context.Context, req CreateStaffRequest) (*domain.Staff, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, ErrValidation
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.FirstName + " " + req.LastName)
	}

	st := &domain.Staff{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Slug:         slug,
		Bio:          req.Bio,
		Email:        req.Email,
		Phone:        req.Phone,
		IsActive:     true,
		DisplayOrder: req.DisplayOrder,
	}
	for _, sid := range req.ServiceIDs {
		st.Services = append(st.Services, domain.Service{ID: sid})
	}

	if err := s.staff.Create(ctx, st); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return s.staff.GetByID(ctx, st.ID)
}

func (s *Service) UpdateStaff(ctx context.Context, id int64, req UpdateStaffRequest) (*domain.Staff, error) {
	st, err := s.staff.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		st.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		st.LastName = *req.LastName
	}
	if req.Bio != nil {
		st.Bio = *req.Bio
	}
	if req.Email != nil {
		st.Email = *req.Email
	}
	if req.Phone != nil {
		st.Phone = *req.Phone
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		st.DisplayOrder = *req.DisplayOrder
	}
	if req.ServiceIDs != nil {
		st.Services = nil
		for _, sid := range *req.ServiceIDs {
			st.Services = append(st.Services, domain.Service{ID: sid})
		}
	}

	if err := s.staff.Update(ctx, st); err != nil {
		return nil, err
	}
	return s.staff.GetByID(ctx, st.ID)
}

func (s *Service) DeleteStaff(ctx context.Context, id int64) error {
	err := s.staff.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrInUse):
		return ErrInUse
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	}
	return err
}
