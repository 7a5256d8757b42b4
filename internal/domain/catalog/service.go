package catalog

import (
	"context"
	"errors"
	"fmt"
)

var ErrInvalidMedicine = errors.New("invalid medicine")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, m *Medicine) error {
	if err := validate(m); err != nil {
		return err
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, name string) (*Medicine, error) {
	return s.repo.Get(ctx, name)
}

func (s *Service) List(ctx context.Context) ([]*Medicine, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, m *Medicine) error {
	if err := validate(m); err != nil {
		return err
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, name string) error {
	return s.repo.Delete(ctx, name)
}

func validate(m *Medicine) error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMedicine)
	}
	if m.IntervalHours < 0 {
		return fmt.Errorf("%w: interval_hours must not be negative", ErrInvalidMedicine)
	}
	return nil
}
