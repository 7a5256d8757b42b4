package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/meditrack/meditrack/pkg/datekey"
)

var ErrInvalidAppointment = errors.New("invalid appointment")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.Doctor == "" || a.Patient == "" {
		return fmt.Errorf("%w: doctor and patient are required", ErrInvalidAppointment)
	}
	if _, err := datekey.Parse(a.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAppointment, err)
	}
	if _, _, err := parseSlot(a.Time); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAppointment, err)
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) ListForDoctorOnDate(ctx context.Context, doctor, date string) ([]*Appointment, error) {
	if _, err := datekey.Parse(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAppointment, err)
	}
	return s.repo.ListForDoctorOnDate(ctx, doctor, date)
}

// CountForDoctorOnDate feeds the doctor's daily summary.
func (s *Service) CountForDoctorOnDate(ctx context.Context, doctor, date string) (int, error) {
	items, err := s.ListForDoctorOnDate(ctx, doctor, date)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *Service) Cancel(ctx context.Context, a *Appointment) error {
	return s.repo.Delete(ctx, a)
}
