package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meditrack/meditrack/pkg/datekey"
)

var ErrInvalidUser = errors.New("invalid user")

var validRoles = map[string]bool{
	"doctor": true, "patient": true, "admin": true,
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) RegisterUser(ctx context.Context, u *User) error {
	if u.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidUser)
	}
	if !validRoles[u.Role] {
		return fmt.Errorf("%w: invalid role %q", ErrInvalidUser, u.Role)
	}
	return s.repo.CreateUser(ctx, u)
}

func (s *Service) GetUser(ctx context.Context, username string) (*User, error) {
	return s.repo.GetUser(ctx, username)
}

func (s *Service) SetPushTarget(ctx context.Context, username string, target PushTarget) error {
	if target.PushToken == "" {
		return fmt.Errorf("%w: push_token is required", ErrInvalidUser)
	}
	return s.repo.SetPushTarget(ctx, username, target)
}

func (s *Service) RegisterPatient(ctx context.Context, p *Patient) error {
	if p.Username == "" {
		return fmt.Errorf("%w: username is required", ErrInvalidUser)
	}
	if p.Doctor == "" {
		return fmt.Errorf("%w: doctor is required", ErrInvalidUser)
	}
	if _, err := s.repo.GetUser(ctx, p.Doctor); err != nil {
		return fmt.Errorf("looking up doctor %q: %w", p.Doctor, err)
	}
	if p.CreatedAt == "" {
		p.CreatedAt = datekey.Format(s.now())
	}
	return s.repo.CreatePatient(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, username string) (*Patient, error) {
	return s.repo.GetPatient(ctx, username)
}

func (s *Service) ListPatientsForDoctor(ctx context.Context, doctor string) ([]*Patient, error) {
	return s.repo.ListPatientsForDoctor(ctx, doctor)
}
