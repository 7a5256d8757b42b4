package prescription

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/meditrack/meditrack/pkg/datekey"
)

// TakenHook is invoked after a dose is marked taken, with the record's key.
// The reminder dispatcher registers one to cancel the pending reminder.
type TakenHook func(key string)

type Service struct {
	repo   Repository
	logger zerolog.Logger
	now    func() time.Time
	hook   TakenHook
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "prescription").Logger(),
		now:    time.Now,
	}
}

// SetTakenHook attaches an optional hook called when a dose flips to taken.
func (s *Service) SetTakenHook(hook TakenHook) {
	s.hook = hook
}

// CreateRequest is the payload a doctor submits when prescribing.
type CreateRequest struct {
	Medicine      string  `json:"medicine"`
	TotalDoses    int     `json:"total_doses"`
	IntervalHours float64 `json:"interval_hours"`
}

// Create validates the request, expands the schedule from the save moment
// and persists the prescription together with all of its administration
// records. Nothing is persisted when validation or the batch write fails.
func (s *Service) Create(ctx context.Context, patient string, req CreateRequest) (*Prescription, error) {
	if req.Medicine == "" {
		return nil, fmt.Errorf("%w: medicine is required", ErrInvalidPrescription)
	}

	start := s.now()
	records, err := Expand(patient, req.Medicine, req.TotalDoses, req.IntervalHours, start)
	if err != nil {
		return nil, err
	}

	p := &Prescription{
		Patient:       patient,
		Medicine:      req.Medicine,
		TotalDoses:    req.TotalDoses,
		IntervalHours: req.IntervalHours,
		StartDate:     records[0].DueDate,
		EndDate:       records[len(records)-1].DueDate,
		AddedDate:     datekey.Format(start),
	}

	if err := s.repo.CreatePrescription(ctx, p); err != nil {
		return nil, err
	}
	if err := s.repo.CreateBatch(ctx, records); err != nil {
		// Roll back the prescription document so a failed course leaves
		// no trace.
		if delErr := s.repo.DeletePrescription(ctx, patient, req.Medicine); delErr != nil {
			s.logger.Error().Err(delErr).
				Str("patient", patient).
				Str("medicine", req.Medicine).
				Msg("rolling back prescription after failed batch")
		}
		return nil, err
	}

	s.logger.Info().
		Str("patient", patient).
		Str("medicine", req.Medicine).
		Int("doses", len(records)).
		Msg("prescription created")
	return p, nil
}

func (s *Service) List(ctx context.Context, patient string) ([]*Prescription, error) {
	return s.repo.ListPrescriptions(ctx, patient)
}

func (s *Service) Get(ctx context.Context, patient, medicine string) (*Prescription, error) {
	return s.repo.GetPrescription(ctx, patient, medicine)
}

// MarkTaken flips a dose's taken flag. Marking an already-taken dose taken
// again is a no-op that still succeeds.
func (s *Service) MarkTaken(ctx context.Context, patient, medicine string, index int, taken bool) (*Administration, error) {
	rec, err := s.repo.MarkTaken(ctx, patient, medicine, index, taken)
	if err != nil {
		return nil, err
	}
	if taken && s.hook != nil {
		s.hook(rec.Key())
	}
	return rec, nil
}

func (s *Service) GetAdministration(ctx context.Context, patient, medicine string, index int) (*Administration, error) {
	return s.repo.GetAdministration(ctx, patient, medicine, index)
}

func (s *Service) ListForMedicine(ctx context.Context, patient, medicine string) ([]*Administration, error) {
	return s.repo.ListForMedicine(ctx, patient, medicine)
}

// DaySheet returns every administration due for the patient on the given
// date key, ordered by hour.
func (s *Service) DaySheet(ctx context.Context, patient, date string) ([]*Administration, error) {
	if _, err := datekey.Parse(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrescription, err)
	}
	return s.repo.ListForPatientOnDate(ctx, patient, date)
}

// ListForPatientOnDate is DaySheet without the date validation, for callers
// that build the date key themselves.
func (s *Service) ListForPatientOnDate(ctx context.Context, patient, date string) ([]*Administration, error) {
	return s.repo.ListForPatientOnDate(ctx, patient, date)
}
