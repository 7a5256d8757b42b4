// Package summary aggregates a day's medication and appointment activity
// into the counts the client apps show after login.
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/meditrack/meditrack/internal/domain/identity"
	"github.com/meditrack/meditrack/internal/domain/prescription"
	"github.com/meditrack/meditrack/pkg/datekey"
)

// PatientSummary counts a patient's doses for one date.
type PatientSummary struct {
	Patient string `json:"patient"`
	Date    string `json:"date"`
	Due     int    `json:"due"`
	Taken   int    `json:"taken"`
	Missed  int    `json:"missed"`
}

// DoctorSummary counts a doctor's appointments and the missed doses across
// all assigned patients for one date.
type DoctorSummary struct {
	Doctor       string `json:"doctor"`
	Date         string `json:"date"`
	Appointments int    `json:"appointments"`
	MissedDoses  int    `json:"missed_doses"`
}

// AdministrationSource yields the dose records due on a date.
type AdministrationSource interface {
	ListForPatientOnDate(ctx context.Context, patient, date string) ([]*prescription.Administration, error)
}

// Directory resolves users and doctor/patient assignments.
type Directory interface {
	GetUser(ctx context.Context, username string) (*identity.User, error)
	GetPatient(ctx context.Context, username string) (*identity.Patient, error)
	ListPatientsForDoctor(ctx context.Context, doctor string) ([]*identity.Patient, error)
}

// AppointmentSource yields a doctor's booked slot count for a date.
type AppointmentSource interface {
	CountForDoctorOnDate(ctx context.Context, doctor, date string) (int, error)
}

type Service struct {
	administrations AdministrationSource
	directory       Directory
	appointments    AppointmentSource
	graceMinutes    int
	now             func() time.Time
}

func NewService(administrations AdministrationSource, directory Directory, appointments AppointmentSource, graceMinutes int) *Service {
	return &Service{
		administrations: administrations,
		directory:       directory,
		appointments:    appointments,
		graceMinutes:    graceMinutes,
		now:             time.Now,
	}
}

// SummarizeForPatient counts the patient's doses due on date. A patient with
// no records gets zero counts, not an error.
func (s *Service) SummarizeForPatient(ctx context.Context, patient, date string) (*PatientSummary, error) {
	if _, err := datekey.Parse(date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if _, err := s.directory.GetPatient(ctx, patient); err != nil {
		return nil, fmt.Errorf("looking up patient %q: %w", patient, err)
	}

	records, err := s.administrations.ListForPatientOnDate(ctx, patient, date)
	if err != nil {
		return nil, err
	}

	out := &PatientSummary{Patient: patient, Date: date, Due: len(records)}
	for _, rec := range records {
		if rec.Taken {
			out.Taken++
		} else if s.isMissed(rec, date) {
			out.Missed++
		}
	}
	return out, nil
}

// SummarizeForDoctor counts the doctor's appointments on date and the missed
// doses across every patient assigned to the doctor.
func (s *Service) SummarizeForDoctor(ctx context.Context, doctor, date string) (*DoctorSummary, error) {
	if _, err := datekey.Parse(date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if _, err := s.directory.GetUser(ctx, doctor); err != nil {
		return nil, fmt.Errorf("looking up doctor %q: %w", doctor, err)
	}

	appts, err := s.appointments.CountForDoctorOnDate(ctx, doctor, date)
	if err != nil {
		return nil, err
	}

	out := &DoctorSummary{Doctor: doctor, Date: date, Appointments: appts}

	patients, err := s.directory.ListPatientsForDoctor(ctx, doctor)
	if err != nil {
		return nil, err
	}
	for _, p := range patients {
		records, err := s.administrations.ListForPatientOnDate(ctx, p.Username, date)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if !rec.Taken && s.isMissed(rec, date) {
				out.MissedDoses++
			}
		}
	}
	return out, nil
}

// isMissed applies time-of-day arithmetic on the current wall clock: a dose
// counts as missed only on the day it is due, once more than the grace
// period has passed since its due hour. Exactly the grace period is still
// on time. Doses due on other days never count.
func (s *Service) isMissed(rec *prescription.Administration, date string) bool {
	if rec.Taken || rec.DueDate != date {
		return false
	}
	now := s.now()
	if datekey.Format(now) != date {
		return false
	}
	nowMinutes := now.Hour()*60 + now.Minute()
	dueMinutes := rec.DueHour * 60
	return nowMinutes-dueMinutes > s.graceMinutes
}
