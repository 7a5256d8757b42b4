// Package reminder schedules dose reminders and sends the welcome summaries
// shown after login. Every notification is fire-and-forget: the action that
// triggered it succeeds even when delivery fails.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/meditrack/meditrack/internal/domain/identity"
	"github.com/meditrack/meditrack/internal/domain/prescription"
	"github.com/meditrack/meditrack/internal/domain/summary"
	"github.com/meditrack/meditrack/internal/platform/push"
	"github.com/meditrack/meditrack/internal/platform/timer"
	"github.com/meditrack/meditrack/pkg/datekey"
)

// AdministrationSource yields dose records; the dispatcher re-reads the dose
// by key when a timer fires so one taken in the meantime is not announced.
// The point lookup matters: a rolled-over reminder fires on the day after the
// dose's due date, when a date-keyed listing would no longer find it.
type AdministrationSource interface {
	ListForPatientOnDate(ctx context.Context, patient, date string) ([]*prescription.Administration, error)
	GetAdministration(ctx context.Context, patient, medicine string, index int) (*prescription.Administration, error)
}

// Directory resolves the push target of a user.
type Directory interface {
	GetUser(ctx context.Context, username string) (*identity.User, error)
}

// SummarySource feeds the welcome messages.
type SummarySource interface {
	SummarizeForPatient(ctx context.Context, patient, date string) (*summary.PatientSummary, error)
	SummarizeForDoctor(ctx context.Context, doctor, date string) (*summary.DoctorSummary, error)
}

type Dispatcher struct {
	sink            push.Sink
	timers          *timer.Registry
	administrations AdministrationSource
	directory       Directory
	summaries       SummarySource
	logger          zerolog.Logger
	now             func() time.Time
}

func NewDispatcher(
	sink push.Sink,
	timers *timer.Registry,
	administrations AdministrationSource,
	directory Directory,
	summaries SummarySource,
	logger zerolog.Logger,
) *Dispatcher {
	return &Dispatcher{
		sink:            sink,
		timers:          timers,
		administrations: administrations,
		directory:       directory,
		summaries:       summaries,
		logger:          logger.With().Str("component", "reminder").Logger(),
		now:             time.Now,
	}
}

// ScheduleRemindersForToday arms one timer per dose the patient still has
// pending today. A dose whose hour has already passed is rescheduled for the
// same time tomorrow. It returns the number of timers armed.
func (d *Dispatcher) ScheduleRemindersForToday(ctx context.Context, patient string) (int, error) {
	now := d.now()
	today := datekey.Format(now)

	records, err := d.administrations.ListForPatientOnDate(ctx, patient, today)
	if err != nil {
		return 0, fmt.Errorf("listing doses for %s on %s: %w", patient, today, err)
	}

	scheduled := 0
	for _, rec := range records {
		if rec.Taken {
			continue
		}
		due := time.Date(now.Year(), now.Month(), now.Day(), rec.DueHour, 0, 0, 0, now.Location())
		if !due.After(now) {
			due = due.AddDate(0, 0, 1)
		}
		rec := rec
		d.timers.Schedule(rec.Key(), due.Sub(now), func() {
			d.fire(rec.Patient, rec.Medicine, rec.Index)
		})
		scheduled++
	}

	d.logger.Info().Str("patient", patient).Int("scheduled", scheduled).Msg("reminders scheduled")
	return scheduled, nil
}

// CancelForDose drops the pending reminder for an administration key. Wired
// as the prescription service's taken hook.
func (d *Dispatcher) CancelForDose(key string) {
	if d.timers.Cancel(key) {
		d.logger.Debug().Str("dose", key).Msg("reminder cancelled")
	}
}

// StopAll cancels every pending reminder. Used on shutdown.
func (d *Dispatcher) StopAll() {
	d.timers.StopAll()
}

// fire runs when a reminder timer elapses. It re-reads the store and skips
// the notification when the dose has been taken since scheduling.
func (d *Dispatcher) fire(patient, medicine string, index int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rec, err := d.administrations.GetAdministration(ctx, patient, medicine, index)
	if err != nil {
		d.logger.Error().Err(err).Str("patient", patient).Str("medicine", medicine).Msg("re-reading dose for reminder")
		return
	}
	if rec.Taken {
		return
	}

	user, err := d.directory.GetUser(ctx, patient)
	if err != nil || user.PushToken == "" {
		d.logger.Warn().Str("patient", patient).Msg("no push target for reminder")
		return
	}

	timeLabel := fmt.Sprintf("%d:00", rec.DueHour)
	err = d.sink.Send(ctx, push.Notification{
		RecipientToken:    user.PushToken,
		SubscriptionToken: user.SubscriptionToken,
		Title:             "È ora di prendere la medicina!",
		Message:           fmt.Sprintf("È ora di prendere %s alle %s", medicine, timeLabel),
		Data: map[string]interface{}{
			"type":     "medicine_reminder",
			"medicine": medicine,
			"time":     timeLabel,
		},
	})
	if err != nil {
		d.logger.Error().Err(err).Str("patient", patient).Str("medicine", medicine).Msg("reminder delivery failed")
	}
}
