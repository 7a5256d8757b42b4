package reminder

import (
	"context"
	"fmt"

	"github.com/meditrack/meditrack/internal/platform/auth"
	"github.com/meditrack/meditrack/internal/platform/push"
	"github.com/meditrack/meditrack/pkg/datekey"
)

// SendWelcomeSummary composes and sends the login greeting for a user. A user
// without a registered push target, or a failed delivery, is logged and
// swallowed: login never fails because of a notification.
func (d *Dispatcher) SendWelcomeSummary(ctx context.Context, username, role string) error {
	user, err := d.directory.GetUser(ctx, username)
	if err != nil {
		return fmt.Errorf("looking up user %q: %w", username, err)
	}
	if user.PushToken == "" {
		d.logger.Warn().Str("user", username).Msg("no push target for welcome message")
		return nil
	}

	today := datekey.Format(d.now())

	var n push.Notification
	switch role {
	case auth.RoleDoctor:
		s, err := d.summaries.SummarizeForDoctor(ctx, username, today)
		if err != nil {
			return err
		}
		n = push.Notification{
			Title:   "Promemoria Giornaliero - Medico",
			Message: doctorWelcomeMessage(username, s.Appointments, s.MissedDoses),
			Data: map[string]interface{}{
				"type":         "doctor_welcome",
				"appointments": s.Appointments,
				"missed_doses": s.MissedDoses,
			},
		}
	default:
		s, err := d.summaries.SummarizeForPatient(ctx, username, today)
		if err != nil {
			return err
		}
		// The count is every dose due today, taken or not, matching what
		// the patient sees on the day sheet.
		n = push.Notification{
			Title:   "Promemoria Medicine",
			Message: patientWelcomeMessage(username, s.Due),
			Data: map[string]interface{}{
				"type":            "patient_welcome",
				"today_medicines": s.Due,
			},
		}
	}

	n.RecipientToken = user.PushToken
	n.SubscriptionToken = user.SubscriptionToken
	if err := d.sink.Send(ctx, n); err != nil {
		d.logger.Error().Err(err).Str("user", username).Msg("welcome delivery failed")
	}
	return nil
}

// doctorWelcomeMessage concatenates one clause per non-zero count, falling
// back to the all-clear line when the day is empty.
func doctorWelcomeMessage(username string, appointments, missedDoses int) string {
	message := "Benvenuto Dr." + username + " ! "
	if appointments > 0 {
		message += fmt.Sprintf("Hai %d appuntamento/i oggi. ", appointments)
	}
	if missedDoses > 0 {
		message += fmt.Sprintf("%d pazienti hanno saltato delle medicine.", missedDoses)
	}
	if appointments == 0 && missedDoses == 0 {
		message += "Tutto sotto controllo oggi!"
	}
	return message
}

func patientWelcomeMessage(username string, pending int) string {
	message := "Benvenuto " + username + " ! "
	if pending > 0 {
		message += fmt.Sprintf("Hai %d medicina/e da prendere oggi.", pending)
	} else {
		message += "Nessuna medicina programmata per oggi."
	}
	return message
}
