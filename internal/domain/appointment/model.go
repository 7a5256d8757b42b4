package appointment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/meditrack/meditrack/internal/platform/docstore"
)

// Appointment is a visit slot a doctor books for a patient. Slots are keyed
// by (date, doctor, time), so one doctor cannot double-book a time.
type Appointment struct {
	Date        string `json:"date"`
	Doctor      string `json:"doctor"`
	Time        string `json:"time"`
	Patient     string `json:"patient"`
	Description string `json:"description,omitempty"`
}

func slotsCollection(date, doctor string) string {
	return "appointments/" + date + "/" + doctor
}

func (a *Appointment) fields() docstore.Fields {
	return docstore.Fields{
		"patient":     a.Patient,
		"description": a.Description,
	}
}

func appointmentFromFields(date, doctor, slot string, f docstore.Fields) *Appointment {
	a := &Appointment{Date: date, Doctor: doctor, Time: slot}
	if v, ok := f["patient"].(string); ok {
		a.Patient = v
	}
	if v, ok := f["description"].(string); ok {
		a.Description = v
	}
	return a
}

// parseSlot validates an "H:MM" time with unpadded hour, e.g. "9:30".
func parseSlot(slot string) (hour, minute int, err error) {
	parts := strings.Split(slot, ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("time %q is not in H:MM form", slot)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("time %q has invalid hour", slot)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q has invalid minutes", slot)
	}
	if strconv.Itoa(hour) != parts[0] {
		return 0, 0, fmt.Errorf("time %q must use an unpadded hour", slot)
	}
	return hour, minute, nil
}
