package prescription

import (
	"fmt"
	"strconv"

	"github.com/meditrack/meditrack/internal/platform/docstore"
	"github.com/meditrack/meditrack/pkg/datekey"
)

// Prescription records that a doctor put a patient on a medicine. Once
// created it is immutable; changing a course means prescribing anew.
type Prescription struct {
	Patient       string  `json:"patient"`
	Medicine      string  `json:"medicine"`
	TotalDoses    int     `json:"total_doses"`
	IntervalHours float64 `json:"interval_hours"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	AddedDate     string  `json:"added_date"`
}

// Administration is one scheduled intake of a prescribed medicine. The
// index is its position in the expanded course, starting at zero.
type Administration struct {
	Patient  string `json:"patient"`
	Medicine string `json:"medicine"`
	Index    int    `json:"index"`
	DueDate  string `json:"due_date"`
	DueHour  int    `json:"due_hour"`
	Taken    bool   `json:"taken"`
}

// Key identifies the administration across the store and the reminder
// registry.
func (a *Administration) Key() string {
	return fmt.Sprintf("%s/%s/%d", a.Patient, a.Medicine, a.Index)
}

func medicinesCollection(patient string) string {
	return "patients/" + patient + "/medicines"
}

func dosesCollection(patient, medicine string) string {
	return "patients/" + patient + "/medicines/" + medicine + "/doses"
}

func (p *Prescription) fields() docstore.Fields {
	return docstore.Fields{
		"total_doses":    p.TotalDoses,
		"interval_hours": p.IntervalHours,
		"start_date":     p.StartDate,
		"end_date":       p.EndDate,
		"added_date":     p.AddedDate,
	}
}

func prescriptionFromFields(patient, medicine string, f docstore.Fields) *Prescription {
	p := &Prescription{Patient: patient, Medicine: medicine}
	if v, ok := asInt(f["total_doses"]); ok {
		p.TotalDoses = v
	}
	switch v := f["interval_hours"].(type) {
	case float64:
		p.IntervalHours = v
	case int:
		p.IntervalHours = float64(v)
	}
	if v, ok := f["start_date"].(string); ok {
		p.StartDate = v
	}
	if v, ok := f["end_date"].(string); ok {
		p.EndDate = v
	}
	if v, ok := f["added_date"].(string); ok {
		p.AddedDate = v
	}
	return p
}

func (a *Administration) fields() docstore.Fields {
	return docstore.Fields{
		"due_date": a.DueDate,
		"due_hour": a.DueHour,
		"taken":    a.Taken,
	}
}

func administrationFromFields(patient, medicine, id string, f docstore.Fields) *Administration {
	a := &Administration{Patient: patient, Medicine: medicine}
	a.Index, _ = strconv.Atoi(id)
	if v, ok := f["due_date"].(string); ok {
		a.DueDate = v
	}
	if v, ok := asInt(f["due_hour"]); ok {
		// Legacy writers stored hour 24 for midnight of the displayed date.
		if h, err := datekey.NormalizeHour(v); err == nil {
			a.DueHour = h
		} else {
			a.DueHour = v
		}
	}
	if v, ok := f["taken"].(bool); ok {
		a.Taken = v
	}
	return a
}

// asInt tolerates the float64 numbers JSON decoding produces.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
