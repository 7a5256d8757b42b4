package catalog

import "github.com/meditrack/meditrack/internal/platform/docstore"

// Medicine is a catalog entry a doctor can prescribe from. The name doubles
// as the document id, so catalog names are unique.
type Medicine struct {
	Name          string  `json:"name"`
	Kind          string  `json:"kind"`
	Dosage        string  `json:"dosage"`
	Duration      string  `json:"duration"`
	IntervalHours float64 `json:"interval_hours"`
	Note          string  `json:"note,omitempty"`
}

func (m *Medicine) fields() docstore.Fields {
	return docstore.Fields{
		"kind":           m.Kind,
		"dosage":         m.Dosage,
		"duration":       m.Duration,
		"interval_hours": m.IntervalHours,
		"note":           m.Note,
	}
}

func medicineFromFields(name string, f docstore.Fields) *Medicine {
	m := &Medicine{Name: name}
	if v, ok := f["kind"].(string); ok {
		m.Kind = v
	}
	if v, ok := f["dosage"].(string); ok {
		m.Dosage = v
	}
	if v, ok := f["duration"].(string); ok {
		m.Duration = v
	}
	if v, ok := f["interval_hours"].(float64); ok {
		m.IntervalHours = v
	}
	if v, ok := f["note"].(string); ok {
		m.Note = v
	}
	return m
}
