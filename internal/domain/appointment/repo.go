package appointment

import (
	"context"
	"sort"

	"github.com/meditrack/meditrack/internal/platform/docstore"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	ListForDoctorOnDate(ctx context.Context, doctor, date string) ([]*Appointment, error)
	Delete(ctx context.Context, a *Appointment) error
}

type docRepository struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) Repository {
	return &docRepository{store: store}
}

func (r *docRepository) Create(ctx context.Context, a *Appointment) error {
	return r.store.CreateAll(ctx, slotsCollection(a.Date, a.Doctor), []docstore.Document{
		{ID: a.Time, Fields: a.fields()},
	})
}

func (r *docRepository) ListForDoctorOnDate(ctx context.Context, doctor, date string) ([]*Appointment, error) {
	docs, err := r.store.List(ctx, slotsCollection(date, doctor))
	if err != nil {
		return nil, err
	}
	out := make([]*Appointment, 0, len(docs))
	for _, doc := range docs {
		out = append(out, appointmentFromFields(date, doctor, doc.ID, doc.Fields))
	}
	sort.Slice(out, func(i, j int) bool {
		hi, mi, _ := parseSlot(out[i].Time)
		hj, mj, _ := parseSlot(out[j].Time)
		if hi != hj {
			return hi < hj
		}
		return mi < mj
	})
	return out, nil
}

func (r *docRepository) Delete(ctx context.Context, a *Appointment) error {
	return r.store.Delete(ctx, slotsCollection(a.Date, a.Doctor), a.Time)
}
