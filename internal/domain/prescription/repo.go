package prescription

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/meditrack/meditrack/internal/platform/docstore"
)

// Repository persists prescriptions and their administration records.
// Administration records are never deleted; the taken flag only flips.
type Repository interface {
	CreatePrescription(ctx context.Context, p *Prescription) error
	DeletePrescription(ctx context.Context, patient, medicine string) error
	GetPrescription(ctx context.Context, patient, medicine string) (*Prescription, error)
	ListPrescriptions(ctx context.Context, patient string) ([]*Prescription, error)

	CreateBatch(ctx context.Context, records []*Administration) error
	GetAdministration(ctx context.Context, patient, medicine string, index int) (*Administration, error)
	MarkTaken(ctx context.Context, patient, medicine string, index int, taken bool) (*Administration, error)
	ListForMedicine(ctx context.Context, patient, medicine string) ([]*Administration, error)
	ListForPatientOnDate(ctx context.Context, patient, date string) ([]*Administration, error)
}

type docRepository struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) Repository {
	return &docRepository{store: store}
}

func (r *docRepository) CreatePrescription(ctx context.Context, p *Prescription) error {
	err := r.store.CreateAll(ctx, medicinesCollection(p.Patient), []docstore.Document{
		{ID: p.Medicine, Fields: p.fields()},
	})
	if errors.Is(err, docstore.ErrDuplicate) {
		return ErrDuplicateKey
	}
	return err
}

func (r *docRepository) DeletePrescription(ctx context.Context, patient, medicine string) error {
	return r.store.Delete(ctx, medicinesCollection(patient), medicine)
}

func (r *docRepository) GetPrescription(ctx context.Context, patient, medicine string) (*Prescription, error) {
	fields, err := r.store.Get(ctx, medicinesCollection(patient), medicine)
	if err != nil {
		return nil, err
	}
	return prescriptionFromFields(patient, medicine, fields), nil
}

func (r *docRepository) ListPrescriptions(ctx context.Context, patient string) ([]*Prescription, error) {
	docs, err := r.store.List(ctx, medicinesCollection(patient))
	if err != nil {
		return nil, err
	}
	out := make([]*Prescription, 0, len(docs))
	for _, doc := range docs {
		out = append(out, prescriptionFromFields(patient, doc.ID, doc.Fields))
	}
	return out, nil
}

// CreateBatch writes all records in one transaction. A collision on any
// administration key rejects the whole batch.
func (r *docRepository) CreateBatch(ctx context.Context, records []*Administration) error {
	if len(records) == 0 {
		return nil
	}
	// All records of a batch belong to one course.
	patient, medicine := records[0].Patient, records[0].Medicine
	docs := make([]docstore.Document, 0, len(records))
	for _, rec := range records {
		docs = append(docs, docstore.Document{ID: strconv.Itoa(rec.Index), Fields: rec.fields()})
	}
	err := r.store.CreateAll(ctx, dosesCollection(patient, medicine), docs)
	if errors.Is(err, docstore.ErrDuplicate) {
		return ErrDuplicateKey
	}
	return err
}

func (r *docRepository) GetAdministration(ctx context.Context, patient, medicine string, index int) (*Administration, error) {
	id := strconv.Itoa(index)
	fields, err := r.store.Get(ctx, dosesCollection(patient, medicine), id)
	if err != nil {
		return nil, err
	}
	return administrationFromFields(patient, medicine, id, fields), nil
}

// MarkTaken flips the taken flag and returns the updated record. Repeating
// the call with the same value is a no-op.
func (r *docRepository) MarkTaken(ctx context.Context, patient, medicine string, index int, taken bool) (*Administration, error) {
	coll := dosesCollection(patient, medicine)
	id := strconv.Itoa(index)

	fields, err := r.store.Get(ctx, coll, id)
	if err != nil {
		return nil, err
	}
	if err := r.store.Set(ctx, coll, id, docstore.Fields{"taken": taken}, true); err != nil {
		return nil, err
	}
	rec := administrationFromFields(patient, medicine, id, fields)
	rec.Taken = taken
	return rec, nil
}

func (r *docRepository) ListForMedicine(ctx context.Context, patient, medicine string) ([]*Administration, error) {
	docs, err := r.store.List(ctx, dosesCollection(patient, medicine))
	if err != nil {
		return nil, err
	}
	out := make([]*Administration, 0, len(docs))
	for _, doc := range docs {
		out = append(out, administrationFromFields(patient, medicine, doc.ID, doc.Fields))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// ListForPatientOnDate matches records by exact date-string equality, so the
// unpadded key format matters.
func (r *docRepository) ListForPatientOnDate(ctx context.Context, patient, date string) ([]*Administration, error) {
	prescriptions, err := r.ListPrescriptions(ctx, patient)
	if err != nil {
		return nil, err
	}
	var out []*Administration
	for _, p := range prescriptions {
		docs, err := r.store.Query(ctx, dosesCollection(patient, p.Medicine), docstore.Fields{"due_date": date})
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			out = append(out, administrationFromFields(patient, p.Medicine, doc.ID, doc.Fields))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueHour != out[j].DueHour {
			return out[i].DueHour < out[j].DueHour
		}
		if out[i].Medicine != out[j].Medicine {
			return out[i].Medicine < out[j].Medicine
		}
		return out[i].Index < out[j].Index
	})
	return out, nil
}
