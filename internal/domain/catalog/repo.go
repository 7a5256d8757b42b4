package catalog

import (
	"context"

	"github.com/meditrack/meditrack/internal/platform/docstore"
)

type Repository interface {
	Create(ctx context.Context, m *Medicine) error
	Get(ctx context.Context, name string) (*Medicine, error)
	List(ctx context.Context) ([]*Medicine, error)
	Update(ctx context.Context, m *Medicine) error
	Delete(ctx context.Context, name string) error
}

const collection = "medicines"

// docRepository stores catalog entries in the document store.
type docRepository struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) Repository {
	return &docRepository{store: store}
}

func (r *docRepository) Create(ctx context.Context, m *Medicine) error {
	return r.store.CreateAll(ctx, collection, []docstore.Document{{ID: m.Name, Fields: m.fields()}})
}

func (r *docRepository) Get(ctx context.Context, name string) (*Medicine, error) {
	fields, err := r.store.Get(ctx, collection, name)
	if err != nil {
		return nil, err
	}
	return medicineFromFields(name, fields), nil
}

func (r *docRepository) List(ctx context.Context) ([]*Medicine, error) {
	docs, err := r.store.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]*Medicine, 0, len(docs))
	for _, doc := range docs {
		out = append(out, medicineFromFields(doc.ID, doc.Fields))
	}
	return out, nil
}

func (r *docRepository) Update(ctx context.Context, m *Medicine) error {
	if _, err := r.store.Get(ctx, collection, m.Name); err != nil {
		return err
	}
	return r.store.Set(ctx, collection, m.Name, m.fields(), false)
}

func (r *docRepository) Delete(ctx context.Context, name string) error {
	return r.store.Delete(ctx, collection, name)
}
