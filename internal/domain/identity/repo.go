package identity

import (
	"context"

	"github.com/meditrack/meditrack/internal/platform/docstore"
)

type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, username string) (*User, error)
	SetPushTarget(ctx context.Context, username string, target PushTarget) error

	CreatePatient(ctx context.Context, p *Patient) error
	GetPatient(ctx context.Context, username string) (*Patient, error)
	ListPatientsForDoctor(ctx context.Context, doctor string) ([]*Patient, error)
}

const (
	usersCollection    = "users"
	patientsCollection = "patients"
)

type docRepository struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) Repository {
	return &docRepository{store: store}
}

func (r *docRepository) CreateUser(ctx context.Context, u *User) error {
	return r.store.CreateAll(ctx, usersCollection, []docstore.Document{{ID: u.Username, Fields: u.fields()}})
}

func (r *docRepository) GetUser(ctx context.Context, username string) (*User, error) {
	fields, err := r.store.Get(ctx, usersCollection, username)
	if err != nil {
		return nil, err
	}
	return userFromFields(username, fields), nil
}

func (r *docRepository) SetPushTarget(ctx context.Context, username string, target PushTarget) error {
	if _, err := r.store.Get(ctx, usersCollection, username); err != nil {
		return err
	}
	// Merge so the rest of the user document survives re-registration.
	return r.store.Set(ctx, usersCollection, username, docstore.Fields{
		"push_token":         target.PushToken,
		"subscription_token": target.SubscriptionToken,
	}, true)
}

func (r *docRepository) CreatePatient(ctx context.Context, p *Patient) error {
	return r.store.CreateAll(ctx, patientsCollection, []docstore.Document{{ID: p.Username, Fields: p.fields()}})
}

func (r *docRepository) GetPatient(ctx context.Context, username string) (*Patient, error) {
	fields, err := r.store.Get(ctx, patientsCollection, username)
	if err != nil {
		return nil, err
	}
	return patientFromFields(username, fields), nil
}

func (r *docRepository) ListPatientsForDoctor(ctx context.Context, doctor string) ([]*Patient, error) {
	docs, err := r.store.Query(ctx, patientsCollection, docstore.Fields{"doctor": doctor})
	if err != nil {
		return nil, err
	}
	out := make([]*Patient, 0, len(docs))
	for _, doc := range docs {
		out = append(out, patientFromFields(doc.ID, doc.Fields))
	}
	return out, nil
}
