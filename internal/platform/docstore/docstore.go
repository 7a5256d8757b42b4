// Package docstore is the generic document-database boundary. Documents are
// addressed by a hierarchical collection path plus an id, carry a flat field
// map, and are queried by field equality. The rest of the system never talks
// to the database directly, only through Store.
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document id does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is returned by CreateAll when any document in the batch
// already exists.
var ErrDuplicate = errors.New("document already exists")

// Fields is the field set of a single document.
type Fields map[string]interface{}

// Document pairs an id with its fields, as returned by List and Query.
type Document struct {
	ID     string
	Fields Fields
}

// Store is the document-database interface consumed by the domain
// repositories. Collection paths are slash-joined strings such as
// "patients/mario/medicines".
type Store interface {
	// Get returns the document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Fields, error)
	// Set writes fields at (collection, id). With merge, existing fields not
	// present in the write are preserved; without, the document is replaced.
	Set(ctx context.Context, collection, id string, fields Fields, merge bool) error
	// CreateAll inserts every document in a single all-or-nothing batch and
	// fails the whole batch with ErrDuplicate if any id already exists.
	CreateAll(ctx context.Context, collection string, docs []Document) error
	// Delete removes a document. Deleting an absent id is not an error.
	Delete(ctx context.Context, collection, id string) error
	// List returns every document in a collection, ordered by id.
	List(ctx context.Context, collection string) ([]Document, error)
	// Query returns the documents whose fields equal every entry of filter.
	Query(ctx context.Context, collection string, filter Fields) ([]Document, error)
}

// matches reports whether fields satisfies every equality in filter.
// Numeric values are compared loosely since JSON decoding may yield float64
// where the caller wrote int.
func matches(fields Fields, filter Fields) bool {
	for k, want := range filter {
		got, ok := fields[k]
		if !ok {
			return false
		}
		if !looseEqual(got, want) {
			return false
		}
	}
	return true
}

func looseEqual(a, b interface{}) bool {
	if a == b {
		return true
	}
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	return aok && bok && af == bf
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
