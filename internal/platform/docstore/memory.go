package docstore

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is a thread-safe, in-memory Store. It backs tests and local
// development runs without a database.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]Fields // collection -> id -> fields
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]Fields)}
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (Fields, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyFields(doc), nil
}

func (s *MemoryStore) Set(_ context.Context, collection, id string, fields Fields, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll := s.data[collection]
	if coll == nil {
		coll = make(map[string]Fields)
		s.data[collection] = coll
	}
	existing, ok := coll[id]
	if merge && ok {
		merged := copyFields(existing)
		for k, v := range fields {
			merged[k] = v
		}
		coll[id] = merged
		return nil
	}
	coll[id] = copyFields(fields)
	return nil
}

func (s *MemoryStore) CreateAll(_ context.Context, collection string, docs []Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll := s.data[collection]
	if coll == nil {
		coll = make(map[string]Fields)
		s.data[collection] = coll
	}
	for _, d := range docs {
		if _, exists := coll[d.ID]; exists {
			return ErrDuplicate
		}
	}
	for _, d := range docs {
		coll[d.ID] = copyFields(d.Fields)
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[collection], id)
	return nil
}

func (s *MemoryStore) List(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	coll := s.data[collection]
	out := make([]Document, 0, len(coll))
	for id, fields := range coll {
		out = append(out, Document{ID: id, Fields: copyFields(fields)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Query(_ context.Context, collection string, filter Fields) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Document
	for id, fields := range s.data[collection] {
		if matches(fields, filter) {
			out = append(out, Document{ID: id, Fields: copyFields(fields)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func copyFields(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
