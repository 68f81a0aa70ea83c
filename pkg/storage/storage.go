// Package storage persists binary containers in a pebble key space. Every
// resource keeps its current bytes plus an append-only revision history
// keyed by ksuid, so earlier states stay addressable after overwrites.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/auren/gff/pkg/gff"
)

// ErrNotFound reports a resource or revision absent from the store.
var ErrNotFound = errors.New("storage: resource not found")

const (
	resPrefix = "res/"
	revPrefix = "rev/"
)

// Revision identifies one stored state of a resource. The ID is a ksuid, so
// revisions of the same resource sort in creation order.
type Revision struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
}

// Stats summarizes the store's contents.
type Stats struct {
	Resources int `json:"resources"`
	Revisions int `json:"revisions"`
}

// ResourceStore is a pebble-backed container store. Methods are safe for
// concurrent use; pebble handles the locking.
type ResourceStore struct {
	db *pebble.DB
}

// Open opens or creates a store rooted at path.
func Open(path string) (*ResourceStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	return &ResourceStore{db: db}, nil
}

func resKey(name string) []byte { return []byte(resPrefix + name) }

func revKey(name, id string) []byte { return []byte(revPrefix + name + "/" + id) }

// Put encodes the container and stores it under name, recording a new
// revision. It returns the revision ID.
func (s *ResourceStore) Put(name string, g *gff.GFF) (string, error) {
	data, err := gff.Encode(g)
	if err != nil {
		return "", err
	}
	return s.putBytes(name, data)
}

// PutRaw stores already-encoded bytes under name. The bytes are decoded
// first so the store never holds a container it cannot read back.
func (s *ResourceStore) PutRaw(name string, data []byte) (string, error) {
	if _, err := gff.Decode(data); err != nil {
		return "", err
	}
	return s.putBytes(name, data)
}

func (s *ResourceStore) putBytes(name string, data []byte) (string, error) {
	id := ksuid.New()
	if err := s.db.Set(resKey(name), data, pebble.NoSync); err != nil {
		return "", fmt.Errorf("storage: put %s: %w", name, err)
	}
	if err := s.db.Set(revKey(name, id.String()), data, pebble.NoSync); err != nil {
		return "", fmt.Errorf("storage: put revision of %s: %w", name, err)
	}
	return id.String(), nil
}

// Get loads and decodes the current state of a resource.
func (s *ResourceStore) Get(name string) (*gff.GFF, error) {
	data, err := s.GetRaw(name)
	if err != nil {
		return nil, err
	}
	return gff.Decode(data)
}

// GetRaw loads the current encoded bytes of a resource.
func (s *ResourceStore) GetRaw(name string) ([]byte, error) {
	return s.get(resKey(name), name)
}

// GetRevision loads and decodes one historical state of a resource.
func (s *ResourceStore) GetRevision(name, id string) (*gff.GFF, error) {
	data, err := s.get(revKey(name, id), name+"@"+id)
	if err != nil {
		return nil, err
	}
	return gff.Decode(data)
}

func (s *ResourceStore) get(key []byte, label string) ([]byte, error) {
	data, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, label)
		}
		return nil, fmt.Errorf("storage: get %s: %w", label, err)
	}
	defer closer.Close()
	return append([]byte(nil), data...), nil
}

// Delete removes a resource and its whole revision history. Deleting an
// absent resource reports ErrNotFound.
func (s *ResourceStore) Delete(name string) error {
	if _, closer, err := s.db.Get(resKey(name)); err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("storage: delete %s: %w", name, err)
	} else {
		closer.Close()
	}
	if err := s.db.Delete(resKey(name), pebble.NoSync); err != nil {
		return fmt.Errorf("storage: delete %s: %w", name, err)
	}
	start := []byte(revPrefix + name + "/")
	if err := s.db.DeleteRange(start, prefixEnd(start), pebble.NoSync); err != nil {
		return fmt.Errorf("storage: delete revisions of %s: %w", name, err)
	}
	return nil
}

// List returns the names of all resources whose name starts with prefix, in
// lexical order. An empty prefix lists everything.
func (s *ResourceStore) List(prefix string) ([]string, error) {
	start := []byte(resPrefix + prefix)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: prefixEnd(start),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	defer iter.Close()

	var names []string
	for iter.First(); iter.Valid(); iter.Next() {
		names = append(names, string(iter.Key()[len(resPrefix):]))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	return names, nil
}

// Revisions returns the revision history of a resource, oldest first.
func (s *ResourceStore) Revisions(name string) ([]Revision, error) {
	start := []byte(revPrefix + name + "/")
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: prefixEnd(start),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: revisions of %s: %w", name, err)
	}
	defer iter.Close()

	var revs []Revision
	for iter.First(); iter.Valid(); iter.Next() {
		id := string(iter.Key()[len(start):])
		rev := Revision{ID: id}
		if k, err := ksuid.Parse(id); err == nil {
			rev.Created = k.Time()
		}
		revs = append(revs, rev)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("storage: revisions of %s: %w", name, err)
	}
	if len(revs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return revs, nil
}

// Stats counts resources and revisions across the whole store.
func (s *ResourceStore) Stats() (Stats, error) {
	var st Stats
	count := func(prefix string) (int, error) {
		start := []byte(prefix)
		iter, err := s.db.NewIter(&pebble.IterOptions{
			LowerBound: start,
			UpperBound: prefixEnd(start),
		})
		if err != nil {
			return 0, err
		}
		defer iter.Close()
		n := 0
		for iter.First(); iter.Valid(); iter.Next() {
			n++
		}
		return n, iter.Error()
	}

	var err error
	if st.Resources, err = count(resPrefix); err != nil {
		return Stats{}, fmt.Errorf("storage: stats: %w", err)
	}
	if st.Revisions, err = count(revPrefix); err != nil {
		return Stats{}, fmt.Errorf("storage: stats: %w", err)
	}
	return st, nil
}

// Close flushes and closes the underlying database.
func (s *ResourceStore) Close() error {
	return s.db.Close()
}

// prefixEnd returns the smallest key greater than every key with the given
// prefix, for use as an exclusive iterator upper bound.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
