// Package catalog loads and holds the reference fingerprint catalog.
//
// A Catalog is constructed once and never mutated afterwards; it is safe
// for concurrent readers. Reloading produces a new Catalog instance so
// that in-flight queries keep the snapshot they started with.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"cardscan/internal/phash"
)

// ErrEmptyCatalog is returned when a catalog file contains no entries.
// Identification cannot proceed without a populated catalog.
var ErrEmptyCatalog = errors.New("catalog contains no entries")

// Entry is one reference card: a unique identifier, a display name, and
// the fingerprint its catalog image hashed to.
type Entry struct {
	ID   string
	Name string
	Hash phash.Fingerprint
}

// Catalog is an immutable set of reference entries.
type Catalog struct {
	entries []Entry
}

// entryRecord is the on-disk JSON form of an entry.
type entryRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hash string `json:"hash"`
}

// New builds a catalog from pre-parsed entries. The slice is copied; the
// caller keeps no handle into the catalog's state.
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(entries))
	copied := make([]Entry, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("entry %d has an empty identifier", i)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate catalog identifier %q", e.ID)
		}
		seen[e.ID] = true
		copied[i] = e
	}

	return &Catalog{entries: copied}, nil
}

// Load reads a catalog file: a JSON array of {id, name, hash} records with
// 16-hex-character fingerprints. Malformed files, invalid fingerprints,
// duplicate identifiers, and empty catalogs are all load-time errors.
// Calling Load again on a changed file yields a fresh catalog instance;
// swapping it in is the caller's concern.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var records []entryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(records))
	for i, r := range records {
		hash, err := phash.Parse(r.Hash)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d (%s): %w", i, r.ID, err)
		}
		entries = append(entries, Entry{ID: r.ID, Name: r.Name, Hash: hash})
	}

	cat, err := New(entries)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Save writes entries to path in the same JSON format Load reads. The
// entries are validated through New first, so a file written by Save always
// loads back.
func Save(path string, entries []Entry) error {
	cat, err := New(entries)
	if err != nil {
		return err
	}

	records := make([]entryRecord, len(cat.entries))
	for i, e := range cat.entries {
		records[i] = entryRecord{ID: e.ID, Name: e.Name, Hash: e.Hash.String()}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the catalog entries in enumeration order. The returned
// slice is the catalog's backing store and must be treated as read-only.
func (c *Catalog) Entries() []Entry {
	return c.entries
}
