// Package store persists the registry's known-masternode snapshot to disk
// between restarts: a single file-backed Reader/Writer location with an
// ErrNotExist that plays nicely with errors.Is.
package store

import (
	"errors"
	"io"
	"os"
)

// ErrNotExist is returned by Reader when the snapshot file has never been
// written.
var ErrNotExist = errors.New("store: snapshot file does not exist")

// Store is a file-backed snapshot location.
type Store struct {
	path string
}

// New returns a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Reader opens the snapshot file for reading.
func (s *Store) Reader() (io.ReadCloser, error) {
	r, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotExist
	}
	return r, err
}

// Writer creates or truncates the snapshot file for writing.
func (s *Store) Writer() (io.WriteCloser, error) {
	return os.Create(s.path)
}

// Remove deletes the snapshot file.
func (s *Store) Remove() error {
	return os.Remove(s.path)
}

// String returns the underlying path.
func (s *Store) String() string {
	return s.path
}
