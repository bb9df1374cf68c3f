// Package storage keeps the reference material professors upload (guidelines,
// papers) so a generation request can point the webhook at it.
package storage

import (
	"errors"
	"io"
)

var ErrBadRef = errors.New("invalid material reference")

type MaterialStore interface {
	// Save stores the content under ref and returns the canonical ref.
	Save(ref string, r io.Reader) (string, error)
	Open(ref string) (io.ReadCloser, error)
}
