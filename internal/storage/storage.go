package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Delete when the object is already gone.
var ErrObjectNotFound = errors.New("object not found")

type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}

type Deleter interface {
	Delete(ctx context.Context, objectName string) error
}

// ObjectStore is what profile picture handling needs from a backend.
type ObjectStore interface {
	Uploader
	Deleter
}
