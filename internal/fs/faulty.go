package fs

import (
	"errors"
	"os"
)

// InjectedError marks an error as intentionally injected by [Faulty].
//
// It wraps the underlying error so errors.Is/As continue to work.
type InjectedError struct {
	Err error
}

// Error returns the underlying error's message.
func (e *InjectedError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *InjectedError) Unwrap() error {
	return e.Err
}

// IsInjected reports whether err (or any wrapped error) was injected by [Faulty].
// Returns false if err is nil.
func IsInjected(err error) bool {
	var injected *InjectedError

	return errors.As(err, &injected)
}

// Faulty wraps an [FS] and fails selected operations with a fixed error.
// A nil error field means the operation passes through to Inner.
type Faulty struct {
	Inner FS

	ReadErr  error // returned by ReadFile
	WriteErr error // returned by WriteFileAtomic
}

// NewFaulty returns a [Faulty] that passes everything through to inner.
func NewFaulty(inner FS) *Faulty {
	return &Faulty{Inner: inner}
}

func (f *Faulty) ReadFile(path string) ([]byte, error) {
	if f.ReadErr != nil {
		return nil, f.fail("read", path, f.ReadErr)
	}

	return f.Inner.ReadFile(path)
}

func (f *Faulty) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if f.WriteErr != nil {
		return f.fail("write", path, f.WriteErr)
	}

	return f.Inner.WriteFileAtomic(path, data, perm)
}

// fail wraps err in an *os.PathError so errors.Is(err, os.ErrNotExist) keeps
// working on injected errno values.
func (f *Faulty) fail(op, path string, err error) error {
	return &InjectedError{Err: &os.PathError{Op: op, Path: path, Err: err}}
}

var _ FS = (*Faulty)(nil)
