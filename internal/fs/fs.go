// Package fs provides the small filesystem abstraction the meal catalog and
// favorites store read and write through.
//
// The main types are:
//   - [FS]: interface for the filesystem operations the tool needs
//   - [Real]: production implementation using [os] and atomic writes
//   - [Faulty]: testing implementation that injects errors into an [FS]
//
// Example usage:
//
//	fsys := fs.NewReal()
//	data, err := fsys.ReadFile("data/meals.json")
//	if err != nil {
//	    return err
//	}
package fs

import "os"

// FS defines the filesystem operations used for catalog and favorites files.
//
// All methods mirror their [os] package equivalents but can be intercepted
// for testing with fault injection.
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically.
	// Uses a temp file + rename so readers never observe a partial file.
	// The parent directory must already exist.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error
}
