// Package scanner handles directory listing for dashify.
package scanner

import (
	"errors"
	"os"
	"path/filepath"
)

// ScanErrorType represents the type of scanning error.
type ScanErrorType string

const (
	// DirectoryNotFound indicates the directory does not exist.
	DirectoryNotFound ScanErrorType = "DIRECTORY_NOT_FOUND"
	// NotADirectory indicates the path exists but is not a directory.
	NotADirectory ScanErrorType = "NOT_A_DIRECTORY"
	// PermissionDenied indicates insufficient permissions to read the directory.
	PermissionDenied ScanErrorType = "PERMISSION_DENIED"
)

// ScanError represents an error that occurred during directory listing.
type ScanError struct {
	Type ScanErrorType
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	return string(e.Type) + ": " + e.Path
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Entry represents a single directory entry. Files, subdirectories, and
// symlinks are all entries; renaming applies to the entry name regardless
// of kind, and symlinks are never followed.
type Entry struct {
	Name  string // Entry name only
	Path  string // Path of the entry inside the scanned directory
	IsDir bool   // Whether the entry itself is a directory
}

// List enumerates the immediate entries of the given directory without
// recursion. Entries are returned in lexicographic order by name, so
// repeated listings of an unchanged directory produce identical results.
func List(directory string) ([]Entry, error) {
	info, err := os.Stat(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ScanError{
				Type: DirectoryNotFound,
				Path: directory,
				Err:  err,
			}
		}
		if os.IsPermission(err) {
			return nil, &ScanError{
				Type: PermissionDenied,
				Path: directory,
				Err:  err,
			}
		}
		return nil, err
	}

	if !info.IsDir() {
		return nil, &ScanError{
			Type: NotADirectory,
			Path: directory,
			Err:  errors.New("path is not a directory"),
		}
	}

	// os.ReadDir sorts entries by name, which gives the deterministic
	// processing order downstream consumers rely on.
	dirEntries, err := os.ReadDir(directory)
	if err != nil {
		if os.IsPermission(err) {
			return nil, &ScanError{
				Type: PermissionDenied,
				Path: directory,
				Err:  err,
			}
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		entries = append(entries, Entry{
			Name:  entry.Name(),
			Path:  filepath.Join(directory, entry.Name()),
			IsDir: entry.IsDir(),
		})
	}

	return entries, nil
}
