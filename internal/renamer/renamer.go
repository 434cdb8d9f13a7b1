// Package renamer handles entry renaming for dashify.
package renamer

import (
	"fmt"
	"os"
)

// RenameErrorType represents the type of rename error.
type RenameErrorType string

const (
	// SourceNotFound indicates the source entry does not exist.
	SourceNotFound RenameErrorType = "SOURCE_NOT_FOUND"
	// DestinationExists indicates an entry already exists at the destination.
	DestinationExists RenameErrorType = "DESTINATION_EXISTS"
	// PermissionDenied indicates insufficient permissions for the operation.
	PermissionDenied RenameErrorType = "PERMISSION_DENIED"
)

// RenameError represents an error that occurred while renaming an entry.
type RenameError struct {
	Type RenameErrorType
	Path string
	Err  error
}

func (e *RenameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}

// Move renames a single entry in place. It refuses to overwrite: if
// anything already exists at the destination, Move fails and the source
// is left untouched. os.Rename would silently replace an existing file,
// so the destination is checked first.
//
// Lstat is used for both checks so symlinks are renamed as entries and
// never followed; a broken symlink still moves.
func Move(sourcePath, destPath string) error {
	if _, err := os.Lstat(sourcePath); err != nil {
		if os.IsNotExist(err) {
			return &RenameError{
				Type: SourceNotFound,
				Path: sourcePath,
				Err:  err,
			}
		}
		if os.IsPermission(err) {
			return &RenameError{
				Type: PermissionDenied,
				Path: sourcePath,
				Err:  err,
			}
		}
		return err
	}

	if _, err := os.Lstat(destPath); err == nil {
		return &RenameError{
			Type: DestinationExists,
			Path: destPath,
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := os.Rename(sourcePath, destPath); err != nil {
		if os.IsPermission(err) {
			return &RenameError{
				Type: PermissionDenied,
				Path: sourcePath,
				Err:  err,
			}
		}
		return err
	}

	return nil
}
