package diskusage

import (
	"errors"
	"fmt"
)

var (
	// ErrTarget is returned when the scan root is missing or not a directory.
	ErrTarget = errors.New("invalid target")
	// ErrTraversal is returned when the walk cannot continue. It aborts the run.
	ErrTraversal = errors.New("traversal failed")
	// ErrLoop marks a symlink that leads back to an already entered directory.
	ErrLoop = errors.New("symlink loop detected")
	// ErrAccess marks a single entry that could not be stat'd.
	ErrAccess = errors.New("entry not accessible")
)

// AccessError reports a failed stat of one entry. It never aborts a run: the
// entry is left out of the Index and contributes nothing to its ancestors.
type AccessError struct {
	// Path is the entry that could not be read.
	Path string
	// Err is the underlying stat error.
	Err error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("accessing %q: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// Is makes every AccessError match ErrAccess.
func (e *AccessError) Is(target error) bool {
	return target == ErrAccess
}
