package cerr

import (
	"errors"
	"fmt"

	"github.com/kazz187/taskmarket/pkg/storage"
)

// WrapStorageError classifies a storage failure on target. Missing objects
// become NotFound and everything else an Internal error.
func WrapStorageError(target string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return NewError(NotFound, fmt.Sprintf("%s not found", target), err)
	}
	return NewError(Internal, "server error", fmt.Errorf("storage access to %s: %w", target, err))
}
