package interchange

import (
	"fmt"

	"github.com/gofrs/flock"
)

// AcquireImportLock takes the cross-process lock serializing imports
// against one catalog. Batch files are processed strictly one at a time
// within a process; the lock extends that guarantee across processes. The
// caller must Unlock the returned lock when the import session ends.
func AcquireImportLock(path string) (*flock.Flock, error) {
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another import is already running (lock held at %s)", path)
	}
	return lock, nil
}
