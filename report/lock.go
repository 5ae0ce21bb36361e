package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/halcyard/finfetch/errors"
)

const lockFileName = ".finfetch.lock"

// acquireRunLock takes a run-level mutual-exclusion lock in the
// destination directory so two concurrent runs cannot race on the same
// expected artifact filename. Returns the release function.
func acquireRunLock(destDir string) (func(), error) {
	path := filepath.Join(destDir, lockFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, errors.WithHint(
				errors.Newf("another run appears to be in progress (lock file %s exists)", path),
				"remove the lock file if the previous run crashed",
			)
		}
		return nil, errors.Wrapf(err, "failed to acquire run lock in %s", destDir)
	}

	fmt.Fprintf(f, "%d\n", os.Getpid())
	f.Close()

	return func() { os.Remove(path) }, nil
}
