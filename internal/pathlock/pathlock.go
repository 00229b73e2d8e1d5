// Package pathlock serializes install passes that share a prefix using an
// advisory file lock.
package pathlock

import (
	"fmt"
	"os"
	"path/filepath"
)

const lockName = ".pkgstage.lock"

// Lock holds an acquired prefix lock until Release is called.
type Lock struct {
	f *os.File
}

// Acquire takes an exclusive advisory lock on dir, creating the directory
// if needed. It blocks until the lock is available.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, lockName), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock %s: %w", dir, err)
	}
	return &Lock{f: f}, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	err := unlockFile(l.f)
	if cerr := l.f.Close(); err == nil {
		err = cerr
	}
	l.f = nil
	return err
}
