//go:build !windows

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dixieflatline76/wallsearch/config"
	"golang.org/x/sys/unix"
)

var lockFile *os.File

// acquireLock tries to take the single-instance lock for the bridge.
// It reports false without an error when another process holds it.
func acquireLock() (bool, error) {
	lockFilePath := filepath.Join(os.TempDir(), strings.ToLower(config.AppName)+".lock")
	file, err := os.OpenFile(lockFilePath, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return false, fmt.Errorf("failed to open lock file: %w", err)
	}

	err = unix.FcntlFlock(file.Fd(), unix.F_SETLK, &unix.Flock_t{
		Type:   unix.F_WRLCK,
		Whence: 0,
		Start:  0,
		Len:    0, // whole file
	})
	if err != nil {
		file.Close()
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EACCES) {
			return false, nil
		}
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}

	lockFile = file
	return true, nil
}

// releaseLock releases the single-instance lock.
func releaseLock() {
	if lockFile == nil {
		return
	}
	unix.FcntlFlock(lockFile.Fd(), unix.F_SETLK, &unix.Flock_t{Type: unix.F_UNLCK})
	lockFile.Close()
	os.Remove(lockFile.Name())
	lockFile = nil
}
