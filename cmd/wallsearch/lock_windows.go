//go:build windows

package main

import (
	"fmt"

	"github.com/dixieflatline76/wallsearch/config"
	"github.com/dixieflatline76/wallsearch/util/log"
	"golang.org/x/sys/windows"
)

var mutex windows.Handle

// acquireLock tries to take the single-instance lock (a named mutex on Windows).
func acquireLock() (bool, error) {
	namePtr, err := windows.UTF16PtrFromString(config.AppName + "_SingleInstanceMutex")
	if err != nil {
		return false, err
	}

	h, err := windows.CreateMutex(nil, false, namePtr)
	if err == windows.ERROR_ALREADY_EXISTS {
		windows.CloseHandle(h)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create mutex: %w", err)
	}
	mutex = h
	return true, nil
}

// releaseLock releases the single-instance lock.
func releaseLock() {
	if mutex == 0 {
		return
	}
	if err := windows.CloseHandle(mutex); err != nil {
		log.Printf("Failed to close mutex handle: %v", err)
	}
	mutex = 0
}
