// Package asset holds resources embedded in the binary.
package asset

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"os"
	"path/filepath"

	"github.com/dixieflatline76/wallsearch/util/log"
)

//go:embed images/*
var assets embed.FS

// IconName is the embedded icon used for placeholder items.
const IconName = "icon.png"

// Manager manages the loading of embedded assets.
type Manager struct{}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{}
}

// GetImage loads and returns embedded image asset by name.
func (am *Manager) GetImage(name string) (image.Image, error) {
	data, err := am.GetRawImage(name)
	if err != nil {
		log.Println("Error loading image:", err)
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Println("Error decoding image:", err)
		return nil, err
	}

	return img, nil
}

// GetRawImage loads and returns the raw bytes of an embedded image asset by name.
func (am *Manager) GetRawImage(name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("image name is empty")
	}
	return assets.ReadFile("images/" + name)
}

// InstallIcon writes the embedded icon to dir unless it is already there and
// returns its path. Launchers want an icon on disk, not in the binary.
func (am *Manager) InstallIcon(dir string) (string, error) {
	path := filepath.Join(dir, IconName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	data, err := am.GetRawImage(IconName)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create icon directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write icon: %w", err)
	}
	return path, nil
}
