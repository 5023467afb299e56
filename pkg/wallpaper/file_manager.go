package wallpaper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dixieflatline76/wallsearch/util/log"
)

// FileManager owns the on-disk layout: a content addressed thumbnail cache
// and a directory of applied wallpapers named by catalog ID.
type FileManager struct {
	cacheDir     string
	wallpaperDir string
}

// NewFileManager creates a new FileManager with the given directories.
func NewFileManager(cacheDir, wallpaperDir string) *FileManager {
	return &FileManager{
		cacheDir:     cacheDir,
		wallpaperDir: wallpaperDir,
	}
}

// CacheDir returns the thumbnail cache directory.
func (fm *FileManager) CacheDir() string {
	return fm.cacheDir
}

// WallpaperDir returns the directory applied wallpapers are written to.
func (fm *FileManager) WallpaperDir() string {
	return fm.wallpaperDir
}

// CacheKey returns the hex encoded SHA-256 digest of a thumbnail URL.
func CacheKey(thumbURL string) string {
	sum := sha256.Sum256([]byte(thumbURL))
	return hex.EncodeToString(sum[:])
}

// ThumbnailPath returns the cache file for thumbURL. The file may not exist yet.
func (fm *FileManager) ThumbnailPath(thumbURL string) string {
	return filepath.Join(fm.cacheDir, CacheKey(thumbURL)+ThumbnailExt)
}

// CachedThumbnail resolves a cache file name (as produced by ThumbnailPath)
// to an existing path inside the cache directory.
func (fm *FileManager) CachedThumbnail(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	path := filepath.Join(fm.cacheDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// WallpaperPath returns the destination for the wallpaper with the given ID.
func (fm *FileManager) WallpaperPath(id string) (string, error) {
	if err := validateName(id); err != nil {
		return "", err
	}
	return filepath.Join(fm.wallpaperDir, id+WallpaperExt), nil
}

// EnsureDirs creates the cache and wallpaper directories.
func (fm *FileManager) EnsureDirs() error {
	for _, dir := range []string{fm.cacheDir, fm.wallpaperDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// validateName ensures a file name does not contain path traversal characters.
func validateName(name string) error {
	if name == "" || name == "." || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid name %q: contains illegal characters", name)
	}
	return nil
}

// FetchError is returned when a thumbnail could not be downloaded.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch thumbnail %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ThumbnailCache serves thumbnails from disk, downloading them on first use.
// Entries are never evicted.
type ThumbnailCache struct {
	fm         *FileManager
	downloader *Downloader
}

// NewThumbnailCache creates a ThumbnailCache rooted at fm's cache directory.
func NewThumbnailCache(fm *FileManager, downloader *Downloader) *ThumbnailCache {
	return &ThumbnailCache{fm: fm, downloader: downloader}
}

// Fetch returns the local path of the thumbnail at thumbURL. A cached file is
// returned as is without contacting the network; otherwise it is downloaded.
func (c *ThumbnailCache) Fetch(ctx context.Context, thumbURL string) (string, error) {
	if thumbURL == "" {
		return "", &FetchError{URL: thumbURL, Err: errors.New("empty thumbnail URL")}
	}

	if err := os.MkdirAll(c.fm.CacheDir(), 0755); err != nil {
		return "", &FetchError{URL: thumbURL, Err: fmt.Errorf("failed to create cache directory: %w", err)}
	}

	cachePath := c.fm.ThumbnailPath(thumbURL)
	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	if err := c.downloader.DownloadToFile(ctx, thumbURL, cachePath); err != nil {
		return "", &FetchError{URL: thumbURL, Err: err}
	}
	log.Debugf("Cached thumbnail %s as %s", thumbURL, filepath.Base(cachePath))
	return cachePath, nil
}
