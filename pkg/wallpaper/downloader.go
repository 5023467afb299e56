package wallpaper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// HTTPError holds the status code of a failed download.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (URL: %s)", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Downloader fetches remote files onto disk.
type Downloader struct {
	client  *http.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// NewDownloader creates a Downloader. limiter may be nil for unthrottled
// downloads; a zero timeout means no per-download deadline.
func NewDownloader(client *http.Client, limiter *rate.Limiter, timeout time.Duration) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{client: client, limiter: limiter, timeout: timeout}
}

// WithTimeout returns a copy of d using a different per-download timeout.
// The copy shares the client and the limiter.
func (d *Downloader) WithTimeout(timeout time.Duration) *Downloader {
	c := *d
	c.timeout = timeout
	return &c
}

// DownloadToFile downloads rawURL to dest. The body is streamed into a
// uniquely named partial file that is renamed to dest on success, so dest
// either holds a complete file or is left untouched.
func (d *Downloader) DownloadToFile(ctx context.Context, rawURL, dest string) error {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait failed: %w", err)
		}
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{StatusCode: resp.StatusCode, URL: rawURL}
	}

	tmpPath := dest + "." + uuid.NewString() + partialExt
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmpPath, err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move download into place: %w", err)
	}
	return nil
}
