package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/wallsearch/util/log"

	// Registers the webp decoder used when verifying downloads.
	_ "golang.org/x/image/webp"
)

// ApplyStage identifies the step an apply attempt stopped at.
type ApplyStage int

const (
	// StageComplete means the wallpaper was downloaded and set.
	StageComplete ApplyStage = iota
	// StagePrepare covers request validation and destination setup.
	StagePrepare
	// StageDownload covers fetching the full resolution image.
	StageDownload
	// StageVerify covers decoding the downloaded file.
	StageVerify
	// StageSetWallpaper covers the external wallpaper command.
	StageSetWallpaper
)

// String provides a human-readable representation for the ApplyStage.
func (s ApplyStage) String() string {
	switch s {
	case StageComplete:
		return "complete"
	case StagePrepare:
		return "prepare"
	case StageDownload:
		return "download"
	case StageVerify:
		return "verify"
	case StageSetWallpaper:
		return "set_wallpaper"
	default:
		return "unknown"
	}
}

// ApplyOutcome records what an apply attempt did.
type ApplyOutcome struct {
	Request ApplyRequest
	Path    string     // destination file, empty if it could not be derived
	Stage   ApplyStage // StageComplete on success, otherwise where it stopped
	Err     error
}

// OK reports whether the wallpaper was set.
func (o ApplyOutcome) OK() bool {
	return o.Err == nil
}

// Applier downloads a selected wallpaper and hands it to the Setter.
type Applier struct {
	fm         *FileManager
	downloader *Downloader
	setter     Setter
	verify     bool
}

// NewApplier creates an Applier. Downloads are decoded before the setter runs.
func NewApplier(fm *FileManager, downloader *Downloader, setter Setter) *Applier {
	return &Applier{fm: fm, downloader: downloader, setter: setter, verify: true}
}

// SkipVerify disables decoding the downloaded file before setting it.
func (a *Applier) SkipVerify() *Applier {
	a.verify = false
	return a
}

// Apply downloads the wallpaper to <wallpaperDir>/<id>.jpg and runs the
// setter on it. It never fails from the caller's point of view: the launcher
// closes its window either way. Failures are logged and reported in the
// returned outcome for callers that care.
func (a *Applier) Apply(ctx context.Context, req ApplyRequest) ApplyOutcome {
	outcome := a.apply(ctx, req)
	if outcome.OK() {
		log.Printf("Wallpaper %s applied from %s", req.ID, outcome.Path)
	} else {
		log.Printf("Failed to apply wallpaper %s at stage %s: %v", req.ID, outcome.Stage, outcome.Err)
	}
	return outcome
}

func (a *Applier) apply(ctx context.Context, req ApplyRequest) (outcome ApplyOutcome) {
	outcome = ApplyOutcome{Request: req, Stage: StagePrepare}

	defer func() {
		if r := recover(); r != nil {
			outcome.Err = fmt.Errorf("panic while applying wallpaper: %v", r)
		}
	}()

	if req.URL == "" {
		outcome.Err = errors.New("missing wallpaper URL")
		return outcome
	}

	dest, err := a.fm.WallpaperPath(req.ID)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Path = dest

	if err := os.MkdirAll(a.fm.WallpaperDir(), 0755); err != nil {
		outcome.Err = fmt.Errorf("failed to create wallpaper directory: %w", err)
		return outcome
	}

	outcome.Stage = StageDownload
	if err := a.downloader.DownloadToFile(ctx, req.URL, dest); err != nil {
		outcome.Err = err
		return outcome
	}

	if a.verify {
		outcome.Stage = StageVerify
		if _, err := imaging.Open(dest); err != nil {
			outcome.Err = fmt.Errorf("downloaded file is not an image: %w", err)
			return outcome
		}
	}

	outcome.Stage = StageSetWallpaper
	if err := a.setter.SetWallpaper(ctx, dest); err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.Stage = StageComplete
	return outcome
}
