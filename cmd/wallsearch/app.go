package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dixieflatline76/wallsearch/asset"
	"github.com/dixieflatline76/wallsearch/config"
	"github.com/dixieflatline76/wallsearch/pkg/sysinfo"
	"github.com/dixieflatline76/wallsearch/pkg/wallpaper"
	"github.com/dixieflatline76/wallsearch/pkg/wallpaper/providers/wallhaven"
	"github.com/dixieflatline76/wallsearch/util/log"
	"golang.org/x/time/rate"
)

// Download pacing shared by thumbnails and full images.
const (
	downloadInterval = 100 * time.Millisecond
	downloadBurst    = 8
)

// app holds the wired components for one process.
type app struct {
	cfg      *config.Config
	fm       *wallpaper.FileManager
	detector *sysinfo.Detector
	pipeline *wallpaper.Pipeline
	applier  *wallpaper.Applier
}

func newApp(g *Globals) (*app, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded config from %s", cfg.Path())

	client := wallpaper.NewHTTPClient(cfg.UserAgent)
	limiter := rate.NewLimiter(rate.Every(downloadInterval), downloadBurst)
	downloader := wallpaper.NewDownloader(client, limiter, wallpaper.DefaultThumbnailTimeout)

	fm := wallpaper.NewFileManager(cfg.CacheDir, cfg.WallpaperDir)
	detector := sysinfo.NewDetector(nil, cfg.MonitorCommand, 0)
	catalog := wallhaven.NewClient(client)

	pipeline := wallpaper.NewPipeline(catalog, detector, wallpaper.NewThumbnailCache(fm, downloader),
		wallpaper.WithIcon(resolveIcon(cfg)),
		wallpaper.WithWorkers(cfg.ThumbnailWorkers),
	)
	applier := wallpaper.NewApplier(fm,
		downloader.WithTimeout(wallpaper.DefaultWallpaperTimeout),
		wallpaper.NewCommandSetter(nil, cfg.WallpaperCommand, 0),
	)

	return &app{
		cfg:      cfg,
		fm:       fm,
		detector: detector,
		pipeline: pipeline,
		applier:  applier,
	}, nil
}

// resolveIcon returns the configured icon when it exists on disk. Otherwise
// the embedded icon is installed next to the thumbnail cache.
func resolveIcon(cfg *config.Config) string {
	if _, err := os.Stat(cfg.Icon); err == nil {
		return cfg.Icon
	}
	path, err := asset.NewManager().InstallIcon(filepath.Dir(cfg.CacheDir))
	if err != nil {
		log.Printf("Failed to install default icon: %v", err)
		return cfg.Icon
	}
	return path
}
