package wallpaper

import "time"

// Query pipeline constants
const (
	MinQueryLength     = 2 // MinQueryLength is the shortest query (in runes) that is searched
	MaxListedColors    = 3 // MaxListedColors caps the colors shown in a result description
	DefaultWorkerCount = 4 // DefaultWorkerCount is the number of parallel thumbnail downloads
	DefaultIcon        = "images/icon.png"
)

// File naming
const (
	ThumbnailExt = ".jpg"
	WallpaperExt = ".jpg"
	partialExt   = ".part"
)

// Timeouts for external calls
const (
	DefaultThumbnailTimeout = 15 * time.Second
	DefaultWallpaperTimeout = 60 * time.Second
	DefaultSetterTimeout    = 30 * time.Second
)
