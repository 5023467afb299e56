package config

import "strings"

// AppVersion is the version of the application, set at build time.
var AppVersion = "0.1.0"

// AppName is the name of the application.
const AppName = "WallSearch"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// Configuration file and environment names
const (
	ConfigFileName = "config.yaml"
	EnvPrefix      = "WALLSEARCH_"
)

// Default values
const (
	DefaultMinResolution    = "auto"
	DefaultResultsLimit     = 10
	DefaultServerAddr       = "127.0.0.1:49453"
	DefaultThumbnailWorkers = 4
	DefaultIcon             = "images/icon.png"
)

// DefaultWallpaperCommand is the external command that sets the desktop background.
var DefaultWallpaperCommand = []string{"change-wallpaper"}

// DefaultMonitorCommand is the external command that reports monitor geometry as JSON.
var DefaultMonitorCommand = []string{"hyprctl", "monitors", "-j"}
