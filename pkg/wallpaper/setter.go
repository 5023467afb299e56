package wallpaper

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dixieflatline76/wallsearch/pkg/sysinfo"
)

// Setter applies an image file as the desktop background.
type Setter interface {
	SetWallpaper(ctx context.Context, imagePath string) error
}

// CommandSetter delegates to an external command that takes the image path
// as its last argument, e.g. "change-wallpaper <path>" or "swww img <path>".
type CommandSetter struct {
	runner  sysinfo.Runner
	command []string
	timeout time.Duration
}

// NewCommandSetter creates a CommandSetter. A nil runner uses sysinfo.ExecRunner
// and a zero timeout uses DefaultSetterTimeout.
func NewCommandSetter(runner sysinfo.Runner, command []string, timeout time.Duration) *CommandSetter {
	if runner == nil {
		runner = sysinfo.ExecRunner{}
	}
	if timeout <= 0 {
		timeout = DefaultSetterTimeout
	}
	return &CommandSetter{runner: runner, command: command, timeout: timeout}
}

// SetWallpaper runs the command with the absolute image path appended.
func (s *CommandSetter) SetWallpaper(ctx context.Context, imagePath string) error {
	absPath, err := filepath.Abs(imagePath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", imagePath, err)
	}
	if _, err := sysinfo.RunWithTimeout(ctx, s.runner, s.timeout, s.command, absPath); err != nil {
		return fmt.Errorf("wallpaper command failed: %w", err)
	}
	return nil
}
