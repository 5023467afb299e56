// Package sysinfo reads display information from the desktop environment.
package sysinfo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dixieflatline76/wallsearch/pkg/provider"
	"github.com/dixieflatline76/wallsearch/util/log"
)

// DefaultDetectTimeout bounds a single monitor-info invocation.
const DefaultDetectTimeout = 5 * time.Second

// defaultMonitorCommand asks Hyprland for its monitors as JSON.
var defaultMonitorCommand = []string{"hyprctl", "monitors", "-j"}

// monitorInfo is the subset of a monitor object we read.
type monitorInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Detector finds the resolution of the primary monitor.
type Detector struct {
	runner  Runner
	command []string
	timeout time.Duration
}

// NewDetector creates a Detector. A nil runner uses ExecRunner, an empty
// command uses "hyprctl monitors -j" and a zero timeout uses DefaultDetectTimeout.
func NewDetector(runner Runner, command []string, timeout time.Duration) *Detector {
	if runner == nil {
		runner = ExecRunner{}
	}
	if len(command) == 0 {
		command = defaultMonitorCommand
	}
	if timeout <= 0 {
		timeout = DefaultDetectTimeout
	}
	return &Detector{runner: runner, command: command, timeout: timeout}
}

// Detect returns the primary monitor resolution, or provider.FallbackResolution
// if the monitor-info tool fails in any way.
func (d *Detector) Detect(ctx context.Context) provider.Resolution {
	res, err := d.PrimaryResolution(ctx)
	if err != nil {
		log.Debugf("Monitor detection failed, using %s: %v", provider.FallbackResolution, err)
		return provider.FallbackResolution
	}
	return res
}

// PrimaryResolution runs the monitor-info tool and parses its first monitor.
func (d *Detector) PrimaryResolution(ctx context.Context) (provider.Resolution, error) {
	out, err := RunWithTimeout(ctx, d.runner, d.timeout, d.command)
	if err != nil {
		return provider.Resolution{}, fmt.Errorf("failed to query monitors: %w", err)
	}
	return ParseMonitors(out)
}

// ParseMonitors returns the first monitor's resolution. It accepts a JSON
// array of monitor objects (hyprctl, swaymsg style) or xdpyinfo text output.
func ParseMonitors(data []byte) (provider.Resolution, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] != '[' && trimmed[0] != '{' {
		return parseXdpyinfo(trimmed)
	}

	var monitors []monitorInfo
	if err := json.Unmarshal(data, &monitors); err != nil {
		return provider.Resolution{}, fmt.Errorf("failed to parse monitor list: %w", err)
	}
	if len(monitors) == 0 {
		return provider.Resolution{}, errors.New("no monitors reported")
	}
	m := monitors[0]
	if m.Width <= 0 || m.Height <= 0 {
		return provider.Resolution{}, fmt.Errorf("invalid monitor geometry %dx%d", m.Width, m.Height)
	}
	return provider.Resolution{Width: m.Width, Height: m.Height}, nil
}
