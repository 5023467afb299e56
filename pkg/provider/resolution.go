package provider

import (
	"fmt"
	"strconv"
	"strings"
)

// Minimum resolution preference sentinels.
const (
	ResolutionAuto = "auto" // detect from the primary monitor
	ResolutionNone = "none" // no resolution filter
)

// FallbackResolution is used whenever monitor detection fails.
var FallbackResolution = Resolution{Width: 1920, Height: 1080}

// Resolution is a width x height pair in pixels.
type Resolution struct {
	Width, Height int
}

// String returns the canonical "<width>x<height>" form.
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// IsZero reports whether r is the unset value.
func (r Resolution) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// ParseResolution parses "<width>x<height>" with positive integer components.
func ParseResolution(s string) (Resolution, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return Resolution{}, fmt.Errorf("resolution %q is not in WxH form", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return Resolution{}, fmt.Errorf("resolution %q has an invalid width", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return Resolution{}, fmt.Errorf("resolution %q has an invalid height", s)
	}
	return Resolution{Width: width, Height: height}, nil
}
