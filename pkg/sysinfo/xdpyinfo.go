package sysinfo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/dixieflatline76/wallsearch/pkg/provider"
)

// parseXdpyinfo reads the screen size from xdpyinfo output, e.g.
// "  dimensions:    1920x1080 pixels (508x285 millimeters)".
// X11 reports the whole screen, so on multi-head setups it is the combined size.
func parseXdpyinfo(data []byte) (provider.Resolution, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != "dimensions:" {
			continue
		}
		res, err := provider.ParseResolution(fields[1])
		if err != nil {
			return provider.Resolution{}, fmt.Errorf("failed to parse screen dimensions: %w", err)
		}
		return res, nil
	}
	if err := scanner.Err(); err != nil {
		return provider.Resolution{}, err
	}
	return provider.Resolution{}, errors.New("no dimensions line in output")
}
