package upscale

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Filter -trimprefix=Filter

// Filter is the upscaling filter requested by the user.
type Filter int

const (
	FilterBilinear Filter = iota
	FilterSharpBilinear
	FilterPixelPerfect
)

// ParseFilter converts a filter name as written in configuration files.
// Matching ignores case, dashes and underscores.
func ParseFilter(name string) (Filter, error) {
	normalized := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(name))
	for f := FilterBilinear; f <= FilterPixelPerfect; f++ {
		if strings.ToLower(f.String()) == normalized {
			return f, nil
		}
	}
	return FilterBilinear, fmt.Errorf("unknown upscaling filter %q", name)
}

// Config is the display configuration supplied by the host. The
// presentation engine only reads it.
type Config struct {
	PerElementUpscalingEnabled bool
	WidescreenModeOn           bool
	UpscalingFilter            Filter
}
