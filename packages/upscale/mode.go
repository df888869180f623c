package upscale

import (
	"log/slog"

	"github.com/ikemen-engine/presenter/packages/geom"
)

//go:generate go tool stringer -type=Mode,Policy -output=mode_string.go

// Mode is the presentation strategy derived from a Config and the current
// window size.
type Mode int

const (
	ModeBilinear Mode = iota
	ModeSharpBilinear
	ModePixelPerfect
	ModePerElement
)

// Policy decides which buffer width the pixel-perfect feasibility check
// uses when wide-screen mode is on.
type Policy int

const (
	// PolicyBufferWidth checks the wide-screen adjusted buffer width.
	PolicyBufferWidth Policy = iota
	// PolicyLogicalWidth always checks the 4:3 logical width. A wide-screen
	// frame may then be wider than the window; it is presented from the left
	// edge and cropped on the right.
	PolicyLogicalWidth
)

// needsPrescaledTarget reports whether the mode composites through the
// intermediate integer scaled target.
func (m Mode) needsPrescaledTarget() bool {
	return m == ModeSharpBilinear
}

// SelectMode derives the presentation mode. A pixel-perfect request that
// does not fit the window degrades to sharp-bilinear, never to plain
// bilinear.
func SelectMode(window geom.Sizei, cfg Config, policy Policy) Mode {
	if cfg.PerElementUpscalingEnabled {
		return ModePerElement
	}

	switch cfg.UpscalingFilter {
	case FilterPixelPerfect:
		if CanUsePixelPerfectScalingWith(window, cfg, policy) {
			return ModePixelPerfect
		}

		logger().Debug("pixel-perfect scaling does not fit window, using sharp-bilinear",
			slog.Int("width", window.Width),
			slog.Int("height", window.Height),
		)
		return ModeSharpBilinear

	case FilterSharpBilinear:
		return ModeSharpBilinear

	default:
		return ModeBilinear
	}
}
