package upscale

import (
	"math"

	"github.com/ikemen-engine/presenter/packages/geom"
)

// Fixed properties of the logical frame buffer. The 320x200 buffer is shown
// at a 4:3 aspect ratio, so logical pixels are not square.
const (
	LogicalWidth  = 320
	LogicalHeight = 200

	aspectRatioX = 4
	aspectRatioY = 3

	// TileSize is the edge length of a map tile in logical pixels. Wide-screen
	// extensions are quantized to whole tiles.
	TileSize = 8

	// Integer factors used by pixel-perfect scaling. 320*5 by 200*6 gives a
	// 1600x1200 image, which has the 4:3 target aspect ratio.
	PixelPerfectScaleX = 5
	PixelPerfectScaleY = 6

	// usable viewport sizes are multiples of this many pixels
	viewportQuantum = 8
)

// AspectRatio is the display aspect ratio of the logical frame buffer.
const AspectRatio = float32(aspectRatioX) / float32(aspectRatioY)

// ViewportInfo describes where the logical frame lands inside the window.
type ViewportInfo struct {
	Offset geom.Vec2i
	Size   geom.Sizei
	Scale  geom.Vec2f
}

// WidescreenViewportInfo describes the tile aligned area used when
// wide-screen mode extends the playfield horizontally.
type WidescreenViewportInfo struct {
	WidthTiles    int
	WidthPx       int
	LeftPaddingPx int
}

func quantize(value int) int {
	return value - value%viewportQuantum
}

// quantizeNonZero quantizes value but keeps tiny windows from collapsing
// into a zero sized viewport.
func quantizeNonZero(value int) int {
	if q := quantize(value); q > 0 {
		return q
	}
	return value
}

// widerThanTarget compares aspect ratios in integers, so a window of exactly
// 4:3 is never considered wider.
func widerThanTarget(window geom.Sizei) bool {
	return window.Width*aspectRatioY > window.Height*aspectRatioX
}

func determineUsableSize(window geom.Sizei) (width, height float32) {
	if widerThanTarget(window) {
		h := quantizeNonZero(window.Height)
		return float32(h) * aspectRatioX / aspectRatioY, float32(h)
	}

	w := quantizeNonZero(window.Width)
	h := max(1, quantizeNonZero(window.Width*aspectRatioY/aspectRatioX))
	return float32(w), float32(h)
}

// DetermineViewport computes the largest area with the logical aspect ratio
// that fits into a window of the given size, centered within it.
func DetermineViewport(window geom.Sizei) ViewportInfo {
	if window.Empty() {
		return ViewportInfo{Scale: geom.Vec2f{X: 1, Y: 1}}
	}

	usableWidth, usableHeight := determineUsableSize(window)

	offsetX := (float32(window.Width) - usableWidth) / 2
	offsetY := (float32(window.Height) - usableHeight) / 2

	return ViewportInfo{
		Offset: geom.Vec2i{X: int(offsetX), Y: int(offsetY)},
		Size:   geom.Sizei{Width: int(usableWidth), Height: int(usableHeight)},
		Scale: geom.Vec2f{
			X: usableWidth / LogicalWidth,
			Y: usableHeight / LogicalHeight,
		},
	}
}

// CanUseWidescreenMode reports whether the window is strictly wider than
// 4:3. Below that ratio there is nothing to extend into.
func CanUseWidescreenMode(window geom.Sizei) bool {
	if window.Empty() {
		return false
	}
	return widerThanTarget(window)
}

// DetermineWidescreenViewport computes how many whole tiles fit across the
// window at the current viewport scale.
func DetermineWidescreenViewport(window geom.Sizei) WidescreenViewportInfo {
	if window.Empty() {
		return WidescreenViewportInfo{}
	}

	info := DetermineViewport(window)

	tileWidthScaled := TileSize * info.Scale.X
	maxTilesOnScreen := int(float32(window.Width) / tileWidthScaled)

	widthInPixels := min(round(float32(maxTilesOnScreen)*tileWidthScaled), window.Width)
	paddingPixels := window.Width - widthInPixels

	return WidescreenViewportInfo{
		WidthTiles:    maxTilesOnScreen,
		WidthPx:       widthInPixels,
		LeftPaddingPx: paddingPixels / 2,
	}
}

// LowResBufferWidth is the width of the logical frame buffer. It grows beyond
// LogicalWidth when wide-screen mode is wanted and the window allows it.
func LowResBufferWidth(window geom.Sizei, widescreenWanted bool) int {
	if widescreenWanted && CanUseWidescreenMode(window) {
		scale := DetermineViewport(window).Scale.X
		fullWidth := DetermineWidescreenViewport(window).WidthPx
		return round(float32(fullWidth) / scale)
	}

	return LogicalWidth
}

// CanUsePixelPerfectScaling reports whether the window can show the frame
// buffer at the fixed integer factors. The buffer width follows the default
// policy, see CanUsePixelPerfectScalingWith.
func CanUsePixelPerfectScaling(window geom.Sizei, cfg Config) bool {
	return CanUsePixelPerfectScalingWith(window, cfg, PolicyBufferWidth)
}

func CanUsePixelPerfectScalingWith(window geom.Sizei, cfg Config, policy Policy) bool {
	bufferWidth := LogicalWidth
	if policy == PolicyBufferWidth {
		bufferWidth = LowResBufferWidth(window, cfg.WidescreenModeOn)
	}

	return window.Width >= bufferWidth*PixelPerfectScaleX &&
		window.Height >= LogicalHeight*PixelPerfectScaleY
}

// ScaleVec scales vec per axis, rounding half away from zero.
func ScaleVec(vec geom.Vec2i, scale geom.Vec2f) geom.Vec2i {
	return geom.Vec2i{
		X: round(float32(vec.X) * scale.X),
		Y: round(float32(vec.Y) * scale.Y),
	}
}

func ScaleSize(size geom.Sizei, scale geom.Vec2f) geom.Sizei {
	return ScaleVec(size.AsVec(), scale).AsSize()
}

// WindowToLogical maps a window position, e.g. a mouse cursor, into logical
// frame buffer coordinates. Positions outside the viewport map outside the
// logical range.
func WindowToLogical(pos geom.Vec2i, window geom.Sizei) geom.Vec2i {
	return WindowToLogicalFrame(pos, window, false)
}

// WindowToLogicalFrame is WindowToLogical for a frame presented as
// wide-screen or not. Wide-screen frames start at the wide-screen left
// padding instead of the 4:3 viewport offset.
func WindowToLogicalFrame(pos geom.Vec2i, window geom.Sizei, isWidescreenFrame bool) geom.Vec2i {
	info := DetermineViewport(window)

	offset := info.Offset
	if isWidescreenFrame && CanUseWidescreenMode(window) {
		offset.X = DetermineWidescreenViewport(window).LeftPaddingPx
	}

	inverse := geom.Vec2f{X: 1 / info.Scale.X, Y: 1 / info.Scale.Y}
	return ScaleVec(pos.Sub(offset), inverse)
}

func round(value float32) int {
	return int(math.Round(float64(value)))
}
