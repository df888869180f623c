// Package upscale reconciles the fixed resolution logical frame buffer with
// the real window. It computes viewport geometry, owns the off-screen render
// targets the scene is drawn into and composites them onto the window using
// one of several upscaling strategies.
//
// All operations run on the thread owning the graphics context.
package upscale

import (
	"image/color"
	"log/slog"

	"github.com/ikemen-engine/presenter/packages/geom"
	"github.com/ikemen-engine/presenter/packages/logging"
)

// RenderTarget is an off-screen color buffer that can be drawn into and
// later drawn as a texture.
type RenderTarget interface {
	Width() int
	Height() int

	// Bind makes the target the current draw destination. The returned func
	// restores the previous destination and the renderer state.
	Bind() (restore func())

	// BindAndReset is Bind followed by resetting scale, translation, clip
	// rect and color modulation to their defaults.
	BindAndReset() (restore func())

	// Render draws the target's contents at x, y using the renderer's
	// current global scale, translation and color modulation.
	Render(x, y int)

	Release()
}

type RenderTargetFactory interface {
	NewRenderTarget(width, height int) (RenderTarget, error)
}

// Renderer is the drawing capability the presentation engine works against.
type Renderer interface {
	RenderTargetFactory

	WindowSize() geom.Sizei

	SetGlobalScale(scale geom.Vec2f)
	SetGlobalTranslation(offset geom.Vec2i)
	SetClipRect(rect geom.Recti)
	DisableClipRect()
	SetColorModulation(c color.NRGBA)
	SetFilteringEnabled(target RenderTarget, enabled bool)

	// Clear clears the current draw destination.
	Clear()
	SubmitBatch()

	// SaveState snapshots scale, translation, clip rect and color
	// modulation. The returned func puts them back.
	SaveState() (restore func())
}

func logger() *slog.Logger {
	return logging.Logger()
}
