// Package glrender implements the renderer capability the upscaling engine
// draws with on top of glapi. Quads are collected on the CPU and sent to
// the GPU in batches.
package glrender

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ikemen-engine/presenter/packages/geom"
	"github.com/ikemen-engine/presenter/packages/glapi"
	"github.com/ikemen-engine/presenter/packages/logging"
	"github.com/ikemen-engine/presenter/packages/shader"
	"github.com/ikemen-engine/presenter/packages/upscale"
)

// Window reports the size of the drawable surface in pixels. A
// *glfw.Window satisfies it.
type Window interface {
	GetFramebufferSize() (width, height int)
}

var _ upscale.Renderer = (*Renderer)(nil)

type state struct {
	scale       geom.Vec2f
	translation geom.Vec2i
	clip        *geom.Recti
	color       color.NRGBA
}

func defaultState() state {
	return state{
		scale: geom.Vec2f{X: 1, Y: 1},
		color: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

type Renderer struct {
	api     glapi.API
	window  Window
	shaders *shader.Library

	vertexBuffer glapi.Buffer

	state  state
	target *RenderTarget // nil while drawing to the window

	batch     batch
	drawCalls int
}

// New sets up a renderer on the current GL context. The built-in programs
// are compiled right away so shader errors surface at startup.
func New(api glapi.API, window Window) (*Renderer, error) {
	profile := api.Profile()
	dialect := shader.DetectDialect(profile)

	r := &Renderer{
		api:     api,
		window:  window,
		shaders: shader.NewLibrary(api, dialect, 0),
		state:   defaultState(),
	}

	for _, spec := range []shader.Spec{shader.TexturedQuad, shader.SolidColor} {
		if _, err := r.shaders.Pin(spec); err != nil {
			r.shaders.Purge()
			return nil, err
		}
	}

	r.vertexBuffer = api.CreateBuffer()
	api.EnableAlphaBlending()
	api.ClearColor(0, 0, 0, 1)
	r.bindSurface()

	logging.Logger().Info("renderer initialized",
		slog.String("version", profile.Version),
		slog.String("renderer", profile.Renderer),
		slog.String("dialect", dialect.String()),
	)

	return r, nil
}

// Release frees all GL objects owned by the renderer. Render targets and
// textures must be released by their owners.
func (r *Renderer) Release() {
	r.shaders.Purge()
	r.api.DeleteBuffer(r.vertexBuffer)
}

func (r *Renderer) WindowSize() geom.Sizei {
	width, height := r.window.GetFramebufferSize()
	return geom.Sizei{Width: width, Height: height}
}

// DrawCalls returns the number of draw calls issued so far.
func (r *Renderer) DrawCalls() int {
	return r.drawCalls
}

func (r *Renderer) SetGlobalScale(scale geom.Vec2f) {
	r.state.scale = scale
}

func (r *Renderer) SetGlobalTranslation(offset geom.Vec2i) {
	r.state.translation = offset
}

func (r *Renderer) SetClipRect(rect geom.Recti) {
	r.flush()
	r.state.clip = &rect
	r.applyClip()
}

func (r *Renderer) DisableClipRect() {
	r.flush()
	r.state.clip = nil
	r.applyClip()
}

func (r *Renderer) SetColorModulation(c color.NRGBA) {
	if c != r.state.color {
		r.flush()
		r.state.color = c
	}
}

// Clear clears the whole current surface regardless of the clip rect.
func (r *Renderer) Clear() {
	r.flush()

	r.api.SetScissorEnabled(false)
	r.api.Clear()
	r.applyClip()
}

func (r *Renderer) SubmitBatch() {
	r.flush()

	if err := r.api.Err(); err != nil {
		logging.Logger().Warn("opengl reported an error", slog.Any("error", err))
	}
}

// SaveState returns a func restoring scale, translation, clip rect and
// color modulation to their current values.
func (r *Renderer) SaveState() func() {
	saved := r.state

	return func() {
		r.flush()
		r.state = saved
		r.applyClip()
	}
}

func (r *Renderer) SetFilteringEnabled(target upscale.RenderTarget, enabled bool) {
	rt, ok := target.(*RenderTarget)
	if !ok {
		panic(fmt.Sprintf("glrender: foreign render target %T", target))
	}

	r.flush()
	rt.texture.setFiltering(enabled)
}

func (r *Renderer) NewRenderTarget(width, height int) (upscale.RenderTarget, error) {
	return r.newRenderTarget(width, height)
}

// DrawTexture draws the src part of t into dest, both in pixels.
func (r *Renderer) DrawTexture(t *Texture, src, dest geom.Recti) {
	r.drawTexture(t, src, dest)
}

// FillRect draws a solid rectangle.
func (r *Renderer) FillRect(rect geom.Recti, c color.NRGBA) {
	r.fillRect(rect, c)
}

// surfaceSize is the size of the current draw destination.
func (r *Renderer) surfaceSize() geom.Sizei {
	if r.target != nil {
		return geom.Sizei{Width: r.target.width, Height: r.target.height}
	}
	return r.WindowSize()
}

// projection maps pixels with the origin at the top left to clip space.
// Render targets are flipped, so their texture rows are stored top first
// just like uploaded images.
func (r *Renderer) projection() mgl32.Mat4 {
	size := r.surfaceSize()
	width, height := float32(size.Width), float32(size.Height)

	if r.target != nil {
		return mgl32.Ortho2D(0, width, 0, height)
	}
	return mgl32.Ortho2D(0, width, height, 0)
}

// model applies the global scale and translation.
func (r *Renderer) model() mgl32.Mat4 {
	t := r.state.translation
	s := r.state.scale
	return mgl32.Translate3D(float32(t.X), float32(t.Y), 0).Mul4(mgl32.Scale3D(s.X, s.Y, 1))
}

// bindSurface makes the current target, or the window, the GL draw
// destination.
func (r *Renderer) bindSurface() {
	size := r.surfaceSize()

	if r.target != nil {
		r.api.BindFramebuffer(r.target.framebuffer)
	} else {
		r.api.BindFramebuffer(glapi.DefaultFramebuffer)
	}

	r.api.Viewport(0, 0, size.Width, size.Height)
	r.applyClip()
}

// applyClip converts the clip rect into GL scissor coordinates. Only the
// window has its origin at the bottom left.
func (r *Renderer) applyClip() {
	clip := r.state.clip
	if clip == nil {
		r.api.SetScissorEnabled(false)
		return
	}

	x, y, width, height := clip.XYWH()
	if r.target == nil {
		y = r.surfaceSize().Height - (y + height)
	}

	r.api.Scissor(x, y, max(0, width), max(0, height))
	r.api.SetScissorEnabled(true)
}
