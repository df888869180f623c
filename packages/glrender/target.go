package glrender

import (
	"fmt"
	"log/slog"

	"github.com/ikemen-engine/presenter/packages/geom"
	"github.com/ikemen-engine/presenter/packages/glapi"
	"github.com/ikemen-engine/presenter/packages/logging"
	"github.com/ikemen-engine/presenter/packages/upscale"
)

var _ upscale.RenderTarget = (*RenderTarget)(nil)

// RenderTarget is a texture backed framebuffer.
type RenderTarget struct {
	renderer    *Renderer
	texture     *Texture
	framebuffer glapi.Framebuffer
	width       int
	height      int
}

func (r *Renderer) newRenderTarget(width, height int) (*RenderTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid render target size %dx%d", width, height)
	}

	texture := r.createTexture(width, height, nil)
	framebuffer := r.api.CreateFramebuffer()

	r.api.BindFramebuffer(framebuffer)
	err := r.api.AttachTexture(texture.handle)
	r.bindSurface()

	if err != nil {
		r.api.DeleteFramebuffer(framebuffer)
		texture.Release()
		return nil, fmt.Errorf("attach %dx%d texture: %w", width, height, err)
	}

	logging.Logger().Debug("created framebuffer",
		slog.Int("width", width),
		slog.Int("height", height),
	)

	return &RenderTarget{
		renderer:    r,
		texture:     texture,
		framebuffer: framebuffer,
		width:       width,
		height:      height,
	}, nil
}

func (t *RenderTarget) Width() int  { return t.width }
func (t *RenderTarget) Height() int { return t.height }

// Texture returns the color buffer of the target.
func (t *RenderTarget) Texture() *Texture {
	return t.texture
}

// Bind redirects drawing into the target. The returned func rebinds the
// previous destination and restores the renderer state.
func (t *RenderTarget) Bind() func() {
	r := t.renderer
	r.flush()

	previous := r.target
	saved := r.state

	r.target = t
	r.bindSurface()

	return func() {
		r.flush()
		r.target = previous
		r.state = saved
		r.bindSurface()
	}
}

// BindAndReset is Bind followed by resetting scale, translation, clip
// rect and color modulation to their defaults.
func (t *RenderTarget) BindAndReset() func() {
	restore := t.Bind()

	t.renderer.state = defaultState()
	t.renderer.applyClip()

	return restore
}

// Render draws the whole target at x, y in the current destination.
func (t *RenderTarget) Render(x, y int) {
	dest := geom.RectFromSize(geom.V2(x, y), geom.Sizei{Width: t.width, Height: t.height})
	t.renderer.drawTexture(t.texture, t.texture.Bounds(), dest)
}

// Release deletes the framebuffer and its texture. Calling it more than
// once is a no-op.
func (t *RenderTarget) Release() {
	if t.framebuffer == 0 {
		return
	}

	r := t.renderer
	if r.batch.texture == t.texture.handle {
		r.flush()
	}
	if r.target == t {
		r.flush()
		r.target = nil
		r.bindSurface()
	}

	r.api.DeleteFramebuffer(t.framebuffer)
	t.framebuffer = 0
	t.texture.Release()
}
