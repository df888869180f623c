package glrender

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/ikemen-engine/presenter/packages/geom"
	"github.com/ikemen-engine/presenter/packages/glapi"
)

// Texture is an RGBA texture owned by the caller.
type Texture struct {
	api    glapi.API
	handle glapi.Texture
	width  int
	height int
	linear bool
}

func (r *Renderer) createTexture(width, height int, pixels []byte) *Texture {
	r.flush()

	t := &Texture{
		api:    r.api,
		handle: r.api.CreateTexture(),
		width:  width,
		height: height,
	}

	r.api.BindTexture(0, t.handle)
	r.api.TexImage2D(width, height, pixels)
	r.api.SetTextureFilter(glapi.FilterNearest)

	return t
}

// NewTexture uploads img. Sampling is nearest neighbour.
func (r *Renderer) NewTexture(img image.Image) (*Texture, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("create texture: empty image %v", bounds)
	}

	rgba, ok := img.(*image.NRGBA)
	if !ok || rgba.Stride != 4*bounds.Dx() || bounds.Min != (image.Point{}) {
		rgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	return r.createTexture(bounds.Dx(), bounds.Dy(), rgba.Pix), nil
}

func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

// Bounds returns the full texture as a source rect.
func (t *Texture) Bounds() geom.Recti {
	return geom.Recti{Size: geom.Sizei{Width: t.width, Height: t.height}}
}

func (t *Texture) setFiltering(linear bool) {
	t.api.BindTexture(0, t.handle)

	filter := glapi.FilterNearest
	if linear {
		filter = glapi.FilterLinear
	}
	t.api.SetTextureFilter(filter)
	t.linear = linear
}

// Release deletes the texture. Calling it more than once is a no-op.
func (t *Texture) Release() {
	if t.handle == 0 {
		return
	}

	t.api.DeleteTexture(t.handle)
	t.handle = 0
}
