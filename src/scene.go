package main

import (
	"image"
	"image/color"
	"math"

	"github.com/ikemen-engine/presenter/packages/geom"
	"github.com/ikemen-engine/presenter/packages/glrender"
	"github.com/ikemen-engine/presenter/packages/upscale"
)

var (
	tileDark   = color.NRGBA{R: 0x20, G: 0x28, B: 0x40, A: 0xff}
	tileLight  = color.NRGBA{R: 0x30, G: 0x3c, B: 0x5c, A: 0xff}
	frameColor = color.NRGBA{R: 0xf0, G: 0xc0, B: 0x40, A: 0xff}
	sideColor  = color.NRGBA{R: 0x40, G: 0x90, B: 0x60, A: 0xff}
	spriteRGBA = color.NRGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff}
	cursorRGBA = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0}
)

// scene is a test picture drawn in logical coordinates. Its one pixel
// outlines make scaling artifacts easy to spot.
type scene struct {
	tiles *glrender.Texture

	cursor        geom.Vec2i
	cursorVisible bool
}

func newScene(r *glrender.Renderer) (*scene, error) {
	const size = 2 * upscale.TileSize

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := tileDark
			if (x/upscale.TileSize+y/upscale.TileSize)%2 == 1 {
				c = tileLight
			}
			img.SetNRGBA(x, y, c)
		}
	}

	tiles, err := r.NewTexture(img)
	if err != nil {
		return nil, err
	}
	return &scene{tiles: tiles}, nil
}

func (s *scene) release() {
	s.tiles.Release()
}

// draw renders the picture for a frame width logical pixels wide at time t
// (seconds).
func (s *scene) draw(r *glrender.Renderer, width int, t float64) {
	bounds := s.tiles.Bounds()
	for y := 0; y < upscale.LogicalHeight; y += bounds.Size.Height {
		for x := 0; x < width; x += bounds.Size.Width {
			r.DrawTexture(s.tiles, bounds, geom.RectFromSize(geom.V2(x, y), bounds.Size))
		}
	}

	// Areas outside the 4:3 part, only present in wide-screen frames.
	if padding := (width - upscale.LogicalWidth) / 2; padding > 0 {
		side := geom.Sizei{Width: upscale.TileSize, Height: upscale.LogicalHeight}
		r.FillRect(geom.RectFromSize(geom.V2(0, 0), side), sideColor)
		r.FillRect(geom.RectFromSize(geom.V2(width-upscale.TileSize, 0), side), sideColor)
	}

	outline(r, geom.Recti{Size: geom.Sizei{Width: width, Height: upscale.LogicalHeight}}, frameColor)

	const spriteSize = 3 * upscale.TileSize
	travel := float64(width - spriteSize)
	x := int(math.Round(travel * (0.5 + 0.5*math.Sin(t))))
	y := (upscale.LogicalHeight - spriteSize) / 2
	sprite := geom.RectFromSize(geom.V2(x, y), geom.Sizei{Width: spriteSize, Height: spriteSize})
	r.FillRect(sprite, spriteRGBA)
	outline(r, sprite, frameColor)

	if s.cursorVisible {
		r.FillRect(geom.RectFromSize(s.cursor.Sub(geom.V2(2, 0)), geom.Sizei{Width: 5, Height: 1}), cursorRGBA)
		r.FillRect(geom.RectFromSize(s.cursor.Sub(geom.V2(0, 2)), geom.Sizei{Width: 1, Height: 5}), cursorRGBA)
	}
}

func outline(r *glrender.Renderer, rect geom.Recti, c color.NRGBA) {
	x, y, w, h := rect.XYWH()
	r.FillRect(geom.Recti{Pos: geom.V2(x, y), Size: geom.Sizei{Width: w, Height: 1}}, c)
	r.FillRect(geom.Recti{Pos: geom.V2(x, y+h-1), Size: geom.Sizei{Width: w, Height: 1}}, c)
	r.FillRect(geom.Recti{Pos: geom.V2(x, y), Size: geom.Sizei{Width: 1, Height: h}}, c)
	r.FillRect(geom.Recti{Pos: geom.V2(x+w-1, y), Size: geom.Sizei{Width: 1, Height: h}}, c)
}
