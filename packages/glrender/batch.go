package glrender

import (
	"encoding/binary"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/mobile/exp/f32"

	"github.com/ikemen-engine/presenter/packages/geom"
	"github.com/ikemen-engine/presenter/packages/glapi"
	"github.com/ikemen-engine/presenter/packages/shader"
)

type batchKind int

const (
	batchNone batchKind = iota
	batchTextured
	batchSolid
)

// batch collects triangles sharing a program and a texture.
type batch struct {
	kind     batchKind
	texture  glapi.Texture
	vertices []float32
}

func (b *batch) empty() bool {
	return len(b.vertices) == 0
}

func (b *batch) reset() {
	b.kind = batchNone
	b.texture = 0
	b.vertices = b.vertices[:0]
}

// begin flushes the pending batch if it cannot take the next quad.
func (r *Renderer) begin(kind batchKind, texture glapi.Texture) {
	if r.batch.kind != kind || r.batch.texture != texture {
		r.flush()
	}

	r.batch.kind = kind
	r.batch.texture = texture
}

// corners returns the transformed corners of rect in the order top left,
// top right, bottom right, bottom left.
func (r *Renderer) corners(rect geom.Recti) [4]mgl32.Vec2 {
	model := r.model()

	transform := func(x, y int) mgl32.Vec2 {
		v := model.Mul4x1(mgl32.Vec4{float32(x), float32(y), 0, 1})
		return mgl32.Vec2{v.X(), v.Y()}
	}

	return [4]mgl32.Vec2{
		transform(rect.Pos.X, rect.Pos.Y),
		transform(rect.Right(), rect.Pos.Y),
		transform(rect.Right(), rect.Bottom()),
		transform(rect.Pos.X, rect.Bottom()),
	}
}

// quadOrder splits a quad into two triangles.
var quadOrder = [6]int{0, 1, 2, 0, 2, 3}

func (r *Renderer) drawTexture(t *Texture, src, dest geom.Recti) {
	if t == nil || dest.Size.Empty() {
		return
	}

	r.begin(batchTextured, t.handle)

	width, height := float32(t.width), float32(t.height)
	u0 := float32(src.Pos.X) / width
	u1 := float32(src.Right()) / width

	// the vertex stage flips v, flip it here as well so row 0 is on top
	v0 := 1 - float32(src.Pos.Y)/height
	v1 := 1 - float32(src.Bottom())/height

	uvs := [4][2]float32{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}
	corners := r.corners(dest)

	for _, i := range quadOrder {
		r.batch.vertices = append(r.batch.vertices,
			corners[i].X(), corners[i].Y(),
			uvs[i][0], uvs[i][1],
		)
	}
}

func (r *Renderer) fillRect(rect geom.Recti, c color.NRGBA) {
	if rect.Size.Empty() {
		return
	}

	r.begin(batchSolid, 0)

	red := float32(c.R) / 255
	green := float32(c.G) / 255
	blue := float32(c.B) / 255
	alpha := float32(c.A) / 255

	corners := r.corners(rect)
	for _, i := range quadOrder {
		r.batch.vertices = append(r.batch.vertices,
			corners[i].X(), corners[i].Y(),
			red, green, blue, alpha,
		)
	}
}

func colorVec(c color.NRGBA) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

// flush sends the pending batch to the GPU.
func (r *Renderer) flush() {
	if r.batch.empty() {
		r.batch.reset()
		return
	}
	defer r.batch.reset()

	spec := shader.TexturedQuad
	if r.batch.kind == batchSolid {
		spec = shader.SolidColor
	}

	program, err := r.shaders.Get(spec)
	if err != nil {
		// both programs are pinned by New
		panic(err)
	}

	r.api.BindArrayBuffer(r.vertexBuffer)
	r.api.BufferData(f32.Bytes(binary.LittleEndian, r.batch.vertices...))

	program.Use()
	program.SetMat4("transform", r.projection())

	if r.batch.kind == batchTextured {
		r.api.BindTexture(0, r.batch.texture)
		program.SetInt("textureData", 0)
		program.SetVec4("colorModulation", colorVec(r.state.color))
		program.SetVec4("overlayColor", mgl32.Vec4{})
		program.SetBool("enableRepeat", false)
	}

	vertexCount := len(r.batch.vertices) * 4 / program.Stride()
	r.api.DrawArrays(glapi.Triangles, 0, vertexCount)
	r.drawCalls++
}
