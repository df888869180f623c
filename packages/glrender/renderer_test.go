package glrender

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ikemen-engine/presenter/packages/geom"
	"github.com/ikemen-engine/presenter/packages/glapi"
	"github.com/ikemen-engine/presenter/packages/glapi/glapitest"
	"github.com/ikemen-engine/presenter/packages/upscale"
)

type fakeWindow struct {
	width, height int
}

func (w *fakeWindow) GetFramebufferSize() (int, int) {
	return w.width, w.height
}

func newTestRenderer(t *testing.T, width, height int) (*Renderer, *glapitest.API, *fakeWindow) {
	t.Helper()

	api := glapitest.New()
	window := &fakeWindow{width: width, height: height}

	r, err := New(api, window)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r, api, window
}

func newTestTarget(t *testing.T, r *Renderer, width, height int) *RenderTarget {
	t.Helper()

	target, err := r.NewRenderTarget(width, height)
	if err != nil {
		t.Fatalf("NewRenderTarget() error = %v", err)
	}
	return target.(*RenderTarget)
}

// positions decodes the vertex positions of a draw.
func positions(d glapitest.Draw, floatsPerVertex int) []geom.Vec2f {
	var result []geom.Vec2f
	for i := 0; i+floatsPerVertex*4 <= len(d.Vertices); i += floatsPerVertex * 4 {
		x := math.Float32frombits(binary.LittleEndian.Uint32(d.Vertices[i:]))
		y := math.Float32frombits(binary.LittleEndian.Uint32(d.Vertices[i+4:]))
		result = append(result, geom.Vec2f{X: x, Y: y})
	}
	return result
}

func TestNew(t *testing.T) {
	_, api, _ := newTestRenderer(t, 640, 480)

	if api.LivePrograms() != 2 {
		t.Errorf("%d programs built, want 2", api.LivePrograms())
	}
	if !api.Blending {
		t.Error("alpha blending not enabled")
	}
	if api.ViewportRect != [4]int{0, 0, 640, 480} {
		t.Errorf("viewport = %v, want window", api.ViewportRect)
	}
}

func TestNew_ShaderError(t *testing.T) {
	api := glapitest.New()
	api.FailCompile[glapi.StageFragment] = true

	if _, err := New(api, &fakeWindow{640, 480}); err == nil {
		t.Fatal("New() succeeded with a broken driver")
	}
	if api.LivePrograms() != 0 {
		t.Error("programs leaked")
	}
}

func TestNewRenderTarget(t *testing.T) {
	r, api, _ := newTestRenderer(t, 640, 480)

	target := newTestTarget(t, r, 320, 200)

	if target.Width() != 320 || target.Height() != 200 {
		t.Errorf("size = %dx%d", target.Width(), target.Height())
	}

	fb := api.Framebuffers[target.framebuffer]
	if fb.Texture != target.texture.handle {
		t.Error("texture not attached to framebuffer")
	}
	tex := api.Textures[target.texture.handle]
	if tex.Width != 320 || tex.Height != 200 || tex.Filter != glapi.FilterNearest {
		t.Errorf("texture = %+v", tex)
	}
	if api.CurrentFramebuffer != glapi.DefaultFramebuffer {
		t.Error("creating a target changed the binding")
	}

	target.Release()
	target.Release()

	if api.LiveTextures() != 0 || api.LiveFramebuffers() != 0 {
		t.Error("Release() leaked GL objects")
	}
}

func TestNewRenderTarget_Incomplete(t *testing.T) {
	r, api, _ := newTestRenderer(t, 640, 480)
	api.IncompleteFramebuffers = true

	_, err := r.NewRenderTarget(320, 200)
	if !errors.Is(err, glapi.ErrIncompleteFramebuffer) {
		t.Fatalf("NewRenderTarget() error = %v, want ErrIncompleteFramebuffer", err)
	}
	if api.LiveTextures() != 0 || api.LiveFramebuffers() != 0 {
		t.Error("failed creation leaked GL objects")
	}
}

func TestNewRenderTarget_InvalidSize(t *testing.T) {
	r, _, _ := newTestRenderer(t, 640, 480)

	if _, err := r.NewRenderTarget(0, 200); err == nil {
		t.Error("NewRenderTarget(0, 200) succeeded")
	}
}

func TestBind(t *testing.T) {
	r, api, _ := newTestRenderer(t, 640, 480)
	target := newTestTarget(t, r, 320, 200)

	r.SetGlobalScale(geom.Vec2f{X: 2, Y: 2})
	restore := target.Bind()

	if api.CurrentFramebuffer != target.framebuffer {
		t.Error("target not bound")
	}
	if api.ViewportRect != [4]int{0, 0, 320, 200} {
		t.Errorf("viewport = %v, want target size", api.ViewportRect)
	}

	r.SetGlobalScale(geom.Vec2f{X: 5, Y: 5})
	restore()

	if api.CurrentFramebuffer != glapi.DefaultFramebuffer {
		t.Error("restore did not rebind the window")
	}
	if api.ViewportRect != [4]int{0, 0, 640, 480} {
		t.Errorf("viewport = %v, want window size", api.ViewportRect)
	}
	if r.state.scale != (geom.Vec2f{X: 2, Y: 2}) {
		t.Errorf("scale = %v, want restored (2, 2)", r.state.scale)
	}
}

func TestBindAndReset(t *testing.T) {
	r, _, _ := newTestRenderer(t, 640, 480)
	target := newTestTarget(t, r, 320, 200)

	r.SetGlobalTranslation(geom.V2(10, 10))
	r.SetClipRect(geom.RectFromSize(geom.V2(0, 0), geom.Sizei{Width: 5, Height: 5}))

	restore := target.BindAndReset()
	if r.state.translation != (geom.Vec2i{}) || r.state.clip != nil {
		t.Errorf("state = %+v, want defaults", r.state)
	}
	restore()

	if r.state.translation != geom.V2(10, 10) || r.state.clip == nil {
		t.Errorf("state = %+v, want restored", r.state)
	}
}

func TestRender_TransformsQuad(t *testing.T) {
	r, api, _ := newTestRenderer(t, 1920, 1080)
	target := newTestTarget(t, r, 320, 200)

	r.SetGlobalScale(geom.Vec2f{X: 4.5, Y: 5.4})
	r.SetGlobalTranslation(geom.V2(240, 0))
	target.Render(0, 0)
	r.SubmitBatch()

	if len(api.Draws) != 1 {
		t.Fatalf("%d draws, want 1", len(api.Draws))
	}

	draw := api.Draws[0]
	if draw.Count != 6 || draw.Mode != glapi.Triangles {
		t.Errorf("draw = %d vertices mode %v, want 6 triangles", draw.Count, draw.Mode)
	}
	if draw.Texture != target.texture.handle {
		t.Error("draw did not sample the target texture")
	}

	want := []geom.Vec2f{{X: 240, Y: 0}, {X: 1680, Y: 0}, {X: 1680, Y: 1080}, {X: 240, Y: 0}, {X: 1680, Y: 1080}, {X: 240, Y: 1080}}
	got := positions(draw, 4)
	if len(got) != len(want) {
		t.Fatalf("positions = %v", got)
	}
	for i := range want {
		if math.Abs(float64(got[i].X-want[i].X)) > 0.01 || math.Abs(float64(got[i].Y-want[i].Y)) > 0.01 {
			t.Errorf("vertex %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBatching(t *testing.T) {
	r, api, _ := newTestRenderer(t, 640, 480)
	a := newTestTarget(t, r, 32, 32)
	b := newTestTarget(t, r, 32, 32)

	a.Render(0, 0)
	a.Render(40, 0)
	b.Render(80, 0)
	r.SubmitBatch()

	if len(api.Draws) != 2 {
		t.Fatalf("%d draws, want 2", len(api.Draws))
	}
	if api.Draws[0].Count != 12 || api.Draws[1].Count != 6 {
		t.Errorf("vertex counts = %d, %d, want 12, 6", api.Draws[0].Count, api.Draws[1].Count)
	}
	if r.DrawCalls() != 2 {
		t.Errorf("DrawCalls() = %d, want 2", r.DrawCalls())
	}
}

func TestColorModulation(t *testing.T) {
	r, api, _ := newTestRenderer(t, 640, 480)
	target := newTestTarget(t, r, 32, 32)

	target.Render(0, 0)
	r.SetColorModulation(color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	target.Render(0, 0)
	r.SubmitBatch()

	if len(api.Draws) != 2 {
		t.Fatalf("%d draws, want a flush on modulation change", len(api.Draws))
	}

	program := api.Draws[1].Program
	if got := api.UniformValue(program, "colorModulation"); got != [4]float32{1, 1, 1, 0} {
		t.Errorf("colorModulation = %v", got)
	}
}

func TestClipRect(t *testing.T) {
	r, api, _ := newTestRenderer(t, 640, 480)
	target := newTestTarget(t, r, 320, 200)
	clip := geom.RectFromSize(geom.V2(10, 20), geom.Sizei{Width: 100, Height: 50})

	r.SetClipRect(clip)
	if !api.ScissorEnabled || api.ScissorRect != [4]int{10, 410, 100, 50} {
		t.Errorf("window scissor = %v (enabled %v)", api.ScissorRect, api.ScissorEnabled)
	}

	restore := target.Bind()
	r.SetClipRect(clip)
	if api.ScissorRect != [4]int{10, 20, 100, 50} {
		t.Errorf("target scissor = %v", api.ScissorRect)
	}

	r.DisableClipRect()
	if api.ScissorEnabled {
		t.Error("scissor still enabled")
	}
	restore()

	if !api.ScissorEnabled || api.ScissorRect != [4]int{10, 410, 100, 50} {
		t.Errorf("restored scissor = %v (enabled %v)", api.ScissorRect, api.ScissorEnabled)
	}
}

func TestClear_ClearsBoundTarget(t *testing.T) {
	r, api, _ := newTestRenderer(t, 640, 480)
	target := newTestTarget(t, r, 320, 200)

	restore := target.Bind()
	r.SetClipRect(geom.RectFromSize(geom.V2(0, 0), geom.Sizei{Width: 8, Height: 8}))
	r.Clear()
	restore()

	if len(api.Clears) != 1 || api.Clears[0] != target.framebuffer {
		t.Errorf("clears = %v", api.Clears)
	}
}

func TestSaveState(t *testing.T) {
	r, _, _ := newTestRenderer(t, 640, 480)

	r.SetGlobalScale(geom.Vec2f{X: 3, Y: 3})
	restore := r.SaveState()

	r.SetGlobalScale(geom.Vec2f{X: 1, Y: 1})
	r.SetColorModulation(color.NRGBA{A: 10})
	r.SetClipRect(geom.Recti{Size: geom.Sizei{Width: 1, Height: 1}})
	restore()

	if r.state.scale != (geom.Vec2f{X: 3, Y: 3}) || r.state.clip != nil || r.state.color.A != 255 {
		t.Errorf("state = %+v, want restored", r.state)
	}
}

func TestSetFilteringEnabled(t *testing.T) {
	r, api, _ := newTestRenderer(t, 640, 480)
	target := newTestTarget(t, r, 320, 200)

	r.SetFilteringEnabled(target, true)
	if api.Textures[target.texture.handle].Filter != glapi.FilterLinear {
		t.Error("texture not linear")
	}

	r.SetFilteringEnabled(target, false)
	if api.Textures[target.texture.handle].Filter != glapi.FilterNearest {
		t.Error("texture not nearest")
	}
}

func TestNewTexture(t *testing.T) {
	r, api, _ := newTestRenderer(t, 640, 480)

	img := image.NewRGBA(image.Rect(2, 2, 4, 3))
	img.Set(2, 2, color.RGBA{R: 255, A: 255})

	tex, err := r.NewTexture(img)
	if err != nil {
		t.Fatalf("NewTexture() error = %v", err)
	}

	obj := api.Textures[tex.handle]
	if obj.Width != 2 || obj.Height != 1 {
		t.Errorf("texture size = %dx%d, want 2x1", obj.Width, obj.Height)
	}
	if len(obj.Pixels) != 8 || obj.Pixels[0] != 255 || obj.Pixels[3] != 255 {
		t.Errorf("pixels = %v", obj.Pixels)
	}

	if _, err := r.NewTexture(image.NewNRGBA(image.Rectangle{})); err == nil {
		t.Error("NewTexture() accepted an empty image")
	}
}

func TestDrawTexture_UVs(t *testing.T) {
	r, api, _ := newTestRenderer(t, 640, 480)
	tex := r.createTexture(4, 2, make([]byte, 4*2*4))

	r.DrawTexture(tex, geom.RectFromSize(geom.V2(2, 0), geom.Sizei{Width: 2, Height: 1}), geom.Recti{Size: geom.Sizei{Width: 8, Height: 8}})
	r.SubmitBatch()

	data := api.Draws[0].Vertices
	u := math.Float32frombits(binary.LittleEndian.Uint32(data[8:]))
	v := math.Float32frombits(binary.LittleEndian.Uint32(data[12:]))

	// first vertex is the top left corner, v is stored flipped
	if u != 0.5 || v != 1 {
		t.Errorf("top left uv = (%v, %v), want (0.5, 1)", u, v)
	}
}

func TestFillRect(t *testing.T) {
	r, api, _ := newTestRenderer(t, 640, 480)
	target := newTestTarget(t, r, 32, 32)

	r.FillRect(geom.Recti{Size: geom.Sizei{Width: 10, Height: 10}}, color.NRGBA{R: 255, A: 255})
	target.Render(0, 0)
	r.SubmitBatch()

	if len(api.Draws) != 2 {
		t.Fatalf("%d draws, want solid and textured", len(api.Draws))
	}
	if api.Draws[0].Program == api.Draws[1].Program {
		t.Error("solid and textured quads share a program")
	}
	if got := len(api.Draws[0].Vertices); got != 6*6*4 {
		t.Errorf("solid vertex bytes = %d, want %d", got, 6*6*4)
	}
}

func TestUpscalingBuffer_SharpBilinear(t *testing.T) {
	r, api, _ := newTestRenderer(t, 640, 480)

	buf, err := upscale.New(r, upscale.Config{UpscalingFilter: upscale.FilterSharpBilinear})
	if err != nil {
		t.Fatalf("upscale.New() error = %v", err)
	}
	defer buf.Release()

	func() {
		restore := buf.Bind(false)
		defer restore()

		r.FillRect(geom.Recti{Size: geom.Sizei{Width: 320, Height: 200}}, color.NRGBA{G: 255, A: 255})
	}()

	buf.Present(false, false)

	scene := buf.Target().(*RenderTarget)
	if len(api.Draws) != 3 {
		t.Fatalf("%d draws, want scene, prescale and composite", len(api.Draws))
	}
	if api.Draws[0].Framebuffer != scene.framebuffer {
		t.Error("scene not drawn into the scene target")
	}
	if api.Draws[1].Texture != scene.texture.handle || api.Draws[1].Viewport != [4]int{0, 0, 1600, 1200} {
		t.Errorf("prescale pass = %+v", api.Draws[1])
	}
	if api.Draws[2].Framebuffer != glapi.DefaultFramebuffer || api.Draws[2].Viewport != [4]int{0, 0, 640, 480} {
		t.Errorf("composite pass = %+v", api.Draws[2])
	}
	if api.Draws[2].Scissor != nil {
		t.Error("composite pass is clipped")
	}

	got := positions(api.Draws[2], 4)
	if len(got) != 6 || math.Abs(float64(got[2].X-640)) > 0.01 || math.Abs(float64(got[2].Y-480)) > 0.01 {
		t.Errorf("composite quad = %v, want the whole window", got)
	}
}
