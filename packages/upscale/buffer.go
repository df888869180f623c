package upscale

import (
	"image/color"
	"log/slog"

	"github.com/ikemen-engine/presenter/packages/geom"
)

// Option configures an UpscalingBuffer during creation.
type Option func(*bufferOptions)

type bufferOptions struct {
	policy Policy
}

// WithPixelPerfectPolicy selects how pixel-perfect feasibility treats
// wide-screen buffers. The default is PolicyBufferWidth.
func WithPixelPerfectPolicy(policy Policy) Option {
	return func(o *bufferOptions) {
		o.policy = policy
	}
}

// UpscalingBuffer owns the render target(s) the scene is drawn into and
// composites them onto the window at the end of a frame.
//
// Per frame, call Bind, draw the scene, release the binding and call
// Present. UpdateConfiguration must only be called between frames.
type UpscalingBuffer struct {
	renderer Renderer
	policy   Policy

	targets  targetSet
	mode     Mode
	alphaMod uint8
}

func New(r Renderer, cfg Config, opts ...Option) (*UpscalingBuffer, error) {
	options := bufferOptions{policy: PolicyBufferWidth}
	for _, opt := range opts {
		opt(&options)
	}

	b := &UpscalingBuffer{
		renderer: r,
		policy:   options.policy,
		alphaMod: 255,
	}

	if err := b.UpdateConfiguration(cfg); err != nil {
		return nil, err
	}

	return b, nil
}

// Mode returns the presentation mode chosen by the last UpdateConfiguration.
func (b *UpscalingBuffer) Mode() Mode {
	return b.mode
}

// Target returns the render target the scene is drawn into.
func (b *UpscalingBuffer) Target() RenderTarget {
	return b.targets.main
}

func (b *UpscalingBuffer) AlphaMod() uint8 {
	return b.alphaMod
}

// SetAlphaMod sets the alpha applied when compositing. The scene's render
// target is not affected, which makes it usable for fades.
func (b *UpscalingBuffer) SetAlphaMod(alphaMod uint8) {
	b.alphaMod = alphaMod
}

// Bind makes the scene target the current draw destination, clears it and
// sets up scale, translation and clipping for drawing the scene. The
// returned func restores the previous destination and renderer state:
//
//	restore := buffer.Bind(perElement)
//	defer restore()
func (b *UpscalingBuffer) Bind(perElementUpscaling bool) (restore func()) {
	restore = b.targets.main.Bind()
	b.renderer.Clear()

	b.setupRenderingViewport(perElementUpscaling)
	return restore
}

// Clear clears the scene target without changing the current binding.
func (b *UpscalingBuffer) Clear() {
	restore := b.targets.main.BindAndReset()
	defer restore()

	b.renderer.Clear()
}

// Present composites the scene onto the window.
func (b *UpscalingBuffer) Present(currentFrameIsWidescreen, perElementUpscaling bool) {
	r := b.renderer
	r.Clear()

	restore := r.SaveState()
	defer restore()

	r.DisableClipRect()

	mode := b.mode
	if perElementUpscaling {
		mode = ModePerElement
	}

	switch mode {
	case ModePerElement:
		b.presentPerElement()
	case ModeSharpBilinear:
		b.presentSharpBilinear(currentFrameIsWidescreen)
	case ModePixelPerfect:
		b.presentPixelPerfect(currentFrameIsWidescreen)
	default:
		b.presentBilinear(currentFrameIsWidescreen)
	}

	r.SubmitBatch()
}

// UpdateConfiguration derives the mode from scratch and replaces all render
// targets. New targets are built before the old ones are released; if
// building fails, the previous targets stay in place.
func (b *UpscalingBuffer) UpdateConfiguration(cfg Config) error {
	window := b.renderer.WindowSize()
	mode := SelectMode(window, cfg, b.policy)

	targets, err := buildTargets(b.renderer, cfg, mode)
	if err != nil {
		return err
	}

	old := b.targets
	b.targets = targets
	b.mode = mode
	old.release()

	b.renderer.SetFilteringEnabled(targets.main, mode == ModeBilinear)
	if targets.prescaled != nil {
		b.renderer.SetFilteringEnabled(targets.prescaled, true)
	}

	logger().Info("display configuration updated",
		slog.String("mode", mode.String()),
		slog.Int("windowWidth", window.Width),
		slog.Int("windowHeight", window.Height),
		slog.Int("bufferWidth", targets.main.Width()),
		slog.Int("bufferHeight", targets.main.Height()),
	)

	return nil
}

// Release destroys all render targets owned by the buffer.
func (b *UpscalingBuffer) Release() {
	b.targets.release()
}

func (b *UpscalingBuffer) setupRenderingViewport(perElementUpscaling bool) {
	r := b.renderer

	if perElementUpscaling {
		info := DetermineViewport(r.WindowSize())
		r.SetGlobalScale(info.Scale)
		r.SetGlobalTranslation(info.Offset)
		r.SetClipRect(geom.RectFromSize(info.Offset, info.Size))
		return
	}

	r.SetGlobalScale(geom.Vec2f{X: 1, Y: 1})
	r.SetGlobalTranslation(geom.Vec2i{})
	r.SetClipRect(geom.Recti{Size: geom.Sizei{Width: LogicalWidth, Height: LogicalHeight}})
}

func (b *UpscalingBuffer) compositeColor() color.NRGBA {
	return color.NRGBA{R: 255, G: 255, B: 255, A: b.alphaMod}
}

func (b *UpscalingBuffer) presentPerElement() {
	r := b.renderer
	r.SetGlobalScale(geom.Vec2f{X: 1, Y: 1})
	r.SetGlobalTranslation(geom.Vec2i{})
	r.SetColorModulation(b.compositeColor())
	b.targets.main.Render(0, 0)
}

func (b *UpscalingBuffer) presentBilinear(currentFrameIsWidescreen bool) {
	r := b.renderer
	window := r.WindowSize()
	info := DetermineViewport(window)

	offset := info.Offset
	if currentFrameIsWidescreen {
		offset.X = DetermineWidescreenViewport(window).LeftPaddingPx
	}

	r.SetGlobalScale(info.Scale)
	r.SetGlobalTranslation(offset)
	r.SetColorModulation(b.compositeColor())
	b.targets.main.Render(0, 0)
}

// usedBufferWidth is the part of the frame buffer holding content. Frames
// that are not wide-screen only use the 4:3 part on the left.
func (b *UpscalingBuffer) usedBufferWidth(currentFrameIsWidescreen bool) int {
	if currentFrameIsWidescreen {
		return b.targets.main.Width()
	}
	return min(LogicalWidth, b.targets.main.Width())
}

func (b *UpscalingBuffer) presentPixelPerfect(currentFrameIsWidescreen bool) {
	r := b.renderer
	window := r.WindowSize()

	usedWidth := b.usedBufferWidth(currentFrameIsWidescreen) * PixelPerfectScaleX
	usedHeight := LogicalHeight * PixelPerfectScaleY

	// A frame larger than the window is anchored at the top left and cropped
	// on the right and bottom.
	r.SetGlobalScale(geom.Vec2f{X: PixelPerfectScaleX, Y: PixelPerfectScaleY})
	r.SetGlobalTranslation(geom.Vec2i{
		X: max(0, (window.Width-usedWidth)/2),
		Y: max(0, (window.Height-usedHeight)/2),
	})
	r.SetColorModulation(b.compositeColor())
	b.targets.main.Render(0, 0)
}

// presentSharpBilinear scales the frame buffer by the integer factors into
// the intermediate target, which is then stretched onto the window with
// bilinear filtering. Logical pixels keep sharp edges at non-integer scale.
func (b *UpscalingBuffer) presentSharpBilinear(currentFrameIsWidescreen bool) {
	r := b.renderer
	prescaled := b.targets.prescaled

	func() {
		restore := prescaled.Bind()
		defer restore()

		r.Clear()
		r.DisableClipRect()
		r.SetGlobalScale(geom.Vec2f{X: PixelPerfectScaleX, Y: PixelPerfectScaleY})
		r.SetGlobalTranslation(geom.Vec2i{})
		r.SetColorModulation(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
		b.targets.main.Render(0, 0)
		r.SubmitBatch()
	}()

	window := r.WindowSize()
	usedWidth := b.usedBufferWidth(currentFrameIsWidescreen) * PixelPerfectScaleX
	usedHeight := prescaled.Height()

	scale := min(
		float32(window.Width)/float32(usedWidth),
		float32(window.Height)/float32(usedHeight),
	)

	r.SetGlobalScale(geom.Vec2f{X: scale, Y: scale})
	r.SetGlobalTranslation(geom.Vec2i{
		X: round((float32(window.Width) - float32(usedWidth)*scale) / 2),
		Y: round((float32(window.Height) - float32(usedHeight)*scale) / 2),
	})
	r.SetColorModulation(b.compositeColor())
	prescaled.Render(0, 0)
}
