package upscale

import (
	"fmt"
	"log/slog"
)

// CreateFullscreenRenderTarget creates the target the scene is drawn into.
// With per-element upscaling every element is scaled while drawing, so the
// target matches the window 1:1. Otherwise the scene is drawn at logical
// resolution and scaled as a whole later.
func CreateFullscreenRenderTarget(r Renderer, cfg Config) (RenderTarget, error) {
	width, height := fullscreenTargetSize(r, cfg)

	target, err := r.NewRenderTarget(width, height)
	if err != nil {
		return nil, fmt.Errorf("create %dx%d render target: %w", width, height, err)
	}

	logger().Debug("created render target",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Bool("perElement", cfg.PerElementUpscalingEnabled),
	)

	return target, nil
}

func fullscreenTargetSize(r Renderer, cfg Config) (width, height int) {
	window := r.WindowSize()
	if cfg.PerElementUpscalingEnabled {
		return window.Width, window.Height
	}

	return LowResBufferWidth(window, cfg.WidescreenModeOn), LogicalHeight
}

// createPrescaledRenderTarget creates the intermediate target used by
// sharp-bilinear scaling. It holds the frame buffer at the integer
// pixel-perfect factors.
func createPrescaledRenderTarget(r Renderer, bufferWidth int) (RenderTarget, error) {
	width := bufferWidth * PixelPerfectScaleX
	height := LogicalHeight * PixelPerfectScaleY

	target, err := r.NewRenderTarget(width, height)
	if err != nil {
		return nil, fmt.Errorf("create %dx%d prescale target: %w", width, height, err)
	}

	return target, nil
}

// targetSet holds the render targets owned by an UpscalingBuffer. prescaled
// is nil unless the mode needs it.
type targetSet struct {
	main      RenderTarget
	prescaled RenderTarget
}

func buildTargets(r Renderer, cfg Config, mode Mode) (targetSet, error) {
	main, err := CreateFullscreenRenderTarget(r, cfg)
	if err != nil {
		return targetSet{}, err
	}

	set := targetSet{main: main}
	if mode.needsPrescaledTarget() {
		set.prescaled, err = createPrescaledRenderTarget(r, main.Width())
		if err != nil {
			set.release()
			return targetSet{}, err
		}
	}

	return set, nil
}

func (s *targetSet) release() {
	if s.main != nil {
		s.main.Release()
		s.main = nil
	}

	if s.prescaled != nil {
		s.prescaled.Release()
		s.prescaled = nil
	}
}
