package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/ikemen-engine/presenter/packages/geom"
	"github.com/ikemen-engine/presenter/packages/glapi"
	"github.com/ikemen-engine/presenter/packages/glrender"
	"github.com/ikemen-engine/presenter/packages/upscale"
)

type inputKind int

const (
	inputKey inputKind = iota
	inputCursor
	inputCursorLeft
)

// inputEvent is produced by the window callbacks. Positions are in
// framebuffer pixels.
type inputEvent struct {
	kind   inputKind
	key    glfw.Key
	cursor geom.Vec2i
}

// windowSurface reports the framebuffer size of a window from any goroutine.
type windowSurface struct {
	window *glfw.Window
}

func (s windowSurface) GetFramebufferSize() (width, height int) {
	onMainThread(func() { width, height = s.window.GetFramebufferSize() })
	return
}

type app struct {
	window *glfw.Window
	cfg    Config
	events chan inputEvent

	fadeDuration time.Duration
	quitting     bool

	// whether the frame on screen was presented as wide-screen
	widescreenFrame bool
}

func newApp(window *glfw.Window, cfg Config, fadeDuration time.Duration) *app {
	a := &app{
		window:       window,
		cfg:          cfg,
		events:       make(chan inputEvent, 64),
		fadeDuration: fadeDuration,
	}

	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Press {
			a.post(inputEvent{kind: inputKey, key: key})
		}
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		width, height := w.GetSize()
		fbWidth, fbHeight := w.GetFramebufferSize()
		if width == 0 || height == 0 {
			return
		}
		a.post(inputEvent{kind: inputCursor, cursor: geom.Vec2i{
			X: int(x * float64(fbWidth) / float64(width)),
			Y: int(y * float64(fbHeight) / float64(height)),
		}})
	})
	window.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			a.post(inputEvent{kind: inputCursorLeft})
		}
	})

	return a
}

// post drops the event if the frame loop is too far behind.
func (a *app) post(ev inputEvent) {
	select {
	case a.events <- ev:
	default:
	}
}

// run is the frame loop. It returns when the window is closed or a
// fade-out requested with Escape has finished.
func (a *app) run(api glapi.API) error {
	renderer, err := glrender.New(api, windowSurface{a.window})
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Release()

	buf, err := upscale.New(renderer, a.cfg.Video)
	if err != nil {
		return fmt.Errorf("create upscaling buffer: %w", err)
	}
	defer buf.Release()

	var tracker upscale.Tracker
	tracker.Mark(a.cfg.Video, renderer.WindowSize())

	picture, err := newScene(renderer)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer picture.release()

	var (
		stats     frameStats
		fade      = upscale.FadeIn(a.fadeDuration)
		last      = a.now()
		drawCalls = renderer.DrawCalls()
	)

	for !a.shouldClose() {
		onMainThread(glfw.PollEvents)
		if a.handleInput(picture, renderer.WindowSize()) && !a.quitting {
			a.quitting = true
			fade = upscale.FadeOut(a.fadeDuration)
		}

		if _, err := tracker.Apply(buf, a.cfg.Video); err != nil {
			return fmt.Errorf("apply display configuration: %w", err)
		}

		now := a.now()
		elapsed := time.Duration((now - last) * float64(time.Second))
		last = now
		if fade != nil && fade.Apply(buf, elapsed) {
			fade = nil
			if a.quitting {
				return nil
			}
		}

		perElement := a.cfg.Video.PerElementUpscalingEnabled
		widescreen := !perElement && buf.Target().Width() > upscale.LogicalWidth
		a.widescreenFrame = widescreen
		a.drawFrame(renderer, buf, picture, widescreen, now)
		buf.Present(widescreen, perElement)
		renderer.SubmitBatch()

		onMainThread(a.window.SwapBuffers)

		if stats.update(now, renderer.DrawCalls()-drawCalls) {
			slog.Debug("frame stats",
				slog.Float64("fps", stats.FPS),
				slog.Float64("drawsPerFrame", stats.DrawsPerFrame),
				slog.String("mode", buf.Mode().String()),
			)
		}
		drawCalls = renderer.DrawCalls()
	}

	return nil
}

func (a *app) drawFrame(r *glrender.Renderer, buf *upscale.UpscalingBuffer, s *scene, widescreen bool, t float64) {
	restore := buf.Bind(a.cfg.Video.PerElementUpscalingEnabled)
	defer restore()

	width := upscale.LogicalWidth
	if widescreen {
		width = buf.Target().Width()
		r.SetClipRect(geom.Recti{Size: geom.Sizei{Width: width, Height: upscale.LogicalHeight}})
	}
	s.draw(r, width, t)
}

// handleInput applies pending input events. It reports whether quitting
// was requested.
func (a *app) handleInput(s *scene, window geom.Sizei) (quit bool) {
	for {
		select {
		case ev := <-a.events:
			switch ev.kind {
			case inputKey:
				quit = a.handleKey(ev.key) || quit
			case inputCursor:
				s.cursor = upscale.WindowToLogicalFrame(ev.cursor, window, a.widescreenFrame)
				s.cursorVisible = true
			case inputCursorLeft:
				s.cursorVisible = false
			}
		default:
			return quit
		}
	}
}

func (a *app) handleKey(key glfw.Key) (quit bool) {
	video := &a.cfg.Video
	switch key {
	case glfw.KeyEscape:
		return true
	case glfw.KeyF1:
		video.UpscalingFilter = (video.UpscalingFilter + 1) % (upscale.FilterPixelPerfect + 1)
	case glfw.KeyF2:
		video.WidescreenModeOn = !video.WidescreenModeOn
	case glfw.KeyF3:
		video.PerElementUpscalingEnabled = !video.PerElementUpscalingEnabled
	default:
		return false
	}

	slog.Info("display settings changed",
		slog.String("filter", video.UpscalingFilter.String()),
		slog.Bool("widescreen", video.WidescreenModeOn),
		slog.Bool("perElement", video.PerElementUpscalingEnabled),
	)
	return false
}

func (a *app) shouldClose() (closing bool) {
	onMainThread(func() { closing = a.window.ShouldClose() })
	return
}

func (a *app) now() (seconds float64) {
	onMainThread(func() { seconds = glfw.GetTime() })
	return
}
