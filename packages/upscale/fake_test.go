package upscale

import (
	"errors"
	"image/color"

	"github.com/ikemen-engine/presenter/packages/geom"
)

var errOutOfMemory = errors.New("out of video memory")

type fakeState struct {
	scale       geom.Vec2f
	translation geom.Vec2i
	clip        *geom.Recti
	color       color.NRGBA
}

func defaultFakeState() fakeState {
	return fakeState{
		scale: geom.Vec2f{X: 1, Y: 1},
		color: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// renderCall captures the renderer state at the time a target was drawn.
type renderCall struct {
	source *fakeTarget
	dest   *fakeTarget // nil for the window
	x, y   int
	state  fakeState
}

type fakeRenderer struct {
	window  geom.Sizei
	state   fakeState
	current *fakeTarget

	targets []*fakeTarget
	// failOn makes the n-th NewRenderTarget call fail, counting from 1
	failOn  int
	created int

	clears     []*fakeTarget
	renders    []renderCall
	submits    int
	filterings []filterCall
}

type filterCall struct {
	width, height int
	enabled       bool
}

func newFakeRenderer(width, height int) *fakeRenderer {
	return &fakeRenderer{
		window: geom.Sizei{Width: width, Height: height},
		state:  defaultFakeState(),
	}
}

func (r *fakeRenderer) NewRenderTarget(width, height int) (RenderTarget, error) {
	r.created++
	if r.failOn == r.created {
		return nil, errOutOfMemory
	}

	t := &fakeTarget{id: r.created, width: width, height: height, renderer: r}
	r.targets = append(r.targets, t)
	return t, nil
}

func (r *fakeRenderer) WindowSize() geom.Sizei                   { return r.window }
func (r *fakeRenderer) SetGlobalScale(scale geom.Vec2f)          { r.state.scale = scale }
func (r *fakeRenderer) SetGlobalTranslation(offset geom.Vec2i)   { r.state.translation = offset }
func (r *fakeRenderer) SetColorModulation(c color.NRGBA)         { r.state.color = c }
func (r *fakeRenderer) DisableClipRect()                         { r.state.clip = nil }
func (r *fakeRenderer) Clear()                                   { r.clears = append(r.clears, r.current) }
func (r *fakeRenderer) SubmitBatch()                             { r.submits++ }

func (r *fakeRenderer) SetFilteringEnabled(t RenderTarget, enabled bool) {
	t.(*fakeTarget).filtering = enabled
	r.filterings = append(r.filterings, filterCall{width: t.Width(), height: t.Height(), enabled: enabled})
}

func (r *fakeRenderer) SetClipRect(rect geom.Recti) {
	r.state.clip = &rect
}

func (r *fakeRenderer) SaveState() func() {
	saved := r.state
	return func() { r.state = saved }
}

func (r *fakeRenderer) liveTargets() []*fakeTarget {
	var live []*fakeTarget
	for _, t := range r.targets {
		if !t.released {
			live = append(live, t)
		}
	}
	return live
}

// windowRenders returns the draws that went to the window.
func (r *fakeRenderer) windowRenders() []renderCall {
	var calls []renderCall
	for _, c := range r.renders {
		if c.dest == nil {
			calls = append(calls, c)
		}
	}
	return calls
}

type fakeTarget struct {
	id            int
	width, height int
	renderer      *fakeRenderer
	released      bool
	filtering     bool
}

func (t *fakeTarget) Width() int  { return t.width }
func (t *fakeTarget) Height() int { return t.height }

func (t *fakeTarget) Bind() func() {
	r := t.renderer
	previous := r.current
	restoreState := r.SaveState()
	r.current = t

	return func() {
		r.current = previous
		restoreState()
	}
}

func (t *fakeTarget) BindAndReset() func() {
	restore := t.Bind()
	t.renderer.state = defaultFakeState()
	return restore
}

func (t *fakeTarget) Render(x, y int) {
	r := t.renderer
	r.renders = append(r.renders, renderCall{source: t, dest: r.current, x: x, y: y, state: r.state})
}

func (t *fakeTarget) Release() {
	t.released = true
}
