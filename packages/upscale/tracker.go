package upscale

import "github.com/ikemen-engine/presenter/packages/geom"

// Tracker remembers the configuration and window size last applied to an
// UpscalingBuffer, so hosts can call Apply every frame and only pay for
// target recreation when something actually changed.
type Tracker struct {
	cfg     Config
	window  geom.Sizei
	applied bool
}

// Apply updates buf if cfg or the window size differ from the last
// successful Apply. It reports whether the buffer was updated.
func (t *Tracker) Apply(buf *UpscalingBuffer, cfg Config) (bool, error) {
	window := buf.renderer.WindowSize()
	if t.applied && t.cfg == cfg && t.window == window {
		return false, nil
	}

	if err := buf.UpdateConfiguration(cfg); err != nil {
		return false, err
	}

	t.cfg = cfg
	t.window = window
	t.applied = true
	return true, nil
}

// Mark records cfg and window as applied without touching a buffer, e.g.
// right after New.
func (t *Tracker) Mark(cfg Config, window geom.Sizei) {
	t.cfg = cfg
	t.window = window
	t.applied = true
}
