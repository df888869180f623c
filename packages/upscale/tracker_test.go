package upscale

import (
	"errors"
	"testing"
)

func TestTracker_Apply(t *testing.T) {
	r := newFakeRenderer(1920, 1080)
	cfg := Config{}
	buf := newTestBuffer(t, r, cfg)

	var tracker Tracker
	tracker.Mark(cfg, r.WindowSize())

	steps := []struct {
		name    string
		change  func()
		cfg     Config
		updated bool
	}{
		{"unchanged", func() {}, cfg, false},
		{"filter changed", func() {}, Config{UpscalingFilter: FilterSharpBilinear}, true},
		{"same again", func() {}, Config{UpscalingFilter: FilterSharpBilinear}, false},
		{"window resized", func() { r.window = size(1600, 1200) }, Config{UpscalingFilter: FilterSharpBilinear}, true},
		{"widescreen toggled", func() {}, Config{UpscalingFilter: FilterSharpBilinear, WidescreenModeOn: true}, true},
	}

	for _, step := range steps {
		step.change()
		created := r.created

		updated, err := tracker.Apply(buf, step.cfg)
		if err != nil {
			t.Fatalf("%s: Apply() error = %v", step.name, err)
		}
		if updated != step.updated {
			t.Errorf("%s: Apply() = %v, want %v", step.name, updated, step.updated)
		}
		if !step.updated && r.created != created {
			t.Errorf("%s: targets were recreated without a change", step.name)
		}
	}
}

func TestTracker_FirstApplyAlwaysUpdates(t *testing.T) {
	r := newFakeRenderer(640, 480)
	buf := newTestBuffer(t, r, Config{})

	var tracker Tracker
	updated, err := tracker.Apply(buf, Config{})
	if err != nil || !updated {
		t.Errorf("Apply() = %v, %v, want true, nil", updated, err)
	}
}

func TestTracker_RetriesAfterFailure(t *testing.T) {
	r := newFakeRenderer(640, 480)
	buf := newTestBuffer(t, r, Config{})

	var tracker Tracker
	tracker.Mark(Config{}, r.WindowSize())

	cfg := Config{UpscalingFilter: FilterSharpBilinear}
	r.failOn = r.created + 1
	if _, err := tracker.Apply(buf, cfg); !errors.Is(err, errOutOfMemory) {
		t.Fatalf("Apply() error = %v, want %v", err, errOutOfMemory)
	}

	updated, err := tracker.Apply(buf, cfg)
	if err != nil || !updated {
		t.Errorf("Apply() after failure = %v, %v, want true, nil", updated, err)
	}
	if buf.Mode() != ModeSharpBilinear {
		t.Errorf("Mode() = %v, want ModeSharpBilinear", buf.Mode())
	}
}
