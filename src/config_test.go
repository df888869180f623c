package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ikemen-engine/presenter/packages/upscale"
)

func TestParseConfig(t *testing.T) {
	text := `; presenter settings
[Video]
PerElementUpscaling = 1
WidescreenMode      = true ; comment
UpscalingFilter     = pixel-perfect
WidescreenMode      = false

[Window]
Width  = 1920
Height = 1080
Title  = Test window

[Sound]
Volume = 100
`
	cfg, err := ParseConfig(text)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}

	want := Config{
		Video: upscale.Config{
			PerElementUpscalingEnabled: true,
			WidescreenModeOn:           true,
			UpscalingFilter:            upscale.FilterPixelPerfect,
		},
		Width:  1920,
		Height: 1080,
		Title:  "Test window",
	}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	for _, text := range []string{"", "[Video]\n", "[Window]\r\nTitle=\r\n"} {
		cfg, err := ParseConfig(text)
		if err != nil {
			t.Fatalf("ParseConfig(%q): %v", text, err)
		}
		want := defaultConfig()
		if strings.Contains(text, "Title") {
			want.Title = ""
		}
		if cfg != want {
			t.Errorf("ParseConfig(%q) = %+v, want %+v", text, cfg, want)
		}
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"filter", "[Video]\nUpscalingFilter = lanczos", "[video]: unknown upscaling filter"},
		{"bool", "[Video]\nWidescreenMode = maybe", "[video]: widescreenmode"},
		{"int", "[Window]\nWidth = wide", "[window]: width"},
		{"size", "[Window]\nHeight = 0", "[window]: invalid window size 1280x0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.text)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.ini"))
	if err != nil {
		t.Fatalf("missing file: %v", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("missing file gave %+v, want defaults", cfg)
	}

	path := filepath.Join(dir, "presenter.ini")
	if err := os.WriteFile(path, []byte("\xef\xbb\xbf[Video]\r\nUpscalingFilter = bilinear\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Video.UpscalingFilter != upscale.FilterBilinear {
		t.Errorf("filter = %v, want Bilinear", cfg.Video.UpscalingFilter)
	}

	if err := os.WriteFile(path, []byte("[Video]\nWidescreenMode = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "presenter.ini") {
		t.Errorf("expected error naming the file, got %v", err)
	}
}

func TestSectionName(t *testing.T) {
	tests := []struct {
		line, name, rest string
	}{
		{"[Video]", "video", ""},
		{"[State 200, Hit] ; comment", "state", "200, Hit"},
		{"Video", "", ""},
		{"[Video", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		name, rest := SectionName(tt.line)
		if name != tt.name || rest != tt.rest {
			t.Errorf("SectionName(%q) = %q, %q; want %q, %q", tt.line, name, rest, tt.name, tt.rest)
		}
	}
}

func TestIniSection_Parse(t *testing.T) {
	lines := SplitAndTrim("a = 1\n  B=2  \nflag\n; note\nc = x ; y\n[Next]\nd = 4", "\n")
	is := NewIniSection()
	i := 0
	is.Parse(lines, &i)

	if i != 5 {
		t.Errorf("stopped at line %d, want 5", i)
	}
	want := map[string]string{"a": "1", "b": "2", "c": "x"}
	if len(is) != len(want) {
		t.Errorf("got %v, want %v", is, want)
	}
	for k, v := range want {
		if got, ok := is[k]; !ok || got != v {
			t.Errorf("is[%q] = %q, %v; want %q", k, got, ok, v)
		}
	}
}
