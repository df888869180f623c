package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/profile"

	"github.com/ikemen-engine/presenter/packages/logging"
)

var (
	configFile   = flag.String("config", "presenter.ini", "configuration file")
	cpuProfile   = flag.String("cpuprofile", "", "write a CPU profile into this directory")
	logLevel     = flag.String("loglevel", "info", "log level (debug, info, warn, error)")
	windowWidth  = flag.Int("width", 0, "window width, overrides the configuration")
	windowHeight = flag.Int("height", 0, "window height, overrides the configuration")
	fadeDuration = flag.Duration("fade", 500*time.Millisecond, "duration of the fade in and out")
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	chk(run())
}

func chk(err error) {
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("-loglevel: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logging.SetLogger(logger)

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile), profile.NoShutdownHook).Stop()
	}

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return err
	}
	if *windowWidth > 0 {
		cfg.Width = *windowWidth
	}
	if *windowHeight > 0 {
		cfg.Height = *windowHeight
	}

	window, err := initGLFW(cfg)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	return runGraphics(newApp(window, cfg, *fadeDuration).run)
}

func initGLFW(cfg Config) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	contextHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}
