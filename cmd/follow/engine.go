package main

import (
	"sync"

	"follow/internal/config"
	"follow/internal/debug"
	"follow/internal/follow"
	"follow/internal/page"
	"follow/internal/utils"
)

// flagOverrides are command line values that win over the config file, also
// after a reload.
type flagOverrides struct {
	page     string
	backend  string
	pointer  string
	factor   int
	debug    bool
	logLevel string
}

func (o flagOverrides) apply(cfg *config.File) {
	if o.page != "" {
		cfg.Host.Page = o.page
	}
	if o.backend != "" {
		cfg.Host.Backend = o.backend
	}
	if o.pointer != "" {
		cfg.Host.Pointer = o.pointer
	}
	if o.logLevel != "" {
		cfg.Host.LogLevel = o.logLevel
	}
	if cfg.Follow == nil {
		cfg.Follow = map[string]any{}
	}
	if o.factor > 0 {
		cfg.Follow["factor"] = o.factor
	}
	if o.debug {
		cfg.Follow["debug"] = true
	}
}

// buildEngine creates the engine for doc and hands it to h. A page that asks
// for auto start through its script tag gets a default-configured engine.
func buildEngine(doc *page.Document, cfg *config.File, overrides flagOverrides, h host) (*follow.Engine, *debug.Overlay) {
	input := cfg.Follow
	if doc.AutoStart() {
		utils.Info("Page requests auto start, using default options")
		input = nil
		if overrides.debug {
			input = map[string]any{"debug": true}
		}
	}

	var (
		opts    []follow.Option
		overlay *debug.Overlay
	)
	if follow.ResolveOptions(input).Debug {
		overlay = debug.NewOverlay()
		opts = append(opts, follow.WithObserver(overlay))
	}
	// rebuilt engines start from the transforms the page was written with
	opts = append(opts, follow.WithRestore())

	if h != nil {
		h.SetOverlay(overlay)
	}
	engine := follow.New(doc, input, opts...)
	if h != nil {
		h.SetEngine(engine)
	}

	if !engine.Options().AutoStart {
		utils.Info("Auto start disabled, refresh to initiate")
	}
	return engine, overlay
}

// session holds the engine currently driving the page. Config reloads swap it.
type session struct {
	mu      sync.Mutex
	engine  *follow.Engine
	overlay *debug.Overlay
}

// swap tears the current engine down before build runs, so the new engine
// sees the page's own transforms.
func (s *session) swap(build func() (*follow.Engine, *debug.Overlay)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop()
	s.engine, s.overlay = build()
}

func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop()
}

func (s *session) stop() {
	if s.engine != nil {
		s.engine.Destroy()
	}
	if s.overlay != nil {
		s.overlay.Close()
	}
	s.engine, s.overlay = nil, nil
}
