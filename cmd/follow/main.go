package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"follow/internal/config"
	"follow/internal/debug"
	"follow/internal/follow"
	"follow/internal/page"
	"follow/internal/pointer"
	"follow/internal/render"
	"follow/internal/utils"

	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", "", "Path to follow.yaml (default: discovered)")
	pagePath := flag.String("page", "", "HTML page to run the effect on")
	backend := flag.String("backend", "", "Host backend: terminal or window")
	pointerName := flag.String("pointer", "", "Pointer source: local, x11, robotgo or hook")
	factor := flag.Int("factor", 0, "Override the movement factor")
	debugFlag := flag.Bool("debug", false, "Enable debug markers and verbose logging")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error")
	inspect := flag.Bool("inspect", false, "Print the tracked elements of the page and exit")
	flag.Parse()

	cfg, foundPath, err := config.Discover(*configPath)
	if err != nil {
		utils.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	overrides := flagOverrides{
		page:     *pagePath,
		backend:  *backend,
		pointer:  *pointerName,
		factor:   *factor,
		debug:    *debugFlag,
		logLevel: *logLevel,
	}
	overrides.apply(cfg)

	if len(flag.Args()) > 0 && *pagePath == "" {
		cfg.Host.Page = flag.Arg(0)
	}

	level, err := utils.ParseLevel(cfg.Host.LogLevel)
	if err != nil {
		utils.Warn("%v, keeping %s", err, utils.CurrentLevel)
	} else {
		utils.CurrentLevel = level
	}
	if cfg.Options().Debug {
		utils.CurrentLevel = utils.LevelDebug
	}

	resolved := utils.ResolvePath(cfg.Host.Page)
	if resolved == "" {
		utils.Error("Page not found: %s", cfg.Host.Page)
		os.Exit(1)
	}

	doc, err := page.Load(resolved)
	if err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
	utils.Info("Page loaded: %s (%d boxes)", resolved, len(doc.Boxes()))

	if *inspect {
		engine, _ := buildEngine(doc, cfg, overrides, nil)
		if !engine.Options().AutoStart {
			engine.Initiate()
		}
		fmt.Print(report(resolved, engine))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, doc, cfg, foundPath, overrides); err != nil {
		utils.Error("%v", err)
		os.Exit(1)
	}
}

// host is what run needs from either backend.
type host interface {
	SetEngine(*follow.Engine)
	SetOverlay(*debug.Overlay)
}

func run(ctx context.Context, doc *page.Document, cfg *config.File, configPath string, overrides flagOverrides) error {
	source, err := pointer.New(cfg.Host.Pointer)
	if err != nil {
		return err
	}

	var (
		h        host
		terminal *render.Terminal
		window   *render.Window
	)

	switch cfg.Host.Backend {
	case "window":
		window = render.NewWindow(doc, render.WindowOptions{
			Width:        cfg.Host.Width,
			Height:       cfg.Host.Height,
			Scaling:      cfg.Host.Scaling,
			LocalPointer: source == nil,
		})
		h = window
	default:
		// the terminal belongs to tcell now, keep the log out of it
		logFile, err := os.CreateTemp("", "follow-*.log")
		if err == nil {
			utils.Info("Logging to %s", logFile.Name())
			log.SetOutput(logFile)
			defer logFile.Close()
		}

		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to create terminal screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to init terminal screen: %w", err)
		}
		defer screen.Fini()
		terminal = render.NewTerminal(screen, doc, cfg.Host.CellX, cfg.Host.CellY)
		h = terminal
	}

	current := &session{}
	current.swap(func() (*follow.Engine, *debug.Overlay) {
		return buildEngine(doc, cfg, overrides, h)
	})
	defer current.close()

	if source != nil {
		go func() {
			if err := source.Run(ctx, doc.MovePointer); err != nil {
				utils.Error("Pointer source %s stopped: %v", cfg.Host.Pointer, err)
			}
		}()
	}

	if configPath != "" {
		reloads, err := config.Watch(ctx, configPath)
		if err != nil {
			utils.Warn("Config hot reload disabled: %v", err)
		} else {
			go func() {
				first := true
				for next := range reloads {
					if first {
						first = false
						continue
					}
					overrides.apply(next)
					utils.Info("Config changed, rebuilding engine")
					current.swap(func() (*follow.Engine, *debug.Overlay) {
						return buildEngine(doc, next, overrides, h)
					})
				}
			}()
		}
	}

	if window != nil {
		window.Run(ctx, cfg.Host.FPS)
		return nil
	}
	return terminal.Run(ctx, cfg.Host.FPS)
}
