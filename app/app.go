package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/junction-planner-go/config"
	"github.com/soocke/junction-planner-go/debug"
	"github.com/soocke/junction-planner-go/domain/dashboard"
	"github.com/soocke/junction-planner-go/ui/images"
	"github.com/soocke/junction-planner-go/ui/presenter"
	"github.com/soocke/junction-planner-go/ui/theme"
)

const (
	tick = 100 * time.Millisecond
)

type app struct {
	c       *AppContainer
	logger  *slog.Logger
	afterID string
	cancel  context.CancelFunc
	closed  bool
}

// NewApp creates the main window and the component container.
func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{logger: logger}
	a.c = BuildContainer(cfg, cfgPath, logger)

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the layout, starts the tick loop and blocks in the Tk event loop.
func (a *app) Start() {
	cfg := a.c.Config
	theme.SetDark(cfg.DarkMode)
	a.c.RootView.Build(a.c.Handlers(a.exportChart, a.toggleDark))
	a.c.Loop = presenter.NewLoop(a.c.DashboardPresenter, a.c.NotificationPresenter, a.scheduleUpdate)

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	if cfg.Debug {
		debug.StartGoroutineLogger(ctx, 5*time.Second, a.logger, a.c.Controller.HeldBytes)
		debug.StartMemLogger(ctx, 5*time.Second, a.logger, a.c.Controller.HeldBytes)
	}

	a.logger.Info("dashboard started", "capture", cfg.ScreenCapture, "max_upload_bytes", cfg.MaxUploadBytes)
	a.c.Loop.Tick()
	App.Wait()
}

func (a *app) scheduleUpdate() {
	if a.closed {
		return
	}
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}

func (a *app) exitHandler() {
	if a.closed {
		return
	}
	a.closed = true
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	if a.cancel != nil {
		a.cancel()
	}
	a.c.Controller.Close()
	a.logger.Info("dashboard closed")
	Destroy(App)
}

func (a *app) toggleDark() {
	a.c.Config.DarkMode = theme.ToggleDark()
	a.logger.Debug("theme changed", "dark", a.c.Config.DarkMode)
}

// exportChart writes the current duration chart as PNG to a user-chosen file.
func (a *app) exportChart() {
	chart, ok := a.c.DisplayPresenter.Chart()
	if !ok {
		return
	}
	path := GetSaveFile(
		Title("Export Chart"),
		Defaultextension(".png"),
		Initialfile("signal-durations.png"),
		Filetypes([]FileType{{TypeName: "PNG image", Extensions: []string{".png"}}}),
	)
	if path == "" {
		return
	}
	if filepath.Ext(path) == "" {
		path += ".png"
	}
	if err := os.WriteFile(path, images.EncodePNG(chart), 0o644); err != nil {
		a.logger.Error("export chart", "path", path, "error", err)
		a.c.Notifications.Notify(dashboard.Notification{Title: "Export failed", Description: err.Error(), Variant: dashboard.VariantDestructive})
		return
	}
	a.logger.Info("chart exported", "path", path)
	a.c.Notifications.Notify(dashboard.Notification{Title: "Chart exported", Description: filepath.Base(path)})
}
