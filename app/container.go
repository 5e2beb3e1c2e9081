package app

import (
	"log/slog"

	"github.com/soocke/junction-planner-go/capture"
	"github.com/soocke/junction-planner-go/config"
	"github.com/soocke/junction-planner-go/domain/analysis"
	"github.com/soocke/junction-planner-go/domain/dashboard"
	"github.com/soocke/junction-planner-go/domain/junction"
	"github.com/soocke/junction-planner-go/ui/model"
	"github.com/soocke/junction-planner-go/ui/presenter"
	"github.com/soocke/junction-planner-go/ui/view"
)

// Container assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Analyzer      *analysis.Swappable
	Controller    *dashboard.Controller
	Notifications *model.NotificationModel
	Selection     *model.SelectionModel
	RootView      *view.RootView

	// Presenters
	UploadPresenter       *presenter.UploadPresenter
	DashboardPresenter    *presenter.DashboardPresenter
	DisplayPresenter      *presenter.DisplayPresenter
	NotificationPresenter *presenter.NotificationPresenter
	Loop                  *presenter.Loop
}

// BuildContainer constructs all components. No Tk widgets are created until
// RootView.Build runs.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Analyzer = analysis.NewSwappable(newSimulated(cfg, logger))
	c.Notifications = model.NewNotificationModel(cfg.NotificationTTL())
	c.Selection = model.NewSelectionModel()
	c.Controller = dashboard.NewController(c.Analyzer, c.Notifications, logger, dashboard.Options{
		InvalidateResultOnChange: cfg.InvalidateResultOnChange,
	})

	// View
	c.RootView = view.NewRootView(cfg, cfgPath, logger)

	var src capture.Source
	if cfg.ScreenCapture {
		src = capture.ScreenSource
	}
	c.UploadPresenter = presenter.NewUploadPresenter(c.Controller, c.RootView, c.RootView, c.RootView, c.Notifications, c.Selection, src, cfg.MaxUploadBytes, logger)
	c.DisplayPresenter = presenter.NewDisplayPresenter(c.RootView, nil, cfg.ChartWidth, cfg.ChartHeight, logger)
	c.DashboardPresenter = presenter.NewDashboardPresenter(c.Controller, c.RootView, c.DisplayPresenter, c.Selection, logger)
	c.NotificationPresenter = presenter.NewNotificationPresenter(c.Notifications, c.RootView)
	c.Controller.AddListener(c.DashboardPresenter.OnState)
	c.Controller.AddListener(func(prev, next dashboard.State) {
		logger.Debug("dashboard state", "from", prev.String(), "to", next.String())
	})
	return c
}

func newSimulated(cfg *config.Config, logger *slog.Logger) *analysis.Simulated {
	return analysis.NewSimulated(cfg.AnalysisDelay(), cfg.MinGreenSeconds, cfg.MaxGreenSeconds, logger)
}

// ApplyConfig installs a simulated analyzer for the updated settings. An
// analysis already running finishes with the old one.
func (c *AppContainer) ApplyConfig(cfg *config.Config) {
	c.Analyzer.Set(newSimulated(cfg, c.Logger))
	c.Logger.Info("analysis settings applied",
		"delay_ms", cfg.AnalysisDelayMs, "min_green", cfg.MinGreenSeconds, "max_green", cfg.MaxGreenSeconds)
}

// Handlers binds the view's user actions to the presenters.
func (c *AppContainer) Handlers(exportChart, toggleDark func()) view.Handlers {
	h := view.Handlers{
		Analyze:     c.DashboardPresenter.Analyze,
		Reset:       c.DashboardPresenter.Reset,
		ExportChart: exportChart,
		ToggleDark:  toggleDark,
		Dismiss:     c.NotificationPresenter.Dismiss,
		ApplyConfig: c.ApplyConfig,
		Notifier:    c.Notifications,
		Upload: view.UploadHandlers{
			Choose: func(d junction.Direction) { _ = c.UploadPresenter.Choose(d) },
			Remove: func(d junction.Direction) { _ = c.UploadPresenter.RemoveFile(d) },
		},
	}
	if c.Config.ScreenCapture {
		h.Upload.Capture = func(d junction.Direction) { _ = c.UploadPresenter.CaptureScreen(d) }
	}
	return h
}
