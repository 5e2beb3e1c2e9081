package view

import (
	"image"
	"log/slog"

	"github.com/soocke/junction-planner-go/assets"
	"github.com/soocke/junction-planner-go/config"
	"github.com/soocke/junction-planner-go/domain/dashboard"
	"github.com/soocke/junction-planner-go/domain/junction"
	"github.com/soocke/junction-planner-go/domain/signal"
	"github.com/soocke/junction-planner-go/ui/model"
	"github.com/soocke/junction-planner-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions wired by the app container.
type Handlers struct {
	Analyze     func()
	Reset       func()
	ExportChart func()
	ToggleDark  func()
	Dismiss     func()
	ApplyConfig func(*config.Config)
	Notifier    dashboard.Notifier
	Upload      UploadHandlers
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Upload      UploadPanel
	Display     DurationDisplay
	ConfigPanel ConfigPanel
	Toast       ToastBanner

	// Widgets
	StateLabel *TLabelWidget
	analyzeBtn *TButtonWidget
	exportBtn  *ButtonWidget
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	p := theme.CurrentPalette()

	// Row 0: header
	header := Frame(Background(p.Header))
	Grid(header, Row(0), Column(0), Columnspan(2), Sticky("we"))
	if len(assets.TrafficLightPNG) > 0 {
		icon := Label(Image(NewPhoto(Data(assets.TrafficLightPNG))), Background(p.Header))
		Grid(icon, In(header), Row(0), Column(0), Rowspan(2), Padx("1m"), Pady("0.5m"))
	}
	title := TLabel(Txt("Smart Traffic Management"), Style(theme.StyleHeaderLabel))
	Grid(title, In(header), Row(0), Column(1), Sticky("w"), Padx("1m"))
	subtitle := Label(Txt("AI-Powered Junction Optimization System"), Foreground("white"), Background(p.Header))
	Grid(subtitle, In(header), Row(1), Column(1), Sticky("w"), Padx("1m"), Pady("0.3m"))
	active := Label(Txt("● System Active"), Foreground("white"), Background(p.Header))
	Grid(active, In(header), Row(0), Column(2), Sticky("e"), Padx("1m"))
	GridColumnConfigure(header.Window, 1, Weight(1))

	// Row 1: notifications
	rv.Toast = NewToastBanner(1, 2, h.Dismiss)

	// Row 2, left: upload cards
	uploads := Frame(Borderwidth(1), Relief("groove"))
	Grid(uploads, Row(2), Column(0), Sticky("nswe"), Padx("0.4m"), Pady("0.4m"))
	uploadTitle := Label(Txt("Upload Junction Images"), Anchor("w"))
	Grid(uploadTitle, In(uploads), Row(0), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"))
	pw, ph := 220, 128
	cw, ch := 360, 220
	if rv.cfg != nil {
		pw, ph = rv.cfg.PreviewWidth, rv.cfg.PreviewHeight
		cw, ch = rv.cfg.ChartWidth, rv.cfg.ChartHeight
	}
	rv.Upload = NewUploadPanel(uploads, 1, pw, ph, h.Upload)

	// Row 2, right: control panel, settings and durations
	controls := Frame(Borderwidth(1), Relief("groove"))
	Grid(controls, Row(2), Column(1), Sticky("nswe"), Padx("0.4m"), Pady("0.4m"))
	row := 0
	ctlTitle := Label(Txt("Control Panel"), Anchor("w"))
	Grid(ctlTitle, In(controls), Row(row), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"))
	row++
	rv.analyzeBtn = TButton(Txt("Analyze Traffic"), Style(theme.StyleAnalyzeButton), Command(h.Analyze))
	Grid(rv.analyzeBtn, In(controls), Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++
	resetBtn := Button(Txt("Reset Dashboard"), Command(h.Reset))
	Grid(resetBtn, In(controls), Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++
	rv.exportBtn = Button(Txt("Export Chart"), State("disabled"), Command(h.ExportChart))
	Grid(rv.exportBtn, In(controls), Row(row), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	darkBtn := Button(Txt("Dark Mode"), Command(h.ToggleDark))
	Grid(darkBtn, In(controls), Row(row), Column(1), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.2m"))
	row++
	rv.StateLabel = TLabel(Txt("State: <none>"), Style(theme.StyleStateLabel))
	Grid(rv.StateLabel, In(controls), Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++

	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.ApplyConfig, h.Notifier)
	row = rv.ConfigPanel.Build(controls, row)
	rv.Display, _ = NewDurationDisplay(controls, row, cw, ch)
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// SetProcessing swaps the analyze button into its busy form.
func (rv *RootView) SetProcessing(busy bool) {
	if rv == nil || rv.analyzeBtn == nil {
		return
	}
	if rv.Display != nil {
		rv.Display.SetPending(busy)
	}
	if busy {
		rv.analyzeBtn.Configure(Txt("Processing..."), State("disabled"))
		return
	}
	rv.analyzeBtn.Configure(Txt("Analyze Traffic"), State("normal"))
}

// SetConfigEditable toggles config panel editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

// ConfigEditable redirects to SetConfigEditable to satisfy presenter.ControlView.
func (rv *RootView) ConfigEditable(b bool) { rv.SetConfigEditable(b) }

// ClearSlots resets every direction card.
func (rv *RootView) ClearSlots() {
	if rv != nil && rv.Upload != nil {
		rv.Upload.ClearAll()
	}
}

// --- UploadPresenter view contract ---

func (rv *RootView) ShowSlot(d junction.Direction, fileName string, preview dashboard.PreviewHandle) {
	if rv != nil && rv.Upload != nil {
		rv.Upload.ShowSlot(d, fileName, preview)
	}
}

func (rv *RootView) ClearSlot(d junction.Direction) {
	if rv != nil && rv.Upload != nil {
		rv.Upload.ClearSlot(d)
	}
}

// NewPreview builds a Tk photo preview for the upload card.
func (rv *RootView) NewPreview(d junction.Direction, img image.Image) (dashboard.PreviewHandle, error) {
	if rv == nil || rv.Upload == nil {
		return nil, nil
	}
	return rv.Upload.NewPreview(d, img)
}

// ChooseImage opens the file dialog for d.
func (rv *RootView) ChooseImage(d junction.Direction, initial string) string {
	if rv == nil || rv.Upload == nil {
		return ""
	}
	return rv.Upload.ChooseImage(d, initial)
}

// --- DisplayPresenter view contract ---

func (rv *RootView) ShowDurations(s signal.Summary, chart image.Image) {
	if rv == nil || rv.Display == nil {
		return
	}
	rv.Display.ShowDurations(s, chart)
	if rv.exportBtn != nil {
		rv.exportBtn.Configure(State("normal"))
	}
}

func (rv *RootView) HideDurations() {
	if rv == nil || rv.Display == nil {
		return
	}
	rv.Display.HideDurations()
	if rv.exportBtn != nil {
		rv.exportBtn.Configure(State("disabled"))
	}
}

// --- NotificationPresenter view contract ---

func (rv *RootView) ShowToast(t model.Toast) {
	if rv != nil && rv.Toast != nil {
		rv.Toast.ShowToast(t)
	}
}

func (rv *RootView) HideToast() {
	if rv != nil && rv.Toast != nil {
		rv.Toast.HideToast()
	}
}
