package view

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/soocke/junction-planner-go/config"
	"github.com/soocke/junction-planner-go/domain/dashboard"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the analysis settings form and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	onApply  func(*config.Config)
	notifier dashboard.Notifier
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg. onApply runs after a
// successful apply with the updated config; rejected input goes to notifier.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApply func(*config.Config), notifier dashboard.Notifier) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApply: onApply, notifier: notifier, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(parent *FrameWidget, startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(10))
		Grid(w, In(parent), Row(row), Column(1), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("analysisDelayMs", "Analysis Delay (ms)", fmt.Sprintf("%d", c.AnalysisDelayMs))
	makeRow("minGreen", "Min Green (s)", fmt.Sprintf("%d", c.MinGreenSeconds))
	makeRow("maxGreen", "Max Green (s)", fmt.Sprintf("%d", c.MaxGreenSeconds))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, In(parent), Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg, err := v.cfg.WithAnalysisSettings(
		v.text(v.widgets["analysisDelayMs"]),
		v.text(v.widgets["minGreen"]),
		v.text(v.widgets["maxGreen"]),
	)
	if err != nil {
		if v.logger != nil {
			v.logger.Warn("settings rejected", "error", err)
		}
		if v.notifier != nil {
			v.notifier.Notify(dashboard.Notification{
				Title:       "Invalid settings",
				Description: strings.TrimPrefix(err.Error(), config.ErrInvalidSetting.Error()+": "),
				Variant:     dashboard.VariantDestructive,
			})
		}
		return
	}
	*v.cfg = *cfg
	if v.onApply != nil {
		v.onApply(v.cfg)
	}
	if v.cfgPath == "" {
		return
	}
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else {
		if v.logger != nil {
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
}
