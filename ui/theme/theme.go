package theme

// Centralized theming for the junction dashboard. Palette constants, the
// traffic colours and InitStyles, which activates a base theme and configures
// the semantic widget styles.

import (
	"github.com/soocke/junction-planner-go/domain/junction"
	"github.com/soocke/junction-planner-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f1f5f9" // app background
	ColorSurface   = "#ffffff" // panels, cards
	ColorBorder    = "#d0d7de"
	ColorHeader    = "#1e3a8a"
	ColorPrimary   = "#2563eb"
	ColorDanger    = "#dc2626"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"

	ColorTrafficGreen  = "#16a34a"
	ColorTrafficYellow = "#eab308"
	ColorTrafficRed    = "#dc2626"
)

// DirectionColor returns the accent colour for d, matching the chart bars.
func DirectionColor(d junction.Direction) string { return images.DirectionColors.Get(d) }

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Header    string
	Primary   string
	Danger    string
	Success   string
	Text      string
	TextMuted string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:     "#0f172a",
			Surface:   "#1e293b",
			Border:    "#334155",
			Header:    "#1e40af",
			Primary:   "#3b82f6",
			Danger:    "#ef4444",
			Success:   "#22c55e",
			Text:      "#f1f5f9",
			TextMuted: "#94a3b8",
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Border:    ColorBorder,
		Header:    ColorHeader,
		Primary:   ColorPrimary,
		Danger:    ColorDanger,
		Success:   ColorTrafficGreen,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// style names used with Style("analyze.TButton") etc.
const (
	StyleAnalyzeButton = "analyze.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleHeaderLabel   = "header.TLabel"
	StyleStateLabel    = "state.TLabel"
	StyleMutedLabel    = "muted.TLabel"
)

var darkMode bool

// InitStyles (re)applies styles for the current darkMode value.
func InitStyles() { applyStyles(darkMode) }

// SetDark sets dark mode and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(darkMode)
	return darkMode
}

// ToggleDark flips dark mode and reapplies styles. Returns new mode value.
func ToggleDark() bool { return SetDark(!darkMode) }

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(dark bool) {
	theme := "azure light"
	if dark {
		theme = "azure dark"
	}
	_ = ActivateTheme(theme)
	p := CurrentPalette()
	App.Configure(Background(p.AppBg))

	StyleConfigure(StyleAnalyzeButton,
		Background(p.Success),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(p.Danger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleHeaderLabel,
		Foreground("white"),
		Background(p.Header),
		Padding("6p 4p"),
	)
	StyleConfigure(StyleMutedLabel,
		Foreground(p.TextMuted),
		Background(p.Surface),
	)
	StyleConfigure(StyleStateLabel,
		Foreground("white"),
		Background(p.Success),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
