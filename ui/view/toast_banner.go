package view

import (
	"github.com/soocke/junction-planner-go/domain/dashboard"
	"github.com/soocke/junction-planner-go/ui/model"
	"github.com/soocke/junction-planner-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// ToastBanner is a single-line notification strip under the header.
type ToastBanner interface {
	ShowToast(t model.Toast)
	HideToast()
}

type toastBanner struct {
	title *LabelWidget
	desc  *LabelWidget
}

// NewToastBanner grids the banner at row spanning cols columns. onDismiss runs
// when the banner is clicked.
func NewToastBanner(row, cols int, onDismiss func()) ToastBanner {
	p := theme.CurrentPalette()
	frame := Frame(Background(p.AppBg))
	Grid(frame, Row(row), Column(0), Columnspan(cols), Sticky("we"), Padx("0.4m"))
	b := &toastBanner{
		title: Label(Txt(""), Background(p.AppBg), Anchor("w")),
		desc:  Label(Txt(""), Background(p.AppBg), Anchor("w")),
	}
	Grid(b.title, In(frame), Row(0), Column(0), Sticky("w"), Padx("0.3m"))
	Grid(b.desc, In(frame), Row(0), Column(1), Sticky("w"), Padx("0.3m"))
	if onDismiss != nil {
		Bind(b.title, "<Button-1>", Command(onDismiss))
		Bind(b.desc, "<Button-1>", Command(onDismiss))
	}
	return b
}

func (b *toastBanner) ShowToast(t model.Toast) {
	if b == nil {
		return
	}
	p := theme.CurrentPalette()
	bg, fg := p.Surface, p.Text
	if t.Variant == dashboard.VariantDestructive {
		bg, fg = p.Danger, "white"
	}
	b.title.Configure(Txt(t.Title), Background(bg), Foreground(fg))
	b.desc.Configure(Txt(t.Description), Background(bg), Foreground(fg))
}

func (b *toastBanner) HideToast() {
	if b == nil {
		return
	}
	p := theme.CurrentPalette()
	b.title.Configure(Txt(""), Background(p.AppBg))
	b.desc.Configure(Txt(""), Background(p.AppBg))
}
