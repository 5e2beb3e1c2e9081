package view

import (
	"image"
	"image/color"
	"path/filepath"
	"sync"

	"github.com/soocke/junction-planner-go/domain/dashboard"
	"github.com/soocke/junction-planner-go/domain/junction"
	"github.com/soocke/junction-planner-go/ui/images"
	"github.com/soocke/junction-planner-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// UploadHandlers are invoked from the direction card buttons.
type UploadHandlers struct {
	Choose  func(d junction.Direction)
	Remove  func(d junction.Direction)
	Capture func(d junction.Direction) // nil hides the capture button
}

// UploadPanel owns the four direction cards. It builds Tk photos for previews
// and asks the user for files.
type UploadPanel interface {
	ShowSlot(d junction.Direction, fileName string, preview dashboard.PreviewHandle)
	ClearSlot(d junction.Direction)
	ClearAll()
	NewPreview(d junction.Direction, img image.Image) (dashboard.PreviewHandle, error)
	ChooseImage(d junction.Direction, initial string) string
}

type uploadCard struct {
	preview  *LabelWidget
	fileName *LabelWidget
	choose   *ButtonWidget
	remove   *ButtonWidget
}

type uploadPanel struct {
	cards       junction.PerDirection[*uploadCard]
	placeholder *Img
	previewW    int
	previewH    int
}

// photoPreview wraps a Tk photo so the controller can release it.
type photoPreview struct {
	photo *Img
	once  sync.Once
}

func (p *photoPreview) Release() {
	p.once.Do(func() {
		if p.photo != nil {
			p.photo.Delete()
		}
	})
}

// NewUploadPanel builds a 2x2 grid of direction cards into parent starting at row.
func NewUploadPanel(parent *FrameWidget, row, previewW, previewH int, h UploadHandlers) UploadPanel {
	if previewW < 50 {
		previewW = 50
	}
	if previewH < 50 {
		previewH = 50
	}
	v := &uploadPanel{previewW: previewW, previewH: previewH}
	p := theme.CurrentPalette()
	v.placeholder = NewPhoto(Data(images.EncodePNG(images.Blank(previewW, previewH, color.RGBA{0xe2, 0xe8, 0xf0, 0xff}))))

	for i, d := range junction.Directions {
		card := Frame(Borderwidth(1), Relief("groove"), Background(p.Surface))
		Grid(card, In(parent), Row(row+i/2), Column(i%2), Sticky("nswe"), Padx("0.6m"), Pady("0.6m"))

		title := Label(Txt(d.Arrow()+"  "+d.Label()), Foreground(theme.DirectionColor(d)), Background(p.Surface), Anchor("w"))
		Grid(title, In(card), Row(0), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"))

		c := &uploadCard{}
		c.preview = Label(Image(v.placeholder), Borderwidth(1), Relief("sunken"))
		Grid(c.preview, In(card), Row(1), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
		c.fileName = Label(Txt("No file selected"), Foreground(p.TextMuted), Background(p.Surface), Anchor("w"))
		Grid(c.fileName, In(card), Row(2), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"))

		c.choose = Button(Txt("Choose File"), Command(func() {
			if h.Choose != nil {
				h.Choose(d)
			}
		}))
		Grid(c.choose, In(card), Row(3), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		c.remove = Button(Txt("Remove"), State("disabled"), Command(func() {
			if h.Remove != nil {
				h.Remove(d)
			}
		}))
		Grid(c.remove, In(card), Row(3), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		if h.Capture != nil {
			capBtn := Button(Txt("Capture Screen"), Command(func() { h.Capture(d) }))
			Grid(capBtn, In(card), Row(3), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		}
		v.cards.Set(d, c)
	}
	return v
}

// NewPreview scales img to the card size and creates a Tk photo for it.
func (v *uploadPanel) NewPreview(d junction.Direction, img image.Image) (dashboard.PreviewHandle, error) {
	if img == nil {
		return nil, nil
	}
	photo := NewPhoto(Data(images.Thumbnail(img, v.previewW, v.previewH)))
	return &photoPreview{photo: photo}, nil
}

// ShowSlot points the card at preview. The previous photo is left to the
// controller, which releases it once the slot is replaced.
func (v *uploadPanel) ShowSlot(d junction.Direction, fileName string, preview dashboard.PreviewHandle) {
	c := v.cards.Get(d)
	if c == nil {
		return
	}
	photo := v.placeholder
	if pp, ok := preview.(*photoPreview); ok && pp.photo != nil {
		photo = pp.photo
	}
	c.preview.Configure(Image(photo))
	c.fileName.Configure(Txt(fileName))
	c.choose.Configure(Txt("Change Image"))
	c.remove.Configure(State("normal"))
}

func (v *uploadPanel) ClearSlot(d junction.Direction) {
	c := v.cards.Get(d)
	if c == nil {
		return
	}
	c.preview.Configure(Image(v.placeholder))
	c.fileName.Configure(Txt("No file selected"))
	c.choose.Configure(Txt("Choose File"))
	c.remove.Configure(State("disabled"))
}

func (v *uploadPanel) ClearAll() {
	for _, d := range junction.Directions {
		v.ClearSlot(d)
	}
}

var imageFileTypes = []FileType{
	{TypeName: "Images", Extensions: []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}},
	{TypeName: "All files", Extensions: []string{"*"}},
}

// ChooseImage opens the native file dialog. Returns "" when cancelled.
func (v *uploadPanel) ChooseImage(d junction.Direction, initial string) string {
	opts := []Opt{Title("Select " + d.Label() + " image"), Filetypes(imageFileTypes)}
	if initial != "" {
		opts = append(opts, Initialdir(filepath.Dir(initial)), Initialfile(filepath.Base(initial)))
	}
	files := GetOpenFile(opts...)
	if len(files) == 0 {
		return ""
	}
	return files[0]
}
