package presenter

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/soocke/junction-planner-go/domain/dashboard"
	"github.com/soocke/junction-planner-go/domain/junction"
	"github.com/soocke/junction-planner-go/domain/upload"
	"github.com/soocke/junction-planner-go/ui/model"
)

type mockSlots struct {
	uploads map[junction.Direction]*dashboard.Slot
	removed []junction.Direction
	err     error
}

func (m *mockSlots) Upload(d junction.Direction, s *dashboard.Slot) error {
	if m.err != nil {
		return m.err
	}
	if m.uploads == nil {
		m.uploads = map[junction.Direction]*dashboard.Slot{}
	}
	m.uploads[d] = s
	return nil
}

func (m *mockSlots) Remove(d junction.Direction) error {
	m.removed = append(m.removed, d)
	return nil
}

type mockHandle struct{ released int }

func (h *mockHandle) Release() { h.released++ }

type mockPreviews struct {
	made []*mockHandle
	err  error
}

func (m *mockPreviews) NewPreview(d junction.Direction, img image.Image) (dashboard.PreviewHandle, error) {
	if m.err != nil {
		return nil, m.err
	}
	h := &mockHandle{}
	m.made = append(m.made, h)
	return h, nil
}

type mockChooser struct {
	path    string
	initial string
}

func (c *mockChooser) ChooseImage(d junction.Direction, initial string) string {
	c.initial = initial
	return c.path
}

type mockUploadView struct {
	shown   map[junction.Direction]string
	cleared []junction.Direction
}

func (v *mockUploadView) ShowSlot(d junction.Direction, name string, _ dashboard.PreviewHandle) {
	if v.shown == nil {
		v.shown = map[junction.Direction]string{}
	}
	v.shown[d] = name
}
func (v *mockUploadView) ClearSlot(d junction.Direction) { v.cleared = append(v.cleared, d) }

type notes struct{ got []dashboard.Notification }

func (n *notes) Notify(x dashboard.Notification) { n.got = append(n.got, x) }

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newUploadFixture(maxBytes int64) (*UploadPresenter, *mockSlots, *mockPreviews, *mockUploadView, *notes, *model.SelectionModel) {
	slots := &mockSlots{}
	previews := &mockPreviews{}
	view := &mockUploadView{}
	n := &notes{}
	sel := model.NewSelectionModel()
	p := NewUploadPresenter(slots, previews, nil, view, n, sel, nil, maxBytes, nil)
	return p, slots, previews, view, n, sel
}

func TestUploadPresenter_SelectFileStoresSlot(t *testing.T) {
	p, slots, previews, view, n, sel := newUploadFixture(upload.DefaultMaxBytes)
	path := writePNG(t, t.TempDir(), "north.png")
	if err := p.SelectFile(junction.North, path); err != nil {
		t.Fatalf("select: %v", err)
	}
	s := slots.uploads[junction.North]
	if s == nil || s.File.Name != "north.png" || s.File.MediaType != "image/png" || s.Image == nil {
		t.Fatalf("unexpected slot %+v", s)
	}
	if len(previews.made) != 1 || s.Preview != previews.made[0] {
		t.Fatalf("preview not bound to slot")
	}
	if view.shown[junction.North] != "north.png" {
		t.Fatalf("view not updated: %v", view.shown)
	}
	if sel.Path(junction.North) != path {
		t.Fatalf("selection not remembered")
	}
	if len(n.got) != 0 {
		t.Fatalf("presenter should leave success notifications to the controller, got %v", n.got)
	}
}

func TestUploadPresenter_EmptyPathIsNoop(t *testing.T) {
	p, slots, _, view, n, _ := newUploadFixture(upload.DefaultMaxBytes)
	if err := p.SelectFile(junction.East, ""); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(slots.uploads) != 0 || len(view.shown) != 0 || len(n.got) != 0 {
		t.Fatalf("cancelled chooser must not change anything")
	}
}

func TestUploadPresenter_RejectsNonImage(t *testing.T) {
	p, slots, _, _, n, sel := newUploadFixture(upload.DefaultMaxBytes)
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := p.SelectFile(junction.South, path)
	if !errors.Is(err, upload.ErrInvalidFileType) {
		t.Fatalf("expected invalid type, got %v", err)
	}
	if len(slots.uploads) != 0 || sel.Path(junction.South) != "" {
		t.Fatalf("rejected file must not be stored")
	}
	if len(n.got) != 1 || n.got[0].Title != "Invalid file" || n.got[0].Description != "Please select an image file" || n.got[0].Variant != dashboard.VariantDestructive {
		t.Fatalf("unexpected notifications %+v", n.got)
	}
}

func TestUploadPresenter_RejectsOversize(t *testing.T) {
	p, slots, _, _, n, _ := newUploadFixture(16)
	path := writePNG(t, t.TempDir(), "big.png")
	err := p.SelectFile(junction.West, path)
	if !errors.Is(err, upload.ErrFileTooLarge) {
		t.Fatalf("expected too large, got %v", err)
	}
	if len(slots.uploads) != 0 {
		t.Fatalf("oversize file stored")
	}
	if len(n.got) != 1 || n.got[0].Title != "File too large" {
		t.Fatalf("unexpected notifications %+v", n.got)
	}
}

func TestUploadPresenter_RejectedReplacementKeepsSlot(t *testing.T) {
	p, slots, previews, view, n, sel := newUploadFixture(upload.DefaultMaxBytes)
	dir := t.TempDir()
	first := writePNG(t, dir, "north.png")
	if err := p.SelectFile(junction.North, first); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	kept := slots.uploads[junction.North]

	txt := filepath.Join(dir, "north.txt")
	if err := os.WriteFile(txt, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := p.SelectFile(junction.North, txt); !errors.Is(err, upload.ErrInvalidFileType) {
		t.Fatalf("expected invalid type, got %v", err)
	}
	p.maxBytes = 16
	if err := p.SelectFile(junction.North, writePNG(t, dir, "north-big.png")); !errors.Is(err, upload.ErrFileTooLarge) {
		t.Fatalf("expected too large, got %v", err)
	}

	if slots.uploads[junction.North] != kept || kept.File.Name != "north.png" {
		t.Fatalf("slot replaced by rejected file: %+v", slots.uploads[junction.North].File)
	}
	if len(previews.made) != 1 || previews.made[0].released != 0 {
		t.Fatalf("preview of kept upload touched: made=%d", len(previews.made))
	}
	if view.shown[junction.North] != "north.png" || len(view.cleared) != 0 {
		t.Fatalf("card changed: shown=%v cleared=%v", view.shown, view.cleared)
	}
	if sel.Path(junction.North) != first {
		t.Fatalf("selection changed to %q", sel.Path(junction.North))
	}
	if len(n.got) != 2 || n.got[0].Title != "Invalid file" || n.got[1].Title != "File too large" {
		t.Fatalf("unexpected notifications %+v", n.got)
	}
}

func TestUploadPresenter_ChooseUsesRememberedPath(t *testing.T) {
	slots := &mockSlots{}
	sel := model.NewSelectionModel()
	sel.Remember(junction.North, "/old/north.png")
	chooser := &mockChooser{}
	p := NewUploadPresenter(slots, &mockPreviews{}, chooser, &mockUploadView{}, nil, sel, nil, upload.DefaultMaxBytes, nil)
	if err := p.Choose(junction.North); err != nil {
		t.Fatalf("choose: %v", err)
	}
	if chooser.initial != "/old/north.png" {
		t.Fatalf("chooser initial = %q", chooser.initial)
	}
	if len(slots.uploads) != 0 {
		t.Fatalf("cancelled chooser stored a slot")
	}
}

func TestUploadPresenter_UploadFailureReleasesPreview(t *testing.T) {
	p, slots, previews, view, _, _ := newUploadFixture(upload.DefaultMaxBytes)
	slots.err = dashboard.ErrClosed
	path := writePNG(t, t.TempDir(), "a.png")
	if err := p.SelectFile(junction.North, path); !errors.Is(err, dashboard.ErrClosed) {
		t.Fatalf("expected closed, got %v", err)
	}
	if len(previews.made) != 1 || previews.made[0].released != 1 {
		t.Fatalf("orphan preview not released")
	}
	if len(view.cleared) != 1 || view.cleared[0] != junction.North {
		t.Fatalf("card not cleared: %v", view.cleared)
	}
}

func TestUploadPresenter_RemoveClearsSelection(t *testing.T) {
	p, slots, _, view, _, sel := newUploadFixture(upload.DefaultMaxBytes)
	sel.Remember(junction.East, "/x/east.png")
	if err := p.RemoveFile(junction.East); err != nil {
		t.Fatal(err)
	}
	if sel.Path(junction.East) != "" {
		t.Fatalf("selection not cleared")
	}
	if len(slots.removed) != 1 || len(view.cleared) != 1 {
		t.Fatalf("remove not forwarded: removed=%v cleared=%v", slots.removed, view.cleared)
	}
}

func TestUploadPresenter_CaptureScreen(t *testing.T) {
	p, slots, _, _, n, _ := newUploadFixture(upload.DefaultMaxBytes)
	if err := p.CaptureScreen(junction.North); !errors.Is(err, ErrCaptureDisabled) {
		t.Fatalf("expected disabled, got %v", err)
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)))
	p.capture = func(d junction.Direction) (*upload.ImageFile, error) {
		return upload.FromBytes("screen-"+d.String()+".png", buf.Bytes()), nil
	}
	if err := p.CaptureScreen(junction.West); err != nil {
		t.Fatalf("capture: %v", err)
	}
	if slots.uploads[junction.West] == nil {
		t.Fatalf("captured slot not stored")
	}

	p.capture = func(junction.Direction) (*upload.ImageFile, error) { return nil, errors.New("no display") }
	if err := p.CaptureScreen(junction.South); err == nil {
		t.Fatalf("expected capture error")
	}
	if len(n.got) != 1 || n.got[0].Title != "Screen capture failed" {
		t.Fatalf("unexpected notifications %+v", n.got)
	}
}

func TestUploadPresenter_NilSafe(t *testing.T) {
	var p *UploadPresenter
	_ = p.Choose(junction.North)
	_ = p.SelectFile(junction.North, "x")
	_ = p.CaptureScreen(junction.North)
	_ = p.RemoveFile(junction.North)
}
