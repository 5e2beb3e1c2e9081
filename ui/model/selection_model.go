package model

import (
	"github.com/soocke/junction-planner-go/domain/junction"
)

// SelectionModel remembers the last path picked in each direction's file
// chooser. Clearing it lets the same file be picked again after removal.
// No synchronization needed: all access happens on the UI thread.
type SelectionModel struct {
	paths junction.PerDirection[string]
}

func NewSelectionModel() *SelectionModel { return &SelectionModel{} }

// Remember stores path as the chooser selection for d.
func (m *SelectionModel) Remember(d junction.Direction, path string) {
	if m == nil {
		return
	}
	m.paths.Set(d, path)
}

// Clear forgets the chooser selection for d.
func (m *SelectionModel) Clear(d junction.Direction) {
	if m == nil {
		return
	}
	m.paths.Set(d, "")
}

// ClearAll forgets every chooser selection.
func (m *SelectionModel) ClearAll() {
	if m == nil {
		return
	}
	m.paths = junction.PerDirection[string]{}
}

// Path returns the remembered selection for d (may be empty).
func (m *SelectionModel) Path(d junction.Direction) string {
	if m == nil {
		return ""
	}
	return m.paths.Get(d)
}
