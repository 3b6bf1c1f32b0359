// Package dataset: annotation statistics used by filters.
package dataset

import (
	"math"

	"github.com/torvik/augmenta/annot"
)

// Selector narrows a statistic to annotations of one label. The zero value
// selects every annotation; set ID (≥ 0) or Name to narrow.
type Selector struct {
	ID   int
	Name string
}

// AnySelector matches every annotation.
var AnySelector = Selector{ID: annot.UnsetID}

// matches reports whether the selector accepts the label.
func (s Selector) matches(l annot.Label) bool {
	if s.ID >= 0 && l.ID != s.ID {
		return false
	}
	if s.Name != "" && l.Name != s.Name {
		return false
	}

	return true
}

// MetaInf is the statistics view over one image's annotations. It holds a
// reference, not a copy: compute it after the annotations are final.
type MetaInf struct {
	annots *annot.Annotations
}

// NewMetaInf wraps as for statistics queries.
func NewMetaInf(as *annot.Annotations) *MetaInf {
	return &MetaInf{annots: as}
}

// Count returns the number of annotations the selector accepts.
func (m *MetaInf) Count(sel Selector) int {
	n := 0
	for _, a := range m.annots.All() {
		if sel.matches(a.Label) {
			n++
		}
	}

	return n
}

// LabelIDs returns the distinct label IDs present, in first-seen order.
func (m *MetaInf) LabelIDs() []int {
	seen := make(map[int]struct{})
	var ids []int
	for _, a := range m.annots.All() {
		if _, ok := seen[a.Label.ID]; ok {
			continue
		}
		seen[a.Label.ID] = struct{}{}
		ids = append(ids, a.Label.ID)
	}

	return ids
}

// LabelNames returns the distinct label names present, in first-seen order.
func (m *MetaInf) LabelNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, a := range m.annots.All() {
		if a.Label.Name == "" {
			continue
		}
		if _, ok := seen[a.Label.Name]; ok {
			continue
		}
		seen[a.Label.Name] = struct{}{}
		names = append(names, a.Label.Name)
	}

	return names
}

// stat folds f over the selected annotations. ok is false when the
// selector matched nothing.
func (m *MetaInf) stat(sel Selector, better func(cur, v float64) bool, f func(*annot.Annotation) float64) (float64, bool) {
	best := math.NaN()
	found := false
	var v float64
	for _, a := range m.annots.All() {
		if !sel.matches(a.Label) {
			continue
		}
		v = f(a)
		if !found || better(best, v) {
			best = v
			found = true
		}
	}

	return best, found
}

// less and greater are the fold directions for min/max statistics.
func less(cur, v float64) bool    { return v < cur }
func greater(cur, v float64) bool { return v > cur }

// MinArea returns the smallest selected annotation area.
func (m *MetaInf) MinArea(sel Selector) (float64, bool) {
	return m.stat(sel, less, func(a *annot.Annotation) float64 { return a.Boundary.Area() })
}

// MaxArea returns the largest selected annotation area.
func (m *MetaInf) MaxArea(sel Selector) (float64, bool) {
	return m.stat(sel, greater, func(a *annot.Annotation) float64 { return a.Boundary.Area() })
}

// MinWidth returns the smallest selected annotation width.
func (m *MetaInf) MinWidth(sel Selector) (float64, bool) {
	return m.stat(sel, less, func(a *annot.Annotation) float64 { return a.Boundary.Width() })
}

// MaxWidth returns the largest selected annotation width.
func (m *MetaInf) MaxWidth(sel Selector) (float64, bool) {
	return m.stat(sel, greater, func(a *annot.Annotation) float64 { return a.Boundary.Width() })
}

// MinHeight returns the smallest selected annotation height.
func (m *MetaInf) MinHeight(sel Selector) (float64, bool) {
	return m.stat(sel, less, func(a *annot.Annotation) float64 { return a.Boundary.Height() })
}

// MaxHeight returns the largest selected annotation height.
func (m *MetaInf) MaxHeight(sel Selector) (float64, bool) {
	return m.stat(sel, greater, func(a *annot.Annotation) float64 { return a.Boundary.Height() })
}
