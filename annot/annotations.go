package annot

// Annotation binds one labeled boundary of an image. Valid mirrors the
// boundary validity and doubles as a soft-delete flag for filters.
type Annotation struct {
	Label    Label
	Boundary *Boundary
	Valid    bool
}

// verify folds boundary degeneracy into the annotation flag. A cleared flag
// never turns back on.
func (a *Annotation) verify() {
	if !a.Valid {
		return
	}
	a.Valid = a.Boundary.Valid()
}

// Annotations is the collection of labeled boundaries of one image. All
// mutating operations keep every boundary clipped to the shared border.
type Annotations struct {
	kind   Kind
	border *Border
	annots []*Annotation
}

// NewAnnotations constructs an empty collection for an image of the given
// dimensions. Every boundary added later is interpreted with kind.
func NewAnnotations(width, height int, kind Kind) *Annotations {
	return &Annotations{
		kind:   kind,
		border: NewBorder(width, height),
	}
}

// Width returns the current base width of the border frame.
func (as *Annotations) Width() int { return as.border.Width() }

// Height returns the current base height of the border frame.
func (as *Annotations) Height() int { return as.border.Height() }

// Kind returns the boundary kind of the collection.
func (as *Annotations) Kind() Kind { return as.kind }

// Border exposes the shared border for frame adjustments (letterboxing,
// mosaic stitching). Mutations through it affect all boundaries' clipping.
func (as *Annotations) Border() *Border { return as.border }

// Len returns the number of annotations, valid or not.
func (as *Annotations) Len() int { return len(as.annots) }

// All returns the annotation slice. The slice is live; callers must not
// grow or shrink it.
func (as *Annotations) All() []*Annotation { return as.annots }

// Add appends a new annotation of the collection's kind over pts.
// Returns ErrNoPoints or ErrUnknownKind from boundary construction.
func (as *Annotations) Add(label Label, pts []Point) error {
	b, err := NewBoundary(as.kind, pts, as.border)
	if err != nil {
		return err
	}
	as.annots = append(as.annots, &Annotation{Label: label, Boundary: b, Valid: b.Valid()})

	return nil
}

// Clean drops every annotation whose Valid flag is cleared.
func (as *Annotations) Clean() {
	kept := as.annots[:0]
	for _, a := range as.annots {
		if a.Valid {
			kept = append(kept, a)
		}
	}
	as.annots = kept
}

// Filter clears the Valid flag of every annotation whose label ID or name
// appears in dropIDs/dropNames, then Cleans.
func (as *Annotations) Filter(dropIDs []int, dropNames []string) {
	ids := make(map[int]struct{}, len(dropIDs))
	for _, id := range dropIDs {
		ids[id] = struct{}{}
	}
	names := make(map[string]struct{}, len(dropNames))
	for _, n := range dropNames {
		names[n] = struct{}{}
	}
	for _, a := range as.annots {
		if _, ok := ids[a.Label.ID]; ok {
			a.Valid = false
			continue
		}
		if _, ok := names[a.Label.Name]; ok {
			a.Valid = false
		}
	}
	as.Clean()
}

// Shift translates all boundaries by (dx, dy) pixels and re-clips them.
func (as *Annotations) Shift(dx, dy float64) {
	for _, a := range as.annots {
		a.Boundary.Shift(dx, dy)
		a.Boundary.Clip()
		a.verify()
	}
}

// Scale multiplies all boundary coordinates by (sx, sy) and re-clips them.
// The border itself is not scaled; use ScaleBorder first when the frame
// grows with the content.
func (as *Annotations) Scale(sx, sy float64) {
	for _, a := range as.annots {
		a.Boundary.ScalePoints(sx, sy)
		a.Boundary.Clip()
		a.verify()
	}
}

// Rotate turns all boundaries by deg degrees about the frame center and
// re-clips them.
func (as *Annotations) Rotate(deg float64) {
	for _, a := range as.annots {
		a.Boundary.Rotate(deg)
		a.Boundary.Clip()
		a.verify()
	}
}

// SetBorder moves the border corners, adapting the frame to a crop or an
// extension of the image.
func (as *Annotations) SetBorder(xMin, yMin, xMax, yMax int) {
	as.border.Set(xMin, yMin, xMax, yMax)
}

// ScaleBorder moves the border corners to a frame scaled by (xScale, yScale).
func (as *Annotations) ScaleBorder(xScale, yScale float64) {
	as.border.Scale(xScale, yScale)
}

// RebaseBorder folds pending corner state into the base frame.
func (as *Annotations) RebaseBorder() {
	as.border.Rebase()
}

// Crop narrows the frame to [xMin,xMax)×[yMin,yMax): boundaries are clipped
// to the crop window, shifted into the new origin, and the border is rebased.
func (as *Annotations) Crop(xMin, yMin, xMax, yMax int) {
	as.border.Set(xMin, yMin, xMax, yMax)
	for _, a := range as.annots {
		a.Boundary.Clip()
		a.Boundary.Shift(-float64(xMin), -float64(yMin))
		a.verify()
	}
	as.border.Rebase()
}

// Merge appends clones of every annotation of other to the collection.
// Boundaries are re-bound to the receiver's border and re-clipped.
func (as *Annotations) Merge(other *Annotations) {
	for _, a := range other.annots {
		cl := &Annotation{
			Label:    a.Label,
			Boundary: a.Boundary.clone(as.border),
			Valid:    a.Valid,
		}
		cl.Boundary.Clip()
		cl.verify()
		as.annots = append(as.annots, cl)
	}
}

// Clone returns a deep copy: border, boundaries and flags are independent.
func (as *Annotations) Clone() *Annotations {
	border := as.border.Clone()
	cp := &Annotations{
		kind:   as.kind,
		border: border,
		annots: make([]*Annotation, len(as.annots)),
	}
	for i, a := range as.annots {
		cp.annots[i] = &Annotation{
			Label:    a.Label,
			Boundary: a.Boundary.clone(border),
			Valid:    a.Valid,
		}
	}

	return cp
}
