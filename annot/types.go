// Package annot defines labels, boundary kinds, and sentinel errors for
// annotation bookkeeping.
package annot

import "errors"

// Sentinel errors for annotation operations.
var (
	// ErrEmptyLabel indicates a label with neither an ID nor a name.
	ErrEmptyLabel = errors.New("annot: label requires an id or a name")
	// ErrNoPoints indicates a boundary constructed from an empty point set.
	ErrNoPoints = errors.New("annot: boundary requires at least one point")
	// ErrUnknownKind indicates a boundary kind outside the declared enum.
	ErrUnknownKind = errors.New("annot: unknown boundary kind")
)

// Kind selects the geometric interpretation of a boundary's point set.
type Kind int

const (
	// BBox is an axis-aligned bounding box, canonicalized to min/max corners.
	BBox Kind = iota
	// KeyPoints is a set of independent landmark points with no area.
	KeyPoints
	// Polygon is a closed polygon; its area follows the shoelace formula.
	Polygon
)

// String returns the lowercase kind name used in annotation files.
func (k Kind) String() string {
	switch k {
	case BBox:
		return "bbox"
	case KeyPoints:
		return "keypoints"
	case Polygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// ParseKind maps an annotation-file kind name to its Kind.
// Returns ErrUnknownKind for anything else.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "bbox":
		return BBox, nil
	case "keypoints":
		return KeyPoints, nil
	case "polygon":
		return Polygon, nil
	default:
		return 0, ErrUnknownKind
	}
}

// UnsetID marks a label whose numeric ID was never assigned.
const UnsetID = -1

// Label identifies the class of an annotation. At least one of ID (≥ 0)
// or Name must be set.
type Label struct {
	ID   int
	Name string
}

// NewLabel constructs a Label. Pass UnsetID when only a name is known.
// Returns ErrEmptyLabel if id < 0 and name is empty.
func NewLabel(id int, name string) (Label, error) {
	if id < 0 && name == "" {
		return Label{}, ErrEmptyLabel
	}
	if id < 0 {
		id = UnsetID
	}

	return Label{ID: id, Name: name}, nil
}

// Point is one (x, y) coordinate of a boundary.
type Point = [2]float64
