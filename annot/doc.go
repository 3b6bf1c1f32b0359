// Package annot tracks the labeled regions of an image through augmentations.
//
// What:
//
//   - Label pairs a numeric ID with an optional name.
//   - Border is the mutable image frame annotations are clipped against; it
//     absorbs crops, scales and letterboxing via Set/Scale/Rebase.
//   - Boundary is a point set of kind BBox, KeyPoints or Polygon with the
//     geometric operations every augmentation needs: Shift, ScalePoints,
//     Rotate (about the image center), Clip.
//   - Annotations is the per-image collection, applying each operation to all
//     boundaries and re-clipping them to the border.
//
// Why:
//
//   - Geometric augmentations must move annotations exactly as they move
//     pixels, or downstream training data silently degrades. Keeping both
//     sides of the bookkeeping in one package makes the coupling testable.
//
// Conventions:
//
//   - Coordinates: x runs along the width axis, y along the height axis,
//     origin top-left — the same image notation the core package uses.
//   - Rotation angles are degrees, positive clockwise in image coordinates.
//
// Errors:
//
//   - ErrEmptyLabel: label constructed with neither ID nor name.
//   - ErrNoPoints: boundary constructed with an empty point set.
//   - ErrUnknownKind: boundary kind outside BBox/KeyPoints/Polygon.
package annot
