// Package affine provides 3×3 homogeneous transformation matrices for 2D
// image coordinates.
//
// What:
//
//   - Mat3 is a row-major 3×3 matrix over float64.
//   - Builders: Identity, Scale, Rotation (degrees), Translation, Distortion.
//   - Compose folds builders in application order; Apply maps a point with
//     perspective division.
//
// Why:
//
//   - Geometric augmentations and annotation boundaries share one matrix
//     algebra instead of re-deriving trigonometry per transform.
//
// Complexity:
//
//   - Mul/Compose step: O(1) (27 multiplications).
//   - ApplyPoints: O(n) over the point slice.
package affine
