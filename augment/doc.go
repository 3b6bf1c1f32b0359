// Package augment implements the image transformations of the module:
// geometric, multi-image and pixel-level, each moving annotations in
// lockstep with pixels.
//
// What:
//
//   - Geometric: Shift, Scale, Rotate, Resize (optional aspect-preserving
//     letterbox), Crop.
//   - Multi-image: Mosaic (4 images stitched 2×2), MixUp (2 images blended).
//   - Pixel-level: Dropout, Brighten, Saturate, Invert, Noise, Blur.
//   - Registry: New builds any transform from its name and a parameter map,
//     the form pipeline configs arrive in.
//
// Conventions (binding for every transform):
//
//   - Input and output are image notation (height, width, channel), RGB.
//     No transform reorders channels.
//   - Regions vacated by a transform — shift offsets, rotation corners,
//     letterbox bars, dropout patches — are filled with constant core.Black.
//     No transform synthesizes content from elsewhere in the image.
//   - Randomized transforms (Dropout, Noise) draw from an explicit
//     *rand.Rand; a fixed seed reproduces the output byte for byte.
//   - A nil *annot.Annotations input skips annotation bookkeeping.
//
// Interfaces:
//
//   - Transform consumes one image; MultiTransform consumes Arity() images
//     and combines them into one. Both embed Augmentation, the common
//     currency of the pipeline package.
//
// Errors:
//
//   - Construction validates parameters eagerly: ErrCropBox, ErrLambdaRange,
//     ErrBadParam, and friends are returned before any pixels move.
//   - ErrArity is returned when a MultiTransform receives the wrong number
//     of inputs.
package augment
