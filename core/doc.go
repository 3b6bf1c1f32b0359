// Package core holds the pixel raster every other augmenta package works on,
// and pins down the axis convention once and for all.
//
// What:
//
//   - Image is a rectangular grid of color samples stored in image notation:
//     axis order (height, width, channel) with RGB channel order.
//   - FromMatrix / ToMatrix convert between image notation and matrix
//     notation — (rows, columns) axis order with BGR channels, as produced
//     by native readers. The two representations are transposes of each
//     other; conversion transposes the axes and swaps the B and R channels.
//   - Clone, SubImage, FillRect, HStack and VStack are the raw primitives
//     that geometric and dropout augmentations are built from.
//
// Why:
//
//   - Every augmentation in this module assumes image notation. Pinning the
//     convention in one place keeps channel-order bugs out of the transforms.
//   - FillRect with core.Black is the dropout primitive: occluded regions are
//     overwritten with a constant block, never with synthesized content.
//
// Complexity:
//
//   - At/Set/InBounds: O(1).
//   - Clone, FromMatrix, ToMatrix, Fill: O(W×H).
//   - SubImage, FillRect: O(area of the rectangle).
//   - HStack, VStack: O(W×H) of the result.
//
// Errors:
//
//   - ErrEmptyImage: requested dimensions have no rows or no columns.
//   - ErrBufferSize: provided buffer does not match height×width×Channels.
//   - ErrBounds: rectangle exceeds the image frame.
//   - ErrStackShape: stacked images disagree on the shared dimension.
package core
