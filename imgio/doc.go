// Package imgio reads and writes raster files as core Images.
//
// What:
//
//   - Read / Decode: PNG or JPEG into a core.Image. Whatever the source
//     format stores, the result is always image notation — (height, width,
//     channel) with RGB order. Callers never see a library-native layout.
//   - ReadMatrix: adapter for byte planes produced in matrix notation
//     (rows, columns, BGR) by native readers; converts via core.FromMatrix.
//   - Write / EncodePNG / EncodeJPEG: image notation back to files.
//
// Why:
//
//   - The reader is the single place the notation convention is enforced.
//     Every augmentation downstream may then assume image notation without
//     checking.
//
// Errors:
//
//   - ErrUnsupportedFormat: file extension outside .png/.jpg/.jpeg.
//   - Decode and I/O failures are wrapped with the offending path.
package imgio
