// Package augmenta is an image data-augmentation toolkit: load annotated
// datasets, transform images and annotations in lockstep, and sample
// probabilistic augmentation pipelines.
//
// 🚀 What is augmenta?
//
//	A library and CLI that brings together:
//		• Core raster primitives: uint8 RGB images in (height, width, channel) order
//		• Affine machinery: 3×3 homogeneous matrices for shift, scale, rotation
//		• Annotations: bounding boxes, key points and polygons that follow every transform
//		• Transforms: shift, scale, rotate, resize, crop, mosaic, mixup, dropout and more
//		• Datasets: glob discovery, YAML annotation sidecars, metadata filters
//		• Pipelines: probabilistic block graphs sampled path by path, run on a worker pool
//
// ✨ Why choose augmenta?
//
//   - Annotations never drift – every geometric transform moves image and labels together
//   - Reproducible – explicit seeds thread through path sampling and randomized transforms
//   - Honest fills – vacated regions are constant black, never synthesized content
//
// Everything is organized under focused subpackages:
//
//	core/     — Image, Pixel, Rect and the raster primitives
//	affine/   — 3×3 homogeneous transform matrices
//	annot/    — labels, boundaries, borders and their collection
//	augment/  — the transforms and their registry
//	imgio/    — PNG/JPEG decoding into core images and back
//	dataset/  — packages, metadata statistics, filters and discovery
//	pipeline/ — block graphs, path sampling and the executor
//	cmd/      — the augmenta CLI (run, inspect, version)
//
// Conventions:
//
//	Images are (height, width, channel) RGB. Matrix buffers are
//	(rows, columns) BGR; converting between the two transposes the axes
//	and swaps the channel order. Coordinates are x along the width and
//	y along the height, origin top-left.
//
//	go get github.com/torvik/augmenta
package augmenta
