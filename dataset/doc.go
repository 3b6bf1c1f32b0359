// Package dataset pairs image files with their annotations and selects
// training samples from the pool.
//
// What:
//
//   - Package: read-only pairing of an image path and its annotations,
//     identified by a digest and carrying lazily computed MetaInf.
//   - MetaInf: the per-image annotation statistics filters compare against
//     (areas, extents, label counts), sliced by label Selector.
//   - Filter: a parsed criterion like "minarea(name=car)>1024" or
//     "count>=3" deciding which packages enter a Dataset.
//   - Dataset: the filtered pool with seeded random Fetch and use tracking —
//     every package is served once before any repeats.
//   - Discover: walks an image directory, matching files against a
//     gobwas/glob pattern and reading YAML sidecar annotation files.
//   - Ingest: imports annotations written by other tools (JSON, YAML, CSV,
//     TXT; one file per dataset or per image) via an IngestSpec field
//     mapping, with COCO min-size and YOLO center-size box layouts.
//
// Why:
//
//   - Augmentation pipelines sample inputs probabilistically; the dataset
//     layer keeps sampling, filtering and loading concerns away from the
//     transforms themselves.
//
// Errors:
//
//   - ErrBadFilter: filter string does not parse.
//   - ErrNoPackages: a Dataset would be empty after filtering.
//   - ErrBadSidecar: annotation sidecar fails to parse or references an
//     unknown boundary kind.
//   - ErrIngestSpec: ingest field mapping cannot describe a load.
//   - ErrBadRecord: an ingested annotation record cannot be extracted.
package dataset
