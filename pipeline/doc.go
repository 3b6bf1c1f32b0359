// Package pipeline builds and runs probabilistic augmentation graphs.
//
// What:
//
// A pipeline is a directed graph of blocks. Input blocks reference a
// dataset and carry its share of the total data; augment blocks wrap one
// named transform with an execution probability. A block with k shares
// splits the data flow into k weighted variants. Build expands those
// variants into concrete blocks, deduplicates equal augment blocks and
// propagates external execution probabilities from the inputs to the
// outputs. FetchPath then samples one root-to-output path at a time, and
// the Executor turns sampled paths into augmented samples using a bounded
// worker pool.
//
// Why:
//
// Sampling paths instead of enumerating them keeps memory flat no matter
// how many variants the shares multiply into, and it makes the share
// weights directly observable: a variant with share 0.3 is simply drawn
// 30% of the time.
//
// Errors:
//
//   - ErrBadConfig: a YAML pipeline description that does not validate.
//   - ErrUnknownRef: a block references a next id that does not exist.
//   - ErrNoOutputs: the graph has no block without successors.
//   - ErrNoInputs: the graph has no input block.
//   - ErrExhaustedPath: a sampled path yields no sample to emit.
//
// Complexity: Build is O(V·S) for V raw blocks and S total share variants;
// FetchPath is O(path length) per sample.
package pipeline
