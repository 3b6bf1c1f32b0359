package pipeline

import (
	"fmt"
	"math"
	"math/rand"
)

// Blocks is the built augmentation graph: share variants expanded into
// concrete blocks, duplicates collapsed, probabilities propagated.
type Blocks struct {
	blocks []*Block
	index  map[string]*Block
}

// Build expands the raw description into the concrete graph. Shares are
// normalized, every variant becomes one block, equal augment blocks are
// collapsed, and external execution probabilities flow from the inputs
// (weighted by dataset share of the total data) to the outputs. The rng
// is only handed to randomized transforms during construction.
func Build(raws []RawBlock, rng *rand.Rand) (*Blocks, error) {
	// Work on a private copy: normalization must not leak into the caller.
	raws = append([]RawBlock(nil), raws...)
	rawIdx := make(map[string]*RawBlock, len(raws))
	for i := range raws {
		r := &raws[i]
		if r.ID == "" {
			return nil, fmt.Errorf("%w: block %d has no id", ErrBadConfig, i)
		}
		if _, dup := rawIdx[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate block id %q", ErrBadConfig, r.ID)
		}
		if err := r.normalizeShares(); err != nil {
			return nil, err
		}
		rawIdx[r.ID] = r
	}
	for _, r := range rawIdx {
		for _, next := range r.Next {
			if _, ok := rawIdx[next]; !ok {
				return nil, fmt.Errorf("%w: block %q -> %q", ErrUnknownRef, r.ID, next)
			}
		}
	}

	// Input weights: each input's declared data count over the sum.
	totalData := 0
	var inputs []*RawBlock
	for i := range raws {
		if raws[i].Kind == KindInput {
			inputs = append(inputs, &raws[i])
			totalData += raws[i].Total
		}
	}
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}
	weights := make(map[string]float64, len(inputs))
	for _, in := range inputs {
		weights[in.ID] = 1
		if totalData > 0 {
			weights[in.ID] = float64(in.Total) / float64(totalData)
		}
	}

	bs := &Blocks{index: make(map[string]*Block)}
	for _, in := range inputs {
		if _, err := bs.expand(in, "", rawIdx, weights, rng, make(map[string]bool)); err != nil {
			return nil, err
		}
	}
	if len(bs.Outputs()) == 0 {
		return nil, ErrNoOutputs
	}
	bs.propagate()

	return bs, nil
}

// expand builds every share variant of raw, wires it to prevID and
// recurses into the variant's successor. Returns the built variant ids.
// onPath guards against cycles along the current chain.
func (bs *Blocks) expand(
	raw *RawBlock,
	prevID string,
	rawIdx map[string]*RawBlock,
	weights map[string]float64,
	rng *rand.Rand,
	onPath map[string]bool,
) ([]string, error) {
	if onPath[raw.ID] {
		return nil, fmt.Errorf("%w: cycle through block %q", ErrBadConfig, raw.ID)
	}
	onPath[raw.ID] = true
	defer delete(onPath, raw.ID)

	ids := make([]string, 0, len(raw.Shares))
	for idx := range raw.Shares {
		b, err := raw.instantiate(idx, rng)
		if err != nil {
			return nil, err
		}
		if b.kind == KindInput {
			b.extProb *= weights[raw.ID]
		}
		var nextRawID string
		if len(b.next) > 0 {
			nextRawID = b.next[0]
			b.next = nil
		}

		if dup := bs.findDuplicate(b); dup != nil {
			if prevID != "" && !containsID(dup.prev, prevID) {
				dup.prev = append(dup.prev, prevID)
			}
			ids = append(ids, dup.id)

			continue
		}

		if prevID != "" {
			b.prev = []string{prevID}
		}
		bs.blocks = append(bs.blocks, b)
		bs.index[b.id] = b
		ids = append(ids, b.id)

		if nextRawID != "" {
			nextIDs, err := bs.expand(rawIdx[nextRawID], b.id, rawIdx, weights, rng, onPath)
			if err != nil {
				return nil, err
			}
			b.next = nextIDs
		}
	}

	return ids, nil
}

// findDuplicate returns an already-built block this one collapses into.
func (bs *Blocks) findDuplicate(b *Block) *Block {
	for _, other := range bs.blocks {
		if other.equal(b) {
			return other
		}
	}

	return nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}

	return false
}

// propagate flows external execution probabilities from the inputs to the
// outputs: each non-input block multiplies its own probability by the sum
// over its predecessors. Every block is computed once, so diamonds do not
// double-count.
func (bs *Blocks) propagate() {
	done := make(map[string]bool, len(bs.blocks))
	var walk func(b *Block)
	walk = func(b *Block) {
		if done[b.id] {
			return
		}
		done[b.id] = true
		if b.IsInput() {
			return
		}
		b.prevExt = b.prevExt[:0]
		sum := 0.0
		for _, pid := range b.prev {
			p := bs.index[pid]
			walk(p)
			b.prevExt = append(b.prevExt, p.extProb)
			sum += p.extProb
		}
		b.extProb *= sum
	}
	for _, out := range bs.Outputs() {
		walk(out)
	}
}

// Len returns the number of built blocks.
func (bs *Blocks) Len() int { return len(bs.blocks) }

// All returns the built blocks in build order.
func (bs *Blocks) All() []*Block { return bs.blocks }

// Get returns the built block with the given id.
func (bs *Blocks) Get(id string) (*Block, bool) {
	b, ok := bs.index[id]

	return b, ok
}

// Outputs returns the blocks without successors.
func (bs *Blocks) Outputs() []*Block {
	var outs []*Block
	for _, b := range bs.blocks {
		if b.IsOutput() {
			outs = append(outs, b)
		}
	}

	return outs
}

// Inputs returns the input blocks.
func (bs *Blocks) Inputs() []*Block {
	var ins []*Block
	for _, b := range bs.blocks {
		if b.IsInput() {
			ins = append(ins, b)
		}
	}

	return ins
}

// PathInput is one dataset reference of a sampled path with the number of
// loads it must serve. Merging transforms raise Uses above one.
type PathInput struct {
	Block *Block
	Uses  int
}

// Path is one sampled root-to-output walk: the inputs to load and the
// augment blocks to apply, in application order.
type Path struct {
	Inputs   []PathInput
	Augments []*Block
	Output   *Block
}

// FetchPath samples one path. The output is drawn by external execution
// probability, then the walk moves upstream drawing one predecessor per
// step; a merging block with inflation 1/k draws k predecessor sub-paths.
func (bs *Blocks) FetchPath(rng *rand.Rand) (*Path, error) {
	outs := bs.Outputs()
	if len(outs) == 0 {
		return nil, ErrNoOutputs
	}
	probs := make([]float64, len(outs))
	for i, o := range outs {
		probs[i] = o.extProb
	}
	out := outs[weightedPick(rng, probs)]

	path := &Path{Output: out}
	inputIdx := make(map[string]int)
	seen := make(map[string]bool)
	var root func(b *Block)
	root = func(b *Block) {
		if b.IsInput() {
			if i, ok := inputIdx[b.id]; ok {
				path.Inputs[i].Uses++
			} else {
				inputIdx[b.id] = len(path.Inputs)
				path.Inputs = append(path.Inputs, PathInput{Block: b, Uses: 1})
			}

			return
		}
		if !seen[b.id] {
			seen[b.id] = true
			path.Augments = append(path.Augments, b)
		}
		draws := 1
		if inf := b.Inflation(); inf < 1 {
			draws = int(math.Round(1 / inf))
		}
		for i := 0; i < draws; i++ {
			pick := weightedPick(rng, b.prevExt)
			root(bs.index[b.prev[pick]])
		}
	}
	root(out)

	// Collected output-first; application runs input-first.
	for i, j := 0, len(path.Augments)-1; i < j; i, j = i+1, j-1 {
		path.Augments[i], path.Augments[j] = path.Augments[j], path.Augments[i]
	}

	return path, nil
}

// weightedPick draws an index proportionally to weights, uniform when the
// weights carry no mass.
func weightedPick(rng *rand.Rand, weights []float64) int {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum <= 0 {
		return rng.Intn(len(weights))
	}
	r := rng.Float64() * sum
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}

	return len(weights) - 1
}
