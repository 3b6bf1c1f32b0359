package pipeline

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"

	"github.com/torvik/augmenta/augment"
)

// Sentinel errors of the pipeline package.
var (
	ErrBadConfig     = errors.New("pipeline: bad pipeline config")
	ErrUnknownRef    = errors.New("pipeline: block references unknown id")
	ErrNoOutputs     = errors.New("pipeline: no output blocks")
	ErrNoInputs      = errors.New("pipeline: no input blocks")
	ErrExhaustedPath = errors.New("pipeline: path produced no sample")
)

// Kind discriminates the two node categories of the graph.
type Kind int

const (
	// KindInput references a dataset and feeds data into the graph.
	KindInput Kind = iota
	// KindAugment wraps one named transform.
	KindAugment
)

// String returns the config spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindAugment:
		return "augment"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// RawBlock is one node of the pipeline description before share expansion.
// A block with k shares has k variants; Next and Filters, when present,
// align with the shares index for index.
type RawBlock struct {
	ID     string
	Kind   Kind
	Next   []string
	Shares []float64

	// Input fields.
	Dataset string
	Total   int
	Filters []string

	// Augment fields.
	Name   string
	Params map[string]any
	Prob   float64
}

// normalizeShares replaces the shares with a fresh slice scaled to sum 1,
// defaulting to a single full share when none are given. The original
// backing array is never written.
func (r *RawBlock) normalizeShares() error {
	if len(r.Shares) == 0 {
		r.Shares = []float64{1}

		return nil
	}
	sum := 0.0
	for _, s := range r.Shares {
		if s < 0 {
			return fmt.Errorf("%w: block %q: negative share", ErrBadConfig, r.ID)
		}
		sum += s
	}
	if sum <= 0 {
		return fmt.Errorf("%w: block %q: shares sum to zero", ErrBadConfig, r.ID)
	}
	shares := make([]float64, len(r.Shares))
	for i, s := range r.Shares {
		shares[i] = s / sum
	}
	r.Shares = shares

	return nil
}

// Block is one concrete node of the built graph: a raw block variant with
// its share applied and its wiring resolved.
type Block struct {
	id   string
	kind Kind
	prev []string
	next []string

	share   float64
	extProb float64
	prevExt []float64

	dataset string
	total   int
	filter  string

	name    string
	params  map[string]any
	aug     augment.Augmentation
	intProb float64
}

// instantiate builds the concrete block of one share variant. Augment
// blocks construct their transform here, so unknown names and bad
// parameters surface during Build.
func (r *RawBlock) instantiate(idx int, rng *rand.Rand) (*Block, error) {
	b := &Block{
		id:      fmt.Sprintf("%s#%d", r.ID, idx),
		kind:    r.Kind,
		share:   r.Shares[idx],
		extProb: r.Shares[idx],
		dataset: r.Dataset,
		total:   r.Total,
		name:    r.Name,
		params:  r.Params,
		intProb: r.Prob,
	}
	switch {
	case len(r.Next) == 0:
		// Output block.
	case len(r.Next) == len(r.Shares):
		b.next = []string{r.Next[idx]}
	default:
		b.next = []string{r.Next[0]}
	}
	if len(r.Filters) == len(r.Shares) {
		b.filter = r.Filters[idx]
	}
	if r.Kind == KindAugment {
		aug, err := augment.New(r.Name, r.Params, rng)
		if err != nil {
			return nil, fmt.Errorf("%w: block %q: %v", ErrBadConfig, r.ID, err)
		}
		b.aug = aug
		if r.Prob <= 0 || r.Prob > 1 {
			b.intProb = 1
		}
	}

	return b, nil
}

// ID returns the expanded block id ("rawID#variant").
func (b *Block) ID() string { return b.id }

// Kind returns the block category.
func (b *Block) Kind() Kind { return b.kind }

// Prev returns the ids of the predecessor blocks.
func (b *Block) Prev() []string { return b.prev }

// Next returns the ids of the successor blocks.
func (b *Block) Next() []string { return b.next }

// Share returns the normalized share of this variant.
func (b *Block) Share() float64 { return b.share }

// ExtProb returns the external execution probability: how likely data
// flowing through the graph passes this block.
func (b *Block) ExtProb() float64 { return b.extProb }

// IntProb returns the execution probability of the wrapped transform.
// Input blocks report 1.
func (b *Block) IntProb() float64 {
	if b.kind == KindInput {
		return 1
	}

	return b.intProb
}

// Dataset returns the dataset name of an input block.
func (b *Block) Dataset() string { return b.dataset }

// Total returns the declared data count of an input block.
func (b *Block) Total() int { return b.total }

// Filter returns the filter expression of this input variant, if any.
func (b *Block) Filter() string { return b.filter }

// Name returns the transform name of an augment block.
func (b *Block) Name() string { return b.name }

// Augmentation returns the constructed transform of an augment block.
func (b *Block) Augmentation() augment.Augmentation { return b.aug }

// IsInput reports whether the block feeds data into the graph.
func (b *Block) IsInput() bool { return b.kind == KindInput }

// IsOutput reports whether the block has no successors.
func (b *Block) IsOutput() bool { return len(b.next) == 0 }

// Inflation returns how the block scales data volume: 1 for inputs and
// single-image transforms, 1/arity for merging transforms.
func (b *Block) Inflation() float64 {
	if b.aug == nil {
		return 1
	}

	return augment.Inflation(b.aug)
}

// equal reports whether two blocks collapse into one during expansion.
// Input blocks never do; augment blocks do when transform, parameters,
// probability and share all agree.
func (b *Block) equal(other *Block) bool {
	if b.kind != KindAugment || other.kind != KindAugment {
		return false
	}

	return b.name == other.name &&
		b.intProb == other.intProb &&
		b.share == other.share &&
		reflect.DeepEqual(b.params, other.params)
}
