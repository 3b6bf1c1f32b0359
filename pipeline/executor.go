package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/opencontainers/go-digest"
	slogcontext "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"

	"github.com/torvik/augmenta/annot"
	"github.com/torvik/augmenta/augment"
	"github.com/torvik/augmenta/core"
	"github.com/torvik/augmenta/dataset"
)

// ErrUnknownDataset indicates an input block whose dataset name is not in
// the executor's dataset map.
var ErrUnknownDataset = errors.New("pipeline: input references unknown dataset")

// Sample is one produced result: the augmented image, its annotations and
// the ids of every source package that fed it.
type Sample struct {
	Image   *core.Image
	Annots  *annot.Annotations
	Sources []digest.Digest
}

// SampleFunc consumes produced samples. It is called concurrently from
// the worker pool; index runs from 0 to n-1 in submission order, not
// completion order.
type SampleFunc func(ctx context.Context, index int, s *Sample) error

// ExecutorOptions tune a run.
type ExecutorOptions struct {
	// Workers bounds the worker pool. Zero means GOMAXPROCS.
	Workers int
	// Seed makes path sampling and transform randomness reproducible.
	Seed int64
}

// DefaultExecutorOptions returns the options Run uses unless told
// otherwise.
func DefaultExecutorOptions() ExecutorOptions {
	return ExecutorOptions{Workers: runtime.GOMAXPROCS(0)}
}

// Executor runs sampled paths over datasets and emits augmented samples.
type Executor struct {
	blocks  *Blocks
	sources map[string]*dataset.Dataset
	opts    ExecutorOptions

	mu  sync.Mutex
	rng *rand.Rand
}

// NewExecutor wires the built graph to its datasets. Each input variant
// with a filter expression gets its own filtered view of the named pool,
// so bad filters and empty pools surface here rather than mid-run.
func NewExecutor(blocks *Blocks, datasets map[string]*dataset.Dataset, opts ExecutorOptions) (*Executor, error) {
	if opts.Workers <= 0 {
		opts.Workers = DefaultExecutorOptions().Workers
	}
	e := &Executor{
		blocks:  blocks,
		sources: make(map[string]*dataset.Dataset),
		opts:    opts,
		rng:     rand.New(rand.NewSource(opts.Seed)),
	}
	for _, in := range blocks.Inputs() {
		base, ok := datasets[in.Dataset()]
		if !ok {
			return nil, fmt.Errorf("%w: %q (block %q)", ErrUnknownDataset, in.Dataset(), in.ID())
		}
		if in.Filter() == "" {
			e.sources[in.ID()] = base

			continue
		}
		f, err := dataset.ParseFilter(in.Filter())
		if err != nil {
			return nil, fmt.Errorf("pipeline: input %q: %w", in.ID(), err)
		}
		filtered, err := dataset.NewDataset(base.Packages(), []dataset.Filter{f})
		if err != nil {
			return nil, fmt.Errorf("pipeline: input %q: %w", in.ID(), err)
		}
		e.sources[in.ID()] = filtered
	}

	return e, nil
}

// Run produces n samples. Paths are drawn sequentially so a fixed seed
// yields a fixed path sequence; loading and transforming run on the
// bounded pool. The first failing sample cancels the rest.
func (e *Executor) Run(ctx context.Context, n int, emit SampleFunc) error {
	log := slogcontext.FromCtx(ctx)
	log.Info("pipeline run", "samples", n, "workers", e.opts.Workers, "blocks", e.blocks.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			if werr := g.Wait(); werr != nil {
				return werr
			}

			return err
		}
		e.mu.Lock()
		path, err := e.blocks.FetchPath(e.rng)
		seed := e.rng.Int63()
		e.mu.Unlock()
		if err != nil {
			if werr := g.Wait(); werr != nil {
				return werr
			}

			return err
		}

		i := i
		g.Go(func() error {
			if err := e.produce(ctx, i, path, seed, emit); err != nil {
				return fmt.Errorf("pipeline: sample %d: %w", i, err)
			}

			return nil
		})
	}

	return g.Wait()
}

// workItem is one in-flight image with its annotations.
type workItem struct {
	im *core.Image
	as *annot.Annotations
}

// produce loads the path's inputs and applies its augment chain.
// Single-image transforms apply to every pending item, merging transforms
// consume their arity from the front.
func (e *Executor) produce(ctx context.Context, index int, path *Path, seed int64, emit SampleFunc) error {
	rng := rand.New(rand.NewSource(seed))
	log := slogcontext.FromCtx(ctx)

	var items []workItem
	var sources []digest.Digest
	for _, in := range path.Inputs {
		ds := e.sources[in.Block.ID()]
		for u := 0; u < in.Uses; u++ {
			e.mu.Lock()
			pkg := ds.Fetch(rng)
			e.mu.Unlock()
			im, as, err := pkg.Load(ctx)
			if err != nil {
				return err
			}
			items = append(items, workItem{im: im, as: as})
			sources = append(sources, pkg.ID())
		}
	}

	for _, b := range path.Augments {
		if p := b.IntProb(); p < 1 && rng.Float64() >= p {
			continue
		}
		aug := b.Augmentation()
		// Randomized transforms hold the Build-time rand source; rebind
		// them to this sample's rng so concurrent workers never share a
		// stream.
		if r, ok := aug.(augment.Randomized); ok {
			aug = r.Reseeded(rng)
		}
		switch t := aug.(type) {
		case augment.MultiTransform:
			k := t.Arity()
			if len(items) < k {
				return fmt.Errorf("%w: %q needs %d inputs, have %d",
					ErrExhaustedPath, b.Name(), k, len(items))
			}
			ims := make([]*core.Image, k)
			ass := make([]*annot.Annotations, k)
			for j := 0; j < k; j++ {
				ims[j] = items[j].im
				ass[j] = items[j].as
			}
			im, as, err := t.ApplyAll(ims, ass)
			if err != nil {
				return fmt.Errorf("%q: %w", b.Name(), err)
			}
			items = append([]workItem{{im: im, as: as}}, items[k:]...)
		case augment.Transform:
			for j := range items {
				im, as, err := t.Apply(items[j].im, items[j].as)
				if err != nil {
					return fmt.Errorf("%q: %w", b.Name(), err)
				}
				items[j] = workItem{im: im, as: as}
			}
		}
	}
	if len(items) == 0 {
		return ErrExhaustedPath
	}

	log.Debug("sample produced",
		"index", index,
		"output", path.Output.ID(),
		"augments", len(path.Augments),
		"sources", len(sources))

	return emit(ctx, index, &Sample{Image: items[0].im, Annots: items[0].as, Sources: sources})
}
