package pipeline

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/torvik/augmenta/core"
	"github.com/torvik/augmenta/dataset"
	"github.com/torvik/augmenta/imgio"
)

// ExecutorSuite runs pipelines over a small on-disk dataset.
type ExecutorSuite struct {
	suite.Suite

	pool *dataset.Dataset
}

func (s *ExecutorSuite) SetupTest() {
	dir := s.T().TempDir()
	for i, v := range []uint8{10, 60, 110, 160} {
		im, err := core.New(4, 4)
		s.Require().NoError(err)
		im.Fill(core.Pixel{R: v, G: v, B: v})
		s.Require().NoError(imgio.Write(filepath.Join(dir, string(rune('a'+i))+".png"), im))
	}
	pkgs, err := dataset.Discover(dir, "")
	s.Require().NoError(err)
	pool, err := dataset.NewDataset(pkgs, nil)
	s.Require().NoError(err)
	s.pool = pool
}

// collect gathers emitted samples keyed by index, safely across workers.
func collect() (SampleFunc, *sync.Map) {
	var m sync.Map
	emit := func(_ context.Context, index int, sm *Sample) error {
		m.Store(index, sm)

		return nil
	}

	return emit, &m
}

func (s *ExecutorSuite) build(raws []RawBlock) *Blocks {
	bs, err := Build(raws, buildRNG())
	s.Require().NoError(err)

	return bs
}

func (s *ExecutorSuite) TestRunProducesN() {
	bs := s.build([]RawBlock{
		{ID: "in", Kind: KindInput, Dataset: "train", Total: 4, Next: []string{"inv"}},
		{ID: "inv", Kind: KindAugment, Name: "invert"},
	})
	ex, err := NewExecutor(bs, map[string]*dataset.Dataset{"train": s.pool},
		ExecutorOptions{Workers: 2, Seed: 1})
	s.Require().NoError(err)

	emit, got := collect()
	s.Require().NoError(ex.Run(context.Background(), 6, emit))

	n := 0
	got.Range(func(_, v any) bool {
		n++
		sm := v.(*Sample)
		s.Equal(4, sm.Image.Height())
		s.Equal(4, sm.Image.Width())
		s.Len(sm.Sources, 1)
		// The source fills are 10/60/110/160; inversion maps them to
		// 245/195/145/95.
		r := sm.Image.At(0, 0).R
		s.Contains([]uint8{245, 195, 145, 95}, r)

		return true
	})
	s.Equal(6, n)
}

func (s *ExecutorSuite) TestRunMergingPath() {
	bs := s.build([]RawBlock{
		{ID: "in", Kind: KindInput, Dataset: "train", Total: 4, Next: []string{"mos"}},
		{ID: "mos", Kind: KindAugment, Name: "mosaic"},
	})
	ex, err := NewExecutor(bs, map[string]*dataset.Dataset{"train": s.pool},
		ExecutorOptions{Workers: 1, Seed: 1})
	s.Require().NoError(err)

	emit, got := collect()
	s.Require().NoError(ex.Run(context.Background(), 2, emit))

	got.Range(func(_, v any) bool {
		sm := v.(*Sample)
		// Four 4x4 tiles in a 2x2 grid.
		s.Equal(8, sm.Image.Height())
		s.Equal(8, sm.Image.Width())
		s.Len(sm.Sources, 4)

		return true
	})
}

// TestRunRandomizedTransformsConcurrently drives a randomized transform
// from many workers at once. Each sample must get its own rand stream;
// with a shared one the race detector fails this test.
func (s *ExecutorSuite) TestRunRandomizedTransformsConcurrently() {
	bs := s.build([]RawBlock{
		{ID: "in", Kind: KindInput, Dataset: "train", Total: 4, Next: []string{"drop"}},
		{
			ID: "drop", Kind: KindAugment, Name: "dropout",
			Params: map[string]any{"count": 4, "min_frac": 0.2, "max_frac": 0.5},
		},
	})
	ex, err := NewExecutor(bs, map[string]*dataset.Dataset{"train": s.pool},
		ExecutorOptions{Workers: 8, Seed: 3})
	s.Require().NoError(err)

	emit, got := collect()
	s.Require().NoError(ex.Run(context.Background(), 32, emit))

	n := 0
	got.Range(func(_, v any) bool {
		n++
		sm := v.(*Sample)
		// Dropout only blackens; every pixel is either the source fill or
		// exactly black.
		fills := map[uint8]bool{10: true, 60: true, 110: true, 160: true}
		black := 0
		for y := 0; y < sm.Image.Height(); y++ {
			for x := 0; x < sm.Image.Width(); x++ {
				p := sm.Image.At(y, x)
				if p == (core.Pixel{}) {
					black++
					continue
				}
				s.True(fills[p.R], "pixel must be source fill or black")
			}
		}
		s.Greater(black, 0)

		return true
	})
	s.Equal(32, n)
}

func (s *ExecutorSuite) TestRunHonorsCancellation() {
	bs := s.build([]RawBlock{
		{ID: "in", Kind: KindInput, Dataset: "train", Total: 4, Next: []string{"inv"}},
		{ID: "inv", Kind: KindAugment, Name: "invert"},
	})
	ex, err := NewExecutor(bs, map[string]*dataset.Dataset{"train": s.pool},
		ExecutorOptions{Workers: 1, Seed: 1})
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	emit, _ := collect()
	s.Require().ErrorIs(ex.Run(ctx, 100, emit), context.Canceled)
}

func (s *ExecutorSuite) TestUnknownDataset() {
	bs := s.build([]RawBlock{
		{ID: "in", Kind: KindInput, Dataset: "ghost", Total: 4, Next: []string{"inv"}},
		{ID: "inv", Kind: KindAugment, Name: "invert"},
	})
	_, err := NewExecutor(bs, map[string]*dataset.Dataset{"train": s.pool},
		ExecutorOptions{Workers: 1, Seed: 1})
	s.Require().ErrorIs(err, ErrUnknownDataset)
}

func (s *ExecutorSuite) TestFilteredInputRejectsEmptyPool() {
	bs := s.build([]RawBlock{
		{
			ID: "in", Kind: KindInput, Dataset: "train", Total: 4,
			Filters: []string{"count>=1"}, Next: []string{"inv"},
		},
		{ID: "inv", Kind: KindAugment, Name: "invert"},
	})
	// The pool has no annotated packages, so the filtered view is empty.
	_, err := NewExecutor(bs, map[string]*dataset.Dataset{"train": s.pool},
		ExecutorOptions{Workers: 1, Seed: 1})
	s.Require().ErrorIs(err, dataset.ErrNoPackages)
}

func TestExecutorSuite(t *testing.T) {
	suite.Run(t, new(ExecutorSuite))
}
