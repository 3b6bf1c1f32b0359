package dataset

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/opencontainers/go-digest"

	"github.com/torvik/augmenta/annot"
	"github.com/torvik/augmenta/core"
	"github.com/torvik/augmenta/imgio"
)

// ErrNoPackages indicates a Dataset that would be empty after filtering.
var ErrNoPackages = errors.New("dataset: no packages left after filtering")

// Package pairs an image file with its annotations. It is read-only after
// construction: Load returns a fresh decode and a deep copy of the
// annotations, so augmentations never corrupt the pool.
type Package struct {
	imagePath string
	annots    *annot.Annotations

	id   digest.Digest
	meta *MetaInf
}

// NewPackage constructs a Package over an image path and its (final)
// annotations.
func NewPackage(imagePath string, as *annot.Annotations) *Package {
	return &Package{
		imagePath: imagePath,
		annots:    as,
		id:        digest.FromString(imagePath),
	}
}

// ImagePath returns the path of the backing image file.
func (p *Package) ImagePath() string { return p.imagePath }

// ID returns the package identity: the digest of the image reference.
// Content is not hashed — two packages over one file share an ID.
func (p *Package) ID() digest.Digest { return p.id }

// MetaInf returns the annotation statistics, computed on first use.
func (p *Package) MetaInf() *MetaInf {
	if p.meta == nil {
		p.meta = NewMetaInf(p.annots)
	}

	return p.meta
}

// Annotations exposes the package annotations for inspection. Callers that
// mutate must Clone first; Load already does.
func (p *Package) Annotations() *annot.Annotations { return p.annots }

// Load decodes the image and clones the annotations. The context guards the
// call in batch runs; decoding itself is not interruptible.
func (p *Package) Load(ctx context.Context) (*core.Image, *annot.Annotations, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	im, err := imgio.Read(p.imagePath)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: load %q: %w", p.imagePath, err)
	}

	return im, p.annots.Clone(), nil
}

// Dataset is a filtered pool of packages with use tracking: Fetch serves
// every package once before any repeats, in seeded random order.
type Dataset struct {
	packages []*Package
	unused   []int
}

// NewDataset builds a Dataset from pkgs, keeping only packages that pass
// every filter. Returns ErrNoPackages when nothing survives.
func NewDataset(pkgs []*Package, filters []Filter) (*Dataset, error) {
	kept := make([]*Package, 0, len(pkgs))
	for _, p := range pkgs {
		ok := true
		for _, f := range filters {
			if !f.Match(p) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoPackages
	}
	ds := &Dataset{packages: kept}
	ds.Reset()

	return ds, nil
}

// Len returns the pool size.
func (d *Dataset) Len() int { return len(d.packages) }

// Packages exposes the filtered pool in stable order.
func (d *Dataset) Packages() []*Package { return d.packages }

// Reset marks every package unused again.
func (d *Dataset) Reset() {
	d.unused = d.unused[:0]
	for i := range d.packages {
		d.unused = append(d.unused, i)
	}
}

// Fetch returns a random package that has not been served this round.
// When the round is exhausted the tracking resets and a new round begins.
func (d *Dataset) Fetch(rng *rand.Rand) *Package {
	if len(d.unused) == 0 {
		d.Reset()
	}
	i := rng.Intn(len(d.unused))
	idx := d.unused[i]
	d.unused[i] = d.unused[len(d.unused)-1]
	d.unused = d.unused[:len(d.unused)-1]

	return d.packages[idx]
}
