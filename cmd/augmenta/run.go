package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/torvik/augmenta/dataset"
	"github.com/torvik/augmenta/imgio"
	"github.com/torvik/augmenta/pipeline"
)

// runCmd produces augmented samples from a pipeline description.
func runCmd() *cobra.Command {
	var (
		cfgPath string
		data    []string
		pattern string
		outDir  string
		count   int
		seed    int64
		workers int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a pipeline and write augmented samples",
		Long: `run samples paths through the pipeline graph and writes one PNG plus
one YAML annotation sidecar per sample into the output directory.

Each --data entry is either "name=dir", binding one dataset name from the
pipeline description to an image directory, or a bare directory used for
every dataset name the description references.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger(cmd)
			if err != nil {
				return err
			}
			ctx := slogcontext.NewCtx(cmd.Context(), logger)

			raws, err := pipeline.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			blocks, err := pipeline.Build(raws, rand.New(rand.NewSource(seed)))
			if err != nil {
				return err
			}
			datasets, err := openDatasets(blocks, data, pattern)
			if err != nil {
				return err
			}
			ex, err := pipeline.NewExecutor(blocks, datasets, pipeline.ExecutorOptions{
				Workers: workers,
				Seed:    seed,
			})
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			emit := func(_ context.Context, index int, s *pipeline.Sample) error {
				path := filepath.Join(outDir, fmt.Sprintf("sample_%06d.png", index))
				if err := imgio.Write(path, s.Image); err != nil {
					return err
				}

				return dataset.WriteSidecar(path, s.Annots)
			}
			if err := ex.Run(ctx, count, emit); err != nil {
				return err
			}
			logger.Info("run complete", "samples", count, "out", outDir)

			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "pipeline description file (required)")
	cmd.Flags().StringArrayVarP(&data, "data", "d", nil, "dataset directory, or name=dir (repeatable)")
	cmd.Flags().StringVar(&pattern, "pattern", "", "glob over dataset-relative image paths")
	cmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of samples to produce")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "worker pool size (0 = GOMAXPROCS)")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

// openDatasets discovers one package pool per distinct directory and maps
// every dataset name the graph references to its pool.
func openDatasets(blocks *pipeline.Blocks, data []string, pattern string) (map[string]*dataset.Dataset, error) {
	dirs := make(map[string]string)
	defaultDir := ""
	for _, entry := range data {
		if name, dir, ok := strings.Cut(entry, "="); ok {
			dirs[name] = dir
		} else {
			defaultDir = entry
		}
	}

	pools := make(map[string]*dataset.Dataset)
	open := func(dir string) (*dataset.Dataset, error) {
		if ds, ok := pools[dir]; ok {
			return ds, nil
		}
		pkgs, err := dataset.Discover(dir, pattern)
		if err != nil {
			return nil, err
		}
		ds, err := dataset.NewDataset(pkgs, nil)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", dir, err)
		}
		pools[dir] = ds

		return ds, nil
	}

	out := make(map[string]*dataset.Dataset)
	for _, in := range blocks.Inputs() {
		name := in.Dataset()
		if _, done := out[name]; done {
			continue
		}
		dir, ok := dirs[name]
		if !ok {
			dir = defaultDir
		}
		if dir == "" {
			return nil, fmt.Errorf("no --data entry for dataset %q", name)
		}
		ds, err := open(dir)
		if err != nil {
			return nil, err
		}
		out[name] = ds
	}

	return out, nil
}
