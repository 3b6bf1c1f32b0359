package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/torvik/augmenta/augment"
	"github.com/torvik/augmenta/dataset"
)

// configFile is the YAML schema of a pipeline description.
type configFile struct {
	Blocks []configBlock `yaml:"blocks"`
}

// configBlock is one raw node in the YAML description.
type configBlock struct {
	ID     string    `yaml:"id"`
	Kind   string    `yaml:"kind"`
	Next   []string  `yaml:"next"`
	Shares []float64 `yaml:"shares"`

	Dataset string   `yaml:"dataset"`
	Total   int      `yaml:"total"`
	Filters []string `yaml:"filters"`

	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
	Prob   float64        `yaml:"prob"`
}

// ParseConfig parses and validates a YAML pipeline description into raw
// blocks ready for Build. Transform parameters are only checked for known
// names here; value validation happens when Build constructs the
// transforms.
func ParseConfig(raw []byte) ([]RawBlock, error) {
	var cfg configFile
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if len(cfg.Blocks) == 0 {
		return nil, fmt.Errorf("%w: no blocks", ErrBadConfig)
	}

	known := make(map[string]bool)
	for _, name := range augment.Names() {
		known[name] = true
	}

	blocks := make([]RawBlock, 0, len(cfg.Blocks))
	for _, cb := range cfg.Blocks {
		if cb.ID == "" {
			return nil, fmt.Errorf("%w: block without id", ErrBadConfig)
		}
		b := RawBlock{
			ID:      cb.ID,
			Next:    cb.Next,
			Shares:  cb.Shares,
			Dataset: cb.Dataset,
			Total:   cb.Total,
			Filters: cb.Filters,
			Name:    cb.Name,
			Params:  cb.Params,
			Prob:    cb.Prob,
		}
		switch cb.Kind {
		case "input":
			b.Kind = KindInput
			if cb.Dataset == "" {
				return nil, fmt.Errorf("%w: input %q has no dataset", ErrBadConfig, cb.ID)
			}
			if cb.Total <= 0 {
				return nil, fmt.Errorf("%w: input %q needs total > 0", ErrBadConfig, cb.ID)
			}
			for _, f := range cb.Filters {
				if f == "" {
					continue
				}
				if _, err := dataset.ParseFilter(f); err != nil {
					return nil, fmt.Errorf("%w: input %q: %v", ErrBadConfig, cb.ID, err)
				}
			}
		case "augment":
			b.Kind = KindAugment
			if !known[cb.Name] {
				return nil, fmt.Errorf("%w: block %q: unknown transform %q", ErrBadConfig, cb.ID, cb.Name)
			}
			if cb.Prob < 0 || cb.Prob > 1 {
				return nil, fmt.Errorf("%w: block %q: prob must be in [0, 1]", ErrBadConfig, cb.ID)
			}
			if len(cb.Filters) > 0 {
				return nil, fmt.Errorf("%w: block %q: filters only apply to inputs", ErrBadConfig, cb.ID)
			}
		default:
			return nil, fmt.Errorf("%w: block %q: unknown kind %q", ErrBadConfig, cb.ID, cb.Kind)
		}

		nVariants := len(cb.Shares)
		if nVariants == 0 {
			nVariants = 1
		}
		if len(cb.Next) > 1 && len(cb.Next) != nVariants {
			return nil, fmt.Errorf("%w: block %q: %d next ids for %d shares",
				ErrBadConfig, cb.ID, len(cb.Next), nVariants)
		}
		if len(cb.Filters) > 0 && len(cb.Filters) != nVariants {
			return nil, fmt.Errorf("%w: input %q: %d filters for %d shares",
				ErrBadConfig, cb.ID, len(cb.Filters), nVariants)
		}

		blocks = append(blocks, b)
	}

	return blocks, nil
}

// LoadConfig reads and parses a pipeline description file.
func LoadConfig(path string) ([]RawBlock, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pipeline: read config %q: %w", path, err)
	}

	return ParseConfig(raw)
}
