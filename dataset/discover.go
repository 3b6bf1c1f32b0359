package dataset

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/torvik/augmenta/annot"
)

// ErrBadSidecar indicates an annotation sidecar that fails to parse.
var ErrBadSidecar = errors.New("dataset: bad annotation sidecar")

// sidecarExt is the extension of per-image annotation files: the sidecar of
// img/001.png is img/001.yaml.
const sidecarExt = ".yaml"

// sidecarFile is the YAML schema of one annotation sidecar.
type sidecarFile struct {
	Kind   string         `yaml:"kind"`
	Labels []sidecarLabel `yaml:"labels"`
}

// sidecarLabel is one annotated region in a sidecar.
type sidecarLabel struct {
	ID     *int        `yaml:"id"`
	Name   string      `yaml:"name"`
	Points [][]float64 `yaml:"points"`
}

// Discover walks root for PNG/JPEG files whose root-relative path matches
// the gobwas/glob pattern (empty pattern matches everything), reads each
// image's YAML sidecar when present, and returns one Package per image.
// Images without a sidecar get empty bbox annotations sized from the image
// header.
// Complexity: O(files) walks plus one header decode per matched image.
func Discover(root, pattern string) ([]*Package, error) {
	var matcher glob.Glob
	if pattern != "" {
		var err error
		matcher, err = glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("dataset: compile pattern %q: %w", pattern, err)
		}
	}

	var pkgs []*Package
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isImagePath(path) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matcher != nil && !matcher.Match(rel) {
			return nil
		}
		as, err := readSidecar(path)
		if err != nil {
			return err
		}
		pkgs = append(pkgs, NewPackage(path, as))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dataset: discover %q: %w", root, err)
	}

	return pkgs, nil
}

// WriteSidecar stores the annotations of the image at imagePath in its
// YAML sidecar, the same schema Discover reads.
func WriteSidecar(imagePath string, as *annot.Annotations) error {
	sc := sidecarFile{Kind: as.Kind().String()}
	for _, a := range as.All() {
		sl := sidecarLabel{Name: a.Label.Name}
		if a.Label.ID != annot.UnsetID {
			id := a.Label.ID
			sl.ID = &id
		}
		for _, p := range a.Boundary.Points() {
			sl.Points = append(sl.Points, []float64{p[0], p[1]})
		}
		sc.Labels = append(sc.Labels, sl)
	}
	raw, err := yaml.Marshal(&sc)
	if err != nil {
		return fmt.Errorf("dataset: marshal sidecar for %q: %w", imagePath, err)
	}
	sidecarPath := strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + sidecarExt
	if err := os.WriteFile(sidecarPath, raw, 0o644); err != nil {
		return fmt.Errorf("dataset: write sidecar %q: %w", sidecarPath, err)
	}

	return nil
}

// isImagePath reports whether path carries a decodable image extension.
func isImagePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

// imageDims reads width and height from the image header without decoding
// the pixels.
func imageDims(path string) (w, h int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}

	return cfg.Width, cfg.Height, nil
}

// readSidecar builds the annotations of one image from its YAML sidecar,
// or an empty bbox collection when no sidecar exists.
func readSidecar(imagePath string) (*annot.Annotations, error) {
	w, h, err := imageDims(imagePath)
	if err != nil {
		return nil, fmt.Errorf("dataset: read header of %q: %w", imagePath, err)
	}

	sidecarPath := strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + sidecarExt
	raw, err := os.ReadFile(sidecarPath)
	if errors.Is(err, fs.ErrNotExist) {
		return annot.NewAnnotations(w, h, annot.BBox), nil
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: read sidecar %q: %w", sidecarPath, err)
	}

	var sc sidecarFile
	if err = yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadSidecar, sidecarPath, err)
	}
	kind := annot.BBox
	if sc.Kind != "" {
		if kind, err = annot.ParseKind(sc.Kind); err != nil {
			return nil, fmt.Errorf("%w: %q: kind %q", ErrBadSidecar, sidecarPath, sc.Kind)
		}
	}

	as := annot.NewAnnotations(w, h, kind)
	for i, sl := range sc.Labels {
		id := annot.UnsetID
		if sl.ID != nil {
			id = *sl.ID
		}
		label, err := annot.NewLabel(id, sl.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: label %d: %v", ErrBadSidecar, sidecarPath, i, err)
		}
		pts := make([]annot.Point, len(sl.Points))
		for j, p := range sl.Points {
			if len(p) != 2 {
				return nil, fmt.Errorf("%w: %q: label %d: point %d must be [x, y]", ErrBadSidecar, sidecarPath, i, j)
			}
			pts[j] = annot.Point{p[0], p[1]}
		}
		if err = as.Add(label, pts); err != nil {
			return nil, fmt.Errorf("%w: %q: label %d: %v", ErrBadSidecar, sidecarPath, i, err)
		}
	}

	return as, nil
}
