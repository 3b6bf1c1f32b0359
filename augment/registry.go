package augment

import (
	"fmt"
	"math/rand"
)

// params wraps the loosely-typed parameter maps pipeline configs arrive in.
// YAML decoding yields int for whole numbers and float64 otherwise; the
// getters accept both.
type params map[string]any

// float fetches a float parameter, falling back to def when absent.
func (p params) float(key string, def float64) (float64, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: %q must be a number, got %T", ErrBadParam, key, v)
	}
}

// reqFloat fetches a mandatory float parameter.
func (p params) reqFloat(key string) (float64, error) {
	if _, ok := p[key]; !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrBadParam, key)
	}

	return p.float(key, 0)
}

// reqInt fetches a mandatory integer parameter.
func (p params) reqInt(key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrBadParam, key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: %q must be an integer, got %v", ErrBadParam, key, n)
		}

		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: %q must be an integer, got %T", ErrBadParam, key, v)
	}
}

// boolOr fetches a bool parameter, falling back to def when absent.
func (p params) boolOr(key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q must be a bool, got %T", ErrBadParam, key, v)
	}

	return b, nil
}

// New builds the transform registered under name from a parameter map, the
// form pipeline configs deliver. rng seeds the randomized transforms and
// may be nil for deterministic ones.
// Returns ErrUnknownTransform for unregistered names; parameter failures
// wrap ErrBadParam or the transform's own sentinel.
func New(name string, raw map[string]any, rng *rand.Rand) (Augmentation, error) {
	p := params(raw)
	switch name {
	case "shift":
		dx, err := p.float("dx", 0)
		if err != nil {
			return nil, err
		}
		dy, err := p.float("dy", 0)
		if err != nil {
			return nil, err
		}

		return NewShift(dx, dy), nil

	case "scale":
		sx, err := p.float("sx", 1)
		if err != nil {
			return nil, err
		}
		sy, err := p.float("sy", 1)
		if err != nil {
			return nil, err
		}

		return NewScale(sx, sy)

	case "rotate":
		deg, err := p.reqFloat("deg")
		if err != nil {
			return nil, err
		}

		return NewRotate(deg), nil

	case "resize":
		w, err := p.reqInt("width")
		if err != nil {
			return nil, err
		}
		h, err := p.reqInt("height")
		if err != nil {
			return nil, err
		}
		keep, err := p.boolOr("preserve_aspect", true)
		if err != nil {
			return nil, err
		}

		return NewResize(w, h, keep)

	case "crop":
		xMin, err := p.reqFloat("x_min")
		if err != nil {
			return nil, err
		}
		yMin, err := p.reqFloat("y_min")
		if err != nil {
			return nil, err
		}
		xMax, err := p.reqFloat("x_max")
		if err != nil {
			return nil, err
		}
		yMax, err := p.reqFloat("y_max")
		if err != nil {
			return nil, err
		}

		return NewCrop(xMin, yMin, xMax, yMax)

	case "mosaic":
		return NewMosaic(), nil

	case "mixup":
		lambda, err := p.reqFloat("lambda")
		if err != nil {
			return nil, err
		}

		return NewMixUp(lambda)

	case "dropout":
		count, err := p.reqInt("count")
		if err != nil {
			return nil, err
		}
		minFrac, err := p.float("min_frac", 0.05)
		if err != nil {
			return nil, err
		}
		maxFrac, err := p.float("max_frac", 0.2)
		if err != nil {
			return nil, err
		}

		return NewDropout(count, minFrac, maxFrac, rng)

	case "brighten":
		delta, err := p.reqInt("delta")
		if err != nil {
			return nil, err
		}

		return NewBrighten(delta)

	case "saturate":
		factor, err := p.reqFloat("factor")
		if err != nil {
			return nil, err
		}

		return NewSaturate(factor)

	case "invert":
		return NewInvert(), nil

	case "noise":
		amp, err := p.reqInt("amplitude")
		if err != nil {
			return nil, err
		}

		return NewNoise(amp, rng)

	case "blur":
		radius, err := p.reqInt("radius")
		if err != nil {
			return nil, err
		}

		return NewBlur(radius)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
	}
}

// Names lists every registered transform name, for config validation and
// CLI help.
func Names() []string {
	return []string{
		"shift", "scale", "rotate", "resize", "crop",
		"mosaic", "mixup",
		"dropout", "brighten", "saturate", "invert", "noise", "blur",
	}
}
