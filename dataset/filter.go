package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadFilter indicates a filter string that does not parse.
var ErrBadFilter = errors.New("dataset: bad filter expression")

// Metric names the package statistic a filter compares.
type Metric string

// Metrics a filter can compare. Count is the number of selected
// annotations; the others fold over their areas and extents.
const (
	MetricCount     Metric = "count"
	MetricMinArea   Metric = "minarea"
	MetricMaxArea   Metric = "maxarea"
	MetricMinWidth  Metric = "minwidth"
	MetricMaxWidth  Metric = "maxwidth"
	MetricMinHeight Metric = "minheight"
	MetricMaxHeight Metric = "maxheight"
)

// Op is a comparison operator of a filter.
type Op string

// Comparison operators, longest-match parsed.
const (
	OpLE Op = "<="
	OpGE Op = ">="
	OpEQ Op = "=="
	OpNE Op = "!="
	OpLT Op = "<"
	OpGT Op = ">"
)

// Filter is one parsed dataset criterion: metric, optional label selector,
// operator, threshold. A package passes when the comparison holds; min/max
// metrics over an empty selection never pass.
type Filter struct {
	Metric Metric
	Sel    Selector
	Op     Op
	Value  float64
}

// ParseFilter parses expressions of the form
//
//	metric(op)value             e.g.  count>=3
//	metric(selector)(op)value   e.g.  minarea(name=car)>1024
//
// where selector is name=<label name> or id=<label id>.
// Returns ErrBadFilter (wrapped with detail) on any malformed part.
func ParseFilter(s string) (Filter, error) {
	f := Filter{Sel: AnySelector}
	rest := strings.TrimSpace(s)

	// Metric is the leading run of letters.
	i := 0
	for i < len(rest) && rest[i] >= 'a' && rest[i] <= 'z' {
		i++
	}
	metric := Metric(rest[:i])
	switch metric {
	case MetricCount, MetricMinArea, MetricMaxArea,
		MetricMinWidth, MetricMaxWidth, MetricMinHeight, MetricMaxHeight:
		f.Metric = metric
	default:
		return Filter{}, fmt.Errorf("%w: unknown metric in %q", ErrBadFilter, s)
	}
	rest = rest[i:]

	// Optional (selector).
	if strings.HasPrefix(rest, "(") {
		end := strings.Index(rest, ")")
		if end < 0 {
			return Filter{}, fmt.Errorf("%w: unclosed selector in %q", ErrBadFilter, s)
		}
		sel, err := parseSelector(rest[1:end])
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %q: %v", ErrBadFilter, s, err)
		}
		f.Sel = sel
		rest = rest[end+1:]
	}

	// Operator, longest first.
	rest = strings.TrimSpace(rest)
	for _, op := range []Op{OpLE, OpGE, OpEQ, OpNE, OpLT, OpGT} {
		if strings.HasPrefix(rest, string(op)) {
			f.Op = op
			rest = rest[len(op):]
			break
		}
	}
	if f.Op == "" {
		return Filter{}, fmt.Errorf("%w: missing operator in %q", ErrBadFilter, s)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
	if err != nil {
		return Filter{}, fmt.Errorf("%w: bad threshold in %q", ErrBadFilter, s)
	}
	f.Value = v

	return f, nil
}

// parseSelector parses "name=<x>" or "id=<n>".
func parseSelector(s string) (Selector, error) {
	key, val, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return Selector{}, fmt.Errorf("selector must be name=... or id=...")
	}
	switch key {
	case "name":
		if val == "" {
			return Selector{}, fmt.Errorf("empty label name")
		}

		return Selector{ID: AnySelector.ID, Name: val}, nil
	case "id":
		id, err := strconv.Atoi(val)
		if err != nil || id < 0 {
			return Selector{}, fmt.Errorf("label id must be a non-negative integer")
		}

		return Selector{ID: id}, nil
	default:
		return Selector{}, fmt.Errorf("unknown selector key %q", key)
	}
}

// ParseFilters parses a list of filter expressions.
func ParseFilters(exprs []string) ([]Filter, error) {
	out := make([]Filter, 0, len(exprs))
	for _, e := range exprs {
		f, err := ParseFilter(e)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}

	return out, nil
}

// Match reports whether the package satisfies the filter.
func (f Filter) Match(p *Package) bool {
	meta := p.MetaInf()
	var v float64
	switch f.Metric {
	case MetricCount:
		v = float64(meta.Count(f.Sel))
	default:
		var ok bool
		v, ok = f.fold(meta)
		if !ok {
			return false
		}
	}

	return f.compare(v)
}

// fold dispatches the min/max metrics.
func (f Filter) fold(meta *MetaInf) (float64, bool) {
	switch f.Metric {
	case MetricMinArea:
		return meta.MinArea(f.Sel)
	case MetricMaxArea:
		return meta.MaxArea(f.Sel)
	case MetricMinWidth:
		return meta.MinWidth(f.Sel)
	case MetricMaxWidth:
		return meta.MaxWidth(f.Sel)
	case MetricMinHeight:
		return meta.MinHeight(f.Sel)
	case MetricMaxHeight:
		return meta.MaxHeight(f.Sel)
	default:
		return 0, false
	}
}

// compare applies the operator against the threshold.
func (f Filter) compare(v float64) bool {
	switch f.Op {
	case OpLT:
		return v < f.Value
	case OpLE:
		return v <= f.Value
	case OpGT:
		return v > f.Value
	case OpGE:
		return v >= f.Value
	case OpEQ:
		return v == f.Value
	case OpNE:
		return v != f.Value
	default:
		return false
	}
}
