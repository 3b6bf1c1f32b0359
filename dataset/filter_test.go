package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/torvik/augmenta/annot"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want Filter
	}{
		{
			name: "count without selector",
			expr: "count>=3",
			want: Filter{Metric: MetricCount, Sel: AnySelector, Op: OpGE, Value: 3},
		},
		{
			name: "minarea with name selector",
			expr: "minarea(name=car)>1024",
			want: Filter{
				Metric: MetricMinArea,
				Sel:    Selector{ID: annot.UnsetID, Name: "car"},
				Op:     OpGT,
				Value:  1024,
			},
		},
		{
			name: "maxwidth with id selector",
			expr: "maxwidth(id=2)<=64.5",
			want: Filter{Metric: MetricMaxWidth, Sel: Selector{ID: 2}, Op: OpLE, Value: 64.5},
		},
		{
			name: "not equal with spaces",
			expr: "  count != 0 ",
			want: Filter{Metric: MetricCount, Sel: AnySelector, Op: OpNE, Value: 0},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFilter(tc.expr)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseFilterErrors(t *testing.T) {
	for _, expr := range []string{
		"",
		"median>1",
		"count3",
		"count>",
		"count>abc",
		"minarea(name=car>1",
		"minarea(color=red)>1",
		"minarea(id=-4)>1",
	} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseFilter(expr)
			require.ErrorIs(t, err, ErrBadFilter)
		})
	}
}

func TestFilterMatch(t *testing.T) {
	as := annot.NewAnnotations(100, 100, annot.BBox)
	car, err := annot.NewLabel(1, "car")
	require.NoError(t, err)
	require.NoError(t, as.Add(car, []annot.Point{{0, 0}, {16, 16}}))
	require.NoError(t, as.Add(car, []annot.Point{{20, 20}, {28, 24}}))
	pkg := NewPackage("img/a.png", as)

	tests := []struct {
		expr string
		want bool
	}{
		{"count>=2", true},
		{"count(name=car)==2", true},
		{"count(name=person)>0", false},
		{"minarea>16", true},
		{"minarea(id=1)>=100", false},
		{"maxarea(id=1)==256", true},
		{"maxheight<=16", true},
		// min/max over an empty selection never passes.
		{"minarea(name=person)<9999", false},
	}
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			f, err := ParseFilter(tc.expr)
			require.NoError(t, err)
			require.Equal(t, tc.want, f.Match(pkg))
		})
	}
}

func TestParseFiltersPropagatesError(t *testing.T) {
	_, err := ParseFilters([]string{"count>1", "bogus"})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBadFilter))
}
