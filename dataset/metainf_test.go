package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/torvik/augmenta/annot"
)

// fixtureMeta builds annotations with two cars (16x16 and 8x4) and one
// person (4x4) on a 100x100 frame.
func fixtureMeta(t *testing.T) *MetaInf {
	t.Helper()
	as := annot.NewAnnotations(100, 100, annot.BBox)
	car, err := annot.NewLabel(1, "car")
	require.NoError(t, err)
	person, err := annot.NewLabel(2, "person")
	require.NoError(t, err)

	require.NoError(t, as.Add(car, []annot.Point{{0, 0}, {16, 16}}))
	require.NoError(t, as.Add(car, []annot.Point{{20, 20}, {28, 24}}))
	require.NoError(t, as.Add(person, []annot.Point{{50, 50}, {54, 54}}))

	return NewMetaInf(as)
}

func TestMetaInfCount(t *testing.T) {
	m := fixtureMeta(t)

	if got := m.Count(AnySelector); got != 3 {
		t.Fatalf("Count(any) = %d, want 3", got)
	}
	if got := m.Count(Selector{ID: 1}); got != 2 {
		t.Fatalf("Count(id=1) = %d, want 2", got)
	}
	if got := m.Count(Selector{ID: annot.UnsetID, Name: "person"}); got != 1 {
		t.Fatalf("Count(name=person) = %d, want 1", got)
	}
	if got := m.Count(Selector{ID: 7}); got != 0 {
		t.Fatalf("Count(id=7) = %d, want 0", got)
	}
}

func TestMetaInfLabels(t *testing.T) {
	m := fixtureMeta(t)

	require.ElementsMatch(t, []int{1, 2}, m.LabelIDs())
	require.ElementsMatch(t, []string{"car", "person"}, m.LabelNames())
}

func TestMetaInfStats(t *testing.T) {
	m := fixtureMeta(t)

	min, ok := m.MinArea(AnySelector)
	require.True(t, ok)
	require.InDelta(t, 16.0, min, 1e-9)

	max, ok := m.MaxArea(Selector{ID: 1})
	require.True(t, ok)
	require.InDelta(t, 256.0, max, 1e-9)

	w, ok := m.MaxWidth(Selector{ID: annot.UnsetID, Name: "car"})
	require.True(t, ok)
	require.InDelta(t, 16.0, w, 1e-9)

	h, ok := m.MinHeight(Selector{ID: 1})
	require.True(t, ok)
	require.InDelta(t, 4.0, h, 1e-9)

	_, ok = m.MinArea(Selector{ID: 99})
	require.False(t, ok)
}
