package orderedset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qntx/xortree/orderedset"
)

func TestAddAndContains(t *testing.T) {
	t.Parallel()

	s := orderedset.New[int]()
	s.Add(3, 1, 2)

	assert.True(t, s.Contains(1, 2, 3))
	assert.False(t, s.Contains(1, 99))
	assert.True(t, s.Contains())
}

func TestAddDeduplicates(t *testing.T) {
	t.Parallel()

	s := orderedset.New[int]()
	s.Add(1, 1, 1)

	assert.Equal(t, 1, s.Len())
}

func TestRemove(t *testing.T) {
	t.Parallel()

	s := orderedset.New(1, 2, 3)
	s.Remove(2)

	assert.False(t, s.Contains(2))
	assert.Equal(t, 2, s.Len())
}

func TestValuesOrdered(t *testing.T) {
	t.Parallel()

	s := orderedset.New(3, 1, 2)

	assert.Equal(t, []int{1, 2, 3}, s.Values())
}

func TestLowerAndUpperBound(t *testing.T) {
	t.Parallel()

	s := orderedset.New(10, 20, 30)

	v, found := s.LowerBound(20)
	require.True(t, found)
	assert.Equal(t, 20, v)

	v, found = s.UpperBound(20)
	require.True(t, found)
	assert.Equal(t, 30, v)

	_, found = s.UpperBound(30)
	assert.False(t, found)
}

func TestEqualRange(t *testing.T) {
	t.Parallel()

	s := orderedset.New(1, 2, 3)

	lo, hi := s.EqualRange(2)

	assert.Equal(t, 2, lo.Key())
	assert.Equal(t, 3, hi.Key())
}

func TestIntersectionUnionDifference(t *testing.T) {
	t.Parallel()

	a := orderedset.New(1, 2, 3)
	b := orderedset.New(2, 3, 4)

	assert.Equal(t, []int{2, 3}, a.Intersection(b).Values())
	assert.Equal(t, []int{1, 2, 3, 4}, a.Union(b).Values())
	assert.Equal(t, []int{1}, a.Difference(b).Values())
}

func TestSetAlgebraMismatchedComparatorReturnsEmpty(t *testing.T) {
	t.Parallel()

	ascending := orderedset.NewWith(func(a, b int) int { return a - b }, 1, 2)
	descending := orderedset.NewWith(func(a, b int) int { return b - a }, 1, 2)

	assert.True(t, ascending.Intersection(descending).Empty())
}

func TestToJSONAndFromJSON(t *testing.T) {
	t.Parallel()

	s := orderedset.New(1, 2, 3)

	data, err := s.ToJSON()
	require.NoError(t, err)

	restored := orderedset.New[int]()
	require.NoError(t, restored.FromJSON(data))

	assert.Equal(t, []int{1, 2, 3}, restored.Values())
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := orderedset.New(1, 2, 3)
	s.Clear()

	assert.True(t, s.Empty())
}
