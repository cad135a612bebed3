package orderedmultiset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qntx/xortree/orderedmultiset"
)

func TestInsertAccumulatesCount(t *testing.T) {
	t.Parallel()

	s := orderedmultiset.New[int]()
	s.Insert(1, 1, 1, 2)

	assert.Equal(t, 3, s.Count(1))
	assert.Equal(t, 1, s.Count(2))
	assert.Equal(t, 0, s.Count(99))
	assert.Equal(t, 2, s.DistinctLen())
	assert.Equal(t, 4, s.Len())
}

func TestEraseOneDecrementsCount(t *testing.T) {
	t.Parallel()

	s := orderedmultiset.New(1, 1, 1)
	require.True(t, s.EraseOne(1))

	assert.Equal(t, 2, s.Count(1))

	require.True(t, s.EraseOne(1))
	require.True(t, s.EraseOne(1))
	assert.Equal(t, 0, s.Count(1))
	assert.False(t, s.EraseOne(1))
}

func TestEraseAllRemovesEveryOccurrence(t *testing.T) {
	t.Parallel()

	s := orderedmultiset.New(1, 1, 1, 2)
	removed := s.EraseAll(1)

	assert.Equal(t, 3, removed)
	assert.Equal(t, 0, s.Count(1))
	assert.Equal(t, 1, s.Len())
}

func TestValuesRepeatsPerOccurrence(t *testing.T) {
	t.Parallel()

	s := orderedmultiset.New(2, 1, 1)

	assert.Equal(t, []int{1, 1, 2}, s.Values())
	assert.Equal(t, []int{1, 2}, s.DistinctValues())
}

func TestLowerAndUpperBound(t *testing.T) {
	t.Parallel()

	s := orderedmultiset.New(10, 20, 20, 30)

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

	s := orderedmultiset.New(1, 2, 2, 3)

	lo, hi := s.EqualRange(2)

	assert.Equal(t, 2, lo.Key())
	assert.Equal(t, 2, len(lo.Bucket()))
	assert.Equal(t, 3, hi.Key())
}

func TestToJSONAndFromJSON(t *testing.T) {
	t.Parallel()

	s := orderedmultiset.New(1, 1, 2)

	data, err := s.ToJSON()
	require.NoError(t, err)

	restored := orderedmultiset.New[int]()
	require.NoError(t, restored.FromJSON(data))

	assert.Equal(t, 2, restored.Count(1))
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := orderedmultiset.New(1, 2, 3)
	s.Clear()

	assert.True(t, s.Empty())
}
