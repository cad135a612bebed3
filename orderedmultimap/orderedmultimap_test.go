package orderedmultimap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qntx/xortree/orderedmultimap"
)

func TestInsertAccumulatesUnderSameKey(t *testing.T) {
	t.Parallel()

	m := orderedmultimap.New[int, string]()
	m.Insert(1, "a")
	m.Insert(1, "b")
	m.Insert(2, "c")

	assert.Equal(t, 2, m.KeyLen())
	assert.Equal(t, 3, m.Len())

	vals, found := m.Get(1)
	require.True(t, found)
	assert.Equal(t, []string{"a", "b"}, vals)
}

func TestCount(t *testing.T) {
	t.Parallel()

	m := orderedmultimap.New[int, string]()
	m.Insert(1, "a")
	m.Insert(1, "b")

	assert.Equal(t, 2, m.Count(1))
	assert.Equal(t, 0, m.Count(99))
}

func TestEraseAllRemovesWholeBucket(t *testing.T) {
	t.Parallel()

	m := orderedmultimap.New[int, string]()
	m.Insert(1, "a")
	m.Insert(1, "b")
	m.Insert(2, "c")

	removed := m.EraseAll(1)

	assert.Equal(t, 2, removed)
	assert.False(t, m.Contains(1))
	assert.Equal(t, 1, m.Len())
}

func TestKeysAndValuesOrdered(t *testing.T) {
	t.Parallel()

	m := orderedmultimap.New[int, string]()
	m.Insert(2, "c")
	m.Insert(1, "a")
	m.Insert(1, "b")

	keys, values := m.KeysAndValues()

	assert.Equal(t, []int{1, 1, 2}, keys)
	assert.Equal(t, []string{"a", "b", "c"}, values)
}

func TestLowerAndUpperBound(t *testing.T) {
	t.Parallel()

	m := orderedmultimap.New[int, string]()
	m.Insert(10, "a")
	m.Insert(20, "b")
	m.Insert(20, "c")
	m.Insert(30, "d")

	k, found := m.LowerBound(20)
	require.True(t, found)
	assert.Equal(t, 20, k)

	k, found = m.UpperBound(20)
	require.True(t, found)
	assert.Equal(t, 30, k)

	_, found = m.UpperBound(30)
	assert.False(t, found)
}

func TestEqualRange(t *testing.T) {
	t.Parallel()

	m := orderedmultimap.New[int, string]()
	m.Insert(1, "a")
	m.Insert(2, "b")
	m.Insert(2, "c")
	m.Insert(3, "d")

	lo, hi := m.EqualRange(2)

	assert.Equal(t, 2, lo.Key())
	assert.Equal(t, []string{"b", "c"}, lo.Bucket())
	assert.Equal(t, 3, hi.Key())
}

func TestToJSONAndFromJSON(t *testing.T) {
	t.Parallel()

	m := orderedmultimap.New[string, int]()
	m.Insert("a", 1)
	m.Insert("a", 2)

	data, err := m.ToJSON()
	require.NoError(t, err)

	restored := orderedmultimap.New[string, int]()
	require.NoError(t, restored.FromJSON(data))

	assert.Equal(t, 2, restored.Count("a"))
}

func TestClear(t *testing.T) {
	t.Parallel()

	m := orderedmultimap.New[int, string]()
	m.Insert(1, "a")
	m.Clear()

	assert.True(t, m.Empty())
}
