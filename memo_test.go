package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoRequiresComparator(t *testing.T) {
	tbl := New[string, person]()

	// Without a comparator there is no ordering worth caching.
	require.NoError(t, tbl.Memo(true))
	assert.False(t, tbl.IsMemoized())

	// Setting a comparator while the flag is on materializes immediately.
	require.NoError(t, tbl.Sort(byAge))
	assert.True(t, tbl.IsMemoized())

	// Clearing the comparator drops the cache again.
	require.NoError(t, tbl.Sort(nil))
	assert.False(t, tbl.IsMemoized())
}

func TestMemoOffDropsCache(t *testing.T) {
	tbl := New[string, person]()
	require.NoError(t, tbl.Set("1", person{Age: 30}))
	require.NoError(t, tbl.Sort(byAge))
	require.NoError(t, tbl.Memo(true))
	require.True(t, tbl.IsMemoized())

	require.NoError(t, tbl.Memo(false))
	assert.False(t, tbl.IsMemoized())

	// Reads stay correct, just unmemoized.
	assert.Equal(t, []string{"1"}, tbl.Keys())
}

func TestMemoPropagatesToPartitions(t *testing.T) {
	tbl := New[string, person]()
	require.NoError(t, tbl.Index(func(p person) []string { return p.Tags }))
	require.NoError(t, tbl.Sort(byAge))
	require.NoError(t, tbl.Set("1", person{Age: 30, Tags: []string{"red"}}))

	red, err := tbl.Partition("red")
	require.NoError(t, err)
	assert.False(t, red.IsMemoized())

	require.NoError(t, tbl.Memo(true))
	assert.True(t, red.IsMemoized())

	// Partitions created afterwards inherit the flag.
	require.NoError(t, tbl.Set("2", person{Age: 20, Tags: []string{"blue"}}))
	blue, err := tbl.Partition("blue")
	require.NoError(t, err)
	assert.True(t, blue.IsMemoized())

	require.NoError(t, tbl.Memo(false))
	assert.False(t, red.IsMemoized())
	assert.False(t, blue.IsMemoized())
}

func TestValuesNeverAliasesTheCache(t *testing.T) {
	tbl := New[string, person]()
	require.NoError(t, tbl.Set("1", person{Age: 30}))
	require.NoError(t, tbl.Set("2", person{Age: 25}))
	require.NoError(t, tbl.Sort(byAge))
	require.NoError(t, tbl.Memo(true))

	a := tbl.Values()
	b := tbl.Values()
	require.Equal(t, a, b)

	// Mutating a returned slice must not corrupt subsequent reads.
	a[0] = person{Age: 999}
	c := tbl.Values()
	assert.Equal(t, 25, c[0].Age)

	ka := tbl.Keys()
	ka[0] = "mutated"
	assert.Equal(t, []string{"2", "1"}, tbl.Keys())
}

func TestMemoizedReadsMatchUnmemoized(t *testing.T) {
	build := func(memo bool) *Table[string, person] {
		tbl := New[string, person]()
		require.NoError(t, tbl.Sort(byAge))
		if memo {
			require.NoError(t, tbl.Memo(true))
		}
		require.NoError(t, tbl.Set("1", person{Age: 30}))
		require.NoError(t, tbl.Set("2", person{Age: 25}))
		require.NoError(t, tbl.Set("3", person{Age: 35}))
		require.NoError(t, tbl.Set("2", person{Age: 31}))
		_, err := tbl.Delete("3")
		require.NoError(t, err)
		return tbl
	}

	assert.Equal(t, build(false).Keys(), build(true).Keys())
	assert.Equal(t, build(false).Values(), build(true).Values())
}

func TestWithMemoAndComparatorOptions(t *testing.T) {
	tbl := New(
		WithComparator[string, person](byAge),
		WithMemo[string, person](true),
	)
	assert.True(t, tbl.IsMemoized())

	require.NoError(t, tbl.Set("1", person{Age: 30}))
	require.NoError(t, tbl.Set("2", person{Age: 25}))
	assert.Equal(t, []string{"2", "1"}, tbl.Keys())
}
