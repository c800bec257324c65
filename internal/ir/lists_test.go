package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOps(t *testing.T) {
	list := []string{}
	ListAppend(&list, "a")
	ListAppend(&list, "c")

	require.NoError(t, ListInsert(&list, 1, "b"))
	assert.Equal(t, []string{"a", "b", "c"}, list)

	// Insert at len appends.
	require.NoError(t, ListInsert(&list, 3, "d"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, list)

	require.NoError(t, ListSet(list, 0, "A"))
	require.NoError(t, ListRemove(&list, 1))
	assert.Equal(t, []string{"A", "c", "d"}, list)
}

func TestListOps_StrictBounds(t *testing.T) {
	list := []int{1, 2}

	assert.True(t, IsIndexOutOfRange(ListSet(list, 2, 0)))
	assert.True(t, IsIndexOutOfRange(ListInsert(&list, 3, 0)))
	assert.True(t, IsIndexOutOfRange(ListInsert(&list, -1, 0)))
	assert.True(t, IsIndexOutOfRange(ListRemove(&list, 2)))
	assert.Equal(t, []int{1, 2}, list)
}
