package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapOrder(t *testing.T) {
	h := &MinHeap{}
	for _, e := range []struct {
		id string
		f  float64
	}{{"c", 3}, {"a", 1}, {"e", 5}, {"b", 2}, {"d", 4}} {
		h.Push(e.id, e.f)
	}
	require.Equal(t, 5, h.Len())

	var got []string
	for h.Len() > 0 {
		id, _, ok := h.Pop()
		require.True(t, ok)
		got = append(got, id)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)

	_, _, ok := h.Pop()
	assert.False(t, ok)
}

func TestMinHeapTiesPopInPushOrder(t *testing.T) {
	h := &MinHeap{}
	h.Push("z", 1)
	h.Push("late", 0.5)
	h.Push("m", 1)
	h.Push("a", 1)

	var got []string
	for h.Len() > 0 {
		id, _, _ := h.Pop()
		got = append(got, id)
	}
	assert.Equal(t, []string{"late", "z", "m", "a"}, got)
}

func TestMinHeapDuplicatesAndClear(t *testing.T) {
	h := &MinHeap{}
	h.Push("n", 9)
	h.Push("n", 3)

	id, f, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, "n", id)
	assert.Equal(t, 3.0, f)

	h.Clear()
	assert.Equal(t, 0, h.Len())
}
