package lazy_test

import (
	"fmt"
	"testing"

	"github.com/mna/lemna/lang/heap"
	"github.com/mna/lemna/lang/lazy"
	"github.com/mna/lemna/lang/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropN(t *testing.T) {
	cases := []struct {
		n    int
		want []int64
	}{
		{0, []int64{1, 2, 3, 4, 5}},
		{1, []int64{2, 3, 4, 5}},
		{2, []int64{3, 4, 5}},
		{3, []int64{4, 5}},
		{4, []int64{5}},
		{5, []int64{}},
		{6, []int64{}},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("drop%d", c.n), func(t *testing.T) {
			h := heap.New()
			rest, err := lazy.DropN(h, c.n, lazy.MakeGenerator(h, 1, 5))
			require.NoError(t, err)
			assert.Equal(t, c.want, elems(t, h, 10, rest))
		})
	}
}

func TestDropZeroIsSameCell(t *testing.T) {
	h := heap.New()

	g := lazy.MakeGenerator(h, 1, 5)
	rest, err := lazy.DropN(h, 0, g)
	require.NoError(t, err)
	assert.Same(t, g, rest)
	assert.False(t, g.Evaluated(), "dropping zero demands nothing")
}

func TestDropPastEndYieldsNil(t *testing.T) {
	h := heap.New()

	rest, err := lazy.DropN(h, 9, lazy.MakeGenerator(h, 1, 5))
	require.NoError(t, err)
	v, err := h.Force(rest)
	require.NoError(t, err)
	assert.Equal(t, lazy.Nil, v)

	// dropping from an exhausted sequence returns it unchanged
	again, err := lazy.DropN(h, 3, rest)
	require.NoError(t, err)
	assert.Same(t, rest, again)
}

func TestHeadOfReturnsUnforcedElement(t *testing.T) {
	h := heap.New()

	g := lazy.MakeGenerator(h, 1, 5)
	head, err := lazy.HeadOf(h, g)
	require.NoError(t, err)

	assert.False(t, head.Evaluated(), "only the outer constructor is demanded")
	assert.Equal(t, uint64(1), h.Stats().Forced)

	v, err := h.Force(head)
	require.NoError(t, err)
	assert.Equal(t, types.Int(1), v)
}

func TestHeadOfEmpty(t *testing.T) {
	h := heap.New()

	_, err := lazy.HeadOf(h, lazy.MakeGenerator(h, 1, 0))
	var ese lazy.EmptySequenceError
	require.ErrorAs(t, err, &ese)
}

func TestTakeNStopsEarly(t *testing.T) {
	h := heap.New()

	assert.Equal(t, []int64{1, 2}, elems(t, h, 10, lazy.MakeGenerator(h, 1, 2)))
}
