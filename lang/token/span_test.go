package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpanMerge(t *testing.T) {
	cases := []struct {
		a, b, want Span
	}{
		{MakeSpan(0, 1), MakeSpan(1, 2), MakeSpan(0, 2)},
		{MakeSpan(4, 8), MakeSpan(0, 2), MakeSpan(0, 8)},
		{MakeSpan(0, 10), MakeSpan(2, 4), MakeSpan(0, 10)},
		{MakeSpan(3, 3), MakeSpan(3, 3), MakeSpan(3, 3)},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.a.Merge(c.b))
		assert.Equal(t, c.want, c.b.Merge(c.a))
	}
}

func TestSpanEncloses(t *testing.T) {
	outer := MakeSpan(2, 10)
	assert.True(t, outer.Encloses(MakeSpan(2, 10)))
	assert.True(t, outer.Encloses(MakeSpan(4, 6)))
	assert.False(t, outer.Encloses(MakeSpan(0, 4)))
	assert.False(t, outer.Encloses(MakeSpan(8, 12)))
}

func TestSpanString(t *testing.T) {
	assert.Equal(t, "2:10", MakeSpan(2, 10).String())
	assert.Equal(t, "0:0", Span{}.String())
}
