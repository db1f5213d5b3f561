package iterx_test

import (
	"testing"

	"github.com/KasperOmsK/lazyfn/internal/iterx"

	"github.com/stretchr/testify/require"
)

func drain[T any](next func() (int, T, bool)) ([]int, []T) {
	var (
		keys   []int
		values []T
	)
	for {
		k, v, ok := next()
		if !ok {
			return keys, values
		}
		keys = append(keys, k)
		values = append(values, v)
	}
}

func TestFromSlice(t *testing.T) {
	keys, values := drain(iterx.FromSlice([]string{"a", "b"}))

	require.Equal(t, []int{0, 1}, keys)
	require.Equal(t, []string{"a", "b"}, values)
}

func TestFromChan(t *testing.T) {
	ch := make(chan int, 2)
	ch <- 4
	ch <- 5
	close(ch)

	next := iterx.FromChan(ch)
	keys, values := drain(next)

	require.Equal(t, []int{0, 1}, keys)
	require.Equal(t, []int{4, 5}, values)

	_, _, ok := next()
	require.False(t, ok)
}

func TestRunes(t *testing.T) {
	_, values := drain(iterx.Runes("añ€😀"))
	require.Equal(t, []string{"a", "ñ", "€", "😀"}, values)

	_, values = drain(iterx.Runes(""))
	require.Empty(t, values)

	_, values = drain(iterx.Runes("a\xffb"))
	require.Equal(t, []string{"a", "\xff", "b"}, values)
}

func TestSplit(t *testing.T) {
	keys, values := drain(iterx.Split("1, 2, 3", ", "))
	require.Equal(t, []int{0, 1, 2}, keys)
	require.Equal(t, []string{"1", "2", "3"}, values)

	_, values = drain(iterx.Split("", ","))
	require.Equal(t, []string{""}, values)

	_, values = drain(iterx.Split(",,", ","))
	require.Equal(t, []string{"", "", ""}, values)
}

func TestSplit_StaysExhausted(t *testing.T) {
	next := iterx.Split("a", ",")

	_, v, ok := next()
	require.True(t, ok)
	require.Equal(t, "a", v)

	for range 3 {
		_, _, ok = next()
		require.False(t, ok)
	}
}
