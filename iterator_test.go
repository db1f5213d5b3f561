package lazyfn_test

import (
	"iter"
	"math"
	"testing"

	"github.com/KasperOmsK/lazyfn"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/stretchr/testify/require"
)

func TestFrom(t *testing.T) {
	it := lazyfn.FromSeq(seqOf(1, 2, 3))

	var out []int
	for _, v := range it.Seq() {
		out = append(out, v)
	}

	require.Equal(t, []int{1, 2, 3}, out)
}

func TestFrom_Source(t *testing.T) {
	n := 0
	src := lazyfn.SourceFunc[string, int](func() (string, int, bool) {
		if n == 2 {
			return "", 0, false
		}
		n++
		return string(rune('a' + n - 1)), n, true
	})

	it := lazyfn.From[string, int](src)

	require.Equal(t, []entry[string, int]{{"a", 1}, {"b", 2}}, entries(it.Collect()))
}

func TestFrom_IteratorIsReused(t *testing.T) {
	it := lazyfn.FromSlice([]int{1})

	require.Same(t, it, lazyfn.From[int, int](it))
}

func TestFromSlice_Identity(t *testing.T) {
	it := lazyfn.FromSlice([]string{"a", "b", "c"})

	require.Equal(t, []entry[int, string]{{0, "a"}, {1, "b"}, {2, "c"}}, entries(it.Collect()))
}

func TestFromOrderedMap_Identity(t *testing.T) {
	m := orderedOf(
		entry[string, int]{"z", 26},
		entry[string, int]{"a", 1},
		entry[string, int]{"m", 13},
	)

	require.Equal(t, entries(m), entries(lazyfn.FromOrderedMap(m).Collect()))
}

func TestFromOrderedMap_Empty(t *testing.T) {
	require.Equal(t, 0, lazyfn.FromOrderedMap(orderedmap.New[string, int]()).Count())
}

func TestFromSeq_KeysFollowEmissionOrder(t *testing.T) {
	it := lazyfn.FromSeq(seqOf("x", "y"))

	require.Equal(t, []entry[int, string]{{0, "x"}, {1, "y"}}, entries(it.Collect()))
}

func TestFromSeq2(t *testing.T) {
	var seq iter.Seq2[string, int] = func(yield func(string, int) bool) {
		_ = yield("a", 1) && yield("b", 2)
	}

	require.Equal(t, []entry[string, int]{{"a", 1}, {"b", 2}}, entries(lazyfn.FromSeq2(seq).Collect()))
}

func naturals(finished *bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		defer func() { *finished = true }()
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

func TestFromSeq_ReleasedOnExhaustion(t *testing.T) {
	finished := false
	it := lazyfn.FromSeq(naturals(&finished))

	values := lazyfn.Map(it, func(v int, _ int) int { return v * v }).Take(4).ToSlice()

	require.Equal(t, []int{0, 1, 4, 9}, values)
	require.True(t, finished)
}

func TestFromSeq_Close(t *testing.T) {
	finished := false
	it := lazyfn.FromSeq(naturals(&finished))

	require.Equal(t, 1, it.Nth(1).MustGet())
	require.False(t, finished)

	it.Close()
	require.True(t, finished)
	require.Equal(t, 0, it.Count())

	// Close is idempotent
	it.Close()
}

func TestFromSeq_ClosePropagatesThroughAdapters(t *testing.T) {
	finished := false
	chunks := lazyfn.Chunk(lazyfn.FromSeq(naturals(&finished)).Skip(1), 2)

	require.Equal(t, []int{1, 2}, chunks.Nth(0).MustGet())

	chunks.Close()
	require.True(t, finished)
}

func TestFromSeq_CloseReachesFlattenedIterators(t *testing.T) {
	finished := false
	it := lazyfn.Flatten(lazyfn.FromSlice([]any{lazyfn.FromSeq(naturals(&finished))}))

	require.Equal(t, 1, it.Nth(1).MustGet())
	require.False(t, finished)

	it.Close()
	require.True(t, finished)
}

func TestFromSeq_CloseReachesFlattenedSeqs(t *testing.T) {
	finished := false
	seq := iter.Seq[any](func(yield func(any) bool) {
		for v := range naturals(&finished) {
			if !yield(v) {
				return
			}
		}
	})
	it := lazyfn.Flatten(lazyfn.FromSlice([]any{seq}))

	require.Equal(t, 2, it.Nth(2).MustGet())
	require.False(t, finished)

	it.Close()
	require.True(t, finished)
}

func TestFromChan(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)

	require.Equal(t, []entry[int, int]{{0, 1}, {1, 2}, {2, 3}}, entries(lazyfn.FromChan(ch).Collect()))
}

func TestFromChan_IsLazy(t *testing.T) {
	ch := make(chan int)
	go func() {
		defer close(ch)
		for i := range 10 {
			ch <- i
		}
	}()

	it := lazyfn.FromChan(ch)

	require.Equal(t, []int{0, 1, 2}, it.Take(3).ToSlice())
	// the producer is still blocked on its fourth send
	require.Equal(t, 3, <-ch)

	for range ch {
	}
}

func TestFromString(t *testing.T) {
	for _, tc := range []struct {
		name      string
		s         string
		delimiter string
		expected  []string
	}{
		{"split", "a,b,,c", ",", []string{"a", "b", "", "c"}},
		{"multi-character delimiter", "a::b::c", "::", []string{"a", "b", "c"}},
		{"trailing delimiter", "a,", ",", []string{"a", ""}},
		{"no delimiter in input", "abc", ",", []string{"abc"}},
		{"empty input", "", ",", []string{""}},
		{"characters", "héllo", "", []string{"h", "é", "l", "l", "o"}},
		{"no characters", "", "", []string{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, lazyfn.FromString(tc.s, tc.delimiter).ToSlice())
		})
	}
}

func TestFromString_KeysAreSequential(t *testing.T) {
	it := lazyfn.FromString("x y", " ")

	require.Equal(t, []int{0, 1}, lazyfn.Keys(it).ToSlice())
}

func TestRange(t *testing.T) {
	require.Equal(t, []int{1, 2, 3, 4, 5}, lazyfn.Range(1, 5).ToSlice())
	require.Equal(t, []int{3, 2, 1}, lazyfn.Range(3, 1).ToSlice())
	require.Equal(t, []int{7}, lazyfn.Range(7, 7).ToSlice())
	require.Equal(t, []int{-1, 0, 1}, lazyfn.Range(-1, 1).ToSlice())
}

func TestRangeStep(t *testing.T) {
	require.Equal(t, []int{0, 3, 6}, lazyfn.RangeStep(0, 7, 3).ToSlice())
	require.Equal(t, []int{0, 2, 4, 6}, lazyfn.RangeStep(0, 6, 2).ToSlice())
	require.Equal(t, []int{10, 7, 4, 1}, lazyfn.RangeStep(10, 0, 3).ToSlice())
	require.Equal(t, []int{0, 1, 2}, lazyfn.RangeStep(0, 2, -1).ToSlice())
	require.Equal(t, []int{2, 1, 0}, lazyfn.RangeStep(2, 0, -1).ToSlice())
	require.Equal(t, []int{5}, lazyfn.RangeStep(5, 6, 10).ToSlice())
}

func TestRangeStep_ZeroStep(t *testing.T) {
	requireCode(t, lazyfn.NonZeroIntegerRequired, func() {
		lazyfn.RangeStep(0, 4, 0)
	})
}

func TestRange_NoOverflow(t *testing.T) {
	require.Equal(t, []int{math.MaxInt - 2, math.MaxInt - 1, math.MaxInt}, lazyfn.RangeFrom(math.MaxInt-2).ToSlice())
	require.Equal(t, []int{math.MaxInt - 1}, lazyfn.RangeStep(math.MaxInt-1, math.MaxInt, 5).ToSlice())
	require.Equal(t, []int{math.MinInt + 1, math.MinInt}, lazyfn.Range(math.MinInt+1, math.MinInt).ToSlice())
	require.Equal(t, []int{math.MinInt, 0}, lazyfn.RangeStep(math.MinInt, math.MaxInt, math.MinInt).ToSlice())
}

func TestRangeFrom_Unbounded(t *testing.T) {
	require.Equal(t, []int{5, 6, 7}, lazyfn.RangeFrom(5).Take(3).ToSlice())
}

func TestRepeat(t *testing.T) {
	require.Equal(t, []int{0, 0, 0, 0, 0}, lazyfn.Repeat(0, 5).ToSlice())
	require.Equal(t, 0, lazyfn.Repeat("x", 0).Count())
	require.Equal(t, []int{0, 1, 2}, lazyfn.Keys(lazyfn.Repeat("x", 3)).ToSlice())
}

func TestRepeat_NegativeCount(t *testing.T) {
	requireCode(t, lazyfn.PositiveIntegerRequired, func() {
		lazyfn.Repeat(0, -1)
	})
}

func TestRepeatForever(t *testing.T) {
	require.Equal(t, []string{"a", "a", "a"}, lazyfn.RepeatForever("a").Take(3).ToSlice())
}

func TestIterator_SinglePass(t *testing.T) {
	it := lazyfn.FromSlice([]int{1, 2, 3, 4, 5})

	require.Equal(t, 2, it.Nth(1).MustGet())
	require.Equal(t, 3, it.Count())
	require.Equal(t, 0, it.Count())
}

func TestIterator_StaysExhausted(t *testing.T) {
	// a source that would resume after reporting exhaustion
	calls := 0
	src := lazyfn.SourceFunc[int, int](func() (int, int, bool) {
		calls++
		return calls, calls, calls != 1
	})

	it := lazyfn.From[int, int](src)

	_, _, ok := it.Next()
	require.False(t, ok)
	_, _, ok = it.Next()
	require.False(t, ok)
	require.Equal(t, 1, calls)
}

func TestSeq_BreakLeavesTail(t *testing.T) {
	it := lazyfn.Range(1, 5)

	for _, v := range it.Seq() {
		if v == 2 {
			break
		}
	}

	require.Equal(t, []int{3, 4, 5}, it.ToSlice())
}
