package lazyfn

import (
	"iter"
	"math"

	"github.com/KasperOmsK/lazyfn/internal/iterx"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FromSlice returns an Iterator over the elements of s keyed by index.
func FromSlice[V any](s []V) *Iterator[int, V] {
	return From[int, V](SourceFunc[int, V](iterx.FromSlice(s)))
}

// FromOrderedMap returns an Iterator over m in insertion order. Entries
// are read from the map only as they are pulled.
func FromOrderedMap[K comparable, V any](m *orderedmap.OrderedMap[K, V]) *Iterator[K, V] {
	var pair *orderedmap.Pair[K, V]
	started := false
	return From[K, V](SourceFunc[K, V](func() (K, V, bool) {
		if !started {
			pair = m.Oldest()
			started = true
		} else if pair != nil {
			pair = pair.Next()
		}
		if pair == nil {
			return exhausted[K, V]()
		}
		return pair.Key, pair.Value, true
	}))
}

// FromSeq returns an Iterator over seq keyed by emission order. seq may
// be unbounded.
//
// The sequence is driven through iter.Pull. The underlying coroutine is
// released when the Iterator (or any Iterator derived from it) is
// exhausted or closed, so call Close when abandoning it half way.
func FromSeq[V any](seq iter.Seq[V]) *Iterator[int, V] {
	next, stop := iter.Pull(seq)
	return &Iterator[int, V]{
		src:     sequenced(next),
		closers: []func(){stop},
	}
}

// FromSeq2 is the key/value counterpart of FromSeq; keys are kept as
// produced by seq.
func FromSeq2[K comparable, V any](seq iter.Seq2[K, V]) *Iterator[K, V] {
	next, stop := iter.Pull2(seq)
	return &Iterator[K, V]{
		src:     SourceFunc[K, V](next),
		closers: []func(){stop},
	}
}

// FromChan returns an Iterator that receives from ch on every pull. It
// is exhausted once ch is closed.
func FromChan[V any](ch <-chan V) *Iterator[int, V] {
	return From[int, V](SourceFunc[int, V](iterx.FromChan(ch)))
}

// FromString splits s on the literal delimiter. An empty delimiter
// yields s one character at a time, keeping multi-byte characters
// whole; an empty s then yields nothing.
func FromString(s, delimiter string) *Iterator[int, string] {
	if delimiter == "" {
		return From[int, string](SourceFunc[int, string](iterx.Runes(s)))
	}
	return From[int, string](SourceFunc[int, string](iterx.Split(s, delimiter)))
}

// Range yields every integer from start to end inclusive, counting down
// when start > end.
func Range(start, end int) *Iterator[int, int] {
	return rangeOf("Range", start, end, 1)
}

// RangeFrom counts up from start to math.MaxInt.
func RangeFrom(start int) *Iterator[int, int] {
	return rangeOf("RangeFrom", start, math.MaxInt, 1)
}

// RangeStep yields start, start±step, ... up to and including end when
// it is hit exactly. The direction always follows the order of start and
// end: only the magnitude of step is used, and it must not be zero.
func RangeStep(start, end, step int) *Iterator[int, int] {
	return rangeOf("RangeStep", start, end, step)
}

func rangeOf(op string, start, end, step int) *Iterator[int, int] {
	if step == 0 {
		fail(op, NonZeroIntegerRequired, "step must not be zero")
	}

	// distances are computed on uint so neither abs(math.MinInt) nor
	// end-start can overflow
	var magnitude uint
	if step < 0 {
		magnitude = uint(-(step + 1)) + 1
	} else {
		magnitude = uint(step)
	}
	descending := start > end

	cur := start
	done := false
	return From[int, int](sequenced(func() (int, bool) {
		if done {
			return 0, false
		}
		v := cur
		var remaining uint
		if descending {
			remaining = uint(v) - uint(end)
		} else {
			remaining = uint(end) - uint(v)
		}
		if remaining < magnitude {
			done = true
		} else if descending {
			cur = int(uint(v) - magnitude)
		} else {
			cur = int(uint(v) + magnitude)
		}
		return v, true
	}))
}

// Repeat yields value n times.
func Repeat[V any](value V, n int) *Iterator[int, V] {
	requireCount("Repeat", n)
	i := 0
	return From[int, V](SourceFunc[int, V](func() (int, V, bool) {
		if i >= n {
			var zero V
			return 0, zero, false
		}
		k := i
		i++
		return k, value, true
	}))
}

// RepeatForever yields value without end. Bound it with Take, TakeWhile
// or Nth before handing it to an exhausting terminal.
func RepeatForever[V any](value V) *Iterator[int, V] {
	return From[int, V](sequenced(func() (V, bool) {
		return value, true
	}))
}
