package lazyfn

import (
	"github.com/go-softwarelab/common/pkg/types"
)

type (

	// MapFunc transforms the value of an entry. It receives the value
	// first and the key second.
	MapFunc[K comparable, In, Out any] func(value In, key K) Out

	// KeyFunc computes a new key for an entry.
	KeyFunc[K comparable, V any, Out comparable] func(value V, key K) Out
)

// Map transforms each value using fn. Keys are preserved.
//
// Map takes over the source of it; it is left exhausted.
func Map[K comparable, In, Out any](it *Iterator[K, In], fn MapFunc[K, In, Out]) *Iterator[K, Out] {
	return derive(it, func(upstream Source[K, In]) Source[K, Out] {
		return SourceFunc[K, Out](func() (K, Out, bool) {
			k, v, ok := upstream.Next()
			if !ok {
				var zero Out
				return k, zero, false
			}
			return k, fn(v, k), true
		})
	})
}

// MapKeys replaces each key with the result of fn. Values are preserved.
//
// Keys produced by fn may collide. Nothing is deduplicated here: when the
// entries are later collected, the last value written for a key wins.
func MapKeys[K comparable, V any, Out comparable](it *Iterator[K, V], fn KeyFunc[K, V, Out]) *Iterator[Out, V] {
	return derive(it, func(upstream Source[K, V]) Source[Out, V] {
		return SourceFunc[Out, V](func() (Out, V, bool) {
			k, v, ok := upstream.Next()
			if !ok {
				var zero Out
				return zero, v, false
			}
			return fn(v, k), v, true
		})
	})
}

// FlatMap calls fn for each entry and emits every value of the returned
// Iterator before moving on to the next entry. The keys of both levels are
// discarded and the output is numbered from zero. A nil Iterator returned by
// fn contributes nothing.
func FlatMap[K comparable, V any, IK comparable, Out any](
	it *Iterator[K, V],
	fn func(value V, key K) *Iterator[IK, Out]) *Iterator[int, Out] {

	var inner *Iterator[IK, Out]
	out := derive(it, func(upstream Source[K, V]) Source[int, Out] {
		return sequenced(func() (Out, bool) {
			for {
				if inner != nil {
					if _, v, ok := inner.Next(); ok {
						return v, true
					}
					inner = nil
				}
				k, v, ok := upstream.Next()
				if !ok {
					var zero Out
					return zero, false
				}
				inner = fn(v, k)
			}
		})
	})
	out.closers = append(out.closers, func() {
		if inner != nil {
			inner.Close()
		}
	})
	return out
}

// Flatten expands values that are themselves sequences, one level deep:
// nested Iterators of any type, Sources with int, string or any keys, and
// everything FromAny accepts (slices and arrays of any element type,
// map[string]any, ordered maps, iter.Seq[any], iter.Seq2[any, any]). Any
// other value, strings included, is emitted unchanged. Keys are discarded
// and the output is numbered from zero.
//
// Flatten takes ownership of nested Iterators: closing the result closes
// the one being expanded.
func Flatten[K comparable](it *Iterator[K, any]) *Iterator[int, any] {
	var inner *Iterator[any, any]
	out := derive(it, func(upstream Source[K, any]) Source[int, any] {
		return sequenced(func() (any, bool) {
			for {
				if inner != nil {
					if _, v, ok := inner.Next(); ok {
						return v, true
					}
					inner = nil
				}
				_, v, ok := upstream.Next()
				if !ok {
					return nil, false
				}
				if inner = nestedIterator(v); inner == nil {
					return v, true
				}
			}
		})
	})
	out.closers = append(out.closers, func() {
		if inner != nil {
			inner.Close()
		}
	})
	return out
}

// nestedIterator returns an Iterator over v when v is a sequence, or nil.
func nestedIterator(v any) *Iterator[any, any] {
	switch n := v.(type) {
	case anyPuller:
		return &Iterator[any, any]{
			src: SourceFunc[any, any](func() (any, any, bool) {
				v, ok := n.nextAny()
				return nil, v, ok
			}),
			closers: []func(){n.Close},
		}
	case Source[int, any]:
		return From(dropKeys(n))
	case Source[string, any]:
		return From(dropKeys(n))
	}
	if it, err := FromAny(v); err == nil {
		return it
	}
	return nil
}

func dropKeys[K comparable](src Source[K, any]) Source[any, any] {
	return SourceFunc[any, any](func() (any, any, bool) {
		_, v, ok := src.Next()
		return nil, v, ok
	})
}

func valuesOf[K comparable, V any](src Source[K, V]) func() (V, bool) {
	return func() (V, bool) {
		_, v, ok := src.Next()
		return v, ok
	}
}

// FlattenSlices emits the elements of every slice value in order. Keys
// are discarded and the output is numbered from zero.
func FlattenSlices[K comparable, V any](it *Iterator[K, []V]) *Iterator[int, V] {
	return derive(it, func(upstream Source[K, []V]) Source[int, V] {
		var (
			slice []V
			pos   int
		)
		return sequenced(func() (V, bool) {
			for pos >= len(slice) {
				_, s, ok := upstream.Next()
				if !ok {
					var zero V
					return zero, false
				}
				slice, pos = s, 0
			}
			v := slice[pos]
			pos++
			return v, true
		})
	})
}

// Chain emits the values of it and then the values of each of others, in
// argument order. Keys are discarded and numbered from zero across the
// whole concatenation. Chain takes ownership of others.
func Chain[K comparable, V any](it *Iterator[K, V], others ...*Iterator[K, V]) *Iterator[int, V] {
	out := derive(it, func(upstream Source[K, V]) Source[int, V] {
		sources := make([]Source[K, V], 0, len(others)+1)
		sources = append(sources, upstream)
		for _, o := range others {
			if o != nil {
				sources = append(sources, o)
			}
		}
		i := 0
		return sequenced(func() (V, bool) {
			for i < len(sources) {
				if _, v, ok := sources[i].Next(); ok {
					return v, true
				}
				i++
			}
			var zero V
			return zero, false
		})
	})
	for _, o := range others {
		if o != nil {
			out.closers = append(out.closers, o.Close)
		}
	}
	return out
}

// Chunk groups consecutive values into slices of the given size and
// returns an Iterator producing those slices, numbered from zero.
//
// The final chunk may be smaller than size.
//
// Chunk panics with NonZeroPositiveIntegerRequired if size is not positive.
func Chunk[K comparable, V any](it *Iterator[K, V], size int) *Iterator[int, []V] {
	requireNonZeroCount("Chunk", size)

	return derive(it, func(upstream Source[K, V]) Source[int, []V] {
		return sequenced(func() ([]V, bool) {
			// every chunk gets its own backing array: callers (and Collect)
			// keep chunks around after the next one is produced.
			var accum []V
			for len(accum) < size {
				_, v, ok := upstream.Next()
				if !ok {
					break
				}
				if accum == nil {
					accum = make([]V, 0, size)
				}
				accum = append(accum, v)
			}
			return accum, len(accum) > 0
		})
	})
}

// GroupBy groups consecutive values according to keyFunc and returns an
// Iterator producing slices of those grouped values, numbered from zero.
//
// GroupBy does not reorder values: values are grouped only when they appear
// consecutively with the same group key. For example, given input values:
//
//	A, A, B, B, A
//
// GroupBy will emit:
//
//	[A, A], [B, B], [A]
//
// GroupBy reads one entry past the end of each group.
func GroupBy[K comparable, V any, G comparable](it *Iterator[K, V], keyFunc KeyFunc[K, V, G]) *Iterator[int, []V] {
	return derive(it, func(upstream Source[K, V]) Source[int, []V] {
		var (
			pending    V
			pendingKey G
			hasPending bool
			done       bool
		)
		return sequenced(func() ([]V, bool) {
			if done && !hasPending {
				return nil, false
			}
			if !hasPending {
				k, v, ok := upstream.Next()
				if !ok {
					done = true
					return nil, false
				}
				pending, pendingKey = v, keyFunc(v, k)
			}
			hasPending = false

			group := []V{pending}
			currentGroupKey := pendingKey
			for !done {
				k, v, ok := upstream.Next()
				if !ok {
					done = true
					break
				}
				g := keyFunc(v, k)
				if g != currentGroupKey {
					pending, pendingKey, hasPending = v, g, true
					break
				}
				group = append(group, v)
			}
			return group, true
		})
	})
}

// Keys emits the key of every entry as its value. The output is numbered
// from zero.
func Keys[K comparable, V any](it *Iterator[K, V]) *Iterator[int, K] {
	return derive(it, func(upstream Source[K, V]) Source[int, K] {
		return sequenced(func() (K, bool) {
			k, _, ok := upstream.Next()
			return k, ok
		})
	})
}

// Values drops the keys and numbers the values from zero.
func Values[K comparable, V any](it *Iterator[K, V]) *Iterator[int, V] {
	return derive(it, func(upstream Source[K, V]) Source[int, V] {
		return sequenced(valuesOf(upstream))
	})
}

// ToPairs emits one key/value Pair per entry, numbered from zero.
func ToPairs[K comparable, V any](it *Iterator[K, V]) *Iterator[int, types.Pair[K, V]] {
	return derive(it, func(upstream Source[K, V]) Source[int, types.Pair[K, V]] {
		return sequenced(func() (types.Pair[K, V], bool) {
			k, v, ok := upstream.Next()
			return types.Pair[K, V]{Left: k, Right: v}, ok
		})
	})
}

// FromPairs turns each Pair value back into an entry, the Left as key and
// the Right as value. It is the inverse of ToPairs. The incoming keys are
// ignored; the resulting keys may repeat.
func FromPairs[K comparable, PK comparable, PV any](it *Iterator[K, types.Pair[PK, PV]]) *Iterator[PK, PV] {
	return derive(it, func(upstream Source[K, types.Pair[PK, PV]]) Source[PK, PV] {
		return SourceFunc[PK, PV](func() (PK, PV, bool) {
			_, p, ok := upstream.Next()
			return p.Left, p.Right, ok
		})
	})
}
