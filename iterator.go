package lazyfn

import (
	"iter"
)

type (
	// Source is a single-pass cursor over key/value entries.
	//
	// Next returns the next entry, or ok == false once the source is
	// exhausted. A source that reported exhaustion must keep doing so.
	Source[K comparable, V any] interface {
		Next() (key K, value V, ok bool)
	}

	// SourceFunc adapts a plain function to a Source.
	SourceFunc[K comparable, V any] func() (K, V, bool)
)

func (f SourceFunc[K, V]) Next() (K, V, bool) {
	return f()
}

// Iterator is a lazily evaluated chain of transformations over a Source.
//
// An Iterator owns exactly one Source at a time. Adapters that keep the
// key and value types (Filter, Skip, Take, ...) replace the held source
// in place and return the same Iterator so calls can be chained.
// Adapters that change a type parameter (Map, Chunk, Keys, ...) are
// package-level functions: they move the source into a new Iterator and
// leave the argument exhausted.
//
// Nothing is pulled from the origin until a terminal operation (Count,
// Collect, Nth, Join, ...) or Next is called, and no stage pulls more
// than its consumer asks for.
//
// An Iterator is not safe for concurrent use.
type Iterator[K comparable, V any] struct {
	src     Source[K, V]
	closers []func()
}

// From wraps src into an Iterator.
func From[K comparable, V any](src Source[K, V]) *Iterator[K, V] {
	if it, ok := src.(*Iterator[K, V]); ok {
		return it
	}
	return &Iterator[K, V]{src: src}
}

// Next pulls the next entry through the whole chain. Iterators are
// themselves sources, so one chain can feed another.
func (it *Iterator[K, V]) Next() (K, V, bool) {
	if it.src == nil {
		return exhausted[K, V]()
	}
	k, v, ok := it.src.Next()
	if !ok {
		it.release()
	}
	return k, v, ok
}

// Seq exposes the remaining entries as an iter.Seq2. Ranging over it
// consumes the Iterator; breaking out of the loop leaves the tail in
// place for later calls.
func (it *Iterator[K, V]) Seq() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for {
			k, v, ok := it.Next()
			if !ok || !yield(k, v) {
				return
			}
		}
	}
}

// Close drops the held source and releases resources held by origins
// such as FromSeq. It is only needed when an Iterator built on an
// iter.Seq origin is abandoned before being exhausted. Close is
// idempotent.
func (it *Iterator[K, V]) Close() {
	it.release()
}

func (it *Iterator[K, V]) release() {
	it.src = nil
	closers := it.closers
	it.closers = nil
	for _, c := range closers {
		c()
	}
}

// nextAny lets Flatten expand nested iterators of any instantiation.
func (it *Iterator[K, V]) nextAny() (any, bool) {
	_, v, ok := it.Next()
	return v, ok
}

type anyPuller interface {
	nextAny() (any, bool)
	Close()
}

// replace installs the source built on top of the current one.
func (it *Iterator[K, V]) replace(build func(upstream Source[K, V]) Source[K, V]) *Iterator[K, V] {
	it.src = build(it.upstream())
	return it
}

// derive moves the source of it into a new Iterator with different type
// parameters. The cleanup duties travel along with the source.
func derive[K2 comparable, V2 any, K comparable, V any](
	it *Iterator[K, V],
	build func(upstream Source[K, V]) Source[K2, V2]) *Iterator[K2, V2] {

	out := &Iterator[K2, V2]{
		src:     build(it.upstream()),
		closers: it.closers,
	}
	it.src, it.closers = nil, nil
	return out
}

// upstream returns the held source, or an empty one once it is gone, so
// adapters such as Chain still see their other inputs.
func (it *Iterator[K, V]) upstream() Source[K, V] {
	if it.src == nil {
		return SourceFunc[K, V](exhausted[K, V])
	}
	return it.src
}

// sequenced returns a source that numbers the values produced by next
// from zero, discarding whatever keys they had.
func sequenced[V any](next func() (V, bool)) Source[int, V] {
	pos := 0
	return SourceFunc[int, V](func() (int, V, bool) {
		v, ok := next()
		if !ok {
			return 0, v, false
		}
		i := pos
		pos++
		return i, v, true
	})
}

func exhausted[K comparable, V any]() (K, V, bool) {
	var (
		k K
		v V
	)
	return k, v, false
}
