package lazyfn

import (
	"log/slog"

	"github.com/go-softwarelab/common/pkg/slogx"
)

type (
	// Predicate reports whether the entry (value, key) is selected.
	Predicate[K comparable, V any] func(value V, key K) bool

	// Observer receives every entry flowing through Tap.
	Observer[K comparable, V any] func(value V, key K)
)

// Filter keeps the entries for which predicate returns true. Keys are
// preserved.
func (it *Iterator[K, V]) Filter(predicate Predicate[K, V]) *Iterator[K, V] {
	return it.replace(func(upstream Source[K, V]) Source[K, V] {
		return SourceFunc[K, V](func() (K, V, bool) {
			for {
				k, v, ok := upstream.Next()
				if !ok {
					return k, v, false
				}
				if predicate(v, k) {
					return k, v, true
				}
			}
		})
	})
}

// Skip discards the first n entries. Skip panics with
// PositiveIntegerRequired if n is negative.
func (it *Iterator[K, V]) Skip(n int) *Iterator[K, V] {
	requireCount("Skip", n)
	return it.replace(func(upstream Source[K, V]) Source[K, V] {
		skipped := false
		return SourceFunc[K, V](func() (K, V, bool) {
			if !skipped {
				skipped = true
				for range n {
					if k, v, ok := upstream.Next(); !ok {
						return k, v, false
					}
				}
			}
			return upstream.Next()
		})
	})
}

// SkipWhile discards entries until predicate first returns false. That
// entry and everything after it is emitted without consulting predicate
// again.
func (it *Iterator[K, V]) SkipWhile(predicate Predicate[K, V]) *Iterator[K, V] {
	return it.replace(func(upstream Source[K, V]) Source[K, V] {
		skipping := true
		return SourceFunc[K, V](func() (K, V, bool) {
			if !skipping {
				return upstream.Next()
			}
			for {
				k, v, ok := upstream.Next()
				if !ok || !predicate(v, k) {
					skipping = false
					return k, v, ok
				}
			}
		})
	})
}

// Take emits at most the first n entries and then stops pulling from
// upstream entirely, which makes it safe on unbounded sources. Take
// panics with PositiveIntegerRequired if n is negative.
func (it *Iterator[K, V]) Take(n int) *Iterator[K, V] {
	requireCount("Take", n)
	return it.replace(func(upstream Source[K, V]) Source[K, V] {
		taken := 0
		return SourceFunc[K, V](func() (K, V, bool) {
			if taken >= n {
				return exhausted[K, V]()
			}
			taken++
			return upstream.Next()
		})
	})
}

// TakeWhile emits entries while predicate returns true. The first entry
// failing the predicate is dropped and ends the sequence.
func (it *Iterator[K, V]) TakeWhile(predicate Predicate[K, V]) *Iterator[K, V] {
	return it.replace(func(upstream Source[K, V]) Source[K, V] {
		done := false
		return SourceFunc[K, V](func() (K, V, bool) {
			if done {
				return exhausted[K, V]()
			}
			k, v, ok := upstream.Next()
			if !ok || !predicate(v, k) {
				done = true
				return exhausted[K, V]()
			}
			return k, v, true
		})
	})
}

// StepBy emits the first entry and then every n-th one after it. StepBy
// panics with NonZeroPositiveIntegerRequired if n is not positive.
func (it *Iterator[K, V]) StepBy(n int) *Iterator[K, V] {
	requireNonZeroCount("StepBy", n)
	return it.replace(func(upstream Source[K, V]) Source[K, V] {
		first := true
		return SourceFunc[K, V](func() (K, V, bool) {
			if first {
				first = false
				return upstream.Next()
			}
			for range n - 1 {
				if k, v, ok := upstream.Next(); !ok {
					return k, v, false
				}
			}
			return upstream.Next()
		})
	})
}

// Tap calls fn for every entry as it passes through, without changing
// it. Tap panics if fn is nil.
func (it *Iterator[K, V]) Tap(fn Observer[K, V]) *Iterator[K, V] {
	if fn == nil {
		panic("lazyfn.Tap: fn must not be nil")
	}
	return it.replace(func(upstream Source[K, V]) Source[K, V] {
		return SourceFunc[K, V](func() (K, V, bool) {
			k, v, ok := upstream.Next()
			if ok {
				fn(v, k)
			}
			return k, v, ok
		})
	})
}

// Trace logs every entry pulled through this point of the chain at debug
// level, and a final record with the number of entries once upstream is
// exhausted. A nil logger discards everything.
func (it *Iterator[K, V]) Trace(logger *slog.Logger, msg string) *Iterator[K, V] {
	if logger == nil {
		logger = slogx.SilentLogger()
	}
	return it.replace(func(upstream Source[K, V]) Source[K, V] {
		pulled := 0
		done := false
		return SourceFunc[K, V](func() (K, V, bool) {
			k, v, ok := upstream.Next()
			if !ok {
				if !done {
					done = true
					logger.Debug(msg, slog.Bool("exhausted", true), slogx.Number("count", pulled))
				}
				return k, v, false
			}
			logger.Debug(msg, slogx.Number("index", pulled), slog.Any("key", k), slog.Any("value", v))
			pulled++
			return k, v, true
		})
	})
}
