package lazyfn

import (
	"fmt"
	"strings"

	"github.com/go-softwarelab/common/pkg/optional"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultJoinDelimiter is the separator used by JoinDefault.
const DefaultJoinDelimiter = ", "

// All reports whether every value is the boolean true. It stops pulling
// at the first value that is not, and is true for an empty sequence.
func (it *Iterator[K, V]) All() bool {
	for {
		_, v, ok := it.Next()
		if !ok {
			return true
		}
		if !isTrue(v) {
			return false
		}
	}
}

// Any reports whether at least one value is the boolean true. It stops
// pulling at the first one found.
func (it *Iterator[K, V]) Any() bool {
	for {
		_, v, ok := it.Next()
		if !ok {
			return false
		}
		if isTrue(v) {
			return true
		}
	}
}

func isTrue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// Count pulls every remaining entry and returns how many there were. On
// an unbounded source Count never returns.
func (it *Iterator[K, V]) Count() int {
	n := 0
	for {
		if _, _, ok := it.Next(); !ok {
			return n
		}
		n++
	}
}

// Collect pulls every remaining entry into a new ordered map keyed by
// entry key. When a key repeats, the last value wins and the key keeps
// the position of its first occurrence.
func (it *Iterator[K, V]) Collect() *orderedmap.OrderedMap[K, V] {
	out := orderedmap.New[K, V]()
	for {
		k, v, ok := it.Next()
		if !ok {
			return out
		}
		out.Set(k, v)
	}
}

// ToSlice pulls every remaining value into a slice, in emission order.
// Keys are ignored.
func (it *Iterator[K, V]) ToSlice() []V {
	out := make([]V, 0)
	for {
		_, v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

// Join concatenates the string form of every remaining value, as printed
// by fmt, separated by delimiter. An empty sequence gives "".
func (it *Iterator[K, V]) Join(delimiter string) string {
	var b strings.Builder
	first := true
	for {
		_, v, ok := it.Next()
		if !ok {
			return b.String()
		}
		if !first {
			b.WriteString(delimiter)
		}
		first = false
		fmt.Fprint(&b, v)
	}
}

// JoinDefault is Join with DefaultJoinDelimiter.
func (it *Iterator[K, V]) JoinDefault() string {
	return it.Join(DefaultJoinDelimiter)
}

// Nth returns the value of the zero-based n-th remaining entry, pulling
// nothing past it. The result is empty when the sequence ends first.
// Nth panics with PositiveIntegerRequired if n is negative.
func (it *Iterator[K, V]) Nth(n int) optional.Value[V] {
	requireCount("Nth", n)
	for i := 0; ; i++ {
		_, v, ok := it.Next()
		if !ok {
			return optional.Empty[V]()
		}
		if i == n {
			return optional.Some(v)
		}
	}
}

// Partition pulls every remaining entry and splits it by predicate,
// keeping the original keys: entries for which predicate is true go to
// matched, the others to rest.
func (it *Iterator[K, V]) Partition(predicate Predicate[K, V]) (matched, rest *orderedmap.OrderedMap[K, V]) {
	matched = orderedmap.New[K, V]()
	rest = orderedmap.New[K, V]()
	for {
		k, v, ok := it.Next()
		if !ok {
			return matched, rest
		}
		if predicate(v, k) {
			matched.Set(k, v)
		} else {
			rest.Set(k, v)
		}
	}
}

// Reduce folds every remaining entry into an accumulator, left to right,
// starting from initial. An empty sequence returns initial.
func Reduce[K comparable, V any, A any](it *Iterator[K, V], fn func(acc A, value V, key K) A, initial A) A {
	acc := initial
	for {
		k, v, ok := it.Next()
		if !ok {
			return acc
		}
		acc = fn(acc, v, k)
	}
}
