package lazyfn

import (
	"iter"
	"math"
	"reflect"
	"sort"

	"github.com/go-softwarelab/common/pkg/optional"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// The functions in this file accept untyped arguments, as they come out
// of decoded documents and plans, and report bad input as an *Error
// instead of panicking.

// FromAny wraps an untyped collection. Accepted are slices and arrays of
// any element type (keyed by index), map[string]any (iterated in sorted
// key order, as Go maps have none of their own), an ordered map with any
// keys and values, iter.Seq[any], iter.Seq2[any, any] and anything already
// implementing Source[any, any]. Everything else, strings included, fails
// with IterableRequired.
func FromAny(v any) (*Iterator[any, any], error) {
	switch c := v.(type) {
	case *Iterator[any, any]:
		return c, nil
	case Source[any, any]:
		return From(c), nil
	case []any:
		return MapKeys(FromSlice(c), anyKey[int, any]), nil
	case map[string]any:
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return Map(MapKeys(FromSlice(keys), func(k string, _ int) any { return k }),
			func(_ string, k any) any { return c[k.(string)] }), nil
	case *orderedmap.OrderedMap[any, any]:
		return FromOrderedMap(c), nil
	case iter.Seq[any]:
		return MapKeys(FromSeq(c), anyKey[int, any]), nil
	case func(func(any) bool):
		return MapKeys(FromSeq(iter.Seq[any](c)), anyKey[int, any]), nil
	case iter.Seq2[any, any]:
		return FromSeq2(c), nil
	case func(func(any, any) bool):
		return FromSeq2(iter.Seq2[any, any](c)), nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		return fromList(rv), nil
	}
	return nil, newError("FromAny", IterableRequired, "cannot iterate over %T", v)
}

// fromList reads the elements of a slice or array value as they are
// pulled.
func fromList(rv reflect.Value) *Iterator[any, any] {
	pos := 0
	return From[any, any](SourceFunc[any, any](func() (any, any, bool) {
		if pos >= rv.Len() {
			return nil, nil, false
		}
		i := pos
		pos++
		return i, rv.Index(i).Interface(), true
	}))
}

func anyKey[K comparable, V any](_ V, k K) any {
	return k
}

// FromStringAny is FromString for untyped arguments; delimiter may be
// omitted. Both must be strings, else StringRequired.
func FromStringAny(s any, delimiter ...any) (*Iterator[int, string], error) {
	str, ok := s.(string)
	if !ok {
		return nil, newError("FromStringAny", StringRequired, "expected a string, got %T", s)
	}
	delim := ""
	if len(delimiter) > 0 {
		if delim, ok = delimiter[0].(string); !ok {
			return nil, newError("FromStringAny", StringRequired, "expected a string delimiter, got %T", delimiter[0])
		}
	}
	return FromString(str, delim), nil
}

// RangeAny is RangeStep for untyped arguments: args are start, end and
// step, defaulting to 0, math.MaxInt and 1. start and end must be
// integers (IntegerRequired); step must be a non-zero integer
// (NonZeroIntegerRequired).
func RangeAny(args ...any) (*Iterator[int, int], error) {
	bounds := []int{0, math.MaxInt, 1}
	for i, a := range args {
		if i >= len(bounds) {
			break
		}
		n, ok := asInt(a)
		if i == 2 {
			if !ok || n == 0 {
				return nil, newError("RangeAny", NonZeroIntegerRequired, "step must be a non-zero integer, got %v", a)
			}
		} else if !ok {
			return nil, newError("RangeAny", IntegerRequired, "expected an integer, got %T", a)
		}
		bounds[i] = n
	}
	return rangeOf("RangeAny", bounds[0], bounds[1], bounds[2]), nil
}

// RepeatAny repeats value n times, or forever when n is omitted or nil.
func RepeatAny(value any, n ...any) (*Iterator[int, any], error) {
	if len(n) == 0 || n[0] == nil {
		return RepeatForever(value), nil
	}
	count, err := countArg("RepeatAny", n[0], false)
	if err != nil {
		return nil, err
	}
	return Repeat(value, count), nil
}

// NthAny is Nth for an untyped index. Nothing is pulled when n is not a
// non-negative integer.
func (it *Iterator[K, V]) NthAny(n any) (optional.Value[V], error) {
	i, err := countArg("NthAny", n, false)
	if err != nil {
		return optional.Empty[V](), err
	}
	return it.Nth(i), nil
}

// countArg validates an untyped count: a non-negative integer, or a
// positive one when nonZero is set.
func countArg(op string, v any, nonZero bool) (int, error) {
	n, ok := asInt(v)
	if nonZero {
		if !ok || n <= 0 {
			return 0, newError(op, NonZeroPositiveIntegerRequired, "expected a positive integer, got %v", v)
		}
		return n, nil
	}
	if !ok || n < 0 {
		return 0, newError(op, PositiveIntegerRequired, "expected a non-negative integer, got %v", v)
	}
	return n, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), n <= math.MaxInt
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), n <= math.MaxInt
	}
	return 0, false
}
