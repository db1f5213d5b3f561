package lazyfn

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Sink is a destination for CollectInto: anything that supports
// assignment by key and reports its size.
type Sink[K comparable, V any] interface {
	Set(key K, value V)
	Len() int
}

// SinkFactory builds a sink from caller supplied arguments. The product
// is checked against Sink[K, V] by CollectWith.
type SinkFactory func(args ...any) (any, error)

var sinks = struct {
	sync.RWMutex
	factories map[string]SinkFactory
}{
	factories: map[string]SinkFactory{
		"ordered": func(args ...any) (any, error) {
			return NewOrderedSink[any, any](), nil
		},
		"slice": func(args ...any) (any, error) {
			capacity := 0
			if len(args) > 0 {
				n, err := countArg("slice", args[0], false)
				if err != nil {
					return nil, err
				}
				capacity = n
			}
			return NewSliceSink[any](capacity), nil
		},
	},
}

// RegisterSink makes a sink factory available to CollectWith under name,
// replacing any previous registration. The built-in names are "ordered"
// and "slice", both over any values.
func RegisterSink(name string, factory SinkFactory) {
	if factory == nil {
		panic("lazyfn.RegisterSink: factory must not be nil")
	}
	sinks.Lock()
	defer sinks.Unlock()
	sinks.factories[name] = factory
}

// RegisteredSinks lists the names known to CollectWith, sorted.
func RegisteredSinks() []string {
	sinks.RLock()
	defer sinks.RUnlock()
	names := make([]string, 0, len(sinks.factories))
	for name := range sinks.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CollectInto pulls every remaining entry into sink and returns it.
func (it *Iterator[K, V]) CollectInto(sink Sink[K, V]) Sink[K, V] {
	for {
		k, v, ok := it.Next()
		if !ok {
			return sink
		}
		sink.Set(k, v)
	}
}

// CollectWith builds the sink registered under name with args and
// collects every remaining entry into it.
//
// The sink is resolved before anything is pulled: an unknown name fails
// with CollectionClassDoesNotExist and a factory whose product is not a
// Sink[K, V] fails with CollectionClassMustImplementArrayAccess, leaving
// the Iterator untouched in both cases.
func (it *Iterator[K, V]) CollectWith(name string, args ...any) (Sink[K, V], error) {
	sinks.RLock()
	factory, ok := sinks.factories[name]
	sinks.RUnlock()
	if !ok {
		return nil, newError("CollectWith", CollectionClassDoesNotExist, "no sink registered as %q", name)
	}

	product, err := factory(args...)
	if err != nil {
		return nil, errors.Wrapf(err, "building sink %q", name)
	}
	sink, ok := product.(Sink[K, V])
	if !ok {
		return nil, newError("CollectWith", CollectionClassMustImplementArrayAccess,
			"sink %q builds %T, which cannot hold these entries", name, product)
	}
	return it.CollectInto(sink), nil
}

// OrderedSink is a Sink backed by an ordered map.
type OrderedSink[K comparable, V any] struct {
	*orderedmap.OrderedMap[K, V]
}

// NewOrderedSink returns an empty OrderedSink.
func NewOrderedSink[K comparable, V any]() *OrderedSink[K, V] {
	return &OrderedSink[K, V]{OrderedMap: orderedmap.New[K, V]()}
}

// Set stores value under key. A key already present keeps its position.
func (s *OrderedSink[K, V]) Set(key K, value V) {
	s.OrderedMap.Set(key, value)
}

// SliceSink is a Sink that stores values at their integer keys, growing
// as needed. Gaps hold the zero value; negative keys are ignored.
type SliceSink[V any] struct {
	Values []V
}

// NewSliceSink returns an empty SliceSink with room for capacity values.
func NewSliceSink[V any](capacity int) *SliceSink[V] {
	return &SliceSink[V]{Values: make([]V, 0, capacity)}
}

// Set stores value at index key, padding with zero values up to it.
func (s *SliceSink[V]) Set(key int, value V) {
	if key < 0 {
		return
	}
	if key >= len(s.Values) {
		s.Values = append(s.Values, make([]V, key+1-len(s.Values))...)
	}
	s.Values[key] = value
}

// Len is the length of Values, gaps included.
func (s *SliceSink[V]) Len() int {
	return len(s.Values)
}
