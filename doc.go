/*
Package lazyfn provides lazily evaluated, composable transformations over
sequences of key/value entries, without intermediate buffering.

This package is built around Iterators. An Iterator[K, V] owns a Source, a
single-pass cursor producing (key, value) entries. Plain value sequences are
keyed by their zero-based emission order.

Transformations that keep the key and value types (Filter, Skip, SkipWhile,
Take, TakeWhile, StepBy, Tap, Trace) are methods: they replace the held
source in place and return the same Iterator, so calls chain fluently.
Transformations that change a type (Map, MapKeys, FlatMap, Flatten, Chain,
Chunk, GroupBy, Keys, Values, ToPairs, FromPairs) are package-level
functions that take over the source and return a new Iterator.

Nothing is evaluated until a terminal operation pulls: All, Any, Count,
Collect, CollectInto, CollectWith, Join, Nth, Partition, ToSlice, Reduce, or
ranging over Seq. Each stage pulls only what its consumer requests, so
unbounded origins such as RangeFrom and RepeatForever are safe as long as
something (Take, TakeWhile, Nth, Any, All) bounds them. Count, Collect and
Join on an unbounded chain never return.

Example of a simple chain:

	// Origins are lazy too: nothing is read yet.
	lines := lazyfn.FromString(log, "\n")

	// Methods chain in place.
	lines.
		Filter(func(line string, _ int) bool { return line != "" }).
		Skip(1)

	// Type-changing steps are functions.
	fields := lazyfn.Map(lines, func(line string, _ int) []string {
		return strings.Split(line, ",")
	})
	batches := lazyfn.Chunk(lazyfn.FlattenSlices(fields), 20)

	// The terminal drives the whole chain, one entry at a time.
	for _, batch := range batches.Seq() {
		ProcessBatch(batch)
	}

Sources are single-pass: a second terminal on the same Iterator sees only
what the first left behind.

Invalid arguments are reported when the step is set up, never while the
chain is consumed. The typed API panics with an *Error carrying a Code;
the functions accepting untyped input (FromAny, RangeAny, Plan.Build, ...)
return it instead.
*/
package lazyfn
