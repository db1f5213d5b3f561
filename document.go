package lazyfn

import (
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// FromJSON iterates over the top level of a JSON document, which must be
// an array (keys are indexes) or an object (keys are member names, in
// document order). Members are decoded only as they are pulled: nested
// arrays become []any and nested objects map[string]any.
//
// An invalid document fails with an error; a valid one that is neither
// array nor object fails with IterableRequired.
func FromJSON(doc string) (*Iterator[any, any], error) {
	if !gjson.Valid(doc) {
		return nil, errors.New("lazyfn.FromJSON: invalid JSON document")
	}
	root := gjson.Parse(doc)

	var keys, values []gjson.Result
	switch {
	case root.IsArray():
		values = root.Array()
	case root.IsObject():
		root.ForEach(func(key, value gjson.Result) bool {
			keys = append(keys, key)
			values = append(values, value)
			return true
		})
	default:
		return nil, newError("FromJSON", IterableRequired, "document is a %s, not an array or object", root.Type)
	}

	pos := 0
	return From[any, any](SourceFunc[any, any](func() (any, any, bool) {
		if pos >= len(values) {
			return nil, nil, false
		}
		i := pos
		pos++
		if keys == nil {
			return i, values[i].Value(), true
		}
		return keys[i].String(), values[i].Value(), true
	})), nil
}

// FromYAML iterates over the top level of a YAML document, which must be
// a sequence (keys are indexes) or a mapping (keys decoded from the
// document, in document order). Values are decoded only as they are
// pulled.
//
// A document that does not parse fails with an error; one whose root is
// a scalar fails with IterableRequired. An empty document yields nothing.
func FromYAML(data []byte) (*Iterator[any, any], error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "lazyfn.FromYAML")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return From[any, any](SourceFunc[any, any](exhausted[any, any])), nil
	}

	root := doc.Content[0]
	for root.Kind == yaml.AliasNode && root.Alias != nil {
		root = root.Alias
	}

	switch root.Kind {
	case yaml.SequenceNode:
		items := root.Content
		pos := 0
		return From[any, any](SourceFunc[any, any](func() (any, any, bool) {
			if pos >= len(items) {
				return nil, nil, false
			}
			i := pos
			pos++
			return i, decodeNode(items[i]), true
		})), nil
	case yaml.MappingNode:
		items := root.Content
		pos := 0
		return From[any, any](SourceFunc[any, any](func() (any, any, bool) {
			if pos+1 >= len(items) {
				return nil, nil, false
			}
			k, v := items[pos], items[pos+1]
			pos += 2
			return decodeNode(k), decodeNode(v), true
		})), nil
	}
	return nil, newError("FromYAML", IterableRequired, "document root is not a sequence or mapping")
}

// decodeNode decodes a node into its natural Go value. Content that
// parsed cannot fail to decode into any, so the error is only checked
// for completeness and yields the raw text.
func decodeNode(n *yaml.Node) any {
	var v any
	if err := n.Decode(&v); err != nil {
		return n.Value
	}
	return v
}

// anyKeys widens the key type to any.
func (it *Iterator[K, V]) anyKeys() *Iterator[any, any] {
	return Map(MapKeys(it, anyKey[K, V]), func(v V, _ any) any { return v })
}
