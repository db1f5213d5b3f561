package lazyfn

import (
	"github.com/go-softwarelab/common/pkg/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Step is one operation of a Plan. Args are untyped, as decoded.
//
// A fromPairs step keeps only Pair values and two-element lists; any other
// value is dropped without an error.
type Step struct {
	Op   string `yaml:"op" json:"op"`
	Args []any  `yaml:"args,omitempty" json:"args,omitempty"`
}

// Plan is a declarative chain: an optional source followed by adapters.
// It lets a chain be described in configuration, for example:
//
//	source: {op: range, args: [0, 20, 2]}
//	steps:
//	  - {op: skip, args: [1]}
//	  - {op: chunk, args: [3]}
//
// Source ops are range, repeat, split, json, yaml and from (the default,
// which hands the Build input to FromAny); json and yaml read the Build
// input as a document. Step ops are skip, take, stepBy, chunk, keys,
// values, toPairs, fromPairs and flatten. fromPairs turns Pair values and
// two-element lists into entries and drops any other value.
type Plan struct {
	Source *Step  `yaml:"source,omitempty" json:"source,omitempty"`
	Steps  []Step `yaml:"steps" json:"steps"`
}

// ParsePlan decodes a Plan from YAML, or JSON, which YAML accepts.
func ParsePlan(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "lazyfn.ParsePlan")
	}
	return &p, nil
}

// Build sets up the chain described by p. Every argument is validated
// here and nothing is pulled from the source: the first invalid step
// fails the whole Build with the code its typed counterpart would panic
// with.
func (p *Plan) Build(input any) (*Iterator[any, any], error) {
	it, err := p.source(input)
	if err != nil {
		return nil, err
	}
	for i, s := range p.Steps {
		if it, err = applyStep(it, s); err != nil {
			it.Close()
			return nil, errors.Wrapf(err, "step %d (%s)", i, s.Op)
		}
	}
	return it, nil
}

func (p *Plan) source(input any) (*Iterator[any, any], error) {
	if p.Source == nil {
		return FromAny(input)
	}
	args := p.Source.Args
	switch p.Source.Op {
	case "", "from":
		return FromAny(input)
	case "range":
		it, err := RangeAny(args...)
		if err != nil {
			return nil, err
		}
		return Map(it, func(v int, _ int) any { return v }).anyKeys(), nil
	case "repeat":
		if len(args) == 0 {
			return nil, errors.New("lazyfn: repeat needs a value")
		}
		it, err := RepeatAny(args[0], args[1:]...)
		if err != nil {
			return nil, err
		}
		return it.anyKeys(), nil
	case "split":
		if len(args) == 0 {
			return nil, newError("Plan", StringRequired, "split needs a string")
		}
		it, err := FromStringAny(args[0], args[1:]...)
		if err != nil {
			return nil, err
		}
		return Map(it, func(v string, _ int) any { return v }).anyKeys(), nil
	case "json":
		switch doc := input.(type) {
		case string:
			return FromJSON(doc)
		case []byte:
			return FromJSON(string(doc))
		}
		return nil, newError("Plan", StringRequired, "json source needs a string input, got %T", input)
	case "yaml":
		switch doc := input.(type) {
		case string:
			return FromYAML([]byte(doc))
		case []byte:
			return FromYAML(doc)
		}
		return nil, newError("Plan", StringRequired, "yaml source needs a string input, got %T", input)
	}
	return nil, errors.Errorf("lazyfn: unknown plan source %q", p.Source.Op)
}

func applyStep(it *Iterator[any, any], s Step) (*Iterator[any, any], error) {
	var arg any
	if len(s.Args) > 0 {
		arg = s.Args[0]
	}

	switch s.Op {
	case "skip":
		n, err := countArg("Skip", arg, false)
		if err != nil {
			return it, err
		}
		return it.Skip(n), nil
	case "take":
		n, err := countArg("Take", arg, false)
		if err != nil {
			return it, err
		}
		return it.Take(n), nil
	case "stepBy":
		n, err := countArg("StepBy", arg, true)
		if err != nil {
			return it, err
		}
		return it.StepBy(n), nil
	case "chunk":
		n, err := countArg("Chunk", arg, true)
		if err != nil {
			return it, err
		}
		return Map(Chunk(it, n), func(c []any, _ int) any { return c }).anyKeys(), nil
	case "keys":
		return Keys(it).anyKeys(), nil
	case "values":
		return Values(it).anyKeys(), nil
	case "toPairs":
		return Map(ToPairs(it), func(p types.Pair[any, any], _ int) any { return p }).anyKeys(), nil
	case "fromPairs":
		return FromPairs(Map(it.Filter(isPair), asPair)), nil
	case "flatten":
		return Flatten(it).anyKeys(), nil
	}
	return it, errors.Errorf("lazyfn: unknown plan step %q", s.Op)
}

// isPair accepts the pair forms fromPairs understands: a Pair, or a
// two-element list as decoded from a document.
func isPair(v any, _ any) bool {
	switch p := v.(type) {
	case types.Pair[any, any]:
		return true
	case []any:
		return len(p) == 2
	}
	return false
}

func asPair(v any, _ any) types.Pair[any, any] {
	if p, ok := v.([]any); ok {
		return types.Pair[any, any]{Left: p[0], Right: p[1]}
	}
	return v.(types.Pair[any, any])
}
