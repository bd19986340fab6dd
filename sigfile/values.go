package sigfile

import (
	"math"
	"strings"

	"github.com/cottand/sigtest/value"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Tags for runtime values YAML has no notation for
const (
	TagSymbol = "!sym"
	TagClass  = "!class"
	TagModule = "!module"
	TagObject = "!obj"
	TagDouble = "!double"
	TagRange  = "!range"
)

// decodeValue reads a runtime value. Sequences are arrays, mappings are hashes
// keeping their key order, and tagged nodes are the values of the Tag constants.
func decodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeValue(node.Alias)
	case yaml.SequenceNode:
		if node.Tag == TagRange {
			return decodeRange(node)
		}
		elems := make([]any, 0, len(node.Content))
		for _, n := range node.Content {
			v, err := decodeValue(n)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return elems, nil
	case yaml.MappingNode:
		switch node.Tag {
		case TagObject:
			return decodeObject(node)
		case TagRange:
			return decodeRange(node)
		}
		h := value.NewHash()
		for i := 0; i < len(node.Content); i += 2 {
			k, err := decodeValue(node.Content[i])
			if err != nil {
				return nil, err
			}
			v, err := decodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			if !hashable(k) {
				return nil, nodeErr(node.Content[i], "hash keys must be scalars")
			}
			h.Set(k, v)
		}
		return h, nil
	case yaml.ScalarNode:
		return decodeScalar(node)
	default:
		return nil, nodeErr(node, "expected a value")
	}
}

func hashable(v any) bool {
	switch v.(type) {
	case []any, *value.Hash, *value.Object:
		return false
	default:
		return true
	}
}

func decodeScalar(node *yaml.Node) (any, error) {
	switch node.Tag {
	case TagSymbol:
		return value.Symbol(strings.TrimPrefix(node.Value, ":")), nil
	case TagClass:
		return value.Module{Name: node.Value}, nil
	case TagModule:
		return value.Module{Name: node.Value, IsModule: true}, nil
	case TagDouble:
		return value.Double{Name: node.Value}, nil
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		err := node.Decode(&b)
		return b, err
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return nil, err
		}
		if i >= math.MinInt && i <= math.MaxInt {
			return int(i), nil
		}
		return i, nil
	case "!!float":
		var f float64
		err := node.Decode(&f)
		return f, err
	case "!!str", "!!binary", "!!timestamp":
		return node.Value, nil
	default:
		return nil, nodeErr(node, "unknown tag %s", node.Tag)
	}
}

func decodeObject(node *yaml.Node) (any, error) {
	var raw struct {
		Class string               `yaml:"class"`
		Ivars map[string]yaml.Node `yaml:"ivars"`
	}
	if err := node.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "object")
	}
	if raw.Class == "" {
		return nil, nodeErr(node, "object needs a class")
	}
	obj := &value.Object{Class: raw.Class}
	if len(raw.Ivars) > 0 {
		obj.Ivars = make(map[string]any, len(raw.Ivars))
	}
	for name, n := range raw.Ivars {
		v, err := decodeValue(&n)
		if err != nil {
			return nil, errors.Wrapf(err, "ivar %s", name)
		}
		obj.Ivars[name] = v
	}
	return obj, nil
}

// decodeRange reads either `!range [begin, end]` or a mapping with begin, end and exclusive
func decodeRange(node *yaml.Node) (any, error) {
	var r value.Range
	var begin, end *yaml.Node
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return nil, nodeErr(node, "a range needs a beginning and an end")
		}
		begin, end = node.Content[0], node.Content[1]
	default:
		var raw struct {
			Begin     yaml.Node `yaml:"begin"`
			End       yaml.Node `yaml:"end"`
			Exclusive bool      `yaml:"exclusive"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, errors.Wrap(err, "range")
		}
		begin, end, r.Exclusive = present(&raw.Begin), present(&raw.End), raw.Exclusive
	}
	var err error
	if begin != nil {
		if r.Begin, err = decodeValue(begin); err != nil {
			return nil, err
		}
	}
	if end != nil {
		if r.End, err = decodeValue(end); err != nil {
			return nil, err
		}
	}
	return r, nil
}
