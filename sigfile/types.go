package sigfile

import (
	"strings"
	"unicode"

	"github.com/cottand/sigtest/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// scope holds the type parameters in effect while decoding a method type
type scope struct {
	vars []string
}

func (s scope) with(vars []string) scope {
	return scope{vars: append(append([]string(nil), s.vars...), vars...)}
}

func (s scope) isVar(name string) bool {
	for _, v := range s.vars {
		if v == name {
			return true
		}
	}
	return false
}

func nodeErr(node *yaml.Node, format string, args ...any) error {
	return errors.Errorf("line %d: "+format, append([]any{node.Line}, args...)...)
}

// decodeType reads a type node. Scalars are shorthands: a class name, an alias or
// interface name, a keyword like `untyped`, and `T?` or `A | B` of those.
// Mappings hold exactly one key naming the kind of type.
func (s scope) decodeType(node *yaml.Node) (types.Type, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return types.Nil, nil
		}
		return s.parseShorthand(node, node.Value)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return nil, nodeErr(node, "a type mapping must have exactly one key, got %d", len(node.Content)/2)
		}
		return s.decodeCompound(node.Content[0].Value, node.Content[1])
	case yaml.AliasNode:
		return s.decodeType(node.Alias)
	default:
		return nil, nodeErr(node, "expected a type")
	}
}

func (s scope) parseShorthand(node *yaml.Node, raw string) (types.Type, error) {
	raw = strings.TrimSpace(raw)
	if parts := strings.Split(raw, "|"); len(parts) > 1 {
		members := make([]types.Type, 0, len(parts))
		for _, part := range parts {
			t, err := s.parseShorthand(node, part)
			if err != nil {
				return nil, err
			}
			members = append(members, t)
		}
		return types.Union(members...), nil
	}
	if inner, ok := strings.CutSuffix(raw, "?"); ok && inner != "" {
		t, err := s.parseShorthand(node, inner)
		if err != nil {
			return nil, err
		}
		return types.Optional(t), nil
	}
	switch raw {
	case "":
		return nil, nodeErr(node, "empty type")
	case "untyped", "top":
		return types.Untyped, nil
	case "bot":
		return types.Bottom, nil
	case "self":
		return types.Self, nil
	case "bool", "boolish":
		return types.Bool, nil
	case "nil":
		return types.Nil, nil
	case "void":
		return types.Void, nil
	case "class":
		return types.Class, nil
	}
	if s.isVar(raw) {
		return types.Var(raw), nil
	}
	name := strings.TrimPrefix(raw, "::")
	last := name[strings.LastIndex(name, ":")+1:]
	if last == "" {
		return nil, nodeErr(node, "invalid type name `%s`", raw)
	}
	if first := rune(last[0]); first == '_' || unicode.IsLower(first) {
		return types.Alias(name), nil
	}
	return types.Nominal(name), nil
}

func (s scope) decodeTypes(node *yaml.Node) ([]types.Type, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, nodeErr(node, "expected a list of types")
	}
	ts := make([]types.Type, 0, len(node.Content))
	for _, elem := range node.Content {
		t, err := s.decodeType(elem)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

func (s scope) decodeArgs(kind string, node *yaml.Node, arity int) ([]types.Type, error) {
	if node.Kind != yaml.SequenceNode {
		t, err := s.decodeType(node)
		if err != nil {
			return nil, err
		}
		return []types.Type{t}, nil
	}
	args, err := s.decodeTypes(node)
	if err != nil {
		return nil, err
	}
	if len(args) > arity {
		return nil, nodeErr(node, "%s takes at most %d type arguments, got %d", kind, arity, len(args))
	}
	return args, nil
}

func (s scope) decodeFields(node *yaml.Node) (map[string]types.Type, error) {
	if node == nil {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nodeErr(node, "expected a mapping of names to types")
	}
	fields := make(map[string]types.Type, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		t, err := s.decodeType(node.Content[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", node.Content[i].Value)
		}
		fields[node.Content[i].Value] = t
	}
	return fields, nil
}

func (s scope) decodeCompound(kind string, node *yaml.Node) (types.Type, error) {
	switch kind {
	case "union", "tuple":
		members, err := s.decodeTypes(node)
		if err != nil {
			return nil, err
		}
		if kind == "tuple" {
			return types.Tuple(members...), nil
		}
		return types.Union(members...), nil
	case "optional":
		inner, err := s.decodeType(node)
		if err != nil {
			return nil, err
		}
		return types.Optional(inner), nil
	case "array", "hash", "enumerator", "range":
		container := map[string]types.ContainerKind{
			"array":      types.ArrayKind,
			"hash":       types.HashKind,
			"enumerator": types.EnumeratorKind,
			"range":      types.RangeKind,
		}[kind]
		args, err := s.decodeArgs(kind, node, container.Arity())
		if err != nil {
			return nil, err
		}
		return &types.GenericType{Kind: container, Args: args}, nil
	case "record":
		var raw struct {
			Required yaml.Node `yaml:"required"`
			Optional yaml.Node `yaml:"optional"`
			Rest     yaml.Node `yaml:"rest"`
		}
		if err := node.Decode(&raw); err != nil {
			return nil, errors.Wrap(err, "record")
		}
		required, err := s.decodeFields(present(&raw.Required))
		if err != nil {
			return nil, err
		}
		optional, err := s.decodeFields(present(&raw.Optional))
		if err != nil {
			return nil, err
		}
		var rest types.Type
		if n := present(&raw.Rest); n != nil {
			if rest, err = s.decodeType(n); err != nil {
				return nil, err
			}
		}
		return types.Record(required, optional, rest), nil
	case "literal":
		v, err := decodeValue(node)
		if err != nil {
			return nil, err
		}
		return types.Literal(v), nil
	case "singleton", "nominal", "alias", "var":
		if node.Kind != yaml.ScalarNode || node.Value == "" {
			return nil, nodeErr(node, "%s expects a name", kind)
		}
		switch kind {
		case "singleton":
			return types.Singleton(node.Value), nil
		case "nominal":
			return types.Nominal(node.Value), nil
		case "alias":
			return types.Alias(node.Value), nil
		default:
			return types.Var(node.Value), nil
		}
	case "interface":
		methods, err := s.decodeMethods(node)
		if err != nil {
			return nil, errors.Wrap(err, "interface")
		}
		return types.Interface("", methods), nil
	default:
		return nil, nodeErr(node, "unknown kind of type `%s`", kind)
	}
}

// present returns nil for fields missing from the document
func present(node *yaml.Node) *yaml.Node {
	if node.Kind == 0 {
		return nil
	}
	return node
}
