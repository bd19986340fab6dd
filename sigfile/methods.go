package sigfile

import (
	"github.com/cottand/sigtest/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type rawFunction struct {
	Params           yaml.Node `yaml:"params"`
	Optional         yaml.Node `yaml:"optional"`
	Rest             yaml.Node `yaml:"rest"`
	Trailing         yaml.Node `yaml:"trailing"`
	Keywords         yaml.Node `yaml:"keywords"`
	OptionalKeywords yaml.Node `yaml:"optional_keywords"`
	RestKeywords     yaml.Node `yaml:"rest_keywords"`
	Returns          yaml.Node `yaml:"returns"`
}

type rawBlock struct {
	rawFunction `yaml:",inline"`
	Required    bool `yaml:"required"`
}

type rawMethodType struct {
	rawFunction `yaml:",inline"`
	TypeParams  []string  `yaml:"type_params"`
	Block       *rawBlock `yaml:"block"`
}

// decodeMethods reads a mapping of method names to their overloads. A method with a
// single overload may give it directly instead of in a list.
func (s scope) decodeMethods(node *yaml.Node) (map[string][]types.MethodType, error) {
	if node == nil {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nodeErr(node, "expected a mapping of method names to method types")
	}
	methods := make(map[string][]types.MethodType, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		name, overloads := node.Content[i].Value, node.Content[i+1]
		if overloads.Kind != yaml.SequenceNode {
			overloads = &yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{overloads}, Line: overloads.Line}
		}
		for _, o := range overloads.Content {
			mt, err := s.decodeMethodType(o)
			if err != nil {
				return nil, errors.Wrapf(err, "method %s", name)
			}
			methods[name] = append(methods[name], mt)
		}
	}
	return methods, nil
}

func (s scope) decodeMethodType(node *yaml.Node) (types.MethodType, error) {
	var raw rawMethodType
	if err := node.Decode(&raw); err != nil {
		return types.MethodType{}, err
	}
	s = s.with(raw.TypeParams)
	fn, err := s.decodeFunction(&raw.rawFunction)
	if err != nil {
		return types.MethodType{}, err
	}
	mt := types.MethodType{TypeParams: raw.TypeParams, Function: fn}
	if raw.Block != nil {
		blockFn, err := s.decodeFunction(&raw.Block.rawFunction)
		if err != nil {
			return types.MethodType{}, errors.Wrap(err, "block")
		}
		mt.Block = &types.Block{Required: raw.Block.Required, Type: blockFn}
	}
	return mt, nil
}

func (s scope) decodeParam(node *yaml.Node) (types.Param, error) {
	if node.Kind == yaml.MappingNode {
		var named struct {
			Type yaml.Node `yaml:"type"`
			Name string    `yaml:"name"`
		}
		if err := node.Decode(&named); err == nil && present(&named.Type) != nil {
			t, err := s.decodeType(&named.Type)
			return types.Param{Type: t, Name: named.Name}, err
		}
	}
	t, err := s.decodeType(node)
	return types.P(t), err
}

func (s scope) decodeParams(node *yaml.Node) ([]types.Param, error) {
	if node == nil {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, nodeErr(node, "expected a list of parameters")
	}
	params := make([]types.Param, 0, len(node.Content))
	for _, elem := range node.Content {
		p, err := s.decodeParam(elem)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func (s scope) decodeRestParam(node *yaml.Node) (*types.Param, error) {
	if node == nil {
		return nil, nil
	}
	p, err := s.decodeParam(node)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s scope) decodeFunction(raw *rawFunction) (fn types.Function, err error) {
	if fn.RequiredPositionals, err = s.decodeParams(present(&raw.Params)); err != nil {
		return fn, errors.Wrap(err, "params")
	}
	if fn.OptionalPositionals, err = s.decodeParams(present(&raw.Optional)); err != nil {
		return fn, errors.Wrap(err, "optional")
	}
	if fn.RestPositionals, err = s.decodeRestParam(present(&raw.Rest)); err != nil {
		return fn, errors.Wrap(err, "rest")
	}
	if fn.TrailingPositionals, err = s.decodeParams(present(&raw.Trailing)); err != nil {
		return fn, errors.Wrap(err, "trailing")
	}
	required, err := s.decodeFields(present(&raw.Keywords))
	if err != nil {
		return fn, errors.Wrap(err, "keywords")
	}
	optional, err := s.decodeFields(present(&raw.OptionalKeywords))
	if err != nil {
		return fn, errors.Wrap(err, "optional_keywords")
	}
	fn.RequiredKeywords = types.FieldsOf(required)
	fn.OptionalKeywords = types.FieldsOf(optional)
	if fn.RestKeywords, err = s.decodeRestParam(present(&raw.RestKeywords)); err != nil {
		return fn, errors.Wrap(err, "rest_keywords")
	}
	if n := present(&raw.Returns); n != nil {
		if fn.Return, err = s.decodeType(n); err != nil {
			return fn, errors.Wrap(err, "returns")
		}
	}
	return fn, nil
}
