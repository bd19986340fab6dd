// Package sigfile reads class definitions and recorded calls from YAML documents
package sigfile

import (
	"io"
	"os"

	"github.com/cottand/sigtest/definition"
	"github.com/cottand/sigtest/internal/log"
	"github.com/cottand/sigtest/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var logger = log.DefaultLogger.With("section", "sigfile")

type rawClass struct {
	Name             string    `yaml:"name"`
	Module           bool      `yaml:"module"`
	Super            string    `yaml:"super"`
	Include          []string  `yaml:"include"`
	Methods          yaml.Node `yaml:"methods"`
	SingletonMethods yaml.Node `yaml:"singleton_methods"`
}

type rawDefinitions struct {
	Classes    []rawClass `yaml:"classes"`
	Aliases    yaml.Node  `yaml:"aliases"`
	Interfaces yaml.Node  `yaml:"interfaces"`
}

// LoadDefinitions reads definitions from a file, on top of definition.Core
func LoadDefinitions(path string) (*definition.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open definitions")
	}
	defer f.Close()
	reg, err := DecodeDefinitions(f, definition.Core())
	return reg, errors.Wrapf(err, "in %s", path)
}

// DecodeDefinitions adds the classes, aliases and interfaces declared in r to reg,
// or to a new empty Registry if reg is nil
func DecodeDefinitions(r io.Reader, reg *definition.Registry) (*definition.Registry, error) {
	if reg == nil {
		reg = definition.NewRegistry()
	}
	var raw rawDefinitions
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to parse definitions")
	}
	var s scope

	for _, c := range raw.Classes {
		if c.Name == "" {
			return nil, errors.New("class without a name")
		}
		methods, err := s.decodeMethods(present(&c.Methods))
		if err != nil {
			return nil, errors.Wrapf(err, "class %s", c.Name)
		}
		singletonMethods, err := s.decodeMethods(present(&c.SingletonMethods))
		if err != nil {
			return nil, errors.Wrapf(err, "class %s", c.Name)
		}
		super := c.Super
		if _, reopened := reg.Class(c.Name); super == "" && !reopened && !c.Module && c.Name != "BasicObject" {
			super = "Object"
		}
		reg.AddClass(definition.ClassDecl{
			Name:             c.Name,
			IsModule:         c.Module,
			Super:            super,
			Includes:         c.Include,
			Methods:          methods,
			SingletonMethods: singletonMethods,
		})
		logger.Debug("declared class", "name", c.Name, "methods", len(methods), "singleton_methods", len(singletonMethods))
	}

	if aliases := present(&raw.Aliases); aliases != nil {
		fields, err := s.decodeFields(aliases)
		if err != nil {
			return nil, errors.Wrap(err, "aliases")
		}
		for name, t := range fields {
			reg.AddAlias(name, t)
		}
	}

	if ifaces := present(&raw.Interfaces); ifaces != nil {
		if ifaces.Kind != yaml.MappingNode {
			return nil, nodeErr(ifaces, "interfaces must be a mapping of names to methods")
		}
		for i := 0; i < len(ifaces.Content); i += 2 {
			name := ifaces.Content[i].Value
			methods, err := s.decodeMethods(ifaces.Content[i+1])
			if err != nil {
				return nil, errors.Wrapf(err, "interface %s", name)
			}
			reg.AddInterface(types.Interface(name, methods))
		}
	}
	return reg, nil
}
