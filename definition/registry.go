package definition

import (
	"slices"

	"github.com/cottand/sigtest/internal/log"
	"github.com/cottand/sigtest/types"
	"github.com/cottand/sigtest/util"
	"github.com/hashicorp/go-set/v3"
)

var registryLogger = log.DefaultLogger.With("section", "definition")

// ClassDecl declares a class or module
type ClassDecl struct {
	Name     string
	IsModule bool
	// Super is the superclass, and is empty for modules and root classes
	Super string
	// Includes are the modules mixed into the class, in inclusion order
	Includes         []string
	Methods          map[string][]types.MethodType
	SingletonMethods map[string][]types.MethodType
}

var (
	_ Provider      = (*Registry)(nil)
	_ AliasProvider = (*Registry)(nil)
)

// Registry is an in-memory Provider. It must not be modified once handed to a checker.
type Registry struct {
	classes map[string]*ClassDecl
	aliases map[string]types.Type
}

func NewRegistry() *Registry {
	return &Registry{
		classes: make(map[string]*ClassDecl),
		aliases: make(map[string]types.Type),
	}
}

// AddClass declares a class, merging methods into a previous declaration of the same name
func (r *Registry) AddClass(decl ClassDecl) *Registry {
	prev, ok := r.classes[decl.Name]
	if !ok {
		decl.Methods = cloneMethods(decl.Methods)
		decl.SingletonMethods = cloneMethods(decl.SingletonMethods)
		r.classes[decl.Name] = &decl
		return r
	}
	registryLogger.Debug("reopening class", "name", decl.Name)
	if decl.Super != "" {
		prev.Super = decl.Super
	}
	for _, inc := range decl.Includes {
		if !slices.Contains(prev.Includes, inc) {
			prev.Includes = append(prev.Includes, inc)
		}
	}
	for name, mts := range decl.Methods {
		prev.Methods[name] = mts
	}
	for name, mts := range decl.SingletonMethods {
		prev.SingletonMethods[name] = mts
	}
	return r
}

// AddAlias names a type
func (r *Registry) AddAlias(name string, t types.Type) *Registry {
	r.aliases[name] = t
	return r
}

// AddInterface names an interface by its own name
func (r *Registry) AddInterface(t *types.InterfaceType) *Registry {
	return r.AddAlias(t.Name, t)
}

func (r *Registry) Class(name string) (*ClassDecl, bool) {
	decl, ok := r.classes[name]
	return decl, ok
}

func (r *Registry) Alias(name string) (types.Type, bool) {
	t, ok := r.aliases[name]
	return t, ok
}

func (r *Registry) AncestorsOf(name string) []string {
	if class, ok := SingletonOf(name); ok {
		return r.singletonAncestors(class)
	}
	var ancestors []string
	r.appendAncestors(name, set.New[string](8), &ancestors)
	return ancestors
}

func (r *Registry) appendAncestors(name string, visited *set.Set[string], into *[]string) {
	if !visited.Insert(name) {
		return
	}
	*into = append(*into, name)
	decl, ok := r.classes[name]
	if !ok {
		return
	}
	// modules included last are looked up first
	for inc := range util.Reverse(decl.Includes) {
		r.appendAncestors(inc, visited, into)
	}
	if decl.Super != "" {
		r.appendAncestors(decl.Super, visited, into)
	}
}

// singletonAncestors follows the superclass chain of singleton classes and then
// the ancestors of Class (or Module, for modules)
func (r *Registry) singletonAncestors(class string) []string {
	visited := set.New[string](8)
	var ancestors []string
	isModule := false
	for name := class; name != ""; {
		if !visited.Insert(name) {
			break
		}
		ancestors = append(ancestors, SingletonName(name))
		decl, ok := r.classes[name]
		if !ok {
			break
		}
		isModule = isModule || decl.IsModule
		name = decl.Super
	}
	meta := "Class"
	if isModule {
		meta = "Module"
	}
	r.appendAncestors(meta, set.New[string](8), &ancestors)
	return ancestors
}

func (r *Registry) MembersOf(name string) types.Fields[[]types.MethodType] {
	ancestors := r.AncestorsOf(name)
	members := make(map[string][]types.MethodType)
	// nearest ancestors override further ones
	for i := len(ancestors) - 1; i >= 0; i-- {
		var methods map[string][]types.MethodType
		if class, ok := SingletonOf(ancestors[i]); ok {
			if decl, ok := r.classes[class]; ok {
				methods = decl.SingletonMethods
			}
		} else if decl, ok := r.classes[ancestors[i]]; ok {
			methods = decl.Methods
		}
		for m, mts := range methods {
			members[m] = mts
		}
	}
	return types.FieldsOf(members)
}

func cloneMethods(methods map[string][]types.MethodType) map[string][]types.MethodType {
	cloned := make(map[string][]types.MethodType, len(methods))
	for name, mts := range methods {
		cloned[name] = mts
	}
	return cloned
}
