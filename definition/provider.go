// Package definition supplies what the checker knows about classes: their ancestry,
// the methods their instances respond to, and named types
package definition

import (
	"strings"

	"github.com/cottand/sigtest/types"
)

// Provider answers questions about classes by name.
// Implementations must be read-only once checking starts.
type Provider interface {
	// AncestorsOf returns name followed by its ancestors, nearest first.
	// A name the Provider does not know is its own only ancestor.
	AncestorsOf(name string) []string
	// MembersOf returns the methods instances of name respond to, inherited ones included
	MembersOf(name string) types.Fields[[]types.MethodType]
}

// AliasProvider is implemented by Providers which also know named types
type AliasProvider interface {
	Alias(name string) (types.Type, bool)
}

// SingletonName is how the class object of name (rather than its instances) is
// addressed in a Provider
func SingletonName(name string) string {
	return "singleton(" + name + ")"
}

// SingletonOf returns the class name addressed by a SingletonName
func SingletonOf(name string) (string, bool) {
	inner, ok := strings.CutPrefix(name, "singleton(")
	if !ok {
		return "", false
	}
	return strings.CutSuffix(inner, ")")
}
