// Package check judges whether runtime values, and whole recorded calls, conform to
// structural types and method signatures
package check

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cottand/sigtest/call"
	"github.com/cottand/sigtest/definition"
	"github.com/cottand/sigtest/internal/log"
	"github.com/cottand/sigtest/sample"
	"github.com/cottand/sigtest/sigerr"
	"github.com/cottand/sigtest/types"
)

// DoubleMode is how stand-in objects (see value.Double) are treated
type DoubleMode string

const (
	// DoubleStrict matches doubles like any other value
	DoubleStrict DoubleMode = "strict"
	// DoubleLax accepts doubles, logging a warning
	DoubleLax DoubleMode = "lax"
	// DoubleNone accepts doubles silently
	DoubleNone DoubleMode = "none"
)

func ParseDoubleMode(s string) (DoubleMode, error) {
	switch mode := DoubleMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return DoubleNone, nil
	case DoubleStrict, DoubleLax, DoubleNone:
		return mode, nil
	default:
		return "", fmt.Errorf("double mode should be one of strict, lax or none: `%s`", s)
	}
}

// DefaultMaxDepth is how many types may be nested while matching a single value
const DefaultMaxDepth = 100

// Receiver is the class whose method is being checked
type Receiver struct {
	Class string
	// Singleton is set for class methods, whose receiver is the class object itself
	Singleton bool
}

// MethodName is how the method is referred to in diagnostics, like Foo#bar or Foo.bar
func (r Receiver) MethodName(name string) string {
	if r.Singleton {
		return r.Class + "." + name
	}
	return r.Class + "#" + name
}

type Config struct {
	Self     Receiver
	Defs     definition.Provider
	Sampling sample.Policy
	Doubles  DoubleMode
	// MaxDepth defaults to DefaultMaxDepth
	MaxDepth int
	Logger   *slog.Logger
}

// Checker holds no mutable state, and may be used concurrently as long as its
// definition.Provider and sample.Policy may
type Checker struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config) *Checker {
	if cfg.Defs == nil {
		cfg.Defs = definition.Core()
	}
	if cfg.Doubles == "" {
		cfg.Doubles = DoubleNone
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &Checker{
		cfg:    cfg,
		logger: logger.With("section", "check"),
	}
}

func (c *Checker) Config() Config {
	return c.cfg
}

// CheckValue reports whether v conforms to t
func CheckValue(v any, t types.Type, cfg Config) bool {
	return New(cfg).Value(v, t)
}

// CheckCall validates a recorded call against the overloads of its method.
// The returned Errors is empty when the call conforms.
func CheckCall(trace call.Trace, overloads []types.MethodType, cfg Config) *sigerr.Errors {
	return New(cfg).Call(trace, overloads)
}

// Call validates trace against the overloads of the receiver's method
func (c *Checker) Call(trace call.Trace, overloads []types.MethodType) *sigerr.Errors {
	return c.OverloadedCall(c.cfg.Self.MethodName(trace.MethodName), overloads, trace)
}

func slogType(t types.Type) slog.LogValuer { return typeLogValuer{t} }

type typeLogValuer struct{ types.Type }

func (l typeLogValuer) LogValue() slog.Value { return slog.StringValue(types.TypeString(l.Type)) }
