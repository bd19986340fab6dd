package sigfile

import (
	"io"
	"os"

	"github.com/cottand/sigtest/call"
	"github.com/cottand/sigtest/check"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Call is a recorded call along with the receiver it was made on
type Call struct {
	Receiver check.Receiver
	Trace    call.Trace
	// Line is where the call is declared
	Line int
}

type rawInvocation struct {
	Args     yaml.Node `yaml:"args"`
	Keywords yaml.Node `yaml:"keywords"`
	Returns  yaml.Node `yaml:"returns"`
	Raises   *string   `yaml:"raises"`
	Breaks   bool      `yaml:"breaks"`
}

type rawCall struct {
	rawInvocation `yaml:",inline"`
	Receiver      string          `yaml:"receiver"`
	Singleton     bool            `yaml:"singleton"`
	Method        string          `yaml:"method"`
	BlockGiven    bool            `yaml:"block_given"`
	Blocks        []rawInvocation `yaml:"blocks"`
}

// raisedError is the exception a recorded call raised
type raisedError string

func (e raisedError) Error() string { return string(e) }

func LoadCalls(path string) ([]Call, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open calls")
	}
	defer f.Close()
	calls, err := DecodeCalls(f)
	return calls, errors.Wrapf(err, "in %s", path)
}

// DecodeCalls reads a document holding a `calls` list
func DecodeCalls(r io.Reader) ([]Call, error) {
	var raw struct {
		Calls []yaml.Node `yaml:"calls"`
	}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "failed to parse calls")
	}
	calls := make([]Call, 0, len(raw.Calls))
	for i := range raw.Calls {
		node := &raw.Calls[i]
		c, err := decodeCall(node)
		if err != nil {
			return nil, errors.Wrapf(err, "call #%d", i)
		}
		calls = append(calls, c)
	}
	return calls, nil
}

func decodeCall(node *yaml.Node) (Call, error) {
	var raw rawCall
	if err := node.Decode(&raw); err != nil {
		return Call{}, err
	}
	if raw.Receiver == "" || raw.Method == "" {
		return Call{}, nodeErr(node, "a call needs a receiver and a method")
	}
	inv, err := decodeInvocation(&raw.rawInvocation)
	if err != nil {
		return Call{}, err
	}
	trace := call.Trace{
		MethodName: raw.Method,
		Call:       inv,
		BlockGiven: raw.BlockGiven || len(raw.Blocks) > 0,
	}
	for i := range raw.Blocks {
		block, err := decodeInvocation(&raw.Blocks[i])
		if err != nil {
			return Call{}, errors.Wrapf(err, "block call #%d", i)
		}
		trace.Blocks = append(trace.Blocks, block)
	}
	return Call{
		Receiver: check.Receiver{Class: raw.Receiver, Singleton: raw.Singleton},
		Trace:    trace,
		Line:     node.Line,
	}, nil
}

func decodeInvocation(raw *rawInvocation) (call.Invocation, error) {
	var args call.Arguments
	if n := present(&raw.Args); n != nil {
		if n.Kind != yaml.SequenceNode {
			return call.Invocation{}, nodeErr(n, "args must be a list")
		}
		v, err := decodeValue(n)
		if err != nil {
			return call.Invocation{}, errors.Wrap(err, "args")
		}
		elems, ok := v.([]any)
		if !ok {
			return call.Invocation{}, nodeErr(n, "args must be a list")
		}
		args.Positional = elems
	}
	if n := present(&raw.Keywords); n != nil {
		if n.Kind != yaml.MappingNode {
			return call.Invocation{}, nodeErr(n, "keywords must be a mapping")
		}
		args.Keywords = make(map[string]any, len(n.Content)/2)
		for i := 0; i < len(n.Content); i += 2 {
			v, err := decodeValue(n.Content[i+1])
			if err != nil {
				return call.Invocation{}, errors.Wrapf(err, "keyword %s", n.Content[i].Value)
			}
			args.Keywords[n.Content[i].Value] = v
		}
	}

	switch {
	case raw.Raises != nil:
		return call.Raise(args, raisedError(*raw.Raises)), nil
	case raw.Breaks:
		return call.Break(args), nil
	}
	var ret any
	if n := present(&raw.Returns); n != nil {
		v, err := decodeValue(n)
		if err != nil {
			return call.Invocation{}, errors.Wrap(err, "returns")
		}
		ret = v
	}
	return call.Return(args, ret), nil
}
