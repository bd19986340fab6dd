// Package sigerr is the taxonomy of diagnostics produced when checking calls against signatures
package sigerr

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cottand/sigtest/types"
	"github.com/cottand/sigtest/value"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None  ErrCode = iota
	Arity ErrCode = iota
	ArgumentType
	ReturnType
	BlockArity
	BlockArgumentType
	BlockReturnType
	MissingBlock
	UnexpectedBlock
	UnresolvedOverloading
	RecursionLimit
	InvalidSampleSize
)

func (c ErrCode) String() string {
	switch c {
	case Arity:
		return "ArityError"
	case ArgumentType:
		return "ArgumentTypeError"
	case ReturnType:
		return "ReturnTypeError"
	case BlockArity:
		return "BlockArityError"
	case BlockArgumentType:
		return "BlockArgumentTypeError"
	case BlockReturnType:
		return "BlockReturnTypeError"
	case MissingBlock:
		return "MissingBlockError"
	case UnexpectedBlock:
		return "UnexpectedBlockError"
	case UnresolvedOverloading:
		return "UnresolvedOverloadingError"
	case RecursionLimit:
		return "RecursionLimitExceeded"
	case InvalidSampleSize:
		return "InvalidSampleSize"
	default:
		return "UnclassifiedError"
	}
}

type CheckError interface {
	Error() string
	Code() ErrCode

	withStack([]byte) CheckError
	getStack() []byte
}

func FormatWithCode(e CheckError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E CheckError](err E) CheckError {
	if !enableDebugErrorPrinting {
		return err
	}
	return err.withStack(debug.Stack())
}

func prefix(method string, code ErrCode) string {
	return fmt.Sprintf("[%s] %v: ", method, code)
}

// NewArity is a wrong count of positional arguments, a missing required keyword
// or an unexpected keyword
type NewArity struct {
	Method     string
	MethodType types.MethodType
	InBlock    bool
	// Detail says which part of the call did not fit, if known
	Detail string
	stack  []byte
}

func (e NewArity) Code() ErrCode {
	if e.InBlock {
		return BlockArity
	}
	return Arity
}
func (e NewArity) Error() string {
	msg := prefix(e.Method, e.Code()) + "expected method type " + e.MethodType.String()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}
func (e NewArity) getStack() []byte { return e.stack }
func (e NewArity) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// NewArgumentType is an argument whose value does not conform to its parameter
type NewArgumentType struct {
	Method     string
	MethodType types.MethodType
	InBlock    bool
	// Position is "#i" for positionals and the keyword name otherwise
	Position string
	Param    types.Param
	Value    any
	stack    []byte
}

func (e NewArgumentType) Code() ErrCode {
	if e.InBlock {
		return BlockArgumentType
	}
	return ArgumentType
}
func (e NewArgumentType) Error() string {
	return prefix(e.Method, e.Code()) + fmt.Sprintf("expected `%s` (%s) but given `%s`", e.Param, e.Position, value.Inspect(e.Value))
}
func (e NewArgumentType) getStack() []byte { return e.stack }
func (e NewArgumentType) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// NewReturnType is a returned value which does not conform to the declared return type,
// including any value returned where none was expected
type NewReturnType struct {
	Method     string
	MethodType types.MethodType
	InBlock    bool
	Type       types.Type
	Value      any
	stack      []byte
}

func (e NewReturnType) Code() ErrCode {
	if e.InBlock {
		return BlockReturnType
	}
	return ReturnType
}
func (e NewReturnType) Error() string {
	return prefix(e.Method, e.Code()) + fmt.Sprintf("expected `%s` but returns `%s`", e.Type, value.Inspect(e.Value))
}
func (e NewReturnType) getStack() []byte { return e.stack }
func (e NewReturnType) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

type NewMissingBlock struct {
	Method     string
	MethodType types.MethodType
	stack      []byte
}

func (e NewMissingBlock) Code() ErrCode { return MissingBlock }
func (e NewMissingBlock) Error() string {
	return prefix(e.Method, e.Code()) + fmt.Sprintf("required block is missing for `%s`", e.MethodType)
}
func (e NewMissingBlock) getStack() []byte { return e.stack }
func (e NewMissingBlock) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

type NewUnexpectedBlock struct {
	Method     string
	MethodType types.MethodType
	stack      []byte
}

func (e NewUnexpectedBlock) Code() ErrCode { return UnexpectedBlock }
func (e NewUnexpectedBlock) Error() string {
	return prefix(e.Method, e.Code()) + fmt.Sprintf("unexpected block is given for `%s`", e.MethodType)
}
func (e NewUnexpectedBlock) getStack() []byte { return e.stack }
func (e NewUnexpectedBlock) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// NewUnresolvedOverloading means the arguments of a call fit none of the overloads of a method
type NewUnresolvedOverloading struct {
	Method      string
	MethodTypes []types.MethodType
	stack       []byte
}

func (e NewUnresolvedOverloading) Code() ErrCode { return UnresolvedOverloading }
func (e NewUnresolvedOverloading) Error() string {
	return prefix(e.Method, e.Code()) + fmt.Sprintf("couldn't find a suitable overloading among `%s`", types.ShowOverloads(e.MethodTypes))
}
func (e NewUnresolvedOverloading) getStack() []byte { return e.stack }
func (e NewUnresolvedOverloading) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// NewRecursionLimit means matching a value went through more nested types than allowed,
// usually because of a self-referencing alias
type NewRecursionLimit struct {
	Method string
	Type   types.Type
	Depth  int
	stack  []byte
}

func (e NewRecursionLimit) Code() ErrCode { return RecursionLimit }
func (e NewRecursionLimit) Error() string {
	msg := fmt.Sprintf("%v: gave up matching `%s` after %d nested types", e.Code(), e.Type, e.Depth)
	if e.Method != "" {
		return fmt.Sprintf("[%s] %s", e.Method, msg)
	}
	return msg
}
func (e NewRecursionLimit) getStack() []byte { return e.stack }
func (e NewRecursionLimit) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}

// NewInvalidSampleSize is a sample size setting which is neither "ALL" nor a positive integer
type NewInvalidSampleSize struct {
	Input string
	stack []byte
}

func (e NewInvalidSampleSize) Code() ErrCode { return InvalidSampleSize }
func (e NewInvalidSampleSize) Error() string {
	return fmt.Sprintf("sample size should be a positive integer: `%s`", e.Input)
}
func (e NewInvalidSampleSize) getStack() []byte { return e.stack }
func (e NewInvalidSampleSize) withStack(stack []byte) CheckError {
	e.stack = stack
	return e
}
