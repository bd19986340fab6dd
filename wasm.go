//go:build js && wasm

package main

import (
	"strings"
	"syscall/js"

	"github.com/cottand/sigtest/cmd"
	"github.com/cottand/sigtest/definition"
	"github.com/cottand/sigtest/internal/config"
	"github.com/cottand/sigtest/sigfile"
)

// checkCalls takes a definitions document and a calls document, and returns the report
func checkCalls(_ js.Value, args []js.Value) any {
	if len(args) != 2 {
		return "expected a definitions document and a calls document"
	}
	cfg, err := config.Load(config.NewViper())
	if err != nil {
		return err.Error()
	}
	defs, err := sigfile.DecodeDefinitions(strings.NewReader(args[0].String()), definition.Core())
	if err != nil {
		return err.Error()
	}
	calls, err := sigfile.DecodeCalls(strings.NewReader(args[1].String()))
	if err != nil {
		return err.Error()
	}
	sb := &strings.Builder{}
	if _, err := cmd.CheckCalls(sb, defs, calls, cfg, nil); err != nil {
		return err.Error()
	}
	return sb.String()
}

func main() {
	js.Global().Set("CheckCalls", js.FuncOf(checkCalls))

	// wait indefinitely so that Go does not terminate execution
	// and the function remains available
	<-make(chan struct{})
}
