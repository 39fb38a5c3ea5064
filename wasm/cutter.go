//go:build wasm

package main

import (
	"encoding/json"
	"errors"
	"sync"
	"syscall/js"

	"github.com/praetorian-inc/snip/pkg/cutter"
	"github.com/praetorian-inc/snip/pkg/selection"
)

var (
	cutters   = make(map[int]*cutter.Core)
	cuttersMu sync.RWMutex
	nextID    int
)

// errorResult converts err to the object returned to JavaScript. Selection
// errors carry their kind.
func errorResult(prefix string, err error) map[string]interface{} {
	result := map[string]interface{}{"error": prefix + err.Error()}
	var pe *selection.ParseError
	if errors.As(err, &pe) {
		result["kind"] = pe.Kind.String()
	}
	return result
}

func marshal(v any) interface{} {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal result: " + err.Error()}
	}
	return string(jsonBytes)
}

// parse parses a selection list.
// JS: SnipParse(list) -> JSON ranges or {error, kind}
func parse(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "list argument required"}
	}

	ranges, err := selection.Parse(args[0].String())
	if err != nil {
		return errorResult("", err)
	}
	return marshal(ranges)
}

// compile builds a cutter from options JSON.
func compile(optionsJSON string) (*cutter.Core, error) {
	var opts cutter.Options
	if err := json.Unmarshal([]byte(optionsJSON), &opts); err != nil {
		return nil, err
	}
	return cutter.New(opts)
}

func decodeLines(linesJSON string) ([]string, error) {
	var lines []string
	if err := json.Unmarshal([]byte(linesJSON), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// cut applies a one-off selection to lines.
// JS: SnipCut(optionsJSON, linesJSON) -> JSON result or {error, kind}
func cut(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "optionsJSON and linesJSON arguments required"}
	}

	core, err := compile(args[0].String())
	if err != nil {
		return errorResult("invalid options: ", err)
	}
	lines, err := decodeLines(args[1].String())
	if err != nil {
		return errorResult("failed to parse lines JSON: ", err)
	}
	return marshal(core.Cut(lines))
}

// newCutter compiles a selection for repeated use.
// JS: SnipNewCutter(optionsJSON) -> {handle} or {error, kind}
func newCutter(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "optionsJSON argument required"}
	}

	core, err := compile(args[0].String())
	if err != nil {
		return errorResult("invalid options: ", err)
	}

	cuttersMu.Lock()
	id := nextID
	nextID++
	cutters[id] = core
	cuttersMu.Unlock()

	return map[string]interface{}{"handle": id}
}

// cutWith applies a compiled selection to lines.
// JS: SnipCutWith(handle, linesJSON) -> JSON result or {error}
func cutWith(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and linesJSON arguments required"}
	}

	cuttersMu.RLock()
	core, ok := cutters[args[0].Int()]
	cuttersMu.RUnlock()
	if !ok {
		return map[string]interface{}{"error": "invalid cutter handle"}
	}

	lines, err := decodeLines(args[1].String())
	if err != nil {
		return errorResult("failed to parse lines JSON: ", err)
	}
	return marshal(core.Cut(lines))
}

// closeCutter releases a compiled selection.
// JS: SnipCloseCutter(handle)
func closeCutter(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "handle argument required"}
	}

	handle := args[0].Int()

	cuttersMu.Lock()
	_, ok := cutters[handle]
	delete(cutters, handle)
	cuttersMu.Unlock()

	if !ok {
		return map[string]interface{}{"error": "invalid cutter handle"}
	}
	return nil
}
