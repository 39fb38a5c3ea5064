//go:build wasm

// Command wasm exposes snip's selection parser and cutter to JavaScript.
package main

import (
	"syscall/js"
)

// exports maps global JavaScript names to their implementations.
var exports = map[string]func(js.Value, []js.Value) interface{}{
	"SnipParse":       parse,
	"SnipCut":         cut,
	"SnipNewCutter":   newCutter,
	"SnipCutWith":     cutWith,
	"SnipCloseCutter": closeCutter,
}

func main() {
	global := js.Global()
	for name, fn := range exports {
		global.Set(name, js.FuncOf(fn))
	}
	global.Set("SnipReady", true)

	// Block forever; the exported functions are called from JavaScript.
	select {}
}
