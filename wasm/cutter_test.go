//go:build wasm

package main

import (
	"encoding/json"
	"syscall/js"
	"testing"

	"github.com/praetorian-inc/snip/pkg/cutter"
	"github.com/praetorian-inc/snip/pkg/selection"
)

func TestParse(t *testing.T) {
	result := parse(js.Value{}, []js.Value{js.ValueOf("2,1-3")})

	resultStr, ok := result.(string)
	if !ok {
		t.Fatalf("Expected string result, got %T: %v", result, result)
	}

	var ranges selection.List
	if err := json.Unmarshal([]byte(resultStr), &ranges); err != nil {
		t.Fatalf("Failed to parse ranges: %v", err)
	}
	want := selection.List{{Start: 1, End: 2}, {Start: 0, End: 3}}
	if len(ranges) != len(want) || ranges[0] != want[0] || ranges[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, ranges)
	}
}

func TestParseError(t *testing.T) {
	result := parse(js.Value{}, []js.Value{js.ValueOf("0")})

	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}
	if resultMap["kind"] != "invalid_index" {
		t.Errorf("Expected invalid_index, got %v", resultMap["kind"])
	}
	if resultMap["error"] != `illegal list value: "0"` {
		t.Errorf("Unexpected error: %v", resultMap["error"])
	}
}

func TestCut(t *testing.T) {
	result := cut(js.Value{}, []js.Value{
		js.ValueOf(`{"list":"3,1","delimiter":","}`),
		js.ValueOf(`["a,b,c","x"]`),
	})

	resultStr, ok := result.(string)
	if !ok {
		t.Fatalf("Expected string result, got %T: %v", result, result)
	}

	var res cutter.Result
	if err := json.Unmarshal([]byte(resultStr), &res); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}
	if len(res.Lines) != 2 || res.Lines[0] != "c,a" || res.Lines[1] != "x" {
		t.Errorf("Unexpected lines: %v", res.Lines)
	}
}

func TestCutInvalidOptions(t *testing.T) {
	result := cut(js.Value{}, []js.Value{
		js.ValueOf(`{"list":"4-2"}`),
		js.ValueOf(`[]`),
	})

	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}
	if resultMap["kind"] != "invalid_range" {
		t.Errorf("Expected invalid_range, got %v", resultMap["kind"])
	}
}

func TestCutterHandle(t *testing.T) {
	result := newCutter(js.Value{}, []js.Value{js.ValueOf(`{"list":"1-2","mode":"chars"}`)})

	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}
	handle, hasHandle := resultMap["handle"]
	if !hasHandle {
		t.Fatalf("Expected handle in result, got %v", resultMap)
	}

	out := cutWith(js.Value{}, []js.Value{js.ValueOf(handle), js.ValueOf(`["héllo"]`)})
	outStr, ok := out.(string)
	if !ok {
		t.Fatalf("Expected string result, got %T: %v", out, out)
	}
	var res cutter.Result
	if err := json.Unmarshal([]byte(outStr), &res); err != nil {
		t.Fatalf("Failed to parse result: %v", err)
	}
	if len(res.Lines) != 1 || res.Lines[0] != "hé" {
		t.Errorf("Unexpected lines: %v", res.Lines)
	}

	if closeResult := closeCutter(js.Value{}, []js.Value{js.ValueOf(handle)}); closeResult != nil {
		t.Errorf("Expected nil from close, got %v", closeResult)
	}
}

func TestInvalidHandle(t *testing.T) {
	result := cutWith(js.Value{}, []js.Value{js.ValueOf(9999), js.ValueOf(`["x"]`)})

	resultMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected map result, got %T", result)
	}
	if _, hasError := resultMap["error"]; !hasError {
		t.Error("Expected error for invalid handle")
	}

	result = closeCutter(js.Value{}, []js.Value{js.ValueOf(9999)})
	if result == nil {
		t.Error("Expected error closing invalid handle")
	}
}

func TestExportsRegistered(t *testing.T) {
	for _, name := range []string{"SnipParse", "SnipCut", "SnipNewCutter", "SnipCutWith", "SnipCloseCutter"} {
		if exports[name] == nil {
			t.Errorf("Expected %s to be exported", name)
		}
	}
}
