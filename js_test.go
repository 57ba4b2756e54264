// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import (
	"bytes"
	"html/template"
	"testing"
)

func TestEscapeJSStr(t *testing.T) {
	var buf bytes.Buffer
	if err := escapeJSStr(`"</script>"`, &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), `\x22\x3c\/script\x3e\x22`; got != want {
		t.Errorf("escapeJSStr = %q, want %q", got, want)
	}
}

func TestEscapeJSRegexpEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := escapeJSRegexp("", &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "(?:)"; got != want {
		t.Errorf("escapeJSRegexp(\"\") = %q, want %q", got, want)
	}
}

func TestEscapeJSRegexpMetacharacters(t *testing.T) {
	var buf bytes.Buffer
	if err := escapeJSRegexp("a.b*c", &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), `a\.b\*c`; got != want {
		t.Errorf("escapeJSRegexp = %q, want %q", got, want)
	}
}

func TestNextJSCtx(t *testing.T) {
	tests := []struct {
		s    string
		want jsCtx
	}{
		{"x = ", jsCtxRegexp},
		{"x", jsCtxDivOp},
		{"42", jsCtxDivOp},
		{"42.", jsCtxDivOp},
		{"x++", jsCtxDivOp},
		{"x--", jsCtxDivOp},
		{"!", jsCtxRegexp},
		{")", jsCtxDivOp},
		{"]", jsCtxDivOp},
		{"}", jsCtxRegexp},
		{"return", jsCtxRegexp},
		{"typeof", jsCtxRegexp},
		{"+", jsCtxRegexp},
		{"x+", jsCtxRegexp},
		{"x++y", jsCtxDivOp},
	}
	for _, test := range tests {
		if got := nextJSCtx(test.s, jsCtxDivOp); got != test.want {
			t.Errorf("nextJSCtx(%q) = %v, want %v", test.s, got, test.want)
		}
	}
}

func TestEscapeJSValueNumberAndBool(t *testing.T) {
	var buf bytes.Buffer
	if err := escapeJSValue(42, &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), " 42 "; got != want {
		t.Errorf("escapeJSValue(42) = %q, want %q", got, want)
	}

	buf.Reset()
	if err := escapeJSValue(true, &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), " true "; got != want {
		t.Errorf("escapeJSValue(true) = %q, want %q", got, want)
	}
}

func TestEscapeJSValueNil(t *testing.T) {
	var buf bytes.Buffer
	if err := escapeJSValue(nil, &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), " null "; got != want {
		t.Errorf("escapeJSValue(nil) = %q, want %q", got, want)
	}
}

func TestEscapeJSValueSlice(t *testing.T) {
	var buf bytes.Buffer
	if err := escapeJSValue([]int{1, 2, 3}, &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "[1,2,3]"; got != want {
		t.Errorf("escapeJSValue([1,2,3]) = %q, want %q", got, want)
	}
}

func TestEscapeJSValueCycle(t *testing.T) {
	s := make([]interface{}, 1)
	s[0] = s
	var buf bytes.Buffer
	if err := escapeJSValue(s, &buf); err != nil {
		t.Fatalf("escapeJSValue did not terminate cleanly: %v", err)
	}
	if got, want := buf.String(), "[null]"; got != want {
		t.Errorf("escapeJSValue(cyclic) = %q, want %q", got, want)
	}
}

func TestEscapeJSValueSafeContentTags(t *testing.T) {
	var buf bytes.Buffer
	if err := escapeJSValue(template.JS("foo()"), &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), " foo() "; got != want {
		t.Errorf("escapeJSValue(template.JS) = %q, want %q", got, want)
	}

	buf.Reset()
	if err := escapeJSValue(template.JSStr(`a'b`), &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), `'a\x27b'`; got != want {
		t.Errorf("escapeJSValue(template.JSStr) = %q, want %q", got, want)
	}
}

type jsonMarshalerFunc func() (string, error)

func (f jsonMarshalerFunc) ToJSON() (string, error) { return f() }

func TestEscapeJSValueJSONMarshaler(t *testing.T) {
	var buf bytes.Buffer
	m := jsonMarshalerFunc(func() (string, error) { return `{"a":1}`, nil })
	if err := escapeJSValue(m, &buf); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), `{"a":1}`; got != want {
		t.Errorf("escapeJSValue(JSONMarshaler) = %q, want %q", got, want)
	}
}

func TestEscapeJSValueJSONMarshalerInvalid(t *testing.T) {
	var buf bytes.Buffer
	m := jsonMarshalerFunc(func() (string, error) { return `{not json}`, nil })
	if err := escapeJSValue(m, &buf); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if got == `{not json}` {
		t.Errorf("escapeJSValue trusted a malformed JSONMarshaler result verbatim: %q", got)
	}
	if !bytes.Contains([]byte(got), []byte("null")) {
		t.Errorf("escapeJSValue(invalid JSON) = %q, want it to fall back to null", got)
	}
}
