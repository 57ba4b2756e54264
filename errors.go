// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import "fmt"

// ErrorKind identifies the class of error encountered while writing to a
// Writer, mirroring the recovery policy described for each kind: some are
// fatal to the Writer, some merely propagate, and some are recovered from
// locally.
type ErrorKind int

const (
	// ErrAmbigContext: the writer is in a context such that it is unclear
	// whether an untrusted value is in a URL, CSS, or JS string, making it
	// impossible to select an escaper safely.
	ErrAmbigContext ErrorKind = iota
	// ErrBadHTML: the trusted HTML text does not parse, e.g. a stray quote
	// in an unquoted attribute value, or a bad close tag.
	ErrBadHTML
	// ErrPartialEscape: the value being escaped appears to be produced by
	// a subsequent escaping function, as in `{{.X | urlquery | html}}`.
	ErrPartialEscape
	// ErrSlashAmbig: a '/' could be either a division operator or the
	// start of a regular expression, and the template author must
	// disambiguate.
	ErrSlashAmbig
	// ErrEndContext: the content ends in a context other than stateText,
	// as when a template ends without closing a tag that was opened.
	ErrEndContext
	// ErrInternal: a state was reached that the implementation does not
	// know how to handle; indicates a bug in this package.
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrAmbigContext:
		return "ErrAmbigContext"
	case ErrBadHTML:
		return "ErrBadHTML"
	case ErrPartialEscape:
		return "ErrPartialEscape"
	case ErrSlashAmbig:
		return "ErrSlashAmbig"
	case ErrEndContext:
		return "ErrEndContext"
	case ErrInternal:
		return "ErrInternal"
	}
	return "ErrorKind(?)"
}

// Error is the error type returned by Writer methods. It carries an
// ErrorKind so callers can distinguish malformed trusted input (a template
// bug) from an incomplete document fragment at Close.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("escaper: %s: %s", e.Kind, e.Msg)
}

func errorf(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
