// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

// context describes the state a Writer is in after processing a prefix of
// a document. It is small and copyable by value: every writeSafe/writeUnsafe
// call produces a new context rather than mutating one shared by reference.
type context struct {
	state   state
	delim   delim
	urlPart urlPart
	jsCtx   jsCtx
	attr    attr
	element element
	err     error

	// xmlText remembers whether a comment or CDATA section currently being
	// scanned was entered from stateXML rather than stateText, since
	// MarkupCmt and CDATA are shared states reachable from either and their
	// escaping policy (elide vs. preserve) and exit state depend on which.
	xmlText bool

	// xmlDoc persists for the rest of the document once a non-whitelisted
	// doctype has switched it out of HTML mode, so that a tag's closing
	// '>' knows to return to stateXML rather than stateText even though
	// element is reused for the unrelated script/style/textarea/title
	// classification and resets at each tag.
	xmlDoc bool
}

// state encodes the kind of content the writer is currently scanning or
// about to scan.
type state uint8

const (
	stateText state = iota
	stateTagName
	stateTag
	stateAttrName
	stateAfterName
	stateBeforeValue
	stateAttr
	stateURL
	stateJS
	stateJSDqStr
	stateJSSqStr
	stateJSRegexp
	stateJSBlockCmt
	stateJSLineCmt
	stateCSS
	stateCSSDqStr
	stateCSSSqStr
	stateCSSDqURL
	stateCSSSqURL
	stateCSSURL
	stateCSSBlockCmt
	stateCSSLineCmt
	stateMarkupCmt
	stateRCDATA
	stateCDATA
	stateXML
	stateError
)

func (s state) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "state(?)"
}

var stateNames = [...]string{
	stateText:        "Text",
	stateTagName:     "TagName",
	stateTag:         "Tag",
	stateAttrName:    "AttrName",
	stateAfterName:   "AfterName",
	stateBeforeValue: "BeforeValue",
	stateAttr:        "Attr",
	stateURL:         "URL",
	stateJS:          "JS",
	stateJSDqStr:     "JSDqStr",
	stateJSSqStr:     "JSSqStr",
	stateJSRegexp:    "JSRegexp",
	stateJSBlockCmt:  "JSBlockCmt",
	stateJSLineCmt:   "JSLineCmt",
	stateCSS:         "CSS",
	stateCSSDqStr:    "CSSDqStr",
	stateCSSSqStr:    "CSSSqStr",
	stateCSSDqURL:    "CSSDqURL",
	stateCSSSqURL:    "CSSSqURL",
	stateCSSURL:      "CSSURL",
	stateCSSBlockCmt: "CSSBlockCmt",
	stateCSSLineCmt:  "CSSLineCmt",
	stateMarkupCmt:   "MarkupCmt",
	stateRCDATA:      "RCDATA",
	stateCDATA:       "CDATA",
	stateXML:         "XML",
	stateError:       "Error",
}

// isComment reports whether st is one of the comment-body states, all of
// which are elided (or, for a MarkupCmt entered from XML text, replaced by
// one space; see chooseEscaper) when an untrusted value lands inside them.
func isComment(st state) bool {
	switch st {
	case stateJSBlockCmt, stateJSLineCmt, stateCSSBlockCmt, stateCSSLineCmt, stateMarkupCmt:
		return true
	}
	return false
}

// isInTag reports whether st is a state reachable only while lexing inside
// a start tag (before the closing '>').
func isInTag(st state) bool {
	switch st {
	case stateTag, stateAttrName, stateAfterName, stateBeforeValue, stateAttr,
		stateURL, stateJS, stateJSDqStr, stateJSSqStr, stateJSRegexp,
		stateJSBlockCmt, stateJSLineCmt, stateCSS, stateCSSDqStr, stateCSSSqStr,
		stateCSSDqURL, stateCSSSqURL, stateCSSURL, stateCSSBlockCmt, stateCSSLineCmt:
		return true
	}
	return false
}

// delim identifies the attribute-value quoting in effect, if any.
type delim uint8

const (
	delimNone delim = iota
	delimDoubleQuote
	delimSingleQuote
	delimSpaceOrTagEnd
)

func (d delim) String() string {
	switch d {
	case delimNone:
		return "None"
	case delimDoubleQuote:
		return "DoubleQuote"
	case delimSingleQuote:
		return "SingleQuote"
	case delimSpaceOrTagEnd:
		return "SpaceOrTagEnd"
	}
	return "delim(?)"
}

// urlPart tracks how far scanning has progressed through a URL-shaped
// value: whether it is still entirely before any '?' or '#'.
type urlPart uint8

const (
	urlPartNone urlPart = iota
	urlPartPreQuery
	urlPartQueryOrFrag
	// urlPartUnknown marks a URL context whose part could not be
	// determined. No transition sets it; chooseURLEscaper treats it like
	// urlPartQueryOrFrag and fully escapes a value printed into it.
	urlPartUnknown
)

func (u urlPart) String() string {
	switch u {
	case urlPartNone:
		return "None"
	case urlPartPreQuery:
		return "PreQuery"
	case urlPartQueryOrFrag:
		return "QueryOrFrag"
	case urlPartUnknown:
		return "Unknown"
	}
	return "urlPart(?)"
}

// jsCtx disambiguates whether a following '/' starts a regular expression
// literal or a division operator.
type jsCtx uint8

const (
	jsCtxRegexp jsCtx = iota
	jsCtxDivOp
)

func (j jsCtx) String() string {
	if j == jsCtxRegexp {
		return "Regexp"
	}
	return "DivOp"
}

// attr records the sublanguage selected by the currently open attribute
// name, set when the attribute name is classified and consumed at the
// value's start state.
type attr uint8

const (
	attrNone attr = iota
	attrScript
	attrStyle
	attrURL
)

// element records which special HTML element's body we are scanning, since
// that determines the end tag findSpecialTagEnd watches for and the
// sublanguage state a '>' transitions into.
type element uint8

const (
	elementNone element = iota
	elementScript
	elementStyle
	elementTextarea
	elementTitle
)

// attrStartStates maps an attribute's content class to the state its value
// begins in immediately after the opening quote (or nudge-inserted quote).
var attrStartStates = [...]state{
	attrNone:   stateAttr,
	attrScript: stateJS,
	attrStyle:  stateCSS,
	attrURL:    stateURL,
}
