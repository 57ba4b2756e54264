// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package escaper

import "strings"

// attrTypeMap describes the value of the given attribute. If an attribute
// affects (or can mask) the encoding or interpretation of other content, or
// affects the contents, idempotency, or credentials of a network message,
// then the map omits it or maps it to contentTypeUnsafe. Derived from
// HTML5's global and per-element attribute lists, plus the "%URI"-typed
// attributes from HTML4.
var attrTypeMap = map[string]contentType{
	"accept":          contentTypePlain,
	"accept-charset":  contentTypeUnsafe,
	"action":          contentTypeURL,
	"alt":             contentTypePlain,
	"archive":         contentTypeURL,
	"async":           contentTypeUnsafe,
	"attributename":   contentTypeUnsafe, // From <svg:set attributeName>
	"autocomplete":    contentTypePlain,
	"autofocus":       contentTypePlain,
	"autoplay":        contentTypePlain,
	"background":      contentTypeURL,
	"border":          contentTypePlain,
	"checked":         contentTypePlain,
	"cite":            contentTypeURL,
	"challenge":       contentTypeUnsafe,
	"charset":         contentTypeUnsafe,
	"class":           contentTypePlain,
	"classid":         contentTypeURL,
	"codebase":        contentTypeURL,
	"cols":            contentTypePlain,
	"colspan":         contentTypePlain,
	"content":         contentTypeUnsafe,
	"contenteditable": contentTypePlain,
	"contextmenu":     contentTypePlain,
	"controls":        contentTypePlain,
	"coords":          contentTypePlain,
	"crossorigin":     contentTypeUnsafe,
	"data":            contentTypeURL,
	"datetime":        contentTypePlain,
	"default":         contentTypePlain,
	"defer":           contentTypeUnsafe,
	"dir":             contentTypePlain,
	"dirname":         contentTypePlain,
	"disabled":        contentTypePlain,
	"draggable":       contentTypePlain,
	"dropzone":        contentTypePlain,
	"enctype":         contentTypeUnsafe,
	"for":             contentTypePlain,
	"form":            contentTypeUnsafe,
	"formaction":      contentTypeURL,
	"formenctype":     contentTypeUnsafe,
	"formmethod":      contentTypeUnsafe,
	"formnovalidate":  contentTypeUnsafe,
	"formtarget":      contentTypePlain,
	"headers":         contentTypePlain,
	"height":          contentTypePlain,
	"hidden":          contentTypePlain,
	"high":            contentTypePlain,
	"href":            contentTypeURL,
	"hreflang":        contentTypePlain,
	"http-equiv":      contentTypeUnsafe,
	"icon":            contentTypeURL,
	"id":              contentTypePlain,
	"ismap":           contentTypePlain,
	"keytype":         contentTypeUnsafe,
	"kind":            contentTypePlain,
	"label":           contentTypePlain,
	"lang":            contentTypePlain,
	"language":        contentTypeUnsafe,
	"list":            contentTypePlain,
	"longdesc":        contentTypeURL,
	"loop":            contentTypePlain,
	"low":             contentTypePlain,
	"manifest":        contentTypeURL,
	"max":             contentTypePlain,
	"maxlength":       contentTypePlain,
	"media":           contentTypePlain,
	"mediagroup":      contentTypePlain,
	"method":          contentTypeUnsafe,
	"min":             contentTypePlain,
	"multiple":        contentTypePlain,
	"name":            contentTypePlain,
	"novalidate":      contentTypeUnsafe,
	// Event handler names are classified by the "on" prefix heuristic
	// below rather than being listed individually here.
	"open":         contentTypePlain,
	"optimum":      contentTypePlain,
	"pattern":      contentTypeUnsafe,
	"placeholder":  contentTypePlain,
	"poster":       contentTypeURL,
	"profile":      contentTypeURL,
	"preload":      contentTypePlain,
	"pubdate":      contentTypePlain,
	"radiogroup":   contentTypePlain,
	"readonly":     contentTypePlain,
	"rel":          contentTypeUnsafe,
	"required":     contentTypePlain,
	"reversed":     contentTypePlain,
	"rows":         contentTypePlain,
	"rowspan":      contentTypePlain,
	"sandbox":      contentTypeUnsafe,
	"spellcheck":   contentTypePlain,
	"scope":        contentTypePlain,
	"scoped":       contentTypePlain,
	"seamless":     contentTypePlain,
	"selected":     contentTypePlain,
	"shape":        contentTypePlain,
	"size":         contentTypePlain,
	"sizes":        contentTypePlain,
	"span":         contentTypePlain,
	"src":          contentTypeURL,
	"srcdoc":       contentTypeMarkup,
	"srchtml":      contentTypeUnsafe,
	"srclang":      contentTypePlain,
	"start":        contentTypePlain,
	"step":         contentTypePlain,
	"style":        contentTypeCSS,
	"tabindex":     contentTypePlain,
	"target":       contentTypePlain,
	"title":        contentTypePlain,
	"type":         contentTypeUnsafe,
	"usemap":       contentTypeURL,
	"value":        contentTypeUnsafe,
	"width":        contentTypePlain,
	"wrap":         contentTypePlain,
	"xmlns":        contentTypeURL,
}

// classifyAttrName returns a conservative (upper-bound on authority) guess
// at the content class of the named attribute. Unknown attributes default
// to contentTypeUnsafe, the strictest escaping this package offers.
func classifyAttrName(name string) contentType {
	s := name
	if hasPrefixFold(s, "data-") {
		// Strip data- so that the custom-attribute heuristics below are
		// applied widely, e.g. data-action is treated as a URL.
		s = s[5:]
	} else if colon := strings.IndexByte(s, ':'); colon >= 0 {
		if colon == 5 && hasPrefixFold(s, "xmlns") {
			return contentTypeURL
		}
		// Treat svg:href and xlink:href as href below.
		s = s[colon+1:]
	}
	if t, ok := attrTypeMap[strings.ToLower(s)]; ok {
		return t
	}
	// Treat partial event handler names as script.
	if hasPrefixFold(s, "on") {
		return contentTypeJS
	}
	// Heuristics to prevent "javascript:..." injection in custom data
	// attributes and custom attributes like g:tweetUrl. Developers store
	// URL content in attributes whose name starts or ends with "URI" or
	// "URL", or contains "src".
	lower := strings.ToLower(s)
	if strings.Contains(lower, "src") || strings.Contains(lower, "uri") || strings.Contains(lower, "url") {
		return contentTypeURL
	}
	return contentTypeUnsafe
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// attrForContentType maps the content class of an attribute name to the
// attr subfield value stashed in the context when the tag scanner enters
// the attribute, which in turn selects the value's start state.
func attrForContentType(ct contentType) attr {
	switch ct {
	case contentTypeURL:
		return attrURL
	case contentTypeCSS:
		return attrStyle
	case contentTypeJS:
		return attrScript
	default:
		return attrNone
	}
}
