//go:build ignore

// tag_gen.go is the offline table generator referenced by spec.md §4.4
// ("Tables are generated offline and shipped as immutable data"). It is not
// part of the tagtable package build: it is a standalone program, run with
// `go run tag_gen.go`, that walks its own copy of tagList's names (in the
// same order) and prints the resulting slot assignments so a reviewer can
// confirm they match what init() computes at program startup in
// tag.go/tags_data.go.
//
// Grounded on original_source/tagmap.c, whose table is likewise produced by
// a throwaway generation pass over a tag name list rather than hand-placed.
package main

import (
	"fmt"
)

const (
	tableSize = 1024
	prime     = 104729
	modulo    = 1 << 20
)

func hash(name string) int {
	addr := 0
	for i := 0; i < len(name); i++ {
		addr += int(name[i])
		addr *= prime
		addr %= modulo
	}
	return addr % tableSize
}

func main() {
	names := []string{
		"html", "head", "body", "title", "meta", "base", "basefont",
		"bgsound", "link", "style", "script", "noframes", "noscript",
		"template", "p", "address", "article", "aside", "blockquote",
		"center", "details", "dialog", "dir", "div", "dl", "fieldset",
		"figcaption", "figure", "footer", "header", "hgroup", "main",
		"menu", "nav", "ol", "section", "summary", "ul", "li", "dd", "dt",
		"h1", "h2", "h3", "h4", "h5", "h6", "table", "caption", "colgroup",
		"col", "tbody", "thead", "tfoot", "tr", "td", "th", "form",
		"button", "select", "option", "optgroup", "textarea", "input",
		"a", "b", "i", "em", "strong", "small", "s", "u", "tt", "big",
		"code", "font", "nobr", "applet", "marquee", "object", "math",
		"svg", "plaintext", "pre", "listing", "br", "area", "embed",
		"img", "keygen", "wbr", "rb", "rp", "rt", "rtc", "frameset",
		"frame", "noembed", "iframe", "xmp", "hr",
	}

	occupied := make(map[int]string, len(names))
	for _, name := range names {
		addr := hash(name)
		i := addr % tableSize
		for occupied[i] != "" {
			addr++
			i = addr % tableSize
		}
		occupied[i] = name
		fmt.Printf("slot %4d: %s\n", i, name)
	}
	fmt.Printf("%d tags in %d slots (%.1f%% load)\n",
		len(names), tableSize, 100*float64(len(names))/tableSize)
}
