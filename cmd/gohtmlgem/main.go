// Command gohtmlgem converts an HTML document to text/gemini, deferring
// link output until the end of the enclosing block element so that <li>
// and heading links are bundled together rather than interleaved with
// text, per gemtext convention.
//
// Ported from original_source/examples/webgem/webgem.c: block/link state
// that file keeps in package-level globals is carried here as fields on a
// single converter value, since gohtml.Parse's Begin/End callbacks are
// closures rather than C function pointers with no capture.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tleino/gohtml"
	"github.com/tleino/gohtml/attrtable"
	"github.com/tleino/gohtml/tagtable"
	"github.com/tleino/gohtml/treebuilder"
)

// link is a pending gemtext link line, deferred until its owning block
// flushes. Mirrors struct link.
type link struct {
	isImg bool
	desc  string
	url   string
	block *block
}

// block gathers inline text for one "display: block" element. Mirrors
// struct block, including the has_content flag that distinguishes a block
// with only whitespace content from one worth printing.
type block struct {
	tagID      tagtable.ID
	text       strings.Builder
	prev       *block
	hasContent bool
}

type converter struct {
	out *bufio.Writer

	currentBlock *block
	links        []*link
	linkText     strings.Builder

	// Tracks the tag IDs of all currently open elements, innermost last,
	// since treebuilder does not expose its own open-elements stack to
	// consumers. Mirrors
	// is_child_of's ostack_peek/ostack_prev walk.
	open []tagtable.ID

	haveLinks bool
	haveLF    bool
}

func main() {
	flag.Parse()

	var r *os.File
	switch flag.NArg() {
	case 0:
		r = os.Stdin
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, "open:", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [file]\n", os.Args[0])
		os.Exit(1)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	c := &converter{out: out}

	if err := gohtml.Parse(r, gohtml.Options{Begin: c.begin, End: c.end}); err != nil {
		fmt.Fprintln(os.Stderr, "parse errors:", err)
	}
}

func (c *converter) isChildOf(id tagtable.ID) bool {
	for i := len(c.open) - 1; i >= 0; i-- {
		if c.open[i] == id {
			return true
		}
	}
	return false
}

func (c *converter) begin(n *treebuilder.Node) {
	switch n.Kind {
	case treebuilder.ElemNode:
		c.open = append(c.open, n.Elem.TagID)
		if meta := tagtable.Lookup(n.Elem.TagID); meta != nil && meta.Flags.Has(tagtable.Block) {
			c.beginBlock(n.Elem.TagID)
		} else if n.Elem.TagID == tagtable.A {
			c.linkText.Reset()
		}
	case treebuilder.CDATANode:
		c.blockAddText(n.CData.Data)
		if c.isChildOf(tagtable.A) {
			c.linkText.WriteString(n.CData.Data)
		}
	}
}

func (c *converter) end(n *treebuilder.Node) {
	switch n.Kind {
	case treebuilder.ElemNode:
		if len(c.open) > 0 {
			c.open = c.open[:len(c.open)-1]
		}
		if meta := tagtable.Lookup(n.Elem.TagID); meta != nil && meta.Flags.Has(tagtable.Block) {
			c.endBlock()
		} else {
			switch n.Elem.TagID {
			case tagtable.Br:
				c.endBr()
			case tagtable.Img:
				c.endImg(n.Elem)
			case tagtable.A:
				c.endA(n.Elem)
			}
		}
	}
}

func (c *converter) blockAddText(s string) {
	if c.currentBlock == nil {
		return
	}
	for _, r := range s {
		if !isSpace(byte(r)) {
			c.currentBlock.hasContent = true
		}
	}
	c.currentBlock.text.WriteString(s)
}

func (c *converter) beginBlock(id tagtable.ID) {
	if c.currentBlock != nil {
		c.flushBlock(c.currentBlock, false)
	}
	c.currentBlock = &block{tagID: id, prev: c.currentBlock}
}

func (c *converter) endBlock() {
	b := c.currentBlock
	if b == nil {
		return
	}
	c.flushBlock(b, true)
	c.currentBlock = b.prev
}

func (c *converter) endBr() {
	if c.isChildOf(tagtable.Li) {
		return
	}
	if c.currentBlock == nil || !c.currentBlock.hasContent {
		c.out.WriteByte('\n')
	} else {
		c.currentBlock.text.WriteByte('\r')
	}
}

func (c *converter) endImg(e *treebuilder.Elem) {
	c.addLink(attrValue(e, "src"), attrValue(e, "alt"), true)
}

func (c *converter) endA(e *treebuilder.Elem) {
	c.addLink(attrValue(e, "href"), c.linkText.String(), false)
}

func attrValue(e *treebuilder.Elem, name string) string {
	if a := attrtable.Get(e.Attr, name); a != nil {
		return a.Value
	}
	return ""
}

// addLink records a pending link against the current block, mirroring
// add_link's dedup-by-URL and "#"/empty URL skip.
func (c *converter) addLink(url, desc string, isImg bool) {
	if url == "" || url[0] == '#' {
		return
	}
	if c.hasLink(url) {
		return
	}
	c.haveLinks = true
	c.links = append(c.links, &link{isImg: isImg, url: url, desc: desc, block: c.currentBlock})
}

func (c *converter) hasLink(url string) bool {
	for _, l := range c.links {
		if l.url == url {
			return true
		}
	}
	return false
}

func (c *converter) flushLinks() int {
	n := 0
	for _, l := range c.links {
		if l.block == nil {
			continue
		}
		l.block = nil
		fmt.Fprintf(c.out, "=> %s", l.url)
		if l.desc != "" {
			c.out.WriteByte(' ')
			printContent(c.out, l.desc)
		}
		c.out.WriteByte('\n')
		n++
	}
	c.haveLinks = false
	return n
}

func (c *converter) flushBlockLinks(b *block, final bool) {
	if !final {
		return
	}
	meta := tagtable.Lookup(b.tagID)
	heading := meta != nil && meta.Flags.Has(tagtable.Heading)
	if b.tagID == tagtable.Li || heading {
		return
	}
	if !b.hasContent && c.haveLinks && !c.haveLF {
		c.out.WriteByte('\n')
		c.haveLF = true
	}
	if c.flushLinks() > 0 {
		c.out.WriteByte('\n')
	}
}

func (c *converter) flushBlock(b *block, final bool) {
	if !b.hasContent {
		if c.haveLinks {
			c.flushBlockLinks(b, final)
		} else if final && (b.tagID == tagtable.Ol || b.tagID == tagtable.Ul) {
			c.out.WriteByte('\n')
		}
		return
	}

	c.haveLF = false
	s := b.text.String()
	meta := tagtable.Lookup(b.tagID)
	switch {
	case meta != nil && meta.Flags.Has(tagtable.Heading):
		printHeading(c.out, b.tagID, s)
	case b.tagID == tagtable.Li:
		c.out.WriteString("* ")
		printContent(c.out, s)
		c.out.WriteByte('\n')
	case b.tagID == tagtable.Blockquote:
		c.out.WriteString("> ")
		printContent(c.out, s)
		c.out.WriteByte('\n')
	default:
		printContent(c.out, s)
		c.out.WriteByte('\n')
	}

	if b.tagID != tagtable.Li {
		c.out.WriteByte('\n')
		c.haveLF = true
	}

	c.flushBlockLinks(b, final)
	b.hasContent = false
	b.text.Reset()
}

func printHeading(out *bufio.Writer, id tagtable.ID, s string) {
	switch id {
	case tagtable.H1:
		out.WriteString("# ")
	case tagtable.H2:
		out.WriteString("## ")
	default:
		out.WriteString("### ")
	}
	printContent(out, s)
	out.WriteByte('\n')
}

// printContent collapses runs of inline whitespace to a single space and
// trims each line, matching print_content's two-pointer scan.
func printContent(out *bufio.Writer, s string) {
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		fields := strings.Fields(trimmed)
		out.WriteString(strings.Join(fields, " "))
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	default:
		return false
	}
}
