package treebuilder

import (
	"fmt"

	"github.com/tleino/gohtml"
	"github.com/tleino/gohtml/tagtable"
)

// ContentSignal tells the caller which tokenizer content model to switch to
// before requesting the next token, per spec.md §4.2's back-channel between
// FSM B and FSM A (RCDATA for <title>, RAWTEXT for <style>/<noframes>,
// SCRIPT_DATA for <script>, PLAINTEXT for <plaintext>).
type ContentSignal int

const (
	NoSignal ContentSignal = iota
	RCDATASignal
	RawtextSignal
	ScriptDataSignal
	PlaintextSignal
)

// BeginFunc and EndFunc are the node lifecycle callbacks spec.md §4.3
// describes: begin fires when a node is created (and, for elements, pushed
// onto the open-elements stack), end fires when it is popped or, for void
// elements and completed character data, immediately after begin.
type BeginFunc func(*Node)
type EndFunc func(*Node)

// Dispatcher is FSM B: it owns the open-elements stack and insertion mode,
// consumes one token at a time via Dispatch, and drives Begin/End against
// whatever tree the caller is building. A Dispatcher is not safe for
// concurrent use by multiple goroutines — spec.md §9 treats it as owned by
// a single in-progress parse, not a shared singleton.
//
// Grounded on original_source/dispatch.c's struct dispatcher and
// insert_token_with_mode.
type Dispatcher struct {
	open     openStack
	mode     InsertionMode
	origMode InsertionMode
	headElem *Elem
	cdata    *CData

	reporter gohtml.ErrorReporter

	begin BeginFunc
	end   EndFunc
}

// New returns a Dispatcher positioned at InitialMode. A nil reporter
// discards parse errors.
func New(reporter gohtml.ErrorReporter) *Dispatcher {
	if reporter == nil {
		reporter = gohtml.DiscardReporter
	}
	return &Dispatcher{mode: InitialMode, reporter: reporter}
}

// Mode reports the dispatcher's current insertion mode.
func (d *Dispatcher) Mode() InsertionMode {
	return d.mode
}

// Dispatch feeds one token through FSM B, invoking begin/end as nodes are
// created and closed, and returns the content-model signal the caller
// should apply to the tokenizer (NoSignal if none). Mirrors dispatch()'s
// role of installing ctx->begin/ctx->end before calling
// insert_token_with_mode.
func (d *Dispatcher) Dispatch(tok *gohtml.Token, begin BeginFunc, end EndFunc) ContentSignal {
	d.begin = begin
	d.end = end
	return d.dispatchMode(tok, d.mode)
}

// Finish flushes any pending character data and then synthesizes a close
// for every element still on the open-elements stack, in LIFO order, per
// spec.md P3: after EOF the open-elements stack must end up empty, with an
// end(node) emitted for each element that was never explicitly closed —
// this is also what makes scenario 4 ("<p>a<b>bold</p>" without a real
// adoption-agency algorithm) come out balanced: </p> alone cannot close a
// <b> sitting above it on the stack, so the balance guarantee is delivered
// here, at end of input, rather than by the dispatch logic mid-stream.
// Safe to call only after at least one Dispatch call has installed
// begin/end.
func (d *Dispatcher) Finish() {
	d.flushCData()
	for d.open.depth() > 0 {
		d.pop()
	}
}

// reportError packages one tree-construction parse error and hands it to
// the configured reporter. Mirrors print_err's message shape, minus the
// unstructured warnx destination.
func (d *Dispatcher) reportError(tok *gohtml.Token, mode InsertionMode, msg string) {
	d.reporter.ReportParseError(&gohtml.ParseError{
		Line: tok.EndLine,
		Code: "tree-construction-error",
		Msg:  fmt.Sprintf("%s in %s: %s", tok.Type, mode, msg),
	})
}

// flushCData terminates the pending character-data accumulator, if any,
// and reports it as a complete begin/end pair, per spec.md P2. Both
// insert_element_ns and close_tag flush pending text in original_source,
// but each fires only one of begin/end at its call site; spec.md's P2 and
// scenario 1 both require a proper begin/end pair for every character run,
// so the pairing is completed here rather than carried through literally.
func (d *Dispatcher) flushCData() {
	if d.cdata == nil {
		return
	}
	n := newCDataNode(d.cdata)
	d.cdata = nil
	d.begin(n)
	d.end(n)
}

// insertChar appends tok's data to the pending text accumulator, creating
// one if none is pending.
func (d *Dispatcher) insertChar(tok *gohtml.Token) {
	if d.cdata == nil {
		d.cdata = cdataCreate(TextCData)
	}
	d.cdata.add(tok.Data)
	tok.Used = true
}

// insertElementNS builds an element from tok, reports it via begin, and
// either pushes it onto the open-elements stack or immediately closes it if
// it is a void element. Mirrors insert_element_ns. Inserting <head> records
// it as headElem, which resetInsertionMode consults.
func (d *Dispatcher) insertElementNS(tok *gohtml.Token, ns Namespace) *Elem {
	d.flushCData()

	e := elemFromToken(tok)
	e.NS = ns

	if e.TagID == tagtable.Head {
		d.headElem = e
	}

	n := newElemNode(e)
	d.begin(n)

	meta := tagtable.Lookup(e.TagID)
	if meta == nil || !meta.Flags.Has(tagtable.Empty) {
		d.open.push(e)
	} else {
		d.end(n)
	}

	tok.Used = true
	return e
}

func (d *Dispatcher) insertForeignElement(tok *gohtml.Token, ns Namespace) *Elem {
	return d.insertElementNS(tok, ns)
}

func (d *Dispatcher) insertTag(tok *gohtml.Token) {
	d.insertElementNS(tok, HTMLNamespace)
}

// insertTagName synthesizes a start or end tag for name (used for the
// implied <html>/<head>/<body>/<tbody>/<tr> elements) and inserts it as if
// it had come from the tokenizer.
func (d *Dispatcher) insertTagName(name string, isClose bool) {
	tok := &gohtml.Token{TagID: tagtable.TagID(name), Name: name}
	if isClose {
		tok.Type = gohtml.TokenEndTag
		d.insertCloseTag(tok)
	} else {
		tok.Type = gohtml.TokenStartTag
		d.insertTag(tok)
	}
}

// insertTokenSetMode reassigns the dispatcher's mode, then reprocesses tok
// under it, returning the resulting content-model signal so that a
// <title>/<script>/<style> reached through an implied <html> or <head>
// still switches the tokenizer.
func (d *Dispatcher) insertTokenSetMode(tok *gohtml.Token, mode InsertionMode) ContentSignal {
	d.mode = mode
	return d.dispatchMode(tok, d.mode)
}

// closeTag terminates e: flushes any pending text, pops the open-elements
// stack (e must be its current top), and reports e's node closed. Mirrors
// close_tag.
func (d *Dispatcher) closeTag(e *Elem) {
	d.flushCData()
	d.open.pop()
	d.end(e.Node)
}

// pop closes and removes the current top of the open-elements stack,
// returning it. Mirrors pop().
func (d *Dispatcher) pop() *Elem {
	e := d.open.peek()
	d.closeTag(e)
	return e
}

// popElem pops down to and including the first (topmost) element matching
// id. Mirrors pop_elem's assert(0) if the stack drains without a match:
// that is a true internal inconsistency, never expected on any input, so
// it panics rather than returning a sentinel a caller might silently
// ignore.
func (d *Dispatcher) popElem(id tagtable.ID) *Elem {
	for d.open.peek() != nil {
		if d.open.peek().is(id) {
			return d.pop()
		}
		d.pop()
	}
	panic(&gohtml.InternalError{Msg: "popElem: open-elements stack exhausted without a match"})
}

// insertCloseTag closes the current top of the open-elements stack in
// response to an end tag token. Mirrors insert_close_tag (which peeks
// rather than validating the end tag's name against the top — any
// mismatch handling happens in the calling insertion-mode logic first).
func (d *Dispatcher) insertCloseTag(tok *gohtml.Token) {
	e := d.open.peek()
	d.closeTag(e)
	tok.Used = true
}

// isOpen reports whether any element currently on the stack matches one of
// ids. Mirrors is_open.
func (d *Dispatcher) isOpen(ids ...tagtable.ID) bool {
	for i := d.open.depth(); i >= 1; i-- {
		e := d.open.peekAt(i)
		for _, id := range ids {
			if e.is(id) {
				return true
			}
		}
	}
	return false
}

// isOpenOtherThan returns the tagid of the topmost element not in ids, or
// CustomTag if every open element is in ids. Mirrors is_open_other_than,
// whose -1 "none found" sentinel lines up with CustomTag.
func (d *Dispatcher) isOpenOtherThan(ids ...tagtable.ID) tagtable.ID {
	for i := d.open.depth(); i >= 1; i-- {
		e := d.open.peekAt(i)
		found := false
		for _, id := range ids {
			if e.is(id) {
				found = true
				break
			}
		}
		if !found {
			return e.TagID
		}
	}
	return tagtable.CustomTag
}

func isStartTagAny(tok *gohtml.Token, ids ...tagtable.ID) bool {
	if tok.Type != gohtml.TokenStartTag {
		return false
	}
	for _, id := range ids {
		if tok.TagID == id {
			return true
		}
	}
	return false
}

func isEndTagAny(tok *gohtml.Token, ids ...tagtable.ID) bool {
	if tok.Type != gohtml.TokenEndTag {
		return false
	}
	for _, id := range ids {
		if tok.TagID == id {
			return true
		}
	}
	return false
}

// checkP closes an open P element in button scope before inserting another
// block element, per spec.md's check_p. Returns false (having already
// reported the error) if the close unexpectedly fails.
func (d *Dispatcher) checkP(tok *gohtml.Token, mode InsertionMode) bool {
	if d.hasElementInScope(tagtable.P, ButtonScope) {
		if !d.closePElement() {
			d.reportError(tok, mode, "closing p failed")
			return false
		}
	}
	return true
}

// adoptionAgency is an intentional no-op: original_source's
// adoption_agency(ctx, token) has an empty body. Format-element end tags
// still call insertCloseTag immediately after, so the tree stays balanced
// without reimplementing the living standard's active-formatting-elements
// algorithm (spec.md §9 Open Question #1).
func (d *Dispatcher) adoptionAgency(tok *gohtml.Token) {}

// closeCell closes the currently open td/th in response to a sibling cell
// or row/table-section tag, per spec.md's close_cell.
func (d *Dispatcher) closeCell(tok *gohtml.Token, mode InsertionMode) {
	d.generateImpliedEndTags(tagtable.CustomTag)
	switch {
	case d.open.peek() != nil && d.open.peek().is(tagtable.Td):
		d.popElem(tagtable.Td)
		d.mode = InRowMode
	case d.open.peek() != nil && d.open.peek().is(tagtable.Th):
		d.popElem(tagtable.Th)
		d.mode = InRowMode
	default:
		d.reportError(tok, mode, "close cell")
	}
}

// dispatchMode is insert_token_with_mode: mode selects which insertion-mode
// rules apply to tok, independently of d.mode (some call sites reprocess a
// token under a different mode without mutating d.mode itself, mirroring
// the original's separate mode parameter vs. ctx->mode field).
func (d *Dispatcher) dispatchMode(tok *gohtml.Token, mode InsertionMode) ContentSignal {
	if tok.IsEmpty() || tok.Type == gohtml.TokenComment {
		return NoSignal
	}

	// Catch-all character insert. Grounded on original_source's quirk of
	// checking this ahead of the mode-specific dispatch below: only
	// InHeadMode (inside a <title>), TextMode (discarded — "remembering
	// script content is disabled"), and InBodyMode get special early
	// handling; every other mode falls through to the whitespace rules
	// and then the full mode switch.
	if tok.IsChar() {
		switch mode {
		case InHeadMode:
			if top := d.open.peek(); top != nil && top.is(tagtable.Title) {
				d.insertChar(tok)
				return NoSignal
			}
		case TextMode:
			return NoSignal
		case InBodyMode:
			d.insertChar(tok)
			return NoSignal
		}
	}

	if mode != InitialMode && tok.Type == gohtml.TokenDoctype {
		d.reportError(tok, mode, "doctype not expected")
		return NoSignal
	}

	switch mode {
	case InitialMode, BeforeHTMLMode, BeforeHeadMode:
		if tok.IsSpace() {
			return NoSignal
		}
	case InHeadMode, InBodyMode, AfterHeadMode:
		if tok.IsSpace() {
			d.insertChar(tok)
			return NoSignal
		}
	}

	switch mode {
	case InitialMode:
		if tok.Type == gohtml.TokenDoctype {
			d.mode = BeforeHTMLMode
			return NoSignal
		}
		return d.insertTokenSetMode(tok, BeforeHTMLMode)

	case BeforeHTMLMode:
		if tok.IsStartTag(tagtable.Html) {
			d.insertTag(tok)
			d.mode = BeforeHeadMode
			return NoSignal
		}
		d.insertTagName("html", false)
		d.mode = BeforeHeadMode
		return d.dispatchMode(tok, d.mode)

	case BeforeHeadMode:
		if tok.IsStartTag(tagtable.Head) {
			d.insertTag(tok)
			d.mode = InHeadMode
		} else {
			d.insertTagName("head", false)
			d.mode = InHeadMode
			return d.insertTokenSetMode(tok, InHeadMode)
		}
		return NoSignal

	case InHeadMode:
		switch {
		case tok.IsStartTag(tagtable.Title):
			d.insertTag(tok)
			return RCDATASignal
		case tok.IsEndTag(tagtable.Head):
			d.insertCloseTag(tok)
			d.mode = AfterHeadMode
			return NoSignal
		case isStartTagAny(tok, tagtable.Meta, tagtable.Base, tagtable.Basefont, tagtable.Bgsound, tagtable.Link):
			d.insertTag(tok)
			return NoSignal
		case tok.IsEndTag(tagtable.Title):
			// Title's own end tag is not specified by the living
			// standard, but original_source accepts it anyway.
			d.insertCloseTag(tok)
			return NoSignal
		case isStartTagAny(tok, tagtable.Noframes, tagtable.Style):
			d.insertTag(tok)
			d.origMode = d.mode
			d.mode = TextMode
			return RawtextSignal
		case tok.IsStartTag(tagtable.Noscript):
			d.mode = InHeadNoscriptMode
			d.insertTag(tok)
			d.reportError(tok, mode, "in head noscript")
			return NoSignal
		case tok.IsStartTag(tagtable.Script):
			d.origMode = d.mode
			d.mode = TextMode
			d.insertTag(tok)
			return ScriptDataSignal
		default:
			d.popElem(tagtable.Head)
			return d.insertTokenSetMode(tok, AfterHeadMode)
		}

	case TextMode:
		if tok.IsEndTag(tagtable.Script) {
			d.insertCloseTag(tok)
			d.mode = d.origMode
			return NoSignal
		}
		d.pop()
		d.mode = d.origMode
		return NoSignal

	case AfterHeadMode:
		switch {
		case tok.IsStartTag(tagtable.Html):
			return d.dispatchMode(tok, InBodyMode)
		case tok.IsStartTag(tagtable.Body):
			d.insertTag(tok)
			d.mode = InBodyMode
			return NoSignal
		default:
			d.insertTagName("body", false)
			d.mode = InBodyMode
			return d.dispatchMode(tok, d.mode)
		}

	case InSelectMode:
		if tok.IsEndTag(tagtable.Select) {
			if !d.hasElementInScope(tagtable.Select, SelectScope) {
				d.reportError(tok, mode, "no select tag")
				return NoSignal
			}
			d.popElem(tagtable.Select)
			d.resetInsertionMode()
			return NoSignal
		}
		if tok.IsStartTag(tagtable.Option) {
			if top := d.open.peek(); top != nil && top.is(tagtable.Option) {
				d.pop()
			}
			d.insertTag(tok)
			return NoSignal
		}
		if tok.IsStartTag(tagtable.Optgroup) {
			if top := d.open.peek(); top != nil && top.is(tagtable.Option) {
				d.pop()
			}
			if top := d.open.peek(); top != nil && top.is(tagtable.Optgroup) {
				d.pop()
			}
			d.insertTag(tok)
			return NoSignal
		}
		return NoSignal

	case InBodyMode:
		return d.dispatchInBody(tok, mode)

	case AfterBodyMode:
		if tok.IsEndTag(tagtable.Html) {
			d.insertCloseTag(tok)
			d.mode = AfterAfterBodyMode
		}
		return NoSignal

	case InTableMode:
		if tok.IsChar() {
			d.origMode = d.mode
			d.mode = InTableTextMode
			return NoSignal
		}
		if tok.IsEndTag(tagtable.Table) {
			if !d.hasElementInScope(tagtable.Table, TableScope) {
				d.reportError(tok, mode, "no table tag")
				return NoSignal
			}
			d.popElem(tagtable.Table)
			d.resetInsertionMode()
			return NoSignal
		}
		if isStartTagAny(tok, tagtable.Tbody, tagtable.Tfoot, tagtable.Thead) {
			d.clearToContext(tagtable.Table, tagtable.Template, tagtable.Html)
			d.insertTag(tok)
			d.mode = InTableBodyMode
			return NoSignal
		}
		if isStartTagAny(tok, tagtable.Td, tagtable.Th, tagtable.Tr) {
			d.clearToContext(tagtable.Table, tagtable.Template, tagtable.Html)
			d.insertTagName("tbody", false)
			d.mode = InTableBodyMode
			return d.dispatchMode(tok, d.mode)
		}
		return NoSignal

	case InTableBodyMode:
		if tok.IsStartTag(tagtable.Tr) {
			d.clearToContext(tagtable.Tbody, tagtable.Tfoot, tagtable.Thead, tagtable.Template, tagtable.Html)
			d.insertTag(tok)
			d.mode = InRowMode
			return NoSignal
		}
		if isStartTagAny(tok, tagtable.Th, tagtable.Td) {
			d.reportError(tok, mode, "unexpected th/td")
			d.clearToContext(tagtable.Tbody, tagtable.Tfoot, tagtable.Thead, tagtable.Template, tagtable.Html)
			d.insertTagName("tr", false)
			d.mode = InRowMode
			return NoSignal
		}
		return d.dispatchMode(tok, InTableMode)

	case InRowMode:
		if isStartTagAny(tok, tagtable.Th, tagtable.Td) {
			d.clearToContext(tagtable.Tr, tagtable.Template, tagtable.Html)
			d.insertTag(tok)
			d.mode = InCellMode
			return NoSignal
		}
		if isEndTagAny(tok, tagtable.Tr) {
			if !d.hasElementInScope(tagtable.Tr, TableScope) {
				d.reportError(tok, mode, "no tr")
				return NoSignal
			}
			d.clearToContext(tagtable.Tr, tagtable.Template, tagtable.Html)
			d.pop()
			d.mode = InTableBodyMode
			return NoSignal
		}
		if isStartTagAny(tok, tagtable.Caption, tagtable.Col, tagtable.Colgroup,
			tagtable.Tbody, tagtable.Tfoot, tagtable.Thead, tagtable.Tr) ||
			isEndTagAny(tok, tagtable.Table) {
			if !d.hasElementInScope(tagtable.Tr, TableScope) {
				d.reportError(tok, mode, "no tr")
				return NoSignal
			}
			d.clearToContext(tagtable.Tr, tagtable.Template, tagtable.Html)
			if top := d.open.peek(); top == nil || !top.is(tagtable.Tr) {
				d.reportError(tok, mode, "no tr")
				return NoSignal
			}
			d.pop()
			d.mode = InTableBodyMode
			return d.dispatchMode(tok, d.mode)
		}
		return NoSignal

	case InCellMode:
		if isEndTagAny(tok, tagtable.Th, tagtable.Td) {
			if !d.hasElementInScope(tok.TagID, TableScope) {
				d.reportError(tok, mode, "no th/td (in cell)")
				return NoSignal
			}
			d.generateImpliedEndTags(tagtable.CustomTag)
			if !d.open.peek().is(tok.TagID) {
				d.reportError(tok, mode, "no th/td in cell 2")
				return NoSignal
			}
			d.popElem(tok.TagID)
			d.mode = InRowMode
			return NoSignal
		}
		if isStartTagAny(tok, tagtable.Caption, tagtable.Col, tagtable.Colgroup,
			tagtable.Tbody, tagtable.Td, tagtable.Tfoot, tagtable.Th, tagtable.Thead, tagtable.Tr) {
			if !d.hasElementInScope(tagtable.Td, TableScope) && !d.hasElementInScope(tagtable.Th, TableScope) {
				d.reportError(tok, mode, "no th/td (in cell)")
				return NoSignal
			}
			d.closeCell(tok, mode)
			return d.dispatchMode(tok, d.mode)
		}
		if isEndTagAny(tok, tagtable.Body, tagtable.Caption, tagtable.Col, tagtable.Colgroup, tagtable.Html) {
			d.reportError(tok, mode, "parse error")
			return NoSignal
		}
		if isEndTagAny(tok, tagtable.Table, tagtable.Tbody, tagtable.Tfoot, tagtable.Thead, tagtable.Tr) {
			if !d.hasElementInScope(tok.TagID, TableScope) {
				d.reportError(tok, mode, "parse error")
				return NoSignal
			}
			d.closeCell(tok, mode)
			return d.dispatchMode(tok, d.mode)
		}
		return d.dispatchMode(tok, InBodyMode)

	case InTableTextMode:
		if tok.IsSpace() {
			d.insertChar(tok)
			return NoSignal
		}
		d.mode = d.origMode
		return d.dispatchMode(tok, d.mode)

	case AfterAfterBodyMode:
		return NoSignal

	case InHeadNoscriptMode:
		// Both branches of the original pop unconditionally regardless
		// of whether the token was </noscript> — a carried-through
		// simplification, not a distinct rule per branch.
		d.pop()
		d.mode = InHeadMode
		return NoSignal
	}

	// InCaption, InColumnGroup, InSelectInTable, InTemplate, InFrameset,
	// AfterFrameset, and AfterAfterFrameset have no handling at all in
	// original_source: they fall to its default case, which only logs
	// unhandled start tags and otherwise does nothing. Carried through
	// unchanged rather than filled in, matching spec.md's table/frameset
	// Non-goals.
	return NoSignal
}

// dispatchInBody implements IMODE_IN_BODY, the largest single insertion
// mode in original_source/dispatch.c.
func (d *Dispatcher) dispatchInBody(tok *gohtml.Token, mode InsertionMode) ContentSignal {
	if tok.IsStartTag(tagtable.Html) || tok.IsStartTag(tagtable.Body) {
		d.reportError(tok, mode, "did not expect")
		return NoSignal
	}
	if tok.IsStartTag(tagtable.Frameset) {
		d.reportError(tok, mode, "did not expect")
		return NoSignal
	}
	if tok.IsStartTag(tagtable.Select) {
		// "We might be here temporarily even though our mode is
		// different than 'in body'" — this branch consults d.mode
		// directly (the real current mode), not the mode parameter.
		switch d.mode {
		case InTableMode, InCaptionMode, InTableBodyMode, InRowMode, InCellMode:
			d.insertTag(tok)
			d.mode = InSelectInTableMode
		default:
			d.insertTag(tok)
			d.mode = InSelectMode
		}
		return NoSignal
	}
	if isStartTagAny(tok, tagtable.Base, tagtable.Basefont, tagtable.Bgsound, tagtable.Link,
		tagtable.Meta, tagtable.Noframes, tagtable.Script, tagtable.Style, tagtable.Template,
		tagtable.Title) || tok.IsEndTag(tagtable.Template) {
		return d.dispatchMode(tok, InHeadMode)
	}
	if tok.IsEndTag(tagtable.Body) || tok.IsEndTag(tagtable.Html) {
		if !d.isOpen(tagtable.Body) {
			d.reportError(tok, mode, "body was not open")
			return NoSignal
		}
		if other := d.isOpenOtherThan(
			tagtable.Dd, tagtable.Dt, tagtable.Li, tagtable.Optgroup, tagtable.Option,
			tagtable.P, tagtable.Rb, tagtable.Rp, tagtable.Rt, tagtable.Rtc,
			tagtable.Tbody, tagtable.Td, tagtable.Tfoot, tagtable.Th, tagtable.Thead,
			tagtable.Tr, tagtable.Body, tagtable.Html,
		); other != tagtable.CustomTag {
			d.reportError(tok, mode, "elem is still open")
			return NoSignal
		}
		if tok.IsEndTag(tagtable.Body) {
			d.insertCloseTag(tok)
			return NoSignal
		}
		return d.dispatchMode(tok, AfterBodyMode)
	}
	if isStartTagAny(tok,
		tagtable.Address, tagtable.Article, tagtable.Aside, tagtable.Blockquote,
		tagtable.Center, tagtable.Details, tagtable.Dialog, tagtable.Dir, tagtable.Div,
		tagtable.Dl, tagtable.Fieldset, tagtable.Figcaption, tagtable.Figure,
		tagtable.Footer, tagtable.Header, tagtable.Hgroup, tagtable.Main, tagtable.Menu,
		tagtable.Nav, tagtable.Ol, tagtable.P, tagtable.Section, tagtable.Summary, tagtable.Ul,
	) {
		if !d.checkP(tok, mode) {
			return NoSignal
		}
		d.insertTag(tok)
		return NoSignal
	}
	if tok.Type == gohtml.TokenEndTag {
		if meta := tagtable.Lookup(tok.TagID); meta != nil && meta.Flags.Has(tagtable.Heading) {
			if !d.hasElementInScope(tok.TagID, AnyScope) {
				d.reportError(tok, mode, "no heading tag")
				return NoSignal
			}
			d.generateImpliedEndTags(tok.TagID)
			if !d.open.peek().is(tok.TagID) {
				d.reportError(tok, mode, "did not match")
				return NoSignal
			}
			d.popElem(tok.TagID)
			return NoSignal
		}
	}
	if tok.IsStartTag(tagtable.Math) {
		d.insertForeignElement(tok, MathMLNamespace)
		return NoSignal
	}
	if tok.IsStartTag(tagtable.Svg) {
		d.insertForeignElement(tok, SVGNamespace)
		return NoSignal
	}
	if tok.IsStartTag(tagtable.A) {
		d.insertTag(tok)
		return NoSignal
	}
	if tok.Type == gohtml.TokenStartTag {
		if meta := tagtable.Lookup(tok.TagID); meta != nil && meta.Flags.Has(tagtable.Format) {
			d.insertTag(tok)
			return NoSignal
		}
	}
	if tok.IsStartTag(tagtable.Table) {
		if !d.checkP(tok, mode) {
			return NoSignal
		}
		d.insertTag(tok)
		d.mode = InTableMode
		return NoSignal
	}
	if tok.IsStartTag(tagtable.Nobr) {
		// TODO adoption agency etc: original_source stubs <nobr> start
		// tags out entirely, logging and otherwise ignoring them.
		d.reportError(tok, mode, "TODO nobr")
		return NoSignal
	}
	if tok.Type == gohtml.TokenEndTag {
		meta := tagtable.Lookup(tok.TagID)
		if (meta != nil && meta.Flags.Has(tagtable.Format)) || tok.TagID == tagtable.A || tok.TagID == tagtable.Nobr {
			d.adoptionAgency(tok)
			d.insertCloseTag(tok)
			return NoSignal
		}
	}
	if isStartTagAny(tok, tagtable.Applet, tagtable.Marquee, tagtable.Object) {
		// TODO: applet/marquee/object are stubbed in original_source;
		// never inserted, only logged.
		d.reportError(tok, mode, "TODO applet, marquee, object")
		return NoSignal
	}
	if tok.IsEndTag(tagtable.Br) {
		// TODO: </br> is stubbed in original_source the same way.
		d.reportError(tok, mode, "TODO end for br")
		return NoSignal
	}
	if isStartTagAny(tok, tagtable.Area, tagtable.Br, tagtable.Embed, tagtable.Img, tagtable.Keygen, tagtable.Wbr) {
		d.insertTag(tok)
		return NoSignal
	}
	if tok.Type == gohtml.TokenStartTag {
		if meta := tagtable.Lookup(tok.TagID); meta != nil && meta.Flags.Has(tagtable.Heading) {
			if !d.checkP(tok, mode) {
				return NoSignal
			}
			if top := d.open.peek(); top != nil {
				if m := tagtable.Lookup(top.TagID); m != nil && m.Flags.Has(tagtable.Heading) {
					d.reportError(tok, mode, "was not H tag")
					d.pop()
				}
			}
			d.insertTag(tok)
			return NoSignal
		}
	}
	if isStartTagAny(tok, tagtable.Pre, tagtable.Listing) {
		if !d.checkP(tok, mode) {
			return NoSignal
		}
		// TODO: ignore a leading newline at the start of pre/listing
		// blocks, per the living standard; original_source does not.
		d.insertTag(tok)
		return NoSignal
	}
	if tok.IsStartTag(tagtable.Form) {
		if !d.checkP(tok, mode) {
			return NoSignal
		}
		d.insertTag(tok)
		return NoSignal
	}
	if tok.IsStartTag(tagtable.Button) {
		if d.hasElementInScope(tagtable.Button, AnyScope) {
			d.reportError(tok, mode, "already button")
			d.generateImpliedEndTags(tagtable.CustomTag)
			d.popElem(tagtable.Button)
		}
		d.insertTag(tok)
		return NoSignal
	}
	if isEndTagAny(tok,
		tagtable.Address, tagtable.Article, tagtable.Aside, tagtable.Blockquote,
		tagtable.Button, tagtable.Center, tagtable.Details, tagtable.Dialog, tagtable.Dir,
		tagtable.Div, tagtable.Dl, tagtable.Fieldset, tagtable.Figcaption, tagtable.Figure,
		tagtable.Footer, tagtable.Header, tagtable.Hgroup, tagtable.Listing, tagtable.Main,
		tagtable.Menu, tagtable.Nav, tagtable.Ol, tagtable.Pre, tagtable.Section,
		tagtable.Summary, tagtable.Ul,
	) {
		if !d.hasElementInScope(tok.TagID, AnyScope) {
			d.reportError(tok, mode, "did not match")
			return NoSignal
		}
		d.generateImpliedEndTags(tagtable.CustomTag)
		if top := d.open.peek(); top == nil || top.NS != HTMLNamespace || !top.is(tok.TagID) {
			d.reportError(tok, mode, "did not match")
			return NoSignal
		}
		d.popElem(tok.TagID)
		return NoSignal
	}
	if isEndTagAny(tok, tagtable.Dd, tagtable.Dt) {
		if !d.hasElementInScope(tok.TagID, AnyScope) {
			d.reportError(tok, mode, "no dd/dt tag")
			return NoSignal
		}
		d.generateImpliedEndTags(tok.TagID)
		if !d.open.peek().is(tok.TagID) {
			d.reportError(tok, mode, "did not match")
			return NoSignal
		}
		d.popElem(tok.TagID)
		return NoSignal
	}
	if isStartTagAny(tok, tagtable.Dd, tagtable.Dt) {
		sz := d.open.depth()
		for {
			e := d.open.peekAt(sz)
			if e.isAny(tagtable.Dd, tagtable.Dt) {
				d.generateImpliedEndTags(e.TagID)
				if !d.open.peek().is(e.TagID) {
					d.reportError(tok, mode, "did not match")
					return NoSignal
				}
				d.pop()
				break
			}
			if meta := tagtable.Lookup(e.TagID); meta != nil && meta.Flags.Has(tagtable.Special) &&
				!e.isAny(tagtable.Address, tagtable.Div, tagtable.P) {
				break
			}
			if sz > 1 {
				sz--
				continue
			}
			d.reportError(tok, mode, "should not happen")
			return NoSignal
		}
		if !d.checkP(tok, mode) {
			return NoSignal
		}
		d.insertTag(tok)
		return NoSignal
	}
	if tok.IsStartTag(tagtable.Plaintext) {
		if !d.checkP(tok, mode) {
			return NoSignal
		}
		d.insertTag(tok)
		return PlaintextSignal
	}
	if tok.IsEndTag(tagtable.P) {
		if !d.hasElementInScope(tagtable.P, ButtonScope) {
			d.reportError(tok, mode, "no p tag")
			d.insertTagName("p", false)
		}
		if !d.closePElement() {
			d.reportError(tok, mode, "closing p")
			return NoSignal
		}
		return NoSignal
	}
	if tok.IsEndTag(tagtable.Li) {
		if !d.hasElementInScope(tagtable.Li, ListItemScope) {
			d.reportError(tok, mode, "no li tag")
			return NoSignal
		}
		d.generateImpliedEndTags(tagtable.Li)
		if !d.open.peek().is(tagtable.Li) {
			d.reportError(tok, mode, "no match")
			return NoSignal
		}
		d.popElem(tagtable.Li)
		return NoSignal
	}
	if tok.IsStartTag(tagtable.Li) {
		for {
			top := d.open.peek()
			if top.is(tagtable.Li) {
				d.generateImpliedEndTags(tagtable.Li)
				if !d.open.peek().is(tagtable.Li) {
					d.reportError(tok, mode, "was not li tag")
					return NoSignal
				}
				d.pop()
				break
			}
			if meta := tagtable.Lookup(top.TagID); meta != nil && meta.Flags.Has(tagtable.Special) &&
				!top.isAny(tagtable.Address, tagtable.Div, tagtable.P) {
				break
			}
			d.pop()
		}
		if !d.checkP(tok, mode) {
			return NoSignal
		}
		d.insertTag(tok)
		return NoSignal
	}

	// "Any other start/end tag": an ordinary start tag is always
	// inserted; an end tag walks down the stack for a same-namespace,
	// same-name node, generating implied end tags and popping everything
	// above it once found, bailing out with a parse error if it meets a
	// TAG_SPECIAL element first.
	if tok.Type == gohtml.TokenStartTag {
		d.insertTag(tok)
		return NoSignal
	}
	if tok.Type == gohtml.TokenEndTag {
		node := d.open.peek()
		for {
			if node == nil {
				d.reportError(tok, mode, "no prev node")
				return NoSignal
			}
			if node.NS == HTMLNamespace && node.is(tok.TagID) {
				d.generateImpliedEndTags(tok.TagID)
				if top := d.open.peek(); top == nil || node.TagID != top.TagID {
					d.reportError(tok, mode, "end tag did not match")
					return NoSignal
				}
				for d.open.depth() >= 1 {
					if node == d.open.peek() {
						d.pop()
						break
					}
					d.pop()
				}
				return NoSignal
			}
			if meta := tagtable.Lookup(node.TagID); meta != nil && meta.Flags.Has(tagtable.Special) {
				d.reportError(tok, mode, "was special")
				return NoSignal
			}
			node = d.open.prev(node)
		}
	}

	return NoSignal
}
