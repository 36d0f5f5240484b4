package tokenizer

import (
	"bufio"
	"io"
	"strings"

	"github.com/tleino/gohtml"
	"github.com/tleino/gohtml/attrtable"
	"github.com/tleino/gohtml/tagtable"
)

// Tokenizer is FSM A. Each Next call reads as many bytes as it takes to
// complete one token and returns it; Next does not return between bytes of
// an incomplete token, and reports false only at end of input.
//
// Grounded on original_source/tokenize.c/tokenize.h's struct tokenizer;
// the three persistent scratch buffers (name, attrib_name, attrib_value)
// and the 16-byte markup-declaration peek buffer are carried over as-is.
type Tokenizer struct {
	src *bufio.Reader

	name        buffer
	attribName  buffer
	attribValue buffer

	state       State
	returnState State

	line   int
	column int

	token gohtml.Token

	buf    [16]byte
	bufLen int
	match  string

	reporter gohtml.ErrorReporter

	pendingReconsume bool
	reconsumeByte    byte
}

// New returns a Tokenizer reading from r in the DATA content model. A nil
// reporter falls back to gohtml.DiscardReporter.
func New(r io.Reader, reporter gohtml.ErrorReporter) *Tokenizer {
	if reporter == nil {
		reporter = gohtml.DiscardReporter
	}
	return &Tokenizer{
		src:      bufio.NewReader(r),
		state:    DataState,
		line:     1,
		column:   0,
		reporter: reporter,
	}
}

// SetContentModel is the dispatcher's back-channel override (spec.md §4.2):
// the next Next() call begins in the state matching m. returnState is left
// as it is.
func (t *Tokenizer) SetContentModel(m ContentModel) {
	t.state = m.state()
}

// State reports the tokenizer's current state, chiefly for tests.
func (t *Tokenizer) State() State {
	return t.state
}

func (t *Tokenizer) readByte() (byte, bool) {
	if t.pendingReconsume {
		t.pendingReconsume = false
		return t.reconsumeByte, true
	}
	c, err := t.src.ReadByte()
	if err != nil {
		return 0, false
	}
	return c, true
}

func (t *Tokenizer) reconsume(c byte, state State) {
	t.enterState(state)
	t.pendingReconsume = true
	t.reconsumeByte = c
}

// Next advances the tokenizer until a token is ready or the input is
// exhausted. The returned token is only valid until the next call to Next;
// callers that need to retain it must copy it (mirrors the "used" transfer
// described in spec.md §3).
func (t *Tokenizer) Next() (*gohtml.Token, bool) {
	for {
		c, ok := t.readByte()
		if !ok {
			return nil, false
		}

		if c == '\n' {
			t.line++
			t.column = 0
		} else {
			t.column++
		}

		// Global pre-filter (spec.md §4.1): control bytes other than LF/TAB
		// are silently dropped.
		if isControl(c) && c != '\n' && c != '\t' {
			continue
		}

		switch t.state {
		case BeforeAttributeNameState, AfterAttributeNameState, BeforeAttributeValueState:
			if isSpace(c) {
				continue
			}
		}

		if tok, ready := t.step(c); ready {
			return tok, true
		}
	}
}

func (t *Tokenizer) reportErr(code string) {
	t.reporter.ReportParseError(&gohtml.ParseError{
		Line:   t.line,
		Column: t.column,
		Code:   code,
	})
}

// step processes a single prefiltered byte against the current state,
// returning a ready token when one is emitted. This mirrors
// original_source/tokenize.c's tokenize() body state by state.
func (t *Tokenizer) step(c byte) (*gohtml.Token, bool) {
	switch t.state {

	// ---- Data ----
	case DataState:
		switch c {
		case '<':
			t.enterState(TagOpenState)
			return nil, false
		case '&':
			t.enterStateReturn(CharacterReferenceState, DataState)
			return nil, false
		default:
			return t.emitChar(DataState, c), true
		}

	case TagOpenState:
		switch {
		case c == '/':
			t.enterState(EndTagOpenState)
		case c == '!':
			t.enterState(MarkupDeclarationOpenState)
		case isAlpha(c):
			t.token = gohtml.Token{Type: gohtml.TokenStartTag, TagID: tagtable.CustomTag}
			t.reconsume(c, TagNameState)
		default:
			t.reportErr("invalid-first-character-of-tag-name")
			t.reconsume(c, DataState)
		}
		return nil, false

	case EndTagOpenState:
		switch {
		case c == '>':
			t.reportErr("missing-end-tag-name")
			t.enterState(DataState)
		case isAlpha(c):
			t.token = gohtml.Token{Type: gohtml.TokenEndTag, TagID: tagtable.CustomTag}
			t.reconsume(c, TagNameState)
		default:
			t.reportErr("invalid-first-character-of-tag-name")
			t.reconsume(c, BogusCommentState)
		}
		return nil, false

	case MarkupDeclarationOpenState:
		t.stepMarkupDeclarationOpen(c)
		return nil, false

	case TagNameState:
		if isSpace(c) {
			t.finishTagName()
			t.enterState(BeforeAttributeNameState)
			return nil, false
		}
		if isUpper(c) {
			c = toLower(c)
		}
		if c == '>' {
			t.finishTagName()
			return t.emit(DataState), true
		}
		if c == '/' {
			t.finishTagName()
			t.enterState(SelfClosingStartTagState)
			return nil, false
		}
		t.name.addByte(c)
		return nil, false

	case BeforeAttributeNameState:
		switch {
		case c == '/' || c == '>':
			t.reconsume(c, AfterAttributeNameState)
		case c == '=':
			t.reportErr("unexpected-equals-sign-before-attribute-name")
			t.reconsume(c, AttributeNameState)
		default:
			t.reconsume(c, AttributeNameState)
		}
		return nil, false

	case AttributeNameState:
		switch {
		case isSpace(c) || c == '/' || c == '>':
			t.reconsume(c, AfterAttributeNameState)
		case c == '=':
			t.enterState(BeforeAttributeValueState)
		default:
			if c == '"' || c == '\'' || c == '<' {
				t.reportErr("unexpected-character-in-attribute-name")
			}
			t.attribName.addByte(toLower(c))
		}
		return nil, false

	case AfterAttributeNameState:
		t.flushAttr()
		switch c {
		case '/':
			t.enterState(SelfClosingStartTagState)
		case '=':
			t.enterState(BeforeAttributeValueState)
		case '>':
			return t.emit(DataState), true
		default:
			t.reconsume(c, AttributeNameState)
		}
		return nil, false

	case BeforeAttributeValueState:
		switch c {
		case '"':
			t.enterState(AttributeValueQuotedState)
		case '\'':
			t.enterState(AttributeValueSquotedState)
		case '>':
			t.reportErr("missing-attribute-value")
			return t.emit(DataState), true
		default:
			t.enterState(AttributeValueState)
			t.reconsume(c, AttributeValueState)
		}
		return nil, false

	case AttributeValueQuotedState:
		if c == '"' {
			t.enterState(AfterAttributeValueQuotedState)
		} else {
			t.attribValue.addByte(c)
		}
		return nil, false

	case AttributeValueSquotedState:
		if c == '\'' {
			t.enterState(AfterAttributeValueQuotedState)
		} else {
			t.attribValue.addByte(c)
		}
		return nil, false

	case AttributeValueState:
		switch {
		case isSpace(c):
			t.enterState(BeforeAttributeNameState)
		case c == '&':
			t.enterStateReturn(CharacterReferenceState, AttributeValueState)
		case c == '>':
			t.flushAttr()
			return t.emit(DataState), true
		case c == '"' || c == '\'' || c == '<' || c == '=' || c == '`':
			t.reportErr("unexpected-character-in-unquoted-attribute-value")
			t.attribValue.addByte(c)
		default:
			t.attribValue.addByte(c)
		}
		return nil, false

	case AfterAttributeValueQuotedState:
		switch {
		case isSpace(c):
			t.enterState(BeforeAttributeNameState)
		case c == '/':
			t.enterState(SelfClosingStartTagState)
		case c == '>':
			t.flushAttr()
			return t.emit(DataState), true
		default:
			t.reportErr("missing-whitespace-between-attributes")
			t.reconsume(c, BeforeAttributeNameState)
		}
		return nil, false

	case SelfClosingStartTagState:
		if c == '>' {
			t.flushAttr()
			t.token.SelfClosing = true
			return t.emit(DataState), true
		}
		t.reportErr("unexpected-solidus-in-tag")
		t.enterState(BeforeAttributeNameState)
		return nil, false

	// ---- Doctype ----
	case DoctypeState:
		switch {
		case isSpace(c):
			t.enterState(BeforeDoctypeNameState)
		case c == '>':
			t.reconsume(c, BeforeDoctypeNameState)
		default:
			t.reportErr("missing-whitespace-before-doctype-name")
			t.reconsume(c, BeforeDoctypeNameState)
		}
		return nil, false

	case BeforeDoctypeNameState:
		switch {
		case isSpace(c):
		case c == '>':
			t.reportErr("missing-doctype-name")
			tok := t.emitDoctype(DataState)
			return tok, true
		default:
			t.enterState(DoctypeNameState)
			t.name.addByte(toLower(c))
		}
		return nil, false

	case DoctypeNameState:
		switch {
		case isSpace(c):
			t.enterState(AfterDoctypeNameState)
		case c == '>':
			return t.emitDoctype(DataState), true
		default:
			t.name.addByte(toLower(c))
		}
		return nil, false

	case AfterDoctypeNameState:
		switch {
		case isSpace(c):
		case c == '>':
			return t.emitDoctype(DataState), true
		default:
			t.enterState(BogusDoctypeState)
		}
		return nil, false

	case BogusDoctypeState:
		if c == '>' {
			return t.emitDoctype(DataState), true
		}
		return nil, false

	// ---- Comment ----
	case CommentStartState:
		switch c {
		case '-':
			t.enterState(CommentStartDashState)
		case '>':
			t.reportErr("abrupt-closing-of-empty-comment")
			return t.emit(DataState), true
		default:
			t.reconsume(c, CommentState)
		}
		return nil, false

	case CommentStartDashState:
		switch c {
		case '-':
			t.enterState(CommentEndState)
		case '>':
			t.reportErr("abrupt-closing-of-empty-comment")
			t.enterState(DataState)
		default:
			t.reconsume(c, CommentState)
		}
		return nil, false

	case CommentState:
		switch c {
		case '<':
			t.enterState(CommentLessThanState)
		case '-':
			t.enterState(CommentEndDashState)
		default:
			t.token.Data += string(c)
		}
		return nil, false

	case CommentLessThanState:
		switch c {
		case '!':
			t.enterState(CommentLessThanBangState)
		case '<':
		default:
			t.reconsume(c, CommentState)
		}
		return nil, false

	case CommentLessThanBangState:
		if c == '-' {
			t.enterState(CommentLessThanBangDashState)
		} else {
			t.reconsume(c, CommentState)
		}
		return nil, false

	case CommentLessThanBangDashState:
		if c == '-' {
			t.enterState(CommentLessThanBangDashDashState)
		} else {
			t.reconsume(c, CommentEndDashState)
		}
		return nil, false

	case CommentLessThanBangDashDashState:
		if c == '>' {
			t.reconsume(c, CommentEndState)
		} else {
			t.reportErr("nested-comment")
			t.reconsume(c, CommentEndState)
		}
		return nil, false

	case CommentEndDashState:
		if c == '-' {
			t.enterState(CommentEndState)
		} else {
			t.reconsume(c, CommentState)
		}
		return nil, false

	case CommentEndState:
		switch c {
		case '>':
			tok := t.emit(DataState)
			return tok, true
		case '!':
			t.enterState(CommentEndBangState)
		case '-':
		default:
			t.reconsume(c, CommentState)
		}
		return nil, false

	case CommentEndBangState:
		switch c {
		case '-':
			t.enterState(CommentEndDashState)
		case '>':
			t.reportErr("incorrectly-closed-comment")
			tok := t.emit(DataState)
			return tok, true
		default:
			t.reconsume(c, CommentState)
		}
		return nil, false

	case BogusCommentState:
		if c == '>' {
			return t.emit(DataState), true
		}
		if c != 0 {
			t.token.Data += string(c)
		}
		return nil, false

	// ---- Character reference (stub per spec.md §4.1/§9 Open Question 3) ----
	case CharacterReferenceState:
		switch {
		case isAlnum(c):
			t.reconsume(c, NamedCharRefState)
		case c == '#':
			t.enterState(NumCharRefState)
		default:
			t.enterState(t.returnState)
			t.reconsume(c, t.returnState)
		}
		return nil, false

	case NamedCharRefState, NumCharRefState:
		t.enterState(t.returnState)
		return nil, false

	// ---- RCDATA ----
	case RCDATAState:
		switch c {
		case '&':
			t.enterStateReturn(CharacterReferenceState, RCDATAState)
		case '<':
			t.enterState(RCDATALessThanState)
		default:
			return t.emitChar(RCDATAState, c), true
		}
		return nil, false

	case RCDATALessThanState:
		if c == '/' {
			t.enterState(RCDATAEndTagOpenState)
		} else {
			t.reconsume(c, RCDATAState)
			return t.emitChar(RCDATAState, '<'), true
		}
		return nil, false

	case RCDATAEndTagOpenState:
		if isAlpha(c) {
			t.token = gohtml.Token{Type: gohtml.TokenEndTag, TagID: tagtable.CustomTag}
			t.reconsume(c, RCDATAEndTagNameState)
		} else {
			t.reconsume(c, RCDATAState)
			return t.emitRaw2Char(RCDATAState, '<', '/'), true
		}
		return nil, false

	case RCDATAEndTagNameState:
		switch {
		case isSpace(c):
			t.enterState(BeforeAttributeNameState)
		case c == '/':
			t.token.SelfClosing = true
		case c == '>':
			return t.finishEndTagName(DataState), true
		case isAlpha(c):
			t.name.addByte(toLower(c))
		default:
			t.reconsume(c, RCDATAState)
			return t.emitAbortedEndTag(RCDATAState), true
		}
		return nil, false

	// ---- Rawtext ----
	case RawtextState:
		switch c {
		case '<':
			t.enterState(RawtextLessThanState)
		default:
			return t.emitChar(RawtextState, c), true
		}
		return nil, false

	case RawtextLessThanState:
		if c == '/' {
			t.enterState(RawtextEndTagOpenState)
		} else {
			t.reconsume(c, RawtextState)
			return t.emitChar(RawtextState, '<'), true
		}
		return nil, false

	case RawtextEndTagOpenState:
		if isAlpha(c) {
			t.token = gohtml.Token{Type: gohtml.TokenEndTag, TagID: tagtable.CustomTag}
			t.reconsume(c, RawtextEndTagNameState)
		} else {
			t.reconsume(c, RawtextState)
			return t.emitRaw2Char(RawtextState, '<', '/'), true
		}
		return nil, false

	case RawtextEndTagNameState:
		switch {
		case isSpace(c):
			t.enterState(BeforeAttributeNameState)
		case c == '/':
		case c == '>':
			return t.finishEndTagName(DataState), true
		case isAlpha(c):
			t.name.addByte(toLower(c))
		default:
			t.reconsume(c, RawtextState)
		}
		return nil, false

	// ---- Script data ----
	case ScriptDataState:
		if c == '<' {
			t.enterState(ScriptDataLessThanState)
		} else {
			return t.emitChar(ScriptDataState, c), true
		}
		return nil, false

	case ScriptDataLessThanState:
		switch c {
		case '/':
			t.enterState(ScriptDataEndTagOpenState)
		case '!':
			t.enterState(ScriptDataEscStartState)
		default:
			t.reconsume(c, ScriptDataState)
		}
		return nil, false

	case ScriptDataEndTagOpenState:
		if isAlpha(c) {
			t.token = gohtml.Token{Type: gohtml.TokenEndTag, TagID: tagtable.CustomTag}
			t.reconsume(c, ScriptDataEndTagNameState)
		} else {
			t.reconsume(c, ScriptDataState)
		}
		return nil, false

	case ScriptDataEndTagNameState:
		switch {
		case isSpace(c):
			t.enterState(BeforeAttributeNameState)
		case c == '>':
			if !strings.EqualFold(t.name.String(), "script") {
				t.reconsume(c, ScriptDataState)
				return t.emitChar(ScriptDataState, '<'), true
			}
			return t.finishEndTagName(DataState), true
		case isAlpha(c):
			t.name.addByte(toLower(c))
		default:
			t.reconsume(c, ScriptDataState)
			return t.emitChar(ScriptDataState, '<'), true
		}
		return nil, false

	case ScriptDataEscStartState:
		if c == '-' {
			t.enterState(ScriptDataEscStartDashState)
		} else {
			t.reconsume(c, ScriptDataState)
		}
		return nil, false

	case ScriptDataEscStartDashState:
		if c == '-' {
			t.enterState(ScriptDataEscDash2State)
		} else {
			t.reconsume(c, ScriptDataState)
		}
		return nil, false

	case ScriptDataEscDashState:
		switch c {
		case '-':
			return t.emitChar(ScriptDataEscDash2State, c), true
		case '<':
			t.enterState(ScriptDataEscLessThanState)
		case '>':
			return t.emitChar(ScriptDataState, c), true
		default:
			return t.emitChar(ScriptDataEscState, c), true
		}
		return nil, false

	case ScriptDataEscDash2State:
		switch c {
		case '-':
			return t.emitChar(ScriptDataEscDash2State, c), true
		case '<':
			t.enterState(ScriptDataEscLessThanState)
		case '>':
			return t.emitChar(ScriptDataState, c), true
		default:
			return t.emitChar(ScriptDataEscState, c), true
		}
		return nil, false

	case ScriptDataEscLessThanState:
		switch {
		case c == '/':
			t.enterState(ScriptDataEscEndTagOpenState)
		case isAlpha(c):
			t.enterState(ScriptDataDblEscStartState)
			t.reconsume(c, ScriptDataDblEscStartState)
		default:
			t.reconsume(c, ScriptDataEscState)
		}
		return nil, false

	case ScriptDataEscEndTagOpenState:
		if isAlpha(c) {
			t.reconsume(c, ScriptDataEscEndTagNameState)
		} else {
			t.reconsume(c, ScriptDataEscState)
		}
		return nil, false

	case ScriptDataEscEndTagNameState:
		if isSpace(c) {
			t.enterState(BeforeAttributeNameState)
		} else {
			t.reconsume(c, ScriptDataEscState)
		}
		return nil, false

	case ScriptDataDblEscStartState:
		switch {
		case isSpace(c) || c == '/' || c == '>':
			t.enterState(ScriptDataEscState)
		case isAlpha(c):
		default:
			t.reconsume(c, ScriptDataEscState)
		}
		return nil, false

	case ScriptDataEscState:
		switch c {
		case '-':
			t.enterState(ScriptDataEscDashState)
		case '<':
			t.enterState(ScriptDataEscLessThanState)
		default:
			return t.emitChar(ScriptDataEscState, c), true
		}
		return nil, false

	// ---- Plaintext ----
	case PlaintextState:
		return t.emitChar(PlaintextState, c), true

	default:
		t.reportErr("unhandled-state")
		return nil, false
	}
}

func (t *Tokenizer) enterState(s State) {
	switch s {
	case ScriptDataEndTagNameState, RCDATAEndTagNameState, RawtextEndTagNameState, TagNameState, DoctypeState:
		t.name.reset()
	case BeforeAttributeValueState:
		t.attribValue.reset()
	case BeforeAttributeNameState:
		if !t.attribName.empty() {
			t.flushAttr()
		}
	case AttributeNameState:
		t.attribName.reset()
	case MarkupDeclarationOpenState:
		t.match = ""
		t.bufLen = 0
	case CommentStartState, BogusCommentState, CommentState:
		t.token = gohtml.Token{Type: gohtml.TokenComment}
	}
	t.state = s
}

func (t *Tokenizer) enterStateReturn(s, ret State) {
	t.enterState(s)
	t.returnState = ret
}

func (t *Tokenizer) finishTagName() {
	t.resolveTagID(t.name.String())
}

func (t *Tokenizer) resolveTagID(name string) {
	t.token.Name = name
	t.token.TagID = tagtable.TagID(name)
}

func (t *Tokenizer) flushAttr() {
	if t.attribName.empty() {
		return
	}
	attrtable.Set(&t.token.Attr, t.attribName.String(), t.attribValue.String())
}

func (t *Tokenizer) emit(next State) *gohtml.Token {
	t.token.EndLine = t.line
	t.token.EndColumn = t.column
	t.enterState(next)
	tok := t.token
	return &tok
}

func (t *Tokenizer) emitChar(next State, c byte) *gohtml.Token {
	tok := &gohtml.Token{Type: gohtml.TokenChar, Data: string(c), EndLine: t.line, EndColumn: t.column}
	t.enterState(next)
	return tok
}

func (t *Tokenizer) emitRaw2Char(next State, a, b byte) *gohtml.Token {
	tok := &gohtml.Token{Type: gohtml.TokenChar, Data: string(a) + string(b), EndLine: t.line, EndColumn: t.column}
	t.enterState(next)
	return tok
}

func (t *Tokenizer) finishEndTagName(next State) *gohtml.Token {
	t.resolveTagID(t.name.String())
	return t.emit(next)
}

func (t *Tokenizer) emitAbortedEndTag(next State) *gohtml.Token {
	tok := &gohtml.Token{Type: gohtml.TokenChar, Data: "</" + t.name.String(), EndLine: t.line, EndColumn: t.column}
	t.enterState(next)
	return tok
}

func (t *Tokenizer) emitDoctype(next State) *gohtml.Token {
	dt := buildDoctype(t.name.String())
	tok := &gohtml.Token{Type: gohtml.TokenDoctype, Doctype: dt, EndLine: t.line, EndColumn: t.column}
	t.enterState(next)
	return tok
}

// stepMarkupDeclarationOpen implements the seven-byte prefix match against
// "--", "DOCTYPE", "[CDATA[" described in spec.md §4.1.
func (t *Tokenizer) stepMarkupDeclarationOpen(c byte) {
	if t.bufLen < len(t.buf) {
		t.buf[t.bufLen] = c
	}
	t.bufLen++

	if t.match == "" {
		switch c {
		case '-':
			t.match = "--"
			return
		case 'D':
			t.match = "DOCTYPE"
			return
		case '[':
			t.match = "[CDATA["
			return
		default:
			t.abortMarkupDeclaration()
			return
		}
	}

	idx := t.bufLen - 1
	if idx >= len(t.match) || t.buf[idx] != t.match[idx] {
		t.abortMarkupDeclaration()
		return
	}
	if t.bufLen == len(t.match) {
		switch t.match[0] {
		case '-':
			t.enterState(CommentStartState)
		case 'D':
			t.enterState(DoctypeState)
		case '[':
			t.reportErr("cdata-in-html-content")
			t.enterState(BogusCommentState)
		}
	}
}

func (t *Tokenizer) abortMarkupDeclaration() {
	t.reportErr("incorrectly-opened-comment")
	t.enterState(BogusCommentState)
}

func isControl(c byte) bool {
	return c < 0x20 || c == 0x7f
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	default:
		return false
	}
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlnum(c byte) bool {
	return isAlpha(c) || (c >= '0' && c <= '9')
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

func toLower(c byte) byte {
	if isUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}
