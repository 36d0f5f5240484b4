package gohtml

import (
	"github.com/tleino/gohtml/attrtable"
	"github.com/tleino/gohtml/tagtable"
)

// TokenType distinguishes the six token shapes spec.md §3 mandates.
type TokenType int

const (
	TokenEmpty TokenType = iota
	TokenChar
	TokenDoctype
	TokenStartTag
	TokenEndTag
	TokenComment
)

func (t TokenType) String() string {
	switch t {
	case TokenEmpty:
		return "EMPTY"
	case TokenChar:
		return "CHAR"
	case TokenDoctype:
		return "DOCTYPE"
	case TokenStartTag:
		return "START_TAG"
	case TokenEndTag:
		return "END_TAG"
	case TokenComment:
		return "COMMENT"
	default:
		return "UNKNOWN"
	}
}

// Doctype carries the decomposed parts of a DOCTYPE token, grounded on
// original_source's doctype.c/doctype.h three-field layout (name, public
// identifier, system identifier) plus the force-quirks flag the living
// standard attaches to malformed doctypes.
type Doctype struct {
	Name     string
	PublicID string
	SystemID string
	Quirks   bool
}

// Token is the tagged union described in spec.md §3: a single shape
// selected by Type, with the unused fields left at their zero value.
//
// Token owns its string/attribute allocations until Used is set, at which
// point ownership passes to whatever the dispatcher built from it (mirrors
// original_source/token.h's `used` flag and the "alloc control is passed
// fwd" comment). Once Used is true the tokenizer must not continue
// appending to the buffers that produced this token's fields.
type Token struct {
	Type TokenType

	// TagID, Name, Attr, SelfClosing are populated for START_TAG/END_TAG.
	TagID       tagtable.ID
	Name        string
	Attr        *attrtable.Attr
	SelfClosing bool

	// Data holds the accumulated text for CHAR and COMMENT tokens.
	Data string

	// Doctype is populated for DOCTYPE tokens.
	Doctype Doctype

	// Used marks that ownership of Name/Attr/Data has been transferred to
	// a consumer; the tokenizer must treat the token as read-only past
	// this point.
	Used bool

	// EndLine and EndColumn locate the 1-based source line/column at which
	// the token completed.
	EndLine   int
	EndColumn int
}

// Reset clears t to the EMPTY token, ready for reuse.
func (t *Token) Reset() {
	t.Type = TokenEmpty
	t.TagID = tagtable.CustomTag
	t.Name = ""
	t.Attr = nil
	t.SelfClosing = false
	t.Data = ""
	t.Doctype = Doctype{}
	t.Used = false
	t.EndLine = 0
	t.EndColumn = 0
}

// IsEmpty reports whether t is the no-op EMPTY token.
func (t *Token) IsEmpty() bool {
	return t.Type == TokenEmpty
}

// IsChar reports whether t is a CHAR token.
func (t *Token) IsChar() bool {
	return t.Type == TokenChar
}

// IsSpace reports whether t is a CHAR token whose first byte is ASCII
// whitespace, mirroring original_source/token.h's TOKEN_IS_SPACE macro.
func (t *Token) IsSpace() bool {
	return t.Type == TokenChar && len(t.Data) > 0 && isSpace(t.Data[0])
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	default:
		return false
	}
}

// IsStartEnd reports whether t is a START_TAG or END_TAG token.
func (t *Token) IsStartEnd() bool {
	return t.Type == TokenStartTag || t.Type == TokenEndTag
}

// IsStartTag reports whether t is a START_TAG token naming id.
func (t *Token) IsStartTag(id tagtable.ID) bool {
	return t.Type == TokenStartTag && t.TagID == id
}

// IsEndTag reports whether t is an END_TAG token naming id.
func (t *Token) IsEndTag(id tagtable.ID) bool {
	return t.Type == TokenEndTag && t.TagID == id
}

// IsTag reports whether t is a START_TAG or END_TAG token naming id,
// regardless of direction.
func (t *Token) IsTag(id tagtable.ID) bool {
	return t.IsStartEnd() && t.TagID == id
}
