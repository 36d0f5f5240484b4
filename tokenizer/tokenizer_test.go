package tokenizer

import (
	"strings"
	"testing"

	"github.com/tleino/gohtml"
	"github.com/tleino/gohtml/attrtable"
)

func allTokens(t *testing.T, src string) []gohtml.Token {
	t.Helper()
	tk := New(strings.NewReader(src), nil)
	var out []gohtml.Token
	for {
		tok, ok := tk.Next()
		if !ok {
			break
		}
		out = append(out, *tok)
	}
	return out
}

func TestDataAndStartTag(t *testing.T) {
	toks := allTokens(t, "<p>hi</p>")
	if len(toks) == 0 {
		t.Fatal("expected tokens")
	}
	if toks[0].Type != gohtml.TokenStartTag || toks[0].Name != "p" {
		t.Fatalf("first token = %+v, want start tag p", toks[0])
	}
	var sawChar, sawEnd bool
	for _, tok := range toks {
		if tok.Type == gohtml.TokenChar && tok.Data == "h" {
			sawChar = true
		}
		if tok.Type == gohtml.TokenEndTag && tok.Name == "p" {
			sawEnd = true
		}
	}
	if !sawChar || !sawEnd {
		t.Fatalf("missing char or end tag in %+v", toks)
	}
}

func TestAttributes(t *testing.T) {
	toks := allTokens(t, `<img src=foobar rel="zap">`)
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1: %+v", len(toks), toks)
	}
	tag := toks[0]
	if tag.Name != "img" {
		t.Fatalf("name = %q, want img", tag.Name)
	}
	if got := attrtable.Get(tag.Attr, "src"); got == nil || got.Value != "foobar" {
		t.Fatalf("src attr = %+v, want foobar", got)
	}
	if got := attrtable.Get(tag.Attr, "rel"); got == nil || got.Value != "zap" {
		t.Fatalf("rel attr = %+v, want zap", got)
	}
}

func TestDoctype(t *testing.T) {
	toks := allTokens(t, "<!DOCTYPE html>")
	if len(toks) != 1 || toks[0].Type != gohtml.TokenDoctype {
		t.Fatalf("got %+v, want single doctype token", toks)
	}
	if toks[0].Doctype.Name != "html" {
		t.Fatalf("doctype name = %q, want html", toks[0].Doctype.Name)
	}
	if toks[0].Doctype.Quirks {
		t.Fatalf("doctype html should not be quirks")
	}
}

func TestComment(t *testing.T) {
	toks := allTokens(t, "<!-- hello -->")
	if len(toks) != 1 || toks[0].Type != gohtml.TokenComment {
		t.Fatalf("got %+v, want single comment token", toks)
	}
	if toks[0].Data != " hello " {
		t.Fatalf("comment data = %q, want %q", toks[0].Data, " hello ")
	}
}

func TestAbruptClosingOfEmptyComment(t *testing.T) {
	var got []*gohtml.ParseError
	reporter := reporterFunc(func(pe *gohtml.ParseError) { got = append(got, pe) })
	tk := New(strings.NewReader("<!-->"), reporter)
	for {
		if _, ok := tk.Next(); !ok {
			break
		}
	}
	if len(got) != 1 || got[0].Code != gohtml.ErrAbruptClosingOfEmptyComment {
		t.Fatalf("errors = %+v, want one abrupt-closing-of-empty-comment", got)
	}
}

func TestRCDATAContentModelForTitle(t *testing.T) {
	tk := New(strings.NewReader("Hi &amp; bye</title>"), nil)
	tk.SetContentModel(RCDATAContentModel)
	var gotEndTag bool
	for {
		tok, ok := tk.Next()
		if !ok {
			break
		}
		if tok.Type == gohtml.TokenEndTag && tok.Name == "title" {
			gotEndTag = true
		}
	}
	if !gotEndTag {
		t.Fatal("expected </title> end tag while tokenizing RCDATA content")
	}
}

func TestScriptDataEndsAtScriptEndTag(t *testing.T) {
	tk := New(strings.NewReader(`var x="<";</script>`), nil)
	tk.SetContentModel(ScriptDataContentModel)
	var sawEnd bool
	for {
		tok, ok := tk.Next()
		if !ok {
			break
		}
		if tok.Type == gohtml.TokenEndTag && tok.Name == "script" {
			sawEnd = true
		}
	}
	if !sawEnd {
		t.Fatal("expected </script> end tag")
	}
}

type reporterFunc func(*gohtml.ParseError)

func (f reporterFunc) ReportParseError(pe *gohtml.ParseError) { f(pe) }
