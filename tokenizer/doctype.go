package tokenizer

import "github.com/tleino/gohtml"

// doctype sub-states in original_source/tokenize.c stop at the name: there
// is no STATE_AFTER_DOCTYPE_PUBLIC_KEYWORD/SYSTEM family, so public and
// system identifiers are never decomposed. quirksFromName mirrors the
// living standard's fallback: a doctype is force-quirks unless its name is
// exactly "html" (case already folded by DoctypeNameState).
func quirksFromName(name string) bool {
	return name != "html"
}

// buildDoctype finalizes a gohtml.Doctype from the accumulated name buffer.
// An empty name (BEFORE_DOCTYPE_NAME saw '>' immediately) reports
// force-quirks per the standard's missing-doctype-name recovery.
func buildDoctype(name string) gohtml.Doctype {
	if name == "" {
		return gohtml.Doctype{Quirks: true}
	}
	return gohtml.Doctype{Name: name, Quirks: quirksFromName(name)}
}
