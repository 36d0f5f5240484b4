package treebuilder

import (
	"github.com/tleino/gohtml"
	"github.com/tleino/gohtml/attrtable"
	"github.com/tleino/gohtml/tagtable"
)

// elemFromToken builds an Elem from a START_TAG/END_TAG token, adopting
// its attribute list directly (ownership transfer mirrors
// original_source/elem.c's elem_create_from_token, which copies only the
// tagid/name pointer and leaves attr list construction to the caller via
// token_set_tag_attr during tokenization).
func elemFromToken(tok *gohtml.Token) *Elem {
	return &Elem{
		TagID: tok.TagID,
		Name:  tok.Name,
		Attr:  tok.Attr,
	}
}

// elemCreate synthesizes an element that did not come from a token, e.g.
// the implied <html>/<head>/<body> elements. Mirrors elem_create's use of
// a throwaway start-tag token.
func elemCreate(name string) *Elem {
	return &Elem{
		TagID: tagtable.TagID(name),
		Name:  name,
	}
}

// hasAttr reports whether e carries the named attribute.
func (e *Elem) hasAttr(name string) bool {
	return attrtable.Has(e.Attr, name)
}

// attrValue returns the value of the named attribute, or "" if absent.
func (e *Elem) attrValue(name string) string {
	if a := attrtable.Get(e.Attr, name); a != nil {
		return a.Value
	}
	return ""
}

// isEmpty reports whether e's tag is a void element per tagtable.Empty.
func (e *Elem) isEmpty() bool {
	meta := tagtable.Lookup(e.TagID)
	return meta != nil && meta.Flags.Has(tagtable.Empty)
}

// is reports whether e's tag matches id. Nil-safe: a nil Elem matches
// nothing, mirroring the open-elements stack never actually running empty
// at these call sites (original_source dereferences ostack_peek()
// unguarded on the same assumption).
func (e *Elem) is(id tagtable.ID) bool {
	return e != nil && e.TagID == id
}

// isAny reports whether e's tag matches any of ids.
func (e *Elem) isAny(ids ...tagtable.ID) bool {
	if e == nil {
		return false
	}
	for _, id := range ids {
		if e.TagID == id {
			return true
		}
	}
	return false
}
