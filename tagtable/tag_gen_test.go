package tagtable

import (
	"testing"

	"golang.org/x/net/html/atom"
)

// TestTagListAgreesWithAtom cross-checks tagList's names against
// golang.org/x/net/html/atom's independently-maintained HTML tag table, per
// SPEC_FULL.md's DOMAIN STACK: atom is never consulted at runtime (the
// hash table and its prime-104729/mod-2^20/mod-1024 linear-probing lookup
// remain this package's own), only used here to confirm table-generation
// time that every name tagList claims to know really is a standard HTML
// element name and not a typo.
func TestTagListAgreesWithAtom(t *testing.T) {
	for _, tt := range tagList {
		if atom.Lookup([]byte(tt.name)) == 0 {
			t.Errorf("tagList contains %q, which golang.org/x/net/html/atom does not recognize as an HTML tag", tt.name)
		}
	}
}

func TestGeneratedTableMatchesTagList(t *testing.T) {
	for _, tt := range tagList {
		id := TagID(tt.name)
		if id == CustomTag {
			t.Fatalf("TagID(%q) = CustomTag, want a resolved slot", tt.name)
		}
		entry := Lookup(id)
		if entry == nil {
			t.Fatalf("Lookup(%d) = nil for tag %q", id, tt.name)
		}
		if entry.Name != tt.name {
			t.Fatalf("slot %d holds %q, want %q", id, entry.Name, tt.name)
		}
		if entry.Flags != tt.flags {
			t.Errorf("%s: flags = %v, want %v", tt.name, entry.Flags, tt.flags)
		}
	}
}

func TestTagIDDeterministic(t *testing.T) {
	for _, tt := range tagList {
		first := TagID(tt.name)
		second := TagID(tt.name)
		if first != second {
			t.Fatalf("TagID(%q) not deterministic: %d != %d", tt.name, first, second)
		}
	}
}

func TestTagIDUnknownTagIsCustom(t *testing.T) {
	for _, name := range []string{"frobnicate", "x-widget", "unknown123"} {
		if id := TagID(name); id != CustomTag {
			t.Errorf("TagID(%q) = %d, want CustomTag", name, id)
		}
	}
}

func TestNamedIDsResolve(t *testing.T) {
	named := map[string]ID{
		"html": Html, "body": Body, "p": P, "div": Div, "table": Table,
		"h1": H1, "h6": H6, "br": Br, "a": A,
	}
	for name, id := range named {
		if id == CustomTag {
			t.Errorf("named ID for %q is unset (CustomTag)", name)
		}
		if got := Lookup(id).Name; got != name {
			t.Errorf("named ID for %q resolves to %q", name, got)
		}
	}
}
