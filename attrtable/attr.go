// Package attrtable is the attribute-name metadata table and the attribute
// linked-list model described in spec.md §4.3 and §4.4.
//
// Grounded on original_source/attr.c and original_source/attr.h: the hash
// table reuses tagtable's prime/modulo multiplicative hash over a smaller
// global/event flag set, and Attr mirrors struct attr's singly linked list
// with case-insensitive lookup and last-write-wins semantics.
package attrtable

// Flags is a bitset of attribute metadata flags (original_source/attr.h's
// ATTR_FLAG enum).
type Flags uint8

const (
	// Global marks an attribute valid on any element (id, class, style, ...).
	Global Flags = 1 << iota
	// Event marks an event-handler attribute (onclick, onload, ...).
	Event
)

// ID identifies a known attribute name by its slot in the table, or
// CustomAttr for any name that did not resolve to a known attribute.
type ID int

// CustomAttr is the sentinel ID returned for unrecognized attribute names.
const CustomAttr ID = -1

// attrMeta is a single table entry: a canonical lowercase name and its flags.
type attrMeta struct {
	Name  string
	Flags Flags
}

const (
	tableSize = 1024
	prime     = 104729
	modulo    = 1 << 20
)

var table [tableSize]*attrMeta

func hash(name string) int {
	addr := 0
	for i := 0; i < len(name); i++ {
		addr += int(name[i])
		addr *= prime
		addr %= modulo
	}
	return addr % tableSize
}

func insert(name string, flags Flags) ID {
	addr := hash(name)
	i := addr % tableSize
	for table[i] != nil {
		addr++
		i = addr % tableSize
	}
	table[i] = &attrMeta{Name: name, Flags: flags}
	return ID(i)
}

// NameID returns the slot index for name, or CustomAttr if name is not a
// known attribute.
func NameID(name string) ID {
	addr := hash(name)
	i := addr % tableSize
	if table[i] == nil {
		return CustomAttr
	}
	for table[i] != nil && table[i].Name != name {
		addr++
		i = addr % tableSize
	}
	if table[i] == nil {
		return CustomAttr
	}
	return ID(i)
}

// LookupFlags returns the flags registered for a known attribute name, or 0
// if name is not in the table.
func LookupFlags(name string) Flags {
	id := NameID(name)
	if id == CustomAttr {
		return 0
	}
	return table[id].Flags
}

var knownAttrs = []struct {
	name  string
	flags Flags
}{
	{"id", Global},
	{"class", Global},
	{"style", Global},
	{"title", Global},
	{"lang", Global},
	{"dir", Global},
	{"hidden", Global},
	{"tabindex", Global},
	{"href", 0},
	{"src", 0},
	{"alt", 0},
	{"type", 0},
	{"name", 0},
	{"value", 0},
	{"placeholder", 0},
	{"disabled", 0},
	{"checked", 0},
	{"selected", 0},
	{"rel", 0},
	{"target", 0},
	{"colspan", 0},
	{"rowspan", 0},
	{"onclick", Event},
	{"onload", Event},
	{"onchange", Event},
	{"onsubmit", Event},
	{"onmouseover", Event},
	{"onkeydown", Event},
	{"onfocus", Event},
	{"onblur", Event},
}

func init() {
	for _, a := range knownAttrs {
		insert(a.name, a.flags)
	}
}

// Attr is one node of an element's attribute list, mirroring
// original_source/attr.h's struct attr: a singly linked list so repeated
// attribute sets on the open-elements stack share no backing array and
// cost nothing to build incrementally while tokenizing.
type Attr struct {
	Name  string
	Value string
	Next  *Attr
}

// Get returns the first node in the list headed by head whose name matches
// name case-insensitively, or nil if none does.
func Get(head *Attr, name string) *Attr {
	for a := head; a != nil; a = a.Next {
		if a.Name != "" && equalFold(a.Name, name) {
			return a
		}
	}
	return nil
}

// Has reports whether the list headed by head contains name.
func Has(head *Attr, name string) bool {
	return Get(head, name) != nil
}

// Set inserts name/value into the list headed by *head, or overwrites the
// value of an existing node with a case-insensitively matching name.
// Mirrors attr_set's last-write-wins semantics: the HTML tokenizer must
// keep the first occurrence of a duplicate attribute per the living
// standard, so callers wanting that behavior must check Has before calling
// Set rather than relying on Set itself to reject duplicates.
func Set(head **Attr, name, value string) {
	if a := Get(*head, name); a != nil {
		a.Name = name
		a.Value = value
		return
	}
	*head = &Attr{Name: name, Value: value, Next: *head}
}

// Len reports how many nodes are in the list headed by head.
func Len(head *Attr) int {
	n := 0
	for a := head; a != nil; a = a.Next {
		n++
	}
	return n
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
