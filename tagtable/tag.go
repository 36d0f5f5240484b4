// Package tagtable is the immutable tag-metadata lookup table described in
// spec.md §4.4: a 1024-bucket table keyed by a multiplicative hash (prime
// 104729, modulo 2^20, then modulo 1024) with linear probing on collision.
//
// Grounded on original_source/tagmap.c and original_source/tagmap.h.
package tagtable

// Flags is a bitset of tag metadata flags (original_source/tagmap.h's
// TAG_FLAGS enum).
type Flags uint8

const (
	// Empty marks a void element: it never pushes onto the open-elements
	// stack and its end() callback fires immediately after begin().
	Empty Flags = 1 << iota
	// OptionalClose marks a tag whose closing tag may be omitted.
	OptionalClose
	// Block is a CSS block-level hint surfaced to consumers.
	Block
	// Special marks a tag that participates in scope/fostering rules.
	Special
	// Heading marks h1-h6.
	Heading
	// Format marks a formatting element (a, b, i, em, ...).
	Format
)

// Has reports whether f has all of the given bits set.
func (f Flags) Has(bit Flags) bool {
	return f&bit == bit
}

// ID identifies a known tag by its slot in the table, or CustomTag for any
// name that did not resolve to a known tag.
type ID int

// CustomTag is the sentinel ID returned for unrecognized tag names.
const CustomTag ID = -1

// Tag is a single table entry: a canonical lowercase name and its flags.
type Tag struct {
	Name  string
	Flags Flags
}

const (
	tableSize = 1024
	prime     = 104729
	modulo    = 1 << 20
)

var table [tableSize]*Tag

func hash(name string) int {
	addr := 0
	for i := 0; i < len(name); i++ {
		addr += int(name[i])
		addr *= prime
		addr %= modulo
	}
	return addr % tableSize
}

// insert places name/flags into the table using the same linear-probing
// algorithm ID uses to find it again. Called only from init().
func insert(name string, flags Flags) ID {
	addr := hash(name)
	i := addr % tableSize
	for table[i] != nil {
		addr++
		i = addr % tableSize
	}
	table[i] = &Tag{Name: name, Flags: flags}
	return ID(i)
}

// TagID returns the slot index for name, or CustomTag if name is not a
// known tag. Deterministic: calling TagID repeatedly for the same name
// always returns the same value (spec.md P4).
func TagID(name string) ID {
	addr := hash(name)
	i := addr % tableSize
	if table[i] == nil {
		return CustomTag
	}
	for table[i] != nil && table[i].Name != name {
		addr++
		i = addr % tableSize
	}
	if table[i] == nil {
		return CustomTag
	}
	return ID(i)
}

// Lookup returns the table entry for id, or nil if id is CustomTag or out
// of range.
func Lookup(id ID) *Tag {
	if id < 0 || int(id) >= tableSize {
		return nil
	}
	return table[id]
}
