package treebuilder

// cdataCreate allocates a fresh CData accumulator, mirroring
// original_source/cdata.c's cdata_create.
func cdataCreate(typ CDataType) *CData {
	return &CData{Type: typ}
}

// add appends s to the accumulator, mirroring cdata_add's byte-by-byte
// str_add loop (a plain string concatenation is the idiomatic Go
// equivalent of that growable buffer).
func (c *CData) add(s string) {
	c.Data += s
}
