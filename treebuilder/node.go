// Package treebuilder implements FSM B, the insertion-mode-driven
// dispatcher described in spec.md §4.2: it consumes tokens from the
// tokenizer, maintains an open-elements stack, and emits begin(node)/
// end(node) callbacks.
//
// Grounded on original_source/dispatch.c, node.c/h, elem.c/h, cdata.c/h,
// and ostack.c/h.
package treebuilder

import (
	"github.com/tleino/gohtml/attrtable"
	"github.com/tleino/gohtml/tagtable"
)

// Namespace mirrors original_source/elem.h's enum elem_ns. Only NS_HTML,
// NS_MATHML, and NS_SVG are reachable: the dispatcher pushes a namespaced
// element for <math>/<svg> (spec.md's foreign-content non-goal stops
// there) and never produces XLink/XML/XMLNS namespaced elements itself.
type Namespace int

const (
	HTMLNamespace Namespace = iota
	MathMLNamespace
	SVGNamespace
)

// NodeKind is the tagged union described in spec.md §3: ELEM, CDATA, or
// DOCUMENT.
type NodeKind int

const (
	ElemNode NodeKind = iota
	CDATANode
	DocumentNode
)

// Node is a tree node exposed to consumers via the Begin/End callbacks.
// The optional tree links are carried (parent/first/last/next/prev per
// spec.md's Node record) even though the dispatcher itself never walks
// them — only push/pop order and the node payload matter to FSM B.
type Node struct {
	Kind  NodeKind
	Elem  *Elem
	CData *CData

	Parent, FirstChild, LastChild, Next, Prev *Node
}

// Elem is the element payload described in spec.md §3: tagid, name,
// attribute list, namespace, and a back-reference to its Node.
type Elem struct {
	TagID tagtable.ID
	Name  string
	Attr  *attrtable.Attr
	NS    Namespace
	Node  *Node
}

// CDataType distinguishes text from comment character data.
type CDataType int

const (
	TextCData CDataType = iota
	CommentCData
)

// CData is the character-data payload described in spec.md §3: a type tag,
// a growable string, and a back-reference to its Node.
type CData struct {
	Type CDataType
	Data string
	Node *Node
}

func newElemNode(e *Elem) *Node {
	n := &Node{Kind: ElemNode, Elem: e}
	e.Node = n
	return n
}

func newCDataNode(c *CData) *Node {
	n := &Node{Kind: CDATANode, CData: c}
	c.Node = n
	return n
}

func newDocumentNode() *Node {
	return &Node{Kind: DocumentNode}
}
