package gohtml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tleino/gohtml/treebuilder"
)

func labelNode(n *treebuilder.Node) string {
	switch n.Kind {
	case treebuilder.ElemNode:
		return n.Elem.Name
	case treebuilder.CDATANode:
		return "#text:" + n.CData.Data
	default:
		return "#document"
	}
}

func TestParseBuildsBalancedEventStream(t *testing.T) {
	var begins, ends []string

	err := Parse(strings.NewReader("<p>hi</p>"), Options{
		Begin: func(n *treebuilder.Node) { begins = append(begins, labelNode(n)) },
		End:   func(n *treebuilder.Node) { ends = append(ends, labelNode(n)) },
	})
	require.NoError(t, err)

	require.Equal(t, []string{"html", "head", "body", "p", "#text:hi"}, begins)
	require.Equal(t, []string{"head", "#text:hi", "p", "body", "html"}, ends)
}

func TestParseReportsRecoverableErrors(t *testing.T) {
	// A bogus markup declaration recovers into a comment rather than
	// aborting the parse, per spec.md §7 class 1.
	err := Parse(strings.NewReader("<![if]><p>ok</p>"), Options{})
	require.Error(t, err)

	var gotText bool
	err = Parse(strings.NewReader("<![if]><p>ok</p>"), Options{
		Begin: func(n *treebuilder.Node) {
			if n.Kind == treebuilder.CDATANode && n.CData.Data == "ok" {
				gotText = true
			}
		},
	})
	require.Error(t, err)
	require.True(t, gotText, "parse should continue past the recoverable error")
}

func TestParseNilCallbacksAreOptional(t *testing.T) {
	err := Parse(strings.NewReader("<div>hello</div>"), Options{})
	require.NoError(t, err)
}
