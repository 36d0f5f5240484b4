package xmlconv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tleino/gohtml"
)

func TestBuilderRoundTripsSimpleDocument(t *testing.T) {
	b := NewBuilder()

	err := gohtml.Parse(strings.NewReader("<p>hi <b>there</b></p>"), gohtml.Options{
		Begin: b.Begin,
		End:   b.End,
	})
	require.NoError(t, err)

	var buf strings.Builder
	_, err = WriteIndent(b.Document(), &buf)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "<html>")
	require.Contains(t, out, "<p>")
	require.Contains(t, out, "<b>")
	require.Contains(t, out, "there")
}

func TestBuilderCopiesAttributesInSourceOrder(t *testing.T) {
	b := NewBuilder()

	err := gohtml.Parse(strings.NewReader(`<div id="x" class="y">z</div>`), gohtml.Options{
		Begin: b.Begin,
		End:   b.End,
	})
	require.NoError(t, err)

	var buf strings.Builder
	_, err = WriteIndent(b.Document(), &buf)
	require.NoError(t, err)

	out := buf.String()
	idIdx := strings.Index(out, `id="x"`)
	classIdx := strings.Index(out, `class="y"`)
	require.GreaterOrEqual(t, idIdx, 0)
	require.GreaterOrEqual(t, classIdx, 0)
	require.Less(t, idIdx, classIdx)
}
