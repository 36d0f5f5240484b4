package treebuilder

import "github.com/tleino/gohtml/tagtable"

// InsertionMode is one state of FSM B, per spec.md §4.2.
type InsertionMode int

const (
	InitialMode InsertionMode = iota
	BeforeHTMLMode
	BeforeHeadMode
	InHeadMode
	InHeadNoscriptMode
	AfterHeadMode
	InBodyMode
	TextMode
	InTableMode
	InTableTextMode
	InCaptionMode
	InColumnGroupMode
	InTableBodyMode
	InRowMode
	InCellMode
	InSelectMode
	InSelectInTableMode
	InTemplateMode
	AfterBodyMode
	InFramesetMode
	AfterFramesetMode
	AfterAfterBodyMode
	AfterAfterFramesetMode
)

var modeNames = map[InsertionMode]string{
	InitialMode:            "Initial",
	BeforeHTMLMode:         "BeforeHTML",
	BeforeHeadMode:         "BeforeHead",
	InHeadMode:             "InHead",
	InHeadNoscriptMode:     "InHeadNoscript",
	AfterHeadMode:          "AfterHead",
	InBodyMode:             "InBody",
	TextMode:               "Text",
	InTableMode:            "InTable",
	InTableTextMode:        "InTableText",
	InCaptionMode:          "InCaption",
	InColumnGroupMode:      "InColumnGroup",
	InTableBodyMode:        "InTableBody",
	InRowMode:              "InRow",
	InCellMode:             "InCell",
	InSelectMode:           "InSelect",
	InSelectInTableMode:    "InSelectInTable",
	InTemplateMode:         "InTemplate",
	AfterBodyMode:          "AfterBody",
	InFramesetMode:         "InFrameset",
	AfterFramesetMode:      "AfterFrameset",
	AfterAfterBodyMode:     "AfterAfterBody",
	AfterAfterFramesetMode: "AfterAfterFrameset",
}

func (m InsertionMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "Unknown"
}

// resetInsertionMode walks the open-elements stack top-down, matching each
// element against a fixed table, per spec.md §4.2. headElem, set once
// <head> has been inserted this parse, disambiguates the HTML fallback
// between BeforeHeadMode and AfterHeadMode.
func (d *Dispatcher) resetInsertionMode() {
	for i := d.open.depth(); i >= 1; i-- {
		e := d.open.peekAt(i)
		last := i == 1

		switch {
		case e.isAny(tagtable.Td, tagtable.Th) && !last:
			d.mode = InCellMode
			return
		case e.is(tagtable.Tr):
			d.mode = InRowMode
			return
		case e.isAny(tagtable.Tbody, tagtable.Thead, tagtable.Tfoot):
			d.mode = InTableBodyMode
			return
		case e.is(tagtable.Caption):
			d.mode = InCaptionMode
			return
		case e.is(tagtable.Table):
			d.mode = InTableMode
			return
		case e.is(tagtable.Template):
			d.mode = InTemplateMode
			return
		case e.is(tagtable.Head) && !last:
			d.mode = InHeadMode
			return
		case e.is(tagtable.Body):
			d.mode = InBodyMode
			return
		case e.is(tagtable.Frameset):
			d.mode = InFramesetMode
			return
		case e.is(tagtable.Html):
			if d.headElem == nil {
				d.mode = BeforeHeadMode
			} else {
				d.mode = AfterHeadMode
			}
			return
		}

		if last {
			d.mode = InBodyMode
			return
		}
	}
	d.mode = InBodyMode
}
