// Package gohtml implements a streaming, permissive HTML tokenizer and
// tree-construction dispatcher, grounded on the tleino/purehtml C library
// (original_source/). Parse wires the two into the single entry point
// described in spec.md §6: one token at a time from the tokenizer feeds
// the dispatcher, which drives begin/end callbacks against whatever tree
// the caller is building.
package gohtml

import (
	"io"
	"log/slog"

	"github.com/tleino/gohtml/tokenizer"
	"github.com/tleino/gohtml/treebuilder"
)

// Options configures Parse. The zero value is ready to use: a nil Logger
// falls back to slog.Default(), mirroring pages.Handler's Logger field.
type Options struct {
	// Logger receives one structured record per recoverable parse error
	// (spec.md §7 class 1). Nil uses slog.Default().
	Logger *slog.Logger

	// Begin is called when a node is created, in document order: for an
	// element, when its start tag (or implied start tag) is processed;
	// for character data, once a run of CHAR tokens is flushed.
	Begin func(*treebuilder.Node)

	// End is called when a node is fully closed: for an element, when
	// its end tag is processed, it is popped as part of another
	// element's close, or (for void elements) immediately after Begin;
	// for character data, immediately after Begin.
	End func(*treebuilder.Node)
}

// Parse reads r to completion, driving opts.Begin/opts.End for every node
// per spec.md §4.2-§4.3. It returns the parse errors collected along the
// way via errors.Join (spec.md §7 class 1 errors are never fatal; Parse
// always runs to EOF), or nil if none were reported.
//
// Grounded on original_source's top-level driver loop (tokenize() feeding
// dispatch() token by token) and on pages.Handler's nil-logger default.
func Parse(r io.Reader, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var joined errorCollector
	reporter := &joinReporter{collector: &joined, logger: logger}

	tz := tokenizer.New(r, reporter)
	d := treebuilder.New(reporter)

	begin := opts.Begin
	if begin == nil {
		begin = func(*treebuilder.Node) {}
	}
	end := opts.End
	if end == nil {
		end = func(*treebuilder.Node) {}
	}

	for {
		tok, ok := tz.Next()
		if !ok {
			break
		}
		switch d.Dispatch(tok, begin, end) {
		case treebuilder.RCDATASignal:
			tz.SetContentModel(tokenizer.RCDATAContentModel)
		case treebuilder.RawtextSignal:
			tz.SetContentModel(tokenizer.RawtextContentModel)
		case treebuilder.ScriptDataSignal:
			tz.SetContentModel(tokenizer.ScriptDataContentModel)
		case treebuilder.PlaintextSignal:
			tz.SetContentModel(tokenizer.PlaintextContentModel)
		}
	}
	d.Finish()

	return joined.join()
}

// joinReporter adapts an ErrorReporter into something that both logs (via
// slog, matching pages.go's logger.ErrorContext call shape) and collects
// every ParseError for the caller to inspect via errors.Join, matching
// chtml's ComponentError/multierror pattern described in SPEC_FULL.md's
// AMBIENT STACK.
type joinReporter struct {
	collector *errorCollector
	logger    *slog.Logger
}

func (r *joinReporter) ReportParseError(pe *ParseError) {
	r.collector.add(pe)
	r.logger.Warn("parse error",
		slog.Int("line", pe.Line),
		slog.Int("column", pe.Column),
		slog.String("code", pe.Code),
		slog.String("msg", pe.Msg),
	)
}
