package treebuilder

import "github.com/tleino/gohtml/tagtable"

// Scope selects a terminator set for hasElementInScope, per spec.md §4.2.
type Scope int

const (
	AnyScope Scope = iota
	ListItemScope
	ButtonScope
	TableScope
	SelectScope
)

func anyScopeTerminators() []tagtable.ID {
	return []tagtable.ID{
		tagtable.Applet, tagtable.Caption, tagtable.Html, tagtable.Table,
		tagtable.Td, tagtable.Th, tagtable.Marquee, tagtable.Object,
		tagtable.Template,
	}
}

func terminators(scope Scope) []tagtable.ID {
	switch scope {
	case ListItemScope:
		return append(anyScopeTerminators(), tagtable.Ol, tagtable.Ul)
	case ButtonScope:
		return append(anyScopeTerminators(), tagtable.Button)
	case TableScope:
		return []tagtable.ID{tagtable.Html, tagtable.Table, tagtable.Template}
	default:
		return anyScopeTerminators()
	}
}

// hasElementInScope scans the stack top-to-bottom and reports whether
// target appears before any of scope's terminator set. SelectScope is
// special-cased per spec.md: "any tag not in {OPTGROUP, OPTION}
// terminates."
func (d *Dispatcher) hasElementInScope(target tagtable.ID, scope Scope) bool {
	if scope == SelectScope {
		for i := d.open.depth(); i >= 1; i-- {
			e := d.open.peekAt(i)
			if e.is(target) {
				return true
			}
			if !e.isAny(tagtable.Optgroup, tagtable.Option) {
				return false
			}
		}
		return false
	}

	term := terminators(scope)
	for i := d.open.depth(); i >= 1; i-- {
		e := d.open.peekAt(i)
		if e.is(target) {
			return true
		}
		for _, t := range term {
			if e.is(t) {
				return false
			}
		}
	}
	return false
}

// clearToContext pops elements until the top is one of allowed, per
// spec.md §4.2's table-fostering clear_to_context.
func (d *Dispatcher) clearToContext(allowed ...tagtable.ID) {
	for d.open.depth() > 0 {
		top := d.open.peek()
		for _, id := range allowed {
			if top.is(id) {
				return
			}
		}
		d.pop()
	}
}

var impliedEndTagSet = []tagtable.ID{
	tagtable.Dd, tagtable.Dt, tagtable.Li, tagtable.Optgroup,
	tagtable.Option, tagtable.P, tagtable.Rb, tagtable.Rp,
	tagtable.Rt, tagtable.Rtc,
}

// generateImpliedEndTags pops elements from the top while the top is in
// the implied-end-tag set and is not except, per spec.md §4.2.
func (d *Dispatcher) generateImpliedEndTags(except tagtable.ID) {
	for d.open.depth() > 0 {
		top := d.open.peek()
		if except != tagtable.CustomTag && top.is(except) {
			return
		}
		inSet := false
		for _, id := range impliedEndTagSet {
			if top.is(id) {
				inSet = true
				break
			}
		}
		if !inSet {
			return
		}
		d.pop()
	}
}

// closePElement is the generateImpliedEndTags instance restricted to P,
// per spec.md's close_p_element. Reports whether a P was actually popped,
// mirroring close_p_element's int return (checkP uses this to decide
// whether to raise a parse error).
func (d *Dispatcher) closePElement() bool {
	d.generateImpliedEndTags(tagtable.P)
	if d.open.peek() == nil || !d.open.peek().is(tagtable.P) {
		return false
	}
	d.pop()
	return true
}
