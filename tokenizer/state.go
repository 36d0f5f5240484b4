// Package tokenizer implements FSM A, the byte-driven state machine
// described in spec.md §4.1: it reads a byte stream and emits Tokens,
// recognizing tags, attributes, doctype, comments, and raw/escaped text
// content models.
//
// Grounded on original_source/tokenize.c/tokenize.h; state names follow the
// Go naming convention used by the justgohtml tokenizer in the retrieval
// pack rather than the C source's STATE_ prefix.
package tokenizer

// State is one state of FSM A.
type State int

// InvalidState marks an uninitialized State value.
const InvalidState State = -1

const (
	DataState State = iota
	TagOpenState
	EndTagOpenState
	MarkupDeclarationOpenState
	TagNameState
	BeforeAttributeNameState
	AttributeNameState
	AfterAttributeNameState
	BeforeAttributeValueState
	AttributeValueQuotedState
	AttributeValueSquotedState
	AttributeValueState
	AfterAttributeValueQuotedState
	SelfClosingStartTagState

	DoctypeState
	BeforeDoctypeNameState
	DoctypeNameState
	AfterDoctypeNameState
	BogusDoctypeState

	CommentStartState
	CommentStartDashState
	CommentState
	CommentLessThanState
	CommentLessThanBangState
	CommentLessThanBangDashState
	CommentLessThanBangDashDashState
	CommentEndDashState
	CommentEndState
	CommentEndBangState
	BogusCommentState

	CharacterReferenceState
	NamedCharRefState
	NumCharRefState

	RCDATAState
	RCDATALessThanState
	RCDATAEndTagOpenState
	RCDATAEndTagNameState

	RawtextState
	RawtextLessThanState
	RawtextEndTagOpenState
	RawtextEndTagNameState

	ScriptDataState
	ScriptDataLessThanState
	ScriptDataEndTagOpenState
	ScriptDataEndTagNameState
	ScriptDataEscStartState
	ScriptDataEscStartDashState
	ScriptDataEscDashState
	ScriptDataEscDash2State
	ScriptDataEscLessThanState
	ScriptDataEscEndTagOpenState
	ScriptDataEscEndTagNameState
	ScriptDataEscState
	ScriptDataDblEscStartState

	PlaintextState

	numStates
)

var stateNames = [numStates]string{
	DataState:                         "Data",
	TagOpenState:                      "TagOpen",
	EndTagOpenState:                   "EndTagOpen",
	MarkupDeclarationOpenState:        "MarkupDeclarationOpen",
	TagNameState:                      "TagName",
	BeforeAttributeNameState:          "BeforeAttributeName",
	AttributeNameState:                "AttributeName",
	AfterAttributeNameState:           "AfterAttributeName",
	BeforeAttributeValueState:         "BeforeAttributeValue",
	AttributeValueQuotedState:         "AttributeValueQuoted",
	AttributeValueSquotedState:        "AttributeValueSquoted",
	AttributeValueState:               "AttributeValueUnquoted",
	AfterAttributeValueQuotedState:    "AfterAttributeValueQuoted",
	SelfClosingStartTagState:          "SelfClosingStartTag",
	DoctypeState:                      "Doctype",
	BeforeDoctypeNameState:            "BeforeDoctypeName",
	DoctypeNameState:                  "DoctypeName",
	AfterDoctypeNameState:             "AfterDoctypeName",
	BogusDoctypeState:                 "BogusDoctype",
	CommentStartState:                 "CommentStart",
	CommentStartDashState:             "CommentStartDash",
	CommentState:                      "Comment",
	CommentLessThanState:              "CommentLessThan",
	CommentLessThanBangState:          "CommentLessThanBang",
	CommentLessThanBangDashState:      "CommentLessThanBangDash",
	CommentLessThanBangDashDashState:  "CommentLessThanBangDashDash",
	CommentEndDashState:               "CommentEndDash",
	CommentEndState:                   "CommentEnd",
	CommentEndBangState:               "CommentEndBang",
	BogusCommentState:                 "BogusComment",
	CharacterReferenceState:           "CharacterReference",
	NamedCharRefState:                 "NamedCharRef",
	NumCharRefState:                   "NumCharRef",
	RCDATAState:                       "RCDATA",
	RCDATALessThanState:               "RCDATALessThan",
	RCDATAEndTagOpenState:             "RCDATAEndTagOpen",
	RCDATAEndTagNameState:             "RCDATAEndTagName",
	RawtextState:                      "Rawtext",
	RawtextLessThanState:              "RawtextLessThan",
	RawtextEndTagOpenState:            "RawtextEndTagOpen",
	RawtextEndTagNameState:            "RawtextEndTagName",
	ScriptDataState:                   "ScriptData",
	ScriptDataLessThanState:           "ScriptDataLessThan",
	ScriptDataEndTagOpenState:         "ScriptDataEndTagOpen",
	ScriptDataEndTagNameState:         "ScriptDataEndTagName",
	ScriptDataEscStartState:           "ScriptDataEscStart",
	ScriptDataEscStartDashState:       "ScriptDataEscStartDash",
	ScriptDataEscDashState:            "ScriptDataEscDash",
	ScriptDataEscDash2State:           "ScriptDataEscDash2",
	ScriptDataEscLessThanState:        "ScriptDataEscLessThan",
	ScriptDataEscEndTagOpenState:      "ScriptDataEscEndTagOpen",
	ScriptDataEscEndTagNameState:      "ScriptDataEscEndTagName",
	ScriptDataEscState:                "ScriptDataEsc",
	ScriptDataDblEscStartState:        "ScriptDataDblEscStart",
	PlaintextState:                    "Plaintext",
}

// String returns the Go identifier-ish name of s, or "Invalid" for
// InvalidState and out-of-range values.
func (s State) String() string {
	if s < 0 || int(s) >= int(numStates) {
		return "Invalid"
	}
	return stateNames[s]
}

// ContentModel is the subset of states the dispatcher may request via its
// back-channel override, per spec.md §4.2's "RCDATA for <title>, SCRIPT_DATA
// for <script>, RAWTEXT for <style>, PLAINTEXT after <plaintext>".
type ContentModel int

const (
	DataContentModel ContentModel = iota
	RCDATAContentModel
	RawtextContentModel
	ScriptDataContentModel
	PlaintextContentModel
)

// state returns the tokenizer entry state for m.
func (m ContentModel) state() State {
	switch m {
	case RCDATAContentModel:
		return RCDATAState
	case RawtextContentModel:
		return RawtextState
	case ScriptDataContentModel:
		return ScriptDataState
	case PlaintextContentModel:
		return PlaintextState
	default:
		return DataState
	}
}
