package scan

// action is a bitset of side effects applied before a state transition.
type action uint8

const (
	actNone   action = 0
	actAppend action = 1 << 0 // copy the character into the current field
	actField  action = 1 << 1 // close the current field
	actLine   action = 1 << 2 // close the current logical line
)

// transitions maps (state, column) to the next state. Cells whose
// action closes the line hold stateStartLine; the scan loop returns
// before reading them.
var transitions [numStates][numColumns]state

// actions maps (state, column) to the side effects applied before the
// transition.
var actions [numStates][numColumns]action

func init() {
	// Row cells follow the column order:
	// Other, Quote, Delimiter, CarriageReturn, LineFeed, EndOfInput.
	//
	// A quote is only meaningful as the first character of a field; in
	// stateText it is an error. Inside a quoted field every character is
	// literal until the closing quote, and a doubled quote appends one
	// literal quote (stateQuoteEnd -> stateQuoted). A carriage return
	// must be followed by a line feed. End of input inside a quoted
	// field or after a bare \r is an error.
	transitions[stateStartLine] = [numColumns]state{stateText, stateQuoted, stateStartField, stateCarriage, stateStartLine, stateEndFile}
	transitions[stateStartField] = [numColumns]state{stateText, stateQuoted, stateStartField, stateCarriage, stateStartLine, stateEndFile}
	transitions[stateQuoted] = [numColumns]state{stateQuoted, stateQuoteEnd, stateQuoted, stateQuoted, stateQuoted, stateError}
	transitions[stateQuoteEnd] = [numColumns]state{stateError, stateQuoted, stateStartField, stateCarriage, stateStartLine, stateEndFile}
	transitions[stateText] = [numColumns]state{stateText, stateError, stateStartField, stateCarriage, stateStartLine, stateEndFile}
	transitions[stateCarriage] = [numColumns]state{stateError, stateError, stateError, stateError, stateStartLine, stateError}

	actions[stateStartLine] = [numColumns]action{actAppend, actNone, actField, actNone, actField | actLine, actNone}
	actions[stateStartField] = [numColumns]action{actAppend, actNone, actField, actNone, actField | actLine, actField | actLine}
	actions[stateQuoted] = [numColumns]action{actAppend, actNone, actAppend, actAppend, actAppend, actNone}
	actions[stateQuoteEnd] = [numColumns]action{actNone, actAppend, actField, actNone, actField | actLine, actField | actLine}
	actions[stateText] = [numColumns]action{actAppend, actNone, actField, actNone, actField | actLine, actField | actLine}
	actions[stateCarriage] = [numColumns]action{actNone, actNone, actNone, actNone, actField | actLine, actNone}
}
