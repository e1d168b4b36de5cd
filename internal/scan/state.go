// Package scan implements the character-level CSV state machine.
//
// The scanner classifies each input character into a small column
// alphabet and looks up (state, column) in fixed transition and action
// tables. Actions accumulate field text into a record.Line; quoting,
// doubled-quote escapes and embedded newlines are all resolved here.
package scan

// state identifies a position in the scanner's finite-state machine.
// stateStartLine is the initial state of every logical line;
// stateEndFile and stateError are terminal for the whole scan.
type state uint8

const (
	stateStartLine  state = iota // beginning of a logical line
	stateStartField              // immediately after a delimiter
	stateQuoted                  // inside a quoted field
	stateQuoteEnd                // saw a quote inside a quoted field
	stateText                    // inside an unquoted field
	stateCarriage                // saw \r, a \n must follow
	stateEndFile                 // terminal: input exhausted
	stateError                   // terminal: invalid input
	numStates
)

// column is the classification bucket of one input character used to
// index the transition and action tables.
type column uint8

const (
	columnOther column = iota
	columnQuote
	columnDelim
	columnCarriage
	columnLineFeed
	columnEndOfInput
	numColumns
)
