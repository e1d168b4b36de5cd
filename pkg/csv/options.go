package csv

import "unicode/utf8"

// Options configures the CSV dialect.
type Options struct {
	// Comma is the field delimiter. Default: ','
	Comma rune

	// Quote is the quotation character. Default: '"'
	Quote rune
}

// DefaultOptions returns the default dialect: comma-delimited fields
// quoted with double quotes.
func DefaultOptions() Options {
	return Options{Comma: ',', Quote: '"'}
}

// validDelim reports whether r can serve as a delimiter or quote
// character.
func validDelim(r rune) bool {
	return r != 0 && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}

// Validate checks that the options describe a usable dialect: both
// characters valid and distinct from each other.
func (o Options) Validate() error {
	if !validDelim(o.Comma) {
		return &OptionsError{Field: "Comma", Message: "invalid delimiter"}
	}
	if !validDelim(o.Quote) {
		return &OptionsError{Field: "Quote", Message: "invalid quote character"}
	}
	if o.Comma == o.Quote {
		return &OptionsError{Field: "Quote", Message: "quote character same as delimiter"}
	}
	return nil
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}
