package parser

// Options selects which grammar extensions beyond the standard
// expression language the parser accepts. The zero value is the plain
// language with no extensions.
type Options struct {
	// Assignment enables the right-associative = operator.
	Assignment bool
	// Conditional enables c ? a : b.
	Conditional bool
	// Match enables the wildcard-match operator ~=.
	Match bool
	// Join enables the string-join operator #.
	Join bool
	// CaseConversion enables the toupper and tolower prefix operators.
	CaseConversion bool
	// Length enables the length prefix operator.
	Length bool
	// Sum enables the sum prefix operator.
	Sum bool
	// Literals enables [a, b] array and {k: v} object literals.
	Literals bool
}

// AllExtensions returns Options with every extension enabled.
func AllExtensions() Options {
	return Options{
		Assignment:     true,
		Conditional:    true,
		Match:          true,
		Join:           true,
		CaseConversion: true,
		Length:         true,
		Sum:            true,
		Literals:       true,
	}
}
