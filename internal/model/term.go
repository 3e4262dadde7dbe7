package model

import (
	"fmt"
	"regexp"
)

// Term is an academic half-year formatted as YYYY/1 or YYYY/2.
type Term string

var termPattern = regexp.MustCompile(`^\d{4}/[12]$`)

// Valid reports whether the term follows the YYYY/{1|2} format.
func (t Term) Valid() bool {
	return termPattern.MatchString(string(t))
}

// ParseTerm validates raw and returns it as a Term.
func ParseTerm(raw string) (Term, error) {
	t := Term(raw)
	if !t.Valid() {
		return "", fmt.Errorf("invalid term %q: expected YYYY/1 or YYYY/2", raw)
	}
	return t, nil
}
