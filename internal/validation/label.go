package validation

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label turns a field name into the subject used in messages:
// "postal_code" becomes "Postal code", "email" becomes "Email".
func Label(name string) string {
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	if len(words) == 0 {
		return name
	}
	// A Caser keeps state and is not safe for concurrent use.
	words[0] = cases.Title(language.English).String(words[0])
	return strings.Join(words, " ")
}

// subject completes a field-relative predicate with the field's label.
func subject(field string, errs Errors) Errors {
	label := Label(field)
	out := make(Errors, len(errs))
	for i, e := range errs {
		if len(e.Path) == 0 {
			e.Message = label + " " + e.Message
		}
		out[i] = e.prefixed(field)
	}
	return out
}
