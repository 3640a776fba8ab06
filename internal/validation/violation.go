package validation

import (
	"sort"
	"strings"
)

// Kind is the machine-readable category of a Violation.
type Kind string

const (
	KindRequired         Kind = "required"
	KindType             Kind = "type"
	KindMinLength        Kind = "minLength"
	KindMaxLength        Kind = "maxLength"
	KindRange            Kind = "range"
	KindPattern          Kind = "pattern"
	KindEnum             Kind = "enum"
	KindLiteralMismatch  Kind = "literalMismatch"
	KindFormat           Kind = "format"
	KindMaxItems         Kind = "maxItems"
	KindUnknownCourse    Kind = "unknownCourse"
	KindInvalidForCourse Kind = "invalidForCourse"
)

// Violation is one field-scoped validation failure.
type Violation struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`

	// pos is the depth-first visit index of Field, used to merge
	// cross-field violations back into tree order.
	pos int
}

// Violations is the ordered result of a failed validation. It implements
// error so callers can return it through ordinary error paths and detect it
// with errors.As.
type Violations []Violation

func (vs Violations) Error() string {
	msgs := make([]string, 0, len(vs))
	for _, v := range vs {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the field path of every violation, in order.
func (vs Violations) Fields() []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Field)
	}
	return out
}

// Has reports whether a violation of kind exists on field.
func (vs Violations) Has(field string, kind Kind) bool {
	for _, v := range vs {
		if v.Field == field && v.Kind == kind {
			return true
		}
	}
	return false
}

func (vs Violations) sortByPosition() {
	sort.SliceStable(vs, func(i, j int) bool { return vs[i].pos < vs[j].pos })
}
