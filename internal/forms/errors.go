package forms

import (
	"fmt"
	"sort"
	"strings"
)

// FieldError is a validation message for one field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors lists every failing field of a submission.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fmt.Sprintf("%s %s", fe.Field, fe.Message)
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// For returns the message of field, or "".
func (v ValidationErrors) For(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Map returns the messages keyed by field name.
func (v ValidationErrors) Map() map[string]string {
	out := make(map[string]string, len(v))
	for _, fe := range v {
		if _, seen := out[fe.Field]; !seen {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// Fields returns the failing field names, sorted.
func (v ValidationErrors) Fields() []string {
	m := v.Map()
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
