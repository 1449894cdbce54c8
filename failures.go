package presence

import (
	"errors"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Failures maps a field's wire name to the reasons it was rejected.
// It is the error returned by [Check] and marshals to the JSON shape
// clients receive: {"name": ["name is required. It cannot be deserialized to null."]}.
type Failures map[string][]string

// Add appends reason to field's reasons.
func (f Failures) Add(field, reason string) {
	f[field] = append(f[field], reason)
}

// Fields returns the failing field names in sorted order.
func (f Failures) Fields() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Error returns the failures in the same "key: msg; key: msg." form as
// ozzo-validation's Errors.
func (f Failures) Error() string {
	if len(f) == 0 {
		return ""
	}
	var s strings.Builder
	for i, k := range f.Fields() {
		if i > 0 {
			s.WriteString("; ")
		}
		s.WriteString(k)
		s.WriteString(": ")
		s.WriteString(strings.Join(f[k], " "))
	}
	if !strings.HasSuffix(s.String(), ".") {
		s.WriteString(".")
	}
	return s.String()
}

// Errors converts f into ozzo-validation Errors, one error per field.
func (f Failures) Errors() validation.Errors {
	errs := validation.Errors{}
	for k, reasons := range f {
		errs[k] = errors.New(strings.Join(reasons, " "))
	}
	return errs
}

// Merge adds every reason of other to f.
func (f Failures) Merge(other Failures) {
	for k, reasons := range other {
		for _, r := range reasons {
			f.Add(k, r)
		}
	}
}

// AsFailures returns the Failures wrapped in err, if any.
func AsFailures(err error) (Failures, bool) {
	var f Failures
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
