package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error collects the field failures of one holding row, keyed by the
// upload column name.
type Error struct {
	Fields map[string]string
}

func newError() *Error {
	return &Error{Fields: make(map[string]string)}
}

func (e *Error) add(field, format string, args ...any) {
	e.Fields[field] = fmt.Sprintf(format, args...)
}

// orNil returns e when at least one field failed.
func (e *Error) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Error lists the failures ordered by field so the same row always yields
// the same message.
func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, len(fields))
	for i, field := range fields {
		msgs[i] = field + ": " + e.Fields[field]
	}
	return strings.Join(msgs, "; ")
}
