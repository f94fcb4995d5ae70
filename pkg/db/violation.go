package db

import "fmt"

// ViolationKind enumerates constraint violations the loader knows about.
type ViolationKind int

const (
	// OtherViolation is any integrity violation without special handling.
	OtherViolation ViolationKind = iota
	// UniqueViolation is a primary key or unique constraint violation.
	UniqueViolation
	// NotNullViolation is a NULL written to a NOT NULL column.
	NotNullViolation
)

func (k ViolationKind) String() string {
	switch k {
	case UniqueViolation:
		return "unique violation"
	case NotNullViolation:
		return "not-null violation"
	default:
		return "constraint violation"
	}
}

// Violation describes a constraint violation reported by a store.
// Table and Column are empty when the store does not report them.
type Violation struct {
	Kind   ViolationKind
	Table  string
	Column string
	Err    error
}

func (v *Violation) Error() string {
	if v.Column != "" {
		return fmt.Sprintf("%s on %s.%s: %v", v.Kind, v.Table, v.Column, v.Err)
	}
	return fmt.Sprintf("%s: %v", v.Kind, v.Err)
}

func (v *Violation) Unwrap() error {
	return v.Err
}
