// Package model defines the core domain types shared across the tracker.
package model

// Namespace selects one of the two independent record collections. Every
// record and category belongs to exactly one namespace.
type Namespace string

// The two record namespaces.
const (
	NamespaceExpense Namespace = "expense"
	NamespaceIncome  Namespace = "income"
)

// Valid reports whether ns is one of the two known namespaces.
func (ns Namespace) Valid() bool {
	return ns == NamespaceExpense || ns == NamespaceIncome
}

// Record is a single expense or income entry. Amount is a positive whole
// currency unit; Date is an ISO "YYYY-MM-DD" string; Category holds the
// normalized category name the record is filed under.
//
// ID is the durable storage identity. The 1-based ordinals shown in
// listings are positional and shift as records are deleted; ID does not.
type Record struct {
	Category string
	Date     string
	ID       int64
	UserID   int64
	Amount   int64
}
