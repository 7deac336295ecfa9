package model

// Category is a named bucket that records are filed under. Names are
// stored trimmed and lowercased, and are unique within their namespace.
type Category struct {
	Name string
	ID   int64
}

// SentinelCategory is the reserved expense category that records are
// re-pointed to when their own category is deleted. It is created on
// demand and must never itself be deleted.
const SentinelCategory = "uncategorized"

// IncomeCategories is the fixed income category enumeration seeded into
// the store at migration time.
var IncomeCategories = []string{"salary", "freelance", "other"}
