package repository

import "strings"

// Condition represents a normalized listing condition filter.
type Condition string

const (
	CondNew        Condition = "new"
	CondUsed       Condition = "used"
	CondRefurb     Condition = "refurbished"
	CondForParts   Condition = "for_parts"
	CondUnfiltered Condition = ""
)

// IsValidCondition returns true if c is a supported condition filter.
func IsValidCondition(c Condition) bool {
	switch c {
	case CondNew, CondUsed, CondRefurb, CondForParts, CondUnfiltered:
		return true
	default:
		return false
	}
}

// NormalizeCondition converts a raw string to a valid condition filter
// (or unfiltered).
func NormalizeCondition(s string) Condition {
	c := Condition(strings.ToLower(strings.TrimSpace(s)))
	if IsValidCondition(c) {
		return c
	}
	return CondUnfiltered
}
