package grouping

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparer orders display strings the way a reader expects: locale-aware
// and with digit runs compared by value, so "Track 2" < "Track 10".
// A Comparer is not safe for concurrent use.
type Comparer struct {
	c *collate.Collator
}

// NewComparer returns a numeric-aware comparer for the root locale.
func NewComparer() *Comparer {
	return &Comparer{c: collate.New(language.Und, collate.Numeric)}
}

// Compare returns -1, 0 or 1.
func (c *Comparer) Compare(a, b string) int {
	return c.c.CompareString(a, b)
}
