// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package cards

// Zebra classes alternate strictly, starting at even.
const (
	ClassEven = "even"
	ClassOdd  = "odd"
)

// RowCount threads the zebra position through the cards of one bucket.
// Each bucket gets a fresh RowCount; it must not outlive the generator call
// that created it.
type RowCount struct {
	count int
}

// Next returns the zebra class of the next row and advances the counter.
func (c *RowCount) Next() string {
	n := c.count
	c.count++
	if n%2 == 0 {
		return ClassEven
	}
	return ClassOdd
}

// Count returns the number of rows emitted so far.
func (c *RowCount) Count() int {
	return c.count
}
