// This file implements the Lamport logical clock.
package ricart

// Clock is a scalar Lamport clock: a monotone non-negative counter
// advanced by one on every local event and to max(local, received)+1
// on every receive. The zero value is ready to use. Clock is owned by
// a single site goroutine and needs no locking.
type Clock struct {
	now uint64
}

// Tick advances the clock for a local event and returns the new value.
func (c *Clock) Tick() uint64 {
	c.now++

	return c.now
}

// Witness folds a received timestamp into the clock, advancing it to
// max(local, received)+1, and returns the new value.
func (c *Clock) Witness(t uint64) uint64 {
	if t > c.now {
		c.now = t
	}
	c.now++

	return c.now
}

// Now returns the current clock value without advancing it.
func (c *Clock) Now() uint64 {
	return c.now
}
