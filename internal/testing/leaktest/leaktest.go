// Package leaktest provides goroutine accounting helpers for tests that
// start background workers.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

// Checker records the goroutine count at construction and compares it again
// on Check, flagging growth beyond the tolerance.
type Checker struct {
	before int
	t      testing.TB
}

// NewChecker snapshots the current goroutine count.
func NewChecker(t testing.TB) *Checker {
	t.Helper()

	// Let goroutines from earlier tests settle before counting.
	runtime.Gosched()
	time.Sleep(10 * time.Millisecond)

	return &Checker{before: runtime.NumGoroutine(), t: t}
}

// Check fails the test when more than tolerance goroutines outlive the
// checked code. Retries briefly since shutdown is asynchronous.
func (c *Checker) Check(tolerance int) {
	c.t.Helper()

	deadline := time.Now().Add(500 * time.Millisecond)
	leaked := 0
	for {
		runtime.Gosched()
		leaked = runtime.NumGoroutine() - c.before
		if leaked <= tolerance || time.Now().After(deadline) {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	if leaked > tolerance {
		c.t.Errorf("goroutine leak: before=%d, leaked=%d, tolerance=%d",
			c.before, leaked, tolerance)
	}
}

// CheckNone runs fn and fails the test when any goroutine it started is
// still alive afterwards.
func CheckNone(t *testing.T, fn func()) {
	t.Helper()

	checker := NewChecker(t)
	fn()
	checker.Check(0)
}
