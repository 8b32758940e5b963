package orchestrator

import "time"

// TerminationCondition is the external cancellation point of spec.md §5:
// polled once per high-level pop and once per RRT iteration of each child's
// low-level re-plan (root planning in Solve does not poll it).
// Implementations may encode a wall-clock deadline or a manual
// interrupt; either way the contract is a plain bool.
type TerminationCondition func() bool

// Deadline returns a TerminationCondition that trips once wall-clock time d
// has elapsed since the call to Deadline.
func Deadline(d time.Duration) TerminationCondition {
	end := time.Now().Add(d)
	return func() bool { return time.Now().After(end) }
}

// IterationCap returns a TerminationCondition that trips after it has been
// called n times.
func IterationCap(n int) TerminationCondition {
	count := 0
	return func() bool {
		count++
		return count > n
	}
}

// Any trips as soon as any of conds trips.
func Any(conds ...TerminationCondition) TerminationCondition {
	return func() bool {
		for _, c := range conds {
			if c() {
				return true
			}
		}
		return false
	}
}

// All trips only once every one of conds has tripped.
func All(conds ...TerminationCondition) TerminationCondition {
	return func() bool {
		for _, c := range conds {
			if !c() {
				return false
			}
		}
		return true
	}
}
