package registry

import "strconv"

// Priority is a task's scheduling urgency. Lower numeric values are more
// urgent. Comparisons go through methods so call sites never write a raw
// "<=" against the inverted scale.
type Priority int

// None is the zero Priority, meaning "no registered priority". It compares
// as worse than every real priority, so an unknown task can never pass an
// admission check.
const None Priority = 0

// Known reports whether p is a real priority rather than None.
func (p Priority) Known() bool {
	return p > None
}

// AtLeast reports whether p is at least as urgent as q, i.e. numerically at
// or below it. It is false whenever either side is None.
func (p Priority) AtLeast(q Priority) bool {
	if !p.Known() || !q.Known() {
		return false
	}
	return p <= q
}

// String renders the numeric priority, or "none" for the sentinel.
func (p Priority) String() string {
	if !p.Known() {
		return "none"
	}
	return strconv.Itoa(int(p))
}
