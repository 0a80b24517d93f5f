// Package dedup decides whether a decoded barcode counts as a new scan.
//
// A value is new when it differs from the previously accepted one. Values
// are never compared against older history, so scanning A, B, A accepts
// three times.
package dedup

// Result is the outcome of offering a raw decode to the deduplicator.
type Result struct {
	// Value is the value that should be current after the offer.
	Value string
	// Changed reports whether Value differs from the previous value. Side
	// effects (state write, feedback, history append) happen only when true.
	Changed bool
}

// Accept compares raw against previous. It is a pure function.
func Accept(raw, previous string) Result {
	if raw == previous {
		return Result{Value: previous}
	}
	return Result{Value: raw, Changed: true}
}

// Deduplicator remembers the last accepted value for callers that have no
// shared state of their own, such as the headless scan loop.
type Deduplicator struct {
	previous string
	accepted int
	skipped  int
}

// Accept offers raw and records it when it changed.
func (d *Deduplicator) Accept(raw string) Result {
	res := Accept(raw, d.previous)
	if !res.Changed {
		d.skipped++
		return res
	}
	d.previous = res.Value
	d.accepted++
	return res
}

// Previous returns the last accepted value.
func (d *Deduplicator) Previous() string {
	return d.previous
}

// Stats returns how many offers were accepted and how many were dropped as
// repeats.
func (d *Deduplicator) Stats() (accepted, skipped int) {
	return d.accepted, d.skipped
}
