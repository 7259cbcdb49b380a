package hal

import "sync/atomic"

// Flag is a single bit shared between an interrupt handler and the
// polling routine consuming it. Each Flag has exactly one writer that sets
// it and one consumer that clears it.
type Flag struct {
	v atomic.Bool
}

// Set raises the flag.
func (f *Flag) Set() {
	f.v.Store(true)
}

// Clear lowers the flag.
func (f *Flag) Clear() {
	f.v.Store(false)
}

// IsSet polls the flag without consuming it.
func (f *Flag) IsSet() bool {
	return f.v.Load()
}

// Consume lowers the flag and reports whether it was raised.
func (f *Flag) Consume() bool {
	return f.v.CompareAndSwap(true, false)
}
