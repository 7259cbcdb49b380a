// Package periph drives the robot from a Linux host through periph.io.
//
// Microsecond delays spin on the monotonic clock, the countdown timer and
// the button interrupt are emulated with goroutines that only ever set
// their hal.Flag, and the 2-wire EEPROM protocol is carried over the
// kernel's transaction-level I²C interface.
package periph
