// Package eeprom talks to a 2-wire serial EEPROM.
//
// Only the transactions the robot needs are provided: random and
// sequential reads, and page-aligned writes. Every transaction first polls
// the device until it acknowledges its write-phase control byte, which is
// how the device signals that a previous internal write cycle finished.
//
// Transaction layout
//
//	read:  S ctrl|W addrHi addrLo Sr ctrl|R data(A)... data(N) P
//	write: S ctrl|W addrHi addrLo data... P
//
// A write never crosses a page boundary; longer blocks are split into one
// transaction per page.
package eeprom
