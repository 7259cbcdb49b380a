package eeprom

import (
	"errors"
	"fmt"

	"github.com/robotalks/linebot/pkg/hal"
)

var (
	// ErrInvalidBank indicates a bank selector outside 0..3.
	ErrInvalidBank = errors.New("invalid bank")
	// ErrBlockTooLong indicates a block longer than MaxBlockLength.
	ErrBlockTooLong = errors.New("block too long")
	// ErrBusy is returned when MaxBusyPolls is set and the device never
	// acknowledged its control byte.
	ErrBusy = errors.New("device busy")
)

// BusError reports an unexpected bus status in a transaction phase.
// The transaction still runs to its stop condition.
type BusError struct {
	Phase  string
	Addr   uint16
	Status hal.TWIStatus
	Expect hal.TWIStatus
}

// Error implements error.
func (e *BusError) Error() string {
	return fmt.Sprintf("bus error at 0x%04x in %s: %s, expect %s", e.Addr, e.Phase, e.Status, e.Expect)
}
