package sim

import (
	"time"

	"github.com/robotalks/linebot/pkg/hal"
)

// Emulated device characteristics of a 24LC256-class serial EEPROM.
const (
	DefaultEEPROMSize       = 32 * 1024
	DefaultEEPROMPageSize   = 128
	DefaultEEPROMWriteCycle = 5 * time.Millisecond
	// DefaultTWIByteTime is 9 clocks at 100 kHz.
	DefaultTWIByteTime = 90 * time.Microsecond
)

// PageWrite is one committed page-write transaction.
type PageWrite struct {
	Addr uint16
	Len  int
}

type eepromState int

const (
	eepromIdle     eepromState = iota // bus released or device not addressed
	eepromControl                     // start seen, waiting for control byte
	eepromAddrHigh                    // write phase, waiting for address high byte
	eepromAddrLow                     // write phase, waiting for address low byte
	eepromWriting                     // buffering page data
	eepromReading                     // sequential read
)

// EEPROM emulates a serial EEPROM on a 2-wire bus and implements hal.TWI
// from the master's point of view. Page writes wrap inside the page like
// the real device, and the device ignores its address while an internal
// write cycle is committing.
type EEPROM struct {
	Bank       uint8
	PageSize   int
	WriteCycle time.Duration
	ByteTime   time.Duration
	Mem        []byte

	// Writes lists committed page writes in order.
	Writes []PageWrite
	// BusyNacks counts control bytes refused while busy.
	BusyNacks int
	// FailDataWrites makes the device NACK every data byte, leaving
	// memory untouched.
	FailDataWrites bool

	clock     *Clock
	state     eepromState
	held      bool
	ptr       uint16
	pending   []byte
	pendStart uint16
	busyUntil time.Duration
}

// NewEEPROM creates an erased device on bank 0.
func NewEEPROM(clock *Clock) *EEPROM {
	e := &EEPROM{
		PageSize:   DefaultEEPROMPageSize,
		WriteCycle: DefaultEEPROMWriteCycle,
		ByteTime:   DefaultTWIByteTime,
		Mem:        make([]byte, DefaultEEPROMSize),
		clock:      clock,
	}
	for i := range e.Mem {
		e.Mem[i] = 0xff
	}
	return e
}

func (e *EEPROM) control() byte {
	return 0xa0 | (e.Bank&3)<<1
}

func (e *EEPROM) busy() bool {
	return e.clock.Now() < e.busyUntil
}

func (e *EEPROM) wrap(addr uint16) uint16 {
	return uint16(int(addr) % len(e.Mem))
}

// Start implements hal.TWI.
func (e *EEPROM) Start() hal.TWIStatus {
	e.clock.Advance(e.ByteTime / 9)
	st := hal.TWIStart
	if e.held {
		st = hal.TWIRepeatedStart
	}
	e.held, e.state = true, eepromControl
	e.pending = nil
	return st
}

// Write implements hal.TWI.
func (e *EEPROM) Write(b byte) hal.TWIStatus {
	e.clock.Advance(e.ByteTime)
	switch e.state {
	case eepromControl:
		read := b&1 != 0
		if b&^1 != e.control() || e.busy() {
			if b&^1 == e.control() {
				e.BusyNacks++
			}
			e.state = eepromIdle
			if read {
				return hal.TWIAddrReadNack
			}
			return hal.TWIAddrWriteNack
		}
		if read {
			e.state = eepromReading
			return hal.TWIAddrReadAck
		}
		e.state = eepromAddrHigh
		return hal.TWIAddrWriteAck
	case eepromAddrHigh:
		e.ptr, e.state = uint16(b)<<8, eepromAddrLow
		return hal.TWIDataWriteAck
	case eepromAddrLow:
		e.ptr = e.wrap(e.ptr | uint16(b))
		e.pendStart, e.pending, e.state = e.ptr, nil, eepromWriting
		return hal.TWIDataWriteAck
	case eepromWriting:
		if e.FailDataWrites {
			return hal.TWIDataWriteNack
		}
		e.pending = append(e.pending, b)
		return hal.TWIDataWriteAck
	}
	return hal.TWIDataWriteNack
}

// Read implements hal.TWI.
func (e *EEPROM) Read(ack bool) (byte, hal.TWIStatus) {
	e.clock.Advance(e.ByteTime)
	if e.state != eepromReading {
		return 0xff, hal.TWIBusError
	}
	b := e.Mem[e.ptr]
	e.ptr = e.wrap(e.ptr + 1)
	if ack {
		return b, hal.TWIDataReadAck
	}
	return b, hal.TWIDataReadNack
}

// Stop implements hal.TWI.
func (e *EEPROM) Stop() hal.TWIStatus {
	e.clock.Advance(e.ByteTime / 9)
	if e.state == eepromWriting && len(e.pending) > 0 {
		e.commit()
	}
	e.held, e.state, e.pending = false, eepromIdle, nil
	return hal.TWINoInfo
}

func (e *EEPROM) commit() {
	page := int(e.pendStart) &^ (e.PageSize - 1)
	offset := int(e.pendStart) & (e.PageSize - 1)
	for i, b := range e.pending {
		e.Mem[page+(offset+i)%e.PageSize] = b
	}
	n := len(e.pending)
	if n > e.PageSize {
		n = e.PageSize
	}
	e.Writes = append(e.Writes, PageWrite{Addr: e.pendStart, Len: len(e.pending)})
	e.ptr = e.wrap(uint16(page + (offset+n)%e.PageSize))
	e.busyUntil = e.clock.Now() + e.WriteCycle
}
