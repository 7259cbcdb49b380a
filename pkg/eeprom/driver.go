package eeprom

import (
	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/hal"
)

// Protocol constants.
const (
	// PageSize is the device page-write buffer size.
	PageSize = 128
	// MaxBlockLength is the longest block a single call accepts.
	MaxBlockLength = 127
	// InvalidBank is the device select code returned for a bad bank.
	InvalidBank byte = 0xff

	controlBase byte = 0xa0
	readPhase   byte = 0x01
)

// SelectBank computes the write-phase device select code for bank.
// The read-phase code is one more.
func SelectBank(bank uint8) (byte, error) {
	if bank&^0x03 != 0 {
		return InvalidBank, ErrInvalidBank
	}
	return controlBase | bank<<1, nil
}

// Driver runs EEPROM transactions over a 2-wire bus. A Driver is not
// safe for concurrent use; callers run one transaction at a time.
type Driver struct {
	Bus      hal.TWI
	PageSize int
	// MaxBusyPolls bounds write-busy polling. Zero polls until the device
	// answers, however long it takes.
	MaxBusyPolls int

	control byte
}

// New creates a Driver on bank 0.
func New(bus hal.TWI) *Driver {
	return &Driver{Bus: bus, PageSize: PageSize, control: controlBase}
}

// SelectBank switches the device addressed by later transactions.
// On error the current bank is kept.
func (d *Driver) SelectBank(bank uint8) error {
	code, err := SelectBank(bank)
	if err != nil {
		return err
	}
	d.control = code
	return nil
}

// ControlByte returns the current write-phase device select code.
func (d *Driver) ControlByte() byte {
	return d.control
}

// ReadByte reads the byte at addr.
func (d *Driver) ReadByte(addr uint16) (byte, error) {
	var b [1]byte
	err := d.ReadBlock(addr, b[:])
	return b[0], err
}

// ReadBlock fills out with the bytes starting at addr.
func (d *Driver) ReadBlock(addr uint16, out []byte) error {
	if len(out) > MaxBlockLength {
		return ErrBlockTooLong
	}
	if len(out) == 0 {
		return nil
	}
	if err := d.waitReady(); err != nil {
		return err
	}
	tx := transaction{addr: addr}
	tx.expect("address-high", d.Bus.Write(byte(addr>>8)), hal.TWIDataWriteAck)
	tx.expect("address-low", d.Bus.Write(byte(addr)), hal.TWIDataWriteAck)
	tx.expect("repeated-start", d.Bus.Start(), hal.TWIRepeatedStart)
	tx.expect("control-read", d.Bus.Write(d.control|readPhase), hal.TWIAddrReadAck)
	for i := range out {
		ack := i < len(out)-1
		b, st := d.Bus.Read(ack)
		if ack {
			tx.expect("data-read", st, hal.TWIDataReadAck)
		} else {
			tx.expect("data-read-last", st, hal.TWIDataReadNack)
		}
		out[i] = b
	}
	d.Bus.Stop()
	glog.V(3).Infof("eeprom read 0x%04x len %d", addr, len(out))
	return tx.result()
}

// WriteByte writes value at addr.
func (d *Driver) WriteByte(addr uint16, value byte) error {
	return d.WriteBlock(addr, []byte{value})
}

// WriteBlock writes data starting at addr, one page-write transaction per
// page touched. All chunks are attempted even if one reports a bus error;
// the first error is returned.
func (d *Driver) WriteBlock(addr uint16, data []byte) error {
	if len(data) > MaxBlockLength {
		return ErrBlockTooLong
	}
	var first error
	for len(data) > 0 {
		n, err := d.writePage(addr, data)
		if err != nil {
			if err == ErrBusy {
				return err
			}
			if first == nil {
				first = err
			}
		}
		addr += uint16(n)
		data = data[n:]
	}
	return first
}

// PageChunk returns how many of length bytes starting at addr fit before
// the next page boundary.
func PageChunk(addr uint16, length, pageSize int) int {
	boundary := (int(addr) | (pageSize - 1)) + 1
	if rem := boundary - int(addr); length > rem {
		return rem
	}
	return length
}

func (d *Driver) writePage(addr uint16, data []byte) (int, error) {
	n := PageChunk(addr, len(data), d.PageSize)
	if err := d.waitReady(); err != nil {
		return 0, err
	}
	tx := transaction{addr: addr}
	tx.expect("address-high", d.Bus.Write(byte(addr>>8)), hal.TWIDataWriteAck)
	tx.expect("address-low", d.Bus.Write(byte(addr)), hal.TWIDataWriteAck)
	for _, b := range data[:n] {
		tx.expect("data-write", d.Bus.Write(b), hal.TWIDataWriteAck)
	}
	tx.expect("stop", d.Bus.Stop(), hal.TWINoInfo)
	glog.V(3).Infof("eeprom page write 0x%04x len %d", addr, n)
	return n, tx.result()
}

// waitReady repeats start and write-phase control byte until the device
// acknowledges. The bus is left held, addressed in write phase.
func (d *Driver) waitReady() error {
	for polls := 1; ; polls++ {
		d.Bus.Start()
		if d.Bus.Write(d.control) == hal.TWIAddrWriteAck {
			if polls > 1 {
				glog.V(3).Infof("eeprom ready after %d polls", polls)
			}
			return nil
		}
		if d.MaxBusyPolls > 0 && polls >= d.MaxBusyPolls {
			d.Bus.Stop()
			return ErrBusy
		}
	}
}

// transaction keeps the first unexpected status of a transaction.
type transaction struct {
	addr uint16
	err  *BusError
}

func (t *transaction) expect(phase string, st, want hal.TWIStatus) {
	if st != want && t.err == nil {
		t.err = &BusError{Phase: phase, Addr: t.addr, Status: st, Expect: want}
		glog.Warningf("eeprom: %v", t.err)
	}
}

func (t *transaction) result() error {
	if t.err == nil {
		return nil
	}
	return t.err
}
