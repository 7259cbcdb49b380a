package periph

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/hal"
)

// txer is the part of i2c.Bus used by TWI.
type txer interface {
	Tx(addr uint16, w, r []byte) error
}

// Default retry policy while the device is busy committing a write.
const (
	DefaultTxRetries    = 20
	DefaultTxRetryDelay = 500 * time.Microsecond
)

// TWI presents a transaction-level I²C bus as the byte-level hal.TWI.
//
// The kernel only runs whole transactions, so the adapter acknowledges the
// write-phase control byte and buffers the address and data bytes until
// Stop, when they go out as one write. Reads are issued one byte per
// transaction: the first carries the buffered address pointer, the
// following ones rely on the device's sequential current-address read.
// A device still busy with a previous write cycle NACKs the whole
// transaction, which is retried up to Retries times. Failures show up in
// the status of the Read or Stop that ran the transaction.
type TWI struct {
	Bus        txer
	Retries    int
	RetryDelay time.Duration

	held      bool
	ctrlNext  bool
	addr      uint16
	read      bool
	wbuf      []byte
	readStart bool
	err       error
}

// NewTWI wraps an i2c.Bus.
func NewTWI(bus txer) *TWI {
	return &TWI{Bus: bus, Retries: DefaultTxRetries, RetryDelay: DefaultTxRetryDelay}
}

// Err returns the last transaction error, if any.
func (t *TWI) Err() error {
	return t.err
}

// Start implements hal.TWI.
func (t *TWI) Start() hal.TWIStatus {
	st := hal.TWIStart
	if t.held {
		st = hal.TWIRepeatedStart
	}
	t.held, t.ctrlNext = true, true
	return st
}

// Write implements hal.TWI.
func (t *TWI) Write(b byte) hal.TWIStatus {
	if t.ctrlNext {
		t.ctrlNext = false
		t.addr, t.read = uint16(b>>1), b&1 != 0
		if t.read {
			t.readStart = true
			return hal.TWIAddrReadAck
		}
		t.wbuf = t.wbuf[:0]
		return hal.TWIAddrWriteAck
	}
	if t.read {
		return hal.TWIBusError
	}
	t.wbuf = append(t.wbuf, b)
	return hal.TWIDataWriteAck
}

// Read implements hal.TWI.
func (t *TWI) Read(ack bool) (byte, hal.TWIStatus) {
	if !t.read {
		return 0xff, hal.TWIBusError
	}
	var w []byte
	if t.readStart {
		w, t.readStart = t.wbuf, false
	}
	var r [1]byte
	if err := t.tx(w, r[:]); err != nil {
		return 0xff, hal.TWIBusError
	}
	if ack {
		return r[0], hal.TWIDataReadAck
	}
	return r[0], hal.TWIDataReadNack
}

// Stop implements hal.TWI. A buffered write that still fails after the
// retries reports TWIDataWriteNack.
func (t *TWI) Stop() hal.TWIStatus {
	st := hal.TWINoInfo
	if !t.read && len(t.wbuf) > 0 {
		if err := t.tx(t.wbuf, nil); err != nil {
			st = hal.TWIDataWriteNack
		}
	}
	t.held, t.ctrlNext, t.read = false, false, false
	t.wbuf = t.wbuf[:0]
	return st
}

func (t *TWI) tx(w, r []byte) error {
	var err error
	for attempt := 0; attempt <= t.Retries; attempt++ {
		if err = t.Bus.Tx(t.addr, w, r); err == nil {
			t.err = nil
			return nil
		}
		time.Sleep(t.RetryDelay)
	}
	glog.Warningf("i2c tx 0x%02x: %v", t.addr, err)
	t.err = err
	return err
}
