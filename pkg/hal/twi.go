package hal

import "fmt"

// TWIStatus is the bus status reported after each 2-wire bus operation.
// The values mirror the status register of the AVR TWI peripheral so the
// protocol layer can be checked against the device datasheet directly.
type TWIStatus uint8

// Status codes of a master on the 2-wire bus.
const (
	TWIBusError        TWIStatus = 0x00
	TWIStart           TWIStatus = 0x08
	TWIRepeatedStart   TWIStatus = 0x10
	TWIAddrWriteAck    TWIStatus = 0x18
	TWIAddrWriteNack   TWIStatus = 0x20
	TWIDataWriteAck    TWIStatus = 0x28
	TWIDataWriteNack   TWIStatus = 0x30
	TWIArbitrationLost TWIStatus = 0x38
	TWIAddrReadAck     TWIStatus = 0x40
	TWIAddrReadNack    TWIStatus = 0x48
	TWIDataReadAck     TWIStatus = 0x50
	TWIDataReadNack    TWIStatus = 0x58
	// TWINoInfo is the idle status after a stop condition.
	TWINoInfo TWIStatus = 0xf8
)

var twiStatusNames = map[TWIStatus]string{
	TWIBusError:        "bus-error",
	TWIStart:           "start",
	TWIRepeatedStart:   "repeated-start",
	TWIAddrWriteAck:    "addr-w-ack",
	TWIAddrWriteNack:   "addr-w-nack",
	TWIDataWriteAck:    "data-w-ack",
	TWIDataWriteNack:   "data-w-nack",
	TWIArbitrationLost: "arbitration-lost",
	TWIAddrReadAck:     "addr-r-ack",
	TWIAddrReadNack:    "addr-r-nack",
	TWIDataReadAck:     "data-r-ack",
	TWIDataReadNack:    "data-r-nack",
	TWINoInfo:          "no-info",
}

func (s TWIStatus) String() string {
	if name, ok := twiStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(0x%02x)", uint8(s))
}

// TWI is a single-master 2-wire bus driven one condition or byte at a time.
// Each call returns once the hardware has finished the operation.
type TWI interface {
	// Start issues a start condition, or a repeated start if the bus is held.
	Start() TWIStatus
	// Write clocks out one byte and reports whether it was acknowledged.
	Write(b byte) TWIStatus
	// Read clocks in one byte, answering with ACK if ack is set.
	Read(ack bool) (byte, TWIStatus)
	// Stop issues a stop condition and releases the bus. It reports
	// TWINoInfo, or the failure of writes a bus adapter deferred to the
	// stop.
	Stop() TWIStatus
}
