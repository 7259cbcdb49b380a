package calibration

import "github.com/golang/glog"

// Memory is the block access the record needs, satisfied by eeprom.Driver.
type Memory interface {
	ReadBlock(addr uint16, out []byte) error
	WriteBlock(addr uint16, data []byte) error
}

// Load reads the record from memory.
func Load(m Memory) (Record, error) {
	var r Record
	buf := make([]byte, Size)
	if err := m.ReadBlock(BaseAddr, buf); err != nil {
		return r, err
	}
	err := r.UnmarshalBinary(buf)
	if err == nil {
		glog.V(2).Infof("calibration loaded: %v", r)
	}
	return r, err
}

// Save writes the record to memory.
func Save(m Memory, r Record) error {
	buf, _ := r.MarshalBinary()
	if err := m.WriteBlock(BaseAddr, buf); err != nil {
		return err
	}
	glog.V(2).Infof("calibration saved: %v", r)
	return nil
}
