package eeprom

import (
	"bytes"
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/linebot/pkg/cli/sh"
)

// DefaultReadLen is how many bytes eeprom.read dumps without N.
const DefaultReadLen = 16

// Dump is a block of memory content.
type Dump struct {
	Addr uint16 `json:"addr"`
	Data []byte `json:"data"`
}

func (d Dump) String() string {
	var w bytes.Buffer
	for i := 0; i < len(d.Data); i += 16 {
		end := i + 16
		if end > len(d.Data) {
			end = len(d.Data)
		}
		if i > 0 {
			w.WriteByte('\n')
		}
		fmt.Fprintf(&w, "%04x: % x", d.Addr+uint16(i), d.Data[i:end])
	}
	return w.String()
}

// Read dumps memory: ADDR [N].
func Read(s *sh.Shell, args []string) (interface{}, error) {
	addr, err := sh.ArgUint(args, 0, "ADDR", 16)
	if err != nil {
		return nil, err
	}
	n := DefaultReadLen
	if len(args) > 1 {
		if n, err = sh.ArgInt(args, 1, "N"); err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("Invalid N: %d", n)
		}
	}
	data, err := s.Robot.ReadMemory(uint16(addr), n)
	if err != nil {
		return nil, err
	}
	return Dump{Addr: uint16(addr), Data: data}, nil
}

// Write stores hex bytes: ADDR HEX...
func Write(s *sh.Shell, args []string) (interface{}, error) {
	addr, err := sh.ArgUint(args, 0, "ADDR", 16)
	if err != nil {
		return nil, err
	}
	data, err := sh.ArgBytes(args, 1, "DATA")
	if err != nil {
		return nil, err
	}
	return nil, s.Robot.WriteMemory(uint16(addr), data)
}

var (
	// ReadCmd exposes Read.
	ReadCmd = ishell.Cmd{
		Name:    "eeprom.read",
		Aliases: []string{"er"},
		Help:    "ADDR [N]",
		Func:    sh.Command(Read),
	}

	// WriteCmd exposes Write.
	WriteCmd = ishell.Cmd{
		Name:    "eeprom.write",
		Aliases: []string{"ew"},
		Help:    "ADDR HEX...",
		Func:    sh.Command(Write),
	}
)

func init() {
	sh.AddCmds(
		&ReadCmd,
		&WriteCmd,
	)
}
