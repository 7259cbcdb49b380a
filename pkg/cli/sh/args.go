package sh

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Arg returns args[i] or an error naming the missing argument.
func Arg(args []string, i int, name string) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("%s required", name)
	}
	return args[i], nil
}

// ArgUint parses args[i] as an unsigned integer of bits width. Prefixes
// 0x and 0 select hex and octal.
func ArgUint(args []string, i int, name string, bits int) (uint64, error) {
	str, err := Arg(args, i, name)
	if err != nil {
		return 0, err
	}
	val, err := strconv.ParseUint(str, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s: %v", name, err)
	}
	return val, nil
}

// ArgInt parses args[i] as an int.
func ArgInt(args []string, i int, name string) (int, error) {
	str, err := Arg(args, i, name)
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("Invalid %s: %v", name, err)
	}
	return val, nil
}

// ArgDuration parses args[i] as a duration, or returns def when absent.
// A bare number is milliseconds.
func ArgDuration(args []string, i int, name string, def time.Duration) (time.Duration, error) {
	if i >= len(args) {
		return def, nil
	}
	if ms, err := strconv.Atoi(args[i]); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(args[i])
	if err != nil {
		return 0, fmt.Errorf("Invalid %s: %v", name, err)
	}
	return d, nil
}

// ArgClockwise parses cw or ccw, defaulting to clockwise when absent.
func ArgClockwise(args []string, i int) (bool, error) {
	if i >= len(args) {
		return true, nil
	}
	switch strings.ToLower(args[i]) {
	case "cw", "clockwise", "right":
		return true, nil
	case "ccw", "counterclockwise", "left":
		return false, nil
	}
	return false, fmt.Errorf("Invalid DIRECTION %q, want cw or ccw", args[i])
}

// ArgBytes parses the remaining args from i as hex, joined.
func ArgBytes(args []string, i int, name string) ([]byte, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("%s required", name)
	}
	data, err := hex.DecodeString(strings.Join(args[i:], ""))
	if err != nil {
		return nil, fmt.Errorf("Invalid %s: %v", name, err)
	}
	return data, nil
}
