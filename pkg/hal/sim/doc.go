// Package sim provides deterministic virtual hardware.
//
// All devices share a virtual Clock. Time only moves when some routine
// busy-waits through Clock.Delay, and every device observes the advance
// through its listener, so a whole tracking run or IR reception replays
// identically on every execution.
package sim
