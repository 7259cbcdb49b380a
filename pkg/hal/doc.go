// Package hal defines the hardware boundary of the robot.
//
// Everything the control core needs from the board is expressed here as
// small interfaces: busy-wait delays, a one-shot countdown timer, the
// thresholded line sensor array, the differential motors, the infrared
// photodetector and emitter, the push button with its edge interrupt and
// the 2-wire serial bus. Implementations live in sub-packages:
// sim provides deterministic virtual hardware and periph drives real pins
// on a Linux host.
package hal
