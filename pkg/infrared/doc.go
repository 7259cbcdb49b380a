// Package infrared implements the robot's point-to-point infrared link.
//
// Frames are SIRC style: a long header burst, then 7 command bits and 5
// address bits sent LSB first, each bit a carrier burst whose length gives
// its value followed by a fixed gap. The transmitter repeats every frame
// three times; the receiver takes the first complete decode and does not
// validate it, there is no checksum in the protocol.
//
// The receiver also watches the on-board button. A press during reception
// abandons the frame and the number of presses counted afterwards is
// returned instead, which lets an operator key a command in by hand.
package infrared
