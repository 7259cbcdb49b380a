// Package nav keeps the robot over a painted line.
//
// Engine.FollowLine is a closed-loop controller ticking at a fixed delay.
// Every tick it samples the sensor array, asks the caller's StopCondition
// whether to return, picks a control state and commands the wheels. The
// stop condition is always evaluated before any state change or motor
// command of the same tick, and it is the only way out of the loop.
//
// FollowRectangle and FollowCorner are scripted procedures sharing the
// same primitives: the first tracks the inside of an enclosed rectangle
// until both edge sensors hit its far side, the second rotates through a
// corner and aligns the center sensor with the new segment.
package nav
