package sim

import (
	"github.com/robotalks/linebot/pkg/hal"
)

// ScriptedLine replays a fixed sequence of sensor frames, one per read,
// and keeps returning the last frame once the script is exhausted.
type ScriptedLine struct {
	Frames []hal.SensorFrame
	Reads  int
}

// NewScriptedLine creates a ScriptedLine.
func NewScriptedLine(frames ...hal.SensorFrame) *ScriptedLine {
	return &ScriptedLine{Frames: frames}
}

// Repeat appends frame n times, for building long scripts.
func (s *ScriptedLine) Repeat(frame hal.SensorFrame, n int) *ScriptedLine {
	for i := 0; i < n; i++ {
		s.Frames = append(s.Frames, frame)
	}
	return s
}

// ReadLine implements hal.LineSensor.
func (s *ScriptedLine) ReadLine() hal.SensorFrame {
	if len(s.Frames) == 0 {
		return hal.FrameNone
	}
	i := s.Reads
	if i >= len(s.Frames) {
		i = len(s.Frames) - 1
	}
	s.Reads++
	return s.Frames[i]
}

// MotorRecorder records every command written to the motors.
type MotorRecorder struct {
	Commands []hal.MotorCommand
}

// SetMotorSpeed implements hal.Motors.
func (r *MotorRecorder) SetMotorSpeed(cmd hal.MotorCommand) {
	r.Commands = append(r.Commands, cmd.Clamped())
}

// Last returns the most recent command, or a stopped command if none.
func (r *MotorRecorder) Last() hal.MotorCommand {
	if len(r.Commands) == 0 {
		return hal.MotorCommand{}
	}
	return r.Commands[len(r.Commands)-1]
}

// Reset forgets recorded commands.
func (r *MotorRecorder) Reset() {
	r.Commands = nil
}
