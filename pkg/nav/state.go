package nav

// State is the control mode of one tracking run.
type State int

// States.
const (
	Searching       State = iota // line lost, rotating toward last seen side
	OnLine                       // centered, both wheels at nominal speed
	CorrectingLeft               // drifted right of the line, slowing left wheel
	CorrectingRight              // drifted left of the line, slowing right wheel
	AbruptLeft                   // only the left edge sensor sees the line
	AbruptRight                  // only the right edge sensor sees the line
	Inside                       // inside a rectangle, no edge touched
)

var stateNames = map[State]string{
	Searching:       "searching",
	OnLine:          "on-line",
	CorrectingLeft:  "correcting-left",
	CorrectingRight: "correcting-right",
	AbruptLeft:      "abrupt-left",
	AbruptRight:     "abrupt-right",
	Inside:          "inside",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
