package nav

import "errors"

// ErrInvalidSensor indicates a sensor index outside the array.
var ErrInvalidSensor = errors.New("invalid sensor index")
