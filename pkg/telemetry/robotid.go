package telemetry

import (
	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// FallbackRobotID is used when the machine has no readable ID.
const FallbackRobotID = "linebot"

// RobotID returns override if set, otherwise an ID derived from the
// machine ID so it is stable across reboots without exposing the raw ID.
func RobotID(override string) string {
	if override != "" {
		return override
	}
	id, err := machineid.ProtectedID(FallbackRobotID)
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		return FallbackRobotID
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return id
}
