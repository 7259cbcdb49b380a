// Package all registers every shell command.
package all

import (
	// command providers
	_ "github.com/robotalks/linebot/pkg/cli/cmds/calib"
	_ "github.com/robotalks/linebot/pkg/cli/cmds/eeprom"
	_ "github.com/robotalks/linebot/pkg/cli/cmds/ir"
	_ "github.com/robotalks/linebot/pkg/cli/cmds/track"
)
