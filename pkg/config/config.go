// Package config assembles the robot configuration from defaults, an
// optional YAML file and command line flags.
package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robotalks/linebot/pkg/drive"
	"github.com/robotalks/linebot/pkg/eeprom"
	fx "github.com/robotalks/linebot/pkg/framework"
	"github.com/robotalks/linebot/pkg/hal"
	"github.com/robotalks/linebot/pkg/hal/periph"
	"github.com/robotalks/linebot/pkg/hal/sim"
	"github.com/robotalks/linebot/pkg/infrared"
	"github.com/robotalks/linebot/pkg/nav"
)

// Config is the complete robot configuration.
type Config struct {
	Tracking  Tracking     `yaml:"tracking"`
	Infrared  Infrared     `yaml:"infrared"`
	EEPROM    EEPROM       `yaml:"eeprom"`
	Drive     drive.Config `yaml:"drive"`
	Telemetry Telemetry    `yaml:"telemetry"`
	Sim       Sim          `yaml:"sim"`
	Pins      periph.Pins  `yaml:"pins"`
}

// Tracking tunes line following.
type Tracking struct {
	nav.Params `yaml:",inline"`
	// PollInterval separates reads in wait loops.
	PollInterval time.Duration `yaml:"poll-interval"`
}

// Infrared tunes the transceiver.
type Infrared struct {
	Timing       infrared.Timing     `yaml:"timing"`
	Thresholds   infrared.Thresholds `yaml:"thresholds"`
	SamplePeriod time.Duration       `yaml:"sample-period"`
}

// EEPROM selects and tunes the calibration memory.
type EEPROM struct {
	Bank         uint8 `yaml:"bank"`
	PageSize     int   `yaml:"page-size"`
	MaxBusyPolls int   `yaml:"max-busy-polls"`
}

// Telemetry configures where reports go. Empty URLs disable a transport.
type Telemetry struct {
	// MQTTURL is like mqtt://host:1883/prefix/.
	MQTTURL string `yaml:"mqtt-url"`
	// WebsocketAddr is the listen address of the websocket hub.
	WebsocketAddr string `yaml:"websocket-addr"`
	// RobotID overrides the machine derived ID.
	RobotID string `yaml:"robot-id"`
}

// Track kinds for the simulator.
const (
	TrackStraight = "straight"
	TrackRing     = "ring"
)

// Sim describes the simulated world.
type Sim struct {
	Track   string   `yaml:"track"`
	Radius  float64  `yaml:"radius"`
	Width   float64  `yaml:"width"`
	Body    sim.Body `yaml:"body"`
	StartX  float64  `yaml:"start-x"`
	StartY  float64  `yaml:"start-y"`
	Heading float64  `yaml:"heading"`
}

// NewTrack builds the configured track.
func (s Sim) NewTrack() sim.Track {
	if s.Track == TrackRing {
		return sim.RingTrack{Radius: s.Radius, Width: s.Width}
	}
	return sim.StraightTrack{Width: s.Width}
}

// StartPose is where the robot is placed.
func (s Sim) StartPose() sim.Pose2D {
	return sim.Pose2D{
		Pos2D:       sim.Pos2D{X: s.StartX, Y: s.StartY},
		Orientation: sim.AngleFromDegrees(s.Heading),
	}
}

var (
	defaultConfig = Config{
		Tracking: Tracking{
			Params:       nav.DefaultParams,
			PollInterval: nav.DefaultPollInterval,
		},
		Infrared: Infrared{
			Timing:       infrared.SIRC,
			Thresholds:   infrared.DefaultThresholds,
			SamplePeriod: infrared.DefaultSamplePeriod,
		},
		EEPROM: EEPROM{PageSize: eeprom.PageSize},
		Drive:  drive.DefaultConfig,
		Telemetry: Telemetry{
			MQTTURL: "mqtt://localhost:1883/linebot/",
		},
		Sim: Sim{
			Track:  TrackRing,
			Radius: 500,
			Width:  15,
			Body:   sim.DefaultBody,
			StartX: 500,
			// counterclockwise around the ring
			Heading: 90,
		},
		Pins: periph.DefaultPins,
	}

	configFile string
)

func init() {
	if val := os.Getenv("LINEBOT_MQTT_URL"); val != "" {
		defaultConfig.Telemetry.MQTTURL = val
	}
	configFile = os.Getenv("LINEBOT_CONFIG")
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&configFile, "config", configFile, "YAML config file loaded over defaults.")
	flag.StringVar(&defaultConfig.Telemetry.MQTTURL, "mqtt", defaultConfig.Telemetry.MQTTURL, "MQTT broker URL, empty to disable.")
	flag.StringVar(&defaultConfig.Telemetry.WebsocketAddr, "ws", defaultConfig.Telemetry.WebsocketAddr, "Websocket telemetry listen address, empty to disable.")
	flag.StringVar(&defaultConfig.Telemetry.RobotID, "id", defaultConfig.Telemetry.RobotID, "Robot ID, defaults to one derived from the machine ID.")
	flag.IntVar(&defaultConfig.Tracking.Speed, "speed", defaultConfig.Tracking.Speed, "Nominal tracking duty (0-255).")
	flag.BoolVar(&defaultConfig.Tracking.UseEdgeSensors, "edge-sensors", defaultConfig.Tracking.UseEdgeSensors, "React to edge-only frames.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// File returns the config file selected by flag or environment.
func File() string {
	return configFile
}

// Load reads a YAML file over the defaults and validates the result.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	conf := NewConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := conf.Decode(data); err != nil {
			return nil, fmt.Errorf("%s: %v", path, err)
		}
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Decode merges YAML data into c.
func (c *Config) Decode(data []byte) error {
	return yaml.Unmarshal(data, c)
}

// Validate checks ranges and cross-field constraints.
func (c *Config) Validate() error {
	var errs fx.AggregatedError
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs.Add(fmt.Errorf(format, args...))
		}
	}
	t := c.Tracking
	check(t.Speed > 0 && t.Speed <= hal.MaxDuty, "tracking.speed %d out of 1..%d", t.Speed, hal.MaxDuty)
	check(t.InitialTurnDifference >= 0, "tracking.initial-turn-difference must not be negative")
	check(t.MaxTurnDifference >= t.InitialTurnDifference,
		"tracking.max-turn-difference %d below initial %d", t.MaxTurnDifference, t.InitialTurnDifference)
	check(t.TickDelay > 0, "tracking.tick-delay must be positive")
	check(t.PollInterval > 0, "tracking.poll-interval must be positive")

	ir := c.Infrared
	check(ir.SamplePeriod > 0, "infrared.sample-period must be positive")
	check(ir.Thresholds.HighTicks > 0 && ir.Thresholds.HighTicks < ir.Thresholds.HeaderTicks,
		"infrared.thresholds need 0 < high-ticks < header-ticks")
	check(ir.Timing.Repeats > 0, "infrared.timing.repeats must be positive")

	_, err := eeprom.SelectBank(c.EEPROM.Bank)
	errs.Add(err)
	ps := c.EEPROM.PageSize
	check(ps > 0 && ps <= eeprom.PageSize && ps&(ps-1) == 0, "eeprom.page-size %d is not a power of two up to %d", ps, eeprom.PageSize)
	check(c.EEPROM.MaxBusyPolls >= 0, "eeprom.max-busy-polls must not be negative")

	d := c.Drive
	check(d.RightTrim.Den >= 0, "drive.right-trim.den must not be negative")
	check(d.RotationSpeed > 0 && d.RotationSpeed <= hal.MaxDuty, "drive.rotation-speed %d out of range", d.RotationSpeed)

	s := c.Sim
	check(s.Track == TrackStraight || s.Track == TrackRing, "sim.track %q unknown", s.Track)
	check(s.Width > 0, "sim.width must be positive")
	check(s.Track != TrackRing || s.Radius > 0, "sim.radius must be positive for a ring")
	return errs.Aggregate()
}

// NewDriver creates an EEPROM driver on bus as configured.
func (c *Config) NewDriver(bus hal.TWI) (*eeprom.Driver, error) {
	d := eeprom.New(bus)
	if err := d.SelectBank(c.EEPROM.Bank); err != nil {
		return nil, err
	}
	d.PageSize = c.EEPROM.PageSize
	d.MaxBusyPolls = c.EEPROM.MaxBusyPolls
	return d, nil
}

// NewReceiver creates an infrared receiver as configured.
func (c *Config) NewReceiver(detector hal.InfraredReceiver, clock hal.Clock) *infrared.Receiver {
	r := infrared.NewReceiver(detector, clock)
	r.SamplePeriod = c.Infrared.SamplePeriod
	r.Thresholds = c.Infrared.Thresholds
	return r
}

// NewTransmitter creates an infrared transmitter as configured.
func (c *Config) NewTransmitter(emitter hal.InfraredTransmitter, clock hal.Clock) *infrared.Transmitter {
	t := infrared.NewTransmitter(emitter, clock)
	t.Timing = c.Infrared.Timing
	return t
}
