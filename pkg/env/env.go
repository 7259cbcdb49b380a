// Package env builds the process environment of a robot binary: the
// board, simulated or on host pins, and the telemetry transports.
package env

import (
	"context"
	"net/http"

	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/config"
	fx "github.com/robotalks/linebot/pkg/framework"
	"github.com/robotalks/linebot/pkg/hal"
	"github.com/robotalks/linebot/pkg/hal/periph"
	"github.com/robotalks/linebot/pkg/telemetry"
)

// TelemetryPath is where the websocket hub is served.
const TelemetryPath = "/telemetry"

// Env is what a robot binary runs with.
type Env struct {
	Config    *config.Config
	RobotID   string
	Board     *hal.Board
	Sim       *Sim
	Publisher telemetry.Publisher
	// Runners are background activities such as the websocket server.
	Runners []fx.Runnable

	queue *telemetry.Queue
}

// NewSimEnv creates an Env around a simulated robot.
func NewSimEnv(conf *config.Config) *Env {
	e := newEnv(conf)
	e.Sim = NewSim(conf.Sim)
	e.Board = e.Sim.Board()
	return e
}

// NewHardwareEnv creates an Env on the host pins.
func NewHardwareEnv(conf *config.Config) (*Env, error) {
	board, err := periph.Open(conf.Pins)
	if err != nil {
		return nil, err
	}
	e := newEnv(conf)
	e.Board = board
	return e, nil
}

func newEnv(conf *config.Config) *Env {
	id := telemetry.RobotID(conf.Telemetry.RobotID)
	conf.Telemetry.RobotID = id
	return &Env{Config: conf, RobotID: id, Publisher: telemetry.Nop}
}

// ConnectTelemetry sets up the configured transports. An unreachable
// broker is logged and skipped so the robot still runs.
func (e *Env) ConnectTelemetry() error {
	var pubs telemetry.Multi
	t := e.Config.Telemetry
	if t.MQTTURL != "" {
		q, err := telemetry.NewQueueFromURL(t.MQTTURL)
		if err != nil {
			return err
		}
		if err := q.Connect(); err != nil {
			glog.Warningf("mqtt %s unavailable: %v", t.MQTTURL, err)
		} else {
			e.queue = q
			pubs = append(pubs, telemetry.NewMQTTPublisher(q, e.RobotID))
		}
	}
	if t.WebsocketAddr != "" {
		hub := telemetry.NewHub()
		pubs = append(pubs, hub)
		mux := http.NewServeMux()
		mux.Handle(TelemetryPath, hub.Handler())
		srv := &http.Server{Addr: t.WebsocketAddr, Handler: mux}
		e.Runners = append(e.Runners, fx.NamedRun("telemetry-ws", fx.RunnableFunc(func(ctx context.Context) error {
			glog.Infof("telemetry websocket on %s%s", t.WebsocketAddr, TelemetryPath)
			return fx.RunWithContextCancel(ctx, func() { srv.Close() }, srv.ListenAndServe)
		})))
	}
	if len(pubs) > 0 {
		e.Publisher = pubs
	}
	return nil
}

// Queue returns the connected MQTT queue, nil if none.
func (e *Env) Queue() *telemetry.Queue {
	return e.queue
}

// Close releases transports.
func (e *Env) Close() error {
	if e.queue != nil {
		return e.queue.Close()
	}
	return nil
}
