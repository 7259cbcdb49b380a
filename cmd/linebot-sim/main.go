package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/config"
	"github.com/robotalks/linebot/pkg/env"
	fx "github.com/robotalks/linebot/pkg/framework"
	"github.com/robotalks/linebot/pkg/robot"
)

var (
	sections    = "3,1,2"
	sectionTime = robot.DefaultSectionTime
)

func init() {
	config.SetupFlags()
	flag.StringVar(&sections, "sections", sections, "Comma separated section numbers sent by the simulated remote.")
	flag.DurationVar(&sectionTime, "section-time", sectionTime, "Time followed per section unit.")
}

func parseSections(str string) ([]uint8, error) {
	var out []uint8
	for _, part := range strings.Split(str, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 7)
		if err != nil || n == 0 {
			return nil, fmt.Errorf("invalid section %q", part)
		}
		out = append(out, uint8(n))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sections")
	}
	return out, nil
}

func main() {
	flag.Parse()

	conf, err := config.Load(config.File())
	if err != nil {
		glog.Exitf("config: %v", err)
	}
	list, err := parseSections(sections)
	if err != nil {
		glog.Exit(err)
	}

	e := env.NewSimEnv(conf)
	defer e.Close()
	if err := e.ConnectTelemetry(); err != nil {
		glog.Exitf("telemetry: %v", err)
	}
	bot, err := robot.New(e.Board, conf, e.Publisher)
	if err != nil {
		glog.Exit(err)
	}
	starts := e.Sim.RemoteSections(conf.Infrared.Timing, sectionTime, list...)
	glog.Infof("remote sends %v at %v", list, starts)

	ctx, cancel := context.WithCancel(context.Background())
	mission := &robot.Mission{Robot: bot, SectionTime: sectionTime, Rounds: len(list)}
	runner := fx.NewRunnerWith(ctx).HandleSignals()
	runner.Go(fx.NamedRun(mission.Name(), fx.RunnableFunc(func(ctx context.Context) error {
		defer cancel()
		return mission.Run(ctx)
	})))
	runner.Go(e.Runners...)
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
	pose := e.Sim.World.Pose
	fmt.Printf("done at %v: pose=(%.1f,%.1f) heading=%.1f\n",
		e.Sim.Clock.Now().Round(time.Millisecond), pose.X, pose.Y, pose.Orientation.Degrees())
}
