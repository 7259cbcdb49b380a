package main

import (
	"context"
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/linebot/pkg/config"
	"github.com/robotalks/linebot/pkg/env"
	fx "github.com/robotalks/linebot/pkg/framework"
	"github.com/robotalks/linebot/pkg/robot"
)

var address uint = robot.RemoteAddress

func init() {
	config.SetupFlags()
	flag.UintVar(&address, "addr", address, "Device address sent with every command.")
}

func main() {
	flag.Parse()

	conf, err := config.Load(config.File())
	if err != nil {
		glog.Exitf("config: %v", err)
	}
	e, err := env.NewHardwareEnv(conf)
	if err != nil {
		glog.Exitf("board: %v", err)
	}
	defer e.Close()
	if err := e.ConnectTelemetry(); err != nil {
		glog.Exitf("telemetry: %v", err)
	}
	bot, err := robot.New(e.Board, conf, e.Publisher)
	if err != nil {
		glog.Exit(err)
	}
	remote := &robot.Remote{Robot: bot, Address: uint8(address)}

	runner := fx.NewRunnerWith(context.Background()).HandleSignals()
	runner.Go(remote)
	runner.Go(e.Runners...)
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}
