package main

import (
	"flag"
	"log"

	"github.com/robotalks/linebot/pkg/config"
	"github.com/robotalks/linebot/pkg/telemetry"
)

var robotID = "+"

func init() {
	flag.StringVar(&robotID, "robot", robotID, "Robot to watch, + for all.")
}

func main() {
	config.SetupFlags()
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := telemetry.NewQueueFromURL(config.Default().Telemetry.MQTTURL)
	if err != nil {
		log.Fatalln(err)
	}
	if err := q.Connect(); err != nil {
		log.Fatalln(err)
	}
	telemetry.Watch(q, robotID, func(robot string, msg telemetry.Message) {
		log.Printf("%s/%s: %s", robot, msg.Topic(), msg.String())
	})
	<-(chan struct{})(nil)
}
