// Package telemetry publishes what the robot did: tracking runs, infrared
// receptions and the calibration it booted with. Messages are protobuf
// encoded and keyed by robot ID, carried over MQTT or websocket.
package telemetry
