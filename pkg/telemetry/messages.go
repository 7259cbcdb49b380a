package telemetry

import (
	"fmt"

	"github.com/golang/protobuf/proto"
)

// Topics, relative to the robot ID.
const (
	TrackingTopic    = "tracking"
	InfraredTopic    = "infrared"
	CalibrationTopic = "calibration"
)

// Message is a telemetry record.
type Message interface {
	proto.Message
	Topic() string
}

// TrackingReport summarizes one tracking procedure.
type TrackingReport struct {
	Robot       string `protobuf:"bytes,1,opt,name=robot,proto3" json:"robot,omitempty"`
	Procedure   string `protobuf:"bytes,2,opt,name=procedure,proto3" json:"procedure,omitempty"`
	Ticks       uint32 `protobuf:"varint,3,opt,name=ticks,proto3" json:"ticks,omitempty"`
	ElapsedMs   uint32 `protobuf:"varint,4,opt,name=elapsed_ms,json=elapsedMs,proto3" json:"elapsed_ms,omitempty"`
	FinalState  string `protobuf:"bytes,5,opt,name=final_state,json=finalState,proto3" json:"final_state,omitempty"`
	LastFrame   uint32 `protobuf:"varint,6,opt,name=last_frame,json=lastFrame,proto3" json:"last_frame,omitempty"`
	Transitions uint32 `protobuf:"varint,7,opt,name=transitions,proto3" json:"transitions,omitempty"`
}

// Topic implements Message.
func (m *TrackingReport) Topic() string { return TrackingTopic }

// ProtoMessage implements proto.Message.
func (m *TrackingReport) ProtoMessage() {}

// Reset implements proto.Message.
func (m *TrackingReport) Reset() { *m = TrackingReport{} }

// String implements proto.Message.
func (m *TrackingReport) String() string { return proto.CompactTextString(m) }

// InfraredReception is one received command.
type InfraredReception struct {
	Robot   string `protobuf:"bytes,1,opt,name=robot,proto3" json:"robot,omitempty"`
	Raw     uint32 `protobuf:"varint,2,opt,name=raw,proto3" json:"raw,omitempty"`
	Command uint32 `protobuf:"varint,3,opt,name=command,proto3" json:"command,omitempty"`
	Address uint32 `protobuf:"varint,4,opt,name=address,proto3" json:"address,omitempty"`
	Source  string `protobuf:"bytes,5,opt,name=source,proto3" json:"source,omitempty"`
}

// Topic implements Message.
func (m *InfraredReception) Topic() string { return InfraredTopic }

// ProtoMessage implements proto.Message.
func (m *InfraredReception) ProtoMessage() {}

// Reset implements proto.Message.
func (m *InfraredReception) Reset() { *m = InfraredReception{} }

// String implements proto.Message.
func (m *InfraredReception) String() string { return proto.CompactTextString(m) }

// CalibrationSnapshot is the record in use after boot.
type CalibrationSnapshot struct {
	Robot     string   `protobuf:"bytes,1,opt,name=robot,proto3" json:"robot,omitempty"`
	Values    []uint32 `protobuf:"varint,2,rep,packed,name=values,proto3" json:"values,omitempty"`
	Defaulted bool     `protobuf:"varint,3,opt,name=defaulted,proto3" json:"defaulted,omitempty"`
}

// Topic implements Message.
func (m *CalibrationSnapshot) Topic() string { return CalibrationTopic }

// ProtoMessage implements proto.Message.
func (m *CalibrationSnapshot) ProtoMessage() {}

// Reset implements proto.Message.
func (m *CalibrationSnapshot) Reset() { *m = CalibrationSnapshot{} }

// String implements proto.Message.
func (m *CalibrationSnapshot) String() string { return proto.CompactTextString(m) }

// Envelope carries a message with its topic over stream transports.
type Envelope struct {
	Topic   string `protobuf:"bytes,1,opt,name=topic,proto3" json:"topic,omitempty"`
	Payload []byte `protobuf:"bytes,2,opt,name=payload,proto3" json:"payload,omitempty"`
}

// ProtoMessage implements proto.Message.
func (m *Envelope) ProtoMessage() {}

// Reset implements proto.Message.
func (m *Envelope) Reset() { *m = Envelope{} }

// String implements proto.Message.
func (m *Envelope) String() string { return proto.CompactTextString(m) }

// NewMessage returns an empty message for topic.
func NewMessage(topic string) (Message, error) {
	switch topic {
	case TrackingTopic:
		return &TrackingReport{}, nil
	case InfraredTopic:
		return &InfraredReception{}, nil
	case CalibrationTopic:
		return &CalibrationSnapshot{}, nil
	}
	return nil, fmt.Errorf("unknown telemetry topic %q", topic)
}

// Decode parses a payload published on topic.
func Decode(topic string, payload []byte) (Message, error) {
	msg, err := NewMessage(topic)
	if err != nil {
		return nil, err
	}
	if err := proto.Unmarshal(payload, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func encode(msg Message) ([]byte, error) {
	return proto.Marshal(msg)
}

// Seal wraps msg in an Envelope and encodes it.
func Seal(msg Message) ([]byte, error) {
	payload, err := encode(msg)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(&Envelope{Topic: msg.Topic(), Payload: payload})
}

// Open decodes an Envelope produced by Seal.
func Open(data []byte) (Message, error) {
	var env Envelope
	if err := proto.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	return Decode(env.Topic, env.Payload)
}
