package telemetry

import (
	"sync"

	fx "github.com/robotalks/linebot/pkg/framework"
)

// Publisher sends telemetry somewhere.
type Publisher interface {
	Publish(msg Message) error
}

// PublisherFunc adapts a func to Publisher.
type PublisherFunc func(msg Message) error

// Publish implements Publisher.
func (f PublisherFunc) Publish(msg Message) error {
	return f(msg)
}

// Nop drops every message.
var Nop Publisher = PublisherFunc(func(Message) error { return nil })

// Multi publishes to all publishers and aggregates their errors.
type Multi []Publisher

// Publish implements Publisher.
func (m Multi) Publish(msg Message) error {
	var errs fx.AggregatedError
	for _, p := range m {
		errs.Add(p.Publish(msg))
	}
	return errs.Aggregate()
}

// Recorder keeps published messages in memory.
type Recorder struct {
	lock     sync.Mutex
	messages []Message
}

// Publish implements Publisher.
func (r *Recorder) Publish(msg Message) error {
	r.lock.Lock()
	r.messages = append(r.messages, msg)
	r.lock.Unlock()
	return nil
}

// Messages returns a copy of what was published.
func (r *Recorder) Messages() []Message {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]Message(nil), r.messages...)
}
