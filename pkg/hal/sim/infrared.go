package sim

import (
	"sort"
	"time"
)

type carrierEdge struct {
	at time.Duration
	on bool
}

// InfraredLink is a line-of-sight channel between an emitter and a
// photodetector. Carrier edges are stamped with the transmitter clock and
// looked up with the receiver clock, so a frame sent on one clock can be
// replayed later against another.
type InfraredLink struct {
	tx, rx *Clock
	edges  []carrierEdge
	on     bool
}

// NewInfraredLink creates a link. Passing the same clock twice gives a
// live link.
func NewInfraredLink(tx, rx *Clock) *InfraredLink {
	return &InfraredLink{tx: tx, rx: rx}
}

// SetCarrier implements hal.InfraredTransmitter.
func (l *InfraredLink) SetCarrier(on bool) {
	if on == l.on {
		return
	}
	l.on = on
	l.edges = append(l.edges, carrierEdge{at: l.tx.Now(), on: on})
}

// Pulse schedules a carrier burst of width starting at at.
func (l *InfraredLink) Pulse(at, width time.Duration) {
	l.edges = append(l.edges, carrierEdge{at: at, on: true}, carrierEdge{at: at + width, on: false})
	sort.SliceStable(l.edges, func(i, j int) bool { return l.edges[i].at < l.edges[j].at })
}

// CarrierDetected implements hal.InfraredReceiver.
func (l *InfraredLink) CarrierDetected() bool {
	now := l.rx.Now()
	n := sort.Search(len(l.edges), func(i int) bool { return l.edges[i].at > now })
	if n == 0 {
		return false
	}
	return l.edges[n-1].on
}

// Bursts returns the carrier-on durations in order, for inspection.
func (l *InfraredLink) Bursts() []time.Duration {
	var out []time.Duration
	for i, e := range l.edges {
		if e.on && i+1 < len(l.edges) {
			out = append(out, l.edges[i+1].at-e.at)
		}
	}
	return out
}
