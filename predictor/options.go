package predictor

import (
	"time"

	"github.com/theoremus-urban-solutions/trainboard/feed"
)

// Offset projects a station time onto the waypoint for one direction.
type Offset struct {
	Average time.Duration // signed, added to the station time
	StdDev  time.Duration
}

// Offsets holds one Offset per direction.
type Offsets struct {
	Inbound  Offset
	Outbound Offset
}

// For returns the offset for d. Unknown directions get the zero offset.
func (o Offsets) For(d feed.Direction) Offset {
	switch d {
	case feed.Inbound:
		return o.Inbound
	case feed.Outbound:
		return o.Outbound
	}
	return Offset{}
}

// Options configures a Predictor. It has no dependency on config files.
type Options struct {
	Offsets Offsets

	// WarningLead opens the passing window earlier than the statistical
	// window alone would.
	WarningLead time.Duration

	// Staleness drops estimates older than now by more than this. It only
	// matters before the arrived tracker has been populated, e.g. at startup.
	Staleness time.Duration

	ContinuityCapacity int
	ArrivedCapacity    int
}

// Values measured at the Franklin line waypoint.
const (
	DefaultInboundOffset      = -63 * time.Second
	DefaultOutboundOffset     = 93 * time.Second
	DefaultStdDev             = 9 * time.Second
	DefaultWarningLead        = 60 * time.Second
	DefaultStaleness          = 30 * time.Second
	DefaultContinuityCapacity = 10
	DefaultArrivedCapacity    = 100
)

// DefaultOptions returns the tuned defaults.
func DefaultOptions() Options {
	return Options{
		Offsets: Offsets{
			Inbound:  Offset{Average: DefaultInboundOffset, StdDev: DefaultStdDev},
			Outbound: Offset{Average: DefaultOutboundOffset, StdDev: DefaultStdDev},
		},
		WarningLead:        DefaultWarningLead,
		Staleness:          DefaultStaleness,
		ContinuityCapacity: DefaultContinuityCapacity,
		ArrivedCapacity:    DefaultArrivedCapacity,
	}
}
