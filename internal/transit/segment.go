package transit

// SegmentType distinguishes the two kinds of RouteSegment a route can take.
type SegmentType int

const (
	// SegmentWait charges the boarding wait at a stop.
	SegmentWait SegmentType = iota
	// SegmentBus charges riding a bus for one or more hops without
	// re-boarding.
	SegmentBus
)

// Segment is the human-meaningful label attached to one edge of the
// transport graph. Exactly one Segment exists per edge id: segments[id] is
// the label of edge id.
type Segment struct {
	Type SegmentType
	Time float64

	// Wait data.
	StopName string

	// Bus data.
	BusName   string
	SpanCount int
}
