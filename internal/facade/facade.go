package facade

import (
	"strings"

	"github.com/passbi/transitcat/internal/catalogue"
	"github.com/passbi/transitcat/internal/render"
	"github.com/passbi/transitcat/internal/transit"
)

// Facade owns the catalogue, render settings, and transit router for one
// build or query run, and dispatches base/stat requests against them.
type Facade struct {
	cat            *catalogue.Catalogue
	renderSettings render.Settings
	router         *transit.Router
}

// New returns a Facade over a fresh, empty catalogue, ready for Ingest.
func New() *Facade {
	return &Facade{cat: catalogue.New()}
}

// FromPersisted wraps an already-restored catalogue/settings/router, as
// used by query mode after loading a blob.
func FromPersisted(cat *catalogue.Catalogue, renderSettings render.Settings, router *transit.Router) *Facade {
	return &Facade{cat: cat, renderSettings: renderSettings, router: router}
}

// Catalogue returns the underlying catalogue.
func (f *Facade) Catalogue() *catalogue.Catalogue { return f.cat }

// Router returns the underlying transit router, or nil if BuildRouting has
// not been called (or FromPersisted didn't receive one).
func (f *Facade) Router() *transit.Router { return f.router }

// RenderSettings returns the render settings in effect.
func (f *Facade) RenderSettings() render.Settings { return f.renderSettings }

// SetRenderSettings installs the render settings to use for Map queries.
func (f *Facade) SetRenderSettings(s render.Settings) { f.renderSettings = s }

// Ingest applies a base_requests batch, enforcing the mandatory
// stops-before-buses-before-distances ordering regardless of the order
// records appear in the input.
func (f *Facade) Ingest(reqs []BaseRequest) error {
	for _, r := range reqs {
		if r.Type != "Stop" {
			continue
		}
		if err := f.cat.AddStop(r.Name, r.Latitude, r.Longitude); err != nil {
			return err
		}
	}

	for _, r := range reqs {
		if r.Type != "Bus" {
			continue
		}
		if err := f.cat.AddBus(r.Name, r.Stops, r.IsRoundtrip); err != nil {
			return err
		}
	}

	for _, r := range reqs {
		if r.Type != "Stop" {
			continue
		}
		for neighbor, meters := range r.RoadDistances {
			if err := f.cat.SetDistance(r.Name, neighbor, meters); err != nil {
				return err
			}
		}
	}

	return nil
}

// BuildRouting constructs the transport graph and its all-pairs router over
// the current catalogue.
func (f *Facade) BuildRouting(settings transit.Settings) error {
	r, err := transit.NewRouter(f.cat, settings)
	if err != nil {
		return err
	}
	f.router = r
	return nil
}

// Answer dispatches each stat_requests query in order; responses are
// returned in the same order the queries were requested.
func (f *Facade) Answer(reqs []StatRequest) []Response {
	out := make([]Response, len(reqs))
	for i, req := range reqs {
		out[i] = f.answerOne(req)
	}
	return out
}

func (f *Facade) answerOne(req StatRequest) Response {
	switch req.Type {
	case "Stop":
		return f.answerStop(req)
	case "Bus":
		return f.answerBus(req)
	case "Map":
		return f.answerMap(req)
	case "Route":
		return f.answerRoute(req)
	default:
		return Response{RequestID: req.ID, ErrorMessage: "not found"}
	}
}

func (f *Facade) answerStop(req StatRequest) Response {
	buses, err := f.cat.BusesThrough(req.Name)
	if err != nil {
		return notFound(req.ID, err)
	}
	return Response{RequestID: req.ID, Buses: buses, queryType: "Stop"}
}

func (f *Facade) answerBus(req StatRequest) Response {
	info, err := f.cat.BusInfo(req.Name)
	if err != nil {
		return notFound(req.ID, err)
	}
	return Response{
		RequestID: req.ID, StopCount: info.StopCount, UniqueStopCount: info.UniqueStopCount,
		RouteLength: info.RouteLength, Curvature: info.Curvature,
		queryType: "Bus",
	}
}

func (f *Facade) answerMap(req StatRequest) Response {
	var out strings.Builder
	if err := render.Render(&out, f.renderSettings, f.cat.AllBusesSorted()); err != nil {
		return notFound(req.ID, err)
	}
	return Response{RequestID: req.ID, Map: out.String(), queryType: "Map"}
}

func (f *Facade) answerRoute(req StatRequest) Response {
	result, err := f.router.ShortestRoute(req.From, req.To)
	if err != nil {
		return notFound(req.ID, err)
	}

	items := make([]RouteItem, len(result.Segments))
	for i, seg := range result.Segments {
		if seg.Type == transit.SegmentWait {
			items[i] = RouteItem{Type: "Wait", StopName: seg.StopName, Time: seg.Time}
		} else {
			items[i] = RouteItem{Type: "Bus", Bus: seg.BusName, SpanCount: seg.SpanCount, Time: seg.Time}
		}
	}
	return Response{RequestID: req.ID, TotalTime: result.TotalTime, Items: items, queryType: "Route"}
}

// notFound maps any lookup error to the per-query NotFound answer: this
// is not a hard error, the underlying cause is discarded.
func notFound(id int, _ error) Response {
	return Response{RequestID: id, ErrorMessage: "not found"}
}
