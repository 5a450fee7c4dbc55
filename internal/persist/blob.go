// Package persist serializes a built catalogue, its render settings, and
// its precomputed transport graph/router into a single versioned blob, so
// a later process can answer queries without recomputing the all-pairs
// table. Encoding is msgpack rather than a hand-rolled binary format or
// generated protobuf code, matching the data-plane services this module
// is modeled on.
package persist

import (
	"github.com/passbi/transitcat/internal/catalogue"
	"github.com/passbi/transitcat/internal/graph"
	"github.com/passbi/transitcat/internal/render"
	"github.com/passbi/transitcat/internal/router"
	"github.com/passbi/transitcat/internal/transit"
)

// schemaVersion is bumped whenever the blob layout changes incompatibly.
const schemaVersion = 1

type stopRecord struct {
	Name string  `msgpack:"name"`
	Lat  float64 `msgpack:"lat"`
	Lng  float64 `msgpack:"lng"`
}

type busRecord struct {
	Name      string   `msgpack:"name"`
	StopNames []string `msgpack:"stop_names"`
	IsCircle  bool     `msgpack:"is_circle"`
}

type distanceRecord struct {
	From   string `msgpack:"from"`
	To     string `msgpack:"to"`
	Meters int    `msgpack:"meters"`
}

type colorRecord struct {
	Named    string  `msgpack:"named,omitempty"`
	R        int     `msgpack:"r"`
	G        int     `msgpack:"g"`
	B        int     `msgpack:"b"`
	A        float64 `msgpack:"a"`
	HasRGB   bool     `msgpack:"has_rgb"`
	HasAlpha bool     `msgpack:"has_alpha"`
}

func colorToRecord(c render.Color) colorRecord {
	return colorRecord{
		Named: c.Named, R: c.R, G: c.G, B: c.B, A: c.A,
		HasRGB: c.HasRGB, HasAlpha: c.HasAlpha,
	}
}

func recordToColor(r colorRecord) render.Color {
	return render.Color{
		Named: r.Named, R: r.R, G: r.G, B: r.B, A: r.A,
		HasRGB: r.HasRGB, HasAlpha: r.HasAlpha,
	}
}

type renderSettingsRecord struct {
	Width   float64 `msgpack:"width"`
	Height  float64 `msgpack:"height"`
	Padding float64 `msgpack:"padding"`

	LineWidth  float64 `msgpack:"line_width"`
	StopRadius float64 `msgpack:"stop_radius"`

	BusLabelFontSize  int     `msgpack:"bus_label_font_size"`
	BusLabelOffsetX   float64 `msgpack:"bus_label_offset_x"`
	BusLabelOffsetY   float64 `msgpack:"bus_label_offset_y"`
	StopLabelFontSize int     `msgpack:"stop_label_font_size"`
	StopLabelOffsetX  float64 `msgpack:"stop_label_offset_x"`
	StopLabelOffsetY  float64 `msgpack:"stop_label_offset_y"`

	UnderlayerColor colorRecord   `msgpack:"underlayer_color"`
	UnderlayerWidth float64       `msgpack:"underlayer_width"`
	ColorPalette    []colorRecord `msgpack:"color_palette"`
}

func renderSettingsToRecord(s render.Settings) renderSettingsRecord {
	palette := make([]colorRecord, len(s.ColorPalette))
	for i, c := range s.ColorPalette {
		palette[i] = colorToRecord(c)
	}
	return renderSettingsRecord{
		Width: s.Width, Height: s.Height, Padding: s.Padding,
		LineWidth: s.LineWidth, StopRadius: s.StopRadius,
		BusLabelFontSize: s.BusLabelFontSize, BusLabelOffsetX: s.BusLabelOffsetX, BusLabelOffsetY: s.BusLabelOffsetY,
		StopLabelFontSize: s.StopLabelFontSize, StopLabelOffsetX: s.StopLabelOffsetX, StopLabelOffsetY: s.StopLabelOffsetY,
		UnderlayerColor: colorToRecord(s.UnderlayerColor), UnderlayerWidth: s.UnderlayerWidth,
		ColorPalette: palette,
	}
}

func recordToRenderSettings(r renderSettingsRecord) render.Settings {
	palette := make([]render.Color, len(r.ColorPalette))
	for i, c := range r.ColorPalette {
		palette[i] = recordToColor(c)
	}
	return render.Settings{
		Width: r.Width, Height: r.Height, Padding: r.Padding,
		LineWidth: r.LineWidth, StopRadius: r.StopRadius,
		BusLabelFontSize: r.BusLabelFontSize, BusLabelOffsetX: r.BusLabelOffsetX, BusLabelOffsetY: r.BusLabelOffsetY,
		StopLabelFontSize: r.StopLabelFontSize, StopLabelOffsetX: r.StopLabelOffsetX, StopLabelOffsetY: r.StopLabelOffsetY,
		UnderlayerColor: recordToColor(r.UnderlayerColor), UnderlayerWidth: r.UnderlayerWidth,
		ColorPalette: palette,
	}
}

type routingSettingsRecord struct {
	WaitTime int     `msgpack:"wait_time"`
	Velocity float64 `msgpack:"velocity"`
}

type edgeRecord struct {
	From   int     `msgpack:"from"`
	To     int     `msgpack:"to"`
	Weight float64 `msgpack:"weight"`
}

type segmentRecord struct {
	Type      int     `msgpack:"type"`
	Time      float64 `msgpack:"time"`
	StopName  string  `msgpack:"stop_name,omitempty"`
	BusName   string  `msgpack:"bus_name,omitempty"`
	SpanCount int     `msgpack:"span_count,omitempty"`
}

type graphRecord struct {
	VertexCount int             `msgpack:"vertex_count"`
	Edges       []edgeRecord    `msgpack:"edges"`
	IDByStop    map[string]int  `msgpack:"id_by_stop"`
	Segments    []segmentRecord `msgpack:"segments"`
}

type routerRecordEntry struct {
	Present     bool    `msgpack:"present"`
	Weight      float64 `msgpack:"weight"`
	LastEdge    int     `msgpack:"last_edge"`
	HasLastEdge bool    `msgpack:"has_last_edge"`
}

type routerRecord struct {
	N       int                 `msgpack:"n"`
	Records []routerRecordEntry `msgpack:"records"`
}

// Blob is the full serialized form of a built network: catalogue, render
// settings, transport graph, and precomputed router table.
type Blob struct {
	SchemaVersion int `msgpack:"schema_version"`

	Stops     []stopRecord     `msgpack:"stops"`
	Buses     []busRecord      `msgpack:"buses"`
	Distances []distanceRecord `msgpack:"distances"`

	RenderSettings  renderSettingsRecord  `msgpack:"render_settings"`
	RoutingSettings routingSettingsRecord `msgpack:"routing_settings"`

	Graph  graphRecord  `msgpack:"graph"`
	Router routerRecord `msgpack:"router"`
}

// Build assembles a Blob from a fully constructed catalogue, its render
// settings, and its transit router.
func Build(cat *catalogue.Catalogue, renderSettings render.Settings, tr *transit.Router) Blob {
	stops := cat.AllStops()
	stopRecords := make([]stopRecord, len(stops))
	for i, s := range stops {
		stopRecords[i] = stopRecord{Name: s.Name, Lat: s.Coords.Lat, Lng: s.Coords.Lng}
	}

	buses := cat.AllBuses()
	busRecords := make([]busRecord, len(buses))
	for i, b := range buses {
		names := make([]string, len(b.Route))
		for j, s := range b.Route {
			names[j] = s.Name
		}
		busRecords[i] = busRecord{Name: b.Name, StopNames: names, IsCircle: b.IsCircle}
	}

	distances := cat.AllDistances()
	distanceRecords := make([]distanceRecord, len(distances))
	for i, d := range distances {
		distanceRecords[i] = distanceRecord{From: d.From, To: d.To, Meters: d.Meters}
	}

	g := tr.Graph()
	inner := g.Inner()
	edges := make([]edgeRecord, inner.EdgeCount())
	segments := make([]segmentRecord, g.SegmentCount())
	for id := 0; id < inner.EdgeCount(); id++ {
		e := inner.Edge(id)
		edges[id] = edgeRecord{From: e.From, To: e.To, Weight: e.Weight}

		seg := g.Segment(id)
		segments[id] = segmentRecord{
			Type: int(seg.Type), Time: seg.Time,
			StopName: seg.StopName, BusName: seg.BusName, SpanCount: seg.SpanCount,
		}
	}

	idByStop := make(map[string]int, len(stops))
	for _, s := range stops {
		ord, _ := g.StopNodeID(s.Name)
		idByStop[s.Name] = ord / 2
	}

	n, records := tr.Routes().Table()
	routerRecords := make([]routerRecordEntry, len(records))
	for i, rec := range records {
		routerRecords[i] = routerRecordEntry{
			Present: rec.Present, Weight: rec.Weight, LastEdge: rec.LastEdge, HasLastEdge: rec.HasLastEdge,
		}
	}

	return Blob{
		SchemaVersion:   schemaVersion,
		Stops:           stopRecords,
		Buses:           busRecords,
		Distances:       distanceRecords,
		RenderSettings:  renderSettingsToRecord(renderSettings),
		RoutingSettings: routingSettingsRecord{WaitTime: g.Settings().WaitTime, Velocity: g.Settings().Velocity},
		Graph:           graphRecord{VertexCount: inner.VertexCount(), Edges: edges, IDByStop: idByStop, Segments: segments},
		Router:          routerRecord{N: n, Records: routerRecords},
	}
}

// Restore rebuilds a catalogue, render settings, and a ready-to-query
// transit.Router from a Blob, without rerunning graph construction or the
// all-pairs relaxation.
func Restore(b Blob) (*catalogue.Catalogue, render.Settings, *transit.Router, error) {
	if b.SchemaVersion != schemaVersion {
		return nil, render.Settings{}, nil, ErrIncompatibleSchema
	}

	cat := catalogue.New()
	for _, s := range b.Stops {
		if err := cat.AddStop(s.Name, s.Lat, s.Lng); err != nil {
			return nil, render.Settings{}, nil, err
		}
	}
	for _, bus := range b.Buses {
		if err := cat.AddBus(bus.Name, bus.StopNames, bus.IsCircle); err != nil {
			return nil, render.Settings{}, nil, err
		}
	}
	for _, d := range b.Distances {
		if err := cat.SetDistance(d.From, d.To, d.Meters); err != nil {
			return nil, render.Settings{}, nil, err
		}
	}

	edges := make([]graph.Edge, len(b.Graph.Edges))
	for i, e := range b.Graph.Edges {
		edges[i] = graph.Edge{From: e.From, To: e.To, Weight: e.Weight}
	}
	inner := graph.FromEdges(b.Graph.VertexCount, edges)

	segments := make([]transit.Segment, len(b.Graph.Segments))
	for i, s := range b.Graph.Segments {
		segments[i] = transit.Segment{
			Type: transit.SegmentType(s.Type), Time: s.Time,
			StopName: s.StopName, BusName: s.BusName, SpanCount: s.SpanCount,
		}
	}

	settings := transit.Settings{WaitTime: b.RoutingSettings.WaitTime, Velocity: b.RoutingSettings.Velocity}
	g := transit.FromParts(settings, inner, b.Graph.IDByStop, segments)

	routerRecords := make([]router.Record, len(b.Router.Records))
	for i, rec := range b.Router.Records {
		routerRecords[i] = router.Record{
			Present: rec.Present, Weight: rec.Weight, LastEdge: rec.LastEdge, HasLastEdge: rec.HasLastEdge,
		}
	}
	routes := router.FromTable(b.Router.N, routerRecords)

	return cat, recordToRenderSettings(b.RenderSettings), transit.FromPrebuilt(g, routes), nil
}
