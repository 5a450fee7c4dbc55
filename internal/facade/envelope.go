// Package facade implements the structured request/response envelope (C9):
// parsing the input batch, enforcing the stops-before-buses-before-distances
// ingestion order, dispatching stat_requests to the catalogue/router/
// renderer, and formatting the response array. Encoding uses goccy/go-json
// rather than the standard library's encoding/json.
package facade

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/passbi/transitcat/internal/render"
	"github.com/passbi/transitcat/internal/transit"
)

// BaseRequest is one record of the base_requests ingestion batch: either a
// Stop or a Bus.
type BaseRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`

	// Stop fields.
	Latitude      float64        `json:"latitude,omitempty"`
	Longitude     float64        `json:"longitude,omitempty"`
	RoadDistances map[string]int `json:"road_distances,omitempty"`

	// Bus fields.
	Stops       []string `json:"stops,omitempty"`
	IsRoundtrip bool     `json:"is_roundtrip,omitempty"`
}

// StatRequest is one query from the stat_requests array.
type StatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type"`

	Name string `json:"name,omitempty"` // Stop, Bus
	From string `json:"from,omitempty"` // Route
	To   string `json:"to,omitempty"`   // Route
}

// RenderSettingsInput is the wire shape of render_settings.
type RenderSettingsInput struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`

	LineWidth  float64 `json:"line_width"`
	StopRadius float64 `json:"stop_radius"`

	BusLabelFontSize  int        `json:"bus_label_font_size"`
	BusLabelOffset    [2]float64 `json:"bus_label_offset"`
	StopLabelFontSize int        `json:"stop_label_font_size"`
	StopLabelOffset   [2]float64 `json:"stop_label_offset"`

	UnderlayerColor ColorInput   `json:"underlayer_color"`
	UnderlayerWidth float64      `json:"underlayer_width"`
	ColorPalette    []ColorInput `json:"color_palette"`
}

// ToSettings converts the wire shape to the renderer's Settings.
func (r RenderSettingsInput) ToSettings() render.Settings {
	palette := make([]render.Color, len(r.ColorPalette))
	for i, c := range r.ColorPalette {
		palette[i] = c.Color
	}
	return render.Settings{
		Width: r.Width, Height: r.Height, Padding: r.Padding,
		LineWidth: r.LineWidth, StopRadius: r.StopRadius,
		BusLabelFontSize: r.BusLabelFontSize,
		BusLabelOffsetX:  r.BusLabelOffset[0], BusLabelOffsetY: r.BusLabelOffset[1],
		StopLabelFontSize: r.StopLabelFontSize,
		StopLabelOffsetX:  r.StopLabelOffset[0], StopLabelOffsetY: r.StopLabelOffset[1],
		UnderlayerColor: r.UnderlayerColor.Color, UnderlayerWidth: r.UnderlayerWidth,
		ColorPalette: palette,
	}
}

// RoutingSettingsInput is the wire shape of routing_settings.
type RoutingSettingsInput struct {
	BusWaitTime int     `json:"bus_wait_time"`
	BusVelocity float64 `json:"bus_velocity"`
}

// ToSettings converts the wire shape to the transport graph's Settings.
func (r RoutingSettingsInput) ToSettings() transit.Settings {
	return transit.Settings{WaitTime: r.BusWaitTime, Velocity: r.BusVelocity}
}

// SerializationSettingsInput is the wire shape of serialization_settings.
type SerializationSettingsInput struct {
	File string `json:"file"`
}

// Request is the full structured input envelope.
type Request struct {
	BaseRequests          []BaseRequest               `json:"base_requests,omitempty"`
	StatRequests          []StatRequest               `json:"stat_requests,omitempty"`
	RenderSettings        *RenderSettingsInput        `json:"render_settings,omitempty"`
	RoutingSettings       *RoutingSettingsInput       `json:"routing_settings,omitempty"`
	SerializationSettings *SerializationSettingsInput `json:"serialization_settings,omitempty"`
}

// RouteItem is one step of a Route query's answer.
type RouteItem struct {
	Type      string  `json:"type"`
	StopName  string  `json:"stop_name,omitempty"`
	Bus       string  `json:"bus,omitempty"`
	SpanCount int     `json:"span_count,omitempty"`
	Time      float64 `json:"time"`
}

// Response is one element of the structured output envelope. Its wire
// shape depends on which stat_requests query produced it: queryType picks
// the field set MarshalJSON emits, so a zero value that is a meaningful
// answer (total_time:0, an empty items/buses array) is never dropped the
// way a blanket omitempty would drop it.
type Response struct {
	RequestID int

	Buses           []string
	StopCount       int
	UniqueStopCount int
	RouteLength     int
	Curvature       float64

	Map string

	TotalTime float64
	Items     []RouteItem

	ErrorMessage string

	queryType string
}

// MarshalJSON emits only the fields relevant to the response's query type.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.ErrorMessage != "" {
		return json.Marshal(struct {
			RequestID    int    `json:"request_id"`
			ErrorMessage string `json:"error_message"`
		}{r.RequestID, r.ErrorMessage})
	}

	switch r.queryType {
	case "Stop":
		return json.Marshal(struct {
			RequestID int      `json:"request_id"`
			Buses     []string `json:"buses"`
		}{r.RequestID, r.Buses})
	case "Bus":
		return json.Marshal(struct {
			RequestID       int     `json:"request_id"`
			StopCount       int     `json:"stop_count"`
			UniqueStopCount int     `json:"unique_stop_count"`
			RouteLength     int     `json:"route_length"`
			Curvature       float64 `json:"curvature"`
		}{r.RequestID, r.StopCount, r.UniqueStopCount, r.RouteLength, r.Curvature})
	case "Map":
		return json.Marshal(struct {
			RequestID int    `json:"request_id"`
			Map       string `json:"map"`
		}{r.RequestID, r.Map})
	case "Route":
		return json.Marshal(struct {
			RequestID int         `json:"request_id"`
			TotalTime float64     `json:"total_time"`
			Items     []RouteItem `json:"items"`
		}{r.RequestID, r.TotalTime, r.Items})
	default:
		return json.Marshal(struct {
			RequestID int `json:"request_id"`
		}{r.RequestID})
	}
}

// DecodeRequest parses a structured request envelope from r.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return req, nil
}

// EncodeResponses writes the response array to w.
func EncodeResponses(w io.Writer, responses []Response) error {
	return json.NewEncoder(w).Encode(responses)
}
