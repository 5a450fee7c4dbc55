package facade

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbi/transitcat/internal/transit"
)

func TestIngestOrdersStopsBeforeBuses(t *testing.T) {
	f := New()
	err := f.Ingest([]BaseRequest{
		{Type: "Bus", Name: "1", Stops: []string{"A", "B"}, IsRoundtrip: false},
		{Type: "Stop", Name: "A", Latitude: 55.0, Longitude: 37.0, RoadDistances: map[string]int{"B": 1000}},
		{Type: "Stop", Name: "B", Latitude: 55.0, Longitude: 37.01},
	})
	require.NoError(t, err)

	_, err = f.Catalogue().FindBus("1")
	require.NoError(t, err)

	d, err := f.Catalogue().GetDistance("A", "B")
	require.NoError(t, err)
	assert.Equal(t, 1000, d)
}

func TestScenarioA_DegenerateQuery(t *testing.T) {
	f := New()
	require.NoError(t, f.Ingest([]BaseRequest{
		{Type: "Stop", Name: "A", Latitude: 0, Longitude: 0},
		{Type: "Stop", Name: "B", Latitude: 0, Longitude: 1},
	}))
	require.NoError(t, f.BuildRouting(transit.Settings{WaitTime: 5, Velocity: 30}))

	responses := f.Answer([]StatRequest{
		{ID: 1, Type: "Route", From: "A", To: "A"},
		{ID: 2, Type: "Route", From: "A", To: "B"},
	})

	require.Len(t, responses, 2)
	assert.Equal(t, 0.0, responses[0].TotalTime)
	assert.Empty(t, responses[0].Items)
	assert.Equal(t, "not found", responses[1].ErrorMessage)
}

func TestScenarioB_SingleLinearBus(t *testing.T) {
	f := New()
	require.NoError(t, f.Ingest([]BaseRequest{
		{Type: "Stop", Name: "A", Latitude: 55.0, Longitude: 37.0, RoadDistances: map[string]int{"B": 1000}},
		{Type: "Stop", Name: "B", Latitude: 55.0, Longitude: 37.01, RoadDistances: map[string]int{"A": 1000, "C": 1000}},
		{Type: "Stop", Name: "C", Latitude: 55.0, Longitude: 37.02, RoadDistances: map[string]int{"B": 1000}},
		{Type: "Bus", Name: "1", Stops: []string{"A", "B", "C"}, IsRoundtrip: false},
	}))
	require.NoError(t, f.BuildRouting(transit.Settings{WaitTime: 6, Velocity: 30}))

	responses := f.Answer([]StatRequest{
		{ID: 1, Type: "Bus", Name: "1"},
		{ID: 2, Type: "Route", From: "A", To: "C"},
	})

	require.Len(t, responses, 2)
	assert.Equal(t, 5, responses[0].StopCount)
	assert.Equal(t, 3, responses[0].UniqueStopCount)
	assert.Equal(t, 4000, responses[0].RouteLength)

	assert.InDelta(t, 10.0, responses[1].TotalTime, 1e-6)
	require.Len(t, responses[1].Items, 2)
	assert.Equal(t, "Wait", responses[1].Items[0].Type)
	assert.Equal(t, "Bus", responses[1].Items[1].Type)
}

func TestScenarioE_DuplicateNameRejectedAndStateUnchanged(t *testing.T) {
	f := New()
	err := f.Ingest([]BaseRequest{
		{Type: "Stop", Name: "A", Latitude: 1, Longitude: 1},
		{Type: "Stop", Name: "A", Latitude: 2, Longitude: 2},
	})
	require.Error(t, err)

	stop, err := f.Catalogue().FindStop("A")
	require.NoError(t, err)
	assert.Equal(t, 1.0, stop.Coords.Lat)
}

func TestDecodeRequestParsesEnvelope(t *testing.T) {
	body := `{
		"base_requests": [{"type":"Stop","name":"A","latitude":1,"longitude":2}],
		"stat_requests": [{"id":1,"type":"Stop","name":"A"}],
		"render_settings": {
			"width": 600, "height": 400, "padding": 30,
			"line_width": 14, "stop_radius": 5,
			"bus_label_font_size": 20, "bus_label_offset": [7, 15],
			"stop_label_font_size": 18, "stop_label_offset": [7, -3],
			"underlayer_color": [255,255,255,0.85],
			"underlayer_width": 3,
			"color_palette": ["green", [255,160,0], "red"]
		},
		"routing_settings": {"bus_wait_time": 6, "bus_velocity": 40},
		"serialization_settings": {"file": "out.db"}
	}`

	req, err := DecodeRequest(strings.NewReader(body))
	require.NoError(t, err)

	require.Len(t, req.BaseRequests, 1)
	assert.Equal(t, "A", req.BaseRequests[0].Name)
	require.NotNil(t, req.RenderSettings)
	assert.Equal(t, 600.0, req.RenderSettings.Width)
	require.Len(t, req.RenderSettings.ColorPalette, 3)
	assert.Equal(t, "green", req.RenderSettings.ColorPalette[0].Color.CSS())
	assert.Equal(t, "rgb(255,160,0)", req.RenderSettings.ColorPalette[1].Color.CSS())
	assert.Equal(t, "rgba(255,255,255,0.85)", req.RenderSettings.UnderlayerColor.Color.CSS())
	require.NotNil(t, req.RoutingSettings)
	assert.Equal(t, 6, req.RoutingSettings.BusWaitTime)
	require.NotNil(t, req.SerializationSettings)
	assert.Equal(t, "out.db", req.SerializationSettings.File)
}

func TestEncodeResponsesOmitsUnusedFields(t *testing.T) {
	var out strings.Builder
	err := EncodeResponses(&out, []Response{
		{RequestID: 1, Buses: []string{"1", "2"}, queryType: "Stop"},
		{RequestID: 2, ErrorMessage: "not found"},
	})
	require.NoError(t, err)

	doc := out.String()
	assert.Contains(t, doc, `"request_id":1`)
	assert.Contains(t, doc, `"buses":["1","2"]`)
	assert.NotContains(t, doc, "stop_count")
	assert.Contains(t, doc, `"error_message":"not found"`)
}

func TestEncodeResponsesKeepsZeroValueAnswers(t *testing.T) {
	var out strings.Builder
	err := EncodeResponses(&out, []Response{
		{RequestID: 1, TotalTime: 0, Items: []RouteItem{}, queryType: "Route"},
		{RequestID: 2, Buses: []string{}, queryType: "Stop"},
	})
	require.NoError(t, err)

	doc := out.String()
	assert.Contains(t, doc, `"total_time":0`)
	assert.Contains(t, doc, `"items":[]`)
	assert.Contains(t, doc, `"buses":[]`)
}
