package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passbi/transitcat/internal/domain"
	"github.com/passbi/transitcat/internal/geo"
)

func testSettings() Settings {
	return Settings{
		Width: 600, Height: 400, Padding: 50,
		LineWidth: 14, StopRadius: 5,
		BusLabelFontSize: 20, BusLabelOffsetX: 7, BusLabelOffsetY: 15,
		StopLabelFontSize: 20, StopLabelOffsetX: 7, StopLabelOffsetY: -3,
		UnderlayerColor: RGBA(255, 255, 255, 0.85),
		UnderlayerWidth: 3,
		ColorPalette:    []Color{NamedColor("green"), RGB(255, 160, 0), NamedColor("red")},
	}
}

func TestRenderProducesWellFormedSVG(t *testing.T) {
	a := &domain.Stop{Name: "A", Coords: geo.Coordinates{Lat: 55.0, Lng: 37.0}}
	b := &domain.Stop{Name: "B", Coords: geo.Coordinates{Lat: 55.1, Lng: 37.2}}
	c := &domain.Stop{Name: "C", Coords: geo.Coordinates{Lat: 54.9, Lng: 37.1}}

	buses := []*domain.Bus{
		{Name: "114", Route: []*domain.Stop{a, b}, IsCircle: false},
		{Name: "256", Route: []*domain.Stop{a, b, c, a}, IsCircle: true},
	}

	var out strings.Builder
	err := Render(&out, testSettings(), buses)
	require.NoError(t, err)

	doc := out.String()
	assert.True(t, strings.HasPrefix(doc, "<?xml"))
	assert.Contains(t, doc, "<svg")
	assert.Contains(t, doc, "</svg>")
	assert.Contains(t, doc, "polyline")
	assert.Contains(t, doc, "114")
	assert.Contains(t, doc, "256")
}

func TestRenderEmptyPaletteRejected(t *testing.T) {
	settings := testSettings()
	settings.ColorPalette = nil

	var out strings.Builder
	err := Render(&out, settings, nil)
	assert.Error(t, err)
}

func TestRenderNoBusesProducesEmptyCanvas(t *testing.T) {
	var out strings.Builder
	err := Render(&out, testSettings(), nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "<svg")
}

func TestProjectorDegenerateAxisFallsBackToOther(t *testing.T) {
	coords := []geo.Coordinates{
		{Lat: 10, Lng: 5},
		{Lat: 20, Lng: 5},
	}
	p := newProjector(coords, 400, 200, 20)

	top := p.project(geo.Coordinates{Lat: 20, Lng: 5})
	bottom := p.project(geo.Coordinates{Lat: 10, Lng: 5})

	assert.Equal(t, top.X, bottom.X)
	assert.NotEqual(t, top.Y, bottom.Y)
}

func TestColorCSS(t *testing.T) {
	assert.Equal(t, "red", NamedColor("red").CSS())
	assert.Equal(t, "rgb(1,2,3)", RGB(1, 2, 3).CSS())
	assert.Equal(t, "rgba(1,2,3,0.5)", RGBA(1, 2, 3, 0.5).CSS())
}
