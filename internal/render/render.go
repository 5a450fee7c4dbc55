// Package render draws the network as an SVG map (C7). It follows the
// reference MapRenderer's sphere projection and four-layer draw order, with
// the vector primitives emitted through ajstarks/svgo instead of a
// hand-rolled SVG writer.
package render

import (
	"fmt"
	"io"
	"math"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/passbi/transitcat/internal/domain"
	"github.com/passbi/transitcat/internal/geo"
)

// Settings are the canvas and label metrics supplied in render_settings.
type Settings struct {
	Width, Height float64
	Padding       float64

	LineWidth  float64
	StopRadius float64

	BusLabelFontSize   int
	BusLabelOffsetX    float64
	BusLabelOffsetY    float64
	StopLabelFontSize  int
	StopLabelOffsetX   float64
	StopLabelOffsetY   float64

	UnderlayerColor Color
	UnderlayerWidth float64

	ColorPalette []Color
}

// Render writes the SVG map for buses to w. buses must already be sorted
// lexicographically by name (catalogue.AllBusesSorted does this), since the
// palette is cycled in bus-iteration order and that order is part of the
// rendered output.
func Render(w io.Writer, settings Settings, buses []*domain.Bus) error {
	if len(settings.ColorPalette) == 0 {
		return fmt.Errorf("render: color palette must not be empty")
	}

	proj := newProjector(collectCoords(buses), settings.Width, settings.Height, settings.Padding)

	canvas := svg.New(w)
	canvas.Start(int(math.Round(settings.Width)), int(math.Round(settings.Height)))

	colorIndex := 0
	for _, bus := range buses {
		drawBusLine(canvas, settings, proj, bus, colorIndex)
		colorIndex = nextColor(colorIndex, len(settings.ColorPalette))
	}

	colorIndex = 0
	for _, bus := range buses {
		drawBusLabels(canvas, settings, proj, bus, colorIndex)
		colorIndex = nextColor(colorIndex, len(settings.ColorPalette))
	}

	stops := collectStops(buses)
	for _, stop := range stops {
		drawStopCircle(canvas, settings, proj, stop)
	}
	for _, stop := range stops {
		drawStopLabel(canvas, settings, proj, stop)
	}

	canvas.End()
	return nil
}

func nextColor(index, paletteSize int) int {
	return (index + 1) % paletteSize
}

func collectCoords(buses []*domain.Bus) []geo.Coordinates {
	var coords []geo.Coordinates
	for _, bus := range buses {
		for _, stop := range bus.Route {
			coords = append(coords, stop.Coords)
		}
	}
	return coords
}

func drawBusLine(canvas *svg.SVG, settings Settings, proj projector, bus *domain.Bus, colorIndex int) {
	seq := bus.RouteSeq()
	if len(seq) == 0 {
		return
	}

	xs := make([]int, len(seq))
	ys := make([]int, len(seq))
	for i, stop := range seq {
		p := proj.project(stop.Coords)
		xs[i] = int(math.Round(p.X))
		ys[i] = int(math.Round(p.Y))
	}

	style := fmt.Sprintf(
		"fill:none;stroke:%s;stroke-width:%g;stroke-linecap:round;stroke-linejoin:round",
		settings.ColorPalette[colorIndex].CSS(), settings.LineWidth,
	)
	canvas.Polyline(xs, ys, style)
}

func drawBusLabels(canvas *svg.SVG, settings Settings, proj projector, bus *domain.Bus, colorIndex int) {
	if len(bus.Route) == 0 {
		return
	}

	drawBusLabelAt(canvas, settings, proj, bus.Route[0].Coords, bus.Name, colorIndex)

	last := bus.Route[len(bus.Route)-1]
	if !bus.IsCircle && last != bus.Route[0] {
		drawBusLabelAt(canvas, settings, proj, last.Coords, bus.Name, colorIndex)
	}
}

func drawBusLabelAt(canvas *svg.SVG, settings Settings, proj projector, coords geo.Coordinates, name string, colorIndex int) {
	p := proj.project(coords)
	x := int(math.Round(p.X + settings.BusLabelOffsetX))
	y := int(math.Round(p.Y + settings.BusLabelOffsetY))

	underStyle := fmt.Sprintf(
		"fill:%s;stroke:%s;stroke-width:%g;stroke-linecap:round;stroke-linejoin:round;font-family:Verdana;font-weight:bold;font-size:%dpx",
		settings.UnderlayerColor.CSS(), settings.UnderlayerColor.CSS(), settings.UnderlayerWidth, settings.BusLabelFontSize,
	)
	canvas.Text(x, y, name, underStyle)

	style := fmt.Sprintf(
		"fill:%s;font-family:Verdana;font-weight:bold;font-size:%dpx",
		settings.ColorPalette[colorIndex].CSS(), settings.BusLabelFontSize,
	)
	canvas.Text(x, y, name, style)
}

func drawStopCircle(canvas *svg.SVG, settings Settings, proj projector, stop *domain.Stop) {
	p := proj.project(stop.Coords)
	canvas.Circle(int(math.Round(p.X)), int(math.Round(p.Y)), int(math.Round(settings.StopRadius)), "fill:white")
}

func drawStopLabel(canvas *svg.SVG, settings Settings, proj projector, stop *domain.Stop) {
	p := proj.project(stop.Coords)
	x := int(math.Round(p.X + settings.StopLabelOffsetX))
	y := int(math.Round(p.Y + settings.StopLabelOffsetY))

	underStyle := fmt.Sprintf(
		"fill:%s;stroke:%s;stroke-width:%g;stroke-linecap:round;stroke-linejoin:round;font-family:Verdana;font-size:%dpx",
		settings.UnderlayerColor.CSS(), settings.UnderlayerColor.CSS(), settings.UnderlayerWidth, settings.StopLabelFontSize,
	)
	canvas.Text(x, y, stop.Name, underStyle)

	style := fmt.Sprintf("fill:black;font-family:Verdana;font-size:%dpx", settings.StopLabelFontSize)
	canvas.Text(x, y, stop.Name, style)
}

func collectStops(buses []*domain.Bus) []*domain.Stop {
	byName := make(map[string]*domain.Stop)
	for _, bus := range buses {
		for _, stop := range bus.Route {
			byName[stop.Name] = stop
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	stops := make([]*domain.Stop, len(names))
	for i, name := range names {
		stops[i] = byName[name]
	}
	return stops
}
