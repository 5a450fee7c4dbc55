package render

import (
	"math"

	"github.com/passbi/transitcat/internal/geo"
)

// epsilon below this is treated as zero spread on an axis, per the reference
// SphereProjector.
const epsilon = 1e-6

func isZero(v float64) bool {
	return math.Abs(v) < epsilon
}

// point is a projected, pixel-space coordinate.
type point struct {
	X, Y float64
}

// projector maps geographic coordinates onto the canvas. It replicates
// SphereProjector from the reference map renderer: an isotropic zoom picked
// per axis, with the smaller of the two winning, and a degenerate axis
// (all points share a longitude or latitude) deferring entirely to the
// other axis.
type projector struct {
	padding   float64
	minLon    float64
	maxLat    float64
	zoomCoeff float64
}

func newProjector(coords []geo.Coordinates, width, height, padding float64) projector {
	p := projector{padding: padding}
	if len(coords) == 0 {
		return p
	}

	minLon, maxLon := coords[0].Lng, coords[0].Lng
	minLat, maxLat := coords[0].Lat, coords[0].Lat
	for _, c := range coords[1:] {
		if c.Lng < minLon {
			minLon = c.Lng
		}
		if c.Lng > maxLon {
			maxLon = c.Lng
		}
		if c.Lat < minLat {
			minLat = c.Lat
		}
		if c.Lat > maxLat {
			maxLat = c.Lat
		}
	}
	p.minLon = minLon
	p.maxLat = maxLat

	var widthZoom, heightZoom float64
	var haveWidthZoom, haveHeightZoom bool

	if !isZero(maxLon - minLon) {
		widthZoom = (width - 2*padding) / (maxLon - minLon)
		haveWidthZoom = true
	}
	if !isZero(maxLat - minLat) {
		heightZoom = (height - 2*padding) / (maxLat - minLat)
		haveHeightZoom = true
	}

	switch {
	case haveWidthZoom && haveHeightZoom:
		p.zoomCoeff = math.Min(widthZoom, heightZoom)
	case haveWidthZoom:
		p.zoomCoeff = widthZoom
	case haveHeightZoom:
		p.zoomCoeff = heightZoom
	}

	return p
}

func (p projector) project(c geo.Coordinates) point {
	return point{
		X: (c.Lng-p.minLon)*p.zoomCoeff + p.padding,
		Y: (p.maxLat-c.Lat)*p.zoomCoeff + p.padding,
	}
}
