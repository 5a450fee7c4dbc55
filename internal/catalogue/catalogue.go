// Package catalogue owns the static transport network: stops, buses, and
// directed inter-stop road distances. It is append-only during build and
// immutable during query.
package catalogue

import (
	"fmt"
	"sort"

	"github.com/passbi/transitcat/internal/domain"
	"github.com/passbi/transitcat/internal/geo"
)

type stopPair struct {
	from, to string
}

// Catalogue is an arena-and-index store: stops live as individually
// heap-allocated *domain.Stop values referenced by name, so a Bus's
// []*domain.Stop route stays valid no matter how much the catalogue grows
// afterward.
type Catalogue struct {
	stops      []*domain.Stop
	stopByName map[string]*domain.Stop

	buses      []*domain.Bus
	busByName  map[string]*domain.Bus
	busesAtStop map[string]map[string]struct{} // stop name -> set of bus names

	distances map[stopPair]int
}

// New returns an empty catalogue.
func New() *Catalogue {
	return &Catalogue{
		stopByName:  make(map[string]*domain.Stop),
		busByName:   make(map[string]*domain.Bus),
		busesAtStop: make(map[string]map[string]struct{}),
		distances:   make(map[stopPair]int),
	}
}

// AddStop appends a new stop. Returns ErrDuplicateName if the name is
// already registered.
func (c *Catalogue) AddStop(name string, lat, lng float64) error {
	if name == "" {
		return fmt.Errorf("%w: empty stop name", ErrInvalidRoute)
	}
	if _, exists := c.stopByName[name]; exists {
		return fmt.Errorf("%w: stop %q", ErrDuplicateName, name)
	}

	stop := &domain.Stop{Name: name, Coords: geo.Coordinates{Lat: lat, Lng: lng}}
	c.stops = append(c.stops, stop)
	c.stopByName[name] = stop
	c.busesAtStop[name] = make(map[string]struct{})
	return nil
}

// AddBus resolves stopNames against the catalogue and records a new bus.
// Returns ErrDuplicateName, ErrUnknownStop, or ErrInvalidRoute (a route of
// fewer than two listed stops is rejected outright rather than producing a
// degenerate bus).
func (c *Catalogue) AddBus(name string, stopNames []string, isCircle bool) error {
	if name == "" {
		return fmt.Errorf("%w: empty bus name", ErrInvalidRoute)
	}
	if _, exists := c.busByName[name]; exists {
		return fmt.Errorf("%w: bus %q", ErrDuplicateName, name)
	}
	if len(stopNames) < 2 {
		return fmt.Errorf("%w: bus %q has fewer than two stops", ErrInvalidRoute, name)
	}

	route := make([]*domain.Stop, len(stopNames))
	for i, stopName := range stopNames {
		stop, ok := c.stopByName[stopName]
		if !ok {
			return fmt.Errorf("%w: %q (referenced by bus %q)", ErrUnknownStop, stopName, name)
		}
		route[i] = stop
	}
	if isCircle && route[0] != route[len(route)-1] {
		return fmt.Errorf("%w: circular bus %q must start and end at the same stop", ErrInvalidRoute, name)
	}

	bus := &domain.Bus{Name: name, Route: route, IsCircle: isCircle}
	c.buses = append(c.buses, bus)
	c.busByName[name] = bus

	seen := make(map[string]struct{}, len(route))
	for _, stop := range route {
		if _, dup := seen[stop.Name]; dup {
			continue
		}
		seen[stop.Name] = struct{}{}
		c.busesAtStop[stop.Name][name] = struct{}{}
	}
	return nil
}

// SetDistance records the directed meters from `from` to `to`, overwriting
// any prior value for the same ordered pair.
func (c *Catalogue) SetDistance(from, to string, meters int) error {
	if _, ok := c.stopByName[from]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStop, from)
	}
	if _, ok := c.stopByName[to]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStop, to)
	}
	c.distances[stopPair{from, to}] = meters
	return nil
}

// FindStop returns the stop by name, or ErrNotFound.
func (c *Catalogue) FindStop(name string) (*domain.Stop, error) {
	if stop, ok := c.stopByName[name]; ok {
		return stop, nil
	}
	return nil, ErrNotFound
}

// FindBus returns the bus by name, or ErrNotFound.
func (c *Catalogue) FindBus(name string) (*domain.Bus, error) {
	if bus, ok := c.busByName[name]; ok {
		return bus, nil
	}
	return nil, ErrNotFound
}

// GetDistance applies the asymmetric-with-fallback lookup rule: the stored
// d(from,to) if present, else the stored d(to,from). Returns
// ErrMissingDistance if neither direction was ever recorded.
func (c *Catalogue) GetDistance(from, to string) (int, error) {
	if d, ok := c.distances[stopPair{from, to}]; ok {
		return d, nil
	}
	if d, ok := c.distances[stopPair{to, from}]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %s -> %s", ErrMissingDistance, from, to)
}

// BusInfo computes the derived domain.BusInfo for a bus. Returns ErrNotFound
// if the bus is absent, ErrMissingDistance if a consecutive pair along its
// traversal has no resolvable distance, and ErrInvalidRoute if the full
// traversal has zero great-circle length (Open Question (c)).
func (c *Catalogue) BusInfo(name string) (domain.BusInfo, error) {
	bus, ok := c.busByName[name]
	if !ok {
		return domain.BusInfo{}, ErrNotFound
	}

	seq := bus.RouteSeq()

	routeLength := 0
	geoLength := 0.0
	for i := 0; i+1 < len(seq); i++ {
		d, err := c.GetDistance(seq[i].Name, seq[i+1].Name)
		if err != nil {
			return domain.BusInfo{}, fmt.Errorf("bus %q: %w", name, err)
		}
		routeLength += d
		geoLength += geo.Distance(seq[i].Coords, seq[i+1].Coords)
	}
	if geoLength == 0 {
		return domain.BusInfo{}, fmt.Errorf("%w: bus %q has zero geographic length", ErrInvalidRoute, name)
	}

	unique := make(map[string]struct{}, len(bus.Route))
	for _, stop := range bus.Route {
		unique[stop.Name] = struct{}{}
	}

	return domain.BusInfo{
		Name:            name,
		StopCount:       len(seq),
		UniqueStopCount: len(unique),
		RouteLength:     routeLength,
		Curvature:       float64(routeLength) / geoLength,
	}, nil
}

// BusesThrough returns the names of buses whose route visits the named
// stop, in ascending lexicographic order. Returns ErrNotFound if the stop
// is absent.
func (c *Catalogue) BusesThrough(stopName string) ([]string, error) {
	set, ok := c.busesAtStop[stopName]
	if !ok {
		return nil, ErrNotFound
	}

	names := make([]string, 0, len(set))
	for busName := range set {
		names = append(names, busName)
	}
	sort.Strings(names)
	return names, nil
}

// AllStops returns every stop in catalogue insertion order.
func (c *Catalogue) AllStops() []*domain.Stop {
	return c.stops
}

// AllBuses returns every bus in catalogue insertion order.
func (c *Catalogue) AllBuses() []*domain.Bus {
	return c.buses
}

// AllBusesSorted returns every bus ordered lexicographically by name, the
// order map rendering draws buses and assigns palette colors in.
func (c *Catalogue) AllBusesSorted() []*domain.Bus {
	sorted := make([]*domain.Bus, len(c.buses))
	copy(sorted, c.buses)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return sorted
}

// Distance is one recorded directed from->to road distance.
type Distance struct {
	From, To string
	Meters   int
}

// AllDistances returns every recorded directed distance, ordered
// deterministically (by From, then To) so callers such as persist can
// serialize a stable byte stream.
func (c *Catalogue) AllDistances() []Distance {
	out := make([]Distance, 0, len(c.distances))
	for pair, meters := range c.distances {
		out = append(out, Distance{From: pair.from, To: pair.to, Meters: meters})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}
