package catalogue

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ImportFromPostgres populates cat from a relational schema instead of a
// JSON envelope: stop, bus, bus_stop (ordered route membership), and
// road_distance tables. Ingestion follows the same stops-before-buses-
// before-distances ordering the JSON adapter enforces.
func ImportFromPostgres(ctx context.Context, pool *pgxpool.Pool, cat *Catalogue) error {
	if err := importStops(ctx, pool, cat); err != nil {
		return fmt.Errorf("importing stops: %w", err)
	}
	if err := importBuses(ctx, pool, cat); err != nil {
		return fmt.Errorf("importing buses: %w", err)
	}
	if err := importDistances(ctx, pool, cat); err != nil {
		return fmt.Errorf("importing distances: %w", err)
	}
	return nil
}

func importStops(ctx context.Context, pool *pgxpool.Pool, cat *Catalogue) error {
	rows, err := pool.Query(ctx, `SELECT name, latitude, longitude FROM stop ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var lat, lng float64
		if err := rows.Scan(&name, &lat, &lng); err != nil {
			return err
		}
		if err := cat.AddStop(name, lat, lng); err != nil {
			return err
		}
	}
	return rows.Err()
}

func importBuses(ctx context.Context, pool *pgxpool.Pool, cat *Catalogue) error {
	rows, err := pool.Query(ctx, `SELECT id, name, is_circle FROM bus ORDER BY id`)
	if err != nil {
		return err
	}

	type busRow struct {
		id       int64
		name     string
		isCircle bool
	}
	var buses []busRow
	for rows.Next() {
		var b busRow
		if err := rows.Scan(&b.id, &b.name, &b.isCircle); err != nil {
			rows.Close()
			return err
		}
		buses = append(buses, b)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	for _, b := range buses {
		stopNames, err := busStopNames(ctx, pool, b.id)
		if err != nil {
			return fmt.Errorf("bus %q: %w", b.name, err)
		}
		if err := cat.AddBus(b.name, stopNames, b.isCircle); err != nil {
			return err
		}
	}
	return nil
}

func busStopNames(ctx context.Context, pool *pgxpool.Pool, busID int64) ([]string, error) {
	rows, err := pool.Query(ctx, `
		SELECT stop.name
		FROM bus_stop
		JOIN stop ON stop.id = bus_stop.stop_id
		WHERE bus_stop.bus_id = $1
		ORDER BY bus_stop.position
	`, busID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func importDistances(ctx context.Context, pool *pgxpool.Pool, cat *Catalogue) error {
	rows, err := pool.Query(ctx, `
		SELECT from_stop.name, to_stop.name, road_distance.meters
		FROM road_distance
		JOIN stop AS from_stop ON from_stop.id = road_distance.from_stop_id
		JOIN stop AS to_stop ON to_stop.id = road_distance.to_stop_id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var from, to string
		var meters int
		if err := rows.Scan(&from, &to, &meters); err != nil {
			return err
		}
		if err := cat.SetDistance(from, to, meters); err != nil {
			return err
		}
	}
	return rows.Err()
}
