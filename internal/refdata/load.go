package refdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Asteroid catalog columns, named as the close-approach export writes them.
const (
	colObject       = "Object"
	colDiameterM    = "diameter_m"
	colVelocity     = "V relative(km/s)"
	colAsteroidLat  = "asteroid_lat"
	colAsteroidLon  = "asteroid_lon"
	colClosestDelta = "closest_delta_km"
)

// City catalog columns (simplemaps worldcities export).
const (
	colCity    = "city"
	colCityLat = "lat"
	colCityLon = "lng"
)

// LoadAsteroids reads the asteroid catalog CSV. Rows without parseable
// coordinates or a name are skipped; the skip count is returned so callers
// can log it. Other numeric fields parse to zero when malformed, mirroring
// how the upstream dataset tolerates gaps.
func LoadAsteroids(path string) ([]Asteroid, int, error) {
	rows, colIdx, err := readRows(path)
	if err != nil {
		return nil, 0, fmt.Errorf("load asteroids: %w", err)
	}
	if err := requireColumns(colIdx, colObject, colDiameterM, colVelocity, colAsteroidLat, colAsteroidLon, colClosestDelta); err != nil {
		return nil, 0, fmt.Errorf("load asteroids: %w", err)
	}

	var out []Asteroid
	skipped := 0
	for _, row := range rows {
		lat, latOK := parseFloat(get(row, colIdx, colAsteroidLat))
		lon, lonOK := parseFloat(get(row, colIdx, colAsteroidLon))
		name := get(row, colIdx, colObject)
		if !latOK || !lonOK || name == "" {
			skipped++
			continue
		}
		out = append(out, Asteroid{
			Name:           name,
			DiameterM:      parseFloatOrZero(get(row, colIdx, colDiameterM)),
			VelocityKms:    parseFloatOrZero(get(row, colIdx, colVelocity)),
			Lat:            lat,
			Lon:            lon,
			ClosestDeltaKm: parseFloatOrZero(get(row, colIdx, colClosestDelta)),
		})
	}
	return out, skipped, nil
}

// LoadCities reads the world-cities catalog CSV with the same row-skipping
// rules as LoadAsteroids.
func LoadCities(path string) ([]City, int, error) {
	rows, colIdx, err := readRows(path)
	if err != nil {
		return nil, 0, fmt.Errorf("load cities: %w", err)
	}
	if err := requireColumns(colIdx, colCity, colCityLat, colCityLon); err != nil {
		return nil, 0, fmt.Errorf("load cities: %w", err)
	}

	var out []City
	skipped := 0
	for _, row := range rows {
		lat, latOK := parseFloat(get(row, colIdx, colCityLat))
		lon, lonOK := parseFloat(get(row, colIdx, colCityLon))
		name := get(row, colIdx, colCity)
		if !latOK || !lonOK || name == "" {
			skipped++
			continue
		}
		out = append(out, City{Name: name, Lat: lat, Lon: lon})
	}
	return out, skipped, nil
}

func readRows(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("no data rows")
	}

	colIdx := map[string]int{}
	for i, h := range rows[0] {
		colIdx[strings.TrimSpace(h)] = i
	}
	return rows[1:], colIdx, nil
}

func requireColumns(colIdx map[string]int, cols ...string) error {
	for _, col := range cols {
		if _, ok := colIdx[col]; !ok {
			return fmt.Errorf("missing column %q", col)
		}
	}
	return nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	v, _ := parseFloat(s)
	return v
}
