// Package refdata loads and indexes the reference catalogs: named asteroids
// from the close-approach dataset and world cities. Lookups are exact after
// trimming and lower-casing, matching how the catalogs are queried upstream.
package refdata

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrAsteroidNotFound = errors.New("asteroid not found")
	ErrCityNotFound     = errors.New("city not found")
)

// Asteroid is one close-approach catalog entry. Coordinates are the nominal
// impact point; ClosestDeltaKm is the close-approach miss distance.
type Asteroid struct {
	Name           string  `json:"name"`
	DiameterM      float64 `json:"diameter_m"`
	VelocityKms    float64 `json:"velocity_kms"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	ClosestDeltaKm float64 `json:"closest_delta_km"`
}

// City is one world-cities catalog entry.
type City struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Catalog indexes both reference tables for name lookups.
type Catalog struct {
	asteroids     []Asteroid
	cities        []City
	asteroidIndex map[string]int
	cityIndex     map[string]int
}

// New builds a catalog from loaded entries. When a normalized name appears
// more than once, the first row wins.
func New(asteroids []Asteroid, cities []City) *Catalog {
	c := &Catalog{
		asteroids:     asteroids,
		cities:        cities,
		asteroidIndex: make(map[string]int, len(asteroids)),
		cityIndex:     make(map[string]int, len(cities)),
	}
	for i, a := range asteroids {
		key := normalizeName(a.Name)
		if _, exists := c.asteroidIndex[key]; !exists {
			c.asteroidIndex[key] = i
		}
	}
	for i, city := range cities {
		key := normalizeName(city.Name)
		if _, exists := c.cityIndex[key]; !exists {
			c.cityIndex[key] = i
		}
	}
	return c
}

// Asteroid looks up a catalog entry by name, ignoring case and padding.
func (c *Catalog) Asteroid(name string) (Asteroid, error) {
	i, ok := c.asteroidIndex[normalizeName(name)]
	if !ok {
		return Asteroid{}, fmt.Errorf("%w: %q", ErrAsteroidNotFound, name)
	}
	return c.asteroids[i], nil
}

// City looks up a catalog entry by name, ignoring case and padding.
func (c *Catalog) City(name string) (City, error) {
	i, ok := c.cityIndex[normalizeName(name)]
	if !ok {
		return City{}, fmt.Errorf("%w: %q", ErrCityNotFound, name)
	}
	return c.cities[i], nil
}

// AsteroidNames returns the cataloged asteroid names, sorted.
func (c *Catalog) AsteroidNames() []string {
	names := make([]string, 0, len(c.asteroids))
	for _, a := range c.asteroids {
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return names
}

// CityNames returns the cataloged city names, sorted.
func (c *Catalog) CityNames() []string {
	names := make([]string, 0, len(c.cities))
	for _, city := range c.cities {
		names = append(names, city.Name)
	}
	sort.Strings(names)
	return names
}

// Size reports the number of indexed asteroids and cities.
func (c *Catalog) Size() (asteroids, cities int) {
	return len(c.asteroids), len(c.cities)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
