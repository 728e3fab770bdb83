package geolocation

import (
	"errors"
	"math"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/xronetech/leads/models/booking_models"
)

const (
	dimensions  = 2
	minChildren = 2
	maxChildren = 8
	tolerance   = 0.01
	earthRadius = 6371.0 // km
)

var ErrNoBases = errors.New("no operator bases configured")

// Base is a location drone crews are dispatched from.
type Base struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	RadiusKm float64 `json:"radiusKm"`
}

// DefaultBases are the crews' home locations.
var DefaultBases = []Base{
	{ID: "pune", Name: "Pune", Lat: 18.5204, Lon: 73.8567, RadiusKm: 150},
	{ID: "nashik", Name: "Nashik", Lat: 19.9975, Lon: 73.7898, RadiusKm: 120},
	{ID: "chh-sambhajinagar", Name: "Chhatrapati Sambhajinagar", Lat: 19.8762, Lon: 75.3433, RadiusKm: 120},
	{ID: "nagpur", Name: "Nagpur", Lat: 21.1458, Lon: 79.0882, RadiusKm: 150},
	{ID: "solapur", Name: "Solapur", Lat: 17.6599, Lon: 75.9064, RadiusKm: 100},
}

type baseItem struct {
	Base
	rect *rtreego.Rect
}

func (b *baseItem) Bounds() *rtreego.Rect {
	return b.rect
}

// Coverage is the nearest base to a coordinate and whether it serves it.
type Coverage struct {
	Base       Base    `json:"base"`
	DistanceKm float64 `json:"distanceKm"`
	Covered    bool    `json:"covered"`
}

// ServiceArea answers which operator base is closest to a farm.
type ServiceArea struct {
	mu    sync.RWMutex
	tree  *rtreego.Rtree
	count int
}

func NewServiceArea(bases []Base) *ServiceArea {
	a := &ServiceArea{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
	for _, b := range bases {
		a.Add(b)
	}
	return a
}

// Add indexes another base.
func (a *ServiceArea) Add(b Base) {
	p := rtreego.Point{b.Lat, b.Lon}
	item := &baseItem{Base: b, rect: p.ToRect(tolerance)}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.tree.Insert(item)
	a.count++
}

func (a *ServiceArea) Size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.count
}

// Nearest returns the closest base. The r-tree orders by planar degree
// distance, so the few nearest candidates are re-ranked by great-circle distance.
func (a *ServiceArea) Nearest(coord booking_models.GeoCoordinate) (Coverage, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.count == 0 {
		return Coverage{}, ErrNoBases
	}

	candidates := a.tree.NearestNeighbors(min(3, a.count), rtreego.Point{coord.Latitude, coord.Longitude})

	var best Coverage
	found := false
	for _, c := range candidates {
		item, ok := c.(*baseItem)
		if !ok || item == nil {
			continue
		}
		d := haversineDistance(coord.Latitude, coord.Longitude, item.Lat, item.Lon)
		if !found || d < best.DistanceKm {
			best = Coverage{Base: item.Base, DistanceKm: d}
			found = true
		}
	}
	if !found {
		return Coverage{}, ErrNoBases
	}

	best.Covered = best.DistanceKm <= best.Base.RadiusKm
	best.DistanceKm = math.Round(best.DistanceKm*10) / 10
	return best, nil
}

func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}
