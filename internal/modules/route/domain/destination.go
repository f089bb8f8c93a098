package domain

import (
	"fmt"
	"sort"
	"strings"

	"focusdrive/internal/platform/geo"
)

type Category string

const (
	CategoryCity     Category = "city"
	CategoryNature   Category = "nature"
	CategoryLandmark Category = "landmark"
	CategoryBeach    Category = "beach"
	CategoryMountain Category = "mountain"
	CategoryGeneral  Category = "general"
)

func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	switch c {
	case CategoryCity, CategoryNature, CategoryLandmark, CategoryBeach, CategoryMountain, CategoryGeneral:
		return c, nil
	default:
		return "", fmt.Errorf("unknown destination category: %s", raw)
	}
}

func (c Category) Label() string {
	switch c {
	case CategoryCity:
		return "City"
	case CategoryNature:
		return "Nature"
	case CategoryLandmark:
		return "Landmark"
	case CategoryBeach:
		return "Beach"
	case CategoryMountain:
		return "Mountain"
	default:
		return "General"
	}
}

type Destination struct {
	Name        string
	Coordinate  geo.Coordinate
	Category    Category
	Description string
}

// Ranked is a destination with its great-circle distance from an origin.
type Ranked struct {
	Destination
	DistanceMiles float64
}

// DefaultNearbyRadiusMiles bounds Nearby when no radius is given.
const DefaultNearbyRadiusMiles = 500.0

var catalog = []Destination{
		{Name: "New York City", Coordinate: geo.Coordinate{Lat: 40.7128, Lon: -74.0060}, Category: CategoryCity, Description: "The city that never sleeps"},
		{Name: "Los Angeles", Coordinate: geo.Coordinate{Lat: 34.0522, Lon: -118.2437}, Category: CategoryCity, Description: "City of Angels"},
		{Name: "Chicago", Coordinate: geo.Coordinate{Lat: 41.8781, Lon: -87.6298}, Category: CategoryCity, Description: "The Windy City"},
		{Name: "San Francisco", Coordinate: geo.Coordinate{Lat: 37.7749, Lon: -122.4194}, Category: CategoryCity, Description: "The Golden City"},
		{Name: "Miami", Coordinate: geo.Coordinate{Lat: 25.7617, Lon: -80.1918}, Category: CategoryCity, Description: "Magic City"},
		{Name: "Seattle", Coordinate: geo.Coordinate{Lat: 47.6062, Lon: -122.3321}, Category: CategoryCity, Description: "The Emerald City"},
		{Name: "Boston", Coordinate: geo.Coordinate{Lat: 42.3601, Lon: -71.0589}, Category: CategoryCity, Description: "Historic charm and innovation"},
		{Name: "Austin", Coordinate: geo.Coordinate{Lat: 30.2672, Lon: -97.7431}, Category: CategoryCity, Description: "Live Music Capital of the World"},
		{Name: "Denver", Coordinate: geo.Coordinate{Lat: 39.7392, Lon: -104.9903}, Category: CategoryCity, Description: "The Mile High City"},
		{Name: "Portland", Coordinate: geo.Coordinate{Lat: 45.5152, Lon: -122.6784}, Category: CategoryCity, Description: "Keep Portland Weird"},
		{Name: "Nashville", Coordinate: geo.Coordinate{Lat: 36.1627, Lon: -86.7816}, Category: CategoryCity, Description: "Music City USA"},
		{Name: "Las Vegas", Coordinate: geo.Coordinate{Lat: 36.1699, Lon: -115.1398}, Category: CategoryCity, Description: "The Entertainment Capital"},
		{Name: "New Orleans", Coordinate: geo.Coordinate{Lat: 29.9511, Lon: -90.0715}, Category: CategoryCity, Description: "The Big Easy"},
		{Name: "San Diego", Coordinate: geo.Coordinate{Lat: 32.7157, Lon: -117.1611}, Category: CategoryCity, Description: "America's Finest City"},
		{Name: "Phoenix", Coordinate: geo.Coordinate{Lat: 33.4484, Lon: -112.0740}, Category: CategoryCity, Description: "Valley of the Sun"},
		{Name: "Yosemite National Park", Coordinate: geo.Coordinate{Lat: 37.8651, Lon: -119.5383}, Category: CategoryNature, Description: "Iconic granite cliffs and waterfalls"},
		{Name: "Yellowstone National Park", Coordinate: geo.Coordinate{Lat: 44.4280, Lon: -110.5885}, Category: CategoryNature, Description: "America's first national park"},
		{Name: "Grand Canyon", Coordinate: geo.Coordinate{Lat: 36.1069, Lon: -112.1129}, Category: CategoryNature, Description: "Spectacular natural wonder"},
		{Name: "Zion National Park", Coordinate: geo.Coordinate{Lat: 37.2982, Lon: -113.0263}, Category: CategoryNature, Description: "Red rock canyon paradise"},
		{Name: "Arches National Park", Coordinate: geo.Coordinate{Lat: 38.7331, Lon: -109.5925}, Category: CategoryNature, Description: "Natural stone arches and formations"},
		{Name: "Acadia National Park", Coordinate: geo.Coordinate{Lat: 44.3386, Lon: -68.2733}, Category: CategoryNature, Description: "Rocky coastline and mountain views"},
		{Name: "Rocky Mountain National Park", Coordinate: geo.Coordinate{Lat: 40.3428, Lon: -105.6836}, Category: CategoryNature, Description: "Alpine wilderness and wildlife"},
		{Name: "Great Smoky Mountains", Coordinate: geo.Coordinate{Lat: 35.6532, Lon: -83.5070}, Category: CategoryNature, Description: "Misty mountain ranges"},
		{Name: "Olympic National Park", Coordinate: geo.Coordinate{Lat: 47.8021, Lon: -123.6044}, Category: CategoryNature, Description: "Rainforests and rugged coastline"},
		{Name: "Joshua Tree National Park", Coordinate: geo.Coordinate{Lat: 33.8734, Lon: -115.9010}, Category: CategoryNature, Description: "Desert landscape and unique trees"},
		{Name: "Golden Gate Bridge", Coordinate: geo.Coordinate{Lat: 37.8199, Lon: -122.4783}, Category: CategoryLandmark, Description: "Iconic suspension bridge"},
		{Name: "Statue of Liberty", Coordinate: geo.Coordinate{Lat: 40.6892, Lon: -74.0445}, Category: CategoryLandmark, Description: "Symbol of freedom"},
		{Name: "Space Needle", Coordinate: geo.Coordinate{Lat: 47.6205, Lon: -122.3493}, Category: CategoryLandmark, Description: "Seattle's iconic tower"},
		{Name: "Hollywood Sign", Coordinate: geo.Coordinate{Lat: 34.1341, Lon: -118.3215}, Category: CategoryLandmark, Description: "Iconic entertainment landmark"},
		{Name: "Mount Rushmore", Coordinate: geo.Coordinate{Lat: 43.8791, Lon: -103.4591}, Category: CategoryLandmark, Description: "Presidential memorial"},
		{Name: "Niagara Falls", Coordinate: geo.Coordinate{Lat: 43.0962, Lon: -79.0377}, Category: CategoryLandmark, Description: "Powerful waterfalls"},
		{Name: "Key West", Coordinate: geo.Coordinate{Lat: 24.5551, Lon: -81.7800}, Category: CategoryLandmark, Description: "Southernmost point of the US"},
		{Name: "Santa Monica Pier", Coordinate: geo.Coordinate{Lat: 34.0092, Lon: -118.4974}, Category: CategoryLandmark, Description: "Classic California pier"},
		{Name: "Pike Place Market", Coordinate: geo.Coordinate{Lat: 47.6097, Lon: -122.3425}, Category: CategoryLandmark, Description: "Historic public market"},
		{Name: "French Quarter", Coordinate: geo.Coordinate{Lat: 29.9584, Lon: -90.0644}, Category: CategoryLandmark, Description: "Heart of New Orleans"},
		{Name: "Malibu Beach", Coordinate: geo.Coordinate{Lat: 34.0259, Lon: -118.7798}, Category: CategoryBeach, Description: "Stunning California coastline"},
		{Name: "Outer Banks", Coordinate: geo.Coordinate{Lat: 35.5585, Lon: -75.4665}, Category: CategoryBeach, Description: "North Carolina barrier islands"},
		{Name: "Maui", Coordinate: geo.Coordinate{Lat: 20.7984, Lon: -156.3319}, Category: CategoryBeach, Description: "Hawaiian paradise"},
		{Name: "Clearwater Beach", Coordinate: geo.Coordinate{Lat: 27.9659, Lon: -82.8001}, Category: CategoryBeach, Description: "White sand beaches of Florida"},
		{Name: "Cape Cod", Coordinate: geo.Coordinate{Lat: 41.6688, Lon: -70.2962}, Category: CategoryBeach, Description: "Classic New England beaches"},
		{Name: "Laguna Beach", Coordinate: geo.Coordinate{Lat: 33.5427, Lon: -117.7854}, Category: CategoryBeach, Description: "Artistic beach community"},
		{Name: "Waikiki Beach", Coordinate: geo.Coordinate{Lat: 21.2793, Lon: -157.8293}, Category: CategoryBeach, Description: "Famous Honolulu beach"},
		{Name: "South Beach Miami", Coordinate: geo.Coordinate{Lat: 25.7907, Lon: -80.1300}, Category: CategoryBeach, Description: "Art Deco and beaches"},
		{Name: "Aspen", Coordinate: geo.Coordinate{Lat: 39.1911, Lon: -106.8175}, Category: CategoryMountain, Description: "World-class ski resort"},
		{Name: "Lake Tahoe", Coordinate: geo.Coordinate{Lat: 39.0968, Lon: -120.0324}, Category: CategoryMountain, Description: "Alpine lake paradise"},
		{Name: "Stowe", Coordinate: geo.Coordinate{Lat: 44.4654, Lon: -72.6874}, Category: CategoryMountain, Description: "Vermont mountain charm"},
		{Name: "Park City", Coordinate: geo.Coordinate{Lat: 40.6461, Lon: -111.4980}, Category: CategoryMountain, Description: "Utah ski town"},
		{Name: "Jackson Hole", Coordinate: geo.Coordinate{Lat: 43.4799, Lon: -110.7624}, Category: CategoryMountain, Description: "Wyoming mountain resort"},
		{Name: "Telluride", Coordinate: geo.Coordinate{Lat: 37.9375, Lon: -107.8123}, Category: CategoryMountain, Description: "Colorado mountain town"},
		{Name: "Big Sur", Coordinate: geo.Coordinate{Lat: 36.2704, Lon: -121.8081}, Category: CategoryMountain, Description: "Dramatic coastal mountains"},
}

// Destinations returns a copy of the seed catalog.
func Destinations() []Destination {
	out := make([]Destination, len(catalog))
	copy(out, catalog)
	return out
}

func FindDestination(name string) (Destination, bool) {
	want := strings.TrimSpace(name)
	for _, d := range catalog {
		if strings.EqualFold(d.Name, want) {
			return d, true
		}
	}
	return Destination{}, false
}

func ByCategory(category Category) []Destination {
	out := []Destination{}
	for _, d := range catalog {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Search matches query case-insensitively against names and descriptions.
// An empty query matches nothing.
func Search(query string) []Destination {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Destination{}
	}
	out := []Destination{}
	for _, d := range catalog {
		if strings.Contains(strings.ToLower(d.Name), q) || strings.Contains(strings.ToLower(d.Description), q) {
			out = append(out, d)
		}
	}
	return out
}

// Nearby returns catalog destinations within radiusMiles of origin, nearest
// first. A non-positive radius falls back to DefaultNearbyRadiusMiles.
func Nearby(origin geo.Coordinate, radiusMiles float64) []Ranked {
	if radiusMiles <= 0 {
		radiusMiles = DefaultNearbyRadiusMiles
	}
	out := []Ranked{}
	for _, d := range catalog {
		dist := geo.HaversineMiles(origin, d.Coordinate)
		if dist <= radiusMiles {
			out = append(out, Ranked{Destination: d, DistanceMiles: dist})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceMiles < out[j].DistanceMiles })
	return out
}
