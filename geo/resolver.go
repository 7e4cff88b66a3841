package geo

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"github.com/aerovital/navigator-api/consts"
	"github.com/aerovital/navigator-api/schema"
)

var (
	ErrNoGeoInfoFound         = fmt.Errorf("no geo information found")
	ErrResolverNotInitialized = fmt.Errorf("location resolver is not initialized")
)

// LocationResolver - interface for resolving a display name for a coordinate
type LocationResolver interface {
	ResolvePlace(schema.Location) (schema.Location, error)
}

type GeocodingLocationResolver struct {
	client *maps.Client
}

func NewGeocodingLocationResolver(client *maps.Client) *GeocodingLocationResolver {
	return &GeocodingLocationResolver{
		client: client,
	}
}

// ResolvePlace reverse-geocodes the coordinate into a "locality, country"
// label shown alongside readings. A location that already carries a name is
// returned untouched.
func (g *GeocodingLocationResolver) ResolvePlace(loc schema.Location) (schema.Location, error) {
	if loc.Name != "" {
		return loc, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), consts.GeocodeTimeout)
	defer cancel()

	geos, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{
			Lat: loc.Latitude,
			Lng: loc.Longitude,
		},
		ResultType: []string{"locality|administrative_area_level_1"},
		Language:   "en",
	})
	if nil != err {
		return loc, err
	}

	if len(geos) == 0 {
		return loc, ErrNoGeoInfoFound
	}

	var locality, level1, country string
	for _, a := range geos[0].AddressComponents {
		if len(a.Types) > 0 {
			switch a.Types[0] {
			case "locality":
				locality = a.LongName
			case "administrative_area_level_1":
				level1 = a.LongName
			case "country":
				country = a.LongName
			}
		}
	}

	if locality == "" {
		locality = level1
	}

	parts := make([]string, 0, 2)
	if locality != "" {
		parts = append(parts, locality)
	}
	if country != "" {
		parts = append(parts, country)
	}
	if len(parts) == 0 {
		return loc, ErrNoGeoInfoFound
	}

	loc.Name = strings.Join(parts, ", ")
	return loc, nil
}

// StaticLocationResolver answers every lookup with a fixed name. Used when no
// maps API key is configured.
type StaticLocationResolver struct {
	name string
}

func NewStaticLocationResolver(name string) *StaticLocationResolver {
	return &StaticLocationResolver{name: name}
}

func (r *StaticLocationResolver) ResolvePlace(loc schema.Location) (schema.Location, error) {
	if loc.Name == "" {
		loc.Name = r.name
	}
	return loc, nil
}
